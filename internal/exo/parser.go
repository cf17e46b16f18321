package exo

import (
	"encoding/json"
	"errors"
	"strings"
)

// jsonRecord mirrors one row of the TAP JSON output. Numeric columns are
// pointers because the archive emits null for unmeasured values.
type jsonRecord struct {
	KepoiName   string   `json:"kepoi_name"`
	KeplerName  *string  `json:"kepler_name"`
	Period      *float64 `json:"koi_period"`
	Radius      *float64 `json:"koi_prad"`
	Temperature *float64 `json:"koi_teq"`
	StarTemp    *float64 `json:"koi_steff"`
	StarRadius  *float64 `json:"koi_srad"`
	Insolation  *float64 `json:"koi_insol"`
	Disposition *string  `json:"koi_disposition"`
	RA          *string  `json:"ra_str"`
	Dec         *string  `json:"dec_str"`
}

// Parse decodes a TAP JSON payload into records.
// Rows without an identifier are skipped. An empty array is not an error
// here; Fetcher maps it to ErrNoRecords.
func Parse(data []byte) ([]Record, error) {
	var rows []jsonRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		pe := &ParseError{Err: err}
		var se *json.SyntaxError
		if errors.As(err, &se) {
			pe.Offset = se.Offset
		}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			pe.Offset = te.Offset
		}
		return nil, pe
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row.KepoiName)
		if id == "" {
			continue
		}
		records = append(records, row.toRecord(id))
	}
	return records, nil
}

func (row jsonRecord) toRecord(id string) Record {
	r := Record{
		ID:          id,
		KeplerName:  strings.TrimSpace(deref(row.KeplerName)),
		Disposition: Disposition(strings.ToUpper(strings.TrimSpace(deref(row.Disposition)))),
		RA:          deref(row.RA),
		Dec:         deref(row.Dec),
	}

	r.Period = num(row.Period, FieldPeriod, &r.Missing)
	r.Radius = num(row.Radius, FieldRadius, &r.Missing)
	r.Temperature = num(row.Temperature, FieldTemperature, &r.Missing)
	r.StarTemp = num(row.StarTemp, FieldStarTemp, &r.Missing)
	r.StarRadius = num(row.StarRadius, FieldStarRadius, &r.Missing)
	r.Insolation = num(row.Insolation, FieldInsolation, &r.Missing)

	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func num(v *float64, f Field, missing *Field) float64 {
	if v == nil {
		*missing |= f
		return 0
	}
	return *v
}
