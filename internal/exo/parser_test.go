package exo

import (
	"errors"
	"testing"
)

// Sample rows in the archive's TAP JSON format.
const samplePayload = `[
  {"kepoi_name":"K00752.01","kepler_name":"Kepler-227 b","koi_period":9.488036,"koi_prad":2.26,"koi_teq":793,"koi_steff":5455,"koi_srad":0.927,"koi_insol":93.59,"koi_disposition":"CONFIRMED","ra_str":"19h27m44.22s","dec_str":"+48d08m29.9s"},
  {"kepoi_name":"K00753.01","kepler_name":null,"koi_period":19.899140,"koi_prad":14.6,"koi_teq":638,"koi_steff":5853,"koi_srad":0.868,"koi_insol":39.3,"koi_disposition":"CANDIDATE","ra_str":"19h48m01.16s","dec_str":"+48d08m29.9s"},
  {"kepoi_name":"K00754.01","kepler_name":null,"koi_period":1.736952,"koi_prad":null,"koi_teq":null,"koi_steff":5805,"koi_srad":0.791,"koi_insol":null,"koi_disposition":"candidate","ra_str":"19h02m38.92s","dec_str":"+48d17m03.2s"},
  {"kepoi_name":"","koi_period":1}
]`

func TestParse_Sample(t *testing.T) {
	recs, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Row without an identifier is skipped
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}

	first := recs[0]
	if first.ID != "K00752.01" {
		t.Errorf("ID = %q", first.ID)
	}
	if first.DisplayName() != "Kepler-227 b" {
		t.Errorf("DisplayName = %q, want Kepler-227 b", first.DisplayName())
	}
	if first.Temperature != 793 || first.Radius != 2.26 || first.StarTemp != 5455 {
		t.Errorf("numeric fields wrong: %+v", first)
	}
	if first.Disposition != DispositionConfirmed {
		t.Errorf("Disposition = %q", first.Disposition)
	}
	if first.Missing != 0 {
		t.Errorf("Missing = %b, want 0", first.Missing)
	}

	second := recs[1]
	if second.DisplayName() != "K00753.01" {
		t.Errorf("DisplayName without kepler name = %q", second.DisplayName())
	}

	third := recs[2]
	if third.Has(FieldRadius) || third.Has(FieldTemperature) || third.Has(FieldInsolation) {
		t.Errorf("null fields should be flagged missing: %b", third.Missing)
	}
	if !third.Has(FieldPeriod) || !third.Has(FieldStarTemp) {
		t.Errorf("present fields flagged missing: %b", third.Missing)
	}
	if third.Disposition != DispositionCandidate {
		t.Errorf("disposition should be upper-cased, got %q", third.Disposition)
	}
}

func TestParse_Empty(t *testing.T) {
	recs, err := Parse([]byte(`[]`))
	if err != nil {
		t.Fatalf("Parse([]) error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected 0 records, got %d", len(recs))
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `[{"kepoi_name":"K1"`},
		{"object not array", `{"kepoi_name":"K1"}`},
		{"wrong type", `[{"kepoi_name":"K1","koi_teq":"hot"}]`},
		{"html error page", `<html><body>503</body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if pe.Unwrap() == nil {
				t.Error("ParseError should wrap the decoder error")
			}
		})
	}
}

func TestDisposition_Short(t *testing.T) {
	tests := map[Disposition]string{
		DispositionConfirmed:     "CONF",
		DispositionCandidate:     "CAND",
		DispositionFalsePositive: "FP",
		"":                       "-",
		"WEIRD":                  "?",
	}
	for d, want := range tests {
		if got := d.Short(); got != want {
			t.Errorf("%q.Short() = %q, want %q", d, got, want)
		}
	}
}
