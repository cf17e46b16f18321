// Package report writes the catalog and scene in headless forms: a JSON
// export, a summary table and a single-planet card.
package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

// CatalogExport is the JSON-serializable catalog plus scene attributes.
type CatalogExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	FetchedAt   time.Time      `json:"fetched_at"`
	Source      string         `json:"source"`
	Count       int            `json:"count"`
	Bands       map[string]int `json:"bands"`
	Planets     []PlanetExport `json:"planets"`
}

// PlanetExport is a JSON-friendly record with its scene placement. Null
// archive values export as null.
type PlanetExport struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Disposition string     `json:"disposition,omitempty"`
	Period      *float64   `json:"period_days"`
	Radius      *float64   `json:"radius_earth"`
	Temperature *float64   `json:"equilibrium_temp_k"`
	StarTemp    *float64   `json:"star_temp_k"`
	StarRadius  *float64   `json:"star_radius_sun"`
	Insolation  *float64   `json:"insolation_earth"`
	RAdeg       *float64   `json:"ra_deg,omitempty"`
	DecDeg      *float64   `json:"dec_deg,omitempty"`
	Band        string     `json:"band"`
	Climate     string     `json:"climate"`
	Texture     string     `json:"texture"`
	Position    [3]float64 `json:"position"`
	DisplaySize float64    `json:"display_radius"`
}

// ExportCatalog builds an export of the objects and the records they were
// generated from. Records without a scene object are skipped.
func ExportCatalog(records []exo.Record, objects []scene.Object, source string, fetchedAt time.Time) *CatalogExport {
	byID := make(map[string]exo.Record, len(records))
	for _, r := range records {
		if _, ok := byID[r.ID]; !ok {
			byID[r.ID] = r
		}
	}

	export := &CatalogExport{
		GeneratedAt: time.Now().UTC(),
		FetchedAt:   fetchedAt.UTC(),
		Source:      source,
		Count:       len(objects),
		Bands:       make(map[string]int),
		Planets:     make([]PlanetExport, 0, len(objects)),
	}
	for _, o := range objects {
		r := byID[o.ID]
		p := PlanetExport{
			ID:          o.ID,
			Name:        o.Name,
			Disposition: string(r.Disposition),
			Period:      value(r, exo.FieldPeriod, r.Period),
			Radius:      value(r, exo.FieldRadius, r.Radius),
			Temperature: value(r, exo.FieldTemperature, r.Temperature),
			StarTemp:    value(r, exo.FieldStarTemp, r.StarTemp),
			StarRadius:  value(r, exo.FieldStarRadius, r.StarRadius),
			Insolation:  value(r, exo.FieldInsolation, r.Insolation),
			Band:        o.Band.String(),
			Climate:     string(o.Band.Climate()),
			Texture:     o.Texture.Pattern(),
			Position:    [3]float64{o.Position.X, o.Position.Y, o.Position.Z},
			DisplaySize: o.Radius,
		}
		if c, err := astro.ParseSkyCoord(r.RA, r.Dec); err == nil {
			p.RAdeg, p.DecDeg = &c.RAdeg, &c.DecDeg
		}
		export.Bands[o.Band.String()]++
		export.Planets = append(export.Planets, p)
	}
	return export
}

func value(r exo.Record, f exo.Field, v float64) *float64 {
	if !r.Has(f) {
		return nil
	}
	return &v
}

// WriteJSON writes the export as indented JSON.
func (e *CatalogExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// IsTerminal reports whether f is attached to a terminal; colour output is
// only used when it is.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
