package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

const cardWidth = 48

// WriteCard prints one planet with its derived metrics.
func WriteCard(w io.Writer, r exo.Record, o scene.Object, m exo.DerivedMetrics) {
	rule := strings.Repeat("─", cardWidth)

	fmt.Fprintf(w, "%s  (%s)\n", o.Name, o.ID)
	fmt.Fprintln(w, rule)
	for _, s := range o.Stats {
		unit := s.Unit
		if s.Value == "n/a" {
			unit = ""
		}
		fmt.Fprintf(w, "%-18s %s %s\n", s.Label, s.Value, unit)
	}
	if c, err := astro.ParseSkyCoord(r.RA, r.Dec); err == nil {
		fmt.Fprintf(w, "%-18s %s  %s\n", "Sky position", astro.FormatRA(c.RAdeg), astro.FormatDec(c.DecDeg))
	}
	fmt.Fprintf(w, "%-18s %s (%s, %s texture)\n", "Class", o.Band, o.Band.Climate(), o.Texture.Pattern())

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Atmosphere (%s regime)\n", m.Regime)
	for _, g := range m.Atmosphere {
		fmt.Fprintf(w, "  %-6s %s %5.1f%%\n", g.Name, Bar(g.Percent, 100, 24), g.Percent)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Habitability")
	h := m.Habitability
	for _, s := range []struct {
		label string
		v     float64
	}{
		{"Temperature", h.Temperature},
		{"Size", h.Size},
		{"Stellar", h.Stellar},
		{"Water", h.Water},
		{"Overall", h.Overall()},
	} {
		fmt.Fprintf(w, "  %-12s %s %5.1f\n", s.label, Bar(s.v, 100, 24), s.v)
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, "Temperature history ")
	for i, p := range m.History {
		if i > 0 {
			fmt.Fprint(w, " → ")
		}
		fmt.Fprintf(w, "%s %.0fK", p.Label, p.Kelvin)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Orbit              e=%.3f  i=%.1f°\n", m.Orbit.Eccentricity, m.Orbit.InclinationDeg)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Atmosphere, water, history and orbit figures are illustrative.")
}

// Bar renders v out of full as a fixed-width block bar.
func Bar(v, full float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := 0.0
	if full > 0 {
		frac = v / full
	}
	if frac < 0 || math.IsNaN(frac) {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
