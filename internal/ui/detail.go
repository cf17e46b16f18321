package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-exoplanets/internal/anim"
	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/report"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

const (
	// SparklineWidth is the width of the temperature history chart.
	SparklineWidth = 24

	barWidth = 20
)

var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// gasColors colours atmosphere bars by gas.
var gasColors = map[string]string{
	"N₂":    "#7AA2F7",
	"O₂":    "#7DCFFF",
	"CO₂":   "#E0AF68",
	"CH₄":   "#9ECE6A",
	"Ar":    "#BB9AF7",
	"SO₂":   "#F7768E",
	"Other": "244",
}

// DetailModel shows the analysis screen for one planet.
type DetailModel struct {
	width  int
	height int

	object  scene.Object
	record  exo.Record
	metrics exo.DerivedMetrics
	planet  anim.PlanetState
	active  bool
}

// NewDetailModel creates an empty detail model.
func NewDetailModel() DetailModel {
	return DetailModel{}
}

// SetSize updates the viewport size.
func (m DetailModel) SetSize(width, height int) DetailModel {
	m.width = width
	m.height = height
	return m
}

// Enter shows o with freshly derived metrics.
func (m DetailModel) Enter(o scene.Object, r exo.Record, metrics exo.DerivedMetrics) DetailModel {
	m.object = o
	m.record = r
	m.metrics = metrics
	m.planet = anim.NewPlanetState(o.Index)
	m.active = true
	return m
}

// Object returns the planet being shown.
func (m DetailModel) Object() (scene.Object, bool) {
	return m.object, m.active
}

// Metrics returns the metrics shown for the current planet.
func (m DetailModel) Metrics() exo.DerivedMetrics {
	return m.metrics
}

// Step spins the planet art.
func (m DetailModel) Step(elapsed, dt float64) DetailModel {
	if m.active {
		m.planet = anim.StepPlanet(m.planet, elapsed, dt)
	}
	return m
}

// View renders the detail screen.
func (m DetailModel) View() string {
	if !m.active {
		return dimStyle.Render("  Nothing selected")
	}

	artRows := m.height - 10
	if artRows > 17 {
		artRows = 17
	}
	if artRows < 5 {
		artRows = 5
	}
	art := m.renderArt(artRows*2+4, artRows)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		"",
		m.renderStats(),
		"",
		m.renderAtmosphere(),
	)
	top := lipgloss.JoinHorizontal(lipgloss.Top, art, "   ", right)

	bottom := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHabitability(),
		"",
		m.renderHistory(),
		m.renderOrbit(),
		dimStyle.Render("Atmosphere, water, history and orbit figures are illustrative and re-roll on every visit."),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, "", bottom)
}

func (m DetailModel) renderArt(width, height int) string {
	c := newCanvas(width, height)
	r := float64(height-1) / 2
	drawDisc(c, width/2, height/2, r, 2, m.object, m.planet.Rotation)
	return c.String()
}

func (m DetailModel) renderTitle() string {
	o := m.object
	title := accentStyle.Render(o.Name)
	if o.Name != o.ID {
		title += dimStyle.Render("  " + o.ID)
	}
	class := fg(o.Band.Hex(), fmt.Sprintf("%s · %s · %s texture", o.Band, o.Band.Climate(), o.Texture.Pattern()))
	lines := []string{title, class}
	if c, err := astro.ParseSkyCoord(m.record.RA, m.record.Dec); err == nil {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("RA %s  Dec %s", astro.FormatRA(c.RAdeg), astro.FormatDec(c.DecDeg))))
	}
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderStats() string {
	var b strings.Builder
	for i, s := range m.object.Stats {
		if i > 0 {
			b.WriteString("\n")
		}
		value := s.Value
		if value != "n/a" && s.Unit != "" {
			value += " " + s.Unit
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-17s", s.Label)))
		b.WriteString(textStyle.Render(value))
	}
	return b.String()
}

func (m DetailModel) renderAtmosphere() string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(fmt.Sprintf("Atmosphere · %s regime", m.metrics.Regime)))
	for _, g := range m.metrics.Atmosphere {
		color, ok := gasColors[g.Name]
		if !ok {
			color = colorText
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-6s", g.Name))
		b.WriteString(fg(color, report.Bar(g.Percent, 100, barWidth)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %5.1f%%", g.Percent)))
	}
	return b.String()
}

func (m DetailModel) renderHabitability() string {
	h := m.metrics.Habitability
	rows := []struct {
		label string
		v     float64
	}{
		{"Temperature", h.Temperature},
		{"Size", h.Size},
		{"Stellar", h.Stellar},
		{"Water", h.Water},
		{"Overall", h.Overall()},
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render("Habitability"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-12s", r.label))
		b.WriteString(fg(scoreColor(r.v), report.Bar(r.v, 100, barWidth)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %5.1f", r.v)))
	}
	return b.String()
}

// scoreColor runs red to green over 0..100.
func scoreColor(v float64) string {
	return anim.BlendHex(colorError, colorOK, v/100)
}

// renderHistory draws the temperature history oldest first.
func (m DetailModel) renderHistory() string {
	hist := m.metrics.History
	if len(hist) == 0 {
		return ""
	}
	values := make([]float64, len(hist))
	for i, p := range hist {
		values[len(hist)-1-i] = p.Kelvin
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-12s", "History")))
	b.WriteString(sparkline(values, SparklineWidth, m.object.Band.Hex()))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %s %.0fK → %s %.0fK",
		hist[len(hist)-1].Label, hist[len(hist)-1].Kelvin, hist[0].Label, hist[0].Kelvin)))
	return b.String()
}

func (m DetailModel) renderOrbit() string {
	o := m.metrics.Orbit
	return mutedStyle.Render(fmt.Sprintf("%-12s", "Orbit")) +
		textStyle.Render(fmt.Sprintf("e=%.3f  i=%.1f°", o.Eccentricity, o.InclinationDeg))
}

// sparkline stretches values over width cells, scaled between their min
// and max. Equal values draw mid-height.
func sparkline(values []float64, width int, color string) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		// Linear interpolation between samples.
		pos := float64(i) / float64(max(width-1, 1)) * float64(len(values)-1)
		j := int(pos)
		v := values[j]
		if j+1 < len(values) {
			v += (values[j+1] - v) * (pos - float64(j))
		}

		t := 0.5
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		idx := int(t * float64(len(sparklineBlocks)-1))
		shade := anim.BlendHex(colorSpace, color, 0.35+0.65*t)
		b.WriteString(fg(shade, string(sparklineBlocks[idx])))
	}
	return b.String()
}
