package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	ID          string
	Name        string
	Disposition string
	Period      string
	Radius      string
	Temperature string
	Band        scene.Band
}

// GenerateSummaryRows creates one row per scene object.
func GenerateSummaryRows(records []exo.Record, objects []scene.Object) []SummaryRow {
	disp := make(map[string]exo.Disposition, len(records))
	for _, r := range records {
		if _, ok := disp[r.ID]; !ok {
			disp[r.ID] = r.Disposition
		}
	}

	rows := make([]SummaryRow, 0, len(objects))
	for _, o := range objects {
		rows = append(rows, SummaryRow{
			ID:          o.ID,
			Name:        o.Name,
			Disposition: disp[o.ID].Short(),
			Period:      statValue(o, "Orbital Period"),
			Radius:      statValue(o, "Radius"),
			Temperature: statValue(o, "Temperature"),
			Band:        o.Band,
		})
	}
	return rows
}

func statValue(o scene.Object, label string) string {
	for _, s := range o.Stats {
		if s.Label == label {
			return s.Value
		}
	}
	return "n/a"
}

// TableOptions controls summary rendering.
type TableOptions struct {
	Color bool // colour band names; only for terminals
	Max   int  // max rows; 0 prints all
}

// WriteSummaryTable writes a text table of the scene to w.
func WriteSummaryTable(w io.Writer, records []exo.Record, objects []scene.Object, fetchedAt time.Time, opts TableOptions) {
	rows := GenerateSummaryRows(records, objects)

	fmt.Fprintf(w, "Kepler Objects of Interest @ %s\n", fetchedAt.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 84))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No planets")
		return
	}

	fmt.Fprintf(w, "%-10s %-18s %-5s %10s %8s %7s  %-12s\n",
		"KOI", "Name", "Disp", "Period(d)", "R(R⊕)", "Teq(K)", "Band")
	fmt.Fprintln(w, strings.Repeat("─", 84))

	shown := rows
	if opts.Max > 0 && len(shown) > opts.Max {
		shown = shown[:opts.Max]
	}
	for _, r := range shown {
		band := fmt.Sprintf("%-12s", r.Band.String())
		if opts.Color {
			band = lipgloss.NewStyle().Foreground(lipgloss.Color(r.Band.Hex())).Render(band)
		}
		fmt.Fprintf(w, "%-10s %-18s %-5s %10s %8s %7s  %s\n",
			truncateStr(r.ID, 10),
			truncateStr(r.Name, 18),
			r.Disposition,
			r.Period,
			r.Radius,
			r.Temperature,
			band,
		)
	}
	if len(shown) < len(rows) {
		fmt.Fprintf(w, "… %s more\n", humanize.Comma(int64(len(rows)-len(shown))))
	}

	counts := make(map[scene.Band]int)
	for _, r := range rows {
		counts[r.Band]++
	}
	var parts []string
	for _, b := range scene.Bands() {
		if counts[b] > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", b, counts[b]))
		}
	}
	fmt.Fprintf(w, "\nTotal: %s planets (%s catalog records)\n",
		humanize.Comma(int64(len(rows))), humanize.Comma(int64(len(records))))
	fmt.Fprintf(w, "Bands: %s\n", strings.Join(parts, ", "))
}

func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
