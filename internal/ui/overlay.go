package ui

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-exoplanets/internal/scene"
)

// overlayWidth is the outer width of the selection card.
const overlayWidth = 36

// renderOverlay draws the card for the selected object.
func renderOverlay(o scene.Object, height int) string {
	inner := overlayWidth - 4

	var b strings.Builder
	name := o.Name
	if len([]rune(name)) > inner {
		name = string([]rune(name)[:inner-1]) + "…"
	}
	b.WriteString(accentStyle.Render(name))
	if o.Name != o.ID {
		b.WriteString("\n" + dimStyle.Render(o.ID))
	}
	b.WriteString("\n")
	b.WriteString(fg(o.Band.Hex(), "● "+o.Band.String()) + dimStyle.Render(" · "+string(o.Band.Climate())))
	if o.Discovered {
		b.WriteString(dimStyle.Render(" · discovered"))
	}
	b.WriteString("\n\n")

	for _, s := range o.Stats {
		value := s.Value
		if value != "n/a" && s.Unit != "" {
			value += " " + s.Unit
		}
		label := s.Label
		if len(label)+len(value)+1 > inner {
			label = label[:max(0, inner-len(value)-2)]
		}
		pad := inner - len([]rune(label)) - len([]rune(value))
		if pad < 1 {
			pad = 1
		}
		b.WriteString(mutedStyle.Render(label) + strings.Repeat(" ", pad) + textStyle.Render(value) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%-*s", inner, "enter: analyse · esc: close")))

	return cardStyle.Width(overlayWidth - 2).MaxHeight(height).Render(b.String())
}
