package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-exoplanets/internal/version"
)

var heroLogo = []string{
	" _    ___     _____  _____  ___  _      _   _  _ ___ _____ ___ ",
	"| |  / __|___| __\\ \\/ / _ \\| _ \\| |    /_\\ | \\| | __|_   _/ __|",
	"| |__\\__ \\___| _| >  < (_) |  _/| |__ / _ \\| .` | _|  | | \\__ \\",
	"|____|___/   |___/_/\\_\\___/|_|  |____/_/ \\_\\_|\\_|___| |_| |___/",
}

// Logo gradient stops: blue, purple, magenta, pink.
var gradientStops = []colorful.Color{
	{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
	{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
	{R: 217.0 / 255, G: 70.0 / 255, B: 239.0 / 255},
	{R: 236.0 / 255, G: 72.0 / 255, B: 153.0 / 255},
}

// gradientColor returns a hex colour for a position in the logo gradient:
// horizontal across the stops, fading toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	if width <= 1 {
		width = 2
	}
	x := float64(col) / float64(width-1)
	seg := x * float64(len(gradientStops)-1)
	i := int(seg)
	if i >= len(gradientStops)-1 {
		i = len(gradientStops) - 2
	}
	c := gradientStops[i].BlendLab(gradientStops[i+1], seg-float64(i))

	y := 0.0
	if height > 1 {
		y = float64(row) / float64(height-1)
	}
	black := colorful.Color{}
	return c.BlendRgb(black, y*0.4).Clamped().Hex()
}

// heroStatus is the loading line under the logo.
type heroStatus struct {
	loading bool
	count   int
	err     error
	spinner string
}

type heroLine struct {
	text  string
	color string
}

// renderHero draws the starfield with the logo and status centred on it.
func renderHero(u UniverseModel, width, height int, st heroStatus) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	c := newCanvas(width, height)
	u.drawStars(c)

	logoW := len([]rune(heroLogo[0]))
	top := height/2 - len(heroLogo) - 1
	if top < 0 {
		top = 0
	}
	left := (width - logoW) / 2
	if left < 0 {
		left = 0
	}
	for row, line := range heroLogo {
		for col, r := range []rune(line) {
			if r == ' ' {
				continue
			}
			c.set(left+col, top+row, r, lipgloss.Color(gradientColor(col, row, logoW, len(heroLogo))))
		}
	}

	lines := []heroLine{
		{"Kepler Objects of Interest · NASA Exoplanet Archive", colorMuted},
		{},
	}
	switch {
	case st.loading:
		lines = append(lines, heroLine{st.spinner + " Fetching the catalog…", colorAccent})
	case st.err != nil:
		lines = append(lines, heroLine{errorText(st.err), colorError})
	default:
		lines = append(lines, heroLine{fmt.Sprintf("%d planets charted · press enter to explore", st.count), colorText})
	}
	lines = append(lines, heroLine{}, heroLine{fmt.Sprintf("v%s · q quit", version.Version), colorDim})

	y := top + len(heroLogo) + 1
	for _, l := range lines {
		if l.text == "" {
			y++
			continue
		}
		n := len([]rune(l.text))
		blank(c, (width-n)/2-1, y, n+2)
		c.text((width-n)/2, y, l.text, lipgloss.Color(l.color))
		y++
	}
	return c.String()
}

// blank clears n cells so text over the starfield stays readable.
func blank(c *canvas, x, y, n int) {
	for i := 0; i < n; i++ {
		c.set(x+i, y, ' ', "236")
	}
}
