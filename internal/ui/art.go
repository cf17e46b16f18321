package ui

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-exoplanets/internal/anim"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

// shade returns the surface brightness in [0,1] of a unit-disc point
// (nx, ny) for a texture turned by rotation radians. ok is false outside
// the disc.
func shade(tex scene.Texture, nx, ny, rotation float64) (float64, bool) {
	d2 := nx*nx + ny*ny
	if d2 > 1 {
		return 0, false
	}
	nz := math.Sqrt(1 - d2)

	// Light from the upper left, toward the viewer.
	light := 0.25 + 0.75*math.Max(0, -0.45*nx-0.45*ny+0.77*nz)

	// Longitude on the sphere, turned by the rotation.
	lon := math.Atan2(nx, nz) + rotation

	var detail float64
	switch tex.Variant {
	case 1: // banded
		detail = 0.18 * math.Sin(ny*9+0.6*math.Sin(lon*2))
	case 2: // cratered
		c := math.Sin(lon*5) * math.Sin(ny*7)
		if c > 0.55 {
			detail = -0.3
		}
	case 3: // swirled
		detail = 0.2 * math.Sin(ny*6+lon*3)
	case 4: // mottled
		detail = 0.15 * math.Sin(lon*7+ny*3) * math.Cos(lon*3-ny*8)
	}
	v := light + detail*light
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	return v, true
}

// shadeColor darkens a band colour toward space for dim cells.
func shadeColor(band scene.Band, intensity float64) lipgloss.Color {
	return lipgloss.Color(anim.BlendHex(colorSpace, band.Hex(), 0.25+0.75*intensity))
}

// drawDisc paints a textured planet centred at (cx, cy) with a radius of
// r rows. Columns are stretched by aspect.
func drawDisc(c *canvas, cx, cy int, r, aspect float64, o scene.Object, rotation float64) {
	if r < 0.75 {
		c.set(cx, cy, o.Texture.Glyph(0.9), lipgloss.Color(o.Band.Hex()))
		return
	}
	ry := int(math.Ceil(r))
	rx := int(math.Ceil(r * aspect))
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			nx := float64(dx) / (r * aspect)
			ny := float64(dy) / r
			v, ok := shade(o.Texture, nx, ny, rotation)
			if !ok {
				continue
			}
			c.set(cx+dx, cy+dy, o.Texture.Glyph(v), shadeColor(o.Band, v))
		}
	}
}
