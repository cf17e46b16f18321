package anim

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-exoplanets/internal/astro"
)

// Bounds is the box stars drift within. Stars leaving by more than Margin
// re-enter from the opposite face.
type Bounds struct {
	Min, Max astro.Vec3
	Margin   float64
}

// DefaultBounds encloses the planet spiral with room to spare.
func DefaultBounds() Bounds {
	return Bounds{
		Min:    astro.Vec3{X: -1500, Y: -800, Z: -1500},
		Max:    astro.Vec3{X: 1500, Y: 800, Z: 1500},
		Margin: 50,
	}
}

// StarState is one background star.
type StarState struct {
	Position astro.Vec3
	Velocity astro.Vec3 // units per second

	Twinkle      float64 // current brightness in [0,1]
	TwinkleBase  float64
	TwinkleAmp   float64
	TwinkleFreq  float64
	TwinklePhase float64
}

// StepStar drifts a star by its velocity, recomputes its twinkle and wraps
// it toroidally. Velocity is never changed.
func StepStar(s StarState, elapsed, dt float64, b Bounds) StarState {
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
	s.Position = astro.Vec3{
		X: wrap(s.Position.X, b.Min.X, b.Max.X, b.Margin),
		Y: wrap(s.Position.Y, b.Min.Y, b.Max.Y, b.Margin),
		Z: wrap(s.Position.Z, b.Min.Z, b.Max.Z, b.Margin),
	}
	s.Twinkle = clamp01(s.TwinkleBase + s.TwinkleAmp*math.Sin(elapsed*s.TwinkleFreq+s.TwinklePhase))
	return s
}

// wrap moves v to the opposite side once it is more than margin outside
// [lo, hi].
func wrap(v, lo, hi, margin float64) float64 {
	switch {
	case v > hi+margin:
		return lo - margin + (v - hi - margin)
	case v < lo-margin:
		return hi + margin - (lo - margin - v)
	}
	return v
}

// NewStarfield seeds n stars uniformly inside b. A nil rng uses a freshly
// seeded source.
func NewStarfield(n int, b Bounds, rng *rand.Rand) []StarState {
	if n < 0 {
		n = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	stars := make([]StarState, n)
	for i := range stars {
		stars[i] = StarState{
			Position: astro.Vec3{
				X: lerp(b.Min.X, b.Max.X, rng.Float64()),
				Y: lerp(b.Min.Y, b.Max.Y, rng.Float64()),
				Z: lerp(b.Min.Z, b.Max.Z, rng.Float64()),
			},
			Velocity: astro.Vec3{
				X: (rng.Float64()*2 - 1) * 4,
				Y: (rng.Float64()*2 - 1) * 1,
				Z: (rng.Float64()*2 - 1) * 4,
			},
			TwinkleBase:  0.35 + rng.Float64()*0.4,
			TwinkleAmp:   0.1 + rng.Float64()*0.3,
			TwinkleFreq:  0.5 + rng.Float64()*2.5,
			TwinklePhase: rng.Float64() * 2 * math.Pi,
		}
		stars[i].Twinkle = stars[i].TwinkleBase
	}
	return stars
}

var (
	starDim    = colorful.Color{R: 0.16, G: 0.17, B: 0.24}
	starBright = colorful.Color{R: 0.96, G: 0.96, B: 1.0}
)

// starGlyphs runs from faintest to brightest.
var starGlyphs = []rune{'·', '∙', '•', '✦', '✶'}

// StarGlyph picks a glyph for a brightness in [0,1].
func StarGlyph(brightness float64) rune {
	i := int(clamp01(brightness) * float64(len(starGlyphs)))
	if i >= len(starGlyphs) {
		i = len(starGlyphs) - 1
	}
	return starGlyphs[i]
}

// StarHex blends from a dim blue-grey to near white by brightness.
func StarHex(brightness float64) string {
	return starDim.BlendLab(starBright, clamp01(brightness)).Clamped().Hex()
}

// BlendHex mixes two hex colours in Lab space; t=0 yields a, t=1 yields b.
// An unparseable input is returned unchanged on the side it came from.
func BlendHex(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return b
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, clamp01(t)).Clamped().Hex()
}
