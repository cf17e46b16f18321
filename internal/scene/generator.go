// Package scene turns KOI records into positioned, coloured scene objects.
package scene

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/litescript/ls-exoplanets/internal/astro"
	"github.com/litescript/ls-exoplanets/internal/exo"
)

// Placement constants for the spiral layout.
const (
	// SpiralTurns is the number of full turns across the object list.
	SpiralTurns = 6

	// RingCount is the number of concentric radius bands.
	RingCount = 7

	// RingBase is the radius of the innermost band.
	RingBase = 112.5

	// RingStep is the spacing between bands.
	RingStep = 93.75

	// MaxVerticalOffset bounds the random height above or below the plane.
	MaxVerticalOffset = 75.0

	// MinDisplayRadius and MaxDisplayRadius clamp planet sizes.
	MinDisplayRadius = 0.5
	MaxDisplayRadius = 3.0
)

// Stat is one labelled value shown for an object.
type Stat struct {
	Label string
	Value string
	Unit  string
}

// Object is the render-ready form of one record.
type Object struct {
	ID          string
	Name        string
	Index       int
	Position    astro.Vec3
	Radius      float64
	Band        Band
	Texture     Texture
	Temperature float64
	Period      float64
	Stats       []Stat

	// Discovered is false at creation; the selection state owns it after
	// that and only ever sets it.
	Discovered bool
}

// Generate builds scene objects from at most limit leading records.
// Position depends only on the object's index, the total count and the
// vertical offset drawn from rng; temperature and radius never move an
// object. A nil rng uses a freshly seeded source.
//
// Records repeating an earlier identifier are dropped so that object
// identifiers stay unique.
func Generate(records []exo.Record, limit int, rng *rand.Rand) []Object {
	if limit < 0 {
		limit = 0
	}
	if len(records) > limit {
		records = records[:limit]
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	seen := make(map[string]bool, len(records))
	unique := make([]exo.Record, 0, len(records))
	for _, r := range records {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		unique = append(unique, r)
	}

	n := len(unique)
	objects := make([]Object, n)
	for i, r := range unique {
		offset := (rng.Float64()*2 - 1) * MaxVerticalOffset
		objects[i] = Object{
			ID:          r.ID,
			Name:        r.DisplayName(),
			Index:       i,
			Position:    Position(i, n, offset),
			Radius:      DisplayRadius(r.Radius),
			Band:        Classify(r.Temperature),
			Texture:     TextureFor(r.ID, r.Temperature),
			Temperature: r.Temperature,
			Period:      r.Period,
			Stats:       Stats(r),
		}
	}
	return objects
}

// Position places index i of n on the spiral at the given vertical offset.
func Position(i, n int, verticalOffset float64) astro.Vec3 {
	if n <= 0 {
		return astro.Vec3{Y: verticalOffset}
	}
	angle := float64(i) / float64(n) * SpiralTurns * 2 * math.Pi
	r := RingRadius(i)
	return astro.Vec3{
		X: r * math.Cos(angle),
		Y: verticalOffset,
		Z: r * math.Sin(angle),
	}
}

// RingIndex returns which of the RingCount bands index i falls in.
func RingIndex(i int) int {
	return ((i % RingCount) + RingCount) % RingCount
}

// RingRadius returns the spiral radius for index i.
func RingRadius(i int) float64 {
	return RingBase + float64(RingIndex(i))*RingStep
}

// DisplayRadius clamps a planetary radius to the drawable range. It is
// monotonic in the input; NaN maps to the minimum.
func DisplayRadius(earthRadii float64) float64 {
	if math.IsNaN(earthRadii) || earthRadii < MinDisplayRadius {
		return MinDisplayRadius
	}
	if earthRadii > MaxDisplayRadius {
		return MaxDisplayRadius
	}
	return earthRadii
}

// Stats returns the ordered stat list for a record.
func Stats(r exo.Record) []Stat {
	return []Stat{
		{"Orbital Period", numStat(r, exo.FieldPeriod, r.Period, "%.2f"), "days"},
		{"Radius", numStat(r, exo.FieldRadius, r.Radius, "%.2f"), "R⊕"},
		{"Temperature", numStat(r, exo.FieldTemperature, r.Temperature, "%.0f"), "K"},
		{"Star Temperature", numStat(r, exo.FieldStarTemp, r.StarTemp, "%.0f"), "K"},
		{"Star Radius", numStat(r, exo.FieldStarRadius, r.StarRadius, "%.2f"), "R☉"},
		{"Insolation", numStat(r, exo.FieldInsolation, r.Insolation, "%.1f"), "S⊕"},
		{"Disposition", dispositionStat(r.Disposition), ""},
	}
}

func numStat(r exo.Record, f exo.Field, v float64, format string) string {
	if !r.Has(f) {
		return "n/a"
	}
	return fmt.Sprintf(format, v)
}

func dispositionStat(d exo.Disposition) string {
	if d == "" {
		return "n/a"
	}
	return string(d)
}

// Lookup returns the object with the given identifier.
func Lookup(objects []Object, id string) (Object, bool) {
	for _, o := range objects {
		if o.ID == id {
			return o, true
		}
	}
	return Object{}, false
}

// IndexOf returns the position of id in objects, or -1.
func IndexOf(objects []Object, id string) int {
	for i, o := range objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}
