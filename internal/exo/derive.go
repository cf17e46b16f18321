package exo

import (
	"math"
	"math/rand/v2"
)

// Reference values the habitability penalties are measured against.
const (
	earthTempK   = 288.0
	earthRadius  = 1.0
	solarTempK   = 5778.0
	waterFreezeK = 273.0
	waterBoilK   = 373.0
)

// Regime is the coarse temperature regime that selects an atmosphere mix.
type Regime int

const (
	RegimeCold      Regime = iota // below 220 K
	RegimeTemperate               // 220 K up to 280 K
	RegimeHot                     // 280 K and above
)

func (r Regime) String() string {
	switch r {
	case RegimeCold:
		return "cold"
	case RegimeTemperate:
		return "temperate"
	case RegimeHot:
		return "hot"
	default:
		return "unknown"
	}
}

// RegimeFor returns the atmosphere regime for a temperature in Kelvin.
func RegimeFor(tempK float64) Regime {
	switch {
	case tempK < 220:
		return RegimeCold
	case tempK < 280:
		return RegimeTemperate
	default:
		return RegimeHot
	}
}

// Gas is one atmosphere component.
type Gas struct {
	Name    string
	Percent float64
}

// Fixed compositions per regime; each sums to exactly 100.
var atmospheres = map[Regime][]Gas{
	RegimeCold: {
		{"N₂", 60}, {"CH₄", 25}, {"Ar", 10}, {"Other", 5},
	},
	RegimeTemperate: {
		{"N₂", 75}, {"O₂", 20}, {"Ar", 4}, {"CO₂", 1},
	},
	RegimeHot: {
		{"CO₂", 85}, {"N₂", 10}, {"SO₂", 4}, {"Other", 1},
	},
}

// Atmosphere returns a copy of the composition for a regime.
func Atmosphere(r Regime) []Gas {
	src := atmospheres[r]
	out := make([]Gas, len(src))
	copy(out, src)
	return out
}

// Habitability holds sub-scores on a 0..100 scale.
type Habitability struct {
	Temperature float64 // closeness to Earth's equilibrium temperature
	Size        float64 // closeness to one Earth radius
	Stellar     float64 // closeness of the host star to the Sun
	Water       float64 // random, gated on the liquid-water range
}

// Overall is the mean of the sub-scores.
func (h Habitability) Overall() float64 {
	return (h.Temperature + h.Size + h.Stellar + h.Water) / 4
}

// HistoryPoint is one sample of the illustrative temperature history.
type HistoryPoint struct {
	Label  string
	Kelvin float64
}

// Orbit holds illustrative orbital figures. They are random per
// derivation, not computed from any ephemeris.
type Orbit struct {
	Eccentricity   float64
	InclinationDeg float64
}

// DerivedMetrics is synthetic display data for the detail view.
// Values drawn from the random source are flavour text, not estimates.
type DerivedMetrics struct {
	Regime       Regime
	Atmosphere   []Gas
	Habitability Habitability
	History      []HistoryPoint
	Orbit        Orbit
}

// historyLabels name the four history samples, newest first.
var historyLabels = []string{"now", "-1 Gyr", "-2 Gyr", "-3 Gyr"}

// DeriveMetrics builds the detail-view metrics for a record. It is not
// idempotent: water presence, the temperature history and the orbit draw
// from rng. Pass a seeded source for reproducible output; nil uses a fresh
// randomly seeded one.
func DeriveMetrics(r Record, rng *rand.Rand) DerivedMetrics {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	t := r.Temperature
	regime := RegimeFor(t)

	hab := Habitability{
		Temperature: clamp(100-math.Abs(t-earthTempK)/2, 0, 100),
		Size:        clamp(100-math.Abs(r.Radius-earthRadius)*40, 0, 100),
		Stellar:     clamp(100-math.Abs(r.StarTemp-solarTempK)/30, 0, 100),
	}
	if t >= waterFreezeK && t <= waterBoilK {
		hab.Water = uniform(rng, 60, 95)
	} else {
		hab.Water = uniform(rng, 0, 25)
	}

	history := make([]HistoryPoint, len(historyLabels))
	history[0] = HistoryPoint{Label: historyLabels[0], Kelvin: t}
	for i := 1; i < len(historyLabels); i++ {
		bound := 10 * float64(i)
		history[i] = HistoryPoint{Label: historyLabels[i], Kelvin: t - uniform(rng, 0, bound)}
	}

	return DerivedMetrics{
		Regime:       regime,
		Atmosphere:   Atmosphere(regime),
		Habitability: hab,
		History:      history,
		Orbit: Orbit{
			Eccentricity:   uniform(rng, 0, 0.3),
			InclinationDeg: uniform(rng, 0, 90),
		},
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
