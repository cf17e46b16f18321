package scene

import "math"

// Band is a temperature colour band. Bands are ordered coldest first.
type Band int

const (
	BandBlue Band = iota
	BandCyan
	BandGreen
	BandYellowGreen
	BandYellow
	BandOrange
	BandRedOrange
	BandRed
)

// bandThresholds holds the exclusive upper bound of each band except the
// last, which is open-ended. Lower bounds are closed: exactly 260 K is green.
var bandThresholds = [...]float64{200, 260, 290, 320, 350, 400, 500}

// Classify maps a temperature in Kelvin to its band. It is total over the
// real line; NaN falls into the open-ended hottest band.
func Classify(tempK float64) Band {
	if math.IsNaN(tempK) {
		return BandRed
	}
	for i, limit := range bandThresholds {
		if tempK < limit {
			return Band(i)
		}
	}
	return BandRed
}

// Bands returns every band in order.
func Bands() []Band {
	return []Band{BandBlue, BandCyan, BandGreen, BandYellowGreen, BandYellow, BandOrange, BandRedOrange, BandRed}
}

func (b Band) String() string {
	switch b {
	case BandBlue:
		return "blue"
	case BandCyan:
		return "cyan"
	case BandGreen:
		return "green"
	case BandYellowGreen:
		return "yellow-green"
	case BandYellow:
		return "yellow"
	case BandOrange:
		return "orange"
	case BandRedOrange:
		return "red-orange"
	case BandRed:
		return "red"
	default:
		return "unknown"
	}
}

// Climate is the coarse climate label shown next to a band.
type Climate string

const (
	ClimateIce       Climate = "ice"
	ClimateCold      Climate = "cold"
	ClimateTemperate Climate = "temperate"
	ClimateWarm      Climate = "warm"
	ClimateHot       Climate = "hot"
	ClimateScorching Climate = "scorching"
)

// Climate groups the colour bands into climate classes.
func (b Band) Climate() Climate {
	switch b {
	case BandBlue:
		return ClimateIce
	case BandCyan:
		return ClimateCold
	case BandGreen, BandYellowGreen:
		return ClimateTemperate
	case BandYellow, BandOrange:
		return ClimateWarm
	case BandRedOrange:
		return ClimateHot
	default:
		return ClimateScorching
	}
}

// Hex returns the band's display colour.
func (b Band) Hex() string {
	switch b {
	case BandBlue:
		return "#4A7BFF"
	case BandCyan:
		return "#3FD4E8"
	case BandGreen:
		return "#4ADE80"
	case BandYellowGreen:
		return "#B5E853"
	case BandYellow:
		return "#FACC15"
	case BandOrange:
		return "#FB923C"
	case BandRedOrange:
		return "#F2542D"
	default:
		return "#DC2626"
	}
}
