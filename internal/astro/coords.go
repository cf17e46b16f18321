package astro

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SkyCoord represents equatorial coordinates (J2000).
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
}

// ErrBadSexagesimal is returned for strings that are not h/m/s or d/m/s triples.
var ErrBadSexagesimal = errors.New("malformed sexagesimal angle")

// ParseRA parses a right ascension string such as "19h22m42.58s",
// "19:22:42.58" or "19 22 42.58" into degrees.
func ParseRA(s string) (float64, error) {
	neg, parts, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("parse RA %q: %w", s, err)
	}
	if neg {
		return 0, fmt.Errorf("parse RA %q: %w", s, ErrBadSexagesimal)
	}
	hours := parts[0] + parts[1]/60 + parts[2]/3600
	if hours >= 24 || parts[1] >= 60 || parts[2] >= 60 {
		return 0, fmt.Errorf("parse RA %q: out of range", s)
	}
	return hours * 15, nil
}

// ParseDec parses a declination string such as "+48d08m29.9s",
// "-05:12:00" or "48 08 29.9" into degrees.
func ParseDec(s string) (float64, error) {
	neg, parts, err := splitSexagesimal(s)
	if err != nil {
		return 0, fmt.Errorf("parse Dec %q: %w", s, err)
	}
	deg := parts[0] + parts[1]/60 + parts[2]/3600
	if deg > 90 || parts[1] >= 60 || parts[2] >= 60 {
		return 0, fmt.Errorf("parse Dec %q: out of range", s)
	}
	if neg {
		deg = -deg
	}
	return deg, nil
}

// ParseSkyCoord parses an RA/Dec string pair.
func ParseSkyCoord(ra, dec string) (SkyCoord, error) {
	raDeg, err := ParseRA(ra)
	if err != nil {
		return SkyCoord{}, err
	}
	decDeg, err := ParseDec(dec)
	if err != nil {
		return SkyCoord{}, err
	}
	return SkyCoord{RAdeg: raDeg, DecDeg: decDeg}, nil
}

// splitSexagesimal splits a signed three-component angle string. Missing
// trailing components are treated as zero ("19h22m" is valid).
func splitSexagesimal(s string) (bool, [3]float64, error) {
	var out [3]float64
	s = strings.TrimSpace(s)
	if s == "" {
		return false, out, ErrBadSexagesimal
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.'
	})
	if len(fields) == 0 || len(fields) > 3 {
		return false, out, ErrBadSexagesimal
	}

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return false, out, ErrBadSexagesimal
		}
		out[i] = v
	}
	return neg, out, nil
}

// AngularSeparation returns the great-circle angle between two sky
// coordinates in degrees.
func AngularSeparation(a, b SkyCoord) float64 {
	ra1, dec1 := degToRad(a.RAdeg), degToRad(a.DecDeg)
	ra2, dec2 := degToRad(b.RAdeg), degToRad(b.DecDeg)

	cosSep := math.Sin(dec1)*math.Sin(dec2) + math.Cos(dec1)*math.Cos(dec2)*math.Cos(ra1-ra2)
	// Clamp to [-1, 1] to handle floating point errors
	if cosSep > 1 {
		cosSep = 1
	} else if cosSep < -1 {
		cosSep = -1
	}
	return radToDeg(math.Acos(cosSep))
}

// FormatRA formats degrees as "HHh MMm SS.Ss".
func FormatRA(deg float64) string {
	hours := math.Mod(deg, 360) / 15
	if hours < 0 {
		hours += 24
	}
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	sec := ((hours-float64(h))*60 - float64(m)) * 60
	return fmt.Sprintf("%02dh %02dm %04.1fs", h, m, sec)
}

// FormatDec formats degrees as "+DD° MM' SS\"".
func FormatDec(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	d := int(deg)
	m := int((deg - float64(d)) * 60)
	sec := ((deg-float64(d))*60 - float64(m)) * 60
	return fmt.Sprintf("%s%02d° %02d' %02.0f\"", sign, d, m, sec)
}
