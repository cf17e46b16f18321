// Package exo provides types and functions for working with the NASA
// Exoplanet Archive KOI (Kepler Objects of Interest) table.
package exo

import "strings"

// Disposition is the archive's vetting status for a KOI.
type Disposition string

const (
	DispositionConfirmed     Disposition = "CONFIRMED"
	DispositionCandidate     Disposition = "CANDIDATE"
	DispositionFalsePositive Disposition = "FALSE POSITIVE"
	DispositionNotDispo      Disposition = "NOT DISPOSITIONED"
)

// Short returns a compact label for tables.
func (d Disposition) Short() string {
	switch d {
	case DispositionConfirmed:
		return "CONF"
	case DispositionCandidate:
		return "CAND"
	case DispositionFalsePositive:
		return "FP"
	case "":
		return "-"
	default:
		return "?"
	}
}

// Field identifies a numeric column that may be null in the archive.
type Field uint8

const (
	FieldPeriod Field = 1 << iota
	FieldRadius
	FieldTemperature
	FieldStarTemp
	FieldStarRadius
	FieldInsolation
)

// Record is one row of the KOI table. Records are immutable once fetched.
type Record struct {
	ID          string      // kepoi_name, e.g. "K00752.01"
	KeplerName  string      // kepler_name, empty for unconfirmed candidates
	Period      float64     // orbital period in days
	Radius      float64     // planetary radius in Earth radii
	Temperature float64     // equilibrium temperature in Kelvin
	StarTemp    float64     // host-star effective temperature in Kelvin
	StarRadius  float64     // host-star radius in solar radii
	Insolation  float64     // insolation flux in Earth units
	Disposition Disposition // archive disposition
	RA          string      // right ascension, sexagesimal
	Dec         string      // declination, sexagesimal

	// Missing has a bit set for every numeric field that was null in the
	// payload; the corresponding value is zero.
	Missing Field
}

// DisplayName returns the Kepler name when assigned, otherwise the KOI id.
func (r Record) DisplayName() string {
	if r.KeplerName != "" {
		return r.KeplerName
	}
	return r.ID
}

// Has reports whether a numeric field was present in the payload.
func (r Record) Has(f Field) bool {
	return r.Missing&f == 0
}

// matches reports whether the lowercased query is a substring of the
// record's display name or identifier.
func (r Record) matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(r.DisplayName()), lowerQuery) ||
		strings.Contains(strings.ToLower(r.ID), lowerQuery)
}
