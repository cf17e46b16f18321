package exo

import "strings"

// FindByName returns the index of the first record whose display name or
// identifier contains query, ignoring case. Iteration order decides ties;
// no similarity ranking is applied.
func FindByName(records []Record, query string) (int, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return -1, &NotFoundError{Query: query}
	}
	for i, r := range records {
		if r.matches(q) {
			return i, nil
		}
	}
	return -1, &NotFoundError{Query: query}
}

// FilterByName returns every record matching query, preserving order.
// An empty query returns nil.
func FilterByName(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Record
	for _, r := range records {
		if r.matches(q) {
			out = append(out, r)
		}
	}
	return out
}
