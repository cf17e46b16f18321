package exo

import (
	"errors"
	"testing"
)

func TestFindByName(t *testing.T) {
	recs := []Record{
		{ID: "K00001.01", KeplerName: "Kepler-1 b"},
		{ID: "K00002.01"},
		{ID: "K00010.01", KeplerName: "Kepler-10 b"},
		{ID: "K00010.02", KeplerName: "Kepler-10 c"},
	}

	tests := []struct {
		name    string
		query   string
		wantIdx int
		wantErr bool
	}{
		{"exact display name", "Kepler-10 c", 3, false},
		{"case insensitive", "KEPLER-10 C", 3, false},
		{"first match wins", "kepler-1", 0, false},
		{"substring of id", "00002", 1, false},
		{"id of named planet", "k00010.02", 3, false},
		{"surrounding whitespace", "  kepler-10 b ", 2, false},
		{"no match", "Tatooine", -1, true},
		{"empty query", "", -1, true},
		{"blank query", "   ", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := FindByName(recs, tt.query)
			if tt.wantErr {
				var nf *NotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected *NotFoundError, got %v", err)
				}
				if !IsNotFound(err) {
					t.Error("IsNotFound should be true")
				}
				if nf.Query != tt.query {
					t.Errorf("Query = %q, want %q", nf.Query, tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if idx != tt.wantIdx {
				t.Errorf("FindByName(%q) = %d, want %d", tt.query, idx, tt.wantIdx)
			}
		})
	}
}

func TestFilterByName(t *testing.T) {
	recs := []Record{
		{ID: "K1", KeplerName: "Kepler-10 b"},
		{ID: "K2"},
		{ID: "K3", KeplerName: "Kepler-10 c"},
	}

	got := FilterByName(recs, "kepler-10")
	if len(got) != 2 || got[0].ID != "K1" || got[1].ID != "K3" {
		t.Errorf("FilterByName = %+v", got)
	}
	if FilterByName(recs, "") != nil {
		t.Error("empty query should return nil")
	}
}
