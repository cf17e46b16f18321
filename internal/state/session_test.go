package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

func testObjects(n int) []scene.Object {
	objs := make([]scene.Object, n)
	for i := range objs {
		id := fmt.Sprintf("P%d", i)
		objs[i] = scene.Object{ID: id, Name: id, Index: i}
	}
	objs[1].Name = "Kepler-22 b"
	return objs
}

func TestTransition_SelectDiscovers(t *testing.T) {
	objs := testObjects(5)
	s := NewSession()

	next, err := Transition(s, Select{ID: "P3"}, objs)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if next.Selected != "P3" || !next.IsDiscovered("P3") {
		t.Errorf("after select: %+v", next)
	}
	if s.IsDiscovered("P3") || s.HasSelection() {
		t.Error("Transition mutated the input session")
	}
}

func TestTransition_SelectIsIdempotent(t *testing.T) {
	objs := testObjects(5)
	s, _ := Transition(NewSession(), Select{ID: "P2"}, objs)
	s, _ = Transition(s, Select{ID: "P4"}, objs)
	before := s.DiscoveredCount()

	s, err := Transition(s, Select{ID: "P2"}, objs)
	if err != nil {
		t.Fatal(err)
	}
	if s.DiscoveredCount() != before {
		t.Errorf("reselecting changed discovered count: %d -> %d", before, s.DiscoveredCount())
	}
	if s.Selected != "P2" {
		t.Errorf("selected = %q, want P2 (direct move)", s.Selected)
	}
}

func TestTransition_DiscoveredIsMonotonic(t *testing.T) {
	objs := testObjects(6)
	events := []Event{
		Select{ID: "P1"}, Close{}, Search{Query: "p5"}, Expand{}, Back{},
		Search{Query: "nothing"}, Randomize{ID: "P0"}, Close{}, Back{},
		Select{ID: "missing"}, Expand{}, Select{ID: "P1"},
	}

	s := NewSession()
	seen := map[string]bool{}
	for i, ev := range events {
		s, _ = Transition(s, ev, objs)
		for id := range seen {
			if !s.IsDiscovered(id) {
				t.Fatalf("step %d (%T): %s lost its discovered flag", i, ev, id)
			}
		}
		for _, id := range s.DiscoveredIDs() {
			seen[id] = true
		}
	}
	if diff := cmp.Diff([]string{"P0", "P1", "P5"}, s.DiscoveredIDs()); diff != "" {
		t.Errorf("discovered mismatch (-want +got):\n%s", diff)
	}
}

func TestTransition_FailedSearchKeepsSelection(t *testing.T) {
	objs := testObjects(50)
	s, err := Transition(NewSession(), Select{ID: "P3"}, objs)
	if err != nil {
		t.Fatal(err)
	}

	after, err := Transition(s, Search{Query: "no such planet"}, objs)
	var nf *exo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if after.Selected != "P3" || !after.HasSelection() {
		t.Errorf("failed search changed selection to %q", after.Selected)
	}
	if after.DiscoveredCount() != 1 {
		t.Errorf("discovered count = %d", after.DiscoveredCount())
	}
}

func TestTransition_Search(t *testing.T) {
	objs := testObjects(20)

	tests := []struct {
		query string
		want  string
	}{
		{"kepler-22", "P1"},
		{"KEPLER", "P1"},
		{"p1", "P1"}, // first in order beats P10..P19
		{"p13", "P13"},
	}
	for _, tt := range tests {
		s, err := Transition(NewSession(), Search{Query: tt.query}, objs)
		if err != nil {
			t.Errorf("Search(%q): %v", tt.query, err)
			continue
		}
		if s.Selected != tt.want {
			t.Errorf("Search(%q) selected %q, want %q", tt.query, s.Selected, tt.want)
		}
		if s.Query != tt.query {
			t.Errorf("Search(%q) stored query %q", tt.query, s.Query)
		}
	}
}

func TestTransition_ModeChanges(t *testing.T) {
	objs := testObjects(3)
	s := NewSession()

	if _, err := Transition(s, Expand{}, objs); !errors.Is(err, ErrNoSelection) {
		t.Errorf("Expand without selection: %v", err)
	}

	s, _ = Transition(s, Select{ID: "P0"}, objs)
	s, err := Transition(s, Expand{}, objs)
	if err != nil || s.Mode != ModeDetailed {
		t.Fatalf("Expand: mode %v err %v", s.Mode, err)
	}

	s, _ = Transition(s, Back{}, objs)
	if s.Mode != ModeUniverse || s.Selected != "P0" {
		t.Errorf("Back: %+v", s)
	}

	s, _ = Transition(s, Expand{}, objs)
	s, _ = Transition(s, Close{}, objs)
	if s.Mode != ModeUniverse || s.HasSelection() {
		t.Errorf("Close: %+v", s)
	}
	if !s.IsDiscovered("P0") {
		t.Error("Close reset discovery")
	}
}

func TestTransition_UnknownAndNil(t *testing.T) {
	objs := testObjects(3)
	s, err := Transition(NewSession(), Select{ID: "P9"}, objs)
	if !errors.Is(err, ErrUnknownObject) || !IsUnknown(err) {
		t.Errorf("unknown select err = %v", err)
	}
	if s.HasSelection() {
		t.Error("unknown select changed the session")
	}
	if _, err := Transition(NewSession(), nil, objs); err == nil {
		t.Error("nil event should error")
	}
}

func TestModeString(t *testing.T) {
	if ModeUniverse.String() != "universe" || ModeDetailed.String() != "detailed" || Mode(7).String() != "unknown" {
		t.Error("Mode.String wrong")
	}
}
