// Package state holds the selection and discovery state machine and a
// thread-safe manager around it.
package state

import (
	"errors"
	"fmt"
	"sort"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/scene"
)

// Mode is the current screen of the explorer.
type Mode int

const (
	ModeUniverse Mode = iota
	ModeDetailed
)

func (m Mode) String() string {
	switch m {
	case ModeUniverse:
		return "universe"
	case ModeDetailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Session is one explorer session. Values are immutable: Transition returns
// a new Session and never mutates the one it was given.
type Session struct {
	Selected string // empty when nothing is selected
	Query    string // last successful search
	Mode     Mode

	discovered map[string]struct{}
}

// NewSession returns an unselected session in universe mode.
func NewSession() Session {
	return Session{Mode: ModeUniverse}
}

// HasSelection reports whether an object is selected.
func (s Session) HasSelection() bool {
	return s.Selected != ""
}

// IsDiscovered reports whether id has ever been selected in this session.
func (s Session) IsDiscovered(id string) bool {
	_, ok := s.discovered[id]
	return ok
}

// DiscoveredCount returns the size of the discovered set.
func (s Session) DiscoveredCount() int {
	return len(s.discovered)
}

// DiscoveredIDs returns the discovered identifiers sorted.
func (s Session) DiscoveredIDs() []string {
	ids := make([]string, 0, len(s.discovered))
	for id := range s.discovered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// discover returns a session with id in its discovered set. The set is
// copied only when it grows.
func (s Session) discover(id string) Session {
	if s.IsDiscovered(id) {
		return s
	}
	next := make(map[string]struct{}, len(s.discovered)+1)
	for k := range s.discovered {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	s.discovered = next
	return s
}

// Event is an input to Transition.
type Event interface {
	event()
}

// Select picks an object directly (mouse, keyboard cycling).
type Select struct{ ID string }

// Search selects the first object whose name or identifier contains Query.
type Search struct{ Query string }

// Randomize selects an object chosen by the caller's random source.
type Randomize struct{ ID string }

// Close dismisses the overlay and clears the selection.
type Close struct{}

// Expand opens the detailed view for the selected object.
type Expand struct{}

// Back returns from the detailed view to the universe.
type Back struct{}

func (Select) event()    {}
func (Search) event()    {}
func (Randomize) event() {}
func (Close) event()     {}
func (Expand) event()    {}
func (Back) event()      {}

// NotPlacedError reports a search that matched a cached record which is
// not part of the scene, because the scene was generated with a limit.
type NotPlacedError struct {
	Query string
	ID    string
	Name  string
}

func (e *NotPlacedError) Error() string {
	name := e.ID
	if e.Name != "" && e.Name != e.ID {
		name = fmt.Sprintf("%s (%s)", e.Name, e.ID)
	}
	return fmt.Sprintf("%s matches %q but is not placed in the universe", name, e.Query)
}

var (
	// ErrUnknownObject is returned when an event names an id not in the scene.
	ErrUnknownObject = errors.New("unknown object")

	// ErrNoSelection is returned by Expand when nothing is selected.
	ErrNoSelection = errors.New("no object selected")
)

// Transition applies ev to s. On error the returned session equals s.
func Transition(s Session, ev Event, objects []scene.Object) (Session, error) {
	switch ev := ev.(type) {
	case Select:
		return selectID(s, ev.ID, objects)
	case Randomize:
		return selectID(s, ev.ID, objects)
	case Search:
		i, err := findObject(objects, ev.Query)
		if err != nil {
			return s, err
		}
		next, err := selectID(s, objects[i].ID, objects)
		if err != nil {
			return s, err
		}
		next.Query = ev.Query
		return next, nil
	case Close:
		s.Selected = ""
		s.Mode = ModeUniverse
		return s, nil
	case Expand:
		if !s.HasSelection() {
			return s, ErrNoSelection
		}
		s.Mode = ModeDetailed
		return s, nil
	case Back:
		s.Mode = ModeUniverse
		return s, nil
	case nil:
		return s, fmt.Errorf("nil event")
	default:
		return s, fmt.Errorf("unhandled event %T", ev)
	}
}

func selectID(s Session, id string, objects []scene.Object) (Session, error) {
	if scene.IndexOf(objects, id) < 0 {
		return s, fmt.Errorf("select %q: %w", id, ErrUnknownObject)
	}
	s.Selected = id
	return s.discover(id), nil
}

// findObject returns the index of the first object whose name or id
// contains query, case-insensitively.
func findObject(objects []scene.Object, query string) (int, error) {
	recs := make([]exo.Record, len(objects))
	for i, o := range objects {
		recs[i] = exo.Record{ID: o.ID, KeplerName: o.Name}
	}
	return exo.FindByName(recs, query)
}
