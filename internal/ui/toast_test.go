package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/state"
)

func TestToast_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var m ToastModel
	if _, ok := m.Active(); ok || m.View() != "" {
		t.Fatal("zero toast model should be empty")
	}

	m = m.Show("saved", ToastInfo, now)
	if toast, ok := m.Active(); !ok || toast.Text != "saved" {
		t.Fatalf("Active = %+v, %v", toast, ok)
	}
	if m.Expire(now.Add(ToastTTL-time.Millisecond)).View() == "" {
		t.Error("toast expired before its TTL")
	}
	if _, ok := m.Expire(now.Add(ToastTTL)).Active(); ok {
		t.Error("toast should expire at its TTL")
	}
	if _, ok := m.Dismiss().Active(); ok {
		t.Error("Dismiss should clear the toast")
	}

	replaced := m.Show("second", ToastError, now)
	if toast, _ := replaced.Active(); toast.Text != "second" || toast.Kind != ToastError {
		t.Errorf("replacement toast = %+v", toast)
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &exo.NotFoundError{Query: "vulcan"}, `No planet matches "vulcan"`},
		{"empty query", &exo.NotFoundError{}, "Type a planet name"},
		{"no records", exo.ErrNoRecords, "no planets"},
		{"wrapped no records", fmt.Errorf("load: %w", exo.ErrNoRecords), "no planets"},
		{"http status", &exo.FetchError{URL: "u", StatusCode: 500}, "HTTP 500"},
		{"transport", &exo.FetchError{URL: "u", Err: errors.New("dial")}, "unreachable"},
		{"not placed", &state.NotPlacedError{Query: "k9", ID: "K9", Name: "Kepler-9 b"}, "Kepler-9 b is in the catalog but not placed"},
		{"parse", &exo.ParseError{Err: errors.New("bad")}, "unreadable"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorText(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("errorText = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
