package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-exoplanets/internal/exo"
	"github.com/litescript/ls-exoplanets/internal/state"
)

// ToastTTL is how long a toast stays up without a key press.
const ToastTTL = 4 * time.Second

// ToastKind selects a toast's colour.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastError
)

// Toast is a transient notification.
type Toast struct {
	Text    string
	Kind    ToastKind
	Expires time.Time
}

// ToastModel holds at most one toast; a new one replaces the old.
type ToastModel struct {
	current *Toast
}

// Show displays text until now+ToastTTL.
func (m ToastModel) Show(text string, kind ToastKind, now time.Time) ToastModel {
	m.current = &Toast{Text: text, Kind: kind, Expires: now.Add(ToastTTL)}
	return m
}

// ShowError displays err as a toast with a message suited to its kind.
func (m ToastModel) ShowError(err error, now time.Time) ToastModel {
	return m.Show(errorText(err), ToastError, now)
}

// Dismiss clears the toast.
func (m ToastModel) Dismiss() ToastModel {
	m.current = nil
	return m
}

// Expire clears the toast once its TTL has passed.
func (m ToastModel) Expire(now time.Time) ToastModel {
	if m.current != nil && !now.Before(m.current.Expires) {
		m.current = nil
	}
	return m
}

// Active returns the current toast, if any.
func (m ToastModel) Active() (Toast, bool) {
	if m.current == nil {
		return Toast{}, false
	}
	return *m.current, true
}

// View renders the toast on one line.
func (m ToastModel) View() string {
	t, ok := m.Active()
	if !ok {
		return ""
	}
	if t.Kind == ToastError {
		return errorStyle.Render("✖ " + t.Text)
	}
	return okStyle.Render("✔ " + t.Text)
}

// errorText maps the catalog and search errors to user-facing text.
func errorText(err error) string {
	var nf *exo.NotFoundError
	var fe *exo.FetchError
	var pe *exo.ParseError
	var np *state.NotPlacedError
	switch {
	case errors.As(err, &np):
		name := np.Name
		if name == "" {
			name = np.ID
		}
		return name + " is in the catalog but not placed (raise --limit)"
	case errors.As(err, &nf):
		if nf.Query == "" {
			return "Type a planet name to search"
		}
		return "No planet matches \"" + nf.Query + "\""
	case errors.Is(err, exo.ErrNoRecords):
		return "The archive returned no planets"
	case errors.As(err, &fe):
		if fe.StatusCode != 0 {
			return fmt.Sprintf("Archive answered HTTP %d (R to retry)", fe.StatusCode)
		}
		return "Archive unreachable (R to retry)"
	case errors.As(err, &pe):
		return "Archive sent an unreadable payload (R to retry)"
	default:
		return err.Error()
	}
}
