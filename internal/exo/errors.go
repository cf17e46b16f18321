package exo

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoRecords is returned when the archive answered successfully but the
// payload held no rows. It is kept apart from FetchError so callers can tell
// "source unreachable" from "source returned nothing".
var ErrNoRecords = errors.New("archive returned no records")

// FetchError reports a transport failure or a non-success HTTP status.
type FetchError struct {
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d %s",
			e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a payload that could not be decoded into records.
type ParseError struct {
	Offset int64 // byte offset reported by the decoder, if known
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("parse KOI payload at byte %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("parse KOI payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports a search that matched no cached record.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	if e.Query == "" {
		return "no planet name given"
	}
	return fmt.Sprintf("no planet matching %q", e.Query)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
