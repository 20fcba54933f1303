package metalarchives

import (
	"errors"
	"fmt"
)

// ErrNotFound means the backend answered and the requested record does not
// exist. It is a normal empty result, not a failure.
var ErrNotFound = errors.New("metalarchives: not found")

// ErrNoResults means a search completed with zero matches.
var ErrNoResults = errors.New("metalarchives: no search results")

// RequestError wraps transient transport and server-side failures. Callers
// degrade these to "no data" instead of propagating them to the host.
type RequestError struct {
	URL        string
	StatusCode int // 0 when the transport itself failed
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("metalarchives: request %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("metalarchives: request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a network-level fault worth treating
// as "no data for now" rather than a hard failure.
func IsTransient(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
