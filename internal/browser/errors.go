package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOpen is returned by page operations on a closed session.
	ErrNotOpen = errors.New("no page is currently open")
	// ErrAlreadyOpen is returned by Open on an open session.
	ErrAlreadyOpen = errors.New("a page is already open")
)

// SessionError reports a renderer setup, navigation or lifecycle failure.
type SessionError struct {
	Op  string
	URL string
	Err error
}

func (e *SessionError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("browser %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}
