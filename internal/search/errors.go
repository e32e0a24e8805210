package search

import (
	"errors"
	"fmt"
)

// Kind classifies a failed search.
type Kind int

const (
	// KindNetwork means no response was received: refused connection, timeout,
	// DNS failure or a body cut short.
	KindNetwork Kind = iota + 1
	// KindServer means the backend answered with a non-2xx status.
	KindServer
	// KindParse means the body was not a JSON array of objects.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Error is the error returned for every failed search.
type Error struct {
	Kind   Kind
	Status int // HTTP status for KindServer
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindServer:
		return fmt.Sprintf("server returned status %d", e.Status)
	case KindParse:
		return fmt.Sprintf("decode response: %v", e.Err)
	default:
		return fmt.Sprintf("execute request: %v", e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func parseError(err error) *Error {
	return &Error{Kind: KindParse, Err: err}
}
