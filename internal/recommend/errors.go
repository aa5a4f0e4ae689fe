package recommend

import (
	"errors"
	"fmt"
)

// Kind classifies why a recommendation or lookup was rejected.
type Kind string

const (
	InvalidInput Kind = "InvalidInput"
	RateLimited  Kind = "RateLimited"
	NoMatch      Kind = "NoMatch"
	NotFound     Kind = "NotFound"
	Unavailable  Kind = "Unavailable"
	Internal     Kind = "Internal"
)

// Error is a rejection carrying a user-facing detail. Err holds the underlying
// cause for server-side logging and is never shown to callers.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or Internal for errors not produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func reject(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func internal(detail string, err error) *Error {
	return &Error{Kind: Internal, Detail: detail, Err: err}
}
