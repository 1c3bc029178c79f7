package models

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind int

const (
	// KindInvalidArgument covers bad amounts, duplicate usernames and bad credentials.
	KindInvalidArgument Kind = iota + 1
	// KindNoSession is returned when an operation needs an authenticated user and there is none.
	KindNoSession
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNoSession:
		return "no session"
	default:
		return "unknown"
	}
}

// Error is a domain error carrying its kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind, so callers can test against
// ErrInvalidArgument or ErrNoSession with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrNoSession       = &Error{Kind: KindNoSession, Message: "no user logged in"}
)

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NoSession builds a KindNoSession error.
func NoSession(format string, args ...any) error {
	return &Error{Kind: KindNoSession, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
