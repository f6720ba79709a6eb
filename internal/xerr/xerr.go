// Package xerr defines the small error hierarchy shared across the engines
// and adapters: InputShape, InvalidPuzzle, Contradiction, MultipleSolutions,
// and TransportError. Cancelled is deliberately not an error type — it's an
// acknowledged request outcome, not a failure.
package xerr

import (
	"errors"
	"fmt"
)

// Kind tags which of the five error categories an error belongs to.
type Kind int

const (
	InputShape Kind = iota
	InvalidPuzzle
	Contradiction
	MultipleSolutions
	TransportError
)

func (k Kind) String() string {
	switch k {
	case InputShape:
		return "InputShape"
	case InvalidPuzzle:
		return "InvalidPuzzle"
	case Contradiction:
		return "Contradiction"
	case MultipleSolutions:
		return "MultipleSolutions"
	case TransportError:
		return "TransportError"
	default:
		return "Unknown"
	}
}

// Error wraps a message with its Kind so callers can branch on category
// without string matching.
type Error struct {
	Kind Kind
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// New builds an *Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, err: err}
}

// Is reports whether err (or anything it wraps) is an *Error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
