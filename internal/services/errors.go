package services

import (
	"errors"
	"fmt"
)

// Kind classifies workflow failures so the HTTP layer can pick a status code.
type Kind int

const (
	KindUnexpected Kind = iota
	KindUnauthorized
	KindNotFound
	KindConfiguration
	KindPersistence
	KindNoEntries
	KindSummarization
	KindInvalid
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	case KindPersistence:
		return "persistence"
	case KindNoEntries:
		return "no_entries"
	case KindSummarization:
		return "summarization"
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Persistence call sites.
const (
	OpCheck  = "check"
	OpFetch  = "fetch"
	OpSave   = "save"
	OpDelete = "delete"
)

// Error is returned by every service. Message is already localised for the caller.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var s string
	if e.Op != "" {
		s = fmt.Sprintf("%s (%s): %s", e.Kind, e.Op, e.Message)
	} else {
		s = fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindUnexpected when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
