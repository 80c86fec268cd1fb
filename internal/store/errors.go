package store

import (
	"errors"
	"fmt"
)

// Kind classifies a business rejection reported by the store.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
)

// Error is a typed rejection of an atomic operation. Message is safe to
// show to callers.
type Error struct {
	Op      string
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func NotFound(op, msg string) *Error {
	return &Error{Op: op, Kind: KindNotFound, Message: msg}
}

func InvalidState(op, msg string) *Error {
	return &Error{Op: op, Kind: KindInvalidState, Message: msg}
}

func Forbidden(op, msg string) *Error {
	return &Error{Op: op, Kind: KindForbidden, Message: msg}
}

func Conflict(op, msg string) *Error {
	return &Error{Op: op, Kind: KindConflict, Message: msg}
}

// KindOf returns the rejection kind of err, if err is a store rejection.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNotFound
}
