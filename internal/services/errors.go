package services

import (
	"errors"

	"github.com/dantebozzuti27/baseline-video/internal/store"
)

// Kind is the caller-facing outcome of a failed workflow operation.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindInvalidState Kind = "invalid_state"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server_error"
)

// Error is an outcome safe to return to callers. Two errors match with
// errors.Is when their kinds are equal.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Message: "authentication required"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "not allowed"}
	ErrInvalidInput = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidState = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrServer       = &Error{Kind: KindServer, Message: "internal server error"}
)

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func invalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// KindOf reports the outcome kind of err. Errors that are not outcomes are
// server errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// fromStore translates a store rejection into an outcome. ok is false for
// infrastructure failures.
func fromStore(err error) (*Error, bool) {
	var se *store.Error
	if !errors.As(err, &se) {
		return nil, false
	}
	switch se.Kind {
	case store.KindNotFound:
		return &Error{Kind: KindNotFound, Message: se.Message}, true
	case store.KindInvalidState:
		return &Error{Kind: KindInvalidState, Message: se.Message}, true
	case store.KindForbidden:
		return &Error{Kind: KindForbidden, Message: se.Message}, true
	case store.KindConflict:
		return &Error{Kind: KindConflict, Message: se.Message}, true
	}
	return nil, false
}
