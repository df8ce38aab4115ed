package client

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindUnauthorized: the server rejected the token; the session is gone.
	KindUnauthorized Kind = "unauthorized"
	// KindNotAuthenticated: no token was stored, nothing was sent.
	KindNotAuthenticated Kind = "not_authenticated"
	KindAPI              Kind = "api"
	KindTransport        Kind = "transport"
	KindValidation       Kind = "validation"
)

var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrNotAuthenticated = errors.New("not authenticated")
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrNotAuthenticated:
		return e.Kind == KindNotAuthenticated
	}
	return false
}

// KindOf returns the Kind of err, or "" for errors not produced here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, 0 if none.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

func causeText(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	if e != nil {
		return e.Message
	}
	return err.Error()
}

func validationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
