// Package service contains the business logic behind every endpoint
package service

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
	// KindService is a failure of an outside collaborator such as mail or
	// object storage
	KindService
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindService:
		return "service"
	default:
		return "internal"
	}
}

// Error is returned by every service method. Message is safe to show to
// the caller, Err is the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s, %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func validationErr(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func authErr(msg string) error       { return &Error{Kind: KindAuth, Message: msg} }
func notFoundErr(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func conflictErr(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }

func serviceErr(msg string, err error) error {
	return &Error{Kind: KindService, Message: msg, Err: err}
}

func internalErr(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal when err isn't an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}
