package services

import (
	"errors"
	"fmt"
)

// Error kinds shared by the person and address services.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
)

// Error carries one of the kinds above plus a message fit for API clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func persistenceFailure(format string, args ...interface{}) error {
	return &Error{Kind: ErrPersistence, Message: fmt.Sprintf(format, args...)}
}
