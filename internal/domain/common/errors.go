package common

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NewNotFound(entity string) error {
	return NotFoundError{Entity: entity}
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// ConflictError signals that a write collides with existing state,
// e.g. a second user registering an already-taken email.
type ConflictError struct {
	Entity  string
	Message string
}

func (e ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

func NewConflict(entity, message string) error {
	return ConflictError{Entity: entity, Message: message}
}

func IsConflict(err error) bool {
	var c ConflictError
	return errors.As(err, &c)
}
