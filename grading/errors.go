package grading

import (
	"errors"
	"fmt"
)

// Sentinels returned by repository implementations. The store maps them to the
// typed errors below before they reach a caller.
var (
	ErrNotFound  = errors.New("grading: record not found")
	ErrDuplicate = errors.New("grading: duplicate record")
)

// ValidationError reports a submission with missing required identifiers.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grading: missing required field %q", e.Field)
}

// NotFoundError reports an operation targeting an entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("grading: %s %s not found", e.Entity, e.ID)
}

// StorageError wraps a persistence failure. The operation is not partially
// committed and the caller may retry it as a whole.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("grading: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
