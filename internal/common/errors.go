// Package common defines sentinel errors and error kinds shared by the forum
// entities, repositories and services. Callers should use errors.Is and
// errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrorNotFound reports absence of a row for a keyed lookup, update or
	// delete. It is not a failure of the store.
	ErrorNotFound = errors.New("not found")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")

	// ErrStorage is matched by every *StorageError.
	ErrStorage = errors.New("storage error")

	// ErrParentMismatch is matched when a reply names a parent comment that
	// belongs to a different post. It reaches callers wrapped in a
	// *ValidationError for field "parent_id".
	ErrParentMismatch = errors.New("parent comment belongs to another post")
)

// ValidationError reports a field value that failed a format, length or
// range check. Err, when set, is the sentinel the failure is matched by.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// WrapValidation returns a new *ValidationError for field that matches
// sentinel through errors.Is. Msg is taken from sentinel.
func WrapValidation(field string, sentinel error) *ValidationError {
	return &ValidationError{Field: field, Msg: sentinel.Error(), Err: sentinel}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError wraps a failure reported by the persistence boundary. The
// original cause stays reachable through errors.Unwrap.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a *StorageError for operation op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: db error: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) hold for any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
