package services

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func invalidErr(err error) error {
	return &ValidationError{Message: err.Error(), Err: err}
}

// StorageError wraps I/O failures. Its message is never sent to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
