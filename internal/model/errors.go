package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes todoey errors.
type ErrorCode string

const (
	// ErrCodeStorageWrite indicates a commit failed. Pending changes are kept.
	ErrCodeStorageWrite ErrorCode = "STORAGE_WRITE"

	// ErrCodeStorageRead indicates a fetch failed.
	ErrCodeStorageRead ErrorCode = "STORAGE_READ"

	// ErrCodeValidation indicates rejected user input (empty name or title).
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates a referenced category or item does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeAmbiguous indicates a name matched more than one category.
	ErrCodeAmbiguous ErrorCode = "AMBIGUOUS"
)

// Error is the structured error returned by the store and the list stores.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the operation that failed (e.g. "commit", "load items").
	Op string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewWriteError wraps a commit failure.
func NewWriteError(op string, err error) *Error {
	return &Error{Code: ErrCodeStorageWrite, Op: op, Message: "storage write failed", Err: err}
}

// NewReadError wraps a fetch failure.
func NewReadError(op string, err error) *Error {
	return &Error{Code: ErrCodeStorageRead, Op: op, Message: "storage read failed", Err: err}
}

// NewValidationError reports rejected input for the named field.
func NewValidationError(field, message string) *Error {
	return &Error{Code: ErrCodeValidation, Op: field, Message: message}
}

// NewNotFoundError reports a missing category or item.
func NewNotFoundError(kind, ref string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", kind, ref)}
}

// NewAmbiguousError reports a name shared by several categories.
func NewAmbiguousError(kind, ref string, matches int) *Error {
	return &Error{
		Code:    ErrCodeAmbiguous,
		Message: fmt.Sprintf("%s name %q matches %d records; use the id", kind, ref, matches),
	}
}

// HasCode returns true if err wraps an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsWriteError returns true if err is a failed commit.
func IsWriteError(err error) bool { return HasCode(err, ErrCodeStorageWrite) }

// IsReadError returns true if err is a failed fetch.
func IsReadError(err error) bool { return HasCode(err, ErrCodeStorageRead) }

// IsValidationError returns true if err is rejected input.
func IsValidationError(err error) bool { return HasCode(err, ErrCodeValidation) }

// IsNotFound returns true if err is a missing category or item.
func IsNotFound(err error) bool { return HasCode(err, ErrCodeNotFound) }
