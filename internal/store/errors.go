package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeNotInitialized indicates no envelope database exists where
	// one was required.
	ErrCodeNotInitialized ErrorCode = "NOT_INITIALIZED"

	// ErrCodeEnvNotFound indicates no record, live or tombstoned, has
	// ever been written for the named environment.
	ErrCodeEnvNotFound ErrorCode = "ENV_NOT_FOUND"

	// ErrCodeStorage indicates an underlying SQLite failure during an
	// append, erase, or scan.
	ErrCodeStorage ErrorCode = "STORAGE_FAILURE"
)

// StoreError is the typed failure result every store operation surfaces.
// Failures are propagated to the caller synchronously; none are recovered
// or retried internally.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the failing operation ("insert", "duplicate", ...).
	Op string

	// Env and Key identify the offending pair, when known.
	Env string
	Key string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	target := ""
	switch {
	case e.Env != "" && e.Key != "":
		target = fmt.Sprintf(" (env=%s, key=%s)", e.Env, e.Key)
	case e.Env != "":
		target = fmt.Sprintf(" (env=%s)", e.Env)
	case e.Key != "":
		target = fmt.Sprintf(" (key=%s)", e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s%s: %v", e.Code, e.Op, target, e.Err)
	}
	return fmt.Sprintf("%s: %s%s", e.Code, e.Op, target)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is an environment-not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeEnvNotFound
	}
	return false
}

// IsNotInitialized returns true if the error reports a missing envelope
// database. Uses errors.As to handle wrapped errors.
func IsNotInitialized(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotInitialized
	}
	return false
}

// NewNotInitializedError creates a StoreError for a directory without an
// envelope database.
func NewNotInitializedError(dir string) *StoreError {
	return &StoreError{
		Code: ErrCodeNotInitialized,
		Op:   "load",
		Err:  fmt.Errorf("envelope is not initialized in %s", dir),
	}
}

// NewEnvNotFoundError creates a StoreError for an unknown environment.
func NewEnvNotFoundError(env string) *StoreError {
	return &StoreError{
		Code: ErrCodeEnvNotFound,
		Op:   "check env",
		Env:  env,
	}
}

// newStorageError wraps an underlying SQLite failure with operation context.
func newStorageError(op, env, key string, err error) *StoreError {
	return &StoreError{
		Code: ErrCodeStorage,
		Op:   op,
		Env:  env,
		Key:  key,
		Err:  err,
	}
}
