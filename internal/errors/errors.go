// Package errors provides centralized error definitions for the fitsched
// codebase. It defines sentinel errors for every failure kind the stores can
// produce, context-carrying error types for store and schedule failures, and
// re-exports of the standard library helpers so callers only need this import.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Credential-related sentinel errors
var (
	// ErrDuplicateUser indicates that a username is already registered.
	ErrDuplicateUser = New("username already registered")
	// ErrInvalidCredentials indicates a failed username/password match.
	ErrInvalidCredentials = New("invalid username or password")
	// ErrUnknownUser indicates a reference to a username that does not exist
	// or does not have the required role.
	ErrUnknownUser = New("unknown user")
)

// Session-related sentinel errors
var (
	// ErrSessionNotFound indicates that a session ID is absent from the store.
	ErrSessionNotFound = New("session not found")
	// ErrInvalidTransition indicates a status change the lifecycle forbids.
	ErrInvalidTransition = New("invalid status transition")
	// ErrImmutableSession indicates an edit attempt on a session that is no
	// longer scheduled.
	ErrImmutableSession = New("session is no longer editable")
	// ErrNotSessionOwner indicates an operation on a session that belongs
	// to a different user.
	ErrNotSessionOwner = New("session belongs to another user")
	// ErrSessionCanceled indicates an attempt to join a canceled session.
	ErrSessionCanceled = New("session has been canceled")
)

// Store-related sentinel errors
var (
	// ErrMalformedRecord indicates a store line that does not parse into the
	// expected field count. Loads skip such lines; they are never fatal.
	ErrMalformedRecord = New("malformed record")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrStoreLocked indicates that the store file is locked by another
	// process.
	ErrStoreLocked = New("store is locked by another process")
)

// StoreError represents a failure while reading or writing a flat-file store.
// It carries the store path and, for parse failures, the offending line number.
type StoreError struct {
	Path    string
	Line    int
	message string
	cause   error
}

// NewStoreError creates a StoreError for the given store path.
func NewStoreError(path, message string, cause error) *StoreError {
	return &StoreError{Path: path, message: message, cause: cause}
}

// WithLine records the 1-based line number the failure refers to.
func (e *StoreError) WithLine(line int) *StoreError {
	e.Line = line
	return e
}

// Error returns the formatted error message.
func (e *StoreError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.Path))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}

	prefix := "store error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("store error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target error.
func (e *StoreError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// ScheduleError represents a failure of a session operation. It carries the
// session ID the operation referred to.
type ScheduleError struct {
	SessionID string
	message   string
	cause     error
}

// NewScheduleError creates a ScheduleError.
func NewScheduleError(message string, cause error) *ScheduleError {
	return &ScheduleError{message: message, cause: cause}
}

// WithSessionID adds the session ID to the error context.
func (e *ScheduleError) WithSessionID(id string) *ScheduleError {
	e.SessionID = id
	return e
}

// Error returns the formatted error message.
func (e *ScheduleError) Error() string {
	prefix := "schedule error"
	if e.SessionID != "" {
		prefix = fmt.Sprintf("schedule error [session=%s]", e.SessionID)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.cause
}

// Is reports whether this error matches the target error.
func (e *ScheduleError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsUserFacing reports whether the error carries a message that is safe and
// useful to show to the interactive user. Everything derived from the sentinel
// errors above is user-facing; raw I/O failures are not.
func IsUserFacing(err error) bool {
	for _, sentinel := range []error{
		ErrDuplicateUser,
		ErrInvalidCredentials,
		ErrUnknownUser,
		ErrSessionNotFound,
		ErrInvalidTransition,
		ErrImmutableSession,
		ErrNotSessionOwner,
		ErrSessionCanceled,
		ErrMalformedRecord,
		ErrInvalidInput,
		ErrStoreLocked,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
