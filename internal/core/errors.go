// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Signal errors
	ErrSignalNotFound = &Error{Code: "SIGNAL_NOT_FOUND", Message: "signal not found"}
	ErrNoActiveSignal = &Error{Code: "NO_ACTIVE_SIGNAL", Message: "no active signal to execute"}

	// Source errors
	ErrSourceFailed  = &Error{Code: "SOURCE_FAILED", Message: "signal source failed"}
	ErrSourceTimeout = &Error{Code: "SOURCE_TIMEOUT", Message: "signal source timed out"}

	// Notifier errors
	ErrNotifierFailed = &Error{Code: "NOTIFIER_FAILED", Message: "notifier failed"}

	// Stream errors
	ErrStreamClosed = &Error{Code: "STREAM_CLOSED", Message: "realtime stream closed"}

	// Outcome errors
	ErrOutcomeRecorded = &Error{Code: "OUTCOME_RECORDED", Message: "outcome already recorded for signal"}
	ErrOutcomeInvalid  = &Error{Code: "OUTCOME_INVALID", Message: "outcome must be win or loss"}

	// Execution errors
	ErrClipboardUnavailable = &Error{Code: "CLIPBOARD_UNAVAILABLE", Message: "system clipboard unavailable"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
