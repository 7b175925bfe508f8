package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing and for
// mapping failures onto exit-code classes.
type ErrorCode string

const (
	// General errors
	ErrUnknown    ErrorCode = "UNKNOWN"
	ErrInternal   ErrorCode = "INTERNAL"
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// Specifier errors
	ErrMalformedSpecifier   ErrorCode = "MALFORMED_SPECIFIER"
	ErrUnknownTool          ErrorCode = "UNKNOWN_TOOL"
	ErrConflictingSpecifier ErrorCode = "CONFLICTING_SPECIFIER"

	// Resolver errors
	ErrVersionNotFound     ErrorCode = "VERSION_NOT_FOUND"
	ErrAmbiguousVersion    ErrorCode = "AMBIGUOUS_VERSION"
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"

	// Install errors
	ErrCorruptArchive     ErrorCode = "CORRUPT_ARCHIVE"
	ErrBuildFailed        ErrorCode = "BUILD_FAILED"
	ErrNetworkUnavailable ErrorCode = "NETWORK_UNAVAILABLE"

	// Ledger errors
	ErrLedgerCorrupt ErrorCode = "LEDGER_CORRUPT"
	ErrLedgerLocked  ErrorCode = "LEDGER_LOCKED"

	// Switcher errors
	ErrInstallNotFound  ErrorCode = "INSTALL_NOT_FOUND"
	ErrAmbiguousDefault ErrorCode = "AMBIGUOUS_DEFAULT"
	ErrDanglingDefault  ErrorCode = "DANGLING_DEFAULT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// SuiupError represents a structured error with code and details.
type SuiupError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface.
func (e *SuiupError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *SuiupError) Unwrap() error {
	return e.Wrapped
}

// Is matches on error code so tests and callers can branch with
// errors.Is against a code-bearing sentinel.
func (e *SuiupError) Is(target error) bool {
	var targetErr *SuiupError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SuiupError with the given code and message.
func New(code ErrorCode, message string) *SuiupError {
	return &SuiupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SuiupError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *SuiupError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a SuiupError.
func Wrap(err error, code ErrorCode, message string) *SuiupError {
	if err == nil {
		return nil
	}
	return &SuiupError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SuiupError {
	if err == nil {
		return nil
	}
	return &SuiupError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error.
func (e *SuiupError) WithDetail(key string, value interface{}) *SuiupError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, or ErrUnknown for
// errors that did not originate here.
func GetCode(err error) ErrorCode {
	var se *SuiupError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
