package errors

import (
	"fmt"
)

// RoveError is the coded error type everything in rove reports through.
// The code pins category and severity; the rest is context for the CLI
// and the log.
type RoveError struct {
	// Code identifies the failure, e.g. "ERR_110_UNKNOWN_BACKEND".
	Code string

	// Message is the human-readable description.
	Message string

	// Category groups codes by their leading digit.
	Category Category

	// Severity says how the caller should treat the failure.
	Severity Severity

	// Details carries extra key-value context.
	Details map[string]string

	// Cause is the wrapped underlying error, if any.
	Cause error

	// Suggestion tells the user what to try.
	Suggestion string
}

// Error renders as "[CODE] message".
func (e *RoveError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause to the errors chain helpers.
func (e *RoveError) Unwrap() error {
	return e.Cause
}

// Is matches two RoveErrors by code, so errors.Is can compare against a
// sentinel built with the same code.
func (e *RoveError) Is(target error) bool {
	t, ok := target.(*RoveError)
	return ok && e.Code == t.Code
}

// WithDetail attaches one key-value pair, returning e for chaining.
func (e *RoveError) WithDetail(key, value string) *RoveError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion sets the user-facing hint, returning e for chaining.
func (e *RoveError) WithSuggestion(suggestion string) *RoveError {
	e.Suggestion = suggestion
	return e
}

// New builds a RoveError, deriving category and severity from the code.
func New(code string, message string, cause error) *RoveError {
	return &RoveError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap lifts an existing error into a coded one, reusing its message.
// Wrapping nil stays nil.
func Wrap(code string, err error) *RoveError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError reports invalid configuration.
func ConfigError(message string, cause error) *RoveError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// BackendError reports a failed external tool run.
func BackendError(message string, cause error) *RoveError {
	return New(ErrCodeBackendExit, message, cause)
}

// FilesystemError reports a path that could not be resolved or read.
func FilesystemError(message string, cause error) *RoveError {
	return New(ErrCodePathResolve, message, cause)
}

// ValidationError reports rejected input.
func ValidationError(message string, cause error) *RoveError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError reports a bug.
func InternalError(message string, cause error) *RoveError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal reports whether err carries fatal severity anywhere in its
// chain. Fatal failures abort the whole operation.
func IsFatal(err error) bool {
	re, ok := asRove(err)
	return ok && re.Severity == SeverityFatal
}

// GetCode returns the code of the first RoveError in err's chain, or ""
// when there is none.
func GetCode(err error) string {
	if re, ok := asRove(err); ok {
		return re.Code
	}
	return ""
}

// GetCategory returns the category of the first RoveError in err's
// chain, or "" when there is none.
func GetCategory(err error) Category {
	if re, ok := asRove(err); ok {
		return re.Category
	}
	return ""
}
