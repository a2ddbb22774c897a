// Package errors defines the coded errors rove reports.
//
// Every code has the shape ERR_NNN_NAME, and the leading digit of NNN
// picks the category: 1 config, 2 backend, 3 filesystem, 4 validation,
// 5 internal.
package errors

// Category groups related error codes.
type Category string

const (
	CategoryConfig     Category = "CONFIG"
	CategoryBackend    Category = "BACKEND"
	CategoryFilesystem Category = "FILESYSTEM"
	CategoryValidation Category = "VALIDATION"
	CategoryInternal   Category = "INTERNAL"
)

// Severity says how bad an error is. Fatal means the run cannot
// continue; Error means the operation failed; Warning means degraded.
type Severity string

const (
	SeverityFatal   Severity = "FATAL"
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

const (
	// Config (1xx).
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigParse    = "ERR_102_CONFIG_PARSE"
	ErrCodeConfigInvalid  = "ERR_103_CONFIG_INVALID"
	ErrCodeUnknownBackend = "ERR_110_UNKNOWN_BACKEND"

	// Backend (2xx).
	ErrCodeBackendStart  = "ERR_201_BACKEND_START"
	ErrCodeBackendExit   = "ERR_202_BACKEND_EXIT"
	ErrCodeBackendOutput = "ERR_203_BACKEND_OUTPUT"

	// Filesystem (3xx).
	ErrCodeRootNotFound = "ERR_301_ROOT_NOT_FOUND"
	ErrCodeRootNotDir   = "ERR_302_ROOT_NOT_DIR"
	ErrCodePathResolve  = "ERR_303_PATH_RESOLVE"

	// Validation (4xx).
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeBadPattern   = "ERR_402_BAD_PATTERN"

	// Internal (5xx).
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode maps a code to its category by the first digit
// after the ERR_ prefix. Malformed codes land in CategoryInternal.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryBackend
	case '3':
		return CategoryFilesystem
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode assigns severity. Only an unusable corpus root is
// fatal; everything else leaves room to continue or retry.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeRootNotFound, ErrCodeRootNotDir:
		return SeverityFatal
	}
	return SeverityError
}
