// Package errors defines the error kinds a plugin invocation can fail with.
//
// Every failure aborts the invocation; the code tells the operator which
// stage broke (login, page fetch, page parsing or configuration).
package errors

import "fmt"

// ErrorCode represents a category of failure.
type ErrorCode string

const (
	// ErrCodeAuth indicates the challenge or the credential exchange failed.
	ErrCodeAuth ErrorCode = "AUTH_ERROR"

	// ErrCodeFetch indicates a status page could not be retrieved.
	ErrCodeFetch ErrorCode = "FETCH_ERROR"

	// ErrCodeParse indicates an expected element or field is missing or malformed.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeConfig indicates a missing or invalid configuration input.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
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

// Unwrap returns the underlying cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a coded error without a cause.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error around cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// NewAuthError creates a login handshake error.
func NewAuthError(message string, cause error) *Error {
	return Wrap(ErrCodeAuth, message, cause)
}

// NewFetchError creates a page retrieval error.
func NewFetchError(message string, cause error) *Error {
	return Wrap(ErrCodeFetch, message, cause)
}

// NewParseError creates an extraction error naming the page and the field
// that could not be read.
func NewParseError(page, field string, cause error) *Error {
	return Wrap(ErrCodeParse, fmt.Sprintf("page %s: cannot extract %s", page, field), cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// Sentinels for errors.Is checks against a whole kind.
var (
	ErrAuth   = New(ErrCodeAuth, "")
	ErrFetch  = New(ErrCodeFetch, "")
	ErrParse  = New(ErrCodeParse, "")
	ErrConfig = New(ErrCodeConfig, "")
)

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
