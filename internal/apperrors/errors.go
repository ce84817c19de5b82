package apperrors

import "fmt"

// Kind classifies an error so the HTTP layer can map it to a status code.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindInternal   Kind = "INTERNAL_ERROR"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed, missing, or out-of-enum input. Detected
// before any write begins.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing or soft-deleted target.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation surfaced by the database.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected failure. The wrapped error is logged but
// never exposed to the caller.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

func is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

func IsValidation(err error) bool { return is(err, KindValidation) }
func IsNotFound(err error) bool   { return is(err, KindNotFound) }
func IsConflict(err error) bool   { return is(err, KindConflict) }
