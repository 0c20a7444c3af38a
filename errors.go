package rescale

import "fmt"

// Error represents a Rescale client error.
//
// Every failure returned by this package is an *Error. Use [errors.Is]
// against the sentinel values to classify it, or [errors.As] to reach the
// HTTP status and response body:
//
//	var apiErr *rescale.Error
//	if errors.As(err, &apiErr) && errors.Is(err, rescale.ErrRequest) {
//	    log.Printf("status %d: %s", apiErr.Status, apiErr.Body)
//	}
type Error struct {
	// Code identifies the error class. See the sentinel errors below.
	Code string

	// Message is a human-readable description.
	Message string

	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Body is the raw response body for REQUEST_FAILED and AUTHENTICATION
	// errors returned by the server.
	Body string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rescale: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("rescale: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Error codes.
const (
	CodeAuthentication = "AUTHENTICATION"
	CodeRequest        = "REQUEST_FAILED"
	CodeInvalidState   = "INVALID_STATE"
	CodeTransport      = "TRANSPORT"
	CodeValidation     = "VALIDATION"
)

// Sentinel errors.
var (
	ErrAuthentication = &Error{Code: CodeAuthentication, Message: "authentication failed", Status: 401}
	ErrRequest        = &Error{Code: CodeRequest, Message: "request failed"}
	ErrInvalidState   = &Error{Code: CodeInvalidState, Message: "invalid state"}
	ErrTransport      = &Error{Code: CodeTransport, Message: "transport failure"}
	ErrValidation     = &Error{Code: CodeValidation, Message: "validation failed"}
)

func newError(code, message string, status int, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

func invalidState(format string, args ...any) *Error {
	return newError(CodeInvalidState, fmt.Sprintf(format, args...), 0, nil)
}
