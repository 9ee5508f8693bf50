package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // debug mode only
}

// CustomError carries an error code and HTTP status alongside the cause.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches any CustomError with the same code, so wrapped copies made by
// WithCause still compare equal to the predefined values.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of e wrapping err.
func (e *CustomError) WithCause(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// WithMessage returns a copy of e with a more specific message.
func (e *CustomError) WithMessage(msg string) *CustomError {
	return &CustomError{Code: e.Code, Message: msg, Status: e.Status, Err: e.Err}
}

// NewError creates a CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ToResponse converts any error into a status code and response body. Errors
// that are not CustomErrors become internal errors.
func ToResponse(err error, debug bool) (int, ErrorResponse) {
	var ce *CustomError
	if !errors.As(err, &ce) {
		ce = ErrInternalError.WithCause(err)
	}
	resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
	if debug && ce.Err != nil {
		resp.Details = ce.Err.Error()
	}
	return ce.Status, resp
}

const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeRequestTimeout   = "REQUEST_TIMEOUT"    // 408
	ErrCodeTooLarge         = "REQUEST_TOO_LARGE"  // 413
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

var (
	ErrInvalidRequest   = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound         = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrMethodNotAllowed = NewError(ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed, nil)
	ErrRequestTimeout   = NewError(ErrCodeRequestTimeout, "request timeout", http.StatusRequestTimeout, nil)
	ErrRequestTooLarge  = NewError(ErrCodeTooLarge, "request body too large", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests  = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	ErrInternalError      = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service unavailable", http.StatusServiceUnavailable, nil)

	ErrUnknownPreference    = NewError("UNKNOWN_PREFERENCE", "unknown dietary preference", http.StatusBadRequest, nil)
	ErrRecipeNotFound       = NewError("RECIPE_NOT_FOUND", "recipe not found", http.StatusNotFound, nil)
	ErrFavoritesUnavailable = NewError("FAVORITES_UNAVAILABLE", "favorites store unavailable", http.StatusServiceUnavailable, nil)
)
