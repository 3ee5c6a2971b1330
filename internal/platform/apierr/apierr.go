package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes shared with the browser contract of /generate_gifts.
const (
	CodeInvalidContentType   = "INVALID_CONTENT_TYPE"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidAIResponse    = "INVALID_AI_RESPONSE"
	CodeIncompleteAIResponse = "INCOMPLETE_AI_RESPONSE"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternal             = "INTERNAL_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeResultNotFound       = "RESULT_NOT_FOUND"
	CodeSessionNotFound      = "SESSION_NOT_FOUND"
	CodeInvalidEvent         = "INVALID_EVENT"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Invalid(format string, args ...any) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, fmt.Errorf(format, args...))
}

// As unwraps err into an *Error, defaulting to a 500 INTERNAL_ERROR.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	if errors.Is(err, ErrNotFound) {
		return New(http.StatusNotFound, CodeNotFound, err)
	}
	return New(http.StatusInternalServerError, CodeInternal, err)
}
