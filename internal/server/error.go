package server

import (
	"fmt"
	"net/http"
)

// HttpError is the JSON error body of the preview server
type HttpError struct {
	StatusCode  int          `json:"status_code"`
	Message     string       `json:"message"`
	RequestID   string       `json:"request_id,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates a new HttpError with the given status code and message
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{StatusCode: statusCode, Message: message}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

// ErrUnprocessable creates a 422 error carrying transform diagnostics
func ErrUnprocessable(message string, diagnostics []Diagnostic) *HttpError {
	e := NewHttpError(http.StatusUnprocessableEntity, message)
	e.Diagnostics = diagnostics
	return e
}
