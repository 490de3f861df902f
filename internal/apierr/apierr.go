// Package apierr defines the coded errors returned by the HTTP API and how
// they are rendered.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// Code identifies a class of failure. The string form is part of the wire
// format.
type Code string

const (
	CodeUnauthenticated Code = "unauthenticated"
	CodeForbidden       Code = "forbidden"
	CodeNotFound        Code = "not_found"
	CodeInvalidArgument Code = "invalid_argument"
	CodeAlreadyExists   Code = "already_exists"
	CodeUnavailable     Code = "unavailable"
	CodeInternal        Code = "internal"
)

// HTTPStatus maps a code to its HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error with a code and, for validation failures, the name of
// the offending field.
type Error struct {
	code  Code
	field string
	err   error
}

// New wraps err with a code.
func New(code Code, err error) *Error {
	return &Error{code: code, err: err}
}

// Errorf creates a coded error from a format string.
func Errorf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Errorf(format, args...))
}

// Invalid creates an invalid_argument error naming field.
func Invalid(field string, err error) *Error {
	return NewField(CodeInvalidArgument, field, err)
}

// NewField wraps err with a code and the name of the field it concerns.
func NewField(code Code, field string, err error) *Error {
	return &Error{code: code, field: field, err: err}
}

func (e *Error) Error() string {
	if e.field != "" {
		return fmt.Sprintf("%s: %s: %v", e.code, e.field, e.err)
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's code.
func (e *Error) Code() Code {
	return e.code
}

// Field returns the offending field, if any.
func (e *Error) Field() string {
	return e.field
}

// Message returns the text shown to API clients. Internal errors never
// expose their cause.
func (e *Error) Message() string {
	if e.code == CodeInternal {
		return "internal server error"
	}
	if e.err == nil {
		return string(e.code)
	}
	return e.err.Error()
}

// CodeOf returns the code of err, or CodeInternal if err carries none.
func CodeOf(err error) Code {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.code
	}
	return CodeInternal
}

// Body is the JSON shape of an error response.
type Body struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Write renders err as a JSON error response. Errors without a code are
// treated as internal and logged.
func Write(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = New(CodeInternal, err)
	}
	if apiErr.code == CodeInternal {
		slog.Error("Internal error", "error", err)
	}
	if apiErr.code == CodeUnavailable {
		w.Header().Set("Retry-After", "1")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.code.HTTPStatus())
	json.NewEncoder(w).Encode(Body{
		Code:    apiErr.code,
		Message: apiErr.Message(),
		Field:   apiErr.field,
	})
}
