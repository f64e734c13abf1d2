package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types carried in the response envelope
const (
	TypeNotFound     = "not_found"
	TypeForbidden    = "forbidden"
	TypeConflict     = "conflict"
	TypeBadRequest   = "bad_request"
	TypeUnauthorized = "unauthorized"
	TypeInternal     = "internal"
)

// CustomError is a domain failure with the HTTP status it maps to
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

func newError(code int, typ, format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    typ,
	}
}

// NotFound reports a referenced entity that does not exist
func NotFound(format string, args ...interface{}) *CustomError {
	return newError(http.StatusNotFound, TypeNotFound, format, args...)
}

// Forbidden reports a failed authorization predicate
func Forbidden(format string, args ...interface{}) *CustomError {
	return newError(http.StatusForbidden, TypeForbidden, format, args...)
}

// Conflict reports a uniqueness or invariant violation
func Conflict(format string, args ...interface{}) *CustomError {
	return newError(http.StatusConflict, TypeConflict, format, args...)
}

// BadRequest reports malformed input or a cross-entity mismatch
func BadRequest(format string, args ...interface{}) *CustomError {
	return newError(http.StatusBadRequest, TypeBadRequest, format, args...)
}

// Unauthorized reports a missing, invalid or expired credential
func Unauthorized(format string, args ...interface{}) *CustomError {
	return newError(http.StatusUnauthorized, TypeUnauthorized, format, args...)
}

// AsCustomError extracts a CustomError from an error chain
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
