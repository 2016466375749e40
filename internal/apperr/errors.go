// Package apperr defines the two failure kinds the service layer reports to its callers:
// caller-correctable validation failures and wrapped storage failures.
package apperr

import (
	"errors"
	"net/http"
)

// InternalMessage is the only text clients see for non-validation failures.
const InternalMessage = "Internal error"

// ValidationError reports input that failed a business rule. The message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DataAccessError wraps a storage-layer failure with a short description of the operation.
type DataAccessError struct {
	Message string
	Err     error
}

func (e *DataAccessError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// Validation returns a *ValidationError carrying msg.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// DataAccess wraps err as a *DataAccessError.
func DataAccess(msg string, err error) error {
	return &DataAccessError{Message: msg, Err: err}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsDataAccess reports whether err is, or wraps, a *DataAccessError.
func IsDataAccess(err error) bool {
	var dErr *DataAccessError
	return errors.As(err, &dErr)
}

// StatusCode maps err to the HTTP status the boundary responds with.
func StatusCode(err error) int {
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the text that may be sent to a client for err.
// Storage causes are never exposed.
func PublicMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return InternalMessage
}
