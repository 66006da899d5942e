// Package failure carries an HTTP status alongside an error so handlers can answer without inspecting causes.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with the status code it should be answered with.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the error a failure was built from, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), cause: err}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	return newFailure(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

// NotFound takes the message to show, usually "<entity> not found".
func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg}
}

// Unprocessable is for well formed requests the domain rules reject.
func Unprocessable(msg string) error {
	return &Failure{Code: http.StatusUnprocessableEntity, Message: msg}
}

// InternalError wraps err as a 500. A nil err stays nil.
func InternalError(err error) error {
	return newFailure(http.StatusInternalServerError, err)
}

// GetCode returns the status of the outermost failure in err's chain, or 500 when there is none.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
