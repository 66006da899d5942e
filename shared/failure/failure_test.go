package failure_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/shared/failure"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("check_out_date must be after check_in_date")), code: http.StatusBadRequest, message: "check_out_date must be after check_in_date"},
		{name: "bad request from string", err: failure.BadRequestFromString("email is required"), code: http.StatusBadRequest, message: "email is required"},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, message: "token expired"},
		{name: "forbidden", err: failure.Forbidden("not your booking"), code: http.StatusForbidden, message: "not your booking"},
		{name: "predefined forbidden", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
		{name: "not found", err: failure.NotFound("venue not found"), code: http.StatusNotFound, message: "venue not found"},
		{name: "conflict", err: failure.Conflict("room is fully booked"), code: http.StatusConflict, message: "room is fully booked"},
		{name: "unprocessable", err: failure.Unprocessable("too many guests"), code: http.StatusUnprocessableEntity, message: "too many guests"},
		{name: "internal", err: failure.InternalError(errors.New("connection refused")), code: http.StatusInternalServerError, message: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestNilPassthrough(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestUnwrap(t *testing.T) {
	err := failure.InternalError(fmt.Errorf("load booking: %w", sql.ErrNoRows))

	assert.ErrorIs(t, err, sql.ErrNoRows)

	var fail *failure.Failure
	assert.ErrorAs(t, err, &fail)
	assert.Equal(t, http.StatusInternalServerError, fail.Code)
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "failure", err: failure.Conflict("taken"), code: http.StatusConflict},
		{name: "wrapped failure", err: fmt.Errorf("create reservation: %w", failure.NotFound("room not found")), code: http.StatusNotFound},
		{name: "plain error", err: errors.New("boom"), code: http.StatusInternalServerError},
		{name: "nil", err: nil, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}
