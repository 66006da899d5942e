package lifecycle_test

import (
	"net/http"
	"testing"
	"time"

	"lodge/shared/failure"
	"lodge/shared/lifecycle"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from     lifecycle.Status
		to       lifecycle.Status
		expected bool
	}{
		{from: lifecycle.StatusPending, to: lifecycle.StatusConfirmed, expected: true},
		{from: lifecycle.StatusPending, to: lifecycle.StatusCancelled, expected: true},
		{from: lifecycle.StatusPending, to: lifecycle.StatusCompleted, expected: false},
		{from: lifecycle.StatusConfirmed, to: lifecycle.StatusCompleted, expected: true},
		{from: lifecycle.StatusConfirmed, to: lifecycle.StatusCancelled, expected: true},
		{from: lifecycle.StatusConfirmed, to: lifecycle.StatusPending, expected: false},
		{from: lifecycle.StatusCancelled, to: lifecycle.StatusPending, expected: false},
		{from: lifecycle.StatusCancelled, to: lifecycle.StatusConfirmed, expected: false},
		{from: lifecycle.StatusCompleted, to: lifecycle.StatusCancelled, expected: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))

			err := lifecycle.CheckTransition(tt.from, tt.to)
			if tt.expected {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, http.StatusConflict, failure.GetCode(err))
			}
		})
	}
}

func TestStatusSets(t *testing.T) {
	assert.Equal(t, []string{"pending", "confirmed"}, lifecycle.ActiveStatuses())
	assert.True(t, lifecycle.StatusConfirmed.IsActive())
	assert.False(t, lifecycle.StatusCompleted.IsActive())
	assert.True(t, lifecycle.StatusCancelled.IsTerminal())
	assert.True(t, lifecycle.Status("completed").Valid())
	assert.False(t, lifecycle.Status("deleted").Valid())
}

func TestCheckCancellable(t *testing.T) {
	now := time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name    string
		status  lifecycle.Status
		start   time.Time
		wantErr bool
	}{
		{name: "24h and one minute away", status: lifecycle.StatusPending, start: now.Add(24*time.Hour + time.Minute)},
		{name: "23h59m away", status: lifecycle.StatusConfirmed, start: now.Add(23*time.Hour + 59*time.Minute), wantErr: true},
		{name: "exactly 24h away", status: lifecycle.StatusPending, start: now.Add(window), wantErr: true},
		{name: "already started", status: lifecycle.StatusConfirmed, start: now.Add(-time.Hour), wantErr: true},
		{name: "cancelled far ahead", status: lifecycle.StatusCancelled, start: now.AddDate(0, 1, 0), wantErr: true},
		{name: "completed far ahead", status: lifecycle.StatusCompleted, start: now.AddDate(0, 1, 0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lifecycle.CheckCancellable(tt.status, tt.start, now, window)

			if tt.wantErr {
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCheckCancellableMessage(t *testing.T) {
	now := time.Date(2025, 5, 31, 10, 0, 0, 0, time.UTC)

	err := lifecycle.CheckCancellable(lifecycle.StatusPending, now.Add(time.Hour), now, 24*time.Hour)

	assert.EqualError(t, err, "Cancellation is only allowed up to 24 hours before check-in.")
}
