package lifecycle

import (
	"fmt"
	"slices"
	"time"

	"lodge/shared/failure"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

const ErrCancellationWindowClosed = "Cancellation is only allowed up to %d hours before check-in."

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ActiveStatuses are the statuses that occupy a resource.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	return slices.Contains(AllStatuses(), s)
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanTransition(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// CheckTransition returns a conflict failure when from cannot move to to.
func CheckTransition(from, to Status) error {
	if from.CanTransition(to) {
		return nil
	}

	return failure.Conflict(fmt.Sprintf("cannot change status from %s to %s", from, to)) // nolint:wrapcheck
}

// CheckCancellable allows a cancel only for an active reservation whose start is more than window away.
func CheckCancellable(status Status, start, now time.Time, window time.Duration) error {
	if !status.IsActive() {
		return failure.BadRequestFromString(fmt.Sprintf("A %s reservation cannot be cancelled.", status)) // nolint:wrapcheck
	}

	if start.Sub(now) <= window {
		return failure.BadRequestFromString(fmt.Sprintf(ErrCancellationWindowClosed, int(window.Hours()))) // nolint:wrapcheck
	}

	return nil
}
