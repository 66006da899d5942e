package clock

import (
	"lodge/shared/timezone"
	"time"
)

// Clock is the single source of "now" for business rules that depend on time.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct{}

func New() Clock {
	return &systemClock{}
}

func (c *systemClock) Now() time.Time {
	return timezone.Now()
}

// Today returns the current calendar date at midnight UTC, the representation used for stay dates.
func (c *systemClock) Today() time.Time {
	return DateOf(c.Now())
}

// DateOf drops the time of day, keeping the calendar date of t as seen in its own location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the instant a calendar date begins in loc.
func StartOfDay(date time.Time, loc *time.Location) time.Time {
	year, month, day := date.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
