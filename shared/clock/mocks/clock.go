package mocks

import (
	"lodge/shared/clock"
	"time"
)

type fixedClock struct {
	now time.Time
}

// Now implements clock.Clock.
func (c *fixedClock) Now() time.Time {
	return c.now
}

// Today implements clock.Clock.
func (c *fixedClock) Today() time.Time {
	return clock.DateOf(c.now)
}

// NewClock returns a clock frozen at now.
func NewClock(now time.Time) clock.Clock {
	return &fixedClock{now: now}
}
