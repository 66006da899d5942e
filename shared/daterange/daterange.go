package daterange

import (
	"errors"
	"fmt"
	"lodge/shared/constant"
	"time"
)

const hoursPerDay = 24

var (
	ErrInvalidRange = errors.New("end date must be after start date")
	ErrInvalidDate  = errors.New("date must use the YYYY-MM-DD format")
)

// Range is the half-open interval [Start, End) of calendar dates, kept at midnight UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (Range, error) {
	rng := Range{Start: dateOnly(start), End: dateOnly(end)}
	if !rng.End.After(rng.Start) {
		return Range{}, ErrInvalidRange
	}

	return rng, nil
}

// SingleDay is the range occupied by a one day event: [date, date+1).
func SingleDay(date time.Time) Range {
	start := dateOnly(date)

	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// Parse builds a range from two YYYY-MM-DD strings.
func Parse(start, end string) (Range, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}

	endDate, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}

	return New(startDate, endDate)
}

func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constant.DateOnlyFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return date, nil
}

// Overlaps reports whether [a, b) and [c, d) share at least one instant.
// Touching ranges do not overlap, so a checkout day can be someone else's check-in.
func Overlaps(a, b, c, d time.Time) bool {
	return a.Before(d) && c.Before(b)
}

func (r Range) Overlaps(other Range) bool {
	return Overlaps(r.Start, r.End, other.Start, other.End)
}

func (r Range) Nights() int {
	return DaysBetween(r.Start, r.End)
}

func (r Range) Contains(date time.Time) bool {
	date = dateOnly(date)

	return !date.Before(r.Start) && date.Before(r.End)
}

func (r Range) String() string {
	return r.Start.Format(constant.DateOnlyFormat) + ".." + r.End.Format(constant.DateOnlyFormat)
}

// DaysBetween counts whole calendar days from start to end, ignoring time of day.
func DaysBetween(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours() / hoursPerDay)
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
