package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used across the API.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly truncates a time to its calendar date at UTC midnight. All
// aggregation comparisons are whole-day comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ActiveOn reports whether a date window covers day. Bounds are inclusive; a
// nil end means the window is open-ended.
func ActiveOn(start time.Time, end *time.Time, day time.Time) bool {
	d := DateOnly(day)
	if DateOnly(start).After(d) {
		return false
	}
	if end == nil {
		return true
	}
	return !DateOnly(*end).Before(d)
}

// Overlaps reports whether a date window touches any day of [from, to].
func Overlaps(start time.Time, end *time.Time, from, to time.Time) bool {
	if DateOnly(start).After(DateOnly(to)) {
		return false
	}
	if end == nil {
		return true
	}
	return !DateOnly(*end).Before(DateOnly(from))
}

// WeekBounds returns the Monday and Sunday of the week containing t. A Sunday
// belongs to the week that started six days earlier, not to the week it would
// begin under Sunday-first conventions.
func WeekBounds(t time.Time) (monday, sunday time.Time) {
	d := DateOnly(t)
	offset := 1 - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		offset = -6
	}
	monday = d.AddDate(0, 0, offset)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeekNumber returns the 1-based week-of-year number counted in whole 7-day
// blocks from January 1st. Not ISO 8601 numbering.
func WeekNumber(t time.Time) int {
	d := DateOnly(t)
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(d.Sub(jan1)/(7*24*time.Hour)) + 1
}
