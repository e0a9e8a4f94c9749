package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-06-12")
	assert.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 12, parsed.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("12/06/2025")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestWeekBounds_Weekday(t *testing.T) {
	// Thursday belongs to the week starting the previous Monday
	monday, sunday := WeekBounds(date("2025-06-12"))
	assert.Equal(t, date("2025-06-09"), monday)
	assert.Equal(t, date("2025-06-15"), sunday)
}

func TestWeekBounds_Monday(t *testing.T) {
	monday, sunday := WeekBounds(date("2025-06-09"))
	assert.Equal(t, date("2025-06-09"), monday)
	assert.Equal(t, date("2025-06-15"), sunday)
}

func TestWeekBounds_SundayFoldsBack(t *testing.T) {
	// A Sunday closes the week that started six days earlier
	monday, sunday := WeekBounds(date("2025-06-15"))
	assert.Equal(t, date("2025-06-09"), monday)
	assert.Equal(t, date("2025-06-15"), sunday)
}

func TestWeekBounds_AcrossMonthBoundary(t *testing.T) {
	monday, sunday := WeekBounds(date("2025-07-01"))
	assert.Equal(t, date("2025-06-30"), monday)
	assert.Equal(t, date("2025-07-06"), sunday)
}

func TestWeekNumber(t *testing.T) {
	assert.Equal(t, 1, WeekNumber(date("2025-01-01")))
	assert.Equal(t, 1, WeekNumber(date("2025-01-07")))
	assert.Equal(t, 2, WeekNumber(date("2025-01-08")))
	assert.Equal(t, 23, WeekNumber(date("2025-06-09")))
}

func TestActiveOn_InclusiveBounds(t *testing.T) {
	start := date("2025-01-01")
	end := datePtr("2025-03-31")

	assert.True(t, ActiveOn(start, end, date("2025-01-01")))
	assert.True(t, ActiveOn(start, end, date("2025-03-31")))
	assert.True(t, ActiveOn(start, end, date("2025-02-15")))
	assert.False(t, ActiveOn(start, end, date("2024-12-31")))
	assert.False(t, ActiveOn(start, end, date("2025-04-01")))
}

func TestActiveOn_OpenEnded(t *testing.T) {
	start := date("2025-01-01")

	assert.True(t, ActiveOn(start, nil, date("2025-01-01")))
	assert.True(t, ActiveOn(start, nil, date("2030-12-31")))
	assert.False(t, ActiveOn(start, nil, date("2024-12-31")))
}

func TestOverlaps(t *testing.T) {
	from := date("2025-06-09")
	to := date("2025-06-15")

	// Fully inside the window
	assert.True(t, Overlaps(date("2025-06-10"), datePtr("2025-06-11"), from, to))
	// Straddles the window
	assert.True(t, Overlaps(date("2025-06-01"), datePtr("2025-06-30"), from, to))
	// Touches only the first day
	assert.True(t, Overlaps(date("2025-06-01"), datePtr("2025-06-09"), from, to))
	// Touches only the last day
	assert.True(t, Overlaps(date("2025-06-15"), datePtr("2025-06-20"), from, to))
	// Open-ended, started before the window
	assert.True(t, Overlaps(date("2025-01-01"), nil, from, to))
	// Ended before the window
	assert.False(t, Overlaps(date("2025-05-01"), datePtr("2025-06-08"), from, to))
	// Starts after the window
	assert.False(t, Overlaps(date("2025-06-16"), nil, from, to))
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	stamped := time.Date(2025, time.June, 12, 23, 45, 0, 0, loc)

	assert.Equal(t, date("2025-06-12"), DateOnly(stamped))
}
