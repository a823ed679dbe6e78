// Package dates holds day-granular helpers over time.Time.
// Every value returned here is normalized to midnight UTC.
package dates

import (
	"fmt"
	"iter"
	"time"
)

// Format is the ISO-8601 day layout used by the API and the CLI.
const Format = "2006-01-02"

// Day is the length of one calendar day.
const Day = 24 * time.Hour

// Truncate drops the time-of-day part of t and moves it to UTC, keeping the calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// New returns the normalized day for year, month and day.
func New(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current day.
func Today() time.Time { return Truncate(time.Now()) }

// AddDays returns the day n calendar days after t. Negative n moves backwards.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return New(y, m, d+n)
}

// Parse reads a day in Format. Single digit months and days are accepted.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q want format %q: %w", s, Format, err)
	}
	return Truncate(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) time.Time {
	t, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Between iterates every day from start to end, both included.
func Between(start, end time.Time) iter.Seq[time.Time] {
	start, end = Truncate(start), Truncate(end)
	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = AddDays(d, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DaysBetween counts the days from start to end, both included. It is 0 when end is before start.
func DaysBetween(start, end time.Time) int {
	start, end = Truncate(start), Truncate(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/Day) + 1
}

// WeekEnd returns the Sunday closing the week of t.
func WeekEnd(t time.Time) time.Time {
	t = Truncate(t)
	return AddDays(t, (7-int(t.Weekday()))%7)
}

// MonthEnd returns the last day of the month of t.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	return New(y, m+1, 0)
}

// YearEnd returns December 31st of the year of t.
func YearEnd(t time.Time) time.Time {
	return New(t.Year(), time.December, 31)
}

// PeriodEnds lists the period ends from start to end, with end itself appended when it
// does not fall on one. next maps a day to the end of its period.
func PeriodEnds(start, end time.Time, next func(time.Time) time.Time) []time.Time {
	var ends []time.Time
	end = Truncate(end)
	for d := next(start); !d.After(end); d = next(AddDays(d, 1)) {
		ends = append(ends, d)
	}
	if len(ends) == 0 || !ends[len(ends)-1].Equal(end) {
		ends = append(ends, end)
	}
	return ends
}
