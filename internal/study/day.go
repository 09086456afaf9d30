package study

import (
	"fmt"
	"time"
)

// Day is a civil calendar date in the user's local time, formatted as
// 2006-01-02. It is the date half of a calendar entry's composite key.
type Day string

const dayLayout = "2006-01-02"

// DayOf truncates a point in time to the local calendar day it falls on.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Time returns midnight local time of the day.
func (d Day) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("time.ParseInLocation(%q) > %w", d, err)
	}
	return t, nil
}

// AddDays returns the day n calendar days later (or earlier for negative n).
func (d Day) AddDays(n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

// Before reports whether d falls strictly before other. Malformed days
// compare lexically, which matches chronological order for the fixed layout.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}

func (d Day) String() string {
	return string(d)
}
