package utils

import (
	"fmt"
	"time"
)

// DayLayout is the canonical day format used everywhere an Entry date or a
// selected date crosses a boundary. No time component, no zone.
const DayLayout = "2006-01-02"

// Day truncates t to its canonical day string.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Today returns the current canonical day.
func Today() string {
	return Day(time.Now())
}

// ParseDay validates that s is a canonical day string and returns it
// re-formatted, so "2025-1-2" style inputs are rejected rather than
// silently accepted.
func ParseDay(s string) (string, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return Day(t), nil
}
