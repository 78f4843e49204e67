// Package dateutil holds the calendar math the whole tracker is built on.
// Dates are passed around as plain "YYYY-MM-DD" strings, which zero-pad so
// lexicographic comparison matches chronological order.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// ErrParse wraps every malformed date string error. Callers must propagate
// it instead of falling back to today.
var ErrParse = errors.New("invalid date")

func Parse(date string) (time.Time, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrParse, date)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current local calendar date with no time component.
func Today() string {
	return time.Now().Format(Layout)
}

// AddDays adds n calendar days (n may be negative), handling month and year
// rollover.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the signed day count to - from, so that
// DaysBetween(d, AddDays(d, n)) == n for any n.
func DaysBetween(from, to string) (int, error) {
	a, err := Parse(from)
	if err != nil {
		return 0, err
	}
	b, err := Parse(to)
	if err != nil {
		return 0, err
	}
	// Parse pins both to UTC midnight, so the difference is a whole number
	// of days.
	return int(b.Sub(a).Hours() / 24), nil
}

// DayOfWeekName returns the English weekday name (Sunday..Saturday).
func DayOfWeekName(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

func IsToday(date string) bool {
	return date == Today()
}

func IsPast(date string) bool {
	return date < Today()
}

func IsFuture(date string) bool {
	return date > Today()
}
