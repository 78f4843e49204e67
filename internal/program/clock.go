// Package program models the fixed 12-week (84-day) tracked regimen: which
// week and phase a date falls in relative to a user's start date, plus the
// static phase guidance shipped with the program.
package program

import (
	"fmt"
	"math"

	"healthTrackAPI/internal/dateutil"
)

const (
	Weeks       = 12
	DaysPerWeek = 7
	Days        = Weeks * DaysPerWeek // 84
)

// Phase is one of the three 4-week blocks of the program. It is always
// derived from a week number, never stored on its own.
type Phase int

const (
	Phase1 Phase = 1
	Phase2 Phase = 2
	Phase3 Phase = 3
)

// PhaseOf maps weeks 1-4 to Phase 1, 5-8 to Phase 2 and 9-12 to Phase 3.
// It is total: out-of-range weeks are pushed into the nearest phase.
func PhaseOf(week int) Phase {
	switch {
	case week <= 4:
		return Phase1
	case week <= 8:
		return Phase2
	default:
		return Phase3
	}
}

// CurrentWeek returns the week number the given day falls in, clamped to
// [1,12]: a program not yet started reads week 1 and a finished one week 12.
// The clamping is a display convenience; use WeekNumberFor to test whether a
// date is actually inside the program.
func CurrentWeek(start, today string) (int, error) {
	days, err := dateutil.DaysBetween(start, today)
	if err != nil {
		return 0, err
	}
	week := days/DaysPerWeek + 1
	if week < 1 {
		week = 1
	}
	if week > Weeks {
		week = Weeks
	}
	return week, nil
}

// WeekNumberFor returns the 1-based week number of target within the program,
// or ok=false when target falls outside [start, start+84).
func WeekNumberFor(start, target string) (week int, ok bool, err error) {
	days, err := dateutil.DaysBetween(start, target)
	if err != nil {
		return 0, false, err
	}
	if days < 0 || days >= Days {
		return 0, false, nil
	}
	return days/DaysPerWeek + 1, true, nil
}

// AllProgramDates returns the 84 consecutive dates of the program in
// ascending order, starting at start.
func AllProgramDates(start string) ([]string, error) {
	t, err := dateutil.Parse(start)
	if err != nil {
		return nil, err
	}
	dates := make([]string, Days)
	for i := 0; i < Days; i++ {
		dates[i] = dateutil.Format(t.AddDate(0, 0, i))
	}
	return dates, nil
}

// DatesForWeek returns the 7 dates of the given week (1-12).
func DatesForWeek(start string, week int) ([]string, error) {
	if week < 1 || week > Weeks {
		return nil, fmt.Errorf("week %d out of range 1-%d", week, Weeks)
	}
	t, err := dateutil.Parse(start)
	if err != nil {
		return nil, err
	}
	offset := (week - 1) * DaysPerWeek
	dates := make([]string, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		dates[i] = dateutil.Format(t.AddDate(0, 0, offset+i))
	}
	return dates, nil
}

// EndDate returns the last day of the program (start + 83).
func EndDate(start string) (string, error) {
	return dateutil.AddDays(start, Days-1)
}

// RemainingDays returns how many program days are left after today, never
// negative.
func RemainingDays(start, today string) (int, error) {
	end, err := EndDate(start)
	if err != nil {
		return 0, err
	}
	remaining, err := dateutil.DaysBetween(today, end)
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ProgressPercent returns the overall program progress 0-100 based on the
// current (clamped) week.
func ProgressPercent(start, today string) (int, error) {
	week, err := CurrentWeek(start, today)
	if err != nil {
		return 0, err
	}
	pct := int(math.Round(float64(week) / float64(Weeks) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}
