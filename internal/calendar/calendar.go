// Package calendar derives the 84-day program calendar: per-day status
// badges and completion rates for the grid view.
package calendar

import (
	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/internal/program"
)

type DayStatus string

const (
	StatusFuture     DayStatus = "future"
	StatusExcellent  DayStatus = "excellent"
	StatusGood       DayStatus = "good"
	StatusPartial    DayStatus = "partial"
	StatusIncomplete DayStatus = "incomplete"
)

// Day is one cell of the program calendar.
type Day struct {
	Date           string        `json:"date"`
	DayOfWeek      string        `json:"dayOfWeek"`
	WeekNumber     int           `json:"weekNumber"`
	Phase          program.Phase `json:"phase"`
	IsToday        bool          `json:"isToday"`
	IsPast         bool          `json:"isPast"`
	IsFuture       bool          `json:"isFuture"`
	Status         DayStatus     `json:"status"`
	CompletionRate float64       `json:"completionRate"`
}

// statusFor maps a day's completion score to its badge. Thresholds follow
// the app's traffic-light buckets: 90+ excellent, 60+ good, anything logged
// partial, the rest incomplete.
func statusFor(rate float64, logged bool) DayStatus {
	switch {
	case rate >= 90:
		return StatusExcellent
	case rate >= 60:
		return StatusGood
	case rate > 0 || logged:
		return StatusPartial
	default:
		return StatusIncomplete
	}
}

// BuildProgram returns all 84 calendar days for a program, scored against
// the given checklist. Pure: today is passed in, not read from the clock.
func BuildProgram(start, today string, records map[string]check.DailyCheck, list check.Checklist) ([]Day, error) {
	if _, err := dateutil.Parse(today); err != nil {
		return nil, err
	}
	dates, err := program.AllProgramDates(start)
	if err != nil {
		return nil, err
	}

	days := make([]Day, 0, len(dates))
	for i, date := range dates {
		week := i/program.DaysPerWeek + 1
		name, err := dateutil.DayOfWeekName(date)
		if err != nil {
			return nil, err
		}
		day := Day{
			Date:       date,
			DayOfWeek:  name,
			WeekNumber: week,
			Phase:      program.PhaseOf(week),
			IsToday:    date == today,
			IsPast:     date < today,
			IsFuture:   date > today,
		}
		if day.IsFuture {
			day.Status = StatusFuture
		} else {
			rec, logged := records[date]
			if logged {
				day.CompletionRate = list.Score(&rec)
			}
			day.Status = statusFor(day.CompletionRate, logged)
		}
		days = append(days, day)
	}
	return days, nil
}
