// Package stats folds daily check records into weekly and program-level
// summaries. Every function here is pure: results depend only on the
// arguments, the clock is never read directly.
package stats

import (
	"healthTrackAPI/internal/chart"
	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/program"
)

// Baseline carries the measurements taken at program start.
type Baseline struct {
	Weight *float64 `json:"weight,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
}

// WeeklyStat is the derived summary for one program week. It is recomputed
// on demand and never persisted.
type WeeklyStat struct {
	WeekNumber int           `json:"weekNumber"`
	Phase      program.Phase `json:"phase"`
	DaysLogged int           `json:"daysLogged"`

	MealCompletionRate float64 `json:"mealCompletionRate"`
	WaterAverageIntake float64 `json:"waterAverageIntake"`

	ExerciseDays         int `json:"exerciseDays"`
	TotalExerciseMinutes int `json:"totalExerciseMinutes"`

	AverageWeight *float64 `json:"averageWeight,omitempty"`
	AverageWaist  *float64 `json:"averageWaist,omitempty"`
	WeightChange  *float64 `json:"weightChange,omitempty"`
	WaistChange   *float64 `json:"waistChange,omitempty"`

	AchievementRate float64 `json:"achievementRate"`
}

// ComputeWeeklyStat summarizes one week of records.
//
// Denominator rules: rates over logged behavior (meals, achievement) divide
// by the number of days actually logged, while the water average divides by
// the fixed week length because a day without a record means no water was
// tracked. Weight/waist change is week-local, first logged measurement minus
// last, and only reported when the week holds at least two measurements.
func ComputeWeeklyStat(start string, week int, records map[string]check.DailyCheck, list check.Checklist) (*WeeklyStat, error) {
	dates, err := program.DatesForWeek(start, week)
	if err != nil {
		return nil, err
	}

	stat := &WeeklyStat{
		WeekNumber: week,
		Phase:      program.PhaseOf(week),
	}

	var (
		logged     int
		waterTotal int
		mealsDone  int
		scoreTotal float64
		weights    []float64
		waists     []float64
	)
	for _, date := range dates {
		rec, ok := records[date]
		if !ok {
			continue
		}
		logged++
		waterTotal += rec.WaterIntake
		if rec.BreakfastCompleted && rec.LunchCompleted && rec.DinnerCompleted {
			mealsDone++
		}
		if rec.ExerciseCompleted {
			stat.ExerciseDays++
		}
		if rec.ExerciseDuration != nil {
			stat.TotalExerciseMinutes += *rec.ExerciseDuration
		}
		scoreTotal += list.Score(&rec)
		if rec.Weight != nil {
			weights = append(weights, *rec.Weight)
		}
		if rec.Waist != nil {
			waists = append(waists, *rec.Waist)
		}
	}

	stat.DaysLogged = logged
	if logged > 0 {
		stat.MealCompletionRate = clampRate(float64(mealsDone) / float64(logged) * 100)
		stat.AchievementRate = clampRate(scoreTotal / float64(logged))
	}
	// Missing days count as zero glasses, so the denominator stays 7.
	stat.WaterAverageIntake = float64(waterTotal) / float64(program.DaysPerWeek)

	stat.AverageWeight = average(weights)
	stat.AverageWaist = average(waists)
	stat.WeightChange = firstMinusLast(weights)
	stat.WaistChange = firstMinusLast(waists)

	return stat, nil
}

// AllWeeklyStats returns one WeeklyStat per program week, in order. Weeks
// without any records still appear with zeroed rates.
func AllWeeklyStats(start string, records map[string]check.DailyCheck, list check.Checklist) ([]*WeeklyStat, error) {
	out := make([]*WeeklyStat, 0, program.Weeks)
	for week := 1; week <= program.Weeks; week++ {
		stat, err := ComputeWeeklyStat(start, week, records, list)
		if err != nil {
			return nil, err
		}
		out = append(out, stat)
	}
	return out, nil
}

// Summary is the program-level rollup shown on the dashboard.
type Summary struct {
	CurrentWeek     int           `json:"currentWeek"`
	Phase           program.Phase `json:"phase"`
	ProgressPercent int           `json:"progressPercent"`
	RemainingDays   int           `json:"remainingDays"`

	DaysLogged      int     `json:"daysLogged"`
	DaysCompleted   int     `json:"daysCompleted"`
	AchievementRate float64 `json:"achievementRate"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	WeightProgress *chart.Progress `json:"weightProgress,omitempty"`
	WaistProgress  *chart.Progress `json:"waistProgress,omitempty"`
}

// ComputeSummary rolls the whole program up to the given day. Baseline and
// target deltas come from the latest charted measurement, the same source
// the chart endpoint uses.
func ComputeSummary(start, today string, records map[string]check.DailyCheck, baseline Baseline, targets chart.Target, list check.Checklist) (*Summary, error) {
	week, err := program.CurrentWeek(start, today)
	if err != nil {
		return nil, err
	}
	pct, err := program.ProgressPercent(start, today)
	if err != nil {
		return nil, err
	}
	remaining, err := program.RemainingDays(start, today)
	if err != nil {
		return nil, err
	}
	dates, err := program.AllProgramDates(start)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		CurrentWeek:     week,
		Phase:           program.PhaseOf(week),
		ProgressPercent: pct,
		RemainingDays:   remaining,
	}

	var scoreTotal float64
	run := 0
	for _, date := range dates {
		if date > today {
			break
		}
		rec, ok := records[date]
		if !ok {
			run = 0
			continue
		}
		run++
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
		s.DaysLogged++
		scoreTotal += list.Score(&rec)
		if list.Complete(&rec) {
			s.DaysCompleted++
		}
	}
	// The streak survives when today itself has not been logged yet.
	if _, loggedToday := records[today]; loggedToday {
		s.CurrentStreak = run
	} else {
		s.CurrentStreak = trailingRun(dates, today, records)
	}
	if s.DaysLogged > 0 {
		s.AchievementRate = clampRate(scoreTotal / float64(s.DaysLogged))
	}

	series := chart.BuildSeries(records, targets)
	if baseline.Weight != nil && targets.Weight != nil {
		p := chart.ComputeProgress(series, chart.MetricWeight, *baseline.Weight, *targets.Weight)
		s.WeightProgress = &p
	}
	if baseline.Waist != nil && targets.Waist != nil {
		p := chart.ComputeProgress(series, chart.MetricWaist, *baseline.Waist, *targets.Waist)
		s.WaistProgress = &p
	}
	return s, nil
}

// trailingRun counts consecutive logged days ending yesterday.
func trailingRun(dates []string, today string, records map[string]check.DailyCheck) int {
	run := 0
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] >= today {
			continue
		}
		if _, ok := records[dates[i]]; !ok {
			break
		}
		run++
	}
	return run
}

func average(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	avg := sum / float64(len(vs))
	return &avg
}

func firstMinusLast(vs []float64) *float64 {
	if len(vs) < 2 {
		return nil
	}
	d := vs[0] - vs[len(vs)-1]
	return &d
}

func clampRate(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
