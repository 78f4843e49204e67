package check

import (
	"regexp"
	"strconv"
)

// RawCheck is the wire shape tolerated at the persistence boundary. Older
// clients wrote a two-item schema (`meals`, `exercise` free text, `water`)
// and an intermediate one stored waist under `waist` instead of
// `waistCircumference`. Normalization happens once, here; aggregation only
// ever sees the canonical DailyCheck.
type RawCheck struct {
	DailyCheck

	Meals    *bool    `json:"meals,omitempty"`
	Water    *int     `json:"water,omitempty"`
	Exercise string   `json:"exercise,omitempty"`
	WaistAlt *float64 `json:"waist,omitempty"`
}

// durationPattern matches "30분", "30 min", "30m", "30 minutes".
var durationPattern = regexp.MustCompile(`(\d+)\s*(?:분|min(?:ute)?s?|m\b)`)

// Normalize folds the legacy fields into the canonical record.
func (r *RawCheck) Normalize() DailyCheck {
	c := r.DailyCheck

	if r.Meals != nil && *r.Meals {
		c.BreakfastCompleted = true
		c.LunchCompleted = true
		c.DinnerCompleted = true
	}
	if r.Water != nil && c.WaterIntake == 0 {
		c.WaterIntake = *r.Water
	}
	if c.Waist == nil && r.WaistAlt != nil {
		c.Waist = r.WaistAlt
	}
	if r.Exercise != "" {
		c.ExerciseCompleted = true
		if c.ExerciseType == "" {
			c.ExerciseType = r.Exercise
		}
		if c.ExerciseDuration == nil {
			if minutes, ok := ParseDurationMinutes(r.Exercise); ok {
				c.ExerciseDuration = &minutes
			}
		}
	}
	return c
}

// ParseDurationMinutes pulls a minute count out of a free-text exercise
// description ("cardio 30분", "strength 40 min").
func ParseDurationMinutes(text string) (int, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return minutes, true
}
