// Package check holds the daily checklist record and its completion scoring.
package check

import (
	"errors"
	"fmt"
	"math"
	"time"

	"healthTrackAPI/internal/dateutil"
)

// WaterGoal is the daily water target in glasses.
const WaterGoal = 8

// ErrValidation marks a daily check with a field outside its documented
// range. Records are validated at the boundary, before aggregation sees them.
var ErrValidation = errors.New("invalid daily check")

// DailyCheck is everything a user tracks for one calendar date. One record
// per (user, date); saving overwrites the previous one.
type DailyCheck struct {
	Date string `json:"date" db:"date" firestore:"date"`

	BreakfastCompleted bool   `json:"breakfastCompleted" db:"breakfast_completed" firestore:"breakfastCompleted"`
	BreakfastTime      string `json:"breakfastTime,omitempty" db:"breakfast_time" firestore:"breakfastTime,omitempty"`
	LunchCompleted     bool   `json:"lunchCompleted" db:"lunch_completed" firestore:"lunchCompleted"`
	LunchTime          string `json:"lunchTime,omitempty" db:"lunch_time" firestore:"lunchTime,omitempty"`
	DinnerCompleted    bool   `json:"dinnerCompleted" db:"dinner_completed" firestore:"dinnerCompleted"`
	DinnerTime         string `json:"dinnerTime,omitempty" db:"dinner_time" firestore:"dinnerTime,omitempty"`

	WaterIntake int `json:"waterIntake" db:"water_intake" firestore:"waterIntake"`

	ExerciseCompleted bool   `json:"exerciseCompleted" db:"exercise_completed" firestore:"exerciseCompleted"`
	ExerciseType      string `json:"exerciseType,omitempty" db:"exercise_type" firestore:"exerciseType,omitempty"`
	ExerciseDuration  *int   `json:"exerciseDuration,omitempty" db:"exercise_duration" firestore:"exerciseDuration,omitempty"`

	SleepHours *float64 `json:"sleepHours,omitempty" db:"sleep_hours" firestore:"sleepHours,omitempty"`

	Weight *float64 `json:"weight,omitempty" db:"weight" firestore:"weight,omitempty"`
	Waist  *float64 `json:"waistCircumference,omitempty" db:"waist" firestore:"waistCircumference,omitempty"`

	Condition *int   `json:"condition,omitempty" db:"condition" firestore:"condition,omitempty"`
	Memo      string `json:"memo,omitempty" db:"memo" firestore:"memo,omitempty"`

	// Completed is a convenience flag set by clients. Aggregation recomputes
	// completion from the component fields and never trusts it.
	Completed bool `json:"completed" db:"completed" firestore:"completed"`

	UpdatedAt time.Time `json:"updatedAt,omitempty" db:"updated_at" firestore:"updatedAt,serverTimestamp"`
}

// Validate rejects records with a malformed date or fields outside their
// documented ranges: water 0-8 glasses, condition 1-10, measurements finite
// and positive.
func (c *DailyCheck) Validate() error {
	if _, err := dateutil.Parse(c.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if c.WaterIntake < 0 || c.WaterIntake > WaterGoal {
		return fmt.Errorf("%w: water intake %d out of range 0-%d", ErrValidation, c.WaterIntake, WaterGoal)
	}
	if c.Condition != nil && (*c.Condition < 1 || *c.Condition > 10) {
		return fmt.Errorf("%w: condition %d out of range 1-10", ErrValidation, *c.Condition)
	}
	if err := validMeasurement("weight", c.Weight); err != nil {
		return err
	}
	if err := validMeasurement("waist circumference", c.Waist); err != nil {
		return err
	}
	if err := validMeasurement("sleep hours", c.SleepHours); err != nil {
		return err
	}
	if c.ExerciseDuration != nil && *c.ExerciseDuration < 0 {
		return fmt.Errorf("%w: exercise duration %d is negative", ErrValidation, *c.ExerciseDuration)
	}
	return nil
}

func validMeasurement(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return fmt.Errorf("%w: %s %v is not a positive finite number", ErrValidation, name, *v)
	}
	return nil
}
