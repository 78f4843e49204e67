package check

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fullDay() *DailyCheck {
	return &DailyCheck{
		Date:               "2025-01-01",
		BreakfastCompleted: true,
		LunchCompleted:     true,
		DinnerCompleted:    true,
		WaterIntake:        8,
		ExerciseCompleted:  true,
		ExerciseDuration:   intPtr(30),
		SleepHours:         floatPtr(7.5),
		Weight:             floatPtr(80),
		Waist:              floatPtr(90),
		Condition:          intPtr(8),
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, fullDay().Validate())

	bad := fullDay()
	bad.Date = "01-01-2025"
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.WaterIntake = 9
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.WaterIntake = -1
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.Condition = intPtr(11)
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.Weight = floatPtr(math.NaN())
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.Waist = floatPtr(math.Inf(1))
	assert.ErrorIs(t, bad.Validate(), ErrValidation)

	bad = fullDay()
	bad.ExerciseDuration = intPtr(-5)
	assert.ErrorIs(t, bad.Validate(), ErrValidation)
}

func TestFullChecklistScore(t *testing.T) {
	assert.Equal(t, 100.0, FullChecklist.Score(fullDay()))
	assert.True(t, FullChecklist.Complete(fullDay()))

	empty := &DailyCheck{Date: "2025-01-01"}
	assert.Equal(t, 0.0, FullChecklist.Score(empty))
	assert.False(t, FullChecklist.Complete(empty))

	// Three of nine items met.
	partial := &DailyCheck{
		Date:               "2025-01-01",
		BreakfastCompleted: true,
		LunchCompleted:     true,
		ExerciseCompleted:  true,
	}
	assert.InDelta(t, 100.0/3, FullChecklist.Score(partial), 0.0001)

	// Water below the goal does not count.
	partial.WaterIntake = 7
	assert.InDelta(t, 100.0/3, FullChecklist.Score(partial), 0.0001)
	partial.WaterIntake = 8
	assert.InDelta(t, 4.0/9*100, FullChecklist.Score(partial), 0.0001)
}

func TestScoreDeterminism(t *testing.T) {
	day := fullDay()
	day.Weight = nil
	first := FullChecklist.Score(day)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FullChecklist.Score(day))
	}
}

func TestLegacyChecklist(t *testing.T) {
	day := &DailyCheck{
		Date:               "2025-01-01",
		BreakfastCompleted: true,
		LunchCompleted:     true,
		DinnerCompleted:    true,
	}
	assert.Equal(t, 50.0, LegacyChecklist.Score(day))
	assert.False(t, LegacyChecklist.Complete(day))

	day.ExerciseCompleted = true
	assert.Equal(t, 100.0, LegacyChecklist.Score(day))
	assert.True(t, LegacyChecklist.Complete(day))

	// One missing meal breaks the diet item.
	day.DinnerCompleted = false
	assert.Equal(t, 50.0, LegacyChecklist.Score(day))
}

func TestScoreNeverNaN(t *testing.T) {
	assert.Equal(t, 0.0, FullChecklist.Score(nil))
	assert.Equal(t, 0.0, Checklist{}.Score(fullDay()))
	score := FullChecklist.Score(&DailyCheck{})
	assert.False(t, math.IsNaN(score))
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestNormalizeLegacyFields(t *testing.T) {
	raw := &RawCheck{
		DailyCheck: DailyCheck{Date: "2025-01-01"},
		Meals:      boolPtr(true),
		Water:      intPtr(5),
		Exercise:   "cardio 30분",
	}
	c := raw.Normalize()
	assert.True(t, c.BreakfastCompleted)
	assert.True(t, c.LunchCompleted)
	assert.True(t, c.DinnerCompleted)
	assert.Equal(t, 5, c.WaterIntake)
	assert.True(t, c.ExerciseCompleted)
	assert.Equal(t, "cardio 30분", c.ExerciseType)
	require.NotNil(t, c.ExerciseDuration)
	assert.Equal(t, 30, *c.ExerciseDuration)
}

func TestNormalizePrefersCanonicalFields(t *testing.T) {
	raw := &RawCheck{
		DailyCheck: DailyCheck{
			Date:             "2025-01-01",
			WaterIntake:      8,
			ExerciseType:     "strength",
			ExerciseDuration: intPtr(45),
			Waist:            floatPtr(88),
		},
		Water:    intPtr(3),
		Exercise: "cardio 30min",
		WaistAlt: floatPtr(99),
	}
	c := raw.Normalize()
	assert.Equal(t, 8, c.WaterIntake)
	assert.Equal(t, "strength", c.ExerciseType)
	assert.Equal(t, 45, *c.ExerciseDuration)
	assert.Equal(t, 88.0, *c.Waist)
}

func TestNormalizeWaistAltFallback(t *testing.T) {
	raw := &RawCheck{
		DailyCheck: DailyCheck{Date: "2025-01-01"},
		WaistAlt:   floatPtr(91.5),
	}
	c := raw.Normalize()
	require.NotNil(t, c.Waist)
	assert.Equal(t, 91.5, *c.Waist)
}

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"cardio 30분", 30, true},
		{"run 45 min", 45, true},
		{"swim 60m", 60, true},
		{"strength 20 minutes", 20, true},
		{"yoga", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseDurationMinutes(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func boolPtr(v bool) *bool { return &v }
