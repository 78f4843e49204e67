package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthTrackAPI/internal/dateutil"
)

func TestPhaseOfPartition(t *testing.T) {
	for week := 1; week <= Weeks; week++ {
		want := Phase1
		if week >= 5 {
			want = Phase2
		}
		if week >= 9 {
			want = Phase3
		}
		assert.Equal(t, want, PhaseOf(week), "week %d", week)
	}
}

func TestCurrentWeekClamping(t *testing.T) {
	tests := []struct {
		name  string
		start string
		today string
		want  int
	}{
		{"day one", "2025-01-01", "2025-01-01", 1},
		{"day seven still week one", "2025-01-01", "2025-01-07", 1},
		{"day eight is week two", "2025-01-01", "2025-01-08", 2},
		{"last program day", "2025-01-01", "2025-03-25", 12},
		{"not yet started", "2025-06-01", "2025-01-01", 1},
		{"long finished", "2024-01-01", "2025-06-01", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentWeek(tt.start, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := CurrentWeek("bogus", "2025-01-01")
	assert.ErrorIs(t, err, dateutil.ErrParse)
}

func TestWeekNumberForSentinel(t *testing.T) {
	week, ok, err := WeekNumberFor("2025-01-01", "2025-01-08")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, week)

	// Day before the program starts.
	_, ok, err = WeekNumberFor("2025-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.False(t, ok)

	// Day 84 is the first day past the program.
	past, err := dateutil.AddDays("2025-01-01", Days)
	require.NoError(t, err)
	_, ok, err = WeekNumberFor("2025-01-01", past)
	require.NoError(t, err)
	assert.False(t, ok)

	// Day 83 is still in.
	last, err := dateutil.AddDays("2025-01-01", Days-1)
	require.NoError(t, err)
	week, ok, err = WeekNumberFor("2025-01-01", last)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, week)
}

func TestAllProgramDatesSpan(t *testing.T) {
	dates, err := AllProgramDates("2025-01-01")
	require.NoError(t, err)
	require.Len(t, dates, Days)
	assert.Equal(t, "2025-01-01", dates[0])
	assert.Equal(t, "2025-03-25", dates[Days-1])

	seen := make(map[string]bool, Days)
	for i := 1; i < len(dates); i++ {
		assert.Less(t, dates[i-1], dates[i], "dates must be strictly increasing")
	}
	for _, d := range dates {
		assert.False(t, seen[d], "duplicate date %s", d)
		seen[d] = true
	}
}

func TestDatesForWeek(t *testing.T) {
	dates, err := DatesForWeek("2025-01-01", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05", "2025-01-06", "2025-01-07"}, dates)

	dates, err = DatesForWeek("2025-01-01", 2)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-08", dates[0])

	all, err := AllProgramDates("2025-01-01")
	require.NoError(t, err)
	dates, err = DatesForWeek("2025-01-01", 12)
	require.NoError(t, err)
	assert.Equal(t, all[77:], dates)

	_, err = DatesForWeek("2025-01-01", 0)
	assert.Error(t, err)
	_, err = DatesForWeek("2025-01-01", 13)
	assert.Error(t, err)
}

func TestProgressAndRemaining(t *testing.T) {
	end, err := EndDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-25", end)

	remaining, err := RemainingDays("2025-01-01", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 83, remaining)

	remaining, err = RemainingDays("2025-01-01", "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	pct, err := ProgressPercent("2025-01-01", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, 8, pct) // week 1 of 12

	pct, err = ProgressPercent("2025-01-01", "2025-03-25")
	require.NoError(t, err)
	assert.Equal(t, 100, pct)
}

func TestGuideForWeek(t *testing.T) {
	guide, err := GuideForWeek(1)
	require.NoError(t, err)
	assert.Equal(t, Phase1, guide.Phase)
	assert.Len(t, guide.ExerciseSchedule, 7)
	assert.Len(t, guide.NutritionGuide, 7)
	assert.NotEmpty(t, guide.WeeklyGoals)

	guide, err = GuideForWeek(9)
	require.NoError(t, err)
	assert.Equal(t, Phase3, guide.Phase)

	_, err = GuideForWeek(13)
	assert.Error(t, err)
}
