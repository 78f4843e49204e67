package dateutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tm, err := Parse("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", Format(tm))

	for _, bad := range []string{"", "2025-1-15", "15/01/2025", "2025-13-01", "not a date"} {
		_, err := Parse(bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, ErrParse))
	}
}

func TestAddDaysRollover(t *testing.T) {
	got, err := AddDays("2025-01-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", got)

	got, err = AddDays("2024-12-31", 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", got)

	// Leap day
	got, err = AddDays("2024-02-28", 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", got)

	got, err = AddDays("2025-01-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", got)
}

func TestDaysBetweenRoundTrip(t *testing.T) {
	for _, n := range []int{-400, -84, -7, -1, 0, 1, 7, 83, 84, 365} {
		d, err := AddDays("2025-01-01", n)
		require.NoError(t, err)
		got, err := DaysBetween("2025-01-01", d)
		require.NoError(t, err)
		assert.Equal(t, n, got, "n=%d", n)
	}
}

func TestDaysBetweenSigned(t *testing.T) {
	got, err := DaysBetween("2025-01-08", "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, -7, got)

	_, err = DaysBetween("garbage", "2025-01-01")
	assert.ErrorIs(t, err, ErrParse)
}

func TestDayOfWeekName(t *testing.T) {
	// 2025-01-01 was a Wednesday.
	name, err := DayOfWeekName("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Wednesday", name)

	name, err = DayOfWeekName("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, "Sunday", name)
}

func TestTodayRelative(t *testing.T) {
	today := Today()
	assert.True(t, IsToday(today))
	assert.False(t, IsPast(today))
	assert.False(t, IsFuture(today))

	yesterday, err := AddDays(today, -1)
	require.NoError(t, err)
	assert.True(t, IsPast(yesterday))
	assert.False(t, IsFuture(yesterday))

	tomorrow, err := AddDays(today, 1)
	require.NoError(t, err)
	assert.True(t, IsFuture(tomorrow))
	assert.False(t, IsPast(tomorrow))
}
