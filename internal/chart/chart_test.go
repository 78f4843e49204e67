package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthTrackAPI/internal/check"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildSeriesOrderingAndFiltering(t *testing.T) {
	records := map[string]check.DailyCheck{
		"2025-01-10": {Date: "2025-01-10", Weight: floatPtr(78)},
		"2025-01-01": {Date: "2025-01-01", Weight: floatPtr(80)},
		"2025-01-05": {Date: "2025-01-05", Waist: floatPtr(90)},
		"2025-01-03": {Date: "2025-01-03"}, // no measurements, dropped
	}

	series := BuildSeries(records, Target{Weight: floatPtr(72)})
	require.Len(t, series, 3)
	assert.Equal(t, "2025-01-01", series[0].Date)
	assert.Equal(t, "2025-01-05", series[1].Date)
	assert.Equal(t, "2025-01-10", series[2].Date)
	for i := 1; i < len(series); i++ {
		assert.LessOrEqual(t, series[i-1].Date, series[i].Date)
	}
	require.NotNil(t, series[0].TargetWeight)
	assert.Equal(t, 72.0, *series[0].TargetWeight)
	assert.Nil(t, series[0].TargetWaist)
}

func TestLatest(t *testing.T) {
	assert.Nil(t, Latest(nil))

	records := map[string]check.DailyCheck{
		"2025-01-01": {Date: "2025-01-01", Weight: floatPtr(80)},
		"2025-01-03": {Date: "2025-01-03", Weight: floatPtr(79)},
	}
	latest := Latest(BuildSeries(records, Target{}))
	require.NotNil(t, latest)
	assert.Equal(t, "2025-01-03", latest.Date)
	assert.Equal(t, 79.0, *latest.Weight)
}

func TestComputeProgress(t *testing.T) {
	records := map[string]check.DailyCheck{
		"2025-01-01": {Date: "2025-01-01", Weight: floatPtr(80)},
		"2025-01-08": {Date: "2025-01-08", Weight: floatPtr(78.5), Waist: floatPtr(91)},
		"2025-01-15": {Date: "2025-01-15", Waist: floatPtr(89.5)},
	}
	series := BuildSeries(records, Target{})

	// Latest weight is on Jan 8, even though a later waist point exists.
	p := ComputeProgress(series, MetricWeight, 82, 72)
	assert.InDelta(t, 78.5, p.Current, 0.0001)
	assert.InDelta(t, 3.5, p.Change, 0.0001)
	assert.InDelta(t, 6.5, p.Remaining, 0.0001)

	p = ComputeProgress(series, MetricWaist, 94, 85)
	assert.InDelta(t, 89.5, p.Current, 0.0001)
	assert.InDelta(t, 4.5, p.Change, 0.0001)
	assert.InDelta(t, 4.5, p.Remaining, 0.0001)
}

func TestComputeProgressNoMeasurements(t *testing.T) {
	p := ComputeProgress(nil, MetricWeight, 82, 72)
	assert.Equal(t, 82.0, p.Current)
	assert.Equal(t, 0.0, p.Change)
	assert.Equal(t, 10.0, p.Remaining)
}
