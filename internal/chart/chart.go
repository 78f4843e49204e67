// Package chart derives the weight/waist trend series rendered by clients.
package chart

import (
	"sort"

	"healthTrackAPI/internal/check"
)

// Metric selects which measurement a chart tracks.
type Metric string

const (
	MetricWeight Metric = "weight"
	MetricWaist  Metric = "waist"
)

// Target carries the goal values drawn as reference lines.
type Target struct {
	Weight *float64 `json:"weight,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
}

// Point is one charted day. Only dates with at least one measurement become
// points.
type Point struct {
	Date         string   `json:"date"`
	Weight       *float64 `json:"weight,omitempty"`
	Waist        *float64 `json:"waist,omitempty"`
	TargetWeight *float64 `json:"targetWeight,omitempty"`
	TargetWaist  *float64 `json:"targetWaist,omitempty"`
}

// Progress is the dashboard arithmetic around the latest measurement:
// current value, change from the baseline and distance to the target.
// Everything showing these numbers derives them from here.
type Progress struct {
	Current   float64 `json:"current"`
	Change    float64 `json:"change"`
	Remaining float64 `json:"remaining"`
}

// BuildSeries extracts the charted points from the records map, ascending by
// date. Dates sort as strings; the zero-padded format makes that equivalent
// to chronological order without re-parsing.
func BuildSeries(records map[string]check.DailyCheck, target Target) []Point {
	var series []Point
	for date, rec := range records {
		if rec.Weight == nil && rec.Waist == nil {
			continue
		}
		series = append(series, Point{
			Date:         date,
			Weight:       rec.Weight,
			Waist:        rec.Waist,
			TargetWeight: target.Weight,
			TargetWaist:  target.Waist,
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// Latest returns the newest point of the series, or nil when it is empty.
func Latest(series []Point) *Point {
	if len(series) == 0 {
		return nil
	}
	return &series[len(series)-1]
}

func (p *Point) value(metric Metric) *float64 {
	if metric == MetricWaist {
		return p.Waist
	}
	return p.Weight
}

// ComputeProgress reads the newest measurement of the given metric off the
// series and derives the three dashboard scalars. With no measurement yet
// the baseline stands in as the current value.
func ComputeProgress(series []Point, metric Metric, initial, target float64) Progress {
	current := initial
	for i := len(series) - 1; i >= 0; i-- {
		if v := series[i].value(metric); v != nil {
			current = *v
			break
		}
	}
	return Progress{
		Current:   current,
		Change:    initial - current,
		Remaining: current - target,
	}
}
