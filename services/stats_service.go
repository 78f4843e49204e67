package services

import (
	"context"
	"errors"
	"fmt"

	"healthTrackAPI/internal/calendar"
	"healthTrackAPI/internal/chart"
	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/internal/program"
	"healthTrackAPI/internal/stats"
	"healthTrackAPI/internal/store"
	"healthTrackAPI/internal/user"
)

// ErrNotEnrolled marks requests that need a program start date the user has
// not set yet.
var ErrNotEnrolled = errors.New("user has not started a program")

// StatsService glues persisted records to the pure aggregation core. It
// reads the clock once per request and passes an explicit today down, so
// every computation inside stays deterministic.
type StatsService struct {
	store store.Store
	list  check.Checklist
}

func NewStatsService(s store.Store) *StatsService {
	return &StatsService{store: s, list: check.FullChecklist}
}

func (s *StatsService) enrolled(ctx context.Context, clerkID string) (*user.User, map[string]check.DailyCheck, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.Enrolled() {
		return nil, nil, ErrNotEnrolled
	}
	records, err := s.store.LoadChecks(ctx, u.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load daily checks: %w", err)
	}
	return u, records, nil
}

func (s *StatsService) WeeklyStat(ctx context.Context, clerkID string, week int) (*stats.WeeklyStat, error) {
	u, records, err := s.enrolled(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return stats.ComputeWeeklyStat(u.StartDate, week, records, s.list)
}

func (s *StatsService) AllWeeklyStats(ctx context.Context, clerkID string) ([]*stats.WeeklyStat, error) {
	u, records, err := s.enrolled(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return stats.AllWeeklyStats(u.StartDate, records, s.list)
}

func (s *StatsService) Summary(ctx context.Context, clerkID string) (*stats.Summary, error) {
	u, records, err := s.enrolled(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	baseline := stats.Baseline{Weight: u.InitialWeight, Waist: u.InitialWaist}
	targets := chart.Target{Weight: u.TargetWeight, Waist: u.TargetWaist}
	return stats.ComputeSummary(u.StartDate, dateutil.Today(), records, baseline, targets, s.list)
}

func (s *StatsService) Calendar(ctx context.Context, clerkID string) ([]calendar.Day, error) {
	u, records, err := s.enrolled(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	return calendar.BuildProgram(u.StartDate, dateutil.Today(), records, s.list)
}

// ChartSeries returns the charted points plus, when the baseline and target
// for the metric are known, the current/change/remaining arithmetic.
func (s *StatsService) ChartSeries(ctx context.Context, clerkID string, metric chart.Metric) ([]chart.Point, *chart.Progress, error) {
	u, records, err := s.enrolled(ctx, clerkID)
	if err != nil {
		return nil, nil, err
	}
	targets := chart.Target{Weight: u.TargetWeight, Waist: u.TargetWaist}
	series := chart.BuildSeries(records, targets)

	var initial, target *float64
	switch metric {
	case chart.MetricWeight:
		initial, target = u.InitialWeight, u.TargetWeight
	case chart.MetricWaist:
		initial, target = u.InitialWaist, u.TargetWaist
	}
	if initial == nil || target == nil {
		return series, nil, nil
	}
	p := chart.ComputeProgress(series, metric, *initial, *target)
	return series, &p, nil
}

// Guide returns the weekly exercise and nutrition program for the given
// week, defaulting to the user's current week when week is 0.
func (s *StatsService) Guide(ctx context.Context, clerkID string, week int) (*program.WeeklyProgram, error) {
	if week == 0 {
		u, err := s.store.GetUserByClerkID(ctx, clerkID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		if !u.Enrolled() {
			return nil, ErrNotEnrolled
		}
		week, err = program.CurrentWeek(u.StartDate, dateutil.Today())
		if err != nil {
			return nil, err
		}
	}
	guide, err := program.GuideForWeek(week)
	if err != nil {
		return nil, err
	}
	return &guide, nil
}
