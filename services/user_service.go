package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/internal/program"
	"healthTrackAPI/internal/store"
	"healthTrackAPI/internal/user"
)

// ErrProgramStarted rejects attempts to re-enroll. The start date anchors
// every derived week number, so it is immutable once set.
var ErrProgramStarted = errors.New("program already started")

type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	now := time.Now()
	u := &user.User{
		ID:        uuid.New().String(),
		ClerkID:   req.ClerkID,
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		ImageURL:  req.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// GetOrCreateUser is the webhook provisioning path: idempotent on ClerkID.
func (s *UserService) GetOrCreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	existing, err := s.store.GetUserByClerkID(ctx, req.ClerkID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return s.CreateUser(ctx, req)
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if req.Username != "" {
		u.Username = req.Username
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.ImageURL != "" {
		u.ImageURL = req.ImageURL
	}
	u.UpdatedAt = time.Now()
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.store.DeleteUser(ctx, u.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// StartProgram enrolls the user with their baseline and target measurements.
func (s *UserService) StartProgram(ctx context.Context, clerkID string, req *user.StartProgramRequest) (*user.User, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u.Enrolled() {
		return nil, ErrProgramStarted
	}
	if _, err := dateutil.Parse(req.StartDate); err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}

	u.StartDate = req.StartDate
	u.InitialWeight = &req.InitialWeight
	u.TargetWeight = &req.TargetWeight
	u.InitialWaist = &req.InitialWaist
	u.TargetWaist = &req.TargetWaist
	u.UpdatedAt = time.Now()

	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save program enrollment: %w", err)
	}
	return u, nil
}

// ProgramStatus reports where the user stands in the program today.
func (s *UserService) ProgramStatus(ctx context.Context, clerkID string) (*user.ProgramStatusResponse, error) {
	u, err := s.store.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.Enrolled() {
		return nil, store.ErrNotFound
	}

	today := dateutil.Today()
	week, err := program.CurrentWeek(u.StartDate, today)
	if err != nil {
		return nil, err
	}
	end, err := program.EndDate(u.StartDate)
	if err != nil {
		return nil, err
	}
	pct, err := program.ProgressPercent(u.StartDate, today)
	if err != nil {
		return nil, err
	}
	remaining, err := program.RemainingDays(u.StartDate, today)
	if err != nil {
		return nil, err
	}

	return &user.ProgramStatusResponse{
		StartDate:       u.StartDate,
		EndDate:         end,
		CurrentWeek:     week,
		Phase:           int(program.PhaseOf(week)),
		PhaseTitle:      program.InfoFor(week).Title,
		ProgressPercent: pct,
		RemainingDays:   remaining,
	}, nil
}
