package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/user"
)

// pollInterval drives the Subscribe change poll. Postgres has no push
// equivalent of Firestore snapshots, so subscriptions poll for changes.
const pollInterval = 3 * time.Second

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, clerk_id, email, username, first_name, last_name, image_url, email_verified,
	created_at, updated_at, start_date, initial_weight, target_weight, initial_waist, target_waist`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	var startDate *string
	err := row.Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.ImageURL,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
		&startDate,
		&u.InitialWeight,
		&u.TargetWeight,
		&u.InitialWaist,
		&u.TargetWaist,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if startDate != nil {
		u.StartDate = *startDate
	}
	return u, nil
}

func (s *PostgresStore) GetUser(ctx context.Context, userID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRow(ctx, query, userID))
}

func (s *PostgresStore) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE clerk_id = $1`
	return scanUser(s.db.QueryRow(ctx, query, clerkID))
}

func (s *PostgresStore) SaveUser(ctx context.Context, u *user.User) error {
	query := `
	INSERT INTO users (id, clerk_id, email, username, first_name, last_name, image_url, email_verified,
		created_at, updated_at, start_date, initial_weight, target_weight, initial_waist, target_waist)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (id) DO UPDATE SET
		email = EXCLUDED.email,
		username = EXCLUDED.username,
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		image_url = EXCLUDED.image_url,
		email_verified = EXCLUDED.email_verified,
		updated_at = EXCLUDED.updated_at,
		start_date = EXCLUDED.start_date,
		initial_weight = EXCLUDED.initial_weight,
		target_weight = EXCLUDED.target_weight,
		initial_waist = EXCLUDED.initial_waist,
		target_waist = EXCLUDED.target_waist
	`
	var startDate *string
	if u.StartDate != "" {
		startDate = &u.StartDate
	}
	_, err := s.db.Exec(ctx, query,
		u.ID, u.ClerkID, u.Email, u.Username, u.FirstName, u.LastName, u.ImageURL, u.EmailVerified,
		u.CreatedAt, u.UpdatedAt, startDate, u.InitialWeight, u.TargetWeight, u.InitialWaist, u.TargetWaist,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, userID string) error {
	// daily_checks rows cascade.
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

const checkColumns = `date, breakfast_completed, breakfast_time, lunch_completed, lunch_time,
	dinner_completed, dinner_time, water_intake, exercise_completed, exercise_type, exercise_duration,
	sleep_hours, weight, waist, condition, memo, completed, updated_at`

func scanCheck(row pgx.Row) (*check.DailyCheck, error) {
	c := &check.DailyCheck{}
	var breakfastTime, lunchTime, dinnerTime, exerciseType, memo *string
	err := row.Scan(
		&c.Date,
		&c.BreakfastCompleted,
		&breakfastTime,
		&c.LunchCompleted,
		&lunchTime,
		&c.DinnerCompleted,
		&dinnerTime,
		&c.WaterIntake,
		&c.ExerciseCompleted,
		&exerciseType,
		&c.ExerciseDuration,
		&c.SleepHours,
		&c.Weight,
		&c.Waist,
		&c.Condition,
		&memo,
		&c.Completed,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan daily check: %w", err)
	}
	if breakfastTime != nil {
		c.BreakfastTime = *breakfastTime
	}
	if lunchTime != nil {
		c.LunchTime = *lunchTime
	}
	if dinnerTime != nil {
		c.DinnerTime = *dinnerTime
	}
	if exerciseType != nil {
		c.ExerciseType = *exerciseType
	}
	if memo != nil {
		c.Memo = *memo
	}
	return c, nil
}

func (s *PostgresStore) GetCheck(ctx context.Context, userID, date string) (*check.DailyCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM daily_checks WHERE user_id = $1 AND date = $2`
	return scanCheck(s.db.QueryRow(ctx, query, userID, date))
}

func (s *PostgresStore) LoadChecks(ctx context.Context, userID string) (map[string]check.DailyCheck, error) {
	query := `SELECT ` + checkColumns + ` FROM daily_checks WHERE user_id = $1 ORDER BY date`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily checks: %w", err)
	}
	defer rows.Close()

	checks := make(map[string]check.DailyCheck)
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		checks[c.Date] = *c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily checks: %w", err)
	}
	return checks, nil
}

func (s *PostgresStore) SaveCheck(ctx context.Context, userID string, c check.DailyCheck) error {
	query := `
	INSERT INTO daily_checks (user_id, date, breakfast_completed, breakfast_time, lunch_completed, lunch_time,
		dinner_completed, dinner_time, water_intake, exercise_completed, exercise_type, exercise_duration,
		sleep_hours, weight, waist, condition, memo, completed, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW())
	ON CONFLICT (user_id, date) DO UPDATE SET
		breakfast_completed = EXCLUDED.breakfast_completed,
		breakfast_time = EXCLUDED.breakfast_time,
		lunch_completed = EXCLUDED.lunch_completed,
		lunch_time = EXCLUDED.lunch_time,
		dinner_completed = EXCLUDED.dinner_completed,
		dinner_time = EXCLUDED.dinner_time,
		water_intake = EXCLUDED.water_intake,
		exercise_completed = EXCLUDED.exercise_completed,
		exercise_type = EXCLUDED.exercise_type,
		exercise_duration = EXCLUDED.exercise_duration,
		sleep_hours = EXCLUDED.sleep_hours,
		weight = EXCLUDED.weight,
		waist = EXCLUDED.waist,
		condition = EXCLUDED.condition,
		memo = EXCLUDED.memo,
		completed = EXCLUDED.completed,
		updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query,
		userID, c.Date, c.BreakfastCompleted, c.BreakfastTime, c.LunchCompleted, c.LunchTime,
		c.DinnerCompleted, c.DinnerTime, c.WaterIntake, c.ExerciseCompleted, c.ExerciseType, c.ExerciseDuration,
		c.SleepHours, c.Weight, c.Waist, c.Condition, c.Memo, c.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to save daily check: %w", err)
	}
	return nil
}

// Subscribe polls for changes and pushes a fresh snapshot when the user's
// checks differ from the last delivered state.
func (s *PostgresStore) Subscribe(ctx context.Context, userID string, fn ChecksFunc) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		var lastCount int
		var lastStamp time.Time
		first := true

		for {
			var count int
			var stamp *time.Time
			err := s.db.QueryRow(ctx,
				`SELECT COUNT(*), MAX(updated_at) FROM daily_checks WHERE user_id = $1`, userID,
			).Scan(&count, &stamp)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("Postgres: subscription poll for %s failed: %v", userID, err)
			} else {
				current := time.Time{}
				if stamp != nil {
					current = *stamp
				}
				if first || count != lastCount || !current.Equal(lastStamp) {
					checks, err := s.LoadChecks(ctx, userID)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Postgres: subscription reload for %s failed: %v", userID, err)
					} else {
						first = false
						lastCount = count
						lastStamp = current
						select {
						case <-ctx.Done():
							return
						default:
							fn(checks)
						}
					}
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
