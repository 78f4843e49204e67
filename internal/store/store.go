// Package store is the persistence layer behind the tracker. Two backends
// are interchangeable: Firestore (cloud document store) and Postgres. Both
// key daily checks by (userID, date) and upsert on save.
package store

import (
	"context"
	"errors"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/user"
)

var ErrNotFound = errors.New("not found")

// ChecksFunc receives a fresh, complete snapshot of a user's daily checks
// whenever they change.
type ChecksFunc func(map[string]check.DailyCheck)

// Store is the contract the services program against.
type Store interface {
	GetUser(ctx context.Context, userID string) (*user.User, error)
	GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error)
	SaveUser(ctx context.Context, u *user.User) error
	DeleteUser(ctx context.Context, userID string) error

	// LoadChecks returns every daily check of the user, keyed by date.
	LoadChecks(ctx context.Context, userID string) (map[string]check.DailyCheck, error)
	GetCheck(ctx context.Context, userID, date string) (*check.DailyCheck, error)
	// SaveCheck upserts: one record per (user, date), last write wins.
	SaveCheck(ctx context.Context, userID string, c check.DailyCheck) error

	// Subscribe installs a live listener for the user's checks and returns
	// the unsubscribe func. The callback never fires after unsubscribe
	// returns; ownership of the handle stays with the caller.
	Subscribe(ctx context.Context, userID string, fn ChecksFunc) (func(), error)

	Close() error
}
