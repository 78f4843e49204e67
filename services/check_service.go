package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/store"
)

// ErrDateMismatch rejects a check whose body date disagrees with the URL.
var ErrDateMismatch = errors.New("check date does not match requested date")

type CheckService struct {
	store store.Store

	mu      sync.Mutex
	subs    map[string]*subscription // userID -> active subscription
	nextGen int
}

type subscription struct {
	generation  int
	unsubscribe func()
}

func NewCheckService(s store.Store) *CheckService {
	return &CheckService{
		store: s,
		subs:  make(map[string]*subscription),
	}
}

// SaveCheck normalizes legacy fields, validates and upserts. The record for
// a (user, date) pair is replaced wholesale.
func (s *CheckService) SaveCheck(ctx context.Context, userID, date string, raw *check.RawCheck) (*check.DailyCheck, error) {
	c := raw.Normalize()
	if c.Date == "" {
		c.Date = date
	}
	if c.Date != date {
		return nil, ErrDateMismatch
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.Completed = check.FullChecklist.Complete(&c)

	if err := s.store.SaveCheck(ctx, userID, c); err != nil {
		return nil, fmt.Errorf("failed to save daily check: %w", err)
	}
	return &c, nil
}

func (s *CheckService) GetCheck(ctx context.Context, userID, date string) (*check.DailyCheck, error) {
	return s.store.GetCheck(ctx, userID, date)
}

func (s *CheckService) LoadChecks(ctx context.Context, userID string) (map[string]check.DailyCheck, error) {
	checks, err := s.store.LoadChecks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily checks: %w", err)
	}
	return checks, nil
}

// Watch installs a live subscription for the user, replacing any prior one.
// The generation counter stops a stale teardown from cancelling a newer
// subscription installed while the old one was shutting down.
func (s *CheckService) Watch(ctx context.Context, userID string, fn store.ChecksFunc) error {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	if prev, ok := s.subs[userID]; ok {
		prev.unsubscribe()
		delete(s.subs, userID)
	}
	s.mu.Unlock()

	unsubscribe, err := s.store.Subscribe(ctx, userID, fn)
	if err != nil {
		return fmt.Errorf("failed to subscribe to checks: %w", err)
	}

	s.mu.Lock()
	if cur, ok := s.subs[userID]; ok && cur.generation >= gen {
		// A later Watch won the race. Drop ours.
		s.mu.Unlock()
		unsubscribe()
		return nil
	}
	s.subs[userID] = &subscription{generation: gen, unsubscribe: unsubscribe}
	s.mu.Unlock()
	return nil
}

// Unwatch tears down the user's live subscription, if any.
func (s *CheckService) Unwatch(userID string) {
	s.mu.Lock()
	sub, ok := s.subs[userID]
	if ok {
		delete(s.subs, userID)
	}
	s.mu.Unlock()
	if ok {
		sub.unsubscribe()
	}
}

// Close tears down every live subscription.
func (s *CheckService) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[string]*subscription)
	s.mu.Unlock()
	for userID, sub := range subs {
		log.Printf("CheckService: closing subscription for user %s", userID)
		sub.unsubscribe()
	}
}
