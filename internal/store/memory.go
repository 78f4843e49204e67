package store

import (
	"context"
	"sync"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/user"
)

// MemoryStore keeps everything in process memory. It backs tests and local
// development runs without a database.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]user.User
	checks      map[string]map[string]check.DailyCheck
	subscribers map[string]map[int]ChecksFunc
	nextSubID   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]user.User),
		checks:      make(map[string]map[string]check.DailyCheck),
		subscribers: make(map[string]map[int]ChecksFunc),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ClerkID == clerkID {
			found := u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveUser(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	delete(s.checks, userID)
	return nil
}

func (s *MemoryStore) GetCheck(ctx context.Context, userID, date string) (*check.DailyCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checks[userID][date]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) LoadChecks(ctx context.Context, userID string) (map[string]check.DailyCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyChecks(s.checks[userID]), nil
}

func (s *MemoryStore) SaveCheck(ctx context.Context, userID string, c check.DailyCheck) error {
	s.mu.Lock()
	if s.checks[userID] == nil {
		s.checks[userID] = make(map[string]check.DailyCheck)
	}
	s.checks[userID][c.Date] = c
	snapshot := copyChecks(s.checks[userID])
	var fns []ChecksFunc
	for _, fn := range s.subscribers[userID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock so they may call back into the store.
	for _, fn := range fns {
		fn(snapshot)
	}
	return nil
}

// Subscribe delivers the current snapshot immediately, then again after every
// SaveCheck for the same user.
func (s *MemoryStore) Subscribe(ctx context.Context, userID string, fn ChecksFunc) (func(), error) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	if s.subscribers[userID] == nil {
		s.subscribers[userID] = make(map[int]ChecksFunc)
	}
	s.subscribers[userID][id] = fn
	snapshot := copyChecks(s.checks[userID])
	s.mu.Unlock()

	fn(snapshot)

	return func() {
		s.mu.Lock()
		delete(s.subscribers[userID], id)
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func copyChecks(in map[string]check.DailyCheck) map[string]check.DailyCheck {
	out := make(map[string]check.DailyCheck, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
