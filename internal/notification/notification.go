// Package notification delivers reminder and milestone pushes over FCM and
// tracks which devices belong to which user.
package notification

import (
	"sync"
	"time"
)

type NotificationType string

const (
	NotificationDailyReminder NotificationType = "daily_reminder"
	NotificationWeekComplete  NotificationType = "week_complete"
	NotificationPhaseChange   NotificationType = "phase_change"
)

type DeviceToken struct {
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// Registry is an in-memory device token registry. Clients re-register their
// token on every app launch, so losing entries on restart is acceptable.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]map[string]DeviceToken // userID -> token -> device
}

func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]map[string]DeviceToken)}
}

func (r *Registry) Register(userID string, device DeviceToken) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tokens[userID] == nil {
		r.tokens[userID] = make(map[string]DeviceToken)
	}
	device.CreatedAt = time.Now()
	r.tokens[userID][device.Token] = device
}

func (r *Registry) Unregister(userID, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens[userID], token)
}

// UserIDs lists users with at least one registered device.
func (r *Registry) UserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tokens))
	for id, devices := range r.tokens {
		if len(devices) > 0 {
			out = append(out, id)
		}
	}
	return out
}

func (r *Registry) TokensFor(userID string) []DeviceToken {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DeviceToken, 0, len(r.tokens[userID]))
	for _, d := range r.tokens[userID] {
		out = append(out, d)
	}
	return out
}
