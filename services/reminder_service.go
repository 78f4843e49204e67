package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/internal/notification"
	"healthTrackAPI/internal/program"
	"healthTrackAPI/internal/store"
	"healthTrackAPI/internal/user"
)

type PushNotificationProvider interface {
	SendPush(ctx context.Context, tokens []notification.DeviceToken, title, body string, data map[string]any) error
}

// ReminderService is a background worker that nudges users who have not
// logged a check today. It only reaches users with a registered device.
type ReminderService struct {
	store        store.Store
	registry     *notification.Registry
	pushProvider PushNotificationProvider
	interval     time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

func NewReminderService(s store.Store, registry *notification.Registry, interval time.Duration) *ReminderService {
	return &ReminderService{
		store:    s,
		registry: registry,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// SetPushProvider injects the real FCM provider from main.go. Without one
// the worker stays idle.
func (s *ReminderService) SetPushProvider(provider PushNotificationProvider) {
	s.pushProvider = provider
}

func (s *ReminderService) Start() {
	go s.run()
}

func (s *ReminderService) Stop() {
	close(s.stopChan)
	<-s.doneChan
}

func (s *ReminderService) run() {
	defer close(s.doneChan)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sendDailyReminders()
		case <-s.stopChan:
			return
		}
	}
}

func (s *ReminderService) sendDailyReminders() {
	if s.pushProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	today := dateutil.Today()
	for _, userID := range s.registry.UserIDs() {
		u, err := s.store.GetUser(ctx, userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("Reminder: failed to load user %s: %v", userID, err)
			}
			continue
		}
		if !u.Enrolled() {
			continue
		}
		if _, ok, err := program.WeekNumberFor(u.StartDate, today); err != nil || !ok {
			continue // program not running today
		}
		if _, err := s.store.GetCheck(ctx, userID, today); err == nil {
			continue // already logged today
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Printf("Reminder: failed to load check for %s: %v", userID, err)
			continue
		}

		tokens := s.registry.TokensFor(userID)
		err = s.pushProvider.SendPush(ctx, tokens,
			"Don't break the streak",
			"You haven't logged today's check yet. A minute now keeps your record going.",
			map[string]any{"type": string(notification.NotificationDailyReminder), "date": today},
		)
		if err != nil {
			log.Printf("Reminder: push to user %s failed: %v", userID, err)
		}
	}
}

// CelebrateWeekIfComplete sends a milestone push when the given save filled
// in the last missing day of its program week. Best effort, errors are
// logged and swallowed.
func (s *ReminderService) CelebrateWeekIfComplete(ctx context.Context, u *user.User, date string) {
	if s.pushProvider == nil || !u.Enrolled() {
		return
	}
	week, ok, err := program.WeekNumberFor(u.StartDate, date)
	if err != nil || !ok {
		return
	}
	dates, err := program.DatesForWeek(u.StartDate, week)
	if err != nil {
		return
	}
	records, err := s.store.LoadChecks(ctx, u.ID)
	if err != nil {
		log.Printf("Reminder: failed to load checks for %s: %v", u.ID, err)
		return
	}
	for _, d := range dates {
		if _, logged := records[d]; !logged {
			return
		}
	}

	tokens := s.registry.TokensFor(u.ID)
	err = s.pushProvider.SendPush(ctx, tokens,
		fmt.Sprintf("Week %d complete!", week),
		fmt.Sprintf("Every day of week %d is logged. Check your weekly stats to see how it went.", week),
		map[string]any{"type": string(notification.NotificationWeekComplete), "week": week},
	)
	if err != nil {
		log.Printf("Reminder: week-complete push to user %s failed: %v", u.ID, err)
	}
}
