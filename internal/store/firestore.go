package store

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/user"
)

const (
	usersCollection  = "users"
	checksCollection = "dailyChecks"
)

// FirestoreStore keeps user profiles in users/{id} and daily checks in
// dailyChecks/{userId}_{date}, mirroring the web client's document layout.
type FirestoreStore struct {
	client *firestore.Client
}

// checkDoc wraps a daily check with the owning user so checks can be
// queried per user.
type checkDoc struct {
	check.DailyCheck
	UserID string `firestore:"userId"`
}

// NewFirestoreStore initializes the client. Credentials come from the
// FIREBASE_SERVICE_ACCOUNT_JSON environment variable (Base64 encoded) with a
// local service account key file as fallback.
func NewFirestoreStore(ctx context.Context, localFilePath string) (*FirestoreStore, error) {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials from FIREBASE_SERVICE_ACCOUNT_JSON: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Firestore: Initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("Firestore: Initializing from local file: %s.", localFilePath)
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firestore client: %v", err)
	}

	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) GetUser(ctx context.Context, userID string) (*user.User, error) {
	snap, err := s.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u := &user.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return u, nil
}

func (s *FirestoreStore) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	iter := s.client.Collection(usersCollection).Where("clerkId", "==", clerkID).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by clerk id: %w", err)
	}
	u := &user.User{}
	if err := snap.DataTo(u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return u, nil
}

func (s *FirestoreStore) SaveUser(ctx context.Context, u *user.User) error {
	_, err := s.client.Collection(usersCollection).Doc(u.ID).Set(ctx, u)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (s *FirestoreStore) DeleteUser(ctx context.Context, userID string) error {
	// Drop the profile first, then the user's checks.
	if _, err := s.client.Collection(usersCollection).Doc(userID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	iter := s.client.Collection(checksCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list checks for deletion: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete check %s: %w", snap.Ref.ID, err)
		}
	}
	return nil
}

func checkDocID(userID, date string) string {
	return userID + "_" + date
}

func (s *FirestoreStore) GetCheck(ctx context.Context, userID, date string) (*check.DailyCheck, error) {
	snap, err := s.client.Collection(checksCollection).Doc(checkDocID(userID, date)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get daily check: %w", err)
	}
	var doc checkDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode daily check: %w", err)
	}
	c := doc.DailyCheck
	return &c, nil
}

func (s *FirestoreStore) LoadChecks(ctx context.Context, userID string) (map[string]check.DailyCheck, error) {
	iter := s.client.Collection(checksCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	checks := make(map[string]check.DailyCheck)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load daily checks: %w", err)
		}
		var doc checkDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Firestore: skipping undecodable check %s: %v", snap.Ref.ID, err)
			continue
		}
		checks[doc.Date] = doc.DailyCheck
	}
	return checks, nil
}

func (s *FirestoreStore) SaveCheck(ctx context.Context, userID string, c check.DailyCheck) error {
	doc := checkDoc{DailyCheck: c, UserID: userID}
	_, err := s.client.Collection(checksCollection).Doc(checkDocID(userID, c.Date)).Set(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save daily check: %w", err)
	}
	return nil
}

// Subscribe streams query snapshots of the user's checks. The returned func
// cancels the stream and waits for the worker to exit, so no callback can
// fire after it returns.
func (s *FirestoreStore) Subscribe(ctx context.Context, userID string, fn ChecksFunc) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := s.client.Collection(checksCollection).Where("userId", "==", userID).Snapshots(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					log.Printf("Firestore: snapshot stream for %s ended: %v", userID, err)
				}
				return
			}
			checks := make(map[string]check.DailyCheck)
			for {
				docSnap, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("Firestore: snapshot read for %s failed: %v", userID, err)
					break
				}
				var doc checkDoc
				if err := docSnap.DataTo(&doc); err != nil {
					continue
				}
				checks[doc.Date] = doc.DailyCheck
			}
			select {
			case <-ctx.Done():
				return
			default:
				fn(checks)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
