package helpers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"healthTrackAPI/internal/store"
)

// SetupTestStore returns a fresh in-memory store. Each test gets its own,
// there is no shared state to clean up.
func SetupTestStore() *store.MemoryStore {
	return store.NewMemoryStore()
}

// GenerateMockClerkJWT generates a mock JWT token for testing
func GenerateMockClerkJWT(clerkID string) (string, error) {
	secretKey := []byte("test-secret-key-for-testing-only")

	claims := jwt.MapClaims{
		"sub": clerkID,
		"iss": "https://clerk.test",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
		"azp": "test-app-id",
		"sid": "sess_test123",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// MockClerkWebhookPayload creates a mock webhook payload
func MockClerkWebhookPayload(eventType string, clerkID string) []byte {
	payload := ""

	switch eventType {
	case "user.created":
		payload = fmt.Sprintf(`{
			"data": {
				"id": "%s",
				"first_name": "Test",
				"last_name": "User",
				"username": "testuser",
				"image_url": "https://example.com/avatar.png",
				"email_addresses": [
					{
						"email_address": "test.user@example.com",
						"verification": {"status": "verified"}
					}
				]
			},
			"type": "user.created"
		}`, clerkID)
	case "user.updated":
		payload = fmt.Sprintf(`{
			"data": {
				"id": "%s",
				"first_name": "Updated",
				"last_name": "User",
				"username": "updateduser",
				"image_url": "https://example.com/avatar2.png",
				"email_addresses": [
					{
						"email_address": "test.user@example.com",
						"verification": {"status": "verified"}
					}
				]
			},
			"type": "user.updated"
		}`, clerkID)
	case "user.deleted":
		payload = fmt.Sprintf(`{
			"data": {"id": "%s"},
			"type": "user.deleted"
		}`, clerkID)
	}

	return []byte(payload)
}
