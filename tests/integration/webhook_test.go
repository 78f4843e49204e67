package integration

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthTrackAPI/handlers"
	"healthTrackAPI/services"
	"healthTrackAPI/tests/helpers"
)

func signPayload(secret, svixID, svixTimestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s.%s.%s", svixID, svixTimestamp, string(body))))
	return "v1," + hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignatureVerification(t *testing.T) {
	st := helpers.SetupTestStore()
	userService := services.NewUserService(st)
	webhookHandler := handlers.NewWebhookHandler(userService)

	secret := "whsec_test_secret"
	os.Setenv("CLERK_WEBHOOK_SECRET", secret)
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	payload := helpers.MockClerkWebhookPayload("user.created", "user_signed")

	// A correctly signed request goes through.
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(payload))
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signPayload(secret, "msg_1", "1700000000", payload))
	rr := httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// A tampered signature is rejected.
	req = httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(payload))
	req.Header.Set("svix-id", "msg_2")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signPayload("wrong-secret", "msg_2", "1700000000", payload))
	rr = httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Missing signature headers are rejected when a secret is configured.
	req = httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(payload))
	rr = httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
