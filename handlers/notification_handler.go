package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"healthTrackAPI/internal/notification"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"
)

type NotificationHandler struct {
	userService *services.UserService
	registry    *notification.Registry
}

func NewNotificationHandler(userService *services.UserService, registry *notification.Registry) *NotificationHandler {
	return &NotificationHandler{
		userService: userService,
		registry:    registry,
	}
}

// RegisterDevice records an FCM device token for the authenticated user.
func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req notification.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		respondWithError(w, http.StatusBadRequest, "token is required")
		return
	}
	switch req.Platform {
	case "ios", "android", "web":
	default:
		respondWithError(w, http.StatusBadRequest, "platform must be ios, android or web")
		return
	}

	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	h.registry.Register(u.ID, notification.DeviceToken{
		Token:    req.Token,
		Platform: req.Platform,
	})

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "registered"})
}
