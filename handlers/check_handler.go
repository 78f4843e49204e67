package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"healthTrackAPI/internal/check"
	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/internal/store"
	"healthTrackAPI/internal/user"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"
)

type CheckHandler struct {
	checkService    *services.CheckService
	userService     *services.UserService
	reminderService *services.ReminderService
}

func NewCheckHandler(checkService *services.CheckService, userService *services.UserService, reminderService *services.ReminderService) *CheckHandler {
	return &CheckHandler{
		checkService:    checkService,
		userService:     userService,
		reminderService: reminderService,
	}
}

// GetChecks returns every daily check the user has logged, keyed by date.
func (h *CheckHandler) GetChecks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := h.authedUser(ctx, w)
	if !ok {
		return
	}

	checks, err := h.checkService.LoadChecks(ctx, u.ID)
	if err != nil {
		log.Printf("Failed to load checks for %s: %v", u.ID, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load checks")
		return
	}

	respondWithJSON(w, http.StatusOK, checks)
}

func (h *CheckHandler) GetCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := h.authedUser(ctx, w)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	if _, err := dateutil.Parse(date); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	c, err := h.checkService.GetCheck(ctx, u.ID, date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "No check for this date")
			return
		}
		log.Printf("Failed to get check for %s on %s: %v", u.ID, date, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to get check")
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

// SaveCheck upserts the check for one date. Legacy single-field payloads
// (meals, water, exercise text) are folded into the full shape first.
func (h *CheckHandler) SaveCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	u, ok := h.authedUser(ctx, w)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	if _, err := dateutil.Parse(date); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var raw check.RawCheck
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := h.checkService.SaveCheck(ctx, u.ID, date, &raw)
	if err != nil {
		switch {
		case errors.Is(err, check.ErrValidation), errors.Is(err, services.ErrDateMismatch):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("Failed to save check for %s on %s: %v", u.ID, date, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to save check")
		}
		return
	}

	if h.reminderService != nil {
		h.reminderService.CelebrateWeekIfComplete(ctx, u, date)
	}

	respondWithJSON(w, http.StatusOK, saved)
}

func (h *CheckHandler) authedUser(ctx context.Context, w http.ResponseWriter) (*user.User, bool) {
	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return nil, false
	}
	u, err := h.userService.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	return u, true
}
