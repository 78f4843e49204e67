package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"healthTrackAPI/internal/program"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"
)

type ProgramHandler struct {
	statsService *services.StatsService
}

func NewProgramHandler(statsService *services.StatsService) *ProgramHandler {
	return &ProgramHandler{
		statsService: statsService,
	}
}

// GetPhases serves the static three-phase reference data. Public, no auth.
func (h *ProgramHandler) GetPhases(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, program.AllPhaseInfo())
}

// GetGuide serves the weekly exercise and nutrition program. Without a week
// query parameter it uses the authenticated user's current week.
func (h *ProgramHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	week := 0
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > program.Weeks {
			respondWithError(w, http.StatusBadRequest, "week must be between 1 and 12")
			return
		}
		week = parsed
	}

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok && week == 0 {
		respondWithError(w, http.StatusBadRequest, "week is required")
		return
	}

	guide, err := h.statsService.Guide(ctx, clerkID, week)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Program not started")
		return
	}

	respondWithJSON(w, http.StatusOK, guide)
}
