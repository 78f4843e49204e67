package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"healthTrackAPI/internal/chart"
	"healthTrackAPI/internal/program"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) GetWeeklyStat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 || week > program.Weeks {
		respondWithError(w, http.StatusBadRequest, "week must be between 1 and 12")
		return
	}

	stat, err := h.statsService.WeeklyStat(ctx, clerkID, week)
	if err != nil {
		h.respondStatsError(w, clerkID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stat)
}

func (h *StatsHandler) GetAllWeeklyStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	all, err := h.statsService.AllWeeklyStats(ctx, clerkID)
	if err != nil {
		h.respondStatsError(w, clerkID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, all)
}

func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	summary, err := h.statsService.Summary(ctx, clerkID)
	if err != nil {
		h.respondStatsError(w, clerkID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	days, err := h.statsService.Calendar(ctx, clerkID)
	if err != nil {
		h.respondStatsError(w, clerkID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, days)
}

// GetChart returns the measurement series for one metric plus the
// current/change/remaining numbers when targets are set.
func (h *StatsHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	metric := chart.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = chart.MetricWeight
	}
	if metric != chart.MetricWeight && metric != chart.MetricWaist {
		respondWithError(w, http.StatusBadRequest, "metric must be weight or waist")
		return
	}

	series, progress, err := h.statsService.ChartSeries(ctx, clerkID, metric)
	if err != nil {
		h.respondStatsError(w, clerkID, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"metric":   metric,
		"series":   series,
		"progress": progress,
	})
}

func (h *StatsHandler) respondStatsError(w http.ResponseWriter, clerkID string, err error) {
	if errors.Is(err, services.ErrNotEnrolled) {
		respondWithError(w, http.StatusNotFound, "Program not started")
		return
	}
	log.Printf("Stats request for %s failed: %v", clerkID, err)
	respondWithError(w, http.StatusInternalServerError, "Failed to compute stats")
}
