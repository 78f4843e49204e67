package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthTrackAPI/handlers"
	"healthTrackAPI/internal/dateutil"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"
	"healthTrackAPI/tests/helpers"
)

type testEnv struct {
	router       *mux.Router
	userService  *services.UserService
	checkService *services.CheckService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	st := helpers.SetupTestStore()

	userService := services.NewUserService(st)
	checkService := services.NewCheckService(st)
	statsService := services.NewStatsService(st)

	userHandler := handlers.NewUserHandler(userService)
	checkHandler := handlers.NewCheckHandler(checkService, userService, nil)
	statsHandler := handlers.NewStatsHandler(statsService)
	programHandler := handlers.NewProgramHandler(statsService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()
	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")
	r.HandleFunc("/api/v1/program/phases", programHandler.GetPhases).Methods("GET")
	r.HandleFunc("/api/v1/user", userHandler.GetProfile).Methods("GET")
	r.HandleFunc("/api/v1/user/program", userHandler.GetProgramStatus).Methods("GET")
	r.HandleFunc("/api/v1/user/program", userHandler.StartProgram).Methods("PUT")
	r.HandleFunc("/api/v1/user/checks", checkHandler.GetChecks).Methods("GET")
	r.HandleFunc("/api/v1/user/checks/{date}", checkHandler.GetCheck).Methods("GET")
	r.HandleFunc("/api/v1/user/checks/{date}", checkHandler.SaveCheck).Methods("PUT")
	r.HandleFunc("/api/v1/user/calendar", statsHandler.GetCalendar).Methods("GET")
	r.HandleFunc("/api/v1/user/stats/weekly", statsHandler.GetWeeklyStat).Methods("GET")
	r.HandleFunc("/api/v1/user/stats/weekly-all", statsHandler.GetAllWeeklyStats).Methods("GET")
	r.HandleFunc("/api/v1/user/stats/summary", statsHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/v1/user/chart", statsHandler.GetChart).Methods("GET")
	r.HandleFunc("/api/v1/program/guide", programHandler.GetGuide).Methods("GET")

	return &testEnv{router: r, userService: userService, checkService: checkService}
}

// do issues a request with the Clerk identity already injected, the way the
// auth middleware would after verifying a token.
func (e *testEnv) do(t *testing.T, method, path, clerkID string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if clerkID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ClerkIDKey, clerkID))
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestFullProgramFlow(t *testing.T) {
	env := setupEnv(t)
	clerkID := "user_test_flow"

	os.Setenv("CLERK_WEBHOOK_SECRET", "")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	// User arrives via the Clerk webhook.
	rr := env.do(t, http.MethodPost, "/webhooks/clerk", "", helpers.MockClerkWebhookPayload("user.created", clerkID))
	require.Equal(t, http.StatusOK, rr.Code)

	u, err := env.userService.GetUserByClerkID(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Equal(t, "test.user@example.com", u.Email)

	// No program yet.
	rr = env.do(t, http.MethodGet, "/api/v1/user/program", clerkID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Enroll, anchored three days ago so there is history to log.
	start, err := dateutil.AddDays(dateutil.Today(), -3)
	require.NoError(t, err)

	enroll := fmt.Sprintf(`{"startDate":"%s","initialWeight":80,"targetWeight":74,"initialWaist":90,"targetWaist":84}`, start)
	rr = env.do(t, http.MethodPut, "/api/v1/user/program", clerkID, []byte(enroll))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Enrolling twice is rejected.
	rr = env.do(t, http.MethodPut, "/api/v1/user/program", clerkID, []byte(enroll))
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Program status reports week 1, phase 1.
	rr = env.do(t, http.MethodGet, "/api/v1/user/program", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, float64(1), status["currentWeek"])
	assert.Equal(t, float64(1), status["phase"])

	// Log two days of checks.
	day1 := start
	day2, err := dateutil.AddDays(start, 2)
	require.NoError(t, err)

	check1 := `{"date":"` + day1 + `","breakfastCompleted":true,"lunchCompleted":true,"waterIntake":8,"exerciseCompleted":true,"exerciseType":"running","exerciseDuration":30,"weight":80}`
	rr = env.do(t, http.MethodPut, "/api/v1/user/checks/"+day1, clerkID, []byte(check1))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	check2 := `{"date":"` + day2 + `","dinnerCompleted":true,"waterIntake":4,"weight":79}`
	rr = env.do(t, http.MethodPut, "/api/v1/user/checks/"+day2, clerkID, []byte(check2))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// A record with out-of-range water is rejected.
	bad := `{"date":"` + day1 + `","waterIntake":12}`
	rr = env.do(t, http.MethodPut, "/api/v1/user/checks/"+day1, clerkID, []byte(bad))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// A body date that disagrees with the URL is rejected.
	mismatched := `{"date":"` + day1 + `","waterIntake":2}`
	rr = env.do(t, http.MethodPut, "/api/v1/user/checks/"+day2, clerkID, []byte(mismatched))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Both checks come back.
	rr = env.do(t, http.MethodGet, "/api/v1/user/checks", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var checks map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &checks))
	assert.Len(t, checks, 2)

	// Weekly stats for week 1: meal rate over the two logged days.
	rr = env.do(t, http.MethodGet, "/api/v1/user/stats/weekly?week=1", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var weekly map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &weekly))
	assert.Equal(t, float64(2), weekly["daysLogged"])
	assert.InDelta(t, 12.0/7.0, weekly["waterAverageIntake"], 0.001)
	assert.InDelta(t, 1.0, weekly["weightChange"], 0.001) // 80 -> 79

	// Out-of-range week parameter.
	rr = env.do(t, http.MethodGet, "/api/v1/user/stats/weekly?week=13", clerkID, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// All-weeks rollup always spans the full program.
	rr = env.do(t, http.MethodGet, "/api/v1/user/stats/weekly-all", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 12)

	// Summary carries the weight progress arithmetic.
	rr = env.do(t, http.MethodGet, "/api/v1/user/stats/summary", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, float64(2), summary["daysLogged"])
	progress, ok := summary["weightProgress"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 79.0, progress["current"], 0.001)
	assert.InDelta(t, 1.0, progress["change"], 0.001)
	assert.InDelta(t, 5.0, progress["remaining"], 0.001)

	// Calendar spans all 84 program days.
	rr = env.do(t, http.MethodGet, "/api/v1/user/calendar", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var days []json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &days))
	assert.Len(t, days, 84)

	// Chart series holds the two measured days in date order.
	rr = env.do(t, http.MethodGet, "/api/v1/user/chart?metric=weight", clerkID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var chartResp struct {
		Series []struct {
			Date   string   `json:"date"`
			Weight *float64 `json:"weight"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chartResp))
	require.Len(t, chartResp.Series, 2)
	assert.Equal(t, day1, chartResp.Series[0].Date)
	assert.Equal(t, day2, chartResp.Series[1].Date)
}

func TestWebhookUserLifecycle(t *testing.T) {
	env := setupEnv(t)
	clerkID := "user_test_lifecycle"

	os.Setenv("CLERK_WEBHOOK_SECRET", "")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	rr := env.do(t, http.MethodPost, "/webhooks/clerk", "", helpers.MockClerkWebhookPayload("user.created", clerkID))
	require.Equal(t, http.StatusOK, rr.Code)

	// Replays are idempotent.
	rr = env.do(t, http.MethodPost, "/webhooks/clerk", "", helpers.MockClerkWebhookPayload("user.created", clerkID))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, http.MethodPost, "/webhooks/clerk", "", helpers.MockClerkWebhookPayload("user.updated", clerkID))
	require.Equal(t, http.StatusOK, rr.Code)

	u, err := env.userService.GetUserByClerkID(context.Background(), clerkID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", u.FirstName)

	rr = env.do(t, http.MethodPost, "/webhooks/clerk", "", helpers.MockClerkWebhookPayload("user.deleted", clerkID))
	require.Equal(t, http.StatusOK, rr.Code)

	_, err = env.userService.GetUserByClerkID(context.Background(), clerkID)
	assert.Error(t, err)
}

func TestUnauthenticatedRequests(t *testing.T) {
	env := setupEnv(t)

	for _, path := range []string{
		"/api/v1/user",
		"/api/v1/user/program",
		"/api/v1/user/checks",
		"/api/v1/user/stats/summary",
	} {
		rr := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestPublicPhases(t *testing.T) {
	env := setupEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/program/phases", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var phases []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &phases))
	require.Len(t, phases, 3)
	assert.Equal(t, "Weeks 1-4", phases[0]["weekRange"])
}
