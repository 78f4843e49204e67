package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthTrackAPI/handlers"
	"healthTrackAPI/internal/notification"
	"healthTrackAPI/internal/store"
	"healthTrackAPI/middleware"
	"healthTrackAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool          *pgxpool.Pool
	dataStore       store.Store
	userService     *services.UserService
	checkService    *services.CheckService
	statsService    *services.StatsService
	reminderService *services.ReminderService
	deviceRegistry  *notification.Registry
	fcmService      *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	switch backend := os.Getenv("STORE_BACKEND"); backend {
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			log.Fatal("DATABASE_URL environment variable is not set")
		}

		poolConfig, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			log.Fatal("Failed to parse database URL:", err)
		}

		poolConfig.MaxConns = 25
		poolConfig.MinConns = 5
		poolConfig.MaxConnLifetime = time.Hour
		poolConfig.MaxConnIdleTime = 30 * time.Minute
		poolConfig.HealthCheckPeriod = time.Minute

		dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Fatal("Failed to create connection pool:", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Fatal("Failed to ping database:", err)
		}

		dataStore = store.NewPostgresStore(dbPool)
		log.Println("Successfully connected to Postgres")

	case "memory":
		dataStore = store.NewMemoryStore()
		log.Println("Using in-memory store (data is not persisted)")

	default:
		dataStore, err = store.NewFirestoreStore(ctx, "./serviceAccountKey.json")
		if err != nil {
			log.Fatal("Failed to initialize Firestore:", err)
		}
		log.Println("Successfully connected to Firestore")
	}

	deviceRegistry = notification.NewRegistry()
	userService = services.NewUserService(dataStore)
	checkService = services.NewCheckService(dataStore)
	statsService = services.NewStatsService(dataStore)
	reminderService = services.NewReminderService(dataStore, deviceRegistry, time.Hour)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		reminderService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing store...")
		checkService.Close()
		if err := dataStore.Close(); err != nil {
			log.Printf("Store close error: %v", err)
		}
	}()

	userHandler := handlers.NewUserHandler(userService)
	checkHandler := handlers.NewCheckHandler(checkService, userService, reminderService)
	statsHandler := handlers.NewStatsHandler(statsService)
	programHandler := handlers.NewProgramHandler(statsService)
	notificationHandler := handlers.NewNotificationHandler(userService, deviceRegistry)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	standardRouter := r.PathPrefix("/").Subrouter()

	go middleware.CleanupVisitors()

	standardRouter.Use(middleware.RateLimitMiddleware)
	standardRouter.Use(middleware.MonitorMiddleware)

	standardRouter.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	standardRouter.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	standardRouter.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if dbPool != nil {
			if err := dbPool.Ping(ctx); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "healthTrack-api"}`))
	}).Methods("GET")

	standardRouter.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := standardRouter.PathPrefix("/api/v1").Subrouter()

	// Public reference data
	api.HandleFunc("/program/phases", programHandler.GetPhases).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/program", userHandler.GetProgramStatus).Methods("GET")
	protected.HandleFunc("/user/program", userHandler.StartProgram).Methods("PUT")

	protected.HandleFunc("/user/checks", checkHandler.GetChecks).Methods("GET")
	protected.HandleFunc("/user/checks/{date}", checkHandler.GetCheck).Methods("GET")
	protected.HandleFunc("/user/checks/{date}", checkHandler.SaveCheck).Methods("PUT")

	protected.HandleFunc("/user/calendar", statsHandler.GetCalendar).Methods("GET")
	protected.HandleFunc("/user/stats/weekly", statsHandler.GetWeeklyStat).Methods("GET")
	protected.HandleFunc("/user/stats/weekly-all", statsHandler.GetAllWeeklyStats).Methods("GET")
	protected.HandleFunc("/user/stats/summary", statsHandler.GetSummary).Methods("GET")
	protected.HandleFunc("/user/chart", statsHandler.GetChart).Methods("GET")

	protected.HandleFunc("/program/guide", programHandler.GetGuide).Methods("GET")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	reminderService.Start()
	defer reminderService.Stop()

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
