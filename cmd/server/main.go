package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonicsquest/internal/config"
	"phonicsquest/internal/database"
	"phonicsquest/internal/event"
	"phonicsquest/internal/handlers"
	"phonicsquest/internal/metrics"
	"phonicsquest/internal/repository"
	"phonicsquest/internal/security"
	"phonicsquest/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize storage (sqlite, postgres, mysql or in-memory)
	var sessionStore repository.SessionStore
	var progressStore repository.ProgressStore

	if cfg.UsesMemoryStore() {
		memory := repository.NewMemoryRepository()
		sessionStore, progressStore = memory, memory
		log.Println("Using in-memory store; sessions are lost on restart")
	} else {
		db, err := database.InitializeWithConfig(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		log.Println("Migrations completed successfully")

		sessionStore = repository.NewPracticeRepository(db)
		progressStore = repository.NewProgressRepository(db)
	}

	// Domain events
	publisher, err := event.NewEventPublisher(cfg.RabbitMQURI, cfg.EventsExchange)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}
	defer publisher.Close()

	// Session report emails
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize services
	progressService := service.NewProgressService(progressStore, publisher, cfg.MasteryRule(), cfg.ReviewBaseIntervalDays)
	practiceService := service.NewPracticeService(sessionStore, progressService, publisher, emailService, cfg.ReportToEmail)

	// Initialize handlers
	practiceHandler := handlers.NewPracticeHandler(practiceService)
	feedbackHandler := handlers.NewFeedbackHandler()
	progressHandler := handlers.NewProgressHandler(progressService)

	limiter := security.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	defer limiter.Stop()

	// Setup routes
	mux := http.NewServeMux()

	// Practice sessions
	mux.HandleFunc("POST /api/sessions", practiceHandler.CreateSession)
	mux.HandleFunc("GET /api/sessions/{sessionId}", practiceHandler.GetSession)
	mux.HandleFunc("GET /api/sessions/{sessionId}/rounds", practiceHandler.GetRounds)
	mux.HandleFunc("POST /api/sessions/{sessionId}/attempts", limiter.Middleware(practiceHandler.SubmitAttempt))
	mux.HandleFunc("GET /api/sessions/{sessionId}/summary", practiceHandler.GetSummary)
	mux.HandleFunc("POST /api/sessions/{sessionId}/pause", practiceHandler.PauseSession)
	mux.HandleFunc("POST /api/sessions/{sessionId}/resume", practiceHandler.ResumeSession)
	mux.HandleFunc("POST /api/sessions/{sessionId}/complete", practiceHandler.CompleteSession)

	// Feedback
	mux.HandleFunc("POST /api/feedback", feedbackHandler.SelectFeedback)
	mux.HandleFunc("GET /api/hints", feedbackHandler.ListHints)

	// Progress and reviews
	mux.HandleFunc("GET /api/students/{studentId}/progress", progressHandler.ListProgress)
	mux.HandleFunc("GET /api/students/{studentId}/reviews/due", progressHandler.DueReviews)

	// Operations
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /healthz", handlers.Health)

	// Wrap with logging and metrics middleware
	handler := metrics.Middleware(handlers.Logging(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
