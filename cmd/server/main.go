package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordbank-backend/internal/config"
	"wordbank-backend/internal/database"
	"wordbank-backend/internal/handlers"
	"wordbank-backend/internal/middleware"
	"wordbank-backend/internal/repository"
	"wordbank-backend/internal/router"
	"wordbank-backend/internal/services"
	"wordbank-backend/internal/session"
	"wordbank-backend/internal/websocket"
	"wordbank-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting WordBank Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	cardRepo := repository.NewCardRepo(pool)
	reviewLogRepo := repository.NewReviewLogRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authService := services.NewAuthService(jwtAuth, cfg.AdminEmail, cfg.AdminPasswordHash)
	importService := services.NewImportService(cardRepo)
	dictionaryService := services.NewDictionaryService(cfg.DictionaryAPIURL)

	// ──── Initialize Session Store ────
	sessionStore := session.NewStore(time.Duration(cfg.SessionTTLMinutes) * time.Minute)
	log.Printf("✓ Session store ready (TTL %dm)", cfg.SessionTTLMinutes)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	flashcardHandler := handlers.NewFlashcardHandler(cardRepo, reviewLogRepo, importService)
	reviewHandler := handlers.NewReviewHandler(cardRepo, sessionStore, redisClients.Queue)
	dictionaryHandler := handlers.NewDictionaryHandler(dictionaryService)

	// ──── Step 5: Start Review-Event Worker Pool ────
	workerPool := worker.NewPool(redisClients.Queue, reviewLogRepo, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		flashcardHandler,
		reviewHandler,
		dictionaryHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ WordBank Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
