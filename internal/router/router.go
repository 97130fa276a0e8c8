package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"wordbank-backend/internal/handlers"
	"wordbank-backend/internal/middleware"
	"wordbank-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	flashcardHandler *handlers.FlashcardHandler,
	reviewHandler *handlers.ReviewHandler,
	dictionaryHandler *handlers.DictionaryHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Login rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/login", authHandler.Login)
		})

		// ──── Flashcard Routes ────
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/import", flashcardHandler.Import)
			r.Get("/", flashcardHandler.List)
			r.Get("/stats", flashcardHandler.Stats)
			r.Get("/{id}", flashcardHandler.Get)
			r.Put("/{id}", flashcardHandler.UpdateSchedule)
			r.Delete("/{id}", flashcardHandler.Delete)
		})

		// ──── Review Session Routes ────
		r.Route("/review/sessions", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", reviewHandler.StartSession)
			r.Get("/{id}", reviewHandler.GetSession)
			r.Get("/{id}/next", reviewHandler.NextQuestion)
			r.Post("/{id}/answer", reviewHandler.SubmitAnswer)
			r.Post("/{id}/advance", reviewHandler.Advance)
		})

		// ──── Dictionary Proxy ────
		r.Route("/dictionary", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/{word}", dictionaryHandler.Lookup)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
