package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chatforge-backend/internal/handlers"
	"chatforge-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	promptHandler *handlers.PromptHandler,
	chatHandler *handlers.ChatHandler,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Timeout(90 * time.Second))
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(corsOrigin))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Project Routes ────
		r.Route("/projects", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)

			r.Route("/{projectId}", func(r chi.Router) {
				r.Get("/prompts", promptHandler.List)
				r.Post("/prompts", promptHandler.Create)
				r.Get("/chats", chatHandler.ListChats)
				r.Post("/chats", chatHandler.CreateChat)
			})
		})

		// ──── Chat Routes ────
		r.Route("/chats/{chatId}", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/messages", chatHandler.ListMessages)
			r.Post("/messages", chatHandler.SendMessage)
		})
	})

	return r
}
