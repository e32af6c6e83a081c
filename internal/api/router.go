package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hugh/cardlink/internal/api/handlers"
	"github.com/hugh/cardlink/internal/api/middleware"
	"github.com/hugh/cardlink/internal/auth"
	"github.com/hugh/cardlink/internal/cardnet"
	"github.com/hugh/cardlink/internal/inbox"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	Service        *cardnet.Service
	DB             *gorm.DB      // nil unless the database store is in use
	Redis          *redis.Client // nil when Redis is not configured
	Inbox          *inbox.Inbox  // nil when Redis is not configured
	Logger         *slog.Logger
	JWTService     auth.TokenService
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds

	// Done stops background sweeping of rate limiter state.
	Done <-chan struct{}
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs, cfg.Done))
	}

	// CORS - restrict to configured origins, or allow all in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		// Default to localhost for development - configure in production
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Service, cfg.DB, cfg.Redis)
	sessionHandler := handlers.NewSessionHandler(cfg.Service, cfg.JWTService)
	orderHandler := handlers.NewOrderHandler(cfg.Service)
	designHandler := handlers.NewDesignHandler(cfg.Service)
	cardHandler := handlers.NewCardHandler(cfg.Service)
	networkHandler := handlers.NewNetworkHandler(cfg.Service)
	notificationHandler := handlers.NewNotificationHandler(cfg.Inbox)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/sessions", sessionHandler.Create)
		r.Get("/share/{code}", cardHandler.Share)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.With(middleware.RequireRole(auth.RoleCompany)).Post("/orders", orderHandler.Create)
			r.With(middleware.RequireRole(auth.RoleCompany, auth.RoleDesigner)).Get("/orders", orderHandler.List)
			r.With(middleware.RequireRole(auth.RoleDesigner)).Post("/orders/{id}/design", orderHandler.SubmitDesign)

			r.With(middleware.RequireRole(auth.RoleDesigner, auth.RoleHR)).Get("/designs", designHandler.List)
			r.With(middleware.RequireRole(auth.RoleHR)).Post("/designs/{id}/cards", designHandler.AssignCard)
			r.With(middleware.RequireRole(auth.RoleHR)).Get("/cards", cardHandler.List)

			// Employee endpoints act as the session's card
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleEmployee))
				r.Use(middleware.RequireCard)
				if cfg.RateLimitReqs > 0 {
					r.Use(middleware.RateLimitByViewer(cfg.RateLimitReqs, cfg.RateLimitSecs, cfg.Done))
				}

				r.Route("/me", func(r chi.Router) {
					r.Get("/", cardHandler.Me)
					r.Post("/visibility", cardHandler.ToggleVisibility)
					r.Put("/job", cardHandler.UpdateJob)
					r.Get("/notifications", notificationHandler.List)
				})

				r.Get("/directory", networkHandler.Directory)

				r.Route("/connections", func(r chi.Router) {
					r.Get("/", networkHandler.Connections)
					r.Get("/requests", networkHandler.Incoming)
					r.Post("/requests", networkHandler.SendRequest)
					r.Get("/requests/outgoing", networkHandler.Outgoing)
					r.Post("/requests/{id}/accept", networkHandler.Accept)
					r.Post("/requests/{id}/reject", networkHandler.Reject)
				})
			})
		})
	})

	return &Router{r}
}
