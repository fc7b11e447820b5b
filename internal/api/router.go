package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/adelr/rolodex-be/internal/api/handlers"
	"github.com/adelr/rolodex-be/internal/api/middleware"
	"github.com/adelr/rolodex-be/internal/auth"
	"github.com/adelr/rolodex-be/internal/config"
	"github.com/adelr/rolodex-be/internal/services"
	"github.com/adelr/rolodex-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	jwt *auth.Manager,
	hub *websocket.Hub,
	personSvc services.PersonServiceProvider,
	authSvc services.AuthServiceProvider,
	aiSvc services.AIServiceProvider,
	eventSvc services.EventServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc, jwt, cfg.AppEnv == "production")
	personHandler := handlers.NewPersonHandler(personSvc)
	aiHandler := handlers.NewAIHandler(aiSvc, personSvc)
	eventHandler := handlers.NewEventHandler(eventSvc)
	systemHandler := handlers.NewSystemHandler(cfg.SnapshotDir)
	wsHandler := handlers.NewWebSocketHandler(hub)

	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.AuthRateRPS), cfg.AuthRateBurst)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints get a stricter per-IP limit.
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Handler())
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/logout", authHandler.Logout)
			})
			r.Group(func(r chi.Router) {
				r.Use(jwt.Middleware())
				r.Get("/me", authHandler.Me)
			})
		})

		// Everything below requires an authenticated session; the owner id
		// always comes from the token claims.
		r.Group(func(r chi.Router) {
			r.Use(jwt.Middleware())

			r.Route("/people", func(r chi.Router) {
				r.Get("/", personHandler.GetAll)
				r.Post("/", personHandler.Create)
				r.Get("/search/{query}", personHandler.Search)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", personHandler.Get)
					r.Put("/", personHandler.Update)
					r.Delete("/", personHandler.Delete)
					r.Post("/summary", aiHandler.GenerateSummary)
				})
			})

			r.Post("/ask", aiHandler.Ask)
			r.Get("/events", eventHandler.GetRecent)

			r.Route("/system", func(r chi.Router) {
				r.Get("/stats", systemHandler.Stats)
				r.Get("/snapshots", systemHandler.Snapshots)
			})

			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
