package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/kigaku-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/kigaku?birth=
//	GET    /api/v1/daystar/{date}
//	GET    /api/v1/sekki/latest?at=
//	GET    /api/v1/sekki/{year}
//
//	authenticated (X-API-Key):
//	POST   /api/v1/profiles
//	GET    /api/v1/profiles
//	GET    /api/v1/profiles/{id}
//	PUT    /api/v1/profiles/{id}
//	DELETE /api/v1/profiles/{id}
//	GET    /api/v1/profiles/{id}/kigaku
//	POST   /api/v1/profiles/{id}/readings
//	GET    /api/v1/readings
//	GET    /api/v1/readings/{id}
//	DELETE /api/v1/readings/{id}
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware,
		LoggingMiddleware(logger),
		CORSMiddleware,
		LanguageMiddleware(cfg.DefaultLanguage),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/kigaku", handlers.GetKigaku)
		r.Get("/daystar/{date}", handlers.GetDayStar)
		r.Get("/sekki/latest", handlers.GetLatestSekki)
		r.Get("/sekki/{year}", handlers.GetSekkiYear)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))

			r.Route("/profiles", func(r chi.Router) {
				r.Post("/", handlers.CreateProfile)
				r.Get("/", handlers.ListProfiles)
				r.Get("/{id}", handlers.GetProfile)
				r.Put("/{id}", handlers.UpdateProfile)
				r.Delete("/{id}", handlers.DeleteProfile)
				r.Get("/{id}/kigaku", handlers.GetProfileKigaku)
				r.Post("/{id}/readings", handlers.CreateReading)
			})

			r.Route("/readings", func(r chi.Router) {
				r.Get("/", handlers.ListReadings)
				r.Get("/{id}", handlers.GetReading)
				r.Delete("/{id}", handlers.DeleteReading)
			})
		})
	})

	return r
}
