package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"usersvc/internal/config"
	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

func NewRouter(
	cfg *config.Config,
	logger logging.Logger,
	healthHandler *health.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger, cfg.CORS.AllowedOrigins)

	// Probes: /health stays at the root, outside the versioned prefix.
	r.Get("/health", healthHandler.Check)

	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Get("/ping", healthHandler.Ping)

		// User module
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.GetByID)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteNotFound(w, r)
	})

	return r
}
