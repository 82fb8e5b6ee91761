package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/qb-rankings-service/internal/http/handlers"
	"github.com/preston-bernstein/qb-rankings-service/internal/http/middleware"
	"github.com/preston-bernstein/qb-rankings-service/internal/metrics"
)

// NewRouter registers HTTP routes on a chi mux. The admin routes are mounted
// only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(logger, recorder, next)
	})
	r.Use(chimw.CleanPath)
	r.Use(chimw.Recoverer)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", handler.Snapshot)
		r.Get("/status", handler.Status)
		r.Get("/rankings", handler.Rankings)
		r.Get("/dropped", handler.Dropped)
		r.Get("/worst", handler.Worst)
		r.Get("/archive", handler.Archive)
		r.Get("/archive/{id}", handler.ArchiveWeek)
		r.Get("/players/{slug}", handler.Player)
	})

	if admin != nil {
		r.Post("/admin/refresh", admin.Refresh)
	}
	return r
}
