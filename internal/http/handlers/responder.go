package handlers

import (
	"log/slog"
	"net/http"

	"github.com/unrolled/render"

	"github.com/preston-bernstein/qb-rankings-service/internal/http/middleware"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
)

var renderer = render.New(render.Options{
	UnEscapeHTML: true,
})

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	if err := renderer.JSON(w, status, payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
