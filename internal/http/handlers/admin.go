package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainrankings "github.com/preston-bernstein/qb-rankings-service/internal/domain/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/http/requestutil"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
)

// ForceRefresher drops cached data and resolves a new snapshot.
type ForceRefresher interface {
	ForceRefresh(ctx context.Context) domainrankings.Result
}

// AdminHandler exposes operator endpoints guarded by a bearer token.
type AdminHandler struct {
	refresher ForceRefresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher ForceRefresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

type refreshResponse struct {
	Status    string    `json:"status"`
	Source    string    `json:"source"`
	Rankings  int       `json:"rankings"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Refresh invalidates the snapshot cache and refetches the sheet.
// Returns 401 unless the request carries the configured bearer token.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	result := h.refresher.ForceRefresh(r.Context())
	count := 0
	if result.Snapshot != nil {
		count = len(result.Snapshot.Rankings)
	}
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldDataSource, string(result.Source)),
		slog.Int(logging.FieldCount, count),
	)
	writeJSON(w, http.StatusOK, refreshResponse{
		Status:    "ok",
		Source:    string(result.Source),
		Rankings:  count,
		UpdatedAt: result.FetchedAt.UTC(),
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
