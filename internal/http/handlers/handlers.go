package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	apprankings "github.com/preston-bernstein/qb-rankings-service/internal/app/rankings"
	"github.com/preston-bernstein/qb-rankings-service/internal/logging"
	"github.com/preston-bernstein/qb-rankings-service/internal/poller"
)

const dataSourceHeader = "X-Data-Source"

// Handler wires HTTP routes to the rankings service.
type Handler struct {
	svc      *apprankings.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *apprankings.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports 200 once a snapshot has been resolved.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Ready() {
		writeError(w, r, http.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"source": string(h.svc.Current().Source),
	}, h.logger)
}

type statusResponse struct {
	State      apprankings.State `json:"state"`
	Source     string            `json:"source"`
	Configured bool              `json:"configured"`
	UpdatedAt  *time.Time        `json:"updatedAt,omitempty"`
	Poller     *poller.Status    `json:"poller,omitempty"`
}

// Status describes where the presented data came from.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	cur := h.svc.Current()
	resp := statusResponse{
		State:      h.svc.State(),
		Source:     string(cur.Source),
		Configured: h.svc.Configured(),
	}
	if !cur.FetchedAt.IsZero() {
		at := cur.FetchedAt.UTC()
		resp.UpdatedAt = &at
	}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Poller = &st
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Snapshot returns the complete data contract.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	cur := h.svc.Current()
	w.Header().Set(dataSourceHeader, string(cur.Source))
	logging.Info(loggerFromContext(r, h.logger), "served snapshot",
		slog.String(logging.FieldDataSource, string(cur.Source)),
		slog.Int(logging.FieldCount, len(cur.Snapshot.Rankings)),
	)
	writeJSON(w, http.StatusOK, cur.Snapshot, h.logger)
}

type rankingsResponse struct {
	WeekLabel string `json:"weekLabel"`
	Date      string `json:"date"`
	Rankings  any    `json:"rankings"`
}

// Rankings returns the current top ten with the week label.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	cur := h.svc.Current()
	w.Header().Set(dataSourceHeader, string(cur.Source))
	writeJSON(w, http.StatusOK, rankingsResponse{
		WeekLabel: cur.Snapshot.CurrentWeekLabel,
		Date:      cur.Snapshot.CurrentDate,
		Rankings:  cur.Snapshot.Rankings,
	}, h.logger)
}

// Dropped returns quarterbacks who fell out of the list.
func (h *Handler) Dropped(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Dropped(), h.logger)
}

// Worst returns the worst quarterback of the week.
func (h *Handler) Worst(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Worst(), h.logger)
}

// Archive lists past weeks, newest first.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ArchiveWeeks(), h.logger)
}

// ArchiveWeek returns one past week by id.
func (h *Handler) ArchiveWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := pathParam(r, "id")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid week id", h.logger)
		return
	}
	week, found := h.svc.ArchiveWeek(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "week not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, week, h.logger)
}

// Player returns a quarterback's current entry and rank history.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathParam(r, "slug")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player slug", h.logger)
		return
	}
	player, found := h.svc.Player(slug)
	if !found {
		writeError(w, r, http.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, player, h.logger)
}

// NotFound renders unknown routes as JSON errors.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed renders wrong-method requests as JSON errors.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func pathParam(r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" || strings.ContainsAny(v, " \t/") {
		return "", false
	}
	return v, true
}
