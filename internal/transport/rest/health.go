package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/access-console/internal/transport"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*transport.BaseHandler
	roster      Pinger
	catalogSize int
	sessions    func() int
}

func NewHealthHandler(baseHandler *transport.BaseHandler, roster Pinger, catalogSize int, sessions func() int) *HealthHandler {
	return &HealthHandler{
		BaseHandler: baseHandler,
		roster:      roster,
		catalogSize: catalogSize,
		sessions:    sessions,
	}
}

// Ping is the liveness probe.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Health is the readiness probe: the roster backend must answer a ping and
// the catalog must not be empty.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.roster.Ping(ctx)
	rosterEntry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		rosterEntry.Status = HealthUnhealthy
		rosterEntry.Message = err.Error()
	}
	if h.sessions != nil {
		rosterEntry.Details = map[string]any{"open_sessions": h.sessions()}
	}

	catalogEntry := CheckEntry{
		Status:    HealthHealthy,
		Details:   map[string]any{"systems": h.catalogSize},
		CheckedAt: time.Now(),
	}
	if h.catalogSize == 0 {
		catalogEntry.Status = HealthUnhealthy
		catalogEntry.Message = "catalog is empty"
	}

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{"roster": rosterEntry, "catalog": catalogEntry},
	}
	statusCode := http.StatusOK
	if rosterEntry.Status == HealthUnhealthy || catalogEntry.Status == HealthUnhealthy {
		resp.Status = HealthUnhealthy
		statusCode = http.StatusServiceUnavailable
	}

	h.WriteJSON(w, statusCode, resp)
}
