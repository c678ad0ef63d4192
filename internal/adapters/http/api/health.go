package api

import (
	"net/http"
	"time"

	"github.com/okian/leetboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles liveness requests.
type HealthHandler struct {
	deps HealthDependencies
	now  func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies, now func() time.Time) *HealthHandler {
	return &HealthHandler{deps: deps, now: now}
}

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	CacheSize int            `json:"cacheSize"`
	Service   map[string]any `json:"service,omitempty"`
}

// HandleHealth handles GET /api/health. It never touches the sheet source.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		CacheSize: h.deps.CacheSize(),
		Service:   h.deps.GetStats(),
	})
}

// MetricsHandler serves the custom metrics registry in the Prometheus
// exposition format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
