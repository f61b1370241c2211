package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/beacon/pkg/metrics"
)

// StatusProvider reports whether analytics events are being forwarded.
type StatusProvider interface {
	Enabled() bool
}

// HealthHandler serves liveness and Prometheus metrics.
type HealthHandler struct {
	status  StatusProvider
	metrics http.Handler
}

// NewHealthHandler creates a health handler backed by the process registry.
func NewHealthHandler(status StatusProvider) *HealthHandler {
	return &HealthHandler{
		status:  status,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status          string `json:"status"`
	TrackingEnabled bool   `json:"tracking_enabled"`
}

// HandleHealth handles GET /healthz.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	enabled := h.status != nil && h.status.Enabled()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", TrackingEnabled: enabled})
}

// HandleMetrics handles GET /metrics.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
