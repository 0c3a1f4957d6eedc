package handlers

import (
	"net/http"

	"github.com/ramonehamilton/commander-analyzer/internal/api/response"
	"github.com/ramonehamilton/commander-analyzer/internal/metrics"
)

// MetricsHandler serves analyzer metrics.
type MetricsHandler struct {
	metrics *metrics.Collector
}

// NewMetricsHandler creates a new MetricsHandler. A nil collector serves
// zeroes.
func NewMetricsHandler(m *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{metrics: m}
}

// GetMetrics returns a snapshot of the collector.
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.metrics.Snapshot())
}
