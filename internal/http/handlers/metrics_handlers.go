package handlers

import (
	"net/http"
	"time"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics
// @Description Catalog totals, stock alerts and the most adjusted product.
// @Tags metrics
// @Produce json
// @Success 200 {object} Response{data=repo.Metrics}
// @Failure 500 {object} ErrorResponse
// @Router /api/dashboard [get]
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.Metrics.GetDashboardMetrics(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to fetch metrics")
		return
	}
	respondData(w, r, http.StatusOK, m)
}

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResult
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, HealthResult{Status: "ok", Timestamp: s.now().UTC().Format(time.RFC3339)}); err != nil {
		respondInternal(w, r, err, "failed to write health")
	}
}
