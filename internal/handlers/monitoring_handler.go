package handlers

import (
	"net/http"

	"inspector-backend/internal/monitoring"
	"inspector-backend/pkg/utils"
)

type MonitoringHandler struct {
	collector *monitoring.Collector
}

func NewMonitoringHandler(collector *monitoring.Collector) *MonitoringHandler {
	return &MonitoringHandler{collector: collector}
}

// GetStats serves a point-in-time view of process and backend health.
func (h *MonitoringHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.collector.Collect(r.Context()))
}
