package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inspector-backend/internal/handlers"
	"inspector-backend/internal/middleware"
)

func NewRouter(
	itemHandler *handlers.ItemHandler,
	monitoringHandler *handlers.MonitoringHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Metrics run inside the router so the route template is available
	// as the path label.
	r.Use(middleware.MetricsMiddleware)

	// Item inspector routes
	itemsAPI := r.PathPrefix("/api/items").Subrouter()
	itemsAPI.HandleFunc("/resolve-barcode", itemHandler.ResolveBarcode).Methods("GET")
	itemsAPI.HandleFunc("/{item_code}/snapshot", itemHandler.GetSnapshot).Methods("GET")

	// Monitoring routes
	monitoringAPI := r.PathPrefix("/api/monitoring").Subrouter()
	monitoringAPI.HandleFunc("/stats", monitoringHandler.GetStats).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
