package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"inspector-backend/internal/cache"
	"inspector-backend/internal/config"
	"inspector-backend/internal/db"
	"inspector-backend/internal/handlers"
	"inspector-backend/internal/health"
	h "inspector-backend/internal/http"
	"inspector-backend/internal/logging"
	"inspector-backend/internal/middleware"
	"inspector-backend/internal/monitoring"
	"inspector-backend/internal/repositories"
	"inspector-backend/internal/schema"
	"inspector-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()
	logger.Info("database connected")

	// Initialize Redis cache (optional - degrades to database-only reads)
	if err := cache.Init(); err != nil {
		logger.WithError(err).Warn("cache unavailable, snapshots will be served uncached")
	} else {
		logger.Info("cache connected")
		// Snapshots serialized by an older build must not be served
		go cache.InvalidateSnapshots(context.Background())
	}

	// Schema capabilities, shared by every service
	caps := schema.NewCapabilities(schema.NewPgIntrospector(pool), logger)

	// Initialize repositories
	itemRepo := repositories.NewItemRepository(pool)
	barcodeRepo := repositories.NewBarcodeRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	priceRepo := repositories.NewPriceRepository(pool)
	salesRepo := repositories.NewSalesRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)

	// Initialize services
	resolverService := services.NewResolverService(caps, itemRepo, barcodeRepo)
	snapshotService := services.NewSnapshotService(
		caps,
		itemRepo,
		barcodeRepo,
		stockRepo,
		priceRepo,
		salesRepo,
		purchaseRepo,
		settingsRepo,
	)

	// Initialize handlers
	snapshotTTL := time.Duration(cfg.Cache.SnapshotTTLSeconds) * time.Second
	itemHandler := handlers.NewItemHandler(resolverService, snapshotService, snapshotTTL, logger)
	monitoringHandler := handlers.NewMonitoringHandler(monitoring.NewCollector(pool))
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	router := h.NewRouter(itemHandler, monitoringHandler, healthHandler)

	// Wrap with panic recovery, CORS, request ID, and request logging.
	// Metrics run inside the router so the path label uses route templates.
	corsMiddleware := middleware.NewCORS(cfg)
	requestLogging := middleware.NewRequestLogging(logger)
	handler := middleware.NewPanicRecovery(logger)(
		corsMiddleware(middleware.RequestID(requestLogging.Handler(router))),
	)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.WithField("addr", addr).Info("server listening")
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.WithError(err).Fatal("server failed to start")
	}
}
