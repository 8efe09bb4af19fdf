package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"inspector-backend/internal/cache"
	"inspector-backend/internal/models"
	"inspector-backend/internal/services"
	"inspector-backend/pkg/utils"
)

// BarcodeResolver resolves scanned input to item identities.
type BarcodeResolver interface {
	Resolve(ctx context.Context, barcode string) (*models.ResolveResult, error)
}

// SnapshotProvider assembles the operational snapshot for one item.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, itemCode string) (*models.ItemSnapshot, error)
}

// ItemHandler serves the inspector endpoints.
type ItemHandler struct {
	resolver  BarcodeResolver
	snapshots SnapshotProvider
	cacheTTL  time.Duration
	logger    *logrus.Logger
}

func NewItemHandler(resolver BarcodeResolver, snapshots SnapshotProvider, cacheTTL time.Duration, logger *logrus.Logger) *ItemHandler {
	return &ItemHandler{
		resolver:  resolver,
		snapshots: snapshots,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ResolveBarcode handles GET /api/items/resolve-barcode?barcode=...
// Expected outcomes (empty input, no match, multiple matches) are part of
// the result envelope and stay HTTP 200.
func (h *ItemHandler) ResolveBarcode(w http.ResponseWriter, r *http.Request) {
	result, err := h.resolver.Resolve(r.Context(), r.URL.Query().Get("barcode"))
	if err != nil {
		h.logger.WithError(err).Error("barcode resolution failed")
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.JSON(w, http.StatusOK, result)
}

// GetSnapshot handles GET /api/items/{item_code}/snapshot. Responses are
// cached in Redis for a short TTL since a scan-heavy counter tends to hit
// the same few items repeatedly.
func (h *ItemHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	itemCode := mux.Vars(r)["item_code"]

	cacheKey := cache.SnapshotKey(itemCode)
	if h.cacheTTL > 0 {
		if data, ok := cache.GetCached(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(data)
			return
		}
	}

	snapshot, err := h.snapshots.Snapshot(ctx, itemCode)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.WithError(err).WithField("item_code", itemCode).Error("snapshot assembly failed")
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.WithError(err).Error("snapshot marshal failed")
		utils.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if h.cacheTTL > 0 {
		cache.SetCached(ctx, cacheKey, data, h.cacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}
