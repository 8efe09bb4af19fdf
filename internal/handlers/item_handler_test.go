package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"inspector-backend/internal/models"
	"inspector-backend/internal/services"
)

type fakeResolver struct {
	result     *models.ResolveResult
	err        error
	gotBarcode string
}

func (f *fakeResolver) Resolve(ctx context.Context, barcode string) (*models.ResolveResult, error) {
	f.gotBarcode = barcode
	return f.result, f.err
}

type fakeSnapshots struct {
	snapshot *models.ItemSnapshot
	err      error
	gotCode  string
	calls    int
}

func (f *fakeSnapshots) Snapshot(ctx context.Context, itemCode string) (*models.ItemSnapshot, error) {
	f.calls++
	f.gotCode = itemCode
	return f.snapshot, f.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&discard{})
	return logger
}

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }

func newItemRouter(h *ItemHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/items/resolve-barcode", h.ResolveBarcode).Methods("GET")
	r.HandleFunc("/api/items/{item_code}/snapshot", h.GetSnapshot).Methods("GET")
	return r
}

func TestResolveBarcodePassesQueryParam(t *testing.T) {
	resolver := &fakeResolver{result: &models.ResolveResult{OK: true, ItemCode: "ITM-001"}}
	h := NewItemHandler(resolver, &fakeSnapshots{}, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/resolve-barcode?barcode=8901030801693", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if resolver.gotBarcode != "8901030801693" {
		t.Errorf("resolver got barcode %q", resolver.gotBarcode)
	}

	var got models.ResolveResult
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.OK || got.ItemCode != "ITM-001" {
		t.Errorf("body = %+v, want ok with ITM-001", got)
	}
}

func TestResolveBarcodeSoftFailureStays200(t *testing.T) {
	resolver := &fakeResolver{result: &models.ResolveResult{OK: false, Message: "No item found for barcode: nope"}}
	h := NewItemHandler(resolver, &fakeSnapshots{}, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/resolve-barcode?barcode=nope", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for soft failure", rr.Code)
	}
	var got models.ResolveResult
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.OK || got.Message != "No item found for barcode: nope" {
		t.Errorf("body = %+v", got)
	}
}

func TestResolveBarcodeStoreError(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("connection refused")}
	h := NewItemHandler(resolver, &fakeSnapshots{}, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/resolve-barcode?barcode=x", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, internals must not leak", body["error"])
	}
}

func TestGetSnapshotUnknownItem(t *testing.T) {
	snapshots := &fakeSnapshots{err: fmt.Errorf("%w: %s", services.ErrItemNotFound, "NOPE")}
	h := NewItemHandler(&fakeResolver{}, snapshots, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/NOPE/snapshot", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Item not found: NOPE" {
		t.Errorf("error = %q, want %q", body["error"], "Item not found: NOPE")
	}
	if snapshots.gotCode != "NOPE" {
		t.Errorf("service got code %q", snapshots.gotCode)
	}
}

func TestGetSnapshotSuccess(t *testing.T) {
	snapshots := &fakeSnapshots{snapshot: &models.ItemSnapshot{
		OK:       true,
		Item:     &models.Item{ItemCode: "ITM-001", ItemName: "Cola 500ml"},
		Barcodes: []string{"8901030801693"},
	}}
	h := NewItemHandler(&fakeResolver{}, snapshots, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/ITM-001/snapshot", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if xc := rr.Header().Get("X-Cache"); xc != "MISS" {
		t.Errorf("X-Cache = %q, want MISS", xc)
	}

	var got models.ItemSnapshot
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Item == nil || got.Item.ItemCode != "ITM-001" {
		t.Errorf("item = %+v", got.Item)
	}
	if len(got.Barcodes) != 1 || got.Barcodes[0] != "8901030801693" {
		t.Errorf("barcodes = %v", got.Barcodes)
	}
}

func TestGetSnapshotStoreError(t *testing.T) {
	snapshots := &fakeSnapshots{err: errors.New("query timeout")}
	h := NewItemHandler(&fakeResolver{}, snapshots, 0, quietLogger())

	req := httptest.NewRequest("GET", "/api/items/ITM-001/snapshot", nil)
	rr := httptest.NewRecorder()
	newItemRouter(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("error = %q, internals must not leak", body["error"])
	}
}
