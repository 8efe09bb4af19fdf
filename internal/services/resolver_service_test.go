package services

import (
	"context"
	"testing"

	"inspector-backend/internal/models"
)

func TestResolveEmptyBarcode(t *testing.T) {
	svc := NewResolverService(newCaps(nil, nil), &fakeItemRepo{}, &fakeBarcodeRepo{})

	for _, input := range []string{"", "   ", "\t\n"} {
		result, err := svc.Resolve(context.Background(), input)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", input, err)
		}
		if result.OK {
			t.Errorf("Resolve(%q).OK = true, want false", input)
		}
		if result.Message != "Empty barcode" {
			t.Errorf("Resolve(%q).Message = %q, want %q", input, result.Message, "Empty barcode")
		}
	}
}

func TestResolveSingleBarcodeTableMatch(t *testing.T) {
	tables, columns := fullSchema()
	items := &fakeItemRepo{
		items: map[string]*models.Item{"ITM-001": {ItemCode: "ITM-001"}},
	}
	barcodes := &fakeBarcodeRepo{
		byBarcode: map[string][]string{"8901030801693": {"ITM-001"}},
	}
	svc := NewResolverService(newCaps(tables, columns), items, barcodes)

	result, err := svc.Resolve(context.Background(), "8901030801693")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !result.OK {
		t.Fatalf("Resolve.OK = false, message %q", result.Message)
	}
	if result.ItemCode != "ITM-001" {
		t.Errorf("ItemCode = %q, want ITM-001", result.ItemCode)
	}
	if len(result.Matches) != 0 {
		t.Errorf("Matches = %v, want empty for a single match", result.Matches)
	}
}

func TestResolveEarlierSourceSuppressesLater(t *testing.T) {
	tables, columns := fullSchema()
	// The legacy column and a same-named item both exist and would match,
	// but the barcode table already answered.
	items := &fakeItemRepo{
		items:  map[string]*models.Item{"ITM-A": {ItemCode: "ITM-A"}, "CODE": {ItemCode: "CODE"}},
		legacy: map[string]string{"CODE": "ITM-B"},
	}
	barcodes := &fakeBarcodeRepo{
		byBarcode: map[string][]string{"CODE": {"ITM-A"}},
	}
	svc := NewResolverService(newCaps(tables, columns), items, barcodes)

	result, err := svc.Resolve(context.Background(), "CODE")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.ItemCode != "ITM-A" {
		t.Errorf("ItemCode = %q, want the barcode-table match ITM-A", result.ItemCode)
	}
	if items.legacyCalls != 0 {
		t.Errorf("legacy lookup ran %d times after the barcode table matched", items.legacyCalls)
	}
	if items.existsCalls != 0 {
		t.Errorf("direct existence probe ran %d times after the barcode table matched", items.existsCalls)
	}
}

func TestResolveLegacyFallback(t *testing.T) {
	tables, columns := fullSchema()
	delete(tables, tableItemBarcodes)

	items := &fakeItemRepo{
		items:  map[string]*models.Item{"ITM-OLD": {ItemCode: "ITM-OLD"}},
		legacy: map[string]string{"4005900123456": "ITM-OLD"},
	}
	barcodes := &fakeBarcodeRepo{}
	svc := NewResolverService(newCaps(tables, columns), items, barcodes)

	result, err := svc.Resolve(context.Background(), "4005900123456")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !result.OK || result.ItemCode != "ITM-OLD" {
		t.Errorf("result = %+v, want ok with ITM-OLD", result)
	}
	if barcodes.itemCodesCalls != 0 {
		t.Errorf("barcode table queried %d times though the schema lacks it", barcodes.itemCodesCalls)
	}
}

func TestResolveDirectItemCode(t *testing.T) {
	tables, columns := fullSchema()
	items := &fakeItemRepo{
		items: map[string]*models.Item{"ITM-001": {ItemCode: "ITM-001"}},
	}
	svc := NewResolverService(newCaps(tables, columns), items, &fakeBarcodeRepo{})

	result, err := svc.Resolve(context.Background(), "ITM-001")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !result.OK || result.ItemCode != "ITM-001" {
		t.Errorf("result = %+v, want ok with ITM-001", result)
	}
}

func TestResolveNoMatch(t *testing.T) {
	tables, columns := fullSchema()
	svc := NewResolverService(newCaps(tables, columns), &fakeItemRepo{}, &fakeBarcodeRepo{})

	result, err := svc.Resolve(context.Background(), "0000000000000")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if result.OK {
		t.Error("Resolve.OK = true, want false")
	}
	want := "No item found for barcode: 0000000000000"
	if result.Message != want {
		t.Errorf("Message = %q, want %q", result.Message, want)
	}
}

func TestResolveMultipleMatches(t *testing.T) {
	tables, columns := fullSchema()
	items := &fakeItemRepo{
		items: map[string]*models.Item{
			"ITM-B": {ItemCode: "ITM-B"},
			"ITM-A": {ItemCode: "ITM-A"},
		},
		summaries: map[string]models.ItemSummary{
			"ITM-B": {ItemCode: "ITM-B", ItemName: "Beta"},
			"ITM-A": {ItemCode: "ITM-A", ItemName: "Alpha", Disabled: true},
		},
	}
	// Duplicates in the lookup must collapse, keeping first-seen order.
	barcodes := &fakeBarcodeRepo{
		byBarcode: map[string][]string{"SHARED": {"ITM-B", "ITM-A", "ITM-B"}},
	}
	svc := NewResolverService(newCaps(tables, columns), items, barcodes)

	result, err := svc.Resolve(context.Background(), "SHARED")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !result.OK {
		t.Fatalf("Resolve.OK = false, message %q", result.Message)
	}
	if result.ItemCode != "" {
		t.Errorf("ItemCode = %q, want empty for multiple matches", result.ItemCode)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(result.Matches))
	}
	// Match order, not the store's order.
	if result.Matches[0].ItemCode != "ITM-B" || result.Matches[1].ItemCode != "ITM-A" {
		t.Errorf("Matches order = [%s %s], want [ITM-B ITM-A]",
			result.Matches[0].ItemCode, result.Matches[1].ItemCode)
	}
	if !result.Matches[1].Disabled {
		t.Error("summary lost the disabled flag")
	}
}

func TestResolveTrimsInput(t *testing.T) {
	tables, columns := fullSchema()
	barcodes := &fakeBarcodeRepo{
		byBarcode: map[string][]string{"8901030801693": {"ITM-001"}},
	}
	items := &fakeItemRepo{items: map[string]*models.Item{"ITM-001": {ItemCode: "ITM-001"}}}
	svc := NewResolverService(newCaps(tables, columns), items, barcodes)

	result, err := svc.Resolve(context.Background(), "  8901030801693  ")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !result.OK || result.ItemCode != "ITM-001" {
		t.Errorf("result = %+v, want ok with ITM-001", result)
	}
}
