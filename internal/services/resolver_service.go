package services

import (
	"context"
	"fmt"
	"strings"

	"inspector-backend/internal/metrics"
	"inspector-backend/internal/models"
	"inspector-backend/internal/repositories"
	"inspector-backend/internal/schema"
)

// Resolution limits. The barcode table lookup is paged to 20, which also
// bounds the dedup set; the summary cap below is a safety margin on top.
const (
	barcodeMatchLimit = 20
	matchSummaryLimit = 50
)

// ResolverService maps a scanned or typed string to item identities.
// Expected failures are soft: they come back inside the result envelope,
// never as an error. Errors are reserved for store failures.
type ResolverService struct {
	caps     *schema.Capabilities
	items    repositories.ItemRepository
	barcodes repositories.BarcodeRepository
}

func NewResolverService(
	caps *schema.Capabilities,
	items repositories.ItemRepository,
	barcodes repositories.BarcodeRepository,
) *ResolverService {
	return &ResolverService{
		caps:     caps,
		items:    items,
		barcodes: barcodes,
	}
}

// Resolve looks the input up in three sources, first non-empty wins:
// the item_barcodes child table, the legacy items.barcode column, and
// finally the input treated as an item code. Sources whose schema is
// absent are skipped.
func (s *ResolverService) Resolve(ctx context.Context, barcode string) (*models.ResolveResult, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		metrics.BarcodeResolutions.WithLabelValues("empty").Inc()
		return &models.ResolveResult{OK: false, Message: "Empty barcode"}, nil
	}

	var matches []string

	// 1) Barcode child table, the authoritative source
	if s.caps.HasTable(ctx, tableItemBarcodes) {
		codes, err := s.barcodes.ItemCodes(ctx, barcode, barcodeMatchLimit)
		if err != nil {
			return nil, err
		}
		matches = append(matches, codes...)
	}

	// 2) Legacy single-value barcode column on items
	if len(matches) == 0 && s.caps.HasColumn(ctx, tableItems, colLegacyBarcode) {
		code, err := s.items.CodeByLegacyBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if code != "" {
			matches = append(matches, code)
		}
	}

	// 3) Operator typed an item code into the scan box
	if len(matches) == 0 {
		exists, err := s.items.Exists(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			matches = append(matches, barcode)
		}
	}

	matches = dedupe(matches)

	if len(matches) == 0 {
		metrics.BarcodeResolutions.WithLabelValues("none").Inc()
		return &models.ResolveResult{
			OK:      false,
			Message: fmt.Sprintf("No item found for barcode: %s", barcode),
		}, nil
	}

	if len(matches) == 1 {
		metrics.BarcodeResolutions.WithLabelValues("single").Inc()
		return &models.ResolveResult{OK: true, ItemCode: matches[0]}, nil
	}

	// Several items share the barcode; expand to summaries so the operator
	// can pick.
	summaries, err := s.items.Summaries(ctx, matches, matchSummaryLimit)
	if err != nil {
		return nil, err
	}
	metrics.BarcodeResolutions.WithLabelValues("multiple").Inc()
	return &models.ResolveResult{OK: true, Matches: inMatchOrder(matches, summaries)}, nil
}

// dedupe keeps the first occurrence of each code, so the authoritative
// source stays ranked first.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	var out []string
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

// inMatchOrder re-orders the batch lookup's rows to match resolution order,
// dropping codes the lookup did not return.
func inMatchOrder(matches []string, summaries []models.ItemSummary) []models.ItemSummary {
	byCode := make(map[string]models.ItemSummary, len(summaries))
	for _, s := range summaries {
		byCode[s.ItemCode] = s
	}
	out := make([]models.ItemSummary, 0, len(summaries))
	for _, code := range matches {
		if s, ok := byCode[code]; ok {
			out = append(out, s)
		}
	}
	return out
}
