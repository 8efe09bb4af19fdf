package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"inspector-backend/internal/metrics"
	"inspector-backend/internal/models"
	"inspector-backend/internal/repositories"
	"inspector-backend/internal/schema"
	"inspector-backend/internal/timeutil"
)

// Section caps for the snapshot response.
const (
	snapshotBarcodeLimit = 50
	binLimit             = 500
	priceHistoryLimit    = 1000
	recentTxnLimit       = 10
	salesWindowDays      = 30
)

// ErrItemNotFound is returned when the snapshot precondition fails. Unlike
// the resolver's soft failures this is a hard error: a snapshot request
// carries a code obtained from a prior successful resolution, so an unknown
// code means caller misuse.
var ErrItemNotFound = errors.New("Item not found")

// SnapshotService assembles the full inspector response for one item. The
// nine sections are independent reads; each is gated on the capability
// cache where its schema is optional and degrades to an empty result when
// absent. Store failures fail the whole snapshot.
type SnapshotService struct {
	caps      *schema.Capabilities
	items     repositories.ItemRepository
	barcodes  repositories.BarcodeRepository
	stock     repositories.StockRepository
	prices    repositories.PriceRepository
	sales     repositories.SalesRepository
	purchases repositories.PurchaseRepository
	settings  repositories.SettingsRepository
	now       func() time.Time
}

func NewSnapshotService(
	caps *schema.Capabilities,
	items repositories.ItemRepository,
	barcodes repositories.BarcodeRepository,
	stock repositories.StockRepository,
	prices repositories.PriceRepository,
	sales repositories.SalesRepository,
	purchases repositories.PurchaseRepository,
	settings repositories.SettingsRepository,
) *SnapshotService {
	return &SnapshotService{
		caps:      caps,
		items:     items,
		barcodes:  barcodes,
		stock:     stock,
		prices:    prices,
		sales:     sales,
		purchases: purchases,
		settings:  settings,
		now:       time.Now,
	}
}

// SetNow overrides the clock used for the trailing sales window and the
// days-since-last-sale computation.
func (s *SnapshotService) SetNow(now func() time.Time) {
	s.now = now
}

// Snapshot gathers all sections in parallel and assembles one response.
func (s *SnapshotService) Snapshot(ctx context.Context, itemCode string) (*models.ItemSnapshot, error) {
	start := time.Now()
	defer func() {
		metrics.SnapshotDuration.Observe(time.Since(start).Seconds())
	}()

	itemCode = strings.TrimSpace(itemCode)
	if itemCode == "" {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemCode)
	}
	exists, err := s.items.Exists(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemCode)
	}

	// Parallel section fetching using goroutines
	var (
		item            *models.Item
		barcodes        []string
		bins            []*models.Bin
		priceHistory    []*models.ItemPrice
		recentSales     []*models.SaleRow
		recentPurchases []*models.PurchaseRow
		salesTotals     models.SalesTotals
		sellingPrice    models.SellingPrice
		daysSinceSale   *int

		wg           sync.WaitGroup
		itemErr      error
		barcodesErr  error
		binsErr      error
		pricesErr    error
		salesErr     error
		purchasesErr error
		totalsErr    error
		sellingErr   error
		lastSaleErr  error
	)

	wg.Add(9)

	go func() {
		defer wg.Done()
		item, itemErr = s.itemData(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		barcodes, barcodesErr = s.itemBarcodes(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		bins, binsErr = s.stockByWarehouse(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		priceHistory, pricesErr = s.priceHistory(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		recentSales, salesErr = s.recentSales(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		recentPurchases, purchasesErr = s.recentPurchases(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		salesTotals, totalsErr = s.salesLast30Days(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		sellingPrice, sellingErr = s.defaultSellingPrice(ctx, itemCode)
	}()

	go func() {
		defer wg.Done()
		daysSinceSale, lastSaleErr = s.daysSinceLastSale(ctx, itemCode)
	}()

	wg.Wait()

	if itemErr != nil {
		return nil, itemErr
	}
	if barcodesErr != nil {
		return nil, barcodesErr
	}
	if binsErr != nil {
		return nil, binsErr
	}
	if pricesErr != nil {
		return nil, pricesErr
	}
	if salesErr != nil {
		return nil, salesErr
	}
	if purchasesErr != nil {
		return nil, purchasesErr
	}
	if totalsErr != nil {
		return nil, totalsErr
	}
	if sellingErr != nil {
		return nil, sellingErr
	}
	if lastSaleErr != nil {
		return nil, lastSaleErr
	}

	return &models.ItemSnapshot{
		OK:                true,
		Item:              item,
		Barcodes:          barcodes,
		Bins:              bins,
		PriceHistory:      priceHistory,
		RecentSales:       recentSales,
		RecentPurchases:   recentPurchases,
		SalesLast30Days:   salesTotals,
		SellingPrice:      sellingPrice,
		DaysSinceLastSale: daysSinceSale,
	}, nil
}

func (s *SnapshotService) itemData(ctx context.Context, itemCode string) (*models.Item, error) {
	fields := repositories.ItemFields{
		StandardRate:     s.caps.HasColumn(ctx, tableItems, colStandardRate),
		LastPurchaseRate: s.caps.HasColumn(ctx, tableItems, colLastPurchaseRate),
		ReorderLevel:     s.caps.HasColumn(ctx, tableItems, colReorderLevel),
	}
	item, err := s.items.Get(ctx, itemCode, fields)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// Row vanished after the precondition check; keep the response
		// shape intact.
		return &models.Item{}, nil
	}
	return item, nil
}

func (s *SnapshotService) itemBarcodes(ctx context.Context, itemCode string) ([]string, error) {
	if !s.caps.HasTable(ctx, tableItemBarcodes) {
		return []string{}, nil
	}
	rows, err := s.barcodes.ForItem(ctx, itemCode, snapshotBarcodeLimit)
	if err != nil {
		return nil, err
	}
	barcodes := make([]string, 0, len(rows))
	for _, b := range rows {
		if b != "" {
			barcodes = append(barcodes, b)
		}
	}
	return barcodes, nil
}

func (s *SnapshotService) stockByWarehouse(ctx context.Context, itemCode string) ([]*models.Bin, error) {
	fields := repositories.BinFields{
		IndentedQty: s.caps.HasColumn(ctx, tableBins, colIndentedQty),
		PlannedQty:  s.caps.HasColumn(ctx, tableBins, colPlannedQty),
	}
	bins, err := s.stock.Bins(ctx, itemCode, fields, binLimit)
	if err != nil {
		return nil, err
	}

	rates := map[string]decimal.Decimal{}
	if s.caps.HasTable(ctx, tableStockLedgerEntries) {
		rates, err = s.stock.LatestValuationRates(ctx, itemCode)
		if err != nil {
			return nil, err
		}
	}

	for _, bin := range bins {
		rate := rates[bin.Warehouse]
		bin.ValuationRate = rate
		bin.StockValueEst = bin.ActualQty.Mul(rate)
	}

	if bins == nil {
		bins = []*models.Bin{}
	}
	return bins, nil
}

func (s *SnapshotService) priceHistory(ctx context.Context, itemCode string) ([]*models.ItemPrice, error) {
	if !s.caps.HasTable(ctx, tableItemPrices) {
		return []*models.ItemPrice{}, nil
	}
	withValidity := s.caps.HasColumn(ctx, tableItemPrices, colValidFrom) &&
		s.caps.HasColumn(ctx, tableItemPrices, colValidUpto)
	rows, err := s.prices.History(ctx, itemCode, withValidity, priceHistoryLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.ItemPrice{}
	}
	return rows, nil
}

func (s *SnapshotService) recentSales(ctx context.Context, itemCode string) ([]*models.SaleRow, error) {
	if !s.hasSalesTables(ctx) {
		return []*models.SaleRow{}, nil
	}
	rows, err := s.sales.Recent(ctx, itemCode, recentTxnLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.SaleRow{}
	}
	return rows, nil
}

func (s *SnapshotService) recentPurchases(ctx context.Context, itemCode string) ([]*models.PurchaseRow, error) {
	if !s.caps.HasTable(ctx, tablePurchaseInvoices) || !s.caps.HasTable(ctx, tablePurchaseInvoiceItems) {
		return []*models.PurchaseRow{}, nil
	}
	rows, err := s.purchases.Recent(ctx, itemCode, recentTxnLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.PurchaseRow{}
	}
	return rows, nil
}

func (s *SnapshotService) salesLast30Days(ctx context.Context, itemCode string) (models.SalesTotals, error) {
	if !s.hasSalesTables(ctx) {
		return models.SalesTotals{}, nil
	}
	since := timeutil.AddDays(timeutil.DateOnly(s.now()), -salesWindowDays)
	return s.sales.TotalsSince(ctx, itemCode, since)
}

func (s *SnapshotService) defaultSellingPrice(ctx context.Context, itemCode string) (models.SellingPrice, error) {
	if !s.caps.HasTable(ctx, tableItemPrices) {
		return models.SellingPrice{}, nil
	}

	// Default price list: stock settings first, selling settings as the
	// fallback; empty values fall through.
	priceList := ""
	if s.caps.HasTable(ctx, tableStockSettings) &&
		s.caps.HasColumn(ctx, tableStockSettings, colDefaultSellingPriceList) {
		v, err := s.settings.SingleValue(ctx, tableStockSettings, colDefaultSellingPriceList)
		if err != nil {
			return models.SellingPrice{}, err
		}
		priceList = v
	}
	if priceList == "" && s.caps.HasTable(ctx, tableSellingSettings) &&
		s.caps.HasColumn(ctx, tableSellingSettings, colSellingPriceList) {
		v, err := s.settings.SingleValue(ctx, tableSellingSettings, colSellingPriceList)
		if err != nil {
			return models.SellingPrice{}, err
		}
		priceList = v
	}

	sp, err := s.prices.LatestSelling(ctx, itemCode, priceList)
	if err != nil {
		return models.SellingPrice{}, err
	}
	if sp == nil {
		return models.SellingPrice{}, nil
	}
	return *sp, nil
}

func (s *SnapshotService) daysSinceLastSale(ctx context.Context, itemCode string) (*int, error) {
	if !s.hasSalesTables(ctx) {
		return nil, nil
	}
	last, err := s.sales.LastSaleDate(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	days := timeutil.DayDiff(s.now(), *last)
	return &days, nil
}

func (s *SnapshotService) hasSalesTables(ctx context.Context) bool {
	return s.caps.HasTable(ctx, tableSalesInvoices) && s.caps.HasTable(ctx, tableSalesInvoiceItems)
}
