package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"inspector-backend/internal/models"
	"inspector-backend/internal/repositories"
	"inspector-backend/internal/schema"
)

// fakeIntrospector backs a capability cache in tests. Snapshot sections run
// concurrently, so it is mutex-guarded.
type fakeIntrospector struct {
	mu      sync.Mutex
	tables  map[string]bool
	columns map[string]bool
}

func (f *fakeIntrospector) TableExists(ctx context.Context, table string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tables[table], nil
}

func (f *fakeIntrospector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.columns[table+":"+column], nil
}

func newCaps(tables map[string]bool, columns map[string]bool) *schema.Capabilities {
	if tables == nil {
		tables = map[string]bool{}
	}
	if columns == nil {
		columns = map[string]bool{}
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return schema.NewCapabilities(&fakeIntrospector{tables: tables, columns: columns}, logger)
}

// fullSchema lists every table and optional column the service knows about.
func fullSchema() (map[string]bool, map[string]bool) {
	tables := map[string]bool{
		tableItems:                true,
		tableItemBarcodes:         true,
		tableBins:                 true,
		tableStockLedgerEntries:   true,
		tableItemPrices:           true,
		tableSalesInvoices:        true,
		tableSalesInvoiceItems:    true,
		tablePurchaseInvoices:     true,
		tablePurchaseInvoiceItems: true,
		tableStockSettings:        true,
		tableSellingSettings:      true,
	}
	columns := map[string]bool{
		tableItems + ":" + colLegacyBarcode:                   true,
		tableItems + ":" + colStandardRate:                    true,
		tableItems + ":" + colLastPurchaseRate:                true,
		tableItems + ":" + colReorderLevel:                    true,
		tableBins + ":" + colIndentedQty:                      true,
		tableBins + ":" + colPlannedQty:                       true,
		tableItemPrices + ":" + colValidFrom:                  true,
		tableItemPrices + ":" + colValidUpto:                  true,
		tableStockSettings + ":" + colDefaultSellingPriceList: true,
		tableSellingSettings + ":" + colSellingPriceList:      true,
	}
	return tables, columns
}

type fakeItemRepo struct {
	items     map[string]*models.Item
	legacy    map[string]string
	summaries map[string]models.ItemSummary

	existsCalls  int
	getCalls     int
	legacyCalls  int
	summaryCalls int
	getFields    repositories.ItemFields
	getNil       bool
}

var _ repositories.ItemRepository = (*fakeItemRepo)(nil)

func (f *fakeItemRepo) Exists(ctx context.Context, itemCode string) (bool, error) {
	f.existsCalls++
	_, ok := f.items[itemCode]
	return ok, nil
}

func (f *fakeItemRepo) Get(ctx context.Context, itemCode string, fields repositories.ItemFields) (*models.Item, error) {
	f.getCalls++
	f.getFields = fields
	if f.getNil {
		return nil, nil
	}
	item, ok := f.items[itemCode]
	if !ok {
		return nil, nil
	}
	out := *item
	if !fields.StandardRate {
		out.StandardRate = nil
	}
	if !fields.LastPurchaseRate {
		out.LastPurchaseRate = nil
	}
	if !fields.ReorderLevel {
		out.ReorderLevel = nil
	}
	return &out, nil
}

func (f *fakeItemRepo) CodeByLegacyBarcode(ctx context.Context, barcode string) (string, error) {
	f.legacyCalls++
	return f.legacy[barcode], nil
}

func (f *fakeItemRepo) Summaries(ctx context.Context, itemCodes []string, limit int) ([]models.ItemSummary, error) {
	f.summaryCalls++
	// Store order, not match order: lets tests verify the service re-orders.
	codes := append([]string(nil), itemCodes...)
	sort.Strings(codes)
	var out []models.ItemSummary
	for _, code := range codes {
		if s, ok := f.summaries[code]; ok {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeBarcodeRepo struct {
	byBarcode map[string][]string
	byItem    map[string][]string

	itemCodesCalls int
	forItemCalls   int
}

var _ repositories.BarcodeRepository = (*fakeBarcodeRepo)(nil)

func (f *fakeBarcodeRepo) ItemCodes(ctx context.Context, barcode string, limit int) ([]string, error) {
	f.itemCodesCalls++
	codes := f.byBarcode[barcode]
	if len(codes) > limit {
		codes = codes[:limit]
	}
	return codes, nil
}

func (f *fakeBarcodeRepo) ForItem(ctx context.Context, itemCode string, limit int) ([]string, error) {
	f.forItemCalls++
	barcodes := f.byItem[itemCode]
	if len(barcodes) > limit {
		barcodes = barcodes[:limit]
	}
	return barcodes, nil
}

type fakeStockRepo struct {
	bins  []*models.Bin
	rates map[string]decimal.Decimal

	binsCalls  int
	ratesCalls int
	binFields  repositories.BinFields
}

var _ repositories.StockRepository = (*fakeStockRepo)(nil)

func (f *fakeStockRepo) Bins(ctx context.Context, itemCode string, fields repositories.BinFields, limit int) ([]*models.Bin, error) {
	f.binsCalls++
	f.binFields = fields
	out := make([]*models.Bin, 0, len(f.bins))
	for _, b := range f.bins {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStockRepo) LatestValuationRates(ctx context.Context, itemCode string) (map[string]decimal.Decimal, error) {
	f.ratesCalls++
	return f.rates, nil
}

type fakePriceRepo struct {
	history []*models.ItemPrice
	selling *models.SellingPrice

	historyCalls        int
	historyWithValidity bool
	sellingCalls        int
	sellingPriceList    string
}

var _ repositories.PriceRepository = (*fakePriceRepo)(nil)

func (f *fakePriceRepo) History(ctx context.Context, itemCode string, withValidity bool, limit int) ([]*models.ItemPrice, error) {
	f.historyCalls++
	f.historyWithValidity = withValidity
	return f.history, nil
}

func (f *fakePriceRepo) LatestSelling(ctx context.Context, itemCode, priceList string) (*models.SellingPrice, error) {
	f.sellingCalls++
	f.sellingPriceList = priceList
	return f.selling, nil
}

type fakeSalesRepo struct {
	recent   []*models.SaleRow
	totals   models.SalesTotals
	lastSale *time.Time

	recentCalls   int
	totalsCalls   int
	lastSaleCalls int
	totalsSince   time.Time
}

var _ repositories.SalesRepository = (*fakeSalesRepo)(nil)

func (f *fakeSalesRepo) Recent(ctx context.Context, itemCode string, limit int) ([]*models.SaleRow, error) {
	f.recentCalls++
	return f.recent, nil
}

func (f *fakeSalesRepo) TotalsSince(ctx context.Context, itemCode string, since time.Time) (models.SalesTotals, error) {
	f.totalsCalls++
	f.totalsSince = since
	return f.totals, nil
}

func (f *fakeSalesRepo) LastSaleDate(ctx context.Context, itemCode string) (*time.Time, error) {
	f.lastSaleCalls++
	return f.lastSale, nil
}

type fakePurchaseRepo struct {
	recent      []*models.PurchaseRow
	recentCalls int
}

var _ repositories.PurchaseRepository = (*fakePurchaseRepo)(nil)

func (f *fakePurchaseRepo) Recent(ctx context.Context, itemCode string, limit int) ([]*models.PurchaseRow, error) {
	f.recentCalls++
	return f.recent, nil
}

type fakeSettingsRepo struct {
	values map[string]string
	calls  int
}

var _ repositories.SettingsRepository = (*fakeSettingsRepo)(nil)

func (f *fakeSettingsRepo) SingleValue(ctx context.Context, table, column string) (string, error) {
	f.calls++
	return f.values[table+"."+column], nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
