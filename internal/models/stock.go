package models

import "github.com/shopspring/decimal"

// Bin is one warehouse's quantity state for an item, enriched with the
// latest valuation. ValuationRate is 0 when the warehouse has no ledger
// entries; StockValueEst is always ActualQty times ValuationRate.
type Bin struct {
	Warehouse     string           `json:"warehouse"`
	ActualQty     decimal.Decimal  `json:"actual_qty"`
	ProjectedQty  decimal.Decimal  `json:"projected_qty"`
	ReservedQty   decimal.Decimal  `json:"reserved_qty"`
	OrderedQty    decimal.Decimal  `json:"ordered_qty"`
	IndentedQty   *decimal.Decimal `json:"indented_qty,omitempty"`
	PlannedQty    *decimal.Decimal `json:"planned_qty,omitempty"`
	ValuationRate decimal.Decimal  `json:"valuation_rate"`
	StockValueEst decimal.Decimal  `json:"stock_value_est"`
}
