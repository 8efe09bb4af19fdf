package models

import "github.com/shopspring/decimal"

// Item is the master-data identity section of a snapshot. The rate and
// reorder fields are optional schema: they are only populated (and only
// serialized) on deployments whose items table carries them.
type Item struct {
	ItemCode    string `json:"item_code"`
	ItemName    string `json:"item_name"`
	ItemGroup   string `json:"item_group"`
	Brand       string `json:"brand"`
	StockUOM    string `json:"stock_uom"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Disabled    bool   `json:"disabled"`
	IsStockItem bool   `json:"is_stock_item"`

	StandardRate     *decimal.Decimal `json:"standard_rate,omitempty"`
	LastPurchaseRate *decimal.Decimal `json:"last_purchase_rate,omitempty"`
	ReorderLevel     *decimal.Decimal `json:"reorder_level,omitempty"`
}

// ItemSummary is the compact shape returned when one barcode resolves to
// several items and the operator has to pick.
type ItemSummary struct {
	ItemCode string `json:"item_code"`
	ItemName string `json:"item_name"`
	Image    string `json:"image"`
	Disabled bool   `json:"disabled"`
}
