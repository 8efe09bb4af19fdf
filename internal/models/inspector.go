package models

// ResolveResult is the barcode resolver's envelope. Expected failures
// (empty input, no match) come back as OK=false with a message, never as an
// error; callers must inspect OK.
type ResolveResult struct {
	OK       bool          `json:"ok"`
	ItemCode string        `json:"item_code,omitempty"`
	Matches  []ItemSummary `json:"matches,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// ItemSnapshot is the full inspector response for one item. Every section
// is present and well-typed regardless of which optional tables the
// deployment carries; missing schema degrades a section to empty, zero or
// null, never to an error.
type ItemSnapshot struct {
	OK                bool           `json:"ok"`
	Item              *Item          `json:"item"`
	Barcodes          []string       `json:"barcodes"`
	Bins              []*Bin         `json:"bins"`
	PriceHistory      []*ItemPrice   `json:"price_history"`
	RecentSales       []*SaleRow     `json:"recent_sales"`
	RecentPurchases   []*PurchaseRow `json:"recent_purchases"`
	SalesLast30Days   SalesTotals    `json:"sales_last_30_days"`
	SellingPrice      SellingPrice   `json:"selling_price"`
	DaysSinceLastSale *int           `json:"days_since_last_sale"`
}
