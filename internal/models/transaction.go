package models

import "github.com/shopspring/decimal"

// SaleRow is one submitted sales line joined to its invoice header. Qty is
// in stock UOM; Rate and Amount are converted to the company base currency
// via the invoice's conversion rate.
type SaleRow struct {
	Invoice     string          `json:"sales_invoice"`
	PostingDate Date            `json:"posting_date"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Customer    string          `json:"customer"`
	Currency    string          `json:"currency"`
}

// PurchaseRow mirrors SaleRow for purchase invoices.
type PurchaseRow struct {
	Invoice     string          `json:"purchase_invoice"`
	PostingDate Date            `json:"posting_date"`
	Qty         decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Supplier    string          `json:"supplier"`
	Currency    string          `json:"currency"`
}

// SalesTotals aggregates submitted sales over a window.
type SalesTotals struct {
	Qty    decimal.Decimal `json:"qty"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}
