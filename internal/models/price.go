package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPrice is one price-history row. ValidFrom/ValidUpto are optional
// schema and stay nil on deployments without validity windows.
type ItemPrice struct {
	ID        int             `json:"id"`
	PriceList string          `json:"price_list"`
	Rate      decimal.Decimal `json:"price_list_rate"`
	Currency  string          `json:"currency"`
	Modified  time.Time       `json:"modified"`
	Creation  time.Time       `json:"creation"`
	ValidFrom *Date           `json:"valid_from,omitempty"`
	ValidUpto *Date           `json:"valid_upto,omitempty"`
}

// SellingPrice is the resolved default selling price card. PriceList and
// Currency are null when no matching price row exists.
type SellingPrice struct {
	Price     decimal.Decimal `json:"price"`
	PriceList *string         `json:"price_list"`
	Currency  *string         `json:"currency"`
}
