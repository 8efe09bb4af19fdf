package services

// Store table and column names probed against the capability cache. The
// store is externally owned; optional elements vary by deployment.
const (
	tableItems                = "items"
	tableItemBarcodes         = "item_barcodes"
	tableBins                 = "bins"
	tableStockLedgerEntries   = "stock_ledger_entries"
	tableItemPrices           = "item_prices"
	tableSalesInvoices        = "sales_invoices"
	tableSalesInvoiceItems    = "sales_invoice_items"
	tablePurchaseInvoices     = "purchase_invoices"
	tablePurchaseInvoiceItems = "purchase_invoice_items"
	tableStockSettings        = "stock_settings"
	tableSellingSettings      = "selling_settings"
)

const (
	colLegacyBarcode           = "barcode"
	colStandardRate            = "standard_rate"
	colLastPurchaseRate        = "last_purchase_rate"
	colReorderLevel            = "reorder_level"
	colIndentedQty             = "indented_qty"
	colPlannedQty              = "planned_qty"
	colValidFrom               = "valid_from"
	colValidUpto               = "valid_upto"
	colDefaultSellingPriceList = "default_selling_price_list"
	colSellingPriceList        = "selling_price_list"
)
