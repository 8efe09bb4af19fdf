package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inspector-backend/internal/models"
)

// SalesRepository reads submitted sales invoices joined to their line items.
// Drafts and cancelled documents are invisible to every method.
type SalesRepository interface {
	Recent(ctx context.Context, itemCode string, limit int) ([]*models.SaleRow, error)
	// TotalsSince aggregates quantity, amount and distinct invoice count for
	// submitted sales posted on or after the given date.
	TotalsSince(ctx context.Context, itemCode string, since time.Time) (models.SalesTotals, error)
	// LastSaleDate returns the newest posting date among submitted sales of
	// the item, or nil when it has never been sold.
	LastSaleDate(ctx context.Context, itemCode string) (*time.Time, error)
}

type salesRepository struct {
	db *pgxpool.Pool
}

func NewSalesRepository(db *pgxpool.Pool) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) Recent(ctx context.Context, itemCode string, limit int) ([]*models.SaleRow, error) {
	// Quantities in stock UOM, money in base currency: the line rate is
	// multiplied by the invoice's conversion rate even when both currencies
	// coincide.
	rows, err := r.db.Query(ctx,
		`SELECT si.invoice_no,
		        si.posting_date,
		        COALESCE(sii.stock_qty, 0),
		        COALESCE(sii.rate, 0) * COALESCE(si.conversion_rate, 1),
		        COALESCE(sii.base_net_amount, 0),
		        COALESCE(si.customer, ''),
		        COALESCE(si.currency, '')
		 FROM sales_invoice_items sii
		 INNER JOIN sales_invoices si ON si.invoice_no = sii.invoice_no
		 WHERE sii.item_code = $1 AND si.docstatus = 1
		 ORDER BY si.posting_date DESC, si.modified DESC
		 LIMIT $2`, itemCode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.SaleRow
	for rows.Next() {
		row := &models.SaleRow{}
		var postingDate time.Time
		if err := rows.Scan(&row.Invoice, &postingDate, &row.Qty, &row.Rate,
			&row.Amount, &row.Customer, &row.Currency); err != nil {
			return nil, err
		}
		row.PostingDate = models.NewDate(postingDate)
		sales = append(sales, row)
	}
	return sales, rows.Err()
}

func (r *salesRepository) TotalsSince(ctx context.Context, itemCode string, since time.Time) (models.SalesTotals, error) {
	var totals models.SalesTotals
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(sii.qty), 0),
		        COALESCE(SUM(sii.amount), 0),
		        COUNT(DISTINCT sii.invoice_no)
		 FROM sales_invoice_items sii
		 INNER JOIN sales_invoices si ON si.invoice_no = sii.invoice_no
		 WHERE sii.item_code = $1
		   AND si.docstatus = 1
		   AND si.posting_date >= $2`, itemCode, since,
	).Scan(&totals.Qty, &totals.Amount, &totals.Count)
	if err != nil {
		return models.SalesTotals{}, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	return totals, nil
}

func (r *salesRepository) LastSaleDate(ctx context.Context, itemCode string) (*time.Time, error) {
	var lastSale *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT MAX(si.posting_date)
		 FROM sales_invoice_items sii
		 INNER JOIN sales_invoices si ON si.invoice_no = sii.invoice_no
		 WHERE sii.item_code = $1 AND si.docstatus = 1`, itemCode,
	).Scan(&lastSale)
	if err != nil {
		return nil, fmt.Errorf("failed to load last sale date: %w", err)
	}
	return lastSale, nil
}
