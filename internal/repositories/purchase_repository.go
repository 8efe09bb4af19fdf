package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"inspector-backend/internal/models"
)

// PurchaseRepository reads submitted purchase invoices joined to their line
// items.
type PurchaseRepository interface {
	Recent(ctx context.Context, itemCode string, limit int) ([]*models.PurchaseRow, error)
}

type purchaseRepository struct {
	db *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Recent(ctx context.Context, itemCode string, limit int) ([]*models.PurchaseRow, error) {
	// stock_uom_rate is the line rate already re-expressed per stock UOM;
	// the conversion rate lifts it into base currency.
	rows, err := r.db.Query(ctx,
		`SELECT pi.invoice_no,
		        pi.posting_date,
		        COALESCE(pii.stock_qty, 0),
		        COALESCE(pii.stock_uom_rate, 0) * COALESCE(pi.conversion_rate, 1),
		        COALESCE(pii.base_net_amount, 0),
		        COALESCE(pi.supplier, ''),
		        COALESCE(pi.currency, '')
		 FROM purchase_invoice_items pii
		 INNER JOIN purchase_invoices pi ON pi.invoice_no = pii.invoice_no
		 WHERE pii.item_code = $1 AND pi.docstatus = 1
		 ORDER BY pi.posting_date DESC, pi.modified DESC
		 LIMIT $2`, itemCode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*models.PurchaseRow
	for rows.Next() {
		row := &models.PurchaseRow{}
		var postingDate time.Time
		if err := rows.Scan(&row.Invoice, &postingDate, &row.Qty, &row.Rate,
			&row.Amount, &row.Supplier, &row.Currency); err != nil {
			return nil, err
		}
		row.PostingDate = models.NewDate(postingDate)
		purchases = append(purchases, row)
	}
	return purchases, rows.Err()
}
