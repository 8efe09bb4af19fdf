package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BarcodeRepository reads the item_barcodes child table. Both methods assume
// the table exists; callers gate on the capability cache first.
type BarcodeRepository interface {
	// ItemCodes returns the codes of every item owning the given barcode.
	ItemCodes(ctx context.Context, barcode string, limit int) ([]string, error)
	// ForItem returns an item's barcode strings in child-row order.
	ForItem(ctx context.Context, itemCode string, limit int) ([]string, error)
}

type barcodeRepository struct {
	db *pgxpool.Pool
}

func NewBarcodeRepository(db *pgxpool.Pool) BarcodeRepository {
	return &barcodeRepository{db: db}
}

func (r *barcodeRepository) ItemCodes(ctx context.Context, barcode string, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_code FROM item_barcodes
		 WHERE barcode = $1
		 ORDER BY idx ASC, item_code ASC
		 LIMIT $2`, barcode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up barcode: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

func (r *barcodeRepository) ForItem(ctx context.Context, itemCode string, limit int) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(barcode, '') FROM item_barcodes
		 WHERE item_code = $1
		 ORDER BY idx ASC
		 LIMIT $2`, itemCode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load item barcodes: %w", err)
	}
	defer rows.Close()

	var barcodes []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		barcodes = append(barcodes, b)
	}
	return barcodes, rows.Err()
}
