package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"inspector-backend/internal/models"
)

// ItemFields marks the optional items columns this deployment carries.
// Callers resolve it from the schema capability cache.
type ItemFields struct {
	StandardRate     bool
	LastPurchaseRate bool
	ReorderLevel     bool
}

type ItemRepository interface {
	// Exists reports whether an item with the given code is present.
	Exists(ctx context.Context, itemCode string) (bool, error)
	// Get returns the item master row, or nil when it does not exist.
	Get(ctx context.Context, itemCode string, fields ItemFields) (*models.Item, error)
	// CodeByLegacyBarcode resolves the single-value items.barcode column on
	// legacy deployments. Empty string when nothing matches. Callers must
	// gate on the column's presence.
	CodeByLegacyBarcode(ctx context.Context, barcode string) (string, error)
	// Summaries returns compact item rows for the given codes, in store
	// order; callers re-order as needed.
	Summaries(ctx context.Context, itemCodes []string, limit int) ([]models.ItemSummary, error)
}

type itemRepository struct {
	db *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Exists(ctx context.Context, itemCode string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE item_code = $1)`, itemCode,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item existence: %w", err)
	}
	return exists, nil
}

func (r *itemRepository) Get(ctx context.Context, itemCode string, fields ItemFields) (*models.Item, error) {
	cols := []string{
		"item_code",
		"COALESCE(item_name, '')",
		"COALESCE(item_group, '')",
		"COALESCE(brand, '')",
		"COALESCE(stock_uom, '')",
		"COALESCE(description, '')",
		"COALESCE(image, '')",
		"disabled",
		"is_stock_item",
	}

	item := &models.Item{}
	dest := []any{
		&item.ItemCode, &item.ItemName, &item.ItemGroup, &item.Brand,
		&item.StockUOM, &item.Description, &item.Image,
		&item.Disabled, &item.IsStockItem,
	}

	var standardRate, lastPurchaseRate, reorderLevel decimal.Decimal
	if fields.StandardRate {
		cols = append(cols, "COALESCE(standard_rate, 0)")
		dest = append(dest, &standardRate)
	}
	if fields.LastPurchaseRate {
		cols = append(cols, "COALESCE(last_purchase_rate, 0)")
		dest = append(dest, &lastPurchaseRate)
	}
	if fields.ReorderLevel {
		cols = append(cols, "COALESCE(reorder_level, 0)")
		dest = append(dest, &reorderLevel)
	}

	query := fmt.Sprintf(`SELECT %s FROM items WHERE item_code = $1`, strings.Join(cols, ", "))

	err := r.db.QueryRow(ctx, query, itemCode).Scan(dest...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if fields.StandardRate {
		item.StandardRate = &standardRate
	}
	if fields.LastPurchaseRate {
		item.LastPurchaseRate = &lastPurchaseRate
	}
	if fields.ReorderLevel {
		item.ReorderLevel = &reorderLevel
	}

	return item, nil
}

func (r *itemRepository) CodeByLegacyBarcode(ctx context.Context, barcode string) (string, error) {
	var itemCode string
	err := r.db.QueryRow(ctx,
		`SELECT item_code FROM items WHERE barcode = $1 LIMIT 1`, barcode,
	).Scan(&itemCode)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up legacy barcode: %w", err)
	}
	return itemCode, nil
}

func (r *itemRepository) Summaries(ctx context.Context, itemCodes []string, limit int) ([]models.ItemSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_code, COALESCE(item_name, ''), COALESCE(image, ''), disabled
		 FROM items WHERE item_code = ANY($1) LIMIT $2`, itemCodes, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load item summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.ItemSummary
	for rows.Next() {
		var s models.ItemSummary
		if err := rows.Scan(&s.ItemCode, &s.ItemName, &s.Image, &s.Disabled); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
