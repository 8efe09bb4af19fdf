package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"inspector-backend/internal/models"
)

// BinFields marks the optional bins columns this deployment carries.
type BinFields struct {
	IndentedQty bool
	PlannedQty  bool
}

type StockRepository interface {
	// Bins returns an item's per-warehouse quantity rows ordered by on-hand
	// quantity descending. ValuationRate and StockValueEst are left zero;
	// the aggregator enriches them.
	Bins(ctx context.Context, itemCode string, fields BinFields, limit int) ([]*models.Bin, error)
	// LatestValuationRates derives the current valuation per warehouse from
	// the most recent non-cancelled ledger entry in each warehouse.
	LatestValuationRates(ctx context.Context, itemCode string) (map[string]decimal.Decimal, error)
}

type stockRepository struct {
	db *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Bins(ctx context.Context, itemCode string, fields BinFields, limit int) ([]*models.Bin, error) {
	cols := []string{
		"COALESCE(warehouse, '')",
		"COALESCE(actual_qty, 0)",
		"COALESCE(projected_qty, 0)",
		"COALESCE(reserved_qty, 0)",
		"COALESCE(ordered_qty, 0)",
	}
	if fields.IndentedQty {
		cols = append(cols, "COALESCE(indented_qty, 0)")
	}
	if fields.PlannedQty {
		cols = append(cols, "COALESCE(planned_qty, 0)")
	}

	query := fmt.Sprintf(
		`SELECT %s FROM bins WHERE item_code = $1 ORDER BY actual_qty DESC LIMIT $2`,
		strings.Join(cols, ", "),
	)

	rows, err := r.db.Query(ctx, query, itemCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load bins: %w", err)
	}
	defer rows.Close()

	var bins []*models.Bin
	for rows.Next() {
		bin := &models.Bin{}
		dest := []any{
			&bin.Warehouse, &bin.ActualQty, &bin.ProjectedQty,
			&bin.ReservedQty, &bin.OrderedQty,
		}
		var indented, planned decimal.Decimal
		if fields.IndentedQty {
			dest = append(dest, &indented)
		}
		if fields.PlannedQty {
			dest = append(dest, &planned)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if fields.IndentedQty {
			bin.IndentedQty = &indented
		}
		if fields.PlannedQty {
			bin.PlannedQty = &planned
		}
		bins = append(bins, bin)
	}
	return bins, rows.Err()
}

func (r *stockRepository) LatestValuationRates(ctx context.Context, itemCode string) (map[string]decimal.Decimal, error) {
	// ROW_NUMBER over the warehouse partition picks the newest entry per
	// warehouse in one pass; the trailing id makes the order total even
	// when two entries share the same timestamps.
	rows, err := r.db.Query(ctx,
		`SELECT warehouse, COALESCE(valuation_rate, 0)
		 FROM (
		     SELECT warehouse, valuation_rate,
		            ROW_NUMBER() OVER (
		                PARTITION BY warehouse
		                ORDER BY posting_date DESC, posting_time DESC, creation DESC, id DESC
		            ) AS rn
		     FROM stock_ledger_entries
		     WHERE item_code = $1
		       AND is_cancelled = FALSE
		       AND warehouse IS NOT NULL
		 ) ranked
		 WHERE rn = 1`, itemCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load valuation rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]decimal.Decimal)
	for rows.Next() {
		var warehouse string
		var rate decimal.Decimal
		if err := rows.Scan(&warehouse, &rate); err != nil {
			return nil, err
		}
		rates[warehouse] = rate
	}
	return rates, rows.Err()
}
