package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inspector-backend/internal/models"
)

type PriceRepository interface {
	// History returns an item's price rows ordered by effective start date
	// ascending. When withValidity is set the validity-window columns are
	// selected and the effective date falls back from valid_from to the
	// row's creation.
	History(ctx context.Context, itemCode string, withValidity bool, limit int) ([]*models.ItemPrice, error)
	// LatestSelling returns the most recently modified selling price for
	// the item, optionally filtered to one price list (empty string for no
	// filter). Nil when no row matches.
	LatestSelling(ctx context.Context, itemCode, priceList string) (*models.SellingPrice, error)
}

type priceRepository struct {
	db *pgxpool.Pool
}

func NewPriceRepository(db *pgxpool.Pool) PriceRepository {
	return &priceRepository{db: db}
}

func (r *priceRepository) History(ctx context.Context, itemCode string, withValidity bool, limit int) ([]*models.ItemPrice, error) {
	query := `SELECT id, COALESCE(price_list, ''), COALESCE(price_list_rate, 0),
	                 COALESCE(currency, ''), modified, creation
	          FROM item_prices WHERE item_code = $1
	          ORDER BY creation ASC
	          LIMIT $2`
	if withValidity {
		query = `SELECT id, COALESCE(price_list, ''), COALESCE(price_list_rate, 0),
		                COALESCE(currency, ''), modified, creation, valid_from, valid_upto
		         FROM item_prices WHERE item_code = $1
		         ORDER BY COALESCE(valid_from, creation) ASC
		         LIMIT $2`
	}

	rows, err := r.db.Query(ctx, query, itemCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	defer rows.Close()

	var prices []*models.ItemPrice
	for rows.Next() {
		price := &models.ItemPrice{}
		var validFrom, validUpto *time.Time
		dest := []any{
			&price.ID, &price.PriceList, &price.Rate, &price.Currency,
			&price.Modified, &price.Creation,
		}
		if withValidity {
			dest = append(dest, &validFrom, &validUpto)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if validFrom != nil {
			d := models.NewDate(*validFrom)
			price.ValidFrom = &d
		}
		if validUpto != nil {
			d := models.NewDate(*validUpto)
			price.ValidUpto = &d
		}
		prices = append(prices, price)
	}
	return prices, rows.Err()
}

func (r *priceRepository) LatestSelling(ctx context.Context, itemCode, priceList string) (*models.SellingPrice, error) {
	query := `SELECT COALESCE(price_list_rate, 0), price_list, currency
	          FROM item_prices
	          WHERE item_code = $1 AND selling = TRUE`
	args := []any{itemCode}
	if priceList != "" {
		query += ` AND price_list = $2`
		args = append(args, priceList)
	}
	query += ` ORDER BY modified DESC LIMIT 1`

	sp := &models.SellingPrice{}
	err := r.db.QueryRow(ctx, query, args...).Scan(&sp.Price, &sp.PriceList, &sp.Currency)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load selling price: %w", err)
	}
	return sp, nil
}
