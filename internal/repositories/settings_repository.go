package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepository reads values from one-row settings tables such as
// stock_settings and selling_settings.
type SettingsRepository interface {
	// SingleValue returns the named column of the table's single row, or
	// empty string when the table is empty or the value NULL. Table and
	// column come from internal constants, never user input; they are still
	// sanitized before interpolation.
	SingleValue(ctx context.Context, table, column string) (string, error)
}

type settingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) SingleValue(ctx context.Context, table, column string) (string, error) {
	query := fmt.Sprintf(
		`SELECT COALESCE(%s, '') FROM %s LIMIT 1`,
		pgx.Identifier{column}.Sanitize(),
		pgx.Identifier{table}.Sanitize(),
	)

	var value string
	err := r.db.QueryRow(ctx, query).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to read setting %s.%s: %w", table, column, err)
	}
	return value, nil
}
