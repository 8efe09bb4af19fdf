package schema

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Introspector answers schema-presence questions against the backing store.
type Introspector interface {
	TableExists(ctx context.Context, table string) (bool, error)
	ColumnExists(ctx context.Context, table, column string) (bool, error)
}

// PgIntrospector resolves presence checks from information_schema, scoped to
// the connection's current schema.
type PgIntrospector struct {
	DB *pgxpool.Pool
}

func NewPgIntrospector(db *pgxpool.Pool) *PgIntrospector {
	return &PgIntrospector{DB: db}
}

func (p *PgIntrospector) TableExists(ctx context.Context, table string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	)`
	var exists bool
	if err := p.DB.QueryRow(ctx, query, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (p *PgIntrospector) ColumnExists(ctx context.Context, table, column string) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2
	)`
	var exists bool
	if err := p.DB.QueryRow(ctx, query, table, column).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
