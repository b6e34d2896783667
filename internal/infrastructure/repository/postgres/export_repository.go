package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/maccabipedia/clubstats/internal/usecase"
)

// Open connects to the export database with traced statements.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open export db: %w", err)
	}
	return db, nil
}

// ExportRepository is the flattened-row sink. Each export replaces the full
// row set inside one transaction; the tables are a projection of the
// in-memory dataset, not a source of truth.
type ExportRepository struct {
	db *sqlx.DB
}

func NewExportRepository(db *sqlx.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

func (r *ExportRepository) ReplaceMatchRows(ctx context.Context, rows []usecase.MatchRow) error {
	return r.replace(ctx, "match_rows", func(tx *sqlx.Tx) error {
		for i := range rows {
			if _, err := tx.NamedExecContext(ctx, insertMatchRow, matchRowModel(rows[i])); err != nil {
				return fmt.Errorf("insert match row %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *ExportRepository) ReplaceEventRows(ctx context.Context, rows []usecase.EventRow) error {
	return r.replace(ctx, "event_rows", func(tx *sqlx.Tx) error {
		for i := range rows {
			if _, err := tx.NamedExecContext(ctx, insertEventRow, eventRowModel(rows[i])); err != nil {
				return fmt.Errorf("insert event row %d: %w", i, err)
			}
		}
		return nil
	})
}

func (r *ExportRepository) replace(ctx context.Context, table string, insert func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export tx: %w", err)
	}
	return nil
}
