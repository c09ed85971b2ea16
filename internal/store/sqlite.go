package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rickgao/oligopoly/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	created_at     INTEGER NOT NULL,
	outside_option INTEGER NOT NULL,
	status         TEXT NOT NULL,
	iterations     INTEGER NOT NULL,
	final_error    REAL NOT NULL,
	tolerance      REAL NOT NULL,
	max_iter       INTEGER NOT NULL,
	duration_ms    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_firms (
	run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	firm_index    INTEGER NOT NULL,
	products      INTEGER NOT NULL,
	marginal_cost REAL NOT NULL,
	distribution  TEXT NOT NULL,
	price         REAL NOT NULL,
	demand        REAL NOT NULL,
	profit        REAL NOT NULL,
	PRIMARY KEY (run_id, firm_index)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// SQLiteStore writes runs to a local SQLite file.
type SQLiteStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLiteStore wraps db and creates the tables if they are missing.
// The store owns db from then on.
func NewSQLiteStore(ctx context.Context, db *sqlx.DB, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// SaveRun inserts run and its firms in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, run model.Run) error {
	if err := validateRun(run); err != nil {
		return err
	}
	r, firms := toRows(run)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO runs
		(id, name, created_at, outside_option, status, iterations, final_error, tolerance, max_iter, duration_ms)
		VALUES (:id, :name, :created_at, :outside_option, :status, :iterations, :final_error, :tolerance, :max_iter, :duration_ms)`, r); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO run_firms
		(run_id, firm_index, products, marginal_cost, distribution, price, demand, profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range firms {
		if _, err := stmt.ExecContext(ctx,
			f.RunID, f.FirmIndex, f.Products, f.MarginalCost,
			f.Distribution, f.Price, f.Demand, f.Profit,
		); err != nil {
			return fmt.Errorf("insert firm %d of run %s: %w", f.FirmIndex, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("saved run", "id", run.ID, "firms", len(firms))
	return nil
}

// GetRun loads a run and its firms.
func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (model.Run, error) {
	var r runRow
	err := s.db.GetContext(ctx, &r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Run{}, fmt.Errorf("query run %s: %w", id, err)
	}

	var firms []firmRow
	if err := s.db.SelectContext(ctx, &firms,
		"SELECT * FROM run_firms WHERE run_id = ? ORDER BY firm_index", id); err != nil {
		return model.Run{}, fmt.Errorf("query firms of run %s: %w", id, err)
	}

	return fromRows(r, firms), nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
