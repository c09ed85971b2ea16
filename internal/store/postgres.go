package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/oligopoly/internal/model"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	created_at     BIGINT NOT NULL,
	outside_option BOOLEAN NOT NULL,
	status         TEXT NOT NULL,
	iterations     INTEGER NOT NULL,
	final_error    DOUBLE PRECISION NOT NULL,
	tolerance      DOUBLE PRECISION NOT NULL,
	max_iter       INTEGER NOT NULL,
	duration_ms    BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_firms (
	run_id        UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	firm_index    INTEGER NOT NULL,
	products      INTEGER NOT NULL,
	marginal_cost DOUBLE PRECISION NOT NULL,
	distribution  TEXT NOT NULL,
	price         DOUBLE PRECISION NOT NULL,
	demand        DOUBLE PRECISION NOT NULL,
	profit        DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, firm_index)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// PostgresStore writes runs to PostgreSQL.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore wraps pool and creates the tables if they are missing.
// The store owns the pool from then on.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{db: pool, logger: logger}, nil
}

// SaveRun inserts run and its firms in one transaction.
func (s *PostgresStore) SaveRun(ctx context.Context, run model.Run) error {
	if err := validateRun(run); err != nil {
		return err
	}
	r, firms := toRows(run)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO runs (id, name, created_at, outside_option, status, iterations, final_error, tolerance, max_iter, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.ID, r.Name, r.CreatedAt, r.OutsideOption, r.Status, r.Iterations, r.FinalError, r.Tolerance, r.MaxIter, r.DurationMS)
	for _, f := range firms {
		batch.Queue(`
			INSERT INTO run_firms (run_id, firm_index, products, marginal_cost, distribution, price, demand, profit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, f.RunID, f.FirmIndex, f.Products, f.MarginalCost, f.Distribution, f.Price, f.Demand, f.Profit)
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert run %s: %w", run.ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("saved run", "id", run.ID, "firms", len(firms))
	return nil
}

// GetRun loads a run and its firms.
func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (model.Run, error) {
	var r runRow
	err := s.db.QueryRow(ctx, `
		SELECT id, name, created_at, outside_option, status, iterations, final_error, tolerance, max_iter, duration_ms
		FROM runs WHERE id = $1
	`, id).Scan(&r.ID, &r.Name, &r.CreatedAt, &r.OutsideOption, &r.Status, &r.Iterations, &r.FinalError, &r.Tolerance, &r.MaxIter, &r.DurationMS)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Run{}, fmt.Errorf("query run %s: %w", id, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT run_id, firm_index, products, marginal_cost, distribution, price, demand, profit
		FROM run_firms WHERE run_id = $1 ORDER BY firm_index
	`, id)
	if err != nil {
		return model.Run{}, fmt.Errorf("query firms of run %s: %w", id, err)
	}
	firms, err := pgx.CollectRows(rows, pgx.RowToStructByName[firmRow])
	if err != nil {
		return model.Run{}, fmt.Errorf("scan firms of run %s: %w", id, err)
	}

	return fromRows(r, firms), nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
