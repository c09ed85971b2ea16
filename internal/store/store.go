package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rickgao/oligopoly/internal/config"
	"github.com/rickgao/oligopoly/internal/database"
	"github.com/rickgao/oligopoly/internal/model"
)

var (
	// ErrNotFound is returned by GetRun when no run has the requested ID.
	ErrNotFound = errors.New("run not found")

	// ErrDisabled is returned by Open when no storage driver is configured.
	ErrDisabled = errors.New("storage disabled")
)

// Store saves and loads solved runs.
type Store interface {
	SaveRun(ctx context.Context, run model.Run) error
	GetRun(ctx context.Context, id uuid.UUID) (model.Run, error)
	Close() error
}

// Open connects the backend selected by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverNone:
		return nil, ErrDisabled
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s, err := NewSQLiteStore(ctx, db, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		s, err := NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

type runRow struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	CreatedAt     int64     `db:"created_at"`
	OutsideOption bool      `db:"outside_option"`
	Status        string    `db:"status"`
	Iterations    int       `db:"iterations"`
	FinalError    float64   `db:"final_error"`
	Tolerance     float64   `db:"tolerance"`
	MaxIter       int       `db:"max_iter"`
	DurationMS    int64     `db:"duration_ms"`
}

type firmRow struct {
	RunID        uuid.UUID `db:"run_id"`
	FirmIndex    int       `db:"firm_index"`
	Products     int       `db:"products"`
	MarginalCost float64   `db:"marginal_cost"`
	Distribution string    `db:"distribution"`
	Price        float64   `db:"price"`
	Demand       float64   `db:"demand"`
	Profit       float64   `db:"profit"`
}

// toRows splits a run into its table rows.
func toRows(run model.Run) (runRow, []firmRow) {
	r := runRow{
		ID:            run.ID,
		Name:          run.Name,
		CreatedAt:     run.CreatedAt,
		OutsideOption: run.OutsideOption,
		Status:        run.Status,
		Iterations:    run.Iterations,
		FinalError:    run.FinalError,
		Tolerance:     run.Tolerance,
		MaxIter:       run.MaxIter,
		DurationMS:    run.DurationMS,
	}
	firms := make([]firmRow, len(run.Firms))
	for i, f := range run.Firms {
		firms[i] = firmRow{
			RunID:        run.ID,
			FirmIndex:    f.Index,
			Products:     f.Products,
			MarginalCost: f.MarginalCost,
			Distribution: f.Distribution,
			Price:        f.Price,
			Demand:       f.Demand,
			Profit:       f.Profit,
		}
	}
	return r, firms
}

// fromRows rebuilds a run. firms must already be ordered by FirmIndex.
func fromRows(r runRow, firms []firmRow) model.Run {
	run := model.Run{
		ID:            r.ID,
		Name:          r.Name,
		CreatedAt:     r.CreatedAt,
		OutsideOption: r.OutsideOption,
		Status:        r.Status,
		Iterations:    r.Iterations,
		FinalError:    r.FinalError,
		Tolerance:     r.Tolerance,
		MaxIter:       r.MaxIter,
		DurationMS:    r.DurationMS,
		Firms:         make([]model.FirmResult, len(firms)),
	}
	for i, f := range firms {
		run.Firms[i] = model.FirmResult{
			Index:        f.FirmIndex,
			Products:     f.Products,
			MarginalCost: f.MarginalCost,
			Distribution: f.Distribution,
			Price:        f.Price,
			Demand:       f.Demand,
			Profit:       f.Profit,
		}
	}
	return run
}

func validateRun(run model.Run) error {
	if run.ID == uuid.Nil {
		return errors.New("run has no id")
	}
	if len(run.Firms) == 0 {
		return fmt.Errorf("run %s has no firms", run.ID)
	}
	return nil
}
