package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/rickgao/oligopoly/internal/distribution"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if len(c.Firms) < 2 {
		return fmt.Errorf("firms: at least two firms are required, got %d", len(c.Firms))
	}

	for i, f := range c.Firms {
		if f.ProductCount() < 1 {
			return fmt.Errorf("firms[%d].products must be >= 1", i)
		}
		if !finite(f.MarginalCost) {
			return fmt.Errorf("firms[%d].marginal_cost must be finite", i)
		}
		if !finite(f.StartingPrice) {
			return fmt.Errorf("firms[%d].starting_price must be finite", i)
		}
		if _, err := distribution.New(f.Distribution); err != nil {
			return fmt.Errorf("firms[%d].distribution: %w", i, err)
		}
	}

	if !(c.Solver.Tolerance > 0) {
		return errors.New("solver.tolerance must be > 0")
	}
	if c.Solver.MaxIter < 1 {
		return errors.New("solver.max_iter must be >= 1")
	}
	if !finite(c.Solver.StartingPrice) {
		return errors.New("solver.starting_price must be finite")
	}
	if c.Solver.Concurrency < 1 {
		return errors.New("solver.concurrency must be >= 1")
	}

	switch c.Storage.Driver {
	case DriverNone:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("storage.sqlite_path is required")
		}
	case DriverPostgres:
		if err := c.Storage.Postgres.validate("storage.postgres"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("storage.driver must be one of %q, %q, %q, got %q", DriverNone, DriverSQLite, DriverPostgres, c.Storage.Driver)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
