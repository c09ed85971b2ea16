package config

import "github.com/rickgao/oligopoly/internal/distribution"

// Default values for optional configuration fields.
const (
	DefaultName              = "market"
	DefaultProducts          = 2
	DefaultDistributionKind  = distribution.KindUniform
	DefaultFirmStartingPrice = 0.001
	DefaultTolerance         = 0.001
	DefaultMaxIter           = 1000
	DefaultStartingPrice     = 0.2
	DefaultConcurrency       = 1
	DefaultSQLitePath        = "data/equilibrium.db"
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultMaxConns          = 4
	DefaultMinConns          = 1
	DefaultLogLevel          = "info"
)

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}

	for i := range c.Firms {
		f := &c.Firms[i]
		if f.Products == nil {
			n := DefaultProducts
			f.Products = &n
		}
		if f.StartingPrice == 0 {
			f.StartingPrice = DefaultFirmStartingPrice
		}
		if f.Distribution.Kind == "" {
			f.Distribution.Kind = DefaultDistributionKind
		}
	}

	// Solver defaults
	if c.Solver.Tolerance == 0 {
		c.Solver.Tolerance = DefaultTolerance
	}
	if c.Solver.MaxIter == 0 {
		c.Solver.MaxIter = DefaultMaxIter
	}
	if c.Solver.StartingPrice == 0 {
		c.Solver.StartingPrice = DefaultStartingPrice
	}
	if c.Solver.Concurrency == 0 {
		c.Solver.Concurrency = DefaultConcurrency
	}

	// Storage defaults
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			c.Storage.SQLitePath = DefaultSQLitePath
		}
	case DriverPostgres:
		applyDBDefaults(&c.Storage.Postgres)
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
