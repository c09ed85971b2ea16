package config

import (
	"github.com/rickgao/oligopoly/internal/distribution"
)

// Config is the root configuration of an equilibrium run.
type Config struct {
	Name          string        `yaml:"name"`
	OutsideOption *bool         `yaml:"outside_option"` // nil means true
	Firms         []FirmConfig  `yaml:"firms"`
	Solver        SolverConfig  `yaml:"solver"`
	Storage       StorageConfig `yaml:"storage"`
	Log           LogConfig     `yaml:"log"`
}

// FirmConfig describes one firm.
type FirmConfig struct {
	Products      *int              `yaml:"products"` // nil means DefaultProducts
	MarginalCost  float64           `yaml:"marginal_cost"`
	StartingPrice float64           `yaml:"starting_price"` // Seed of the best-response search
	Distribution  distribution.Spec `yaml:"distribution"`
}

// SolverConfig holds the fixed-point iteration settings.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIter       int     `yaml:"max_iter"`
	StartingPrice float64 `yaml:"starting_price"` // Initial price of every firm
	Concurrency   int     `yaml:"concurrency"`
}

// StorageConfig selects where solved runs are saved. An empty driver
// disables persistence.
type StorageConfig struct {
	Driver     string   `yaml:"driver"` // "", "sqlite" or "postgres"
	SQLitePath string   `yaml:"sqlite_path"`
	Postgres   DBConfig `yaml:"postgres"`
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Storage drivers.
const (
	DriverNone     = ""
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ProductCount returns the configured number of products, 0 if unset.
func (f FirmConfig) ProductCount() int {
	if f.Products == nil {
		return 0
	}
	return *f.Products
}

// HasOutsideOption reports whether consumers may buy nothing.
func (c *Config) HasOutsideOption() bool {
	return c.OutsideOption == nil || *c.OutsideOption
}
