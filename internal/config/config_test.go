package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rickgao/oligopoly/internal/distribution"
)

func TestLoad(t *testing.T) {
	yaml := `
name: three-uniform
outside_option: false
firms:
  - products: 1
    marginal_cost: 0.1
    distribution:
      kind: uniform
      params: {min: 0, max: 1}
  - products: 3
    distribution:
      kind: normal
      params: {mu: 0.5, sigma: 0.2}
solver:
  tolerance: 0.0001
  max_iter: 200
  concurrency: 2
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "three-uniform" {
		t.Errorf("Name = %q, want %q", cfg.Name, "three-uniform")
	}
	if cfg.HasOutsideOption() {
		t.Error("HasOutsideOption() = true, want false")
	}
	if len(cfg.Firms) != 2 {
		t.Fatalf("len(Firms) = %d, want 2", len(cfg.Firms))
	}
	if cfg.Firms[0].MarginalCost != 0.1 {
		t.Errorf("Firms[0].MarginalCost = %g, want 0.1", cfg.Firms[0].MarginalCost)
	}
	if cfg.Firms[1].Distribution.Kind != "normal" || cfg.Firms[1].Distribution.Params["sigma"] != 0.2 {
		t.Errorf("Firms[1].Distribution = %+v, want normal with sigma 0.2", cfg.Firms[1].Distribution)
	}
	if cfg.Solver.Tolerance != 0.0001 {
		t.Errorf("Solver.Tolerance = %g, want 0.0001", cfg.Solver.Tolerance)
	}
	if cfg.Solver.MaxIter != 200 {
		t.Errorf("Solver.MaxIter = %d, want 200", cfg.Solver.MaxIter)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "secret123")

	yaml := `
firms:
  - products: 1
  - products: 1
storage:
  driver: postgres
  postgres:
    host: localhost
    name: equilibrium
    user: solver
    password: ${TEST_DB_PASSWORD}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Postgres.Password != "secret123" {
		t.Errorf("Storage.Postgres.Password = %q, want %q", cfg.Storage.Postgres.Password, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
firms:
  - {}
  - products: 4
storage:
  driver: sqlite
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want default %q", cfg.Name, DefaultName)
	}
	if !cfg.HasOutsideOption() {
		t.Error("HasOutsideOption() = false, want default true")
	}
	if got := cfg.Firms[0].ProductCount(); got != DefaultProducts {
		t.Errorf("Firms[0].Products = %d, want default %d", got, DefaultProducts)
	}
	if got := cfg.Firms[1].ProductCount(); got != 4 {
		t.Errorf("Firms[1].Products = %d, want 4", got)
	}
	if cfg.Firms[0].Distribution.Kind != distribution.KindUniform {
		t.Errorf("Firms[0].Distribution.Kind = %q, want default %q", cfg.Firms[0].Distribution.Kind, distribution.KindUniform)
	}
	if cfg.Firms[0].StartingPrice != DefaultFirmStartingPrice {
		t.Errorf("Firms[0].StartingPrice = %g, want default %g", cfg.Firms[0].StartingPrice, DefaultFirmStartingPrice)
	}
	if cfg.Solver.Tolerance != DefaultTolerance {
		t.Errorf("Solver.Tolerance = %g, want default %g", cfg.Solver.Tolerance, DefaultTolerance)
	}
	if cfg.Solver.MaxIter != DefaultMaxIter {
		t.Errorf("Solver.MaxIter = %d, want default %d", cfg.Solver.MaxIter, DefaultMaxIter)
	}
	if cfg.Solver.StartingPrice != DefaultStartingPrice {
		t.Errorf("Solver.StartingPrice = %g, want default %g", cfg.Solver.StartingPrice, DefaultStartingPrice)
	}
	if cfg.Solver.Concurrency != DefaultConcurrency {
		t.Errorf("Solver.Concurrency = %d, want default %d", cfg.Solver.Concurrency, DefaultConcurrency)
	}
	if cfg.Storage.SQLitePath != DefaultSQLitePath {
		t.Errorf("Storage.SQLitePath = %q, want default %q", cfg.Storage.SQLitePath, DefaultSQLitePath)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want default %q", cfg.Log.Level, DefaultLogLevel)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeTempFile(t, "firms: [{products: 1}, {products: 1}]\n")
		if _, err := LoadAndValidate(path); err != nil {
			t.Errorf("LoadAndValidate() unexpected error: %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeTempFile(t, "firms: [{products: 1}]\n")
		_, err := LoadAndValidate(path)
		if err == nil || !strings.HasPrefix(err.Error(), "validate config:") {
			t.Errorf("LoadAndValidate() error = %v, want validate config error", err)
		}
	})

	t.Run("explicit zero products", func(t *testing.T) {
		path := writeTempFile(t, "firms: [{products: 1}, {products: 0}]\n")
		_, err := LoadAndValidate(path)
		want := "validate config: firms[1].products must be >= 1"
		if err == nil || err.Error() != want {
			t.Errorf("LoadAndValidate() error = %v, want %q", err, want)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeTempFile(t, "firms: [{products: 1, prodcts: 2}, {products: 1}]\n")
		_, err := LoadAndValidate(path)
		if err == nil || !strings.HasPrefix(err.Error(), "parse config yaml:") {
			t.Errorf("LoadAndValidate() error = %v, want parse error", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "")
		_, err := LoadAndValidate(path)
		want := "validate config: firms: at least two firms are required, got 0"
		if err == nil || err.Error() != want {
			t.Errorf("LoadAndValidate() error = %v, want %q", err, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAndValidate(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil || !strings.HasPrefix(err.Error(), "read config file:") {
			t.Errorf("LoadAndValidate() error = %v, want read error", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeTempFile(t, "firms: [\n")
		_, err := LoadAndValidate(path)
		if err == nil || !strings.HasPrefix(err.Error(), "parse config yaml:") {
			t.Errorf("LoadAndValidate() error = %v, want parse error", err)
		}
	})
}

func TestValidate(t *testing.T) {
	twoFirms := func() []FirmConfig {
		return []FirmConfig{
			{Products: intPtr(1), Distribution: distribution.Spec{Kind: "uniform"}},
			{Products: intPtr(2), Distribution: distribution.Spec{Kind: "uniform"}},
		}
	}
	solver := SolverConfig{Tolerance: 0.001, MaxIter: 10, StartingPrice: 0.2, Concurrency: 1}
	logCfg := LogConfig{Level: "info"}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "no firms",
			cfg:     Config{Solver: solver, Log: logCfg},
			wantErr: "firms: at least two firms are required, got 0",
		},
		{
			name: "zero products",
			cfg: Config{
				Firms:  []FirmConfig{{Products: intPtr(1), Distribution: distribution.Spec{Kind: "uniform"}}, {Distribution: distribution.Spec{Kind: "uniform"}}},
				Solver: solver, Log: logCfg,
			},
			wantErr: "firms[1].products must be >= 1",
		},
		{
			name: "bad distribution",
			cfg: Config{
				Firms:  []FirmConfig{{Products: intPtr(1), Distribution: distribution.Spec{Kind: "cauchy"}}, {Products: intPtr(1), Distribution: distribution.Spec{Kind: "uniform"}}},
				Solver: solver, Log: logCfg,
			},
			wantErr: `firms[0].distribution: unknown distribution kind "cauchy" (supported: exponential, gumbel_r, logistic, lognormal, normal, uniform, weibull)`,
		},
		{
			name:    "zero tolerance",
			cfg:     Config{Firms: twoFirms(), Solver: SolverConfig{MaxIter: 10, Concurrency: 1}, Log: logCfg},
			wantErr: "solver.tolerance must be > 0",
		},
		{
			name:    "zero max iter",
			cfg:     Config{Firms: twoFirms(), Solver: SolverConfig{Tolerance: 0.1, Concurrency: 1}, Log: logCfg},
			wantErr: "solver.max_iter must be >= 1",
		},
		{
			name:    "zero concurrency",
			cfg:     Config{Firms: twoFirms(), Solver: SolverConfig{Tolerance: 0.1, MaxIter: 1}, Log: logCfg},
			wantErr: "solver.concurrency must be >= 1",
		},
		{
			name:    "unknown storage driver",
			cfg:     Config{Firms: twoFirms(), Solver: solver, Storage: StorageConfig{Driver: "mysql"}, Log: logCfg},
			wantErr: `storage.driver must be one of "", "sqlite", "postgres", got "mysql"`,
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Firms: twoFirms(), Solver: solver, Storage: StorageConfig{Driver: DriverSQLite}, Log: logCfg},
			wantErr: "storage.sqlite_path is required",
		},
		{
			name: "postgres missing password",
			cfg: Config{
				Firms: twoFirms(), Solver: solver, Log: logCfg,
				Storage: StorageConfig{Driver: DriverPostgres, Postgres: DBConfig{Host: "localhost", Name: "db", User: "user"}},
			},
			wantErr: "storage.postgres.password is required",
		},
		{
			name: "postgres min_conns exceeds max_conns",
			cfg: Config{
				Firms: twoFirms(), Solver: solver, Log: logCfg,
				Storage: StorageConfig{Driver: DriverPostgres, Postgres: DBConfig{Host: "localhost", Name: "db", User: "user", Password: "pass", MaxConns: 2, MinConns: 5}},
			},
			wantErr: "storage.postgres.min_conns (5) cannot exceed max_conns (2)",
		},
		{
			name:    "bad log level",
			cfg:     Config{Firms: twoFirms(), Solver: solver, Log: LogConfig{Level: "trace"}},
			wantErr: `log.level must be one of debug, info, warn, error, got "trace"`,
		},
		{
			name: "valid config",
			cfg: Config{
				Firms: twoFirms(), Solver: solver, Log: logCfg,
				Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "runs.db"},
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func intPtr(n int) *int { return &n }
