// Command equilibrium solves the Nash equilibrium of a multi-product
// oligopoly described by a YAML config and prints prices, demands and
// profits. With -save, the run is written to the configured store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rickgao/oligopoly/internal/config"
	"github.com/rickgao/oligopoly/internal/market"
	"github.com/rickgao/oligopoly/internal/model"
	"github.com/rickgao/oligopoly/internal/store"
	"github.com/rickgao/oligopoly/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/duopoly.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to .env file (ignored if missing)")
	save := flag.Bool("save", false, "save the run to the configured storage")
	asJSON := flag.Bool("json", false, "print the result as JSON")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if err := run(*configPath, *envPath, *save, *asJSON); err != nil {
		slog.Error("equilibrium failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, envPath string, save, asJSON bool) error {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}

	cfg, err := config.LoadAndValidate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to stderr so -json output stays parseable.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting equilibrium",
		"version", version.Version,
		"commit", version.Commit,
		"config", configPath,
		"firms", len(cfg.Firms),
		"outside_option", cfg.HasOutsideOption(),
	)

	if save && cfg.Storage.Driver == config.DriverNone {
		return errors.New("-save requires storage.driver to be set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mc, err := marketConfig(cfg)
	if err != nil {
		return err
	}
	m, err := market.New(mc, market.WithLogger(logger))
	if err != nil {
		return err
	}

	out, err := m.Solve(ctx)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	result := m.Record(cfg.Name, out)

	if save {
		if err := persist(ctx, cfg.Storage, result, logger); err != nil {
			return err
		}
	}

	if asJSON {
		return writeJSON(os.Stdout, result)
	}
	return writeReport(os.Stdout, result)
}

func persist(ctx context.Context, cfg config.StorageConfig, result model.Run, logger *slog.Logger) error {
	s, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer s.Close()

	if err := s.SaveRun(ctx, result); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	logger.Info("run saved", "id", result.ID, "driver", cfg.Driver)
	return nil
}
