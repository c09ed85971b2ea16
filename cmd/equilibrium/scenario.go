package main

import (
	"fmt"
	"log/slog"

	"github.com/rickgao/oligopoly/internal/config"
	"github.com/rickgao/oligopoly/internal/distribution"
	"github.com/rickgao/oligopoly/internal/firm"
	"github.com/rickgao/oligopoly/internal/market"
)

// marketConfig translates a loaded file config into a market config.
// cfg must already have defaults applied.
func marketConfig(cfg *config.Config) (market.Config, error) {
	mc := market.Config{
		ProductsPerFirm: make([]int, len(cfg.Firms)),
		MarginalCosts:   make([]float64, len(cfg.Firms)),
		Distributions:   make([]distribution.Distribution, len(cfg.Firms)),
		OutsideOption:   cfg.HasOutsideOption(),
		Tolerance:       cfg.Solver.Tolerance,
		MaxIter:         cfg.Solver.MaxIter,
		StartingPrice:   cfg.Solver.StartingPrice,
		Concurrency:     cfg.Solver.Concurrency,

		FirmStartingPrice:  firm.DefaultStartingPrice,
		FirmStartingPrices: make([]float64, len(cfg.Firms)),
	}

	for i, f := range cfg.Firms {
		dist, err := distribution.New(f.Distribution)
		if err != nil {
			return market.Config{}, fmt.Errorf("firms[%d].distribution: %w", i, err)
		}
		mc.ProductsPerFirm[i] = f.ProductCount()
		mc.MarginalCosts[i] = f.MarginalCost
		mc.Distributions[i] = dist
		mc.FirmStartingPrices[i] = f.StartingPrice
	}

	return mc, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
