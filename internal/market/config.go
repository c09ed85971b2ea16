package market

import (
	"github.com/rickgao/oligopoly/internal/distribution"
	"github.com/rickgao/oligopoly/internal/firm"
)

// Default solver settings.
const (
	DefaultTolerance     = 0.001
	DefaultMaxIter       = 1000
	DefaultStartingPrice = 0.2
)

// Config describes a market. ProductsPerFirm, MarginalCosts and
// Distributions are parallel slices with one entry per firm.
type Config struct {
	ProductsPerFirm []int
	MarginalCosts   []float64
	Distributions   []distribution.Distribution
	OutsideOption   bool

	Tolerance     float64 // Convergence threshold on the largest price change
	MaxIter       int     // Maximum number of best-response rounds
	StartingPrice float64 // Initial price of every firm

	// FirmStartingPrice seeds each firm's best-response search
	// (0: firm.DefaultStartingPrice).
	FirmStartingPrice float64

	// FirmStartingPrices, when set, overrides FirmStartingPrice per firm.
	FirmStartingPrices []float64

	// Concurrency bounds the best responses computed in parallel within a
	// round (default: 1, sequential).
	Concurrency int
}

// DefaultConfig returns a two-firm market of two-product firms with uniform(0, 1)
// values, zero marginal cost and an outside option.
func DefaultConfig() Config {
	u, _ := distribution.Uniform(0, 1)
	return Config{
		ProductsPerFirm:   []int{2, 2},
		MarginalCosts:     []float64{0, 0},
		Distributions:     []distribution.Distribution{u, u},
		OutsideOption:     true,
		Tolerance:         DefaultTolerance,
		MaxIter:           DefaultMaxIter,
		StartingPrice:     DefaultStartingPrice,
		FirmStartingPrice: firm.DefaultStartingPrice,
		Concurrency:       1,
	}
}

// Policy returns the firm policy implied by OutsideOption.
func (c Config) Policy() firm.Policy {
	if c.OutsideOption {
		return firm.OutsideOption
	}
	return firm.NoOutsideOption
}
