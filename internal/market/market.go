package market

import (
	"log/slog"
	"math"

	"github.com/rickgao/oligopoly/internal/firm"
	"github.com/rickgao/oligopoly/internal/numeric"
)

// Market owns its firms and solves for equilibrium prices. It is safe for
// concurrent use: solving never mutates the Market.
type Market struct {
	cfg       Config
	logger    *slog.Logger
	minimizer numeric.MinimizeConfig

	firms []*firm.Firm
	// rivals[n] is firms without firm n, in order.
	rivals [][]*firm.Firm
}

// Option configures a Market.
type Option func(*Market)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Market) {
		m.logger = logger
	}
}

// WithMinimizer overrides the optimizer settings of every firm's best response.
func WithMinimizer(cfg numeric.MinimizeConfig) Option {
	return func(m *Market) {
		m.minimizer = cfg
	}
}

// New validates cfg and builds the market's firms.
func New(cfg Config, opts ...Option) (*Market, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.FirmStartingPrice == 0 {
		cfg.FirmStartingPrice = firm.DefaultStartingPrice
	}

	m := &Market{
		cfg:       cfg,
		logger:    slog.Default(),
		minimizer: numeric.DefaultMinimizeConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	policy := cfg.Policy()
	m.firms = make([]*firm.Firm, len(cfg.ProductsPerFirm))
	for i := range m.firms {
		seed := cfg.FirmStartingPrice
		if len(cfg.FirmStartingPrices) > 0 {
			seed = cfg.FirmStartingPrices[i]
		}
		f, err := firm.New(
			cfg.ProductsPerFirm[i],
			cfg.MarginalCosts[i],
			cfg.Distributions[i],
			firm.WithPolicy(policy),
			firm.WithStartingPrice(seed),
			firm.WithMinimizer(m.minimizer),
		)
		if err != nil {
			return nil, invalidf("firm %d: %v", i, err)
		}
		m.firms[i] = f
	}

	m.rivals = make([][]*firm.Firm, len(m.firms))
	for n := range m.firms {
		m.rivals[n] = without(m.firms, n)
	}

	return m, nil
}

func validate(cfg Config) error {
	n := len(cfg.ProductsPerFirm)
	if len(cfg.MarginalCosts) != n {
		return invalidf("products_per_firm (%d) and marginal_costs (%d) have different lengths", n, len(cfg.MarginalCosts))
	}
	if len(cfg.Distributions) != n {
		return invalidf("products_per_firm (%d) and distributions (%d) have different lengths", n, len(cfg.Distributions))
	}
	if n < 2 {
		return invalidf("a market needs at least two firms, got %d", n)
	}
	if !(cfg.Tolerance > 0) {
		return invalidf("tolerance must be > 0, got %g", cfg.Tolerance)
	}
	if cfg.MaxIter < 1 {
		return invalidf("max_iter must be >= 1, got %d", cfg.MaxIter)
	}
	if math.IsNaN(cfg.StartingPrice) || math.IsInf(cfg.StartingPrice, 0) {
		return invalidf("starting_price must be finite, got %g", cfg.StartingPrice)
	}
	if math.IsNaN(cfg.FirmStartingPrice) || math.IsInf(cfg.FirmStartingPrice, 0) {
		return invalidf("firm_starting_price must be finite, got %g", cfg.FirmStartingPrice)
	}
	if len(cfg.FirmStartingPrices) != 0 && len(cfg.FirmStartingPrices) != n {
		return invalidf("products_per_firm (%d) and firm_starting_prices (%d) have different lengths", n, len(cfg.FirmStartingPrices))
	}
	for i, p := range cfg.FirmStartingPrices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return invalidf("firm_starting_prices[%d] must be finite, got %g", i, p)
		}
	}
	return nil
}

// NumberFirms returns the number of firms.
func (m *Market) NumberFirms() int {
	return len(m.firms)
}

// Firms returns the market's firms in configuration order.
func (m *Market) Firms() []*firm.Firm {
	return append([]*firm.Firm(nil), m.firms...)
}

// Policy returns the outside-option policy shared by all firms.
func (m *Market) Policy() firm.Policy {
	return m.cfg.Policy()
}

// Config returns the market configuration.
func (m *Market) Config() Config {
	return m.cfg
}

// without returns s minus index n, preserving order.
func without[T any](s []T, n int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:n]...)
	return append(out, s[n+1:]...)
}
