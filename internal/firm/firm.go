package firm

import (
	"errors"
	"fmt"
	"math"

	"github.com/rickgao/oligopoly/internal/distribution"
	"github.com/rickgao/oligopoly/internal/numeric"
)

// DefaultStartingPrice seeds the best-response search. Small positive values
// work for bounded distributions such as uniform(0, 1).
const DefaultStartingPrice = 0.001

var (
	// ErrCompetitorMismatch is returned when competitors and their prices are
	// empty or of different lengths.
	ErrCompetitorMismatch = errors.New("competitors and competitor prices must be non-empty and of equal length")

	// ErrBestResponseNotFound is returned when the profit maximization fails.
	ErrBestResponseNotFound = errors.New("best response not found")
)

// Policy selects how consumers who find nothing worth the price behave.
type Policy int

const (
	// OutsideOption lets consumers buy nothing: demand integrates from max(price, a).
	OutsideOption Policy = iota

	// NoOutsideOption makes every consumer buy from some firm: demand
	// integrates over the full support.
	NoOutsideOption
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case OutsideOption:
		return "outside_option"
	case NoOutsideOption:
		return "no_outside_option"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Firm is immutable after construction.
type Firm struct {
	products      int
	marginalCost  float64
	dist          distribution.Distribution
	startingPrice float64
	policy        Policy
	minimizer     numeric.MinimizeConfig
}

// Option configures a Firm.
type Option func(*Firm)

// WithStartingPrice sets the initial guess of the best-response search.
func WithStartingPrice(p float64) Option {
	return func(f *Firm) {
		f.startingPrice = p
	}
}

// WithPolicy sets the outside-option policy.
func WithPolicy(p Policy) Option {
	return func(f *Firm) {
		f.policy = p
	}
}

// WithMinimizer overrides the optimizer settings used by BestResponse.
func WithMinimizer(cfg numeric.MinimizeConfig) Option {
	return func(f *Firm) {
		f.minimizer = cfg
	}
}

// New creates a Firm selling products goods at the given marginal cost.
func New(products int, marginalCost float64, dist distribution.Distribution, opts ...Option) (*Firm, error) {
	if products < 1 {
		return nil, fmt.Errorf("number of products must be >= 1, got %d", products)
	}
	if dist == nil {
		return nil, errors.New("distribution is required")
	}
	if math.IsNaN(marginalCost) || math.IsInf(marginalCost, 0) {
		return nil, fmt.Errorf("marginal cost must be finite, got %g", marginalCost)
	}

	f := &Firm{
		products:      products,
		marginalCost:  marginalCost,
		dist:          dist,
		startingPrice: DefaultStartingPrice,
		policy:        OutsideOption,
		minimizer:     numeric.DefaultMinimizeConfig(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Products returns the number of products the firm sells.
func (f *Firm) Products() int { return f.products }

// MarginalCost returns the firm's constant marginal cost.
func (f *Firm) MarginalCost() float64 { return f.marginalCost }

// Distribution returns the per-product distribution of consumer values.
func (f *Firm) Distribution() distribution.Distribution { return f.dist }

// StartingPrice returns the seed of the best-response search.
func (f *Firm) StartingPrice() float64 { return f.startingPrice }

// Policy returns the outside-option policy.
func (f *Firm) Policy() Policy { return f.policy }

// String describes the firm.
func (f *Firm) String() string {
	return fmt.Sprintf("Firm with %d products, marginal cost %g and a %v distribution", f.products, f.marginalCost, f.dist)
}

// PDF is the density of the best alternative a consumer finds at the firm.
func (f *Firm) PDF(x float64) float64 {
	n := float64(f.products)
	return n * f.dist.Prob(x) * math.Pow(f.dist.CDF(x), n-1)
}

// CDF is the distribution of the best alternative a consumer finds at the firm.
func (f *Firm) CDF(x float64) float64 {
	return math.Pow(f.dist.CDF(x), float64(f.products))
}

// ProductCDFCompetitors returns Π_m F_m(p_m - price + x): the probability that
// no competitor beats a best alternative x at this firm's price.
func (f *Firm) ProductCDFCompetitors(x, price float64, competitors []*Firm, prices []float64) (float64, error) {
	if err := checkCompetitors(competitors, prices); err != nil {
		return 0, err
	}
	return productCDF(x, price, competitors, prices), nil
}

// DemandIntegrand is the density of winning a consumer whose best
// alternative at this firm is x.
func (f *Firm) DemandIntegrand(x, price float64, competitors []*Firm, prices []float64) (float64, error) {
	if err := checkCompetitors(competitors, prices); err != nil {
		return 0, err
	}
	return f.integrand(x, price, competitors, prices), nil
}

// Demand returns the share of consumers buying from the firm at price.
func (f *Firm) Demand(price float64, competitors []*Firm, prices []float64) (float64, error) {
	if err := checkCompetitors(competitors, prices); err != nil {
		return 0, err
	}
	return f.demand(price, competitors, prices), nil
}

// Profit returns (price - marginal cost) · demand.
func (f *Firm) Profit(price float64, competitors []*Firm, prices []float64) (float64, error) {
	if err := checkCompetitors(competitors, prices); err != nil {
		return 0, err
	}
	return f.profit(price, competitors, prices), nil
}

// Bounds returns the integration range of the demand at price.
func (f *Firm) Bounds(price float64) (lower, upper float64) {
	a, b := f.dist.Support()
	if f.policy == OutsideOption {
		return math.Max(price, a), b
	}
	return a, b
}

func (f *Firm) integrand(x, price float64, competitors []*Firm, prices []float64) float64 {
	density := f.PDF(x)
	if density == 0 {
		return 0
	}
	return density * productCDF(x, price, competitors, prices)
}

func (f *Firm) demand(price float64, competitors []*Firm, prices []float64) float64 {
	lower, upper := f.Bounds(price)
	d := numeric.Integrate(func(x float64) float64 {
		return f.integrand(x, price, competitors, prices)
	}, lower, upper)
	// Quadrature noise can leave tiny negative values.
	return math.Max(d, 0)
}

func (f *Firm) profit(price float64, competitors []*Firm, prices []float64) float64 {
	return (price - f.marginalCost) * f.demand(price, competitors, prices)
}

func productCDF(x, price float64, competitors []*Firm, prices []float64) float64 {
	product := 1.0
	for m, c := range competitors {
		product *= c.CDF(prices[m] - price + x)
		if product == 0 {
			return 0
		}
	}
	return product
}

func checkCompetitors(competitors []*Firm, prices []float64) error {
	if len(competitors) == 0 || len(competitors) != len(prices) {
		return fmt.Errorf("%w: %d competitors, %d prices", ErrCompetitorMismatch, len(competitors), len(prices))
	}
	for i, c := range competitors {
		if c == nil {
			return fmt.Errorf("%w: competitor %d is nil", ErrCompetitorMismatch, i)
		}
	}
	return nil
}
