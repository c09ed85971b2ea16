package market

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the solver's position in its lifecycle.
type State int

const (
	Initializing State = iota
	Iterating
	Converged
	MaxIterExceeded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterExceeded:
		return "max_iter_exceeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Equilibrium is the result of a fixed-point search.
type Equilibrium struct {
	Prices     []float64 // Last computed price vector, one per firm
	Iterations int       // Rounds performed
	Error      float64   // Largest price change in the last round
	State      State     // Converged or MaxIterExceeded
}

// Converged reports whether the last round moved no price by more than
// the tolerance.
func (e Equilibrium) Converged() bool {
	return e.State == Converged
}

// Outcome bundles an equilibrium with the demands and profits at its prices.
type Outcome struct {
	Equilibrium
	Demands  []float64
	Profits  []float64
	Duration time.Duration
}

// EquilibriumPrices iterates the firms' best responses until the largest
// price change is within tolerance or the iteration budget is spent.
// Reaching MaxIter is not an error: the last prices are returned with
// State set to MaxIterExceeded.
func (m *Market) EquilibriumPrices(ctx context.Context) (Equilibrium, error) {
	prices := make([]float64, len(m.firms))
	for n := range prices {
		prices[n] = m.cfg.StartingPrice
	}

	eq := Equilibrium{State: Iterating}
	for eq.State == Iterating {
		if err := ctx.Err(); err != nil {
			return Equilibrium{}, err
		}

		next, err := m.round(ctx, eq.Iterations+1, prices)
		if err != nil {
			return Equilibrium{}, err
		}

		eq.Error = maxAbsDiff(prices, next)
		eq.Iterations++
		eq.Prices = next
		prices = next

		m.logger.Debug("finding prices",
			"iteration", eq.Iterations,
			"prices", next,
			"error", eq.Error,
		)

		switch {
		case eq.Error <= m.cfg.Tolerance:
			eq.State = Converged
		case eq.Iterations >= m.cfg.MaxIter:
			eq.State = MaxIterExceeded
		}
	}

	if eq.State == MaxIterExceeded {
		m.logger.Warn("equilibrium search hit iteration limit",
			"iterations", eq.Iterations,
			"error", eq.Error,
			"tolerance", m.cfg.Tolerance,
		)
	} else {
		m.logger.Info("equilibrium found",
			"iterations", eq.Iterations,
			"error", eq.Error,
			"prices", eq.Prices,
		)
	}

	return eq, nil
}

// round computes every firm's best response to the snapshot. The snapshot
// is only read; each goroutine writes its own slot of next.
func (m *Market) round(ctx context.Context, iteration int, snapshot []float64) ([]float64, error) {
	next := make([]float64, len(m.firms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Concurrency)

	for n := range m.firms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rivalPrices := without(snapshot, n)
			p, err := m.firms[n].BestResponse(m.rivals[n], rivalPrices)
			if err != nil {
				return &IterationError{
					Firm:             n,
					Iteration:        iteration,
					CompetitorPrices: rivalPrices,
					Err:              err,
				}
			}
			next[n] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return next, nil
}

// EquilibriumDemands solves for equilibrium prices and returns each firm's
// demand at them.
func (m *Market) EquilibriumDemands(ctx context.Context) ([]float64, error) {
	eq, err := m.EquilibriumPrices(ctx)
	if err != nil {
		return nil, err
	}
	return m.DemandsAt(eq.Prices)
}

// EquilibriumProfits solves for equilibrium prices and returns each firm's
// profit (p - c) · D at them. Prices and demands come from the same solve.
func (m *Market) EquilibriumProfits(ctx context.Context) ([]float64, error) {
	out, err := m.Solve(ctx)
	if err != nil {
		return nil, err
	}
	return out.Profits, nil
}

// Solve runs one equilibrium search and evaluates demands and profits at
// the resulting prices.
func (m *Market) Solve(ctx context.Context) (Outcome, error) {
	start := time.Now()

	eq, err := m.EquilibriumPrices(ctx)
	if err != nil {
		return Outcome{}, err
	}

	demands, err := m.DemandsAt(eq.Prices)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Equilibrium: eq,
		Demands:     demands,
		Profits:     m.ProfitsAt(eq.Prices, demands),
		Duration:    time.Since(start),
	}, nil
}

// DemandsAt returns each firm's demand when firms charge prices.
func (m *Market) DemandsAt(prices []float64) ([]float64, error) {
	if len(prices) != len(m.firms) {
		return nil, fmt.Errorf("got %d prices for %d firms", len(prices), len(m.firms))
	}
	demands := make([]float64, len(m.firms))
	for n, f := range m.firms {
		d, err := f.Demand(prices[n], m.rivals[n], without(prices, n))
		if err != nil {
			return nil, fmt.Errorf("firm %d demand: %w", n, err)
		}
		demands[n] = d
	}
	return demands, nil
}

// ProfitsAt returns (prices[n] - c[n]) · demands[n] for every firm.
func (m *Market) ProfitsAt(prices, demands []float64) []float64 {
	profits := make([]float64, len(m.firms))
	for n, f := range m.firms {
		profits[n] = (prices[n] - f.MarginalCost()) * demands[n]
	}
	return profits
}

func maxAbsDiff(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}
