package model

import "github.com/google/uuid"

// Run statuses.
const (
	StatusConverged       = "converged"
	StatusMaxIterExceeded = "max_iter_exceeded"
)

// Run is one solved market.
type Run struct {
	ID            uuid.UUID    // Primary key
	Name          string       // Scenario name
	CreatedAt     int64        // Solve completion time (µs since epoch)
	OutsideOption bool         // Whether consumers may buy nothing
	Status        string       // converged or max_iter_exceeded
	Iterations    int          // Best-response rounds performed
	FinalError    float64      // Largest price change in the last round
	Tolerance     float64      // Convergence threshold
	MaxIter       int          // Round budget
	DurationMS    int64        // Wall time of the solve
	Firms         []FirmResult // Ordered by Index
}

// FirmResult is one firm's equilibrium outcome within a Run.
type FirmResult struct {
	Index        int     // Position of the firm in the market
	Products     int     // Number of products
	MarginalCost float64 // Constant marginal cost
	Distribution string  // Description of the value distribution
	Price        float64 // Equilibrium price
	Demand       float64 // Market share at equilibrium prices
	Profit       float64 // (Price - MarginalCost) * Demand
}

// Converged reports whether the run reached the tolerance.
func (r Run) Converged() bool {
	return r.Status == StatusConverged
}

// Prices returns the equilibrium price of every firm in order.
func (r Run) Prices() []float64 {
	out := make([]float64, len(r.Firms))
	for i, f := range r.Firms {
		out[i] = f.Price
	}
	return out
}
