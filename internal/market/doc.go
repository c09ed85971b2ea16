// Package market implements the equilibrium solver.
//
// The solver:
//   - Builds one Firm per configured product count, marginal cost and distribution
//   - Starts every firm at the same starting price
//   - Replaces all prices at once with each firm's best response to the previous round
//   - Stops when the largest price change is within tolerance (Converged)
//     or after the iteration budget (MaxIterExceeded)
//
// Rounds are synchronous: every best response in a round reads the same
// immutable price snapshot, and the next snapshot exists only once all firms
// have responded. Best responses inside a round may run concurrently.
package market
