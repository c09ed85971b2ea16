// Package model defines the records shared by the solver, the stores and the CLI.
//
// Conventions:
//   - Prices, demands and profits: float64 in the units of the value distributions
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: uuid.UUID for runs, 0-based int for firms within a run
package model
