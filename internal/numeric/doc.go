// Package numeric wraps the gonum integration and optimization routines used
// by the pricing model.
//
// Integrate evaluates definite integrals with fixed Gauss-Legendre rules:
// finite intervals are split into equal panels, infinite bounds are mapped
// onto a finite interval by a change of variables. Empty or inverted
// intervals integrate to exactly 0.
//
// Minimize runs a derivative-free Nelder-Mead search on a scalar function
// and reports failure to converge as ErrNotConverged.
package numeric
