package numeric

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ErrNotConverged is returned when the optimizer stops without locating a
// minimum.
var ErrNotConverged = errors.New("optimizer did not converge")

// MinimizeConfig tunes the Nelder-Mead search.
type MinimizeConfig struct {
	SimplexSize     float64 // Initial simplex edge (default: 0.05)
	MaxIterations   int     // Major iteration budget (default: 1000)
	MaxEvaluations  int     // Function evaluation budget (default: 5000)
	FunctionAbsTol  float64 // Minimum significant decrease (default: 1e-12)
	StallIterations int     // Iterations without significant decrease before stopping (default: 50)
}

// DefaultMinimizeConfig returns sensible defaults.
func DefaultMinimizeConfig() MinimizeConfig {
	return MinimizeConfig{
		SimplexSize:     0.05,
		MaxIterations:   1000,
		MaxEvaluations:  5000,
		FunctionAbsTol:  1e-12,
		StallIterations: 50,
	}
}

// Minimize locally minimizes f starting from x0 with the default settings.
func Minimize(f func(float64) float64, x0 float64) (float64, error) {
	return DefaultMinimizeConfig().Minimize(f, x0)
}

// Minimize locally minimizes f starting from x0. NaN values of f are treated
// as +Inf so the search moves away from them.
func (c MinimizeConfig) Minimize(f func(float64) float64, x0 float64) (float64, error) {
	if math.IsNaN(x0) || math.IsInf(x0, 0) {
		return math.NaN(), fmt.Errorf("%w: non-finite starting point %g", ErrNotConverged, x0)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			v := f(x[0])
			if math.IsNaN(v) {
				return math.Inf(1)
			}
			return v
		},
	}
	settings := &optimize.Settings{
		MajorIterations: c.MaxIterations,
		FuncEvaluations: c.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   c.FunctionAbsTol,
			Iterations: c.StallIterations,
		},
	}

	result, err := optimize.Minimize(problem, []float64{x0}, settings, &optimize.NelderMead{SimplexSize: c.SimplexSize})
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: %v", ErrNotConverged, err)
	}

	switch result.Status {
	case optimize.NotTerminated, optimize.Failure, optimize.FunctionNegativeInfinity,
		optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit:
		return math.NaN(), fmt.Errorf("%w: status %v", ErrNotConverged, result.Status)
	}

	x := result.X[0]
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN(), fmt.Errorf("%w: non-finite minimizer", ErrNotConverged)
	}
	return x, nil
}
