package numeric

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Integrator holds the resolution of the fixed quadrature rules.
type Integrator struct {
	// Panels is the number of equal sub-intervals a finite range is split into.
	Panels int

	// Nodes is the number of Legendre nodes per panel.
	Nodes int

	// TailNodes is the number of Legendre nodes used after mapping an
	// infinite range onto a finite one.
	TailNodes int
}

// DefaultIntegrator is used by Integrate.
var DefaultIntegrator = Integrator{
	Panels:    32,
	Nodes:     8,
	TailNodes: 512,
}

// Integrate approximates the integral of f over [lower, upper] with
// DefaultIntegrator.
func Integrate(f func(float64) float64, lower, upper float64) float64 {
	return DefaultIntegrator.Integrate(f, lower, upper)
}

// Integrate approximates the integral of f over [lower, upper]. Either bound
// may be infinite. Returns 0 when lower >= upper or a bound is NaN.
func (in Integrator) Integrate(f func(float64) float64, lower, upper float64) float64 {
	if math.IsNaN(lower) || math.IsNaN(upper) || !(lower < upper) {
		return 0
	}

	switch {
	case math.IsInf(lower, -1) && math.IsInf(upper, 1):
		// x = t / (1 - t²), t in (-1, 1)
		g := func(t float64) float64 {
			d := 1 - t*t
			return f(t/d) * (1 + t*t) / (d * d)
		}
		return quad.Fixed(g, -1, 1, in.TailNodes, quad.Legendre{}, 0)

	case math.IsInf(upper, 1):
		// x = lower + t / (1 - t), t in [0, 1)
		g := func(t float64) float64 {
			d := 1 - t
			return f(lower+t/d) / (d * d)
		}
		return quad.Fixed(g, 0, 1, in.TailNodes, quad.Legendre{}, 0)

	case math.IsInf(lower, -1):
		// x = upper - t / (1 - t), t in [0, 1)
		g := func(t float64) float64 {
			d := 1 - t
			return f(upper-t/d) / (d * d)
		}
		return quad.Fixed(g, 0, 1, in.TailNodes, quad.Legendre{}, 0)
	}

	panels := max(in.Panels, 1)
	width := (upper - lower) / float64(panels)
	sum := 0.0
	for i := 0; i < panels; i++ {
		a := lower + float64(i)*width
		b := a + width
		if i == panels-1 {
			b = upper
		}
		sum += quad.Fixed(f, a, b, in.Nodes, quad.Legendre{}, 0)
	}
	return sum
}
