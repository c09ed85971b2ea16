package numeric

import (
	"errors"
	"math"
	"testing"
)

func TestIntegrate(t *testing.T) {
	stdNormal := func(x float64) float64 {
		return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
	}

	tests := []struct {
		name  string
		f     func(float64) float64
		lower float64
		upper float64
		want  float64
		tol   float64
	}{
		{
			name:  "polynomial",
			f:     func(x float64) float64 { return x * x },
			lower: 0, upper: 1,
			want: 1.0 / 3, tol: 1e-12,
		},
		{
			name:  "kinked integrand",
			f:     func(x float64) float64 { return math.Max(0, x-0.3) },
			lower: 0, upper: 1,
			want: 0.245, tol: 1e-4,
		},
		{
			name:  "upper infinite",
			f:     func(x float64) float64 { return math.Exp(-x) },
			lower: 0, upper: math.Inf(1),
			want: 1, tol: 1e-6,
		},
		{
			name:  "lower infinite",
			f:     func(x float64) float64 { return math.Exp(x) },
			lower: math.Inf(-1), upper: 0,
			want: 1, tol: 1e-6,
		},
		{
			name:  "both infinite",
			f:     stdNormal,
			lower: math.Inf(-1), upper: math.Inf(1),
			want: 1, tol: 1e-6,
		},
		{
			name:  "empty interval",
			f:     func(float64) float64 { return 1 },
			lower: 2, upper: 2,
			want: 0, tol: 0,
		},
		{
			name:  "inverted interval",
			f:     func(float64) float64 { return 1 },
			lower: 3, upper: 1,
			want: 0, tol: 0,
		},
		{
			name:  "NaN bound",
			f:     func(float64) float64 { return 1 },
			lower: math.NaN(), upper: 1,
			want: 0, tol: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Integrate(tt.f, tt.lower, tt.upper)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("Integrate() = %.12f, want %.12f (tol %g)", got, tt.want, tt.tol)
			}
		})
	}
}

func TestIntegrator_SinglePanel(t *testing.T) {
	in := Integrator{Panels: 0, Nodes: 4, TailNodes: 64}
	got := in.Integrate(func(x float64) float64 { return 3 * x * x }, 0, 2)
	if math.Abs(got-8) > 1e-10 {
		t.Errorf("Integrate() = %g, want 8", got)
	}
}

func TestMinimize(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		x0   float64
		want float64
	}{
		{
			name: "quadratic",
			f:    func(x float64) float64 { return (x - 2) * (x - 2) },
			x0:   0,
			want: 2,
		},
		{
			name: "negative profit shape",
			f:    func(x float64) float64 { return -x * (1 - x) },
			x0:   0.001,
			want: 0.5,
		},
		{
			name: "abs kink",
			f:    func(x float64) float64 { return math.Abs(x + 1) },
			x0:   3,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Minimize(tt.f, tt.x0)
			if err != nil {
				t.Fatalf("Minimize() unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Minimize() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestMinimize_Unbounded(t *testing.T) {
	cfg := DefaultMinimizeConfig()
	cfg.MaxIterations = 20

	_, err := cfg.Minimize(func(x float64) float64 { return x }, 0)
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("Minimize() error = %v, want ErrNotConverged", err)
	}
}

func TestMinimize_NonFiniteStart(t *testing.T) {
	_, err := Minimize(func(x float64) float64 { return x * x }, math.Inf(1))
	if !errors.Is(err, ErrNotConverged) {
		t.Errorf("Minimize() error = %v, want ErrNotConverged", err)
	}
}
