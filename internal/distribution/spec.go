package distribution

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Kind names accepted by New.
const (
	KindUniform     = "uniform"
	KindNormal      = "normal"
	KindExponential = "exponential"
	KindGumbelRight = "gumbel_r"
	KindLogistic    = "logistic"
	KindLogNormal   = "lognormal"
	KindWeibull     = "weibull"
)

// Spec describes a distribution by kind and named parameters, as it appears
// in scenario files.
type Spec struct {
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:"params"`
}

// kinds maps each kind to its parameter names, defaults and constructor.
var kinds = map[string]struct {
	params   []string
	defaults []float64
	build    func(p []float64) (Distribution, error)
}{
	KindUniform: {
		params: []string{"min", "max"}, defaults: []float64{0, 1},
		build: func(p []float64) (Distribution, error) { return Uniform(p[0], p[1]) },
	},
	KindNormal: {
		params: []string{"mu", "sigma"}, defaults: []float64{0, 1},
		build: func(p []float64) (Distribution, error) { return Normal(p[0], p[1]) },
	},
	KindExponential: {
		params: []string{"rate"}, defaults: []float64{1},
		build: func(p []float64) (Distribution, error) { return Exponential(p[0]) },
	},
	KindGumbelRight: {
		params: []string{"mu", "beta"}, defaults: []float64{0, 1},
		build: func(p []float64) (Distribution, error) { return GumbelRight(p[0], p[1]) },
	},
	KindLogistic: {
		params: []string{"mu", "scale"}, defaults: []float64{0, 1},
		build: func(p []float64) (Distribution, error) { return Logistic(p[0], p[1]) },
	},
	KindLogNormal: {
		params: []string{"mu", "sigma"}, defaults: []float64{0, 1},
		build: func(p []float64) (Distribution, error) { return LogNormal(p[0], p[1]) },
	},
	KindWeibull: {
		params: []string{"k", "lambda"}, defaults: []float64{1, 1},
		build: func(p []float64) (Distribution, error) { return Weibull(p[0], p[1]) },
	},
}

// Kinds returns the supported kind names in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds the distribution described by spec. Missing parameters take
// their standard values; unknown parameters are rejected.
func New(spec Spec) (Distribution, error) {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	k, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown distribution kind %q (supported: %s)", spec.Kind, strings.Join(Kinds(), ", "))
	}

	for name := range spec.Params {
		if !slices.Contains(k.params, name) {
			return nil, fmt.Errorf("%s: unknown parameter %q", kind, name)
		}
	}

	values := make([]float64, len(k.params))
	for i, name := range k.params {
		values[i] = k.defaults[i]
		if v, ok := spec.Params[name]; ok {
			values[i] = v
		}
	}
	return k.build(values)
}
