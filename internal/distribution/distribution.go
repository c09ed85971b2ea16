package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a continuous univariate random variable.
type Distribution interface {
	Prob(x float64) float64
	CDF(x float64) float64
	Support() (lower, upper float64)
}

// densityCDF is the subset of distuv methods the adapter relies on.
type densityCDF interface {
	Prob(x float64) float64
	CDF(x float64) float64
}

// adapter clamps a distuv distribution to its support so that callers can
// evaluate it anywhere on the real line.
type adapter struct {
	name  string
	dist  densityCDF
	lower float64
	upper float64
}

func (a *adapter) Prob(x float64) float64 {
	if x < a.lower || x > a.upper {
		return 0
	}
	return a.dist.Prob(x)
}

func (a *adapter) CDF(x float64) float64 {
	if x <= a.lower {
		return 0
	}
	if x >= a.upper {
		return 1
	}
	return a.dist.CDF(x)
}

func (a *adapter) Support() (float64, float64) {
	return a.lower, a.upper
}

func (a *adapter) String() string {
	return a.name
}

// Uniform returns the uniform distribution on [min, max].
func Uniform(min, max float64) (Distribution, error) {
	if !(min < max) {
		return nil, fmt.Errorf("uniform: min (%g) must be less than max (%g)", min, max)
	}
	return &adapter{
		name:  fmt.Sprintf("uniform(min=%g, max=%g)", min, max),
		dist:  distuv.Uniform{Min: min, Max: max},
		lower: min,
		upper: max,
	}, nil
}

// Normal returns the normal distribution with mean mu and standard deviation sigma.
func Normal(mu, sigma float64) (Distribution, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("normal: sigma must be > 0, got %g", sigma)
	}
	return &adapter{
		name:  fmt.Sprintf("normal(mu=%g, sigma=%g)", mu, sigma),
		dist:  distuv.Normal{Mu: mu, Sigma: sigma},
		lower: math.Inf(-1),
		upper: math.Inf(1),
	}, nil
}

// Exponential returns the exponential distribution with the given rate.
func Exponential(rate float64) (Distribution, error) {
	if !(rate > 0) {
		return nil, fmt.Errorf("exponential: rate must be > 0, got %g", rate)
	}
	return &adapter{
		name:  fmt.Sprintf("exponential(rate=%g)", rate),
		dist:  distuv.Exponential{Rate: rate},
		lower: 0,
		upper: math.Inf(1),
	}, nil
}

// GumbelRight returns the right-skewed Gumbel distribution. With this
// distribution the model reduces to multinomial logit.
func GumbelRight(mu, beta float64) (Distribution, error) {
	if !(beta > 0) {
		return nil, fmt.Errorf("gumbel_r: beta must be > 0, got %g", beta)
	}
	return &adapter{
		name:  fmt.Sprintf("gumbel_r(mu=%g, beta=%g)", mu, beta),
		dist:  distuv.GumbelRight{Mu: mu, Beta: beta},
		lower: math.Inf(-1),
		upper: math.Inf(1),
	}, nil
}

// Logistic returns the logistic distribution with location mu and scale s.
func Logistic(mu, s float64) (Distribution, error) {
	if !(s > 0) {
		return nil, fmt.Errorf("logistic: scale must be > 0, got %g", s)
	}
	return &adapter{
		name:  fmt.Sprintf("logistic(mu=%g, scale=%g)", mu, s),
		dist:  distuv.Logistic{Mu: mu, S: s},
		lower: math.Inf(-1),
		upper: math.Inf(1),
	}, nil
}

// LogNormal returns the log-normal distribution whose logarithm is normal(mu, sigma).
func LogNormal(mu, sigma float64) (Distribution, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("lognormal: sigma must be > 0, got %g", sigma)
	}
	return &adapter{
		name:  fmt.Sprintf("lognormal(mu=%g, sigma=%g)", mu, sigma),
		dist:  distuv.LogNormal{Mu: mu, Sigma: sigma},
		lower: 0,
		upper: math.Inf(1),
	}, nil
}

// Weibull returns the Weibull distribution with shape k and scale lambda.
func Weibull(k, lambda float64) (Distribution, error) {
	if !(k > 0) || !(lambda > 0) {
		return nil, fmt.Errorf("weibull: k and lambda must be > 0, got k=%g lambda=%g", k, lambda)
	}
	return &adapter{
		name:  fmt.Sprintf("weibull(k=%g, lambda=%g)", k, lambda),
		dist:  distuv.Weibull{K: k, Lambda: lambda},
		lower: 0,
		upper: math.Inf(1),
	}, nil
}
