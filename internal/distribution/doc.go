// Package distribution adapts continuous univariate distributions from
// gonum's stat/distuv to the shape the pricing model consumes.
//
// Every Distribution exposes:
//   - Prob(x): the density, 0 outside the support
//   - CDF(x): the cumulative distribution, clamped to 0 below and 1 above the support
//   - Support(): inclusive bounds [a, b], either of which may be infinite
//
// Supported kinds (standard parameters when omitted):
//   - uniform      min=0 max=1
//   - normal       mu=0 sigma=1
//   - exponential  rate=1
//   - gumbel_r     mu=0 beta=1
//   - logistic     mu=0 scale=1
//   - lognormal    mu=0 sigma=1
//   - weibull      k=1 lambda=1
package distribution
