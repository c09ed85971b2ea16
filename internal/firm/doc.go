// Package firm models a multi-product firm in a Perloff-Salop style market.
//
// A consumer's best alternative at a firm with n products is the maximum of
// n i.i.d. draws from the firm's distribution, so its density is
// n·f(x)·F(x)^(n-1) and its CDF is F(x)^n.
//
// A firm charging p wins a consumer whose best alternative here is x when
// every competitor m, charging p_m, offers a best alternative below
// p_m - p + x. Demand integrates that probability over x:
//
//	D(p) = ∫ f_best(x) · Π_m F_m(p_m - p + x) dx
//
// With an outside option the integral starts at max(p, a): consumers whose
// best alternative is below the price walk away.
package firm
