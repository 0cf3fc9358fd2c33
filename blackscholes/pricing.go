// Package blackscholes implements the closed-form Black-Scholes model for
// European options: prices, Greeks, and an implied-volatility solver.
package blackscholes

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	opterrors "github.com/Hari31416/optionalyzer/errors"
)

// stabilityEpsilon pads every denominator containing sigma*sqrt(tau) so the
// formulas stay finite as volatility or time to expiry approach zero. This is
// a known approximation: prices computed here deviate from exact
// Black-Scholes by the epsilon, and the constant is pinned by golden tests.
const stabilityEpsilon = 1e-10

// Kind selects between the call and put formulas.
type Kind int

const (
	Call Kind = iota
	Put
)

func (k Kind) String() string {
	if k == Call {
		return "call"
	}
	return "put"
}

// ParseKind converts a textual option kind, case-insensitively. Anything
// other than "call" or "put" is rejected.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return Call, nil
	case "put":
		return Put, nil
	}
	return 0, opterrors.InvalidArgument("blackscholes.ParseKind", "unknown option kind %q", s)
}

// Greeks bundles the sensitivities produced alongside a price. The values are
// valid only for the exact parameters used to compute them.
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

func d1d2(s, k, r, sigma, tau float64) (float64, float64) {
	sqrtTau := math.Sqrt(tau)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*tau) / (sigma*sqrtTau + stabilityEpsilon)
	d2 := d1 - sigma*sqrtTau
	return d1, d2
}

// Price returns the Black-Scholes price for the given kind. Negative tau is
// not checked here; callers reject it before pricing.
func Price(kind Kind, s, k, r, sigma, tau float64) float64 {
	d1, d2 := d1d2(s, k, r, sigma, tau)
	discount := k * math.Exp(-r*tau)
	if kind == Call {
		return s*stdNormal.CDF(d1) - discount*stdNormal.CDF(d2)
	}
	return discount*stdNormal.CDF(-d2) - s*stdNormal.CDF(-d1)
}

// PriceGreeks returns the price together with the full Greeks record.
func PriceGreeks(kind Kind, s, k, r, sigma, tau float64) (float64, Greeks) {
	d1, d2 := d1d2(s, k, r, sigma, tau)
	sqrtTau := math.Sqrt(tau)
	discount := k * math.Exp(-r*tau)
	pdfD1 := stdNormal.Prob(d1)

	g := Greeks{
		Gamma: pdfD1 / (s*sigma*sqrtTau + stabilityEpsilon),
		Vega:  s * sqrtTau * pdfD1,
		Theta: -(s * sigma * pdfD1) / (2*sqrtTau + stabilityEpsilon),
	}

	var price float64
	if kind == Call {
		price = s*stdNormal.CDF(d1) - discount*stdNormal.CDF(d2)
		g.Delta = stdNormal.CDF(d1)
		g.Theta -= r * discount * stdNormal.CDF(d2)
		g.Rho = tau * discount * stdNormal.CDF(d2)
	} else {
		price = discount*stdNormal.CDF(-d2) - s*stdNormal.CDF(-d1)
		g.Delta = stdNormal.CDF(d1) - 1
		g.Theta += r * discount * stdNormal.CDF(-d2)
		g.Rho = -tau * discount * stdNormal.CDF(-d2)
	}
	return price, g
}
