package blackscholes

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any valid parameter set, C - P = S - K*exp(-r*tau). The
// epsilon-stabilized d1 cancels out of the difference because
// CDF(x) + CDF(-x) = 1, so parity holds to floating-point precision.
func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call minus put equals discounted forward", prop.ForAll(
		func(s, k, r, sigma, tau float64) bool {
			call := Price(Call, s, k, r, sigma, tau)
			put := Price(Put, s, k, r, sigma, tau)
			forward := s - k*math.Exp(-r*tau)
			if math.Abs(call-put-forward) > 1e-6 {
				t.Logf("FAILED: S=%v K=%v r=%v sigma=%v tau=%v: C-P=%v forward=%v",
					s, k, r, sigma, tau, call-put, forward)
				return false
			}
			return true
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0, 0.15),
		gen.Float64Range(0.01, 1.5),
		gen.Float64Range(0.01, 3),
	))

	properties.TestingRun(t)
}

func TestProperty_PricesNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call and put prices are non-negative", prop.ForAll(
		func(s, k, r, sigma, tau float64) bool {
			call := Price(Call, s, k, r, sigma, tau)
			put := Price(Put, s, k, r, sigma, tau)
			if call < 0 || put < 0 {
				t.Logf("FAILED: S=%v K=%v r=%v sigma=%v tau=%v: call=%v put=%v",
					s, k, r, sigma, tau, call, put)
				return false
			}
			return true
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0, 0.15),
		gen.Float64Range(0.05, 1.5),
		gen.Float64Range(0.05, 3),
	))

	properties.TestingRun(t)
}

func TestProperty_MonotonicityAndDeltaBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call price non-decreasing in volatility", prop.ForAll(
		func(s, k, r, sigma, bump, tau float64) bool {
			lo := Price(Call, s, k, r, sigma, tau)
			hi := Price(Call, s, k, r, sigma+bump, tau)
			if hi < lo-1e-9 {
				t.Logf("FAILED: price fell from %v to %v when sigma rose %v -> %v",
					lo, hi, sigma, sigma+bump)
				return false
			}
			return true
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(50, 200),
		gen.Float64Range(0, 0.1),
		gen.Float64Range(0.05, 1.0),
		gen.Float64Range(0.01, 0.5),
		gen.Float64Range(0.05, 2),
	))

	properties.Property("call delta in [0,1], put delta in [-1,0]", prop.ForAll(
		func(s, k, r, sigma, tau float64) bool {
			_, gc := PriceGreeks(Call, s, k, r, sigma, tau)
			_, gp := PriceGreeks(Put, s, k, r, sigma, tau)
			if gc.Delta < 0 || gc.Delta > 1 {
				t.Logf("FAILED: call delta %v out of [0,1]", gc.Delta)
				return false
			}
			if gp.Delta < -1 || gp.Delta > 0 {
				t.Logf("FAILED: put delta %v out of [-1,0]", gp.Delta)
				return false
			}
			return true
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(50, 200),
		gen.Float64Range(0, 0.1),
		gen.Float64Range(0.05, 1.0),
		gen.Float64Range(0.05, 2),
	))

	properties.TestingRun(t)
}

// Property: pricing at a known sigma and inverting through the solver
// recovers that sigma for well-behaved inputs (near the money, tau not
// too small).
func TestProperty_ImpliedVolRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("solver recovers the pricing sigma", prop.ForAll(
		func(sigmaTrue, s, r, tau float64, isPut bool) bool {
			kind := Call
			if isPut {
				kind = Put
			}
			const k = 100.0

			observed := Price(kind, s, k, r, sigmaTrue, tau)
			res, err := ImpliedVolatility(observed, s, k, r, tau, kind)
			if err != nil {
				t.Logf("FAILED: unexpected error %v", err)
				return false
			}
			if math.Abs(res.Sigma-sigmaTrue) >= 1e-2 {
				t.Logf("FAILED: sigma=%v recovered=%v (S=%v r=%v tau=%v %v, converged=%v)",
					sigmaTrue, res.Sigma, s, r, tau, kind, res.Converged)
				return false
			}
			return true
		},
		gen.Float64Range(0.1, 0.6),
		gen.Float64Range(95, 105),
		gen.Float64Range(0, 0.1),
		gen.Float64Range(0.1, 1.5),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
