package blackscholes

import (
	"gonum.org/v1/gonum/optimize"

	opterrors "github.com/Hari31416/optionalyzer/errors"
)

// DefaultSeed is the solver's initial volatility guess: 20% annualized, a
// reasonable prior for most liquid underlyings.
const DefaultSeed = 0.20

// IVResult carries the solver output. Sigma holds the best estimate found
// even when Converged is false; callers decide whether a failed minimization
// is fatal.
type IVResult struct {
	Sigma     float64 `json:"sigma"`
	Converged bool    `json:"converged"`
}

// ImpliedVolatility recovers the volatility that reprices an observed market
// price by unconstrained minimization of the squared pricing error, seeded at
// DefaultSeed. An unrecognized kind is rejected before any numeric work.
// Non-convergence (deep OTM options, tau near zero, non-positive observed
// prices) is reported through the Converged flag, never as an error.
func ImpliedVolatility(observed, s, k, r, tau float64, kind Kind) (IVResult, error) {
	if kind != Call && kind != Put {
		return IVResult{}, opterrors.InvalidArgument("blackscholes.ImpliedVolatility", "unknown option kind %d", int(kind))
	}
	return solveImpliedVol(observed, s, k, r, tau, kind, nil), nil
}

// solveImpliedVol runs the minimization. Settings are injectable so tests can
// starve the minimizer of iterations.
func solveImpliedVol(observed, s, k, r, tau float64, kind Kind, settings *optimize.Settings) IVResult {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			diff := Price(kind, s, k, r, x[0], tau) - observed
			return diff * diff
		},
	}

	result, err := optimize.Minimize(problem, []float64{DefaultSeed}, settings, &optimize.NelderMead{})
	if err != nil || result == nil {
		sigma := DefaultSeed
		if result != nil && len(result.X) > 0 {
			sigma = result.X[0]
		}
		return IVResult{Sigma: sigma, Converged: false}
	}

	// Iteration and evaluation limits leave a nil error but a terminal
	// status; only genuine convergence statuses count as success.
	switch result.Status {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return IVResult{Sigma: result.X[0], Converged: true}
	}
	return IVResult{Sigma: result.X[0], Converged: false}
}
