// Package chain extracts implied volatilities from an option chain: rows of
// (strike, observed call price, observed put price) for one expiry.
package chain

import (
	"math"
	"time"

	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/Hari31416/optionalyzer/blackscholes"
	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/logging"
	"github.com/Hari31416/optionalyzer/options"
)

// Quote is one chain row: a strike with the observed call and put prices.
type Quote struct {
	Strike    float64 `json:"strike"`
	CallPrice float64 `json:"call_price"`
	PutPrice  float64 `json:"put_price"`
}

// Chain is an option chain for a single expiry.
type Chain struct {
	Spot   float64 `json:"spot"`
	Expiry string  `json:"expiry"`
	Quotes []Quote `json:"quotes"`
}

// IV holds the solved call and put implied volatilities for one strike.
// Convergence is per side; a row that fails to converge still carries the
// best estimate found.
type IV struct {
	Strike float64               `json:"strike"`
	Call   blackscholes.IVResult `json:"call"`
	Put    blackscholes.IVResult `json:"put"`
}

// ImpliedVolatilities solves call and put implied vol for every quote in the
// chain, rendering a progress bar. The expiry is parsed once under the layout
// and the temporal guard applies: a valuation date past expiry fails the
// whole batch. Per-row non-convergence is logged and reported through the
// result flags, never as an error.
func ImpliedVolatilities(ch *Chain, r float64, asOf time.Time, layout string) ([]IV, error) {
	log := logging.WithComponent("chain")

	if layout == "" {
		layout = options.DefaultDateLayout
	}
	expiry, err := time.Parse(layout, ch.Expiry)
	if err != nil {
		return nil, opterrors.InvalidArgument("chain.ImpliedVolatilities", "expiry %q does not match layout %q", ch.Expiry, layout)
	}
	tau, err := options.TimeToExpiry(asOf, expiry)
	if err != nil {
		return nil, err
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(ch.Quotes)),
		mpb.PrependDecorators(
			decor.Name("Implied vol"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	ivs := make([]IV, 0, len(ch.Quotes))
	for _, q := range ch.Quotes {
		call, err := blackscholes.ImpliedVolatility(q.CallPrice, ch.Spot, q.Strike, r, tau, blackscholes.Call)
		if err != nil {
			return nil, err
		}
		put, err := blackscholes.ImpliedVolatility(q.PutPrice, ch.Spot, q.Strike, r, tau, blackscholes.Put)
		if err != nil {
			return nil, err
		}

		if !call.Converged {
			log.Warn().Float64("strike", q.Strike).Float64("observed", q.CallPrice).
				Float64("sigma", call.Sigma).Msg("call IV did not converge")
		}
		if !put.Converged {
			log.Warn().Float64("strike", q.Strike).Float64("observed", q.PutPrice).
				Float64("sigma", put.Sigma).Msg("put IV did not converge")
		}

		ivs = append(ivs, IV{Strike: q.Strike, Call: call, Put: put})
		bar.Increment()
	}
	p.Wait()

	return ivs, nil
}

// NearestStrike returns the quote whose strike is closest to the given spot,
// or an invalid-state error for an empty chain.
func NearestStrike(ch *Chain, spot float64) (Quote, error) {
	if len(ch.Quotes) == 0 {
		return Quote{}, opterrors.InvalidState("chain.NearestStrike", "chain holds no quotes")
	}
	best := ch.Quotes[0]
	for _, q := range ch.Quotes[1:] {
		if math.Abs(q.Strike-spot) < math.Abs(best.Strike-spot) {
			best = q
		}
	}
	return best, nil
}
