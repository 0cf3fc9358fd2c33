// Package portfolio aggregates option positions into premium totals and
// payoff/PnL curves over a spot-price grid.
package portfolio

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/options"
)

// Defaults applied when a PayoffRequest leaves a field zero. Lot size and
// sample count are configuration defaults, not fixed law; config can override
// them per portfolio.
const (
	DefaultLotSize       = 50
	DefaultSamples       = 200
	DefaultRangeFraction = 0.1
)

// Portfolio holds an ordered collection of positions plus the reference spot
// price the payoff grid is centered on. Aggregation methods are pure functions
// over current state; there is no memoization across spot inputs.
type Portfolio struct {
	positions []options.Position
	refSpot   float64
	lotSize   int
}

// New builds an empty portfolio around a reference spot price.
func New(referenceSpot float64) (*Portfolio, error) {
	p := &Portfolio{lotSize: DefaultLotSize}
	if err := p.SetReferenceSpot(referenceSpot); err != nil {
		return nil, err
	}
	return p, nil
}

// SetReferenceSpot re-centers the payoff grid. Negative spots are rejected;
// the reference spot is never allowed to go below zero.
func (p *Portfolio) SetReferenceSpot(s float64) error {
	if s < 0 {
		return opterrors.InvalidArgument("portfolio.SetReferenceSpot", "reference spot must be non-negative, got %v", s)
	}
	p.refSpot = s
	return nil
}

// ReferenceSpot returns the spot price the payoff grid is centered on.
func (p *Portfolio) ReferenceSpot() float64 {
	return p.refSpot
}

// SetLotSize overrides the exchange contract multiplier applied to rounded
// per-unit PnL.
func (p *Portfolio) SetLotSize(n int) error {
	if n <= 0 {
		return opterrors.InvalidArgument("portfolio.SetLotSize", "lot size must be positive, got %d", n)
	}
	p.lotSize = n
	return nil
}

// Positions returns the held positions in insertion order.
func (p *Portfolio) Positions() []options.Position {
	return p.positions
}

// Add appends positions to the portfolio.
func (p *Portfolio) Add(positions ...options.Position) {
	p.positions = append(p.positions, positions...)
}

// Remove drops positions matching by contract pointer and direction. Removing
// a position that is not held is a no-op.
func (p *Portfolio) Remove(positions ...options.Position) {
	for _, target := range positions {
		for i, held := range p.positions {
			if held.Contract == target.Contract && held.Direction == target.Direction {
				p.positions = append(p.positions[:i], p.positions[i+1:]...)
				break
			}
		}
	}
}

// TotalPremium sums the signed price of every position at one spot. The zero
// time values as of today.
func (p *Portfolio) TotalPremium(spot float64, asOf time.Time) (float64, error) {
	var total float64
	for _, pos := range p.positions {
		price, err := pos.SignedPrice(spot, asOf)
		if err != nil {
			return 0, err
		}
		total += price
	}
	return total, nil
}

// TotalPremiumCurve evaluates TotalPremium element-wise over a spot grid.
// This vectorized form is how a payoff curve is produced without looping at
// the call site.
func (p *Portfolio) TotalPremiumCurve(spots []float64, asOf time.Time) ([]float64, error) {
	total := make([]float64, len(spots))
	row := make([]float64, len(spots))
	for _, pos := range p.positions {
		for i, s := range spots {
			price, err := pos.SignedPrice(s, asOf)
			if err != nil {
				return nil, err
			}
			row[i] = price
		}
		floats.Add(total, row)
	}
	return total, nil
}

// NearestExpiry returns the earliest expiry date across held positions. An
// empty portfolio has no nearest expiry and fails with an invalid-state error.
func (p *Portfolio) NearestExpiry() (time.Time, error) {
	if len(p.positions) == 0 {
		return time.Time{}, opterrors.InvalidState("portfolio.NearestExpiry", "portfolio holds no positions")
	}
	nearest := p.positions[0].Contract.Expiry
	for _, pos := range p.positions[1:] {
		if pos.Contract.Expiry.Before(nearest) {
			nearest = pos.Contract.Expiry
		}
	}
	return nearest, nil
}

// PayoffRequest parameterizes PayoffCurve. Zero values fall back to defaults:
// ValuationDate to the nearest expiry, RangeFraction to DefaultRangeFraction,
// Samples to DefaultSamples. NewSpot zero keeps the current reference spot.
type PayoffRequest struct {
	ValuationDate time.Time
	RangeFraction float64
	NewSpot       float64
	Samples       int
}

// Payoff is the aggregation result: the spot grid and the PnL series at the
// valuation date and at the nearest expiry. PnL points are rounded to the
// nearest unit and scaled by the lot size, matching exchange lot conventions.
type Payoff struct {
	Spots         []float64 `json:"spots"`
	PnL           []float64 `json:"pnl"`
	PnLAtExpiry   []float64 `json:"pnl_at_expiry"`
	ReferenceSpot float64   `json:"reference_spot"`
	PremiumPaid   float64   `json:"premium_paid"`
	ValuationDate time.Time `json:"valuation_date"`
	NearestExpiry time.Time `json:"nearest_expiry"`
}

// PayoffCurve builds a linearly spaced grid of spots around the reference
// spot and values the portfolio over it twice: at the requested valuation
// date and at the nearest expiry. The premium paid is the portfolio valued
// today at the reference spot; PnL is premium at the grid point minus premium
// paid, rounded then lot-scaled.
func (p *Portfolio) PayoffCurve(req PayoffRequest) (*Payoff, error) {
	if req.NewSpot != 0 {
		if err := p.SetReferenceSpot(req.NewSpot); err != nil {
			return nil, err
		}
	}

	nearest, err := p.NearestExpiry()
	if err != nil {
		return nil, err
	}
	valuation := req.ValuationDate
	if valuation.IsZero() {
		valuation = nearest
	}

	fraction := req.RangeFraction
	if fraction == 0 {
		fraction = DefaultRangeFraction
	}
	if fraction < 0 || fraction > 1 {
		return nil, opterrors.InvalidArgument("portfolio.PayoffCurve", "range fraction must be in (0, 1], got %v", fraction)
	}
	samples := req.Samples
	if samples == 0 {
		samples = DefaultSamples
	}
	if samples < 2 {
		return nil, opterrors.InvalidArgument("portfolio.PayoffCurve", "need at least 2 samples, got %d", samples)
	}

	grid := make([]float64, samples)
	floats.Span(grid, p.refSpot*(1-fraction), p.refSpot*(1+fraction))

	premiumPaid, err := p.TotalPremium(p.refSpot, time.Time{})
	if err != nil {
		return nil, err
	}

	pnl, err := p.pnlSeries(grid, valuation, premiumPaid)
	if err != nil {
		return nil, err
	}
	pnlAtExpiry, err := p.pnlSeries(grid, nearest, premiumPaid)
	if err != nil {
		return nil, err
	}

	return &Payoff{
		Spots:         grid,
		PnL:           pnl,
		PnLAtExpiry:   pnlAtExpiry,
		ReferenceSpot: p.refSpot,
		PremiumPaid:   premiumPaid,
		ValuationDate: valuation,
		NearestExpiry: nearest,
	}, nil
}

func (p *Portfolio) pnlSeries(grid []float64, asOf time.Time, premiumPaid float64) ([]float64, error) {
	premium, err := p.TotalPremiumCurve(grid, asOf)
	if err != nil {
		return nil, err
	}
	pnl := make([]float64, len(premium))
	for i, v := range premium {
		pnl[i] = math.Round(v-premiumPaid) * float64(p.lotSize)
	}
	return pnl, nil
}
