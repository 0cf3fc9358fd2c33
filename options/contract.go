// Package options models single European option contracts and directional
// positions on top of the Black-Scholes pricing core.
package options

import (
	"fmt"
	"math"
	"time"

	"github.com/Hari31416/optionalyzer/blackscholes"
	opterrors "github.com/Hari31416/optionalyzer/errors"
)

// DefaultDateLayout parses expiry strings as day-month-year.
const DefaultDateLayout = "02-01-2006"

const daysPerYear = 365

// Contract is a single European option: immutable terms plus the price and
// Greeks cached by the most recent pricing call. The cache is last-write-wins;
// callers sharing one contract across goroutines get no protection.
type Contract struct {
	Kind   blackscholes.Kind
	Strike float64
	Expiry time.Time
	Vol    float64

	layout     string
	priced     bool
	lastPrice  float64
	lastGreeks blackscholes.Greeks
}

// New builds a contract, parsing expiry under the supplied layout (empty
// means DefaultDateLayout).
func New(kind blackscholes.Kind, strike float64, expiry string, vol float64, layout string) (*Contract, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if strike <= 0 {
		return nil, opterrors.InvalidArgument("options.New", "strike must be positive, got %v", strike)
	}
	if vol < 0 {
		return nil, opterrors.InvalidArgument("options.New", "volatility must be non-negative, got %v", vol)
	}
	exp, err := time.Parse(layout, expiry)
	if err != nil {
		return nil, opterrors.InvalidArgument("options.New", "expiry %q does not match layout %q", expiry, layout)
	}
	return &Contract{Kind: kind, Strike: strike, Expiry: exp, Vol: vol, layout: layout}, nil
}

// NewCall builds a call contract with the default date layout.
func NewCall(strike float64, expiry string, vol float64) (*Contract, error) {
	return New(blackscholes.Call, strike, expiry, vol, DefaultDateLayout)
}

// NewPut builds a put contract with the default date layout.
func NewPut(strike float64, expiry string, vol float64) (*Contract, error) {
	return New(blackscholes.Put, strike, expiry, vol, DefaultDateLayout)
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s %v @ %s (iv %.1f%%)", c.Kind, c.Strike, c.Expiry.Format(c.layout), c.Vol*100)
}

// midnightUTC pins t's calendar date to UTC midnight so day subtraction is an
// exact multiple of 24h.
func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(midnightUTC(to).Sub(midnightUTC(from)).Hours() / 24)
}

// TimeToExpiry returns tau in years: whole days from asOf to expiry divided
// by 365. The zero time means "as of today". A valuation date strictly after
// expiry is an invalid-state error; negative tau is never produced.
func TimeToExpiry(asOf, expiry time.Time) (float64, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	days := daysBetween(asOf, expiry)
	if days < 0 {
		return 0, opterrors.InvalidState("options.TimeToExpiry",
			"valuation date %s is after expiry %s",
			asOf.Format(DefaultDateLayout), expiry.Format(DefaultDateLayout))
	}
	return float64(days) / daysPerYear, nil
}

// TimeToExpiry is the package-level TimeToExpiry against this contract's
// expiry date.
func (c *Contract) TimeToExpiry(asOf time.Time) (float64, error) {
	return TimeToExpiry(asOf, c.Expiry)
}

// Price values the contract at the given spot and valuation date (zero means
// today) using the process-wide risk-free rate, and caches the resulting
// price and Greeks on the contract.
func (c *Contract) Price(spot float64, asOf time.Time) (float64, error) {
	tau, err := c.TimeToExpiry(asOf)
	if err != nil {
		return 0, err
	}
	price, greeks := blackscholes.PriceGreeks(c.Kind, spot, c.Strike, RiskFreeRate(), c.Vol, tau)
	c.lastPrice = price
	c.lastGreeks = greeks
	c.priced = true
	return price, nil
}

// PriceGreeks is Price plus the Greeks record from the same computation.
func (c *Contract) PriceGreeks(spot float64, asOf time.Time) (float64, blackscholes.Greeks, error) {
	price, err := c.Price(spot, asOf)
	if err != nil {
		return 0, blackscholes.Greeks{}, err
	}
	return price, c.lastGreeks, nil
}

// LastPrice returns the most recently computed price.
func (c *Contract) LastPrice() (float64, error) {
	if !c.priced {
		return 0, opterrors.InvalidState("options.LastPrice", "no price computed yet")
	}
	return c.lastPrice, nil
}

// Greeks returns the sensitivities cached by the most recent pricing call.
// Greeks are a byproduct of pricing and cannot be read before Price.
func (c *Contract) Greeks() (blackscholes.Greeks, error) {
	if !c.priced {
		return blackscholes.Greeks{}, opterrors.InvalidState("options.Greeks", "no price computed yet")
	}
	return c.lastGreeks, nil
}

// IntrinsicValue is the exercise value at the given spot. Pure; no cache, no
// preconditions.
func (c *Contract) IntrinsicValue(spot float64) float64 {
	if c.Kind == blackscholes.Call {
		return math.Max(spot-c.Strike, 0)
	}
	return math.Max(c.Strike-spot, 0)
}

// TimeValue is the cached price minus the intrinsic value at the given spot.
func (c *Contract) TimeValue(spot float64) (float64, error) {
	if !c.priced {
		return 0, opterrors.InvalidState("options.TimeValue", "no price computed yet")
	}
	return c.lastPrice - c.IntrinsicValue(spot), nil
}
