package options

import (
	"strings"
	"time"

	opterrors "github.com/Hari31416/optionalyzer/errors"
)

// Direction signs a position's contribution to premium and PnL.
type Direction int

const (
	Long  Direction = 1
	Short Direction = -1
)

func (d Direction) String() string {
	if d == Short {
		return "short"
	}
	return "long"
}

// ParseDirection converts "long" or "short", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return Long, nil
	case "short":
		return Short, nil
	}
	return 0, opterrors.InvalidArgument("options.ParseDirection", "unknown direction %q", s)
}

// Position pairs one contract with a direction. It has no state of its own;
// the contract's price cache is shared with every holder of the same pointer.
type Position struct {
	Contract  *Contract
	Direction Direction
}

// SignedPrice prices the contract and applies the direction sign.
func (p Position) SignedPrice(spot float64, asOf time.Time) (float64, error) {
	price, err := p.Contract.Price(spot, asOf)
	if err != nil {
		return 0, err
	}
	return float64(p.Direction) * price, nil
}
