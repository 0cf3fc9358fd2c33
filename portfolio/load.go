package portfolio

import (
	"os"

	"github.com/xhhuango/json"

	"github.com/Hari31416/optionalyzer/blackscholes"
	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/logging"
	"github.com/Hari31416/optionalyzer/options"
)

// positionFile is the on-disk shape of a portfolio.
type positionFile struct {
	ReferenceSpot float64       `json:"reference_spot"`
	Positions     []positionRow `json:"positions"`
}

type positionRow struct {
	Kind       string  `json:"kind"`
	Strike     float64 `json:"strike"`
	Expiry     string  `json:"expiry"`
	Volatility float64 `json:"volatility"`
	Direction  string  `json:"direction"`
}

// LoadJSON reads a portfolio from a JSON position file. Every row is
// validated (kind, direction, strike, expiry under the layout); the first bad
// row fails the load with its index in the error.
func LoadJSON(path, layout string) (*Portfolio, error) {
	log := logging.WithComponent("portfolio")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, opterrors.Wrapf(err, "reading portfolio file %s", path)
	}

	var file positionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, opterrors.Wrapf(err, "parsing portfolio file %s", path)
	}

	p, err := New(file.ReferenceSpot)
	if err != nil {
		return nil, err
	}

	for i, row := range file.Positions {
		kind, err := blackscholes.ParseKind(row.Kind)
		if err != nil {
			return nil, opterrors.Wrapf(err, "position %d", i)
		}
		direction, err := options.ParseDirection(row.Direction)
		if err != nil {
			return nil, opterrors.Wrapf(err, "position %d", i)
		}
		contract, err := options.New(kind, row.Strike, row.Expiry, row.Volatility, layout)
		if err != nil {
			return nil, opterrors.Wrapf(err, "position %d", i)
		}
		p.Add(options.Position{Contract: contract, Direction: direction})
	}

	log.Info().
		Str("file", path).
		Int("positions", len(file.Positions)).
		Float64("reference_spot", file.ReferenceSpot).
		Msg("portfolio loaded")
	return p, nil
}
