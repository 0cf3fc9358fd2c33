package chart

import (
	"os"

	"github.com/xhhuango/json"

	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/portfolio"
)

// WriteJSON exports the payoff tuple (spot grid, both PnL series, reference
// spot, premium paid) for external plotting tools.
func WriteJSON(path string, p *portfolio.Payoff) error {
	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return opterrors.Wrap(err, "marshaling payoff")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return opterrors.Wrapf(err, "writing payoff file %s", path)
	}
	return nil
}
