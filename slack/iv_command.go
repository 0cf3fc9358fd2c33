package slack

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Hari31416/optionalyzer/blackscholes"
	"github.com/Hari31416/optionalyzer/chain"
	opterrors "github.com/Hari31416/optionalyzer/errors"
	"github.com/Hari31416/optionalyzer/options"
)

// IVHandler serves /iv in two forms:
//
//	/iv <chain.json>                             batch over a chain file,
//	                                             reporting the at-the-money row
//	/iv <spot> <strike> <expiry> <observed> <kind>  one-shot implied vol
type IVHandler struct {
	Layout       string
	RiskFreeRate float64
}

func (h *IVHandler) Name() string { return "iv" }

func (h *IVHandler) Execute(args string) (string, error) {
	fields := strings.Fields(args)
	switch len(fields) {
	case 1:
		return h.fromChainFile(fields[0])
	case 5:
		return h.oneShot(fields)
	}
	return "Usage: /iv <chain.json> or /iv <spot> <strike> <expiry> <observed> <kind>", nil
}

func (h *IVHandler) fromChainFile(path string) (string, error) {
	ch, err := chain.LoadJSON(path)
	if err != nil {
		return "", err
	}
	ivs, err := chain.ImpliedVolatilities(ch, h.RiskFreeRate, time.Time{}, h.Layout)
	if err != nil {
		return "", err
	}
	atm, err := chain.NearestStrike(ch, ch.Spot)
	if err != nil {
		return "", err
	}
	for _, iv := range ivs {
		if iv.Strike == atm.Strike {
			return fmt.Sprintf("%s spot %.2f, ATM strike %.2f: call IV %.2f%% (converged=%v), put IV %.2f%% (converged=%v)",
				path, ch.Spot, iv.Strike,
				iv.Call.Sigma*100, iv.Call.Converged,
				iv.Put.Sigma*100, iv.Put.Converged), nil
		}
	}
	return "", opterrors.InvalidState("slack.IVHandler", "no ATM row in solved chain")
}

func (h *IVHandler) oneShot(fields []string) (string, error) {
	spot, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return "", opterrors.InvalidArgument("slack.IVHandler", "spot %q is not a number", fields[0])
	}
	strike, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", opterrors.InvalidArgument("slack.IVHandler", "strike %q is not a number", fields[1])
	}
	layout := h.Layout
	if layout == "" {
		layout = options.DefaultDateLayout
	}
	expiry, err := time.Parse(layout, fields[2])
	if err != nil {
		return "", opterrors.InvalidArgument("slack.IVHandler", "expiry %q does not match layout %q", fields[2], layout)
	}
	observed, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return "", opterrors.InvalidArgument("slack.IVHandler", "observed price %q is not a number", fields[3])
	}
	kind, err := blackscholes.ParseKind(fields[4])
	if err != nil {
		return "", err
	}

	tau, err := options.TimeToExpiry(time.Time{}, expiry)
	if err != nil {
		return "", err
	}
	res, err := blackscholes.ImpliedVolatility(observed, spot, strike, h.RiskFreeRate, tau, kind)
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("%s strike %.2f, spot %.2f, observed %.2f: IV %.2f%%",
		kind, strike, spot, observed, res.Sigma*100)
	if !res.Converged {
		msg += " (did not converge; best estimate)"
	}
	return msg, nil
}
