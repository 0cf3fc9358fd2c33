package slack

import (
	"fmt"
	"strings"

	"github.com/Hari31416/optionalyzer/chart"
	"github.com/Hari31416/optionalyzer/portfolio"
)

// PayoffHandler serves /payoff <portfolio.json>: loads the position file,
// builds the payoff curve with configured defaults, and summarizes it.
type PayoffHandler struct {
	Layout        string
	LotSize       int
	Samples       int
	RangeFraction float64
}

func (h *PayoffHandler) Name() string { return "payoff" }

func (h *PayoffHandler) Execute(args string) (string, error) {
	path := strings.TrimSpace(args)
	if path == "" {
		return "Usage: /payoff <portfolio.json>", nil
	}

	p, err := portfolio.LoadJSON(path, h.Layout)
	if err != nil {
		return "", err
	}
	if h.LotSize > 0 {
		if err := p.SetLotSize(h.LotSize); err != nil {
			return "", err
		}
	}

	payoff, err := p.PayoffCurve(portfolio.PayoffRequest{
		Samples:       h.Samples,
		RangeFraction: h.RangeFraction,
	})
	if err != nil {
		return "", err
	}

	maxProfit, maxLoss := payoff.PnLAtExpiry[0], payoff.PnLAtExpiry[0]
	for _, v := range payoff.PnLAtExpiry {
		if v > maxProfit {
			maxProfit = v
		}
		if v < maxLoss {
			maxLoss = v
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Payoff for %s (%d positions)\n", path, len(p.Positions()))
	fmt.Fprintf(&sb, "premium paid: %.2f\n", payoff.PremiumPaid)
	fmt.Fprintf(&sb, "max profit over grid: %.0f, max loss: %.0f\n", maxProfit, maxLoss)
	crossings := chart.Breakevens(payoff.Spots, payoff.PnLAtExpiry)
	if len(crossings) == 0 {
		sb.WriteString("no breakeven inside the grid\n")
	} else {
		sb.WriteString("breakevens at expiry:")
		for _, c := range crossings {
			fmt.Fprintf(&sb, " %.2f", c)
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
