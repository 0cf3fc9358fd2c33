// Package chart renders payoff curves: an ASCII terminal chart with colored
// profit/loss bands, plus a JSON export for external plotting tools.
package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/Hari31416/optionalyzer/portfolio"
)

const (
	chartHeight = 16
	chartWidth  = 64
)

// Split separates a PnL series into its positive and negative parts. Both
// results keep the input's length, with NaN padding where the other sign
// holds, so either can be plotted against the original spot grid.
func Split(pnl []float64) (pos, neg []float64) {
	pos = make([]float64, len(pnl))
	neg = make([]float64, len(pnl))
	for i, v := range pnl {
		if v >= 0 {
			pos[i] = v
			neg[i] = math.NaN()
		} else {
			pos[i] = math.NaN()
			neg[i] = v
		}
	}
	return pos, neg
}

// Breakevens returns the spots where the series crosses zero, linearly
// interpolated between adjacent grid points.
func Breakevens(spots, pnl []float64) []float64 {
	var crossings []float64
	for i := 1; i < len(pnl) && i < len(spots); i++ {
		a, b := pnl[i-1], pnl[i]
		if a == 0 {
			crossings = append(crossings, spots[i-1])
			continue
		}
		if (a < 0) != (b < 0) {
			t := a / (a - b)
			crossings = append(crossings, spots[i-1]+t*(spots[i]-spots[i-1]))
		}
	}
	return crossings
}

// money formats a value with two fixed decimals.
func money(x float64) string {
	return decimal.NewFromFloat(x).Round(2).StringFixed(2)
}

// Render writes a fixed-height ASCII chart of the payoff to w: '*' traces
// the PnL at the valuation date, 'o' the PnL at the nearest expiry. Profit
// cells are green, loss cells red. Premium paid, reference spot and expiry
// breakevens are printed below the plot.
func Render(w io.Writer, p *portfolio.Payoff) error {
	if len(p.Spots) < 2 || len(p.PnL) != len(p.Spots) || len(p.PnLAtExpiry) != len(p.Spots) {
		return fmt.Errorf("chart: malformed payoff: %d spots, %d pnl, %d expiry pnl",
			len(p.Spots), len(p.PnL), len(p.PnLAtExpiry))
	}

	pnl := resample(p.PnL, chartWidth)
	expiry := resample(p.PnLAtExpiry, chartWidth)

	lo, hi := seriesRange(pnl, expiry)
	if hi == lo {
		hi = lo + 1
	}
	step := (hi - lo) / float64(chartHeight-1)

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	for row := chartHeight - 1; row >= 0; row-- {
		bandLo := lo + float64(row)*step - step/2
		bandHi := bandLo + step
		zeroRow := bandLo <= 0 && 0 < bandHi

		label := "        "
		if row%4 == 0 || row == chartHeight-1 {
			label = fmt.Sprintf("%8.0f", lo+float64(row)*step)
		}
		if _, err := fmt.Fprintf(w, "%s |", label); err != nil {
			return err
		}

		for col := 0; col < chartWidth; col++ {
			cell, value := " ", 0.0
			switch {
			case bandLo <= pnl[col] && pnl[col] < bandHi:
				cell, value = "*", pnl[col]
			case bandLo <= expiry[col] && expiry[col] < bandHi:
				cell, value = "o", expiry[col]
			case zeroRow:
				cell = "-"
			}

			var err error
			switch {
			case cell == "*" || cell == "o":
				if value >= 0 {
					_, err = green.Fprint(w, cell)
				} else {
					_, err = red.Fprint(w, cell)
				}
			default:
				_, err = fmt.Fprint(w, cell)
			}
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%9s+%s\n", "", axis(chartWidth)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%10s%-12s%40s\n", "",
		money(p.Spots[0]), money(p.Spots[len(p.Spots)-1])); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\npremium paid: %s   reference spot: %s\n",
		money(p.PremiumPaid), money(p.ReferenceSpot)); err != nil {
		return err
	}
	crossings := Breakevens(p.Spots, p.PnLAtExpiry)
	if len(crossings) > 0 {
		if _, err := fmt.Fprint(w, "breakevens at expiry:"); err != nil {
			return err
		}
		for _, c := range crossings {
			if _, err := fmt.Fprintf(w, " %s", money(c)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// resample downsamples (or stretches) a series to n columns by nearest index.
func resample(series []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		j := i * (len(series) - 1) / (n - 1)
		out[i] = series[j]
	}
	return out
}

func seriesRange(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

func axis(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
