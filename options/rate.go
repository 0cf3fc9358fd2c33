package options

// DefaultRiskFreeRate is the annualized rate assumed when configuration does
// not override it.
const DefaultRiskFreeRate = 0.0342

var riskFreeRate = DefaultRiskFreeRate

// SetRiskFreeRate installs the process-wide annualized risk-free rate read by
// every contract pricing call. Set it once at startup; changing it while
// pricing runs elsewhere is undefined.
func SetRiskFreeRate(r float64) {
	riskFreeRate = r
}

// RiskFreeRate returns the process-wide annualized risk-free rate.
func RiskFreeRate() float64 {
	return riskFreeRate
}
