package contracts

import "finora/internal/core"

// projectNextPayment advances the most recent occurrence by exactly one
// payment period. There is no drift correction against the observed mean
// gap. Day overflow follows core.Date.AddMonths (time.AddDate rollover,
// not clamping).
func projectNextPayment(last core.Date, interval core.Interval) core.Date {
	switch interval {
	case core.Monthly:
		return last.AddMonths(1)
	case core.Quarterly:
		return last.AddMonths(3)
	default:
		return last.AddYears(1)
	}
}
