package contracts

import "finora/internal/core"

// Cadence thresholds in mean whole days between occurrences. 32 covers
// calendar-month variance (28-31 days) plus one day of posting jitter;
// 95 covers three months (90-92 days) plus jitter.
const (
	monthlyMaxMeanGap   = 32
	quarterlyMaxMeanGap = 95
)

// classifyInterval computes the dominant cadence of a date-sorted series
// with at least two occurrences. The mean gap in whole days decides the
// bucket; no dispersion check is applied, so a series with one huge gap
// is still classified by its skewed mean.
func classifyInterval(txns []core.Transaction) core.Interval {
	totalDays := 0
	for i := 1; i < len(txns); i++ {
		totalDays += txns[i-1].Date.DaysUntil(txns[i].Date)
	}
	mean := float64(totalDays) / float64(len(txns)-1)

	switch {
	case mean <= monthlyMaxMeanGap:
		return core.Monthly
	case mean <= quarterlyMaxMeanGap:
		return core.Quarterly
	default:
		return core.Yearly
	}
}
