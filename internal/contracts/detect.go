// Package contracts implements the recurring-payment detection engine.
//
// Detection is a single synchronous pass over an in-memory transaction
// window: raw records are normalized, partitioned into candidate series
// by a (name, rounded amount) signature, each surviving series is
// classified by cadence and category, and the next payment date is
// projected from the most recent occurrence. The engine performs no I/O
// and keeps no state between runs, so concurrent detection runs need no
// coordination.
package contracts

import (
	"finora/internal/bank"
	"finora/internal/core"
)

// minOccurrences is the evidence floor: a signature seen fewer times is
// not a contract candidate.
const minOccurrences = 2

// Detect infers recurring contracts from a raw aggregator transaction
// window. IDs are assigned sequentially in first-occurrence order and
// are only stable within one result list; contracts are a view derived
// from transaction history, recomputed on every call.
func Detect(raw []bank.Transaction) []core.Contract {
	return DetectNormalized(Normalize(raw))
}

// DetectNormalized runs detection on already-normalized transactions,
// such as the SQLite window cache.
func DetectNormalized(txns []core.Transaction) []core.Contract {
	groups := groupBySignature(txns)

	contracts := make([]core.Contract, 0, len(groups))
	for _, g := range groups {
		if len(g.txns) < minOccurrences {
			continue
		}

		// The earliest transaction is the representative: its exact
		// amount is reported, not the rounded grouping amount.
		first := g.txns[0]
		last := g.txns[len(g.txns)-1]
		interval := classifyInterval(g.txns)

		contracts = append(contracts, core.Contract{
			ID:          len(contracts) + 1,
			Name:        first.Name,
			Category:    classifyCategory(first.Name, first.Amount),
			Amount:      first.Amount,
			Interval:    interval,
			NextPayment: projectNextPayment(last.Date, interval),
			Provider:    first.Name,
		})
	}
	return contracts
}
