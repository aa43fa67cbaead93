package contracts

import (
	"sort"
	"strings"

	"finora/internal/core"
)

// signature identifies a candidate recurring series. Two transactions
// belong to the same series iff their signatures are equal; there is no
// fuzzy matching of merchant strings.
type signature struct {
	name  string // case-folded, whitespace-collapsed
	euros int64  // absolute amount rounded to the nearest whole euro
}

// series is a candidate recurring series: all transactions sharing one
// signature, sorted ascending by date.
type series struct {
	sig  signature
	txns []core.Transaction
}

// groupBySignature partitions transactions into candidate series.
//
// The result is ordered by each signature's first occurrence in the
// input, so downstream ID assignment does not depend on map iteration
// order. Same-day duplicates are retained as separate occurrences: they
// may be genuinely repeated postings, and merging them would corrupt
// the interval computation.
func groupBySignature(txns []core.Transaction) []series {
	index := make(map[signature]int, len(txns))
	groups := make([]series, 0, len(txns))

	for _, t := range txns {
		sig := signatureOf(t)
		i, seen := index[sig]
		if !seen {
			i = len(groups)
			index[sig] = i
			groups = append(groups, series{sig: sig})
		}
		groups[i].txns = append(groups[i].txns, t)
	}

	for i := range groups {
		g := groups[i]
		sort.SliceStable(g.txns, func(a, b int) bool {
			return g.txns[a].Date.Before(g.txns[b].Date)
		})
	}
	return groups
}

func signatureOf(t core.Transaction) signature {
	return signature{
		name:  normalizeName(t.Name),
		euros: roundToWholeEuros(t.Amount),
	}
}

// normalizeName case-folds and collapses internal whitespace.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// roundToWholeEuros rounds the absolute amount half-up to whole euros.
// The rounding only widens the grouping key to absorb penny-level
// merchant noise; reported contract amounts stay exact.
func roundToWholeEuros(m core.Money) int64 {
	return (m.Abs().Cents + 50) / 100
}
