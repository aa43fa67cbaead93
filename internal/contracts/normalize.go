package contracts

import (
	"log/slog"
	"strings"

	"finora/internal/bank"
	"finora/internal/core"
)

// Normalize converts raw aggregator records into canonical transactions.
//
// The aggregator reports positive amounts for money leaving the account;
// the dashboard shows expenses as negative, so the sign is flipped here.
// Records with an unparseable date or an empty name are dropped with a
// warning; one bad record must not lose the rest of the window.
func Normalize(raw []bank.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(raw))
	for _, r := range raw {
		t, err := normalizeOne(r)
		if err != nil {
			slog.Warn("Dropping malformed transaction",
				"transaction_id", r.ID,
				"error", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeOne(r bank.Transaction) (core.Transaction, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return core.Transaction{}, core.ErrEmptyName
	}
	return core.Transaction{
		ID:     r.ID,
		Name:   name,
		Date:   date,
		Amount: core.Money{Cents: -core.CentsFromFloat(r.Amount)},
	}, nil
}
