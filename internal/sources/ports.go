// Package sources defines the ports for outbound transaction data
// adapters: the live aggregator, a Google Sheets import, and an
// in-memory seed store for development and tests.
package sources

import (
	"context"
	"time"

	"finora/internal/bank"
)

type (
	// TransactionSource returns the raw transaction window ending at end
	// and reaching back the given number of days. Records are in the
	// aggregator's native shape and sign convention.
	TransactionSource interface {
		Recent(ctx context.Context, token string, end time.Time, days int) ([]bank.Transaction, error)
	}

	// AccountSource returns the user's linked bank accounts.
	AccountSource interface {
		Accounts(ctx context.Context, token string) ([]bank.Account, error)
	}
)
