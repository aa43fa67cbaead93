package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"finora/internal/bank"
)

// Store is an in-memory transaction source seeded from JSON files. It
// backs local development and tests where no aggregator is reachable.
type Store struct {
	mu       sync.Mutex
	txns     []bank.Transaction
	accounts []bank.Account
}

func New(txns []bank.Transaction, accounts []bank.Account) *Store {
	return &Store{txns: txns, accounts: accounts}
}

// NewFromFiles loads seed data from base/transactions.json and
// base/accounts.json. Missing or unreadable files leave that part empty.
func NewFromFiles(base string) *Store {
	var txns []bank.Transaction
	var accounts []bank.Account
	readJSON(filepath.Join(base, "transactions.json"), &txns)
	readJSON(filepath.Join(base, "accounts.json"), &accounts)
	return New(txns, accounts)
}

// Recent returns seeded transactions within the window; the token is
// ignored.
func (s *Store) Recent(_ context.Context, _ string, end time.Time, days int) ([]bank.Transaction, error) {
	start := end.AddDate(0, 0, -days).Format("2006-01-02")
	endStr := end.Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]bank.Transaction, 0, len(s.txns))
	for _, t := range s.txns {
		// ISO dates compare correctly as strings.
		if t.Date >= start && t.Date <= endStr {
			out = append(out, t)
		}
	}
	return out, nil
}

// Accounts returns the seeded account list.
func (s *Store) Accounts(_ context.Context, _ string) ([]bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bank.Account(nil), s.accounts...), nil
}

// Add appends transactions to the seed set. Used by tests.
func (s *Store) Add(txns ...bank.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, txns...)
}

func readJSON(path string, out any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Ignoring malformed seed file", "path", path, "error", err)
	}
}
