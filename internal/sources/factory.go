package sources

import (
	"context"
	"fmt"
	"log/slog"

	"finora/internal/bank"
	"finora/internal/config"
	"finora/internal/sources/google"
	"finora/internal/sources/memory"
)

// FromConfig builds the transaction and account sources for the
// configured data backend. The sheets backend has no account listing of
// its own, so accounts come from the local seed files there too.
func FromConfig(ctx context.Context, cfg *config.Config) (TransactionSource, AccountSource, error) {
	switch cfg.DataBackend {
	case "aggregator":
		cli, err := bank.New(cfg.AggregatorURL)
		if err != nil {
			return nil, nil, fmt.Errorf("aggregator backend: %w", err)
		}
		slog.Info("Initialized aggregator backend", "url", cfg.AggregatorURL)
		return cli, cli, nil

	case "sheets":
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("sheets backend: %w", err)
		}
		slog.Info("Initialized Google Sheets backend")
		return cli, memory.NewFromFiles("data"), nil

	case "memory":
		store := memory.NewFromFiles("data")
		slog.Info("Initialized memory backend", "dir", "data")
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
