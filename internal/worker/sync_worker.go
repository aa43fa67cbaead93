// Package worker refreshes per-user transaction caches from the
// configured data source, driven by AMQP sync requests and a periodic
// resync ticker.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finora/internal/amqp"
	"finora/internal/contracts"
	"finora/internal/sources"
	"finora/internal/storage"
)

// SyncWorker pulls a user's transaction window from the data source and
// upserts the normalized records into the SQLite cache.
type SyncWorker struct {
	storage    *storage.SQLiteRepository
	source     sources.TransactionSource
	windowDays int
}

func NewSyncWorker(store *storage.SQLiteRepository, source sources.TransactionSource, windowDays int) *SyncWorker {
	return &SyncWorker{
		storage:    store,
		source:     source,
		windowDays: windowDays,
	}
}

// HandleSyncMessage processes a single account sync request from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.AccountSyncMessage) error {
	slog.InfoContext(ctx, "Processing account sync request", "user_id", msg.UserID)
	return w.SyncUser(ctx, msg.UserID)
}

// SyncUser refreshes one user's cache. A user without a token is
// skipped, not failed: the request may have raced token removal.
func (w *SyncWorker) SyncUser(ctx context.Context, userID int64) error {
	token, err := w.storage.AccessToken(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "Skipping sync for unknown user", "user_id", userID)
			return nil
		}
		return fmt.Errorf("look up access token: %w", err)
	}
	if token == "" {
		slog.InfoContext(ctx, "Skipping sync, no data source linked", "user_id", userID)
		return nil
	}

	raw, err := w.source.Recent(ctx, token, time.Now(), w.windowDays)
	if err != nil {
		return fmt.Errorf("fetch transaction window: %w", err)
	}

	txns := contracts.Normalize(raw)
	if err := w.storage.UpsertTransactions(ctx, userID, txns); err != nil {
		return fmt.Errorf("cache transactions: %w", err)
	}

	slog.InfoContext(ctx, "Synced user transactions",
		"user_id", userID,
		"fetched", len(raw),
		"kept", len(txns))
	return nil
}

// ResyncAll refreshes every user with a linked data source. One failing
// user does not stop the sweep.
func (w *SyncWorker) ResyncAll(ctx context.Context) (int, error) {
	ids, err := w.storage.UsersWithTokens(ctx)
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	synced := 0
	for _, id := range ids {
		if err := w.SyncUser(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to resync user", "user_id", id, "error", err)
			continue
		}
		synced++
	}
	return synced, nil
}
