// Package storage persists users, their aggregator access tokens, and
// the synced transaction cache in SQLite. Contracts are never stored:
// they are recomputed from transaction history on every detection call.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finora/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database connection. Used by readiness checks.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// SaveAccessToken stores the aggregator access token for a user,
// creating the link row if it does not exist yet.
func (r *SQLiteRepository) SaveAccessToken(ctx context.Context, userID int64, token string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, aggregator_token) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			aggregator_token = excluded.aggregator_token,
			linked_at = datetime('now')`,
		userID, token)
	if err != nil {
		return fmt.Errorf("save access token: %w", err)
	}

	slog.InfoContext(ctx, "Stored aggregator access token", "user_id", userID)
	return nil
}

// AccessToken returns the user's aggregator access token. An empty token
// means no data source is linked yet.
func (r *SQLiteRepository) AccessToken(ctx context.Context, userID int64) (string, error) {
	var token string
	err := r.db.QueryRowContext(ctx,
		`SELECT aggregator_token FROM users WHERE id = ?`, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	return token, nil
}

// UsersWithTokens returns the ids of all users with a linked data
// source. Used by the worker's periodic resync.
func (r *SQLiteRepository) UsersWithTokens(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM users WHERE aggregator_token != '' ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpsertTransactions writes canonical transactions into the cache,
// replacing rows that share a provider id.
func (r *SQLiteRepository) UpsertTransactions(ctx context.Context, userID int64, txns []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (user_id, provider_id, name, booked_on, amount_cents)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, provider_id) DO UPDATE SET
			name = excluded.name,
			booked_on = excluded.booked_on,
			amount_cents = excluded.amount_cents,
			synced_at = datetime('now')`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		if _, err := stmt.ExecContext(ctx, userID, t.ID, t.Name,
			t.Date.Format("2006-01-02"), t.Amount.Cents); err != nil {
			return fmt.Errorf("upsert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	slog.InfoContext(ctx, "Synced transactions to cache",
		"user_id", userID,
		"count", len(txns))
	return nil
}

// RecentTransactions returns cached canonical transactions booked on or
// after since, oldest first.
func (r *SQLiteRepository) RecentTransactions(ctx context.Context, userID int64, since core.Date) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider_id, name, booked_on, amount_cents
		FROM transactions
		WHERE user_id = ? AND booked_on >= ?
		ORDER BY booked_on ASC, provider_id ASC`,
		userID, since.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var bookedOn string
		if err := rows.Scan(&t.ID, &t.Name, &bookedOn, &t.Amount.Cents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(bookedOn)
		if err != nil {
			return nil, fmt.Errorf("parse cached date: %w", err)
		}
		t.Date = date
		out = append(out, t)
	}
	return out, rows.Err()
}
