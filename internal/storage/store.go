// Package storage persists the two application collections as independent
// serialized entries in a local SQLite file. Each entry is written whole on
// every mutation; a missing or unparseable entry loads as an empty
// collection rather than an error.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"prancheta/internal/core"

	_ "modernc.org/sqlite"
)

// Storage keys, one per collection. The suffixes carry the format version of
// the stored blob and match the keys the original data used, so existing
// exports remain recognizable.
const (
	KeyOrders   = "orders_v2"
	KeyStatuses = "status_v1"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
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

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadOrders reads the order collection. A missing or corrupt entry yields an
// empty collection; the condition is logged, never surfaced.
func (s *Store) LoadOrders(ctx context.Context) []core.Order {
	return loadCollection[core.Order](ctx, s, KeyOrders)
}

// SaveOrders overwrites the stored order collection with the given one.
func (s *Store) SaveOrders(ctx context.Context, orders []core.Order) error {
	return s.saveCollection(ctx, KeyOrders, orders)
}

// LoadStatuses reads the monthly status collection, empty when absent or
// corrupt.
func (s *Store) LoadStatuses(ctx context.Context) []core.MonthlyStatus {
	return loadCollection[core.MonthlyStatus](ctx, s, KeyStatuses)
}

// SaveStatuses overwrites the stored status collection with the given one.
func (s *Store) SaveStatuses(ctx context.Context, statuses []core.MonthlyStatus) error {
	return s.saveCollection(ctx, KeyStatuses, statuses)
}

func loadCollection[T any](ctx context.Context, s *Store, key string) []T {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "State entry unreadable, starting empty", "key", key, "error", err)
		return nil
	}
	var out []T
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		slog.WarnContext(ctx, "State entry corrupt, starting empty", "key", key, "error", err)
		return nil
	}
	return out
}

func (s *Store) saveCollection(ctx context.Context, key string, collection any) error {
	blob, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(blob))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
