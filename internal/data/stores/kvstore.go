// Package stores provides sqlite-backed implementations of the core storage
// interfaces.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pairview/pairview/internal/core/kv"
	"github.com/pairview/pairview/internal/data/db"
)

// KVStore implements kv.KV using SQLite.
type KVStore struct {
	db *db.DB
}

var _ kv.KV = (*KVStore)(nil)

// NewKVStore creates a new SQLite-backed KV store.
func NewKVStore(db *db.DB) *KVStore {
	return &KVStore{db: db}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping sql.ErrNoRows if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	entry, err := s.GetRaw(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(entry.Value, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}

	return nil
}

// GetRaw retrieves the raw entry for a key.
func (s *KVStore) GetRaw(ctx context.Context, key string) (kv.Entry, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT key, value, created_at, updated_at FROM kv_entries WHERE key = ?`, key)

	var (
		entry   kv.Entry
		created int64
		updated int64
	)
	if err := row.Scan(&entry.Key, &entry.Value, &created, &updated); err != nil {
		return kv.Entry{}, fmt.Errorf("kv get %q: %w", key, err)
	}

	entry.CreatedAt = time.UnixMilli(created)
	entry.UpdatedAt = time.UnixMilli(updated)
	return entry, nil
}

// Set stores a value, replacing any existing entry for the key.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	now := time.Now().UnixMilli()
	_, err = s.db.Conn().ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, now, now)
	if err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}

	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.Conn().QueryRowContext(ctx, `SELECT 1 FROM kv_entries WHERE key = ?`, key).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}
	return true, nil
}

// ListKeys returns all keys in the store.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Conn().QueryContext(ctx, `SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv list keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
