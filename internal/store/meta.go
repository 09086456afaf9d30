package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Meta record keys used by the sync scheduler.
const (
	MetaLastPrefetchDay = "last_prefetch_day"
)

// GetMeta returns the value stored under key, or ErrNotFound.
func (s *Store) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("db.GetContext > %w", err)
	}
	return value, nil
}

// PutMeta upserts a metadata record.
func (s *Store) PutMeta(ctx context.Context, key, value string) error {
	query := `INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert meta %s: %w", key, err)
	}
	return nil
}

// DeleteMeta removes a metadata record, if any.
func (s *Store) DeleteMeta(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM meta WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete meta %s: %w", key, err)
	}
	return nil
}
