package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV stores opaque blobs by namespace in the kv table.
type KV struct {
	conn *sql.DB
}

// Load returns the blob stored under namespace. found is false when the
// namespace has never been written or was deleted.
func (s *KV) Load(ctx context.Context, namespace string) ([]byte, bool, error) {
	var value string
	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", namespace, err)
	}
	return []byte(value), true, nil
}

// Save replaces the blob stored under namespace.
func (s *KV) Save(ctx context.Context, namespace string, data []byte) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		namespace, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", namespace, err)
	}
	return nil
}

// Delete removes namespace. Deleting a missing namespace is not an error.
func (s *KV) Delete(ctx context.Context, namespace string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, namespace); err != nil {
		return fmt.Errorf("deleting %s: %w", namespace, err)
	}
	return nil
}
