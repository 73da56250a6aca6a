package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sfc-bus-schedule/internal/platform/obs"
	"sfc-bus-schedule/internal/ports"
)

// SQLite backed ports.KeyValueStore over the kv_cache table.
// Keys are expected to be consistent (e.g., already normalized)
// by the caller.
type SqliteStore struct {
	DB *sql.DB
}

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{DB: db}
}

func (s *SqliteStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get kv cache: key must not be empty")
	}

	q := `
	SELECT
        value
    FROM kv_cache
    WHERE key = ?;
	`

	var value []byte
	if err := s.DB.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get kv cache: query kv_cache table: %w", err)
	}

	return value, nil
}

func (s *SqliteStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.sqlite.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert kv cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO kv_cache (
        key,
        value,
        updated_at
    )
    VALUES (?, ?, CURRENT_TIMESTAMP);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("insert kv cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SqliteStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_cache WHERE key = ?;`, key); err != nil {
		return fmt.Errorf("delete kv cache key=%q: %w", key, err)
	}

	return nil
}
