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

// SQLStore is a Postgres-backed ports.KeyValueStore over the kv_cache table.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.postgres.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get kv cache: key must not be empty")
	}

	q := `
	SELECT value
    FROM kv_cache
    WHERE key = $1;
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

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) (err error) {
	defer obs.Time(ctx, "kv.postgres.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert kv cache: key must not be empty")
	}

	q := `
	INSERT INTO kv_cache (key, value, updated_at)
    VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("insert kv cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_cache WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete kv cache key=%q: %w", key, err)
	}

	return nil
}
