package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"sfc-bus-schedule/internal/platform/db"
	"sfc-bus-schedule/internal/ports"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type StoreOptions struct {
	Backend       string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// OpenStore connects the configured backend and makes sure its schema exists.
// The returned close func releases the underlying connection.
func OpenStore(ctx context.Context, opts StoreOptions) (ports.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), noop, nil

	case BackendSQLite:
		if dir := filepath.Dir(opts.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("open store: create %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := initOrClose(ctx, conn, DialectSQLite); err != nil {
			return nil, nil, err
		}
		return NewSqliteStore(conn), conn.Close, nil

	case BackendPostgres:
		conn, err := db.Open(opts.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := initOrClose(ctx, conn, DialectPostgres); err != nil {
			return nil, nil, err
		}
		return NewSQLStore(conn), conn.Close, nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("open store: ping redis %q: %w", opts.RedisAddr, err)
		}
		return NewRedisStore(client), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("open store: unsupported backend %q", opts.Backend)
	}
}

func initOrClose(ctx context.Context, conn *sql.DB, dialect Dialect) error {
	if err := InitSchema(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return fmt.Errorf("open store: %w", err)
	}
	return nil
}
