package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfc-bus-schedule/internal/domain"
	"sfc-bus-schedule/internal/platform/db"
	"sfc-bus-schedule/internal/ports"
)

// exerciseStore runs the ports.KeyValueStore contract against s.
func exerciseStore(t *testing.T, s ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, s.Set(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	c := NewScheduleCache(s, "", nil)
	want := sampleResponse()
	c.Put(ctx, domain.ToSFC, domain.Regular(domain.Weekday), want)
	resp, ok := c.Get(ctx, domain.ToSFC, domain.Regular(domain.Weekday))
	require.True(t, ok)
	assert.Equal(t, want, resp)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSqliteStore(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, DialectSQLite))
	// Schema creation is idempotent.
	require.NoError(t, InitSchema(context.Background(), conn, DialectSQLite))

	exerciseStore(t, NewSqliteStore(conn))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client))

	mr.SetError("ERR simulated failure")
	_, err := NewRedisStore(client).Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestSQLStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn, DialectPostgres))
	exerciseStore(t, NewSQLStore(conn))
}

func TestInitSchemaUnsupportedDialect(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	assert.Error(t, InitSchema(context.Background(), conn, Dialect("oracle")))
}
