package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the behaviour every backend must share
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "order_1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "order_1", []byte(`{"id":"a"}`)))
	got, err := kv.Get(ctx, "order_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a"}`, string(got))

	require.NoError(t, kv.Set(ctx, "order_1", []byte(`{"id":"b"}`)))
	got, err = kv.Get(ctx, "order_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b"}`, string(got))

	assert.ErrorIs(t, kv.Create(ctx, "order_1", []byte(`{"id":"c"}`)), ErrExists)
	got, err = kv.Get(ctx, "order_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"b"}`, string(got), "Create must not replace")

	require.NoError(t, kv.Create(ctx, "order_2", []byte(`{"id":"d"}`)))
	got, err = kv.Get(ctx, "order_2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"d"}`, string(got))

	require.NoError(t, kv.Set(ctx, "order_2", []byte(`{}`)))
	require.NoError(t, kv.Set(ctx, "orderX3", []byte(`{}`)))
	keys, err := kv.Keys(ctx, "order_")
	require.NoError(t, err)
	assert.Equal(t, []string{"order_1", "order_2"}, keys)

	require.NoError(t, kv.Delete(ctx, "order_1"))
	assert.ErrorIs(t, kv.Delete(ctx, "order_1"), ErrNotFound)
	_, err = kv.Get(ctx, "order_1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", v))
	v[0] = 'z'
	got, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteKV(t *testing.T) {
	g, err := OpenSQLite(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	defer g.Close()
	exerciseKV(t, g)
}

func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	ctx := context.Background()
	p, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	defer p.Close()
	_, _ = p.pool.Exec(ctx, `DELETE FROM order_entries WHERE entry_key LIKE 'order%'`)
	exerciseKV(t, p)
}
