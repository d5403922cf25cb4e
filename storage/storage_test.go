package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) KV {
	t.Helper()

	kv, err := NewPebbleKV(DefaultPebbleConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestPebbleKV_SetGetDelete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, []byte("k1"), []byte("v1")))

	got, err := kv.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	require.NoError(t, kv.Delete(ctx, []byte("k1")))

	_, err = kv.Get(ctx, []byte("k1"))
	assert.True(t, IsNotFound(err))
}

func TestPebbleKV_IteratorBounds(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, []byte("a:1"), []byte("1")))
	require.NoError(t, kv.Set(ctx, []byte("a:2"), []byte("2")))
	require.NoError(t, kv.Set(ctx, []byte("b:1"), []byte("3")))

	iter := kv.NewIterator(&IteratorOptions{
		LowerBound: []byte("a:"),
		UpperBound: []byte("a:\xff"),
	})
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"a:1", "a:2"}, keys)
}

func TestPebbleKV_Closed(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Close())
	require.NoError(t, kv.Close()) // idempotent

	err := kv.Set(ctx, []byte("k"), []byte("v"))
	assert.Equal(t, ErrClosed, err)

	_, err = kv.Get(ctx, []byte("k"))
	assert.Equal(t, ErrClosed, err)
}
