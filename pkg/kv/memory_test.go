package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUpdateCommit(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	err := store.Update(ctx, func(tx Transaction) error {
		return tx.Set([]byte("a"), []byte("1"))
	})
	require.Nil(t, err)

	err = store.View(ctx, func(tx Transaction) error {
		value, err := tx.Get([]byte("a"))
		require.Nil(t, err)
		assert.Equal(t, []byte("1"), value)
		return nil
	})
	require.Nil(t, err)
}

func TestMemoryUpdateRollback(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.Nil(t, store.Update(ctx, func(tx Transaction) error {
		return tx.Set([]byte("a"), []byte("1"))
	}))

	boom := errors.New("boom")
	err := store.Update(ctx, func(tx Transaction) error {
		require.Nil(t, tx.Set([]byte("a"), []byte("2")))
		require.Nil(t, tx.Set([]byte("b"), []byte("3")))
		return boom
	})
	assert.Equal(t, boom, err)

	_ = store.View(ctx, func(tx Transaction) error {
		value, err := tx.Get([]byte("a"))
		require.Nil(t, err)
		assert.Equal(t, []byte("1"), value)

		_, err = tx.Get([]byte("b"))
		assert.Equal(t, ErrKeyNotFound, err)
		return nil
	})
}

func TestMemoryReadYourWrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	err := store.Update(ctx, func(tx Transaction) error {
		require.Nil(t, tx.Set([]byte("a"), []byte("1")))

		value, err := tx.Get([]byte("a"))
		require.Nil(t, err)
		assert.Equal(t, []byte("1"), value)

		require.Nil(t, tx.Delete([]byte("a")))
		_, err = tx.Get([]byte("a"))
		assert.Equal(t, ErrKeyNotFound, err)

		return nil
	})
	require.Nil(t, err)
}

func TestMemoryIterate(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.Nil(t, store.Update(ctx, func(tx Transaction) error {
		require.Nil(t, tx.Set([]byte("p:b"), []byte("2")))
		require.Nil(t, tx.Set([]byte("p:a"), []byte("1")))
		require.Nil(t, tx.Set([]byte("q:c"), []byte("3")))
		return nil
	}))

	var keys []string
	_ = store.View(ctx, func(tx Transaction) error {
		return tx.Iterate([]byte("p:"), func(key, value []byte) error {
			keys = append(keys, string(key))
			return nil
		})
	})

	assert.Equal(t, []string{"p:a", "p:b"}, keys)
}

func TestMemoryViewReadOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_ = store.View(ctx, func(tx Transaction) error {
		assert.Equal(t, ErrReadOnly, tx.Set([]byte("a"), []byte("1")))
		assert.Equal(t, ErrReadOnly, tx.Delete([]byte("a")))
		return nil
	})
}
