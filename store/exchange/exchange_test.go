package exchange

import (
	"context"
	"testing"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	first := &core.Exchange{ID: 0, TokenID: 3, LiquidityID: 7, Account: "pool-0"}

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		id, err := s.NextExchangeID(tx)
		require.Nil(t, err)
		assert.Equal(t, core.ExchangeID(0), id)

		return s.Create(tx, first)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		ex, err := s.Find(tx, 0)
		require.Nil(t, err)
		assert.Equal(t, first, ex)

		id, err := s.FindByToken(tx, 3)
		require.Nil(t, err)
		assert.Equal(t, core.ExchangeID(0), id)

		id, err = s.FindByLiquidity(tx, 7)
		require.Nil(t, err)
		assert.Equal(t, core.ExchangeID(0), id)

		// the two indices must not leak into each other
		_, err = s.FindByToken(tx, 7)
		assert.Equal(t, core.ErrExchangeNotExists, err)
		_, err = s.FindByLiquidity(tx, 3)
		assert.Equal(t, core.ErrExchangeNotExists, err)

		_, err = s.Find(tx, 9)
		assert.Equal(t, core.ErrExchangeNotExists, err)

		id, err = s.NextExchangeID(tx)
		require.Nil(t, err)
		assert.Equal(t, core.ExchangeID(1), id)
		return nil
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		require.Nil(t, s.Create(tx, &core.Exchange{ID: 0, TokenID: 3, LiquidityID: 7, Account: "pool-0"}))
		return s.Create(tx, &core.Exchange{ID: 1, TokenID: 9, LiquidityID: 11, Account: "pool-1"})
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		exchanges, err := s.List(tx)
		require.Nil(t, err)
		require.Len(t, exchanges, 2)
		assert.Equal(t, core.ExchangeID(0), exchanges[0].ID)
		assert.Equal(t, core.ExchangeID(1), exchanges[1].ID)
		return nil
	})
}
