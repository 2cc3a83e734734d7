package ledger

import (
	"context"
	"testing"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAssetID(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		id, err := s.NextAssetID(tx)
		require.Nil(t, err)
		assert.Equal(t, core.AssetID(0), id)

		require.Nil(t, s.PutNextAssetID(tx, 7))

		id, err = s.NextAssetID(tx)
		require.Nil(t, err)
		assert.Equal(t, core.AssetID(7), id)
		return nil
	}))
}

func TestAssetInfoRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	want := core.NewAssetInfo("liquidity_zlk_v1", "ZLK", 0)

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		info, err := s.GetAssetInfo(tx, 0)
		require.Nil(t, err)
		assert.Nil(t, info)

		return s.PutAssetInfo(tx, 0, want)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		info, err := s.GetAssetInfo(tx, 0)
		require.Nil(t, err)
		require.NotNil(t, info)
		assert.Equal(t, want, *info)
		assert.Equal(t, "liquidity_zlk_v1", info.DisplayName())
		assert.Equal(t, "ZLK", info.DisplaySymbol())
		return nil
	})
}

func TestBalances(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		balance, err := s.GetBalance(tx, 0, "alice")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(0), balance)

		require.Nil(t, s.PutBalance(tx, 0, "alice", 100))
		require.Nil(t, s.PutBalance(tx, 0, "bob", 50))
		// same owner under another asset must not collide
		require.Nil(t, s.PutBalance(tx, 1, "alice", 7))
		return nil
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, err := s.GetBalance(tx, 0, "alice")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(100), balance)

		balance, err = s.GetBalance(tx, 1, "alice")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(7), balance)

		balances := map[core.Account]core.TokenBalance{}
		err = s.ListBalances(tx, 0, func(owner core.Account, balance core.TokenBalance) error {
			balances[owner] = balance
			return nil
		})
		require.Nil(t, err)
		assert.Equal(t, map[core.Account]core.TokenBalance{"alice": 100, "bob": 50}, balances)
		return nil
	})
}

func TestAllowances(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		require.Nil(t, s.PutAllowance(tx, 0, "alice", "bob", 60))
		require.Nil(t, s.PutAllowance(tx, 0, "alice", "carol", 5))

		amount, err := s.GetAllowance(tx, 0, "alice", "bob")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(60), amount)

		amount, err = s.GetAllowance(tx, 0, "alice", "carol")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(5), amount)

		amount, err = s.GetAllowance(tx, 0, "bob", "alice")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(0), amount)
		return nil
	}))
}

func TestTotalSupply(t *testing.T) {
	ctx := context.Background()
	db := kv.NewMemory()
	s := New()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		supply, err := s.GetTotalSupply(tx, 3)
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(0), supply)

		require.Nil(t, s.PutTotalSupply(tx, 3, 420))

		supply, err = s.GetTotalSupply(tx, 3)
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(420), supply)
		return nil
	}))
}
