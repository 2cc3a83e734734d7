package ledger

import (
	"context"
	"math"
	"testing"

	"zendex/core"
	"zendex/pkg/kv"
	assetstore "zendex/store/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() (kv.Store, core.AssetStore, core.Ledger) {
	assets := assetstore.New()
	return kv.NewMemory(), assets, New(assets, nil)
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	info := core.NewAssetInfo("test", "TST", 8)

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		id, err := ledger.Issue(ctx, tx, "alice", 1000, info)
		require.Nil(t, err)
		assert.Equal(t, core.AssetID(0), id)

		// ids are allocated monotonically
		id, err = ledger.Issue(ctx, tx, "bob", 50, info)
		require.Nil(t, err)
		assert.Equal(t, core.AssetID(1), id)
		return nil
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, err := ledger.BalanceOf(ctx, tx, 0, "alice")
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(1000), balance)

		supply, err := ledger.TotalSupply(ctx, tx, 0)
		require.Nil(t, err)
		assert.Equal(t, core.TokenBalance(1000), supply)

		got, err := ledger.AssetInfo(ctx, tx, 0)
		require.Nil(t, err)
		require.NotNil(t, got)
		assert.Equal(t, info, *got)

		got, err = ledger.AssetInfo(ctx, tx, 9)
		require.Nil(t, err)
		assert.Nil(t, got)
		return nil
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		_, err := ledger.Issue(ctx, tx, "1", 100, core.NewAssetInfo("test", "TST", 0))
		return err
	}))

	err := db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Transfer(ctx, tx, 0, "1", "2", 50)
	})
	require.Nil(t, err)

	_ = db.View(ctx, func(tx kv.Transaction) error {
		b1, _ := ledger.BalanceOf(ctx, tx, 0, "1")
		b2, _ := ledger.BalanceOf(ctx, tx, 0, "2")
		assert.Equal(t, core.TokenBalance(50), b1)
		assert.Equal(t, core.TokenBalance(50), b2)
		return nil
	})

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Transfer(ctx, tx, 0, "1", "2", 0)
	})
	assert.Equal(t, core.ErrAmountZero, err)

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Transfer(ctx, tx, 0, "1", "2", 51)
	})
	assert.Equal(t, core.ErrBalanceLow, err)

	// a failed transfer leaves both sides untouched
	_ = db.View(ctx, func(tx kv.Transaction) error {
		b1, _ := ledger.BalanceOf(ctx, tx, 0, "1")
		b2, _ := ledger.BalanceOf(ctx, tx, 0, "2")
		assert.Equal(t, core.TokenBalance(50), b1)
		assert.Equal(t, core.TokenBalance(50), b2)
		return nil
	})
}

func TestApproveAndTransferFrom(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		_, err := ledger.Issue(ctx, tx, "alice", 100, core.NewAssetInfo("test", "TST", 0))
		if err != nil {
			return err
		}
		return ledger.Approve(ctx, tx, 0, "alice", "bob", 60)
	}))

	err := db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.TransferFrom(ctx, tx, 0, "alice", "bob", "carol", 40)
	})
	require.Nil(t, err)

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, _ := ledger.BalanceOf(ctx, tx, 0, "carol")
		assert.Equal(t, core.TokenBalance(40), balance)

		// allowance decreases by exactly the spent amount
		allowance, _ := ledger.Allowance(ctx, tx, 0, "alice", "bob")
		assert.Equal(t, core.TokenBalance(20), allowance)
		return nil
	})

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.TransferFrom(ctx, tx, 0, "alice", "bob", "carol", 30)
	})
	assert.Equal(t, core.ErrAllowanceLow, err)

	// the allowance gate fires before the zero-amount check
	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.TransferFrom(ctx, tx, 0, "alice", "dave", "carol", 30)
	})
	assert.Equal(t, core.ErrAllowanceLow, err)

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.TransferFrom(ctx, tx, 0, "alice", "bob", "carol", 0)
	})
	assert.Equal(t, core.ErrAmountZero, err)
}

func TestApproveOverwrites(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		if _, err := ledger.Issue(ctx, tx, "alice", 100, core.NewAssetInfo("test", "TST", 0)); err != nil {
			return err
		}
		if err := ledger.Approve(ctx, tx, 0, "alice", "bob", 60); err != nil {
			return err
		}
		return ledger.Approve(ctx, tx, 0, "alice", "bob", 10)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		allowance, _ := ledger.Allowance(ctx, tx, 0, "alice", "bob")
		assert.Equal(t, core.TokenBalance(10), allowance)
		return nil
	})
}

func TestMintAndBurn(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	err := db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Mint(ctx, tx, 9, "alice", 10)
	})
	assert.Equal(t, core.ErrAssetNotExists, err)

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		if _, err := ledger.Issue(ctx, tx, "alice", 100, core.NewAssetInfo("test", "TST", 0)); err != nil {
			return err
		}
		return ledger.Mint(ctx, tx, 0, "bob", 30)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, _ := ledger.BalanceOf(ctx, tx, 0, "bob")
		supply, _ := ledger.TotalSupply(ctx, tx, 0)
		assert.Equal(t, core.TokenBalance(30), balance)
		assert.Equal(t, core.TokenBalance(130), supply)
		return nil
	})

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Burn(ctx, tx, 0, "bob", 31)
	})
	assert.Equal(t, core.ErrBalanceLow, err)

	err = db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Burn(ctx, tx, 9, "bob", 1)
	})
	assert.Equal(t, core.ErrAssetNotExists, err)

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		return ledger.Burn(ctx, tx, 0, "bob", 30)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, _ := ledger.BalanceOf(ctx, tx, 0, "bob")
		supply, _ := ledger.TotalSupply(ctx, tx, 0)
		assert.Equal(t, core.TokenBalance(0), balance)
		assert.Equal(t, core.TokenBalance(100), supply)
		return nil
	})
}

func TestCreditSaturates(t *testing.T) {
	ctx := context.Background()
	db, _, ledger := newTestLedger()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		if _, err := ledger.Issue(ctx, tx, "alice", math.MaxUint64, core.NewAssetInfo("test", "TST", 0)); err != nil {
			return err
		}
		return ledger.Mint(ctx, tx, 0, "alice", 10)
	}))

	_ = db.View(ctx, func(tx kv.Transaction) error {
		balance, _ := ledger.BalanceOf(ctx, tx, 0, "alice")
		supply, _ := ledger.TotalSupply(ctx, tx, 0)
		assert.Equal(t, core.TokenBalance(math.MaxUint64), balance)
		assert.Equal(t, core.TokenBalance(math.MaxUint64), supply)
		return nil
	})
}

func TestConservation(t *testing.T) {
	ctx := context.Background()
	db, assets, ledger := newTestLedger()

	require.Nil(t, db.Update(ctx, func(tx kv.Transaction) error {
		if _, err := ledger.Issue(ctx, tx, "alice", 1000, core.NewAssetInfo("test", "TST", 0)); err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, 0, "alice", "bob", 300); err != nil {
			return err
		}
		if err := ledger.Transfer(ctx, tx, 0, "bob", "carol", 120); err != nil {
			return err
		}
		if err := ledger.Mint(ctx, tx, 0, "carol", 77); err != nil {
			return err
		}
		return ledger.Burn(ctx, tx, 0, "alice", 200)
	}))

	// the sum of all balances always equals the total supply
	_ = db.View(ctx, func(tx kv.Transaction) error {
		var sum core.TokenBalance
		err := assets.ListBalances(tx, 0, func(_ core.Account, balance core.TokenBalance) error {
			sum += balance
			return nil
		})
		require.Nil(t, err)

		supply, _ := ledger.TotalSupply(ctx, tx, 0)
		assert.Equal(t, supply, sum)
		assert.Equal(t, core.TokenBalance(877), supply)
		return nil
	})
}
