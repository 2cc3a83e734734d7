package core

import (
	"context"
	"strings"

	"zendex/pkg/kv"
)

// AssetID identifies an issued asset. Ids are allocated monotonically by the
// ledger and never reused.
type AssetID uint64

// TokenBalance is the unit all asset balances, allowances and supplies are
// recorded in. Unsigned by construction; credits saturate, debits are checked.
type TokenBalance uint64

const (
	// AssetNameSize fixed width of the asset name field
	AssetNameSize = 16
	// AssetSymbolSize fixed width of the asset symbol field
	AssetSymbolSize = 8
)

// AssetInfo immutable asset metadata, set once at issuance.
type AssetInfo struct {
	Name     [AssetNameSize]byte   `json:"name"`
	Symbol   [AssetSymbolSize]byte `json:"symbol"`
	Decimals uint8                 `json:"decimals"`
}

// NewAssetInfo builds an AssetInfo from plain strings, truncating or
// zero-padding to the fixed widths.
func NewAssetInfo(name, symbol string, decimals uint8) AssetInfo {
	var info AssetInfo
	copy(info.Name[:], name)
	copy(info.Symbol[:], symbol)
	info.Decimals = decimals
	return info
}

// DisplayName name with the zero padding trimmed
func (info AssetInfo) DisplayName() string {
	return strings.TrimRight(string(info.Name[:]), "\x00")
}

// DisplaySymbol symbol with the zero padding trimmed
func (info AssetInfo) DisplaySymbol() string {
	return strings.TrimRight(string(info.Symbol[:]), "\x00")
}

// AssetStore persists the raw ledger state. All methods operate on the
// caller's transaction so multi-step operations stay atomic.
type AssetStore interface {
	// NextAssetID reads the id the next issuance will take.
	NextAssetID(tx kv.Transaction) (AssetID, error)
	PutNextAssetID(tx kv.Transaction, id AssetID) error

	GetAssetInfo(tx kv.Transaction, id AssetID) (*AssetInfo, error)
	PutAssetInfo(tx kv.Transaction, id AssetID, info AssetInfo) error

	GetBalance(tx kv.Transaction, id AssetID, owner Account) (TokenBalance, error)
	PutBalance(tx kv.Transaction, id AssetID, owner Account, balance TokenBalance) error
	// ListBalances walks every (account, balance) entry of the asset.
	ListBalances(tx kv.Transaction, id AssetID, fn func(owner Account, balance TokenBalance) error) error

	GetTotalSupply(tx kv.Transaction, id AssetID) (TokenBalance, error)
	PutTotalSupply(tx kv.Transaction, id AssetID, supply TokenBalance) error

	GetAllowance(tx kv.Transaction, id AssetID, owner, spender Account) (TokenBalance, error)
	PutAllowance(tx kv.Transaction, id AssetID, owner, spender Account, amount TokenBalance) error
}

// Ledger is the asset ledger surface. Mutating operations run inside the
// caller's transaction; the exchange engine composes several of them into one
// atomic operation.
type Ledger interface {
	// Issue allocates a fresh asset id, credits the initial supply to owner
	// and records the metadata. Never fails on valid storage.
	Issue(ctx context.Context, tx kv.Transaction, owner Account, total TokenBalance, info AssetInfo) (AssetID, error)
	// Transfer moves amount from owner to target.
	Transfer(ctx context.Context, tx kv.Transaction, id AssetID, owner, target Account, amount TokenBalance) error
	// Approve sets (overwrites) the allowance of spender under owner.
	Approve(ctx context.Context, tx kv.Transaction, id AssetID, owner, spender Account, amount TokenBalance) error
	// TransferFrom spends owner's balance on behalf of spender, decreasing
	// the allowance by exactly amount.
	TransferFrom(ctx context.Context, tx kv.Transaction, id AssetID, owner, spender, target Account, amount TokenBalance) error
	// Mint credits owner and grows the total supply.
	Mint(ctx context.Context, tx kv.Transaction, id AssetID, owner Account, amount TokenBalance) error
	// Burn debits owner and shrinks the total supply.
	Burn(ctx context.Context, tx kv.Transaction, id AssetID, owner Account, amount TokenBalance) error

	// readers; total functions returning zero values for unknown keys

	BalanceOf(ctx context.Context, tx kv.Transaction, id AssetID, owner Account) (TokenBalance, error)
	TotalSupply(ctx context.Context, tx kv.Transaction, id AssetID) (TokenBalance, error)
	Allowance(ctx context.Context, tx kv.Transaction, id AssetID, owner, spender Account) (TokenBalance, error)
	AssetInfo(ctx context.Context, tx kv.Transaction, id AssetID) (*AssetInfo, error)
}
