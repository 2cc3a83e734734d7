package core

import (
	"context"

	"zendex/pkg/kv"
)

// ExchangeID identifies a registered exchange (pool).
type ExchangeID uint64

// PoolAccountNamespace is the fixed uuid namespace pool-owned accounts are
// derived under. Together with the exchange id it yields a deterministic,
// collision-resistant account per pool.
const PoolAccountNamespace = "9bfb1b02-8bf7-4b74-9e27-7a8e65e3d1a9"

// LiquidityAssetInfo is the fixed metadata template every pool's
// liquidity-share asset is issued with.
var LiquidityAssetInfo = NewAssetInfo("liquidity_zlk_v1", "ZLK", 0)

// Exchange pairs one tradeable asset against the native settlement currency.
// Account is the pool-owned address holding both reserves.
type Exchange struct {
	ID          ExchangeID `json:"id"`
	TokenID     AssetID    `json:"token_id"`
	LiquidityID AssetID    `json:"liquidity_id"`
	Account     Account    `json:"account"`
}

// PoolRef is the polymorphic pool reference: either an explicit exchange id
// or a token asset id resolved through the token index. Operations resolve it
// to a canonical exchange id at entry.
type PoolRef struct {
	exchangeID ExchangeID
	assetID    AssetID
	byAsset    bool
}

// PoolByExchangeID pool ref by exchange id
func PoolByExchangeID(id ExchangeID) PoolRef {
	return PoolRef{exchangeID: id}
}

// PoolByAssetID pool ref by token asset id
func PoolByAssetID(id AssetID) PoolRef {
	return PoolRef{assetID: id, byAsset: true}
}

// ByAsset reports whether the ref carries a token asset id.
func (r PoolRef) ByAsset() bool {
	return r.byAsset
}

// ExchangeID exchange id carried by the ref; only meaningful when !ByAsset()
func (r PoolRef) ExchangeID() ExchangeID {
	return r.exchangeID
}

// AssetID token asset id carried by the ref; only meaningful when ByAsset()
func (r PoolRef) AssetID() AssetID {
	return r.assetID
}

// ExchangeStore persists the pool registry: the exchange arena plus the two
// lookup indices, which must only ever be updated in lockstep.
type ExchangeStore interface {
	// NextExchangeID reads the id the next creation will take.
	NextExchangeID(tx kv.Transaction) (ExchangeID, error)
	// Create records the exchange, both indices and the bumped counter in
	// one shot.
	Create(tx kv.Transaction, exchange *Exchange) error

	Find(tx kv.Transaction, id ExchangeID) (*Exchange, error)
	// FindByToken resolves token asset id -> exchange id; ErrExchangeNotExists
	// when the token has no pool.
	FindByToken(tx kv.Transaction, tokenID AssetID) (ExchangeID, error)
	// FindByLiquidity resolves liquidity asset id -> exchange id.
	FindByLiquidity(tx kv.Transaction, liquidityID AssetID) (ExchangeID, error)
	List(tx kv.Transaction) ([]*Exchange, error)
}

// ExchangeService is the exchange engine surface: pool registry, liquidity
// provisioning and the constant-product swap operations. Every operation is
// atomic; deadlines are compared against the logical clock once at entry.
type ExchangeService interface {
	CreateExchange(ctx context.Context, caller Account, tokenID AssetID) (*Exchange, error)

	AddLiquidity(ctx context.Context, caller Account, pool PoolRef, currencyAmount Currency, minLiquidity, maxToken TokenBalance, deadline uint64) error
	RemoveLiquidity(ctx context.Context, caller Account, pool PoolRef, sharesToBurn TokenBalance, minCurrency Currency, minToken TokenBalance, deadline uint64) error

	// currency <-> token

	CurrencyToTokenInput(ctx context.Context, caller Account, pool PoolRef, currencySold Currency, minToken TokenBalance, deadline uint64, recipient Account) error
	CurrencyToTokenOutput(ctx context.Context, caller Account, pool PoolRef, tokensBought TokenBalance, maxCurrency Currency, deadline uint64, recipient Account) error
	TokenToCurrencyInput(ctx context.Context, caller Account, pool PoolRef, tokenSold TokenBalance, minCurrency Currency, deadline uint64, recipient Account) error
	TokenToCurrencyOutput(ctx context.Context, caller Account, pool PoolRef, currencyBought Currency, maxToken TokenBalance, deadline uint64, recipient Account) error

	// token <-> token, routed through the settlement currency

	TokenToTokenInput(ctx context.Context, caller Account, pool, otherPool PoolRef, tokenSold, minOtherToken TokenBalance, deadline uint64, recipient Account) error
	TokenToTokenOutput(ctx context.Context, caller Account, pool, otherPool PoolRef, otherTokenBought, maxToken TokenBalance, deadline uint64, recipient Account) error

	// readers

	GetExchange(ctx context.Context, id ExchangeID) (*Exchange, error)
	GetExchangeID(ctx context.Context, pool PoolRef) (ExchangeID, error)
	ListExchanges(ctx context.Context) ([]*Exchange, error)
	TokenReserve(ctx context.Context, id ExchangeID) (TokenBalance, error)
	CurrencyReserve(ctx context.Context, id ExchangeID) (Currency, error)

	// price quoting, mirroring the swap formulas without moving value

	GetCurrencyToTokenInputPrice(ctx context.Context, id ExchangeID, currencySold Currency) (TokenBalance, error)
	GetCurrencyToTokenOutputPrice(ctx context.Context, id ExchangeID, tokensBought TokenBalance) (Currency, error)
	GetTokenToCurrencyInputPrice(ctx context.Context, id ExchangeID, tokenSold TokenBalance) (Currency, error)
	GetTokenToCurrencyOutputPrice(ctx context.Context, id ExchangeID, currencyBought Currency) (TokenBalance, error)
}
