package core

// Event topics published on the process-local bus. The bus is an external
// collaborator: the core never reads its own events back.
const (
	TopicIssued      = "ledger.issued"
	TopicTransferred = "ledger.transferred"
	TopicApproval    = "ledger.approval"
	TopicMinted      = "ledger.minted"
	TopicBurned      = "ledger.burned"

	TopicExchangeCreated    = "dex.exchange_created"
	TopicLiquidityAdded     = "dex.liquidity_added"
	TopicLiquidityRemoved   = "dex.liquidity_removed"
	TopicCurrencyPurchase   = "dex.currency_purchase"
	TopicTokenPurchase      = "dex.token_purchase"
	TopicOtherTokenPurchase = "dex.other_token_purchase"
)

// IssuedEvent some assets were issued
type IssuedEvent struct {
	AssetID AssetID      `json:"asset_id"`
	Owner   Account      `json:"owner"`
	Total   TokenBalance `json:"total"`
}

// TransferredEvent some assets were transferred
type TransferredEvent struct {
	AssetID AssetID      `json:"asset_id"`
	Owner   Account      `json:"owner"`
	Target  Account      `json:"target"`
	Amount  TokenBalance `json:"amount"`
}

// ApprovalEvent an allowance was set
type ApprovalEvent struct {
	AssetID AssetID      `json:"asset_id"`
	Owner   Account      `json:"owner"`
	Spender Account      `json:"spender"`
	Amount  TokenBalance `json:"amount"`
}

// MintedEvent some assets were minted
type MintedEvent struct {
	AssetID AssetID      `json:"asset_id"`
	Owner   Account      `json:"owner"`
	Amount  TokenBalance `json:"amount"`
}

// BurnedEvent some assets were burned
type BurnedEvent struct {
	AssetID AssetID      `json:"asset_id"`
	Owner   Account      `json:"owner"`
	Amount  TokenBalance `json:"amount"`
}

// ExchangeCreatedEvent an exchange was registered
type ExchangeCreatedEvent struct {
	ExchangeID ExchangeID `json:"exchange_id"`
	Account    Account    `json:"account"`
}

// LiquidityAddedEvent liquidity deposited into a pool
type LiquidityAddedEvent struct {
	ExchangeID ExchangeID   `json:"exchange_id"`
	Provider   Account      `json:"provider"`
	CurrencyIn Currency     `json:"currency_in"`
	TokenIn    TokenBalance `json:"token_in"`
}

// LiquidityRemovedEvent liquidity withdrawn from a pool
type LiquidityRemovedEvent struct {
	ExchangeID  ExchangeID   `json:"exchange_id"`
	Provider    Account      `json:"provider"`
	CurrencyOut Currency     `json:"currency_out"`
	TokenOut    TokenBalance `json:"token_out"`
}

// CurrencyPurchaseEvent token sold for settlement currency
type CurrencyPurchaseEvent struct {
	ExchangeID     ExchangeID   `json:"exchange_id"`
	Buyer          Account      `json:"buyer"`
	CurrencyBought Currency     `json:"currency_bought"`
	TokenSold      TokenBalance `json:"token_sold"`
	Recipient      Account      `json:"recipient"`
}

// TokenPurchaseEvent settlement currency sold for token
type TokenPurchaseEvent struct {
	ExchangeID   ExchangeID   `json:"exchange_id"`
	Buyer        Account      `json:"buyer"`
	CurrencySold Currency     `json:"currency_sold"`
	TokenBought  TokenBalance `json:"token_bought"`
	Recipient    Account      `json:"recipient"`
}

// OtherTokenPurchaseEvent token sold for another token through two pools
type OtherTokenPurchaseEvent struct {
	ExchangeID       ExchangeID   `json:"exchange_id"`
	OtherExchangeID  ExchangeID   `json:"other_exchange_id"`
	Buyer            Account      `json:"buyer"`
	TokenSold        TokenBalance `json:"token_sold"`
	OtherTokenBought TokenBalance `json:"other_token_bought"`
	Recipient        Account      `json:"recipient"`
}
