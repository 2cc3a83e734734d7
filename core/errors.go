package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000

	// ErrAmountZero transfer amount should be non-zero
	ErrAmountZero ErrorCode = 100100
	// ErrBalanceLow account balance lower than the requested amount
	ErrBalanceLow ErrorCode = 100101
	// ErrBalanceZero balance should be non-zero
	ErrBalanceZero ErrorCode = 100102
	// ErrAllowanceLow allowance lower than the requested amount
	ErrAllowanceLow ErrorCode = 100103
	// ErrAssetNotExists asset has not been issued
	ErrAssetNotExists ErrorCode = 100104

	// ErrDeniedSwap liquidity share assets cannot be paired into a pool
	ErrDeniedSwap ErrorCode = 100200
	// ErrDeadline deadline hit
	ErrDeadline ErrorCode = 100201
	// ErrTokenNotExists token not exists at this asset id
	ErrTokenNotExists ErrorCode = 100202
	// ErrZeroToken zero token supplied
	ErrZeroToken ErrorCode = 100203
	// ErrZeroCurrency zero currency supplied
	ErrZeroCurrency ErrorCode = 100204
	// ErrExchangeNotExists exchange not exists at this id
	ErrExchangeNotExists ErrorCode = 100205
	// ErrExchangeAlreadyExists an exchange already exists for the token
	ErrExchangeAlreadyExists ErrorCode = 100206
	// ErrRequestedZeroLiquidity requested zero liquidity
	ErrRequestedZeroLiquidity ErrorCode = 100207
	// ErrTooManyToken would add too many token to liquidity
	ErrTooManyToken ErrorCode = 100208
	// ErrTooLowLiquidity not enough liquidity created
	ErrTooLowLiquidity ErrorCode = 100209
	// ErrBurnZeroShares trying to burn zero liquidity shares
	ErrBurnZeroShares ErrorCode = 100210
	// ErrNoLiquidity no liquidity in the exchange
	ErrNoLiquidity ErrorCode = 100211
	// ErrNotEnoughCurrency not enough currency will be returned
	ErrNotEnoughCurrency ErrorCode = 100212
	// ErrNotEnoughToken not enough token will be returned
	ErrNotEnoughToken ErrorCode = 100213
	// ErrTooExpensiveCurrency exchange would cost too much in currency
	ErrTooExpensiveCurrency ErrorCode = 100214
	// ErrTooExpensiveToken exchange would cost too much in token
	ErrTooExpensiveToken ErrorCode = 100215

	// ErrCurrencyLow native currency balance lower than the requested amount
	ErrCurrencyLow ErrorCode = 100300
	// ErrKeepAlive transfer would kill the source account
	ErrKeepAlive ErrorCode = 100301
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrAmountZero:
		return "transfer amount should be non-zero"
	case ErrBalanceLow:
		return "balance low"
	case ErrBalanceZero:
		return "balance should be non-zero"
	case ErrAllowanceLow:
		return "allowance low"
	case ErrAssetNotExists:
		return "asset not exists"
	case ErrDeniedSwap:
		return "liquidity share asset denied to swap"
	case ErrDeadline:
		return "deadline hit"
	case ErrTokenNotExists:
		return "token not exists"
	case ErrZeroToken:
		return "zero token supplied"
	case ErrZeroCurrency:
		return "zero currency supplied"
	case ErrExchangeNotExists:
		return "exchange not exists"
	case ErrExchangeAlreadyExists:
		return "exchange already exists"
	case ErrRequestedZeroLiquidity:
		return "requested zero liquidity"
	case ErrTooManyToken:
		return "would add too many token to liquidity"
	case ErrTooLowLiquidity:
		return "not enough liquidity created"
	case ErrBurnZeroShares:
		return "trying to burn zero shares"
	case ErrNoLiquidity:
		return "no liquidity in the exchange"
	case ErrNotEnoughCurrency:
		return "not enough currency will be returned"
	case ErrNotEnoughToken:
		return "not enough token will be returned"
	case ErrTooExpensiveCurrency:
		return "exchange would cost too much in currency"
	case ErrTooExpensiveToken:
		return "exchange would cost too much in token"
	case ErrCurrencyLow:
		return "currency balance low"
	case ErrKeepAlive:
		return "transfer would kill the source account"
	default:
		return e.String()
	}
}
