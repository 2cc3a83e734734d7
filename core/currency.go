package core

import (
	"context"

	"zendex/pkg/kv"
)

// Currency is the native settlement-currency unit. It shares the 64-bit
// width of TokenBalance so conversions between the two are lossless; see
// ConvertCurrency/UnconvertCurrency.
type Currency uint64

// ExistencePolicy controls whether a native transfer may remove the source
// account.
type ExistencePolicy int

const (
	// KeepAlive the transfer fails if it would delete the source account
	KeepAlive ExistencePolicy = iota
	// AllowDeath the source account may be drained and removed
	AllowDeath
)

// ConvertCurrency converts a native currency amount into token units.
// Identity on the shared 64-bit width, kept explicit so a future widening of
// either type has a single place to audit.
func ConvertCurrency(amount Currency) TokenBalance {
	return TokenBalance(amount)
}

// UnconvertCurrency converts token units back into native currency.
func UnconvertCurrency(amount TokenBalance) Currency {
	return Currency(amount)
}

// NativeCurrency is the settlement-currency transfer primitive the exchange
// engine consumes. The engine selects the existence policy explicitly per
// call site.
type NativeCurrency interface {
	Transfer(ctx context.Context, tx kv.Transaction, from, to Account, amount Currency, policy ExistencePolicy) error
	// Deposit credits an account out of thin air. Collaborator-side faucet,
	// never called by the exchange engine.
	Deposit(ctx context.Context, tx kv.Transaction, to Account, amount Currency) error
	Balance(ctx context.Context, tx kv.Transaction, account Account) (Currency, error)
}
