package native

import (
	"context"
	"encoding/binary"

	"zendex/core"
	"zendex/pkg/kv"
	"zendex/pkg/number"
)

const balancePrefix = "currency:balance:"

// currencyService is the kv-backed native settlement currency. Accounts whose
// balance drops below the existential deposit are removed under the
// AllowDeath policy; the KeepAlive policy refuses transfers that would do so.
type currencyService struct {
	existentialDeposit uint64
}

// New new native currency service
func New(existentialDeposit uint64) core.NativeCurrency {
	return &currencyService{existentialDeposit: existentialDeposit}
}

func balanceKey(account core.Account) []byte {
	return append([]byte(balancePrefix), account...)
}

func getBalance(tx kv.Transaction, account core.Account) (uint64, error) {
	value, err := tx.Get(balanceKey(account))
	if err == kv.ErrKeyNotFound {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(value), nil
}

func putBalance(tx kv.Transaction, account core.Account, balance uint64) error {
	if balance == 0 {
		return tx.Delete(balanceKey(account))
	}

	return tx.Set(balanceKey(account), binary.BigEndian.AppendUint64(nil, balance))
}

func (s *currencyService) Transfer(ctx context.Context, tx kv.Transaction, from, to core.Account, amount core.Currency, policy core.ExistencePolicy) error {
	if amount == 0 {
		return nil
	}

	fromBalance, err := getBalance(tx, from)
	if err != nil {
		return err
	}

	remaining, ok := number.CheckedSub(fromBalance, uint64(amount))
	if !ok {
		return core.ErrCurrencyLow
	}

	if policy == core.KeepAlive && remaining < s.existentialDeposit {
		return core.ErrKeepAlive
	}

	if err := putBalance(tx, from, remaining); err != nil {
		return err
	}

	toBalance, err := getBalance(tx, to)
	if err != nil {
		return err
	}

	return putBalance(tx, to, number.SaturatingAdd(toBalance, uint64(amount)))
}

func (s *currencyService) Deposit(ctx context.Context, tx kv.Transaction, to core.Account, amount core.Currency) error {
	balance, err := getBalance(tx, to)
	if err != nil {
		return err
	}

	return putBalance(tx, to, number.SaturatingAdd(balance, uint64(amount)))
}

func (s *currencyService) Balance(ctx context.Context, tx kv.Transaction, account core.Account) (core.Currency, error) {
	balance, err := getBalance(tx, account)
	return core.Currency(balance), err
}
