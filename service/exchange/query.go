package exchange

import (
	"context"

	"zendex/core"
	"zendex/pkg/kv"
)

// Read-only surface. Quotes mirror the swap formulas without moving value:
// zero in quotes zero out, and exact-output quotes carry the same reserve
// bounds as the swap paths.

func (s *exchangeService) GetExchange(ctx context.Context, id core.ExchangeID) (*core.Exchange, error) {
	var ex *core.Exchange

	err := s.db.View(ctx, func(tx kv.Transaction) error {
		var err error
		ex, err = s.exchanges.Find(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return ex, nil
}

func (s *exchangeService) GetExchangeID(ctx context.Context, pool core.PoolRef) (core.ExchangeID, error) {
	if !pool.ByAsset() {
		return pool.ExchangeID(), nil
	}

	var id core.ExchangeID
	err := s.db.View(ctx, func(tx kv.Transaction) error {
		var err error
		id, err = s.exchanges.FindByToken(tx, pool.AssetID())
		return err
	})

	return id, err
}

func (s *exchangeService) ListExchanges(ctx context.Context) ([]*core.Exchange, error) {
	var exchanges []*core.Exchange

	err := s.db.View(ctx, func(tx kv.Transaction) error {
		var err error
		exchanges, err = s.exchanges.List(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return exchanges, nil
}

func (s *exchangeService) TokenReserve(ctx context.Context, id core.ExchangeID) (core.TokenBalance, error) {
	var reserve core.TokenBalance

	err := s.db.View(ctx, func(tx kv.Transaction) error {
		ex, err := s.exchanges.Find(tx, id)
		if err != nil {
			return err
		}

		reserve, err = s.ledger.BalanceOf(ctx, tx, ex.TokenID, ex.Account)
		return err
	})

	return reserve, err
}

func (s *exchangeService) CurrencyReserve(ctx context.Context, id core.ExchangeID) (core.Currency, error) {
	var reserve core.Currency

	err := s.db.View(ctx, func(tx kv.Transaction) error {
		ex, err := s.exchanges.Find(tx, id)
		if err != nil {
			return err
		}

		reserve, err = s.currency.Balance(ctx, tx, ex.Account)
		return err
	})

	return reserve, err
}

func (s *exchangeService) GetCurrencyToTokenInputPrice(ctx context.Context, id core.ExchangeID, currencySold core.Currency) (core.TokenBalance, error) {
	if currencySold == 0 {
		return 0, nil
	}

	var bought core.TokenBalance
	err := s.quote(ctx, id, func(currencyReserve core.Currency, tokenReserve core.TokenBalance) error {
		bought = GetInputPrice(core.ConvertCurrency(currencySold), core.ConvertCurrency(currencyReserve), tokenReserve)
		return nil
	})

	return bought, err
}

func (s *exchangeService) GetCurrencyToTokenOutputPrice(ctx context.Context, id core.ExchangeID, tokensBought core.TokenBalance) (core.Currency, error) {
	if tokensBought == 0 {
		return 0, nil
	}

	var sold core.Currency
	err := s.quote(ctx, id, func(currencyReserve core.Currency, tokenReserve core.TokenBalance) error {
		if tokensBought >= tokenReserve {
			return core.ErrNotEnoughToken
		}

		sold = core.UnconvertCurrency(GetOutputPrice(tokensBought, core.ConvertCurrency(currencyReserve), tokenReserve))
		return nil
	})

	return sold, err
}

func (s *exchangeService) GetTokenToCurrencyInputPrice(ctx context.Context, id core.ExchangeID, tokenSold core.TokenBalance) (core.Currency, error) {
	if tokenSold == 0 {
		return 0, nil
	}

	var bought core.Currency
	err := s.quote(ctx, id, func(currencyReserve core.Currency, tokenReserve core.TokenBalance) error {
		bought = core.UnconvertCurrency(GetInputPrice(tokenSold, tokenReserve, core.ConvertCurrency(currencyReserve)))
		return nil
	})

	return bought, err
}

func (s *exchangeService) GetTokenToCurrencyOutputPrice(ctx context.Context, id core.ExchangeID, currencyBought core.Currency) (core.TokenBalance, error) {
	if currencyBought == 0 {
		return 0, nil
	}

	var sold core.TokenBalance
	err := s.quote(ctx, id, func(currencyReserve core.Currency, tokenReserve core.TokenBalance) error {
		if core.ConvertCurrency(currencyBought) >= core.ConvertCurrency(currencyReserve) {
			return core.ErrNotEnoughCurrency
		}

		sold = GetOutputPrice(core.ConvertCurrency(currencyBought), tokenReserve, core.ConvertCurrency(currencyReserve))
		return nil
	})

	return sold, err
}

func (s *exchangeService) quote(ctx context.Context, id core.ExchangeID, fn func(currencyReserve core.Currency, tokenReserve core.TokenBalance) error) error {
	return s.db.View(ctx, func(tx kv.Transaction) error {
		ex, err := s.exchanges.Find(tx, id)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		return fn(currencyReserve, tokenReserve)
	})
}
