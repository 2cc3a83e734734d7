package exchange

import (
	"context"
	"fmt"

	"zendex/core"
	"zendex/pkg/id"
	"zendex/pkg/kv"
	"zendex/pkg/number"

	"github.com/asaskevich/EventBus"
	"github.com/fox-one/pkg/logger"
)

// exchangeService implements core.ExchangeService. It owns the pool registry
// and manipulates ledger and native-currency state exclusively through their
// public operations; every entry point runs as one atomic kv transaction.
type exchangeService struct {
	db        kv.Store
	exchanges core.ExchangeStore
	ledger    core.Ledger
	currency  core.NativeCurrency
	clock     core.Clock
	bus       EventBus.Bus
}

// New new exchange service
func New(
	db kv.Store,
	exchanges core.ExchangeStore,
	ledger core.Ledger,
	currency core.NativeCurrency,
	clock core.Clock,
	bus EventBus.Bus,
) core.ExchangeService {
	return &exchangeService{
		db:        db,
		exchanges: exchanges,
		ledger:    ledger,
		currency:  currency,
		clock:     clock,
		bus:       bus,
	}
}

// PoolAccount derives the deterministic pool-owned account for an exchange id.
func PoolAccount(exchangeID core.ExchangeID) core.Account {
	return core.Account(id.UUIDByName(core.PoolAccountNamespace, fmt.Sprintf("exchange/%d", exchangeID)))
}

func (s *exchangeService) CreateExchange(ctx context.Context, caller core.Account, tokenID core.AssetID) (*core.Exchange, error) {
	log := logger.FromContext(ctx).WithField("service", "exchange")

	var created *core.Exchange
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		info, err := s.ledger.AssetInfo(ctx, tx, tokenID)
		if err != nil {
			return err
		}
		if info == nil {
			return core.ErrTokenNotExists
		}

		// a liquidity share asset must never be paired into a pool
		if _, err := s.exchanges.FindByLiquidity(tx, tokenID); err == nil {
			return core.ErrDeniedSwap
		} else if err != core.ErrExchangeNotExists {
			return err
		}

		if _, err := s.exchanges.FindByToken(tx, tokenID); err == nil {
			return core.ErrExchangeAlreadyExists
		} else if err != core.ErrExchangeNotExists {
			return err
		}

		exchangeID, err := s.exchanges.NextExchangeID(tx)
		if err != nil {
			return err
		}

		account := PoolAccount(exchangeID)

		liquidityID, err := s.ledger.Issue(ctx, tx, account, 0, core.LiquidityAssetInfo)
		if err != nil {
			return err
		}

		created = &core.Exchange{
			ID:          exchangeID,
			TokenID:     tokenID,
			LiquidityID: liquidityID,
			Account:     account,
		}

		return s.exchanges.Create(tx, created)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("exchange %d created for token %d, pool account %s", created.ID, tokenID, created.Account)
	s.publish(core.TopicExchangeCreated, &core.ExchangeCreatedEvent{
		ExchangeID: created.ID,
		Account:    created.Account,
	})

	return created, nil
}

func (s *exchangeService) AddLiquidity(ctx context.Context, caller core.Account, pool core.PoolRef, currencyAmount core.Currency, minLiquidity, maxToken core.TokenBalance, deadline uint64) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if maxToken == 0 {
		return core.ErrZeroToken
	}
	if currencyAmount == 0 {
		return core.ErrZeroCurrency
	}

	var event *core.LiquidityAddedEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		totalLiquidity, err := s.ledger.TotalSupply(ctx, tx, ex.LiquidityID)
		if err != nil {
			return err
		}

		var tokenAmount core.TokenBalance

		if totalLiquidity > 0 {
			if minLiquidity == 0 {
				return core.ErrRequestedZeroLiquidity
			}

			currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
			if err != nil {
				return err
			}

			// shares can exist without reserves if the liquidity asset was
			// minted out of band; the ratio is undefined then
			if currencyReserve == 0 {
				return core.ErrNoLiquidity
			}

			deposit := uint64(core.ConvertCurrency(currencyAmount))
			tokenAmount = core.TokenBalance(number.MulDiv(deposit, uint64(tokenReserve), uint64(core.ConvertCurrency(currencyReserve))))
			liquidityMinted := core.TokenBalance(number.MulDiv(deposit, uint64(totalLiquidity), uint64(core.ConvertCurrency(currencyReserve))))

			if maxToken < tokenAmount {
				return core.ErrTooManyToken
			}
			if liquidityMinted < minLiquidity {
				return core.ErrTooLowLiquidity
			}

			if err := s.checkAllowance(ctx, tx, ex, caller, tokenAmount); err != nil {
				return err
			}

			if err := s.currency.Transfer(ctx, tx, caller, ex.Account, currencyAmount, core.KeepAlive); err != nil {
				return err
			}
			if err := s.ledger.Mint(ctx, tx, ex.LiquidityID, caller, liquidityMinted); err != nil {
				return err
			}
			if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenAmount); err != nil {
				return err
			}
		} else {
			// fresh exchange with no liquidity: the caller sets the
			// initial price, shares minted equal the pool's currency
			// balance after the deposit
			tokenAmount = maxToken

			if err := s.checkAllowance(ctx, tx, ex, caller, tokenAmount); err != nil {
				return err
			}

			if err := s.currency.Transfer(ctx, tx, caller, ex.Account, currencyAmount, core.KeepAlive); err != nil {
				return err
			}

			poolBalance, err := s.currency.Balance(ctx, tx, ex.Account)
			if err != nil {
				return err
			}

			if err := s.ledger.Mint(ctx, tx, ex.LiquidityID, caller, core.ConvertCurrency(poolBalance)); err != nil {
				return err
			}
			if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenAmount); err != nil {
				return err
			}
		}

		event = &core.LiquidityAddedEvent{
			ExchangeID: ex.ID,
			Provider:   caller,
			CurrencyIn: currencyAmount,
			TokenIn:    tokenAmount,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicLiquidityAdded, event)

	return nil
}

func (s *exchangeService) RemoveLiquidity(ctx context.Context, caller core.Account, pool core.PoolRef, sharesToBurn core.TokenBalance, minCurrency core.Currency, minToken core.TokenBalance, deadline uint64) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if sharesToBurn == 0 {
		return core.ErrBurnZeroShares
	}

	var event *core.LiquidityRemovedEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		totalLiquidity, err := s.ledger.TotalSupply(ctx, tx, ex.LiquidityID)
		if err != nil {
			return err
		}
		if totalLiquidity == 0 {
			return core.ErrNoLiquidity
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		currencyAmount := number.MulDiv(uint64(sharesToBurn), uint64(core.ConvertCurrency(currencyReserve)), uint64(totalLiquidity))
		tokenAmount := core.TokenBalance(number.MulDiv(uint64(sharesToBurn), uint64(tokenReserve), uint64(totalLiquidity)))

		if core.UnconvertCurrency(core.TokenBalance(currencyAmount)) < minCurrency {
			return core.ErrNotEnoughCurrency
		}
		if tokenAmount < minToken {
			return core.ErrNotEnoughToken
		}

		if err := s.ledger.Burn(ctx, tx, ex.LiquidityID, caller, sharesToBurn); err != nil {
			return err
		}

		// a full withdrawal may drain the pool account entirely
		if err := s.currency.Transfer(ctx, tx, ex.Account, caller, core.Currency(currencyAmount), core.AllowDeath); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, ex.TokenID, ex.Account, caller, tokenAmount); err != nil {
			return err
		}

		event = &core.LiquidityRemovedEvent{
			ExchangeID:  ex.ID,
			Provider:    caller,
			CurrencyOut: core.Currency(currencyAmount),
			TokenOut:    tokenAmount,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicLiquidityRemoved, event)

	return nil
}

func (s *exchangeService) CurrencyToTokenInput(ctx context.Context, caller core.Account, pool core.PoolRef, currencySold core.Currency, minToken core.TokenBalance, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if currencySold == 0 {
		return core.ErrZeroCurrency
	}
	if minToken == 0 {
		return core.ErrZeroToken
	}

	var event *core.TokenPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		tokensBought := GetInputPrice(core.ConvertCurrency(currencySold), core.ConvertCurrency(currencyReserve), tokenReserve)
		if tokensBought < minToken {
			return core.ErrNotEnoughToken
		}

		if err := s.currency.Transfer(ctx, tx, caller, ex.Account, currencySold, core.KeepAlive); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, ex.TokenID, ex.Account, recipient, tokensBought); err != nil {
			return err
		}

		event = &core.TokenPurchaseEvent{
			ExchangeID:   ex.ID,
			Buyer:        caller,
			CurrencySold: currencySold,
			TokenBought:  tokensBought,
			Recipient:    recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicTokenPurchase, event)

	return nil
}

func (s *exchangeService) CurrencyToTokenOutput(ctx context.Context, caller core.Account, pool core.PoolRef, tokensBought core.TokenBalance, maxCurrency core.Currency, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if tokensBought == 0 {
		return core.ErrZeroToken
	}
	if maxCurrency == 0 {
		return core.ErrZeroCurrency
	}

	var event *core.TokenPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		if tokensBought >= tokenReserve {
			return core.ErrNotEnoughToken
		}

		currencySold := GetOutputPrice(tokensBought, core.ConvertCurrency(currencyReserve), tokenReserve)
		if core.UnconvertCurrency(currencySold) > maxCurrency {
			return core.ErrTooExpensiveCurrency
		}

		if err := s.currency.Transfer(ctx, tx, caller, ex.Account, core.UnconvertCurrency(currencySold), core.KeepAlive); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, ex.TokenID, ex.Account, recipient, tokensBought); err != nil {
			return err
		}

		event = &core.TokenPurchaseEvent{
			ExchangeID:   ex.ID,
			Buyer:        caller,
			CurrencySold: core.UnconvertCurrency(currencySold),
			TokenBought:  tokensBought,
			Recipient:    recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicTokenPurchase, event)

	return nil
}

func (s *exchangeService) TokenToCurrencyInput(ctx context.Context, caller core.Account, pool core.PoolRef, tokenSold core.TokenBalance, minCurrency core.Currency, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if tokenSold == 0 {
		return core.ErrZeroToken
	}
	if minCurrency == 0 {
		return core.ErrZeroCurrency
	}

	var event *core.CurrencyPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		currencyBought := GetInputPrice(tokenSold, tokenReserve, core.ConvertCurrency(currencyReserve))
		if currencyBought < core.ConvertCurrency(minCurrency) {
			return core.ErrNotEnoughCurrency
		}

		if err := s.checkAllowance(ctx, tx, ex, caller, tokenSold); err != nil {
			return err
		}

		if err := s.currency.Transfer(ctx, tx, ex.Account, recipient, core.UnconvertCurrency(currencyBought), core.AllowDeath); err != nil {
			return err
		}
		if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenSold); err != nil {
			return err
		}

		event = &core.CurrencyPurchaseEvent{
			ExchangeID:     ex.ID,
			Buyer:          caller,
			CurrencyBought: core.UnconvertCurrency(currencyBought),
			TokenSold:      tokenSold,
			Recipient:      recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicCurrencyPurchase, event)

	return nil
}

func (s *exchangeService) TokenToCurrencyOutput(ctx context.Context, caller core.Account, pool core.PoolRef, currencyBought core.Currency, maxToken core.TokenBalance, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if maxToken == 0 {
		return core.ErrZeroToken
	}
	if currencyBought == 0 {
		return core.ErrZeroCurrency
	}

	var event *core.CurrencyPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, err := s.resolveExchange(tx, pool)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		if core.ConvertCurrency(currencyBought) >= core.ConvertCurrency(currencyReserve) {
			return core.ErrNotEnoughCurrency
		}

		tokenSold := GetOutputPrice(core.ConvertCurrency(currencyBought), tokenReserve, core.ConvertCurrency(currencyReserve))
		if maxToken < tokenSold {
			return core.ErrTooExpensiveToken
		}

		if err := s.checkAllowance(ctx, tx, ex, caller, tokenSold); err != nil {
			return err
		}

		if err := s.currency.Transfer(ctx, tx, ex.Account, caller, currencyBought, core.AllowDeath); err != nil {
			return err
		}
		if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenSold); err != nil {
			return err
		}

		event = &core.CurrencyPurchaseEvent{
			ExchangeID:     ex.ID,
			Buyer:          caller,
			CurrencyBought: currencyBought,
			TokenSold:      tokenSold,
			Recipient:      recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicCurrencyPurchase, event)

	return nil
}

func (s *exchangeService) TokenToTokenInput(ctx context.Context, caller core.Account, pool, otherPool core.PoolRef, tokenSold, minOtherToken core.TokenBalance, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if tokenSold == 0 || minOtherToken == 0 {
		return core.ErrZeroToken
	}

	var event *core.OtherTokenPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, other, err := s.resolvePair(tx, pool, otherPool)
		if err != nil {
			return err
		}

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		// hop 1: sell token for currency in pool A
		currencyBought := GetInputPrice(tokenSold, tokenReserve, core.ConvertCurrency(currencyReserve))

		otherCurrencyReserve, otherTokenReserve, err := s.reserves(ctx, tx, other)
		if err != nil {
			return err
		}

		// hop 2: sell that currency for the other token in pool B
		otherTokenBought := GetInputPrice(currencyBought, core.ConvertCurrency(otherCurrencyReserve), otherTokenReserve)
		if otherTokenBought < minOtherToken {
			return core.ErrNotEnoughToken
		}

		if err := s.checkAllowance(ctx, tx, ex, caller, tokenSold); err != nil {
			return err
		}

		if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenSold); err != nil {
			return err
		}
		if err := s.currency.Transfer(ctx, tx, ex.Account, other.Account, core.UnconvertCurrency(currencyBought), core.KeepAlive); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, other.TokenID, other.Account, recipient, otherTokenBought); err != nil {
			return err
		}

		event = &core.OtherTokenPurchaseEvent{
			ExchangeID:       ex.ID,
			OtherExchangeID:  other.ID,
			Buyer:            caller,
			TokenSold:        tokenSold,
			OtherTokenBought: otherTokenBought,
			Recipient:        recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicOtherTokenPurchase, event)

	return nil
}

func (s *exchangeService) TokenToTokenOutput(ctx context.Context, caller core.Account, pool, otherPool core.PoolRef, otherTokenBought, maxToken core.TokenBalance, deadline uint64, recipient core.Account) error {
	if err := s.checkDeadline(ctx, deadline); err != nil {
		return err
	}

	if otherTokenBought == 0 || maxToken == 0 {
		return core.ErrZeroToken
	}

	var event *core.OtherTokenPurchaseEvent
	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		ex, other, err := s.resolvePair(tx, pool, otherPool)
		if err != nil {
			return err
		}

		otherCurrencyReserve, otherTokenReserve, err := s.reserves(ctx, tx, other)
		if err != nil {
			return err
		}

		if otherTokenBought >= otherTokenReserve {
			return core.ErrNotEnoughToken
		}

		// hop 1 (reversed): currency needed in pool B for the exact output
		currencySold := GetOutputPrice(otherTokenBought, core.ConvertCurrency(otherCurrencyReserve), otherTokenReserve)

		currencyReserve, tokenReserve, err := s.reserves(ctx, tx, ex)
		if err != nil {
			return err
		}

		if currencySold >= core.ConvertCurrency(currencyReserve) {
			return core.ErrNotEnoughCurrency
		}

		// hop 2 (reversed): token needed in pool A for that currency
		tokenSold := GetOutputPrice(currencySold, tokenReserve, core.ConvertCurrency(currencyReserve))
		if maxToken < tokenSold {
			return core.ErrTooExpensiveToken
		}

		if err := s.checkAllowance(ctx, tx, ex, caller, tokenSold); err != nil {
			return err
		}

		if err := s.ledger.TransferFrom(ctx, tx, ex.TokenID, caller, ex.Account, ex.Account, tokenSold); err != nil {
			return err
		}
		if err := s.currency.Transfer(ctx, tx, ex.Account, other.Account, core.UnconvertCurrency(currencySold), core.KeepAlive); err != nil {
			return err
		}
		if err := s.ledger.Transfer(ctx, tx, other.TokenID, other.Account, recipient, otherTokenBought); err != nil {
			return err
		}

		event = &core.OtherTokenPurchaseEvent{
			ExchangeID:       ex.ID,
			OtherExchangeID:  other.ID,
			Buyer:            caller,
			TokenSold:        tokenSold,
			OtherTokenBought: otherTokenBought,
			Recipient:        recipient,
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publish(core.TopicOtherTokenPurchase, event)

	return nil
}

func (s *exchangeService) checkDeadline(ctx context.Context, deadline uint64) error {
	now, err := s.clock.Height(ctx)
	if err != nil {
		return err
	}

	if now >= deadline {
		return core.ErrDeadline
	}

	return nil
}

// resolveExchange resolves a pool ref to its registered exchange.
func (s *exchangeService) resolveExchange(tx kv.Transaction, pool core.PoolRef) (*core.Exchange, error) {
	exchangeID := pool.ExchangeID()

	if pool.ByAsset() {
		var err error
		exchangeID, err = s.exchanges.FindByToken(tx, pool.AssetID())
		if err != nil {
			return nil, err
		}
	}

	return s.exchanges.Find(tx, exchangeID)
}

func (s *exchangeService) resolvePair(tx kv.Transaction, pool, otherPool core.PoolRef) (*core.Exchange, *core.Exchange, error) {
	ex, err := s.resolveExchange(tx, pool)
	if err != nil {
		return nil, nil, err
	}

	other, err := s.resolveExchange(tx, otherPool)
	if err != nil {
		return nil, nil, err
	}

	return ex, other, nil
}

func (s *exchangeService) reserves(ctx context.Context, tx kv.Transaction, ex *core.Exchange) (core.Currency, core.TokenBalance, error) {
	currencyReserve, err := s.currency.Balance(ctx, tx, ex.Account)
	if err != nil {
		return 0, 0, err
	}

	tokenReserve, err := s.ledger.BalanceOf(ctx, tx, ex.TokenID, ex.Account)
	if err != nil {
		return 0, 0, err
	}

	return currencyReserve, tokenReserve, nil
}

func (s *exchangeService) checkAllowance(ctx context.Context, tx kv.Transaction, ex *core.Exchange, owner core.Account, amount core.TokenBalance) error {
	allowance, err := s.ledger.Allowance(ctx, tx, ex.TokenID, owner, ex.Account)
	if err != nil {
		return err
	}

	if allowance < amount {
		return core.ErrAllowanceLow
	}

	return nil
}

func (s *exchangeService) publish(topic string, event interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}
