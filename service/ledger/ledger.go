package ledger

import (
	"context"

	"zendex/core"
	"zendex/pkg/kv"
	"zendex/pkg/number"

	"github.com/asaskevich/EventBus"
	"github.com/bluele/gcache"
)

const assetInfoCacheSize = 1024

// ledgerService implements core.Ledger over an AssetStore. Every mutating
// operation performs all of its writes inside the caller's transaction, so
// an early failure leaves no partial state behind.
type ledgerService struct {
	assets core.AssetStore
	bus    EventBus.Bus
	// asset metadata is immutable once issued, safe to cache
	infoCache gcache.Cache
}

// New new ledger service
func New(assets core.AssetStore, bus EventBus.Bus) core.Ledger {
	return &ledgerService{
		assets:    assets,
		bus:       bus,
		infoCache: gcache.New(assetInfoCacheSize).LRU().Build(),
	}
}

func (s *ledgerService) Issue(ctx context.Context, tx kv.Transaction, owner core.Account, total core.TokenBalance, info core.AssetInfo) (core.AssetID, error) {
	id, err := s.assets.NextAssetID(tx)
	if err != nil {
		return 0, err
	}

	if err := s.assets.PutNextAssetID(tx, id+1); err != nil {
		return 0, err
	}

	if err := s.assets.PutBalance(tx, id, owner, total); err != nil {
		return 0, err
	}

	if err := s.assets.PutTotalSupply(tx, id, total); err != nil {
		return 0, err
	}

	if err := s.assets.PutAssetInfo(tx, id, info); err != nil {
		return 0, err
	}

	s.publish(core.TopicIssued, &core.IssuedEvent{AssetID: id, Owner: owner, Total: total})

	return id, nil
}

func (s *ledgerService) Transfer(ctx context.Context, tx kv.Transaction, id core.AssetID, owner, target core.Account, amount core.TokenBalance) error {
	ownerBalance, err := s.assets.GetBalance(tx, id, owner)
	if err != nil {
		return err
	}

	if amount == 0 {
		return core.ErrAmountZero
	}
	if ownerBalance < amount {
		return core.ErrBalanceLow
	}

	if err := s.assets.PutBalance(tx, id, owner, ownerBalance-amount); err != nil {
		return err
	}

	targetBalance, err := s.assets.GetBalance(tx, id, target)
	if err != nil {
		return err
	}

	credited := core.TokenBalance(number.SaturatingAdd(uint64(targetBalance), uint64(amount)))
	if err := s.assets.PutBalance(tx, id, target, credited); err != nil {
		return err
	}

	s.publish(core.TopicTransferred, &core.TransferredEvent{
		AssetID: id,
		Owner:   owner,
		Target:  target,
		Amount:  amount,
	})

	return nil
}

func (s *ledgerService) Approve(ctx context.Context, tx kv.Transaction, id core.AssetID, owner, spender core.Account, amount core.TokenBalance) error {
	if err := s.assets.PutAllowance(tx, id, owner, spender, amount); err != nil {
		return err
	}

	s.publish(core.TopicApproval, &core.ApprovalEvent{
		AssetID: id,
		Owner:   owner,
		Spender: spender,
		Amount:  amount,
	})

	return nil
}

func (s *ledgerService) TransferFrom(ctx context.Context, tx kv.Transaction, id core.AssetID, owner, spender, target core.Account, amount core.TokenBalance) error {
	allowance, err := s.assets.GetAllowance(tx, id, owner, spender)
	if err != nil {
		return err
	}

	// checked, not saturating: an underflow here is a logic bug and must
	// fail loudly
	remaining, ok := number.CheckedSub(uint64(allowance), uint64(amount))
	if !ok {
		return core.ErrAllowanceLow
	}

	if err := s.Transfer(ctx, tx, id, owner, target, amount); err != nil {
		return err
	}

	return s.assets.PutAllowance(tx, id, owner, spender, core.TokenBalance(remaining))
}

func (s *ledgerService) Mint(ctx context.Context, tx kv.Transaction, id core.AssetID, owner core.Account, amount core.TokenBalance) error {
	info, err := s.AssetInfo(ctx, tx, id)
	if err != nil {
		return err
	}
	if info == nil {
		return core.ErrAssetNotExists
	}

	balance, err := s.assets.GetBalance(tx, id, owner)
	if err != nil {
		return err
	}

	credited := core.TokenBalance(number.SaturatingAdd(uint64(balance), uint64(amount)))
	if err := s.assets.PutBalance(tx, id, owner, credited); err != nil {
		return err
	}

	supply, err := s.assets.GetTotalSupply(tx, id)
	if err != nil {
		return err
	}

	grown := core.TokenBalance(number.SaturatingAdd(uint64(supply), uint64(amount)))
	if err := s.assets.PutTotalSupply(tx, id, grown); err != nil {
		return err
	}

	s.publish(core.TopicMinted, &core.MintedEvent{AssetID: id, Owner: owner, Amount: amount})

	return nil
}

func (s *ledgerService) Burn(ctx context.Context, tx kv.Transaction, id core.AssetID, owner core.Account, amount core.TokenBalance) error {
	info, err := s.AssetInfo(ctx, tx, id)
	if err != nil {
		return err
	}
	if info == nil {
		return core.ErrAssetNotExists
	}

	balance, err := s.assets.GetBalance(tx, id, owner)
	if err != nil {
		return err
	}

	remaining, ok := number.CheckedSub(uint64(balance), uint64(amount))
	if !ok {
		return core.ErrBalanceLow
	}

	if err := s.assets.PutBalance(tx, id, owner, core.TokenBalance(remaining)); err != nil {
		return err
	}

	supply, err := s.assets.GetTotalSupply(tx, id)
	if err != nil {
		return err
	}

	shrunk := core.TokenBalance(number.SaturatingSub(uint64(supply), uint64(amount)))
	if err := s.assets.PutTotalSupply(tx, id, shrunk); err != nil {
		return err
	}

	s.publish(core.TopicBurned, &core.BurnedEvent{AssetID: id, Owner: owner, Amount: amount})

	return nil
}

func (s *ledgerService) BalanceOf(ctx context.Context, tx kv.Transaction, id core.AssetID, owner core.Account) (core.TokenBalance, error) {
	return s.assets.GetBalance(tx, id, owner)
}

func (s *ledgerService) TotalSupply(ctx context.Context, tx kv.Transaction, id core.AssetID) (core.TokenBalance, error) {
	return s.assets.GetTotalSupply(tx, id)
}

func (s *ledgerService) Allowance(ctx context.Context, tx kv.Transaction, id core.AssetID, owner, spender core.Account) (core.TokenBalance, error) {
	return s.assets.GetAllowance(tx, id, owner, spender)
}

func (s *ledgerService) AssetInfo(ctx context.Context, tx kv.Transaction, id core.AssetID) (*core.AssetInfo, error) {
	if cached, err := s.infoCache.Get(id); err == nil {
		info := cached.(core.AssetInfo)
		return &info, nil
	}

	info, err := s.assets.GetAssetInfo(tx, id)
	if err != nil || info == nil {
		return info, err
	}

	_ = s.infoCache.Set(id, *info)

	return info, nil
}

func (s *ledgerService) publish(topic string, event interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, event)
	}
}
