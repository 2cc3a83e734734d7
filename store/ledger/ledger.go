package ledger

import (
	"encoding/binary"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/fox-one/msgpack"
)

const (
	nextAssetIDKey  = "asset:next"
	infoPrefix      = "asset:info:"
	supplyPrefix    = "asset:supply:"
	balancePrefix   = "asset:balance:"
	allowancePrefix = "asset:allowance:"
)

type assetStore struct{}

// New new asset store
func New() core.AssetStore {
	return &assetStore{}
}

// assetInfo is the storage form of core.AssetInfo. The fixed-width arrays
// round-trip as plain byte strings.
type assetInfo struct {
	Name     []byte `msgpack:"name"`
	Symbol   []byte `msgpack:"symbol"`
	Decimals uint8  `msgpack:"decimals"`
}

func assetKey(prefix string, id core.AssetID) []byte {
	key := make([]byte, 0, len(prefix)+8)
	key = append(key, prefix...)
	return binary.BigEndian.AppendUint64(key, uint64(id))
}

func balanceKey(id core.AssetID, owner core.Account) []byte {
	key := assetKey(balancePrefix, id)
	key = append(key, ':')
	return append(key, owner...)
}

func allowanceKey(id core.AssetID, owner, spender core.Account) []byte {
	key := assetKey(allowancePrefix, id)
	key = append(key, ':')
	key = append(key, owner...)
	key = append(key, ':')
	return append(key, spender...)
}

func getUint64(tx kv.Transaction, key []byte) (uint64, error) {
	value, err := tx.Get(key)
	if err == kv.ErrKeyNotFound {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(value), nil
}

func putUint64(tx kv.Transaction, key []byte, v uint64) error {
	return tx.Set(key, binary.BigEndian.AppendUint64(nil, v))
}

func (s *assetStore) NextAssetID(tx kv.Transaction) (core.AssetID, error) {
	id, err := getUint64(tx, []byte(nextAssetIDKey))
	return core.AssetID(id), err
}

func (s *assetStore) PutNextAssetID(tx kv.Transaction, id core.AssetID) error {
	return putUint64(tx, []byte(nextAssetIDKey), uint64(id))
}

func (s *assetStore) GetAssetInfo(tx kv.Transaction, id core.AssetID) (*core.AssetInfo, error) {
	value, err := tx.Get(assetKey(infoPrefix, id))
	if err == kv.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var record assetInfo
	if err := msgpack.Unmarshal(value, &record); err != nil {
		return nil, err
	}

	var info core.AssetInfo
	copy(info.Name[:], record.Name)
	copy(info.Symbol[:], record.Symbol)
	info.Decimals = record.Decimals

	return &info, nil
}

func (s *assetStore) PutAssetInfo(tx kv.Transaction, id core.AssetID, info core.AssetInfo) error {
	value, err := msgpack.Marshal(assetInfo{
		Name:     info.Name[:],
		Symbol:   info.Symbol[:],
		Decimals: info.Decimals,
	})
	if err != nil {
		return err
	}

	return tx.Set(assetKey(infoPrefix, id), value)
}

func (s *assetStore) GetBalance(tx kv.Transaction, id core.AssetID, owner core.Account) (core.TokenBalance, error) {
	balance, err := getUint64(tx, balanceKey(id, owner))
	return core.TokenBalance(balance), err
}

func (s *assetStore) PutBalance(tx kv.Transaction, id core.AssetID, owner core.Account, balance core.TokenBalance) error {
	return putUint64(tx, balanceKey(id, owner), uint64(balance))
}

func (s *assetStore) ListBalances(tx kv.Transaction, id core.AssetID, fn func(owner core.Account, balance core.TokenBalance) error) error {
	prefix := assetKey(balancePrefix, id)
	prefix = append(prefix, ':')

	return tx.Iterate(prefix, func(key, value []byte) error {
		owner := core.Account(key[len(prefix):])
		return fn(owner, core.TokenBalance(binary.BigEndian.Uint64(value)))
	})
}

func (s *assetStore) GetTotalSupply(tx kv.Transaction, id core.AssetID) (core.TokenBalance, error) {
	supply, err := getUint64(tx, assetKey(supplyPrefix, id))
	return core.TokenBalance(supply), err
}

func (s *assetStore) PutTotalSupply(tx kv.Transaction, id core.AssetID, supply core.TokenBalance) error {
	return putUint64(tx, assetKey(supplyPrefix, id), uint64(supply))
}

func (s *assetStore) GetAllowance(tx kv.Transaction, id core.AssetID, owner, spender core.Account) (core.TokenBalance, error) {
	amount, err := getUint64(tx, allowanceKey(id, owner, spender))
	return core.TokenBalance(amount), err
}

func (s *assetStore) PutAllowance(tx kv.Transaction, id core.AssetID, owner, spender core.Account, amount core.TokenBalance) error {
	return putUint64(tx, allowanceKey(id, owner, spender), uint64(amount))
}
