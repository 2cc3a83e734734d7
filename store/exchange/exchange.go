package exchange

import (
	"encoding/binary"

	"zendex/core"
	"zendex/pkg/kv"

	"github.com/fox-one/msgpack"
)

const (
	nextExchangeIDKey = "exchange:next"
	itemPrefix        = "exchange:item:"
	tokenPrefix       = "exchange:token:"
	liquidityPrefix   = "exchange:liquidity:"
)

type exchangeStore struct{}

// New new exchange store
func New() core.ExchangeStore {
	return &exchangeStore{}
}

type exchange struct {
	ID          uint64 `msgpack:"id"`
	TokenID     uint64 `msgpack:"token_id"`
	LiquidityID uint64 `msgpack:"liquidity_id"`
	Account     string `msgpack:"account"`
}

func key(prefix string, id uint64) []byte {
	k := make([]byte, 0, len(prefix)+8)
	k = append(k, prefix...)
	return binary.BigEndian.AppendUint64(k, id)
}

func (s *exchangeStore) NextExchangeID(tx kv.Transaction) (core.ExchangeID, error) {
	value, err := tx.Get([]byte(nextExchangeIDKey))
	if err == kv.ErrKeyNotFound {
		return 0, nil
	} else if err != nil {
		return 0, err
	}

	return core.ExchangeID(binary.BigEndian.Uint64(value)), nil
}

// Create writes the exchange record, both lookup indices and the bumped
// counter. The four writes must never be split across transactions.
func (s *exchangeStore) Create(tx kv.Transaction, ex *core.Exchange) error {
	value, err := msgpack.Marshal(exchange{
		ID:          uint64(ex.ID),
		TokenID:     uint64(ex.TokenID),
		LiquidityID: uint64(ex.LiquidityID),
		Account:     string(ex.Account),
	})
	if err != nil {
		return err
	}

	if err := tx.Set(key(itemPrefix, uint64(ex.ID)), value); err != nil {
		return err
	}

	id := binary.BigEndian.AppendUint64(nil, uint64(ex.ID))
	if err := tx.Set(key(tokenPrefix, uint64(ex.TokenID)), id); err != nil {
		return err
	}
	if err := tx.Set(key(liquidityPrefix, uint64(ex.LiquidityID)), id); err != nil {
		return err
	}

	next := binary.BigEndian.AppendUint64(nil, uint64(ex.ID)+1)
	return tx.Set([]byte(nextExchangeIDKey), next)
}

func (s *exchangeStore) Find(tx kv.Transaction, id core.ExchangeID) (*core.Exchange, error) {
	value, err := tx.Get(key(itemPrefix, uint64(id)))
	if err == kv.ErrKeyNotFound {
		return nil, core.ErrExchangeNotExists
	} else if err != nil {
		return nil, err
	}

	return decode(value)
}

func (s *exchangeStore) FindByToken(tx kv.Transaction, tokenID core.AssetID) (core.ExchangeID, error) {
	return s.findIndex(tx, key(tokenPrefix, uint64(tokenID)))
}

func (s *exchangeStore) FindByLiquidity(tx kv.Transaction, liquidityID core.AssetID) (core.ExchangeID, error) {
	return s.findIndex(tx, key(liquidityPrefix, uint64(liquidityID)))
}

func (s *exchangeStore) findIndex(tx kv.Transaction, k []byte) (core.ExchangeID, error) {
	value, err := tx.Get(k)
	if err == kv.ErrKeyNotFound {
		return 0, core.ErrExchangeNotExists
	} else if err != nil {
		return 0, err
	}

	return core.ExchangeID(binary.BigEndian.Uint64(value)), nil
}

func (s *exchangeStore) List(tx kv.Transaction) ([]*core.Exchange, error) {
	var exchanges []*core.Exchange

	err := tx.Iterate([]byte(itemPrefix), func(_, value []byte) error {
		ex, err := decode(value)
		if err != nil {
			return err
		}

		exchanges = append(exchanges, ex)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return exchanges, nil
}

func decode(value []byte) (*core.Exchange, error) {
	var record exchange
	if err := msgpack.Unmarshal(value, &record); err != nil {
		return nil, err
	}

	return &core.Exchange{
		ID:          core.ExchangeID(record.ID),
		TokenID:     core.AssetID(record.TokenID),
		LiquidityID: core.AssetID(record.LiquidityID),
		Account:     core.Account(record.Account),
	}, nil
}
