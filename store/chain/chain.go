package chain

import (
	"context"
	"encoding/binary"

	"zendex/core"
	"zendex/pkg/kv"
)

const heightKey = "chain:height"

// Store is the kv-backed logical clock. Height only ever moves forward.
type Store struct {
	db kv.Store
}

// New new chain store
func New(db kv.Store) *Store {
	return &Store{db: db}
}

// Height current logical height; zero before the first Advance.
func (s *Store) Height(ctx context.Context) (uint64, error) {
	var height uint64

	err := s.db.View(ctx, func(tx kv.Transaction) error {
		value, err := tx.Get([]byte(heightKey))
		if err == kv.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}

		height = binary.BigEndian.Uint64(value)
		return nil
	})

	return height, err
}

// Advance moves the clock forward by n and returns the new height.
func (s *Store) Advance(ctx context.Context, n uint64) (uint64, error) {
	var height uint64

	err := s.db.Update(ctx, func(tx kv.Transaction) error {
		value, err := tx.Get([]byte(heightKey))
		if err == nil {
			height = binary.BigEndian.Uint64(value)
		} else if err != kv.ErrKeyNotFound {
			return err
		}

		height += n
		return tx.Set([]byte(heightKey), binary.BigEndian.AppendUint64(nil, height))
	})

	return height, err
}

var _ core.Clock = (*Store)(nil)
