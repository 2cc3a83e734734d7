// Package kv defines the key-value storage layer the ledger and the exchange
// registry persist into. A Store hands out transactions with atomic
// read-modify-write semantics; every mutating operation of the system runs
// inside exactly one Update transaction, so either all of its writes commit
// or none do.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound key not found
	ErrKeyNotFound = errors.New("kv: key not found")
	// ErrReadOnly write attempted inside a View transaction
	ErrReadOnly = errors.New("kv: read-only transaction")
)

// Transaction is a consistent view over the store. Writes are buffered until
// the enclosing Update callback returns nil.
type Transaction interface {
	// Get returns the value of key, or ErrKeyNotFound. The returned slice
	// is a copy and safe to keep.
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	// Iterate walks all keys with the given prefix in lexical order.
	// Returning an error from fn aborts the walk.
	Iterate(prefix []byte, fn func(key, value []byte) error) error
}

// Store store
type Store interface {
	View(ctx context.Context, fn func(tx Transaction) error) error
	Update(ctx context.Context, fn func(tx Transaction) error) error
	Close() error
}
