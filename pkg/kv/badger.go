package kv

import (
	"context"

	badger "github.com/dgraph-io/badger/v3"
)

type badgerStore struct {
	db *badger.DB
}

type badgerTx struct {
	txn *badger.Txn
}

// OpenBadger opens a badger-backed store at dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string) (Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &badgerStore{db: db}, nil
}

func (s *badgerStore) View(ctx context.Context, fn func(tx Transaction) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

func (s *badgerStore) Update(ctx context.Context, fn func(tx Transaction) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&badgerTx{txn: txn})
	})
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}

func (t *badgerTx) Get(key []byte) ([]byte, error) {
	item, err := t.txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, ErrKeyNotFound
	} else if err != nil {
		return nil, err
	}

	return item.ValueCopy(nil)
}

func (t *badgerTx) Set(key, value []byte) error {
	return t.txn.Set(key, value)
}

func (t *badgerTx) Delete(key []byte) error {
	return t.txn.Delete(key)
}

func (t *badgerTx) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := t.txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.Valid(); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		if err := fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}

	return nil
}
