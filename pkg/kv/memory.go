package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// memoryTx buffers writes in an overlay so a failed Update discards them.
type memoryTx struct {
	store   *memoryStore
	pending map[string][]byte
	deleted map[string]bool
	mutable bool
}

// NewMemory returns an in-memory store with the same transactional contract
// as the badger-backed one. Used by tests and throwaway environments.
func NewMemory() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) View(ctx context.Context, fn func(tx Transaction) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&memoryTx{store: s})
}

func (s *memoryStore) Update(ctx context.Context, fn func(tx Transaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{
		store:   s,
		pending: make(map[string][]byte),
		deleted: make(map[string]bool),
		mutable: true,
	}

	if err := fn(tx); err != nil {
		return err
	}

	for key := range tx.deleted {
		delete(s.data, key)
	}
	for key, value := range tx.pending {
		s.data[key] = value
	}

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

func (t *memoryTx) Get(key []byte) ([]byte, error) {
	k := string(key)

	if t.mutable {
		if t.deleted[k] {
			return nil, ErrKeyNotFound
		}
		if value, ok := t.pending[k]; ok {
			return append([]byte(nil), value...), nil
		}
	}

	value, ok := t.store.data[k]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (t *memoryTx) Set(key, value []byte) error {
	if !t.mutable {
		return ErrReadOnly
	}

	k := string(key)
	delete(t.deleted, k)
	t.pending[k] = append([]byte(nil), value...)
	return nil
}

func (t *memoryTx) Delete(key []byte) error {
	if !t.mutable {
		return ErrReadOnly
	}

	k := string(key)
	delete(t.pending, k)
	t.deleted[k] = true
	return nil
}

func (t *memoryTx) Iterate(prefix []byte, fn func(key, value []byte) error) error {
	p := string(prefix)
	keys := make([]string, 0)
	seen := make(map[string]bool)

	for key := range t.store.data {
		if strings.HasPrefix(key, p) && !(t.mutable && t.deleted[key]) {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	if t.mutable {
		for key := range t.pending {
			if strings.HasPrefix(key, p) && !seen[key] {
				keys = append(keys, key)
			}
		}
	}

	sort.Strings(keys)

	for _, key := range keys {
		value, err := t.Get([]byte(key))
		if err != nil {
			return err
		}

		if err := fn([]byte(key), value); err != nil {
			return err
		}
	}

	return nil
}
