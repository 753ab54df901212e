package pebble

import (
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// KVStore wraps a pebble database behind the db.KVStore interface.
type KVStore struct {
	db     *pebble.DB
	closed bool
	mu     sync.RWMutex
}

// Open opens a pebble-backed store at path, creating it if necessary.
func Open(path string) (*KVStore, error) {
	cache := pebble.NewCache(64 * 1024 * 1024) // 64MB
	defer cache.Unref()

	db, err := pebble.Open(path, &pebble.Options{
		Cache:        cache,
		MemTableSize: 32 * 1024 * 1024, // 32MB
	})
	if err != nil {
		return nil, err
	}

	return &KVStore{db: db}, nil
}

// NewKVStore creates an in-memory store, used by tests and ephemeral runs.
func NewKVStore() (*KVStore, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, err
	}

	return &KVStore{db: db}, nil
}

func (p *KVStore) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrClosed
	}

	value, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *KVStore) Put(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	return p.db.Set(key, value, pebble.Sync)
}

func (p *KVStore) Delete(key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	return p.db.Delete(key, pebble.Sync)
}

func (p *KVStore) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}
