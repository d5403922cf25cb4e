package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/guileen/sqlitefdw/storage/shared"
)

// PebbleConfig holds the configuration for the Pebble KV store
type PebbleConfig struct {
	Path         string
	CacheSize    int64
	MemTableSize uint64
	MaxOpenFiles int
}

// DefaultPebbleConfig creates a default configuration for the catalog store.
// The catalog workload is tiny and read-mostly, so the sizes stay modest.
func DefaultPebbleConfig(path string) *PebbleConfig {
	return &PebbleConfig{
		Path:         path,
		CacheSize:    32 * 1024 * 1024,
		MemTableSize: 8 * 1024 * 1024,
		MaxOpenFiles: 1024,
	}
}

type PebbleKV struct {
	db     *pebble.DB
	dbPath string
	closed bool
	mu     sync.RWMutex
}

func NewPebbleKV(config *PebbleConfig) (*PebbleKV, error) {
	cache := pebble.NewCache(config.CacheSize)
	defer cache.Unref()

	opts := &pebble.Options{
		Cache:        cache,
		MemTableSize: config.MemTableSize,
		MaxOpenFiles: config.MaxOpenFiles,
	}

	db, err := pebble.Open(config.Path, opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open %s: %w", config.Path, err)
	}

	return &PebbleKV{
		db:     db,
		dbPath: config.Path,
	}, nil
}

func (p *PebbleKV) Get(ctx context.Context, key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, shared.ErrClosed
	}

	value, closer, err := p.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("pebble get: %w", err)
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *PebbleKV) Set(ctx context.Context, key, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return shared.ErrClosed
	}

	if err := p.db.Set(key, value, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleKV) Delete(ctx context.Context, key []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return shared.ErrClosed
	}

	if err := p.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("pebble delete: %w", err)
	}
	return nil
}

func (p *PebbleKV) NewIterator(opts *shared.IteratorOptions) shared.Iterator {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return &PebbleIterator{err: shared.ErrClosed}
	}

	pebbleOpts := &pebble.IterOptions{}
	if opts != nil {
		pebbleOpts.LowerBound = opts.LowerBound
		pebbleOpts.UpperBound = opts.UpperBound
	}

	iter, err := p.db.NewIter(pebbleOpts)
	if err != nil {
		return &PebbleIterator{err: err}
	}
	return &PebbleIterator{iter: iter}
}

func (p *PebbleKV) Flush() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return shared.ErrClosed
	}
	return p.db.Flush()
}

func (p *PebbleKV) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}
