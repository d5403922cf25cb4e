// Package storage provides the public API for the storage module
package storage

import (
	"github.com/guileen/sqlitefdw/storage/internal/kv"
	"github.com/guileen/sqlitefdw/storage/shared"
)

// KV defines the interface for key-value storage operations
type KV = shared.KV

// IteratorOptions defines options for iterator operations
type IteratorOptions = shared.IteratorOptions

// Iterator defines the interface for iterating over key-value pairs
type Iterator = shared.Iterator

// Error types
var (
	ErrNotFound = shared.ErrNotFound
	ErrClosed   = shared.ErrClosed
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return shared.IsNotFound(err)
}

// PebbleConfig holds the configuration for the Pebble KV store
type PebbleConfig = kv.PebbleConfig

// NewPebbleKV creates a new Pebble-based KV store
func NewPebbleKV(config *PebbleConfig) (KV, error) {
	return kv.NewPebbleKV(config)
}

// DefaultPebbleConfig creates a default configuration for the Pebble KV store
func DefaultPebbleConfig(path string) *PebbleConfig {
	return kv.DefaultPebbleConfig(path)
}
