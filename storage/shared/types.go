// Package shared provides shared types and interfaces for the storage module
package shared

import (
	"context"
	"io"
)

// KV defines the interface for key-value storage operations
type KV interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	NewIterator(opts *IteratorOptions) Iterator
	Flush() error
	Close() error
}

// IteratorOptions defines options for iterator operations
type IteratorOptions struct {
	LowerBound []byte
	UpperBound []byte
}

// Iterator defines the interface for iterating over key-value pairs
type Iterator interface {
	io.Closer
	First() bool
	Valid() bool
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
}

// Error types
var (
	ErrNotFound = &kvError{msg: "key not found"}
	ErrClosed   = &kvError{msg: "kv store closed"}
)

type kvError struct {
	msg string
}

func (e *kvError) Error() string {
	return e.msg
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return err == ErrNotFound
}
