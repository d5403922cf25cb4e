package kv

import (
	"github.com/cockroachdb/pebble"
)

type PebbleIterator struct {
	iter *pebble.Iterator
	err  error
}

func (i *PebbleIterator) First() bool {
	if i == nil || i.iter == nil {
		return false
	}
	return i.iter.First()
}

func (i *PebbleIterator) Valid() bool {
	if i == nil || i.iter == nil {
		return false
	}
	return i.iter.Valid()
}

func (i *PebbleIterator) Next() bool {
	if i == nil || i.iter == nil {
		return false
	}
	return i.iter.Next()
}

func (i *PebbleIterator) Key() []byte {
	if i == nil || i.iter == nil {
		return nil
	}
	return i.iter.Key()
}

func (i *PebbleIterator) Value() []byte {
	if i == nil || i.iter == nil {
		return nil
	}
	return i.iter.Value()
}

func (i *PebbleIterator) Error() error {
	if i == nil {
		return nil
	}
	if i.err != nil {
		return i.err
	}
	if i.iter == nil {
		return nil
	}
	return i.iter.Error()
}

func (i *PebbleIterator) Close() error {
	if i == nil || i.iter == nil {
		return nil
	}
	return i.iter.Close()
}
