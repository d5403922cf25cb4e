// Package persistence provides persistence operations for catalog entities.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/guileen/sqlitefdw/fdwerrors"
	"github.com/guileen/sqlitefdw/storage"
)

const (
	serverKeyPrefix = "\x00fdwserver\x00"
	tableKeyPrefix  = "\x00fdwtable\x00"
)

// Persister handles persistence operations for catalog entities
type Persister struct {
	kv storage.KV
}

// NewPersister creates a new persister. A nil KV disables persistence,
// leaving the catalog memory-only.
func NewPersister(kv storage.KV) *Persister {
	return &Persister{
		kv: kv,
	}
}

// PersistServer persists a foreign server definition to storage
func (p *Persister) PersistServer(ctx context.Context, name string, def any) error {
	return p.persist(ctx, serverKey(name), def, "persist_server_failed")
}

// DeleteServer deletes a foreign server definition from storage
func (p *Persister) DeleteServer(ctx context.Context, name string) error {
	return p.delete(ctx, serverKey(name), "delete_server_failed")
}

// PersistTable persists a foreign table definition to storage
func (p *Persister) PersistTable(ctx context.Context, name string, def any) error {
	return p.persist(ctx, tableKey(name), def, "persist_table_failed")
}

// DeleteTable deletes a foreign table definition from storage
func (p *Persister) DeleteTable(ctx context.Context, name string) error {
	return p.delete(ctx, tableKey(name), "delete_table_failed")
}

func (p *Persister) persist(ctx context.Context, key []byte, def any, code string) error {
	if p.kv == nil {
		return nil
	}

	bytes, err := json.Marshal(def)
	if err != nil {
		return fdwerrors.Wrap(err, code, "marshal definition")
	}

	if err := p.kv.Set(ctx, key, bytes); err != nil {
		return fdwerrors.Wrap(err, code, "persist definition")
	}

	return nil
}

func (p *Persister) delete(ctx context.Context, key []byte, code string) error {
	if p.kv == nil {
		return nil
	}

	if err := p.kv.Delete(ctx, key); err != nil {
		return fdwerrors.Wrap(err, code, "delete definition")
	}

	return nil
}

// LoadServers loads all persisted server definitions. The loader callback
// decodes the raw value; decode failures skip the entry and loading
// continues with the rest.
func (p *Persister) LoadServers(ctx context.Context, loader func(name string, raw []byte) error) error {
	return p.load(serverKeyPrefix, loader)
}

// LoadTables loads all persisted foreign table definitions
func (p *Persister) LoadTables(ctx context.Context, loader func(name string, raw []byte) error) error {
	return p.load(tableKeyPrefix, loader)
}

func (p *Persister) load(prefix string, loader func(name string, raw []byte) error) error {
	if p.kv == nil {
		return nil
	}

	iter := p.kv.NewIterator(&storage.IteratorOptions{
		LowerBound: []byte(prefix),
		UpperBound: []byte(prefix + "\xff"),
	})
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		name := string(iter.Key())[len(prefix):]
		if err := loader(name, iter.Value()); err != nil {
			// Skip the broken entry and continue with the rest.
			continue
		}
	}

	return iter.Error()
}

func serverKey(name string) []byte {
	return []byte(fmt.Sprintf("%s%s", serverKeyPrefix, name))
}

func tableKey(name string) []byte {
	return []byte(fmt.Sprintf("%s%s", tableKeyPrefix, name))
}
