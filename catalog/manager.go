package catalog

import (
	"context"
	"encoding/json"

	"github.com/guileen/sqlitefdw/catalog/internal"
	"github.com/guileen/sqlitefdw/catalog/persistence"
	"github.com/guileen/sqlitefdw/fdwerrors"
	"github.com/guileen/sqlitefdw/logger"
	"github.com/guileen/sqlitefdw/options"
	"github.com/guileen/sqlitefdw/storage"
)

type fdwManager struct {
	servers   *internal.DefinitionCache[*ServerDefinition]
	tables    *internal.DefinitionCache[*TableDefinition]
	persister *persistence.Persister
}

// NewManager creates a memory-only catalog manager
func NewManager() Manager {
	return NewManagerWithKV(nil)
}

// NewManagerWithKV creates a catalog manager persisting definitions to the
// given KV store
func NewManagerWithKV(kv storage.KV) Manager {
	return &fdwManager{
		servers:   internal.NewDefinitionCache[*ServerDefinition](),
		tables:    internal.NewDefinitionCache[*TableDefinition](),
		persister: persistence.NewPersister(kv),
	}
}

func (m *fdwManager) CreateServer(ctx context.Context, def *ServerDefinition) error {
	if err := options.ValidateAll(def.Options, options.ServerContext); err != nil {
		return err
	}

	if m.servers.Exists(def.Name) {
		return fdwerrors.Wrap(fdwerrors.ErrServerAlreadyExists,
			fdwerrors.CodeServerAlreadyExists, "server %q", def.Name)
	}

	if def.Wrapper == "" {
		def.Wrapper = WrapperName
	}

	if err := m.persister.PersistServer(ctx, def.Name, def); err != nil {
		return err
	}

	m.servers.Set(def.Name, def)
	logger.InfoContext(ctx, "foreign server created", "server", def.Name)
	return nil
}

func (m *fdwManager) DropServer(ctx context.Context, name string) error {
	if !m.servers.Exists(name) {
		return fdwerrors.Wrap(fdwerrors.ErrServerNotFound,
			fdwerrors.CodeServerNotFound, "server %q", name)
	}

	if err := m.persister.DeleteServer(ctx, name); err != nil {
		return err
	}

	m.servers.Delete(name)
	logger.InfoContext(ctx, "foreign server dropped", "server", name)
	return nil
}

func (m *fdwManager) GetServer(ctx context.Context, name string) (*ServerDefinition, error) {
	def, ok := m.servers.Get(name)
	if !ok {
		return nil, fdwerrors.Wrap(fdwerrors.ErrServerNotFound,
			fdwerrors.CodeServerNotFound, "server %q", name)
	}
	return def, nil
}

func (m *fdwManager) ListServers(ctx context.Context) ([]*ServerDefinition, error) {
	var defs []*ServerDefinition
	m.servers.Range(func(name string, def *ServerDefinition) bool {
		defs = append(defs, def)
		return true
	})
	return defs, nil
}

func (m *fdwManager) CreateForeignTable(ctx context.Context, def *TableDefinition) error {
	if err := options.ValidateAll(def.Options, options.TableContext); err != nil {
		return err
	}

	if !m.servers.Exists(def.Server) {
		return fdwerrors.Wrap(fdwerrors.ErrServerNotFound,
			fdwerrors.CodeServerNotFound, "server %q", def.Server)
	}

	if m.tables.Exists(def.Name) {
		return fdwerrors.Wrap(fdwerrors.ErrTableAlreadyExists,
			fdwerrors.CodeTableAlreadyExists, "foreign table %q", def.Name)
	}

	if err := m.persister.PersistTable(ctx, def.Name, def); err != nil {
		return err
	}

	m.tables.Set(def.Name, def)
	logger.InfoContext(ctx, "foreign table created", "table", def.Name, "server", def.Server)
	return nil
}

func (m *fdwManager) DropForeignTable(ctx context.Context, name string) error {
	if !m.tables.Exists(name) {
		return fdwerrors.Wrap(fdwerrors.ErrTableNotFound,
			fdwerrors.CodeTableNotFound, "foreign table %q", name)
	}

	if err := m.persister.DeleteTable(ctx, name); err != nil {
		return err
	}

	m.tables.Delete(name)
	logger.InfoContext(ctx, "foreign table dropped", "table", name)
	return nil
}

func (m *fdwManager) GetForeignTable(ctx context.Context, name string) (*TableDefinition, error) {
	def, ok := m.tables.Get(name)
	if !ok {
		return nil, fdwerrors.Wrap(fdwerrors.ErrTableNotFound,
			fdwerrors.CodeTableNotFound, "foreign table %q", name)
	}
	return def, nil
}

func (m *fdwManager) ListForeignTables(ctx context.Context) ([]*TableDefinition, error) {
	var defs []*TableDefinition
	m.tables.Range(func(name string, def *TableDefinition) bool {
		defs = append(defs, def)
		return true
	})
	return defs, nil
}

func (m *fdwManager) Load(ctx context.Context) error {
	err := m.persister.LoadServers(ctx, func(name string, raw []byte) error {
		var def ServerDefinition
		if err := json.Unmarshal(raw, &def); err != nil {
			logger.Warn("skipping unreadable server definition", "server", name, "error", err)
			return err
		}
		m.servers.Set(name, &def)
		return nil
	})
	if err != nil {
		return err
	}

	return m.persister.LoadTables(ctx, func(name string, raw []byte) error {
		var def TableDefinition
		if err := json.Unmarshal(raw, &def); err != nil {
			logger.Warn("skipping unreadable table definition", "table", name, "error", err)
			return err
		}
		m.tables.Set(name, &def)
		return nil
	})
}
