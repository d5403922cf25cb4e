package catalog

import (
	"context"

	"github.com/guileen/sqlitefdw/options"
)

// WrapperName is the foreign data wrapper name served by this module
const WrapperName = "sqlite_fdw"

// ServerDefinition describes a foreign server: a named handle for one
// sqlite database file, carried in its options.
type ServerDefinition struct {
	Name    string           `json:"name"`
	Wrapper string           `json:"wrapper"`
	Options []options.Option `json:"options,omitempty"`
}

// TableDefinition describes a foreign table bound to a server. The sqlite
// table it maps to is carried in its options.
type TableDefinition struct {
	Name    string           `json:"name"`
	Server  string           `json:"server"`
	Options []options.Option `json:"options,omitempty"`
}

// Manager manages foreign server and foreign table definitions
type Manager interface {
	CreateServer(ctx context.Context, def *ServerDefinition) error
	DropServer(ctx context.Context, name string) error
	GetServer(ctx context.Context, name string) (*ServerDefinition, error)
	ListServers(ctx context.Context) ([]*ServerDefinition, error)

	CreateForeignTable(ctx context.Context, def *TableDefinition) error
	DropForeignTable(ctx context.Context, name string) error
	GetForeignTable(ctx context.Context, name string) (*TableDefinition, error)
	ListForeignTables(ctx context.Context) ([]*TableDefinition, error)

	// Load restores persisted definitions from storage
	Load(ctx context.Context) error
}
