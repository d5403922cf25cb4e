package sql

import (
	"context"
	"fmt"

	"github.com/guileen/sqlitefdw/catalog"
)

// Runner applies parsed definition statements to the catalog
type Runner struct {
	parser *DDLParser
	mgr    catalog.Manager
}

// NewRunner creates a runner over the given catalog manager
func NewRunner(mgr catalog.Manager) *Runner {
	return &Runner{
		parser: NewDDLParser(),
		mgr:    mgr,
	}
}

// Run parses and applies one definition statement. Option validation runs
// inside the catalog manager with the context matching the statement kind.
func (r *Runner) Run(ctx context.Context, query string) error {
	stmt, err := r.parser.Parse(query)
	if err != nil {
		return err
	}

	switch stmt.Type {
	case CreateServerStatement:
		if stmt.Wrapper != catalog.WrapperName {
			return fmt.Errorf("unsupported foreign data wrapper %q", stmt.Wrapper)
		}
		return r.mgr.CreateServer(ctx, &catalog.ServerDefinition{
			Name:    stmt.Name,
			Wrapper: stmt.Wrapper,
			Options: stmt.Options,
		})
	case DropServerStatement:
		return r.mgr.DropServer(ctx, stmt.Name)
	case CreateForeignTableStatement:
		return r.mgr.CreateForeignTable(ctx, &catalog.TableDefinition{
			Name:    stmt.Name,
			Server:  stmt.Server,
			Options: stmt.Options,
		})
	case DropForeignTableStatement:
		return r.mgr.DropForeignTable(ctx, stmt.Name)
	default:
		return fmt.Errorf("unsupported statement type")
	}
}
