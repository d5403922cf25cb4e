// Package sql parses the definition statements the wrapper understands:
// CREATE/DROP SERVER and CREATE/DROP FOREIGN TABLE.
package sql

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/guileen/sqlitefdw/options"
)

// StatementType identifies the kind of a parsed definition statement
type StatementType int

const (
	CreateServerStatement StatementType = iota
	DropServerStatement
	CreateForeignTableStatement
	DropForeignTableStatement
)

// Statement holds the structured form of one definition statement
type Statement struct {
	Type    StatementType
	Query   string
	Name    string           // server or foreign table name
	Wrapper string           // FDW name, CREATE SERVER only
	Server  string           // serving server, CREATE FOREIGN TABLE only
	Options []options.Option // OPTIONS (...) list in statement order
}

// DDLParser handles parsing of the wrapper's definition statements
type DDLParser struct{}

// NewDDLParser creates a new DDL parser
func NewDDLParser() *DDLParser {
	return &DDLParser{}
}

// Parse parses one definition statement and returns its structured form
func (p *DDLParser) Parse(query string) (*Statement, error) {
	result, err := pg_query.Parse(query)
	if err != nil {
		return nil, err
	}

	if len(result.Stmts) == 0 {
		return nil, fmt.Errorf("no statements found")
	}

	stmt := result.Stmts[0].Stmt
	parsed := &Statement{
		Query: query,
	}

	switch {
	case stmt.GetCreateForeignServerStmt() != nil:
		parsed.Type = CreateServerStatement
		p.parseCreateServer(stmt.GetCreateForeignServerStmt(), parsed)
	case stmt.GetCreateForeignTableStmt() != nil:
		parsed.Type = CreateForeignTableStatement
		p.parseCreateForeignTable(stmt.GetCreateForeignTableStmt(), parsed)
	case stmt.GetDropStmt() != nil:
		if err := p.parseDrop(stmt.GetDropStmt(), parsed); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported statement type")
	}

	return parsed, nil
}

func (p *DDLParser) parseCreateServer(stmt *pg_query.CreateForeignServerStmt, parsed *Statement) {
	parsed.Name = stmt.GetServername()
	parsed.Wrapper = stmt.GetFdwname()
	parsed.Options = parseOptions(stmt.GetOptions())
}

func (p *DDLParser) parseCreateForeignTable(stmt *pg_query.CreateForeignTableStmt, parsed *Statement) {
	if base := stmt.GetBaseStmt(); base != nil {
		if relation := base.GetRelation(); relation != nil {
			parsed.Name = relation.GetRelname()
		}
	}
	parsed.Server = stmt.GetServername()
	parsed.Options = parseOptions(stmt.GetOptions())
}

func (p *DDLParser) parseDrop(stmt *pg_query.DropStmt, parsed *Statement) error {
	switch stmt.GetRemoveType() {
	case pg_query.ObjectType_OBJECT_FOREIGN_SERVER:
		parsed.Type = DropServerStatement
	case pg_query.ObjectType_OBJECT_FOREIGN_TABLE:
		parsed.Type = DropForeignTableStatement
	default:
		return fmt.Errorf("unsupported statement type")
	}

	objects := stmt.GetObjects()
	if len(objects) == 0 {
		return fmt.Errorf("no object named in drop statement")
	}

	// DROP SERVER names objects as plain strings; DROP FOREIGN TABLE as
	// (possibly qualified) name lists. Either way the last part is the name.
	obj := objects[0]
	if str := obj.GetString_(); str != nil {
		parsed.Name = str.GetSval()
		return nil
	}
	if list := obj.GetList(); list != nil {
		items := list.GetItems()
		if len(items) > 0 {
			if str := items[len(items)-1].GetString_(); str != nil {
				parsed.Name = str.GetSval()
				return nil
			}
		}
	}

	return fmt.Errorf("no object named in drop statement")
}

// parseOptions extracts an OPTIONS (...) DefElem list, preserving
// statement order
func parseOptions(nodes []*pg_query.Node) []options.Option {
	if len(nodes) == 0 {
		return nil
	}

	opts := make([]options.Option, 0, len(nodes))
	for _, node := range nodes {
		defElem := node.GetDefElem()
		if defElem == nil {
			continue
		}

		opt := options.Option{Key: defElem.GetDefname()}
		if arg := defElem.GetArg(); arg != nil {
			if str := arg.GetString_(); str != nil {
				opt.Value = str.GetSval()
			}
		}
		opts = append(opts, opt)
	}
	return opts
}
