// Package options implements option validation and resolution for the
// sqlite foreign data wrapper. Foreign servers carry a "database" option
// pointing at the sqlite file; foreign tables carry a "table" option naming
// the table inside it.
package options

import (
	"strings"

	"github.com/guileen/sqlitefdw/fdwerrors"
)

// ContextKind identifies which catalog object an option belongs to
type ContextKind int

const (
	// ServerContext marks options attached to a foreign server
	ServerContext ContextKind = iota
	// TableContext marks options attached to a foreign table
	TableContext
)

// String returns the human-readable name of the context
func (c ContextKind) String() string {
	switch c {
	case ServerContext:
		return "server"
	case TableContext:
		return "foreign table"
	default:
		return "unknown"
	}
}

// Option is a single key/value pair from a definition statement. Order is
// preserved from the statement; duplicate detection depends on it.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OptionDatabase is the server-level option naming the sqlite database file
const OptionDatabase = "database"

// OptionTable is the table-level option naming the sqlite table
const OptionTable = "table"

// validOption describes one entry of the option whitelist
type validOption struct {
	name    string
	context ContextKind
}

// validOptions is the fixed whitelist of recognized options. Built once,
// never mutated.
var validOptions = []validOption{
	// Connection options
	{OptionDatabase, ServerContext},

	// Table options
	{OptionTable, TableContext},
}

// IsValid reports whether the option name is recognized for the given context
func IsValid(name string, context ContextKind) bool {
	for _, opt := range validOptions {
		if opt.context == context && opt.name == name {
			return true
		}
	}
	return false
}

// validNamesFor returns the comma-joined list of option names valid in the
// given context, in whitelist order. Used for error hints.
func validNamesFor(context ContextKind) string {
	names := make([]string, 0, len(validOptions))
	for _, opt := range validOptions {
		if opt.context == context {
			names = append(names, opt.name)
		}
	}
	if len(names) == 0 {
		return "<none>"
	}
	return strings.Join(names, ", ")
}

// ValidateAll checks a single definition-time options list against the
// whitelist for the given context. It fails on the first unknown option,
// with a hint listing the valid names, and on the first repeated
// database/table option. Runs at definition time, independently of the
// merge-time duplicate check in Resolve.
func ValidateAll(opts []Option, context ContextKind) error {
	// Seen-tracking is by occurrence, not by value: an empty-valued option
	// still counts as a first occurrence, so a later repeat is redundant.
	var databaseSeen, tableSeen bool

	for _, opt := range opts {
		if !IsValid(opt.Key, context) {
			return fdwerrors.NewWithHint(
				fdwerrors.CodeUnknownOption,
				"Valid options in this context are: "+validNamesFor(context),
				"invalid option %q", opt.Key,
			)
		}

		switch opt.Key {
		case OptionDatabase:
			if databaseSeen {
				return fdwerrors.New(fdwerrors.CodeDuplicateOption,
					"redundant options: database (%s)", opt.Value)
			}
			databaseSeen = true
		case OptionTable:
			if tableSeen {
				return fdwerrors.New(fdwerrors.CodeDuplicateOption,
					"redundant options: table (%s)", opt.Value)
			}
			tableSeen = true
		}
	}

	return nil
}
