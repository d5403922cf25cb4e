package options

import (
	"github.com/guileen/sqlitefdw/fdwerrors"
)

// ScanConfig is the resolved per-scan configuration. Immutable once built.
type ScanConfig struct {
	DatabasePath string
	TableName    string
}

// Resolve merges the server-level and table-level option lists, in that
// order, and extracts the database path and table name. A repeated
// database or table option anywhere in the merged sequence is an error.
//
// The final presence check intentionally requires only one of the two
// options to be given: the historical behavior is `!database && !table`,
// not `||`, so a scan config missing either the database or the table
// (but not both) resolves successfully and fails later at the engine.
// Presence means the option occurred, not that its value is non-empty:
// an empty-valued option both satisfies the check and makes any later
// repeat of the same key redundant.
func Resolve(serverOpts, tableOpts []Option) (ScanConfig, error) {
	var cfg ScanConfig
	var databaseSeen, tableSeen bool

	merged := make([]Option, 0, len(serverOpts)+len(tableOpts))
	merged = append(merged, serverOpts...)
	merged = append(merged, tableOpts...)

	for _, opt := range merged {
		switch opt.Key {
		case OptionDatabase:
			if databaseSeen {
				return ScanConfig{}, fdwerrors.New(fdwerrors.CodeDuplicateOption,
					"redundant options: database (%s)", opt.Value)
			}
			databaseSeen = true
			cfg.DatabasePath = opt.Value
		case OptionTable:
			if tableSeen {
				return ScanConfig{}, fdwerrors.New(fdwerrors.CodeDuplicateOption,
					"redundant options: table (%s)", opt.Value)
			}
			tableSeen = true
			cfg.TableName = opt.Value
		}
	}

	if !databaseSeen && !tableSeen {
		return ScanConfig{}, fdwerrors.New(fdwerrors.CodeMissingRequired,
			"a database and a table must be specified")
	}

	return cfg, nil
}
