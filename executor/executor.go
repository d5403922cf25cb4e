// Package executor implements the foreign-scan lifecycle the host executor
// drives: begin opens the connection and builds the query, iterate lazily
// prepares a cursor and pulls one row per call, rescan is a stub, end
// releases the cursor and then the connection.
package executor

import (
	"context"

	"github.com/google/uuid"

	"github.com/guileen/sqlitefdw/engine"
	"github.com/guileen/sqlitefdw/fdwerrors"
	"github.com/guileen/sqlitefdw/logger"
	"github.com/guileen/sqlitefdw/options"
)

// Tuple is one output row: every column of the engine row as text, in
// column order. A NULL column reads as the empty string.
type Tuple []string

// ForeignScan owns the engine connection and cursor for the lifetime of
// one scan. Not safe for concurrent use; one instance per scan.
type ForeignScan struct {
	open engine.Opener

	scanID string
	config options.ScanConfig

	conn   engine.Conn
	cursor engine.Cursor
	query  string
}

// NewForeignScan creates a scan executor that opens connections through
// the given opener
func NewForeignScan(open engine.Opener) *ForeignScan {
	return &ForeignScan{
		open:   open,
		scanID: uuid.NewString(),
	}
}

// BuildQuery builds the scan query for a table name. The name is
// substituted without quoting or escaping; table names needing it are a
// known limitation of this wrapper.
func BuildQuery(tableName string) string {
	return "SELECT * FROM " + tableName
}

// Begin opens the connection to the sqlite database named by the config
// and builds the scan query. The cursor is not prepared here; the first
// Iterate call does that.
func (s *ForeignScan) Begin(ctx context.Context, cfg options.ScanConfig) error {
	ctx = logger.WithScan(ctx, s.scanID, cfg.TableName)
	logger.DebugContext(ctx, "beginning foreign scan", "database", cfg.DatabasePath)

	conn, err := s.open(ctx, cfg.DatabasePath)
	if err != nil {
		logger.ErrorContext(ctx, "sqlite open failed", "database", cfg.DatabasePath, "error", err)
		if conn != nil {
			conn.Close()
		}
		return fdwerrors.Wrap(err, fdwerrors.CodeOpenFailed,
			"can't open sqlite database %s", cfg.DatabasePath)
	}

	s.config = cfg
	s.conn = conn
	s.cursor = nil
	s.query = BuildQuery(cfg.TableName)
	return nil
}

// Iterate returns the next row of the scan, or a nil Tuple when the result
// set is exhausted. The cursor is prepared on the first call.
//
// When prepare fails the connection is left open, matching the historical
// asymmetry with the open-failure path; the cursor stays unset, so a later
// Iterate attempts the prepare again.
func (s *ForeignScan) Iterate(ctx context.Context) (Tuple, error) {
	ctx = logger.WithScan(ctx, s.scanID, s.config.TableName)

	if s.cursor == nil {
		cursor, err := s.conn.Prepare(ctx, s.query)
		if err != nil {
			logger.ErrorContext(ctx, "sqlite prepare failed", "query", s.query, "error", err)
			return nil, fdwerrors.Wrap(err, fdwerrors.CodePrepareFailed,
				"SQL error during prepare")
		}
		s.cursor = cursor
	}

	ok, err := s.cursor.Step()
	if err != nil {
		return nil, err
	}
	if !ok {
		// End of data. The host clears its result slot on a nil tuple.
		return nil, nil
	}

	width := s.cursor.ColumnCount()
	values := make(Tuple, width)
	for i := 0; i < width; i++ {
		values[i] = s.cursor.ColumnText(i)
	}
	return values, nil
}

// Rescan restarts the scan. It is a stub carried over from the original
// wrapper: the cursor is not re-prepared and its position is not reset, so
// a pass over an exhausted cursor sees end-of-data immediately.
func (s *ForeignScan) Rescan() {
}

// End releases the cursor and then the connection, in that order, and
// clears the query. Idempotent; release failures are swallowed.
func (s *ForeignScan) End() {
	if s.cursor != nil {
		if err := s.cursor.Finalize(); err != nil {
			logger.Debug("cursor finalize failed", "scan_id", s.scanID, "error", err)
		}
		s.cursor = nil
	}

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logger.Debug("connection close failed", "scan_id", s.scanID, "error", err)
		}
		s.conn = nil
	}

	s.query = ""
}
