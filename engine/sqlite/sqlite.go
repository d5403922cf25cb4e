// Package sqlite implements the engine boundary on a file-backed sqlite
// database through database/sql and the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/guileen/sqlitefdw/engine"
)

// Open opens the sqlite database file at path read-only. The connection is
// pinged so a bad path fails here rather than at the first query; on ping
// failure the half-open handle is closed before the error is returned.
func Open(ctx context.Context, path string) (engine.Conn, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	return &conn{db: db}, nil
}

// dsn builds the driver DSN for a read-only open. mode=ro keeps a missing
// or unreadable file an open error instead of silently creating an empty
// database.
func dsn(path string) string {
	return "file:" + path + "?mode=ro"
}

type conn struct {
	db *sql.DB
}

func (c *conn) Prepare(ctx context.Context, query string) (engine.Cursor, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}

	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}

	return &cursor{rows: rows, width: len(cols)}, nil
}

func (c *conn) Close() error {
	return c.db.Close()
}

type cursor struct {
	rows    *sql.Rows
	width   int
	current []sql.NullString
}

func (cu *cursor) Step() (bool, error) {
	if !cu.rows.Next() {
		return false, cu.rows.Err()
	}

	values := make([]sql.NullString, cu.width)
	dests := make([]any, cu.width)
	for i := range values {
		dests[i] = &values[i]
	}
	if err := cu.rows.Scan(dests...); err != nil {
		return false, fmt.Errorf("read row: %w", err)
	}

	cu.current = values
	return true, nil
}

func (cu *cursor) ColumnCount() int {
	return cu.width
}

func (cu *cursor) ColumnText(i int) string {
	if cu.current == nil || i < 0 || i >= len(cu.current) {
		return ""
	}
	// NullString reads NULL as the empty string, which is what the host
	// slot-builder expects for missing values.
	return cu.current[i].String
}

func (cu *cursor) Finalize() error {
	return cu.rows.Close()
}
