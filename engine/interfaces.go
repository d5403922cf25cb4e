// Package engine defines the embedded-engine boundary the scan executor
// drives: open a connection, prepare a cursor, step it row by row, read
// columns as text, release in reverse order.
package engine

import (
	"context"
)

// Conn is an owned connection to one embedded database file
type Conn interface {
	// Prepare compiles the query and returns a live cursor over its rows
	Prepare(ctx context.Context, query string) (Cursor, error)

	// Close releases the connection. Safe to call once; the owner must
	// finalize any live cursor first.
	Close() error
}

// Cursor is a live, stateful handle over one result set, advanced one row
// at a time
type Cursor interface {
	// Step advances to the next row. It returns false with a nil error
	// when the result set is exhausted.
	Step() (bool, error)

	// ColumnCount returns the width of the result set
	ColumnCount() int

	// ColumnText returns column i of the current row as text. NULL reads
	// as the empty string.
	ColumnText(i int) string

	// Finalize releases the cursor
	Finalize() error
}

// Opener opens a connection to the database file at path
type Opener func(ctx context.Context, path string) (Conn, error)
