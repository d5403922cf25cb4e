package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guileen/sqlitefdw/options"
)

func TestParse_CreateServer(t *testing.T) {
	parser := NewDDLParser()

	stmt, err := parser.Parse(
		`CREATE SERVER people_srv FOREIGN DATA WRAPPER sqlite_fdw OPTIONS (database '/tmp/people.db')`)
	require.NoError(t, err)

	assert.Equal(t, CreateServerStatement, stmt.Type)
	assert.Equal(t, "people_srv", stmt.Name)
	assert.Equal(t, "sqlite_fdw", stmt.Wrapper)
	assert.Equal(t, []options.Option{{Key: "database", Value: "/tmp/people.db"}}, stmt.Options)
}

func TestParse_CreateForeignTable(t *testing.T) {
	parser := NewDDLParser()

	stmt, err := parser.Parse(
		`CREATE FOREIGN TABLE people (id int, name text) SERVER people_srv OPTIONS ("table" 'people')`)
	require.NoError(t, err)

	assert.Equal(t, CreateForeignTableStatement, stmt.Type)
	assert.Equal(t, "people", stmt.Name)
	assert.Equal(t, "people_srv", stmt.Server)
	assert.Equal(t, []options.Option{{Key: "table", Value: "people"}}, stmt.Options)
}

func TestParse_OptionsPreserveOrder(t *testing.T) {
	parser := NewDDLParser()

	stmt, err := parser.Parse(
		`CREATE SERVER srv FOREIGN DATA WRAPPER sqlite_fdw OPTIONS (database '/tmp/a.db', database '/tmp/b.db')`)
	require.NoError(t, err)

	// The parser preserves duplicates; rejecting them is the validator's
	// job at definition time.
	require.Len(t, stmt.Options, 2)
	assert.Equal(t, "/tmp/a.db", stmt.Options[0].Value)
	assert.Equal(t, "/tmp/b.db", stmt.Options[1].Value)
}

func TestParse_DropServer(t *testing.T) {
	parser := NewDDLParser()

	stmt, err := parser.Parse(`DROP SERVER people_srv`)
	require.NoError(t, err)
	assert.Equal(t, DropServerStatement, stmt.Type)
	assert.Equal(t, "people_srv", stmt.Name)
}

func TestParse_DropForeignTable(t *testing.T) {
	parser := NewDDLParser()

	stmt, err := parser.Parse(`DROP FOREIGN TABLE people`)
	require.NoError(t, err)
	assert.Equal(t, DropForeignTableStatement, stmt.Type)
	assert.Equal(t, "people", stmt.Name)
}

func TestParse_Unsupported(t *testing.T) {
	parser := NewDDLParser()

	_, err := parser.Parse(`SELECT 1`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported statement type")

	_, err = parser.Parse(`DROP TABLE people`)
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	parser := NewDDLParser()

	_, err := parser.Parse(`CREATE SERVER`)
	require.Error(t, err)
}
