package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/guileen/sqlitefdw/catalog"
	"github.com/guileen/sqlitefdw/engine/sqlite"
)

func setupTestRouter(t *testing.T) (chi.Router, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "people.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE people (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO people VALUES (1, 'ada'), (2, 'grace')`)
	require.NoError(t, err)

	handler := NewRESTHandler(catalog.NewManager(), sqlite.Open)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return router, dbPath
}

func runDDL(t *testing.T, router chi.Router, query string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(DDLRequest{Query: query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/ddl", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func defineTable(t *testing.T, router chi.Router, dbPath string) {
	t.Helper()

	rec := runDDL(t, router, fmt.Sprintf(
		`CREATE SERVER people_srv FOREIGN DATA WRAPPER sqlite_fdw OPTIONS (database '%s')`, dbPath))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = runDDL(t, router,
		`CREATE FOREIGN TABLE people (id int, name text) SERVER people_srv OPTIONS ("table" 'people')`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRESTHandler_ScanRoundTrip(t *testing.T) {
	router, dbPath := setupTestRouter(t)
	defineTable(t, router, dbPath)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/people/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "people", resp.Table)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, [][]string{{"1", "ada"}, {"2", "grace"}}, resp.Rows)
}

func TestRESTHandler_PlanEstimatesAreZero(t *testing.T) {
	router, dbPath := setupTestRouter(t)
	defineTable(t, router, dbPath)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/people/plan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "people", resp.Table)
	assert.Zero(t, resp.Rows)
	assert.Zero(t, resp.StartupCost)
	assert.Zero(t, resp.TotalCost)
	assert.NotEmpty(t, resp.Path)
}

func TestRESTHandler_UnknownTable(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/nope/scan", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRESTHandler_DDLUnknownOptionHint(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := runDDL(t, router,
		`CREATE SERVER srv FOREIGN DATA WRAPPER sqlite_fdw OPTIONS (host 'localhost')`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "invalid option")
	assert.Equal(t, "Valid options in this context are: database", resp.Hint)
}

func TestRESTHandler_ListDefinitions(t *testing.T) {
	router, dbPath := setupTestRouter(t)
	defineTable(t, router, dbPath)

	req := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var servers []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &servers))
	require.Len(t, servers, 1)
	assert.Equal(t, "people_srv", servers[0]["name"])

	req = httptest.NewRequest(http.MethodGet, "/api/tables", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var tables []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "people", tables[0]["name"])
}

func TestRESTHandler_ScanMissingDatabase(t *testing.T) {
	router, _ := setupTestRouter(t)

	rec := runDDL(t, router, fmt.Sprintf(
		`CREATE SERVER bad_srv FOREIGN DATA WRAPPER sqlite_fdw OPTIONS (database '%s')`,
		filepath.Join(t.TempDir(), "missing.db")))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = runDDL(t, router,
		`CREATE FOREIGN TABLE ghosts (id int) SERVER bad_srv OPTIONS ("table" 'ghosts')`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/tables/ghosts/scan", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
