package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guileen/sqlitefdw/catalog"
	"github.com/guileen/sqlitefdw/engine"
	"github.com/guileen/sqlitefdw/executor"
	"github.com/guileen/sqlitefdw/fdwerrors"
	"github.com/guileen/sqlitefdw/options"
	"github.com/guileen/sqlitefdw/planner"
	fdwsql "github.com/guileen/sqlitefdw/protocol/sql"
)

// RESTHandler exposes the definition and scan surface over HTTP. It stands
// in for the host executor: the scan endpoint drives the full
// begin/iterate/end lifecycle.
type RESTHandler struct {
	mgr    catalog.Manager
	runner *fdwsql.Runner
	open   engine.Opener
}

func NewRESTHandler(mgr catalog.Manager, open engine.Opener) *RESTHandler {
	return &RESTHandler{
		mgr:    mgr,
		runner: fdwsql.NewRunner(mgr),
		open:   open,
	}
}

func (h *RESTHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/ddl", h.RunDDL)
	r.Get("/api/servers", h.ListServers)
	r.Get("/api/tables", h.ListTables)
	r.Route("/api/tables/{table}", func(r chi.Router) {
		r.Get("/plan", h.PlanScan)
		r.Get("/scan", h.ScanTable)
	})
}

type DDLRequest struct {
	Query string `json:"query"`
}

type PlanResponse struct {
	Path        string  `json:"path"`
	Table       string  `json:"table"`
	Rows        float64 `json:"rows"`
	StartupCost float64 `json:"startup_cost"`
	TotalCost   float64 `json:"total_cost"`
}

type ScanResponse struct {
	Table string     `json:"table"`
	Rows  [][]string `json:"rows"`
	Count int        `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func (h *RESTHandler) RunDDL(w http.ResponseWriter, r *http.Request) {
	var req DDLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.runner.Run(r.Context(), req.Query); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *RESTHandler) ListServers(w http.ResponseWriter, r *http.Request) {
	servers, err := h.mgr.ListServers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if servers == nil {
		servers = []*catalog.ServerDefinition{}
	}
	writeJSON(w, http.StatusOK, servers)
}

func (h *RESTHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.mgr.ListForeignTables(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if tables == nil {
		tables = []*catalog.TableDefinition{}
	}
	writeJSON(w, http.StatusOK, tables)
}

func (h *RESTHandler) PlanScan(w http.ResponseWriter, r *http.Request) {
	tableName := chi.URLParam(r, "table")

	cfg, err := h.resolve(r, tableName)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	path := planner.BuildScanPath(cfg)
	writeJSON(w, http.StatusOK, PlanResponse{
		Path:        path.ID.String(),
		Table:       path.Table,
		Rows:        path.Rows,
		StartupCost: path.Cost.StartupCost,
		TotalCost:   path.Cost.TotalCost,
	})
}

func (h *RESTHandler) ScanTable(w http.ResponseWriter, r *http.Request) {
	tableName := chi.URLParam(r, "table")
	ctx := r.Context()

	cfg, err := h.resolve(r, tableName)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	// The planner estimates run before the scan path is taken, mirroring
	// the host's calling convention.
	path := planner.BuildScanPath(cfg)

	scan := executor.NewForeignScan(h.open)
	if err := scan.Begin(ctx, path.Config); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	defer scan.End()

	rows := make([][]string, 0)
	for {
		tuple, err := scan.Iterate(ctx)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		if tuple == nil {
			break
		}
		rows = append(rows, tuple)
	}

	writeJSON(w, http.StatusOK, ScanResponse{
		Table: tableName,
		Rows:  rows,
		Count: len(rows),
	})
}

// resolve looks up the foreign table and its server and merges their
// options into a scan config
func (h *RESTHandler) resolve(r *http.Request, tableName string) (options.ScanConfig, error) {
	ctx := r.Context()

	tableDef, err := h.mgr.GetForeignTable(ctx, tableName)
	if err != nil {
		return options.ScanConfig{}, err
	}

	serverDef, err := h.mgr.GetServer(ctx, tableDef.Server)
	if err != nil {
		return options.ScanConfig{}, err
	}

	return options.Resolve(serverDef.Options, tableDef.Options)
}

func statusFor(err error) int {
	var fdwErr *fdwerrors.Error
	if !errors.As(err, &fdwErr) {
		return http.StatusBadRequest
	}

	switch fdwErr.Code() {
	case fdwerrors.CodeServerNotFound, fdwerrors.CodeTableNotFound:
		return http.StatusNotFound
	case fdwerrors.CodeOpenFailed, fdwerrors.CodePrepareFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{
		Error: err.Error(),
		Hint:  fdwerrors.HintOf(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
