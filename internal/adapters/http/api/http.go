// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/gridiron/internal/app"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/editor"
	"github.com/okian/gridiron/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Editor resolves a builder kind ("players", "teams") to its editor.
	Editor(kind string) (*editor.Editor, error)

	// Pool returns the add-entry candidate pool for a builder kind.
	Pool(kind string) ([]model.Entity, error)
}

// Server wires HTTP routes for the business API. The /healthz route
// doubles as the metrics endpoint, serving the service's own registry
// so scrapers and liveness probes share one URL.
type Server struct {
	healthz        http.Handler
	statsHandler   *StatsHandler
	builderHandler *BuilderHandler
	savesHandler   *SavesHandler
	exportHandler  *ExportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthz:        promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
		statsHandler:   NewStatsHandler(statsProvider),
		builderHandler: NewBuilderHandler(deps),
		savesHandler:   NewSavesHandler(deps),
		exportHandler:  NewExportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthz.ServeHTTP, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /builders/{kind}", MetricsMiddleware(s.builderHandler.HandleGet, "builder_get"))
	mux.HandleFunc("GET /builders/{kind}/pool", MetricsMiddleware(s.builderHandler.HandlePool, "builder_pool"))
	mux.HandleFunc("POST /builders/{kind}/move", MetricsMiddleware(s.builderHandler.HandleMove, "builder_move"))
	mux.HandleFunc("POST /builders/{kind}/rank", MetricsMiddleware(s.builderHandler.HandleRank, "builder_rank"))
	mux.HandleFunc("POST /builders/{kind}/entries", MetricsMiddleware(s.builderHandler.HandleAdd, "builder_add"))
	mux.HandleFunc("DELETE /builders/{kind}/entries/{idx}", MetricsMiddleware(s.builderHandler.HandleRemove, "builder_remove"))
	mux.HandleFunc("POST /builders/{kind}/reset", MetricsMiddleware(s.builderHandler.HandleReset, "builder_reset"))
	mux.HandleFunc("POST /builders/{kind}/undo", MetricsMiddleware(s.builderHandler.HandleUndo, "builder_undo"))
	mux.HandleFunc("POST /builders/{kind}/redo", MetricsMiddleware(s.builderHandler.HandleRedo, "builder_redo"))

	mux.HandleFunc("GET /builders/{kind}/saves", MetricsMiddleware(s.savesHandler.HandleList, "saves_list"))
	mux.HandleFunc("POST /builders/{kind}/saves", MetricsMiddleware(s.savesHandler.HandleCreate, "saves_create"))
	mux.HandleFunc("DELETE /builders/{kind}/saves/{idx}", MetricsMiddleware(s.savesHandler.HandleDelete, "saves_delete"))
	mux.HandleFunc("POST /builders/{kind}/saves/{idx}/load", MetricsMiddleware(s.savesHandler.HandleLoad, "saves_load"))

	mux.HandleFunc("POST /builders/{kind}/export", MetricsMiddleware(s.exportHandler.HandleExport, "export"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEditorError maps domain sentinels onto HTTP statuses. Anything
// unmapped is a 500.
func writeEditorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownBuilder):
		writeError(w, http.StatusNotFound, "unknown_builder", err)
	case errors.Is(err, editor.ErrNotLoaded),
		errors.Is(err, editor.ErrLoadInProgress):
		writeError(w, http.StatusServiceUnavailable, "not_loaded", err)
	case errors.Is(err, editor.ErrEmptyName),
		errors.Is(err, editor.ErrNameTooLong),
		errors.Is(err, editor.ErrBadExportSize):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
