// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	service "github.com/okian/leetboard/internal/app"
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/internal/domain/types"
	"github.com/okian/leetboard/pkg/logger"
)

const defaultMaxLimit = 500

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	DataDependencies
	LeaderboardDependencies
	ViewDependencies
	SheetsDependencies
	HealthDependencies
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	dataHandler        *DataHandler
	healthHandler      *HealthHandler
	sheetsHandler      *SheetsHandler
	leaderboardHandler *LeaderboardHandler
	viewHandler        *ViewHandler

	origins []string
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{
		maxLimit: defaultMaxLimit,
		now:      time.Now,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	errs := &errorWriter{logger: cfg.logger}
	return &Server{
		dataHandler:        NewDataHandler(deps, errs, cfg.now),
		healthHandler:      NewHealthHandler(deps, cfg.now),
		sheetsHandler:      NewSheetsHandler(deps, errs),
		leaderboardHandler: NewLeaderboardHandler(deps, errs, cfg.maxLimit),
		viewHandler:        NewViewHandler(deps, errs),
		origins:            cfg.origins,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/api/data", MetricsMiddleware(s.dataHandler.HandleData, "data"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.dataHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/refresh", MetricsMiddleware(s.dataHandler.HandleRefresh, "refresh"))
	mux.HandleFunc("/api/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/sheets", MetricsMiddleware(s.sheetsHandler.HandleSheets, "sheets"))
	mux.HandleFunc("/api/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/students/{leetcodeId}/trend", MetricsMiddleware(s.leaderboardHandler.HandleTrend, "trend"))
	mux.HandleFunc("/api/distributions", MetricsMiddleware(s.viewHandler.HandleDistributions, "distributions"))
	mux.HandleFunc("/api/contests", MetricsMiddleware(s.viewHandler.HandleContests, "contests"))
	mux.HandleFunc("/api/insights", MetricsMiddleware(s.viewHandler.HandleInsights, "insights"))
	mux.Handle("/metrics", MetricsHandler())
}

// Handler wraps next with the request id and CORS middleware configured for
// this server.
func (s *Server) Handler(next http.Handler) http.Handler {
	return RequestID(CORS(s.origins)(next))
}

// DataDependencies serves the snapshot and its summary.
type DataDependencies interface {
	Data(ctx context.Context) (model.Snapshot, bool, error)
	Stats(ctx context.Context) (model.DerivedStats, error)
	Refresh(ctx context.Context) (model.Snapshot, error)
}

// LeaderboardDependencies ranks students.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, q service.LeaderboardQuery) ([]types.Entry, error)
	StudentTrend(ctx context.Context, leetcodeID string) ([]types.TrendPoint, error)
}

// ViewDependencies computes the chart views.
type ViewDependencies interface {
	Distributions(ctx context.Context) (types.Distributions, error)
	Contests(ctx context.Context, contest string) (types.ContestsView, error)
	Insights(ctx context.Context) (types.Insights, error)
}

// SheetsDependencies describes the configured source.
type SheetsDependencies interface {
	Sheets(ctx context.Context) (types.SheetsView, error)
}

// HealthDependencies reports cache and service state.
type HealthDependencies interface {
	CacheSize() int
	GetStats() map[string]any
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorWriter renders failures and logs the server-side ones.
type errorWriter struct {
	logger logger.Logger
}

// write sends the failure body for err. summary is the human text of the
// failed operation, e.g. "Failed to fetch data".
func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, summary string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		e.logger.Error(r.Context(), summary,
			logger.String("path", r.URL.Path),
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.String("code", code),
			logger.Error(err),
		)
	}
	writeJSON(w, status, errorResponse{Error: summary, Code: code, Message: err.Error()})
}

// allowMethod answers 405 unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Error:   http.StatusText(http.StatusMethodNotAllowed),
		Code:    codeMethodNotAllowed,
		Message: fmt.Sprintf("%s: %s", ErrMethodNotAllowed, r.Method),
	})
	return false
}
