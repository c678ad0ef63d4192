package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/okian/leetboard/internal/domain/model"
)

// DataHandler serves the snapshot, its summary and manual refreshes.
type DataHandler struct {
	deps DataDependencies
	errs *errorWriter
	now  func() time.Time
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps DataDependencies, errs *errorWriter, now func() time.Time) *DataHandler {
	return &DataHandler{deps: deps, errs: errs, now: now}
}

type dataResponse struct {
	model.Snapshot
	FromCache           bool   `json:"fromCache"`
	LastUpdatedRelative string `json:"lastUpdatedRelative"`
}

type refreshResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// HandleData handles GET /api/data.
func (h *DataHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	snap, fromCache, err := h.deps.Data(r.Context())
	if err != nil {
		h.errs.write(w, r, "Failed to fetch data", err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{
		Snapshot:            snap,
		FromCache:           fromCache,
		LastUpdatedRelative: humanize.RelTime(snap.LastUpdated, h.now(), "ago", "from now"),
	})
}

// HandleStats handles GET /api/stats.
func (h *DataHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	stats, err := h.deps.Stats(r.Context())
	if err != nil {
		h.errs.write(w, r, "Failed to fetch statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleRefresh handles POST /api/refresh. The fetch outlives a client that
// disconnects, so the request context only contributes its values.
func (h *DataHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	snap, err := h.deps.Refresh(context.WithoutCancel(r.Context()))
	if err != nil {
		h.errs.write(w, r, "Failed to refresh cache", err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{
		Success:     true,
		Message:     "Cache refreshed successfully",
		LastUpdated: snap.LastUpdated,
	})
}
