package api

import "net/http"

// ViewHandler serves the chart views derived from the snapshot.
type ViewHandler struct {
	deps ViewDependencies
	errs *errorWriter
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps ViewDependencies, errs *errorWriter) *ViewHandler {
	return &ViewHandler{deps: deps, errs: errs}
}

// HandleDistributions handles GET /api/distributions.
func (h *ViewHandler) HandleDistributions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Distributions(r.Context())
	if err != nil {
		h.errs.write(w, r, "Failed to fetch distributions", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleContests handles GET /api/contests?contest=.
func (h *ViewHandler) HandleContests(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Contests(r.Context(), r.URL.Query().Get("contest"))
	if err != nil {
		h.errs.write(w, r, "Failed to fetch contests", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleInsights handles GET /api/insights.
func (h *ViewHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Insights(r.Context())
	if err != nil {
		h.errs.write(w, r, "Failed to fetch insights", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
