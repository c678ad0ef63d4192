package api

import "net/http"

// SheetsHandler lists the tabs of the configured spreadsheet.
type SheetsHandler struct {
	deps SheetsDependencies
	errs *errorWriter
}

// NewSheetsHandler creates a new sheets handler.
func NewSheetsHandler(deps SheetsDependencies, errs *errorWriter) *SheetsHandler {
	return &SheetsHandler{deps: deps, errs: errs}
}

// HandleSheets handles GET /api/sheets.
func (h *SheetsHandler) HandleSheets(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	view, err := h.deps.Sheets(r.Context())
	if err != nil {
		h.errs.write(w, r, "Failed to get sheets", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
