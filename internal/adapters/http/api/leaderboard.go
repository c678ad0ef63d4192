package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	service "github.com/okian/leetboard/internal/app"
)

// LeaderboardHandler handles leaderboard and trend requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	errs     *errorWriter
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, errs *errorWriter, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		errs:     errs,
		maxLimit: maxLimit,
	}
}

// HandleLeaderboard handles GET /api/leaderboard?contest=&q=&limit=.
// Without contest the board ranks by rating; limit is optional.
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	const summary = "Failed to build leaderboard"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.errs.write(w, r, summary, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			h.errs.write(w, r, summary, fmt.Errorf("%w: limit exceeds %d", ErrBadRequest, h.maxLimit))
			return
		}
		limit = n
	}
	entries, err := h.deps.Leaderboard(r.Context(), service.LeaderboardQuery{
		Contest: q.Get("contest"),
		Term:    q.Get("q"),
		Limit:   limit,
	})
	if err != nil {
		h.errs.write(w, r, summary, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandleTrend handles GET /api/students/{leetcodeId}/trend.
func (h *LeaderboardHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	const summary = "Failed to fetch student trend"
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimSpace(r.PathValue("leetcodeId"))
	if id == "" {
		h.errs.write(w, r, summary, fmt.Errorf("%w: missing leetcodeId", ErrBadRequest))
		return
	}
	points, err := h.deps.StudentTrend(r.Context(), id)
	if err != nil {
		h.errs.write(w, r, summary, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
