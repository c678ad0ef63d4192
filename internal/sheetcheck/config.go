// Package sheetcheck verifies that the configured spreadsheet is reachable
// and shaped the way the dashboard expects, and optionally that a running
// server answers its health probe.
package sheetcheck

import (
	"context"
	"time"

	"github.com/okian/leetboard/internal/domain/model"
)

// Config holds configuration for one check run.
type Config struct {
	SampleRows int           // Rows read from the top of the tab, header included
	ServerURL  string        // Base URL of a running server; empty skips the probe
	Timeout    time.Duration // HTTP timeout for the probe
	Verbose    bool          // Print every sampled row
}

// Sheet is the subset of the sheets client the check drives.
type Sheet interface {
	SpreadsheetID() string
	SheetName() string
	ServiceAccount() string
	Spreadsheet(ctx context.Context) (model.SpreadsheetInfo, error)
	ReadRange(ctx context.Context, a1 string) (model.RawSheet, error)
}

// Report is what a successful check found.
type Report struct {
	SpreadsheetID  string
	ServiceAccount string
	Title          string
	Sheets         []string
	SheetName      string
	Rows           model.RawSheet
	Health         *Health
	Elapsed        time.Duration
}

// Headers returns the header row of the sample.
func (r Report) Headers() []string { return r.Rows.Header() }

// Health mirrors the server health response.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	CacheSize int       `json:"cacheSize"`
}
