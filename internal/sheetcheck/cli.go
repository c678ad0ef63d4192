package sheetcheck

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"google.golang.org/api/googleapi"
)

// Print writes a human-readable summary of rep.
func Print(w io.Writer, rep Report, verbose bool) {
	fmt.Fprintf(w, "Spreadsheet: %s (%s)\n", rep.Title, rep.SpreadsheetID)
	if rep.ServiceAccount != "" {
		fmt.Fprintf(w, "Service account: %s\n", rep.ServiceAccount)
	}
	fmt.Fprintf(w, "Available sheets (%d):\n", len(rep.Sheets))
	for _, s := range rep.Sheets {
		marker := " "
		if s == rep.SheetName {
			marker = "*"
		}
		fmt.Fprintf(w, "  %s %s\n", marker, s)
	}

	headers := rep.Headers()
	fmt.Fprintf(w, "Headers: %s\n", strings.Join(headers, " | "))
	fmt.Fprintf(w, "Column count: %s\n", humanize.Comma(int64(len(headers))))
	if len(rep.Rows) > 1 {
		fmt.Fprintf(w, "Sample row: %s\n", strings.Join(rep.Rows[1], " | "))
	}
	if verbose {
		for i, row := range rep.Rows[min(2, len(rep.Rows)):] {
			fmt.Fprintf(w, "%s row: %s\n", humanize.Ordinal(i+3), strings.Join(row, " | "))
		}
	}
	fmt.Fprintf(w, "Data rows sampled: %d\n", max(0, len(rep.Rows)-1))

	if rep.Health != nil {
		fmt.Fprintf(w, "Server: %s, cache size %d, clock %s\n",
			rep.Health.Status, rep.Health.CacheSize, humanize.Time(rep.Health.Timestamp))
	}
	fmt.Fprintf(w, "All checks passed in %s\n", rep.Elapsed.Round(time.Millisecond))
}

// PrintFailure explains err and what to do about it.
func PrintFailure(w io.Writer, rep Report, err error) {
	fmt.Fprintf(w, "Check failed: %v\n", err)

	var gerr *googleapi.Error
	switch {
	case errors.Is(err, ErrMissingID):
		fmt.Fprintln(w, "Set SPREADSHEET_ID or LEETBOARD_SPREADSHEET_ID.")
	case errors.Is(err, ErrTabNotFound):
		fmt.Fprintf(w, "The tab %q does not exist. Set SHEET_NAME to one of:\n", rep.SheetName)
		for _, s := range rep.Sheets {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	case errors.As(err, &gerr) && (gerr.Code == http.StatusForbidden || gerr.Code == http.StatusNotFound):
		account := rep.ServiceAccount
		if account == "" {
			account = "the service account in your credentials"
		}
		fmt.Fprintf(w, "Share the spreadsheet with %s as Viewer.\n", account)
	case errors.Is(err, ErrUnhealthy):
		fmt.Fprintln(w, "The sheet is fine; check that the server is running and reachable.")
	}
}

// ShowHelp prints usage information for the sheet check tool.
func ShowHelp(w io.Writer) {
	fmt.Fprint(w, `Leetboard Sheet Check
=====================

Verifies that the configured spreadsheet is readable with the configured
credentials and prints its tabs, headers and a sample row.

Configuration is read like the server reads it (.env, LEETBOARD_CONFIG,
legacy variables such as SPREADSHEET_ID and SHEET_NAME, LEETBOARD_* env).

Usage:
  go run ./cmd/sheetcheck [options]

Options:
  -rows int
        Rows to sample, header included (default 3)
  -server string
        Base URL of a running server to probe, e.g. http://localhost:3001
  -timeout duration
        HTTP timeout for the server probe (default 10s)
  -verbose
        Print every sampled row
  -help
        Show this help message
`)
}
