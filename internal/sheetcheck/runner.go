package sheetcheck

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/okian/leetboard/internal/adapters/sheets"
	"github.com/okian/leetboard/internal/domain/model"
	"github.com/okian/leetboard/pkg/logger"
)

// Run checks the spreadsheet metadata, samples the configured tab and, when
// cfg.ServerURL is set, probes the server health endpoint. The returned
// report holds whatever was learned before a failure.
func Run(ctx context.Context, sheet Sheet, cfg Config) (Report, error) {
	start := time.Now()
	if cfg.SampleRows < 1 {
		cfg.SampleRows = DefaultSampleRows
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	rep := Report{
		SpreadsheetID:  sheet.SpreadsheetID(),
		ServiceAccount: sheet.ServiceAccount(),
		SheetName:      sheet.SheetName(),
	}
	if rep.SpreadsheetID == "" {
		return rep, ErrMissingID
	}

	log := logger.Named("sheetcheck")
	log.Info(ctx, "checking spreadsheet metadata", logger.String("spreadsheet_id", rep.SpreadsheetID))
	info, err := sheet.Spreadsheet(ctx)
	if err != nil {
		return rep, fmt.Errorf("spreadsheet metadata: %w", err)
	}
	rep.Title = info.Title
	rep.Sheets = info.Sheets
	if !slices.Contains(info.Sheets, rep.SheetName) {
		return rep, fmt.Errorf("%w: %q (available: %s)", ErrTabNotFound, rep.SheetName, strings.Join(info.Sheets, ", "))
	}

	a1 := sheets.A1Range(rep.SheetName, sampleSpan(cfg.SampleRows))
	log.Info(ctx, "sampling sheet", logger.String("range", a1))
	rows, err := sheet.ReadRange(ctx, a1)
	if err != nil {
		return rep, fmt.Errorf("sample rows: %w", err)
	}
	rep.Rows = rows
	if len(rows.Header()) < model.FirstContestCol {
		return rep, fmt.Errorf("%w: %d < %d", ErrShortHeader, len(rows.Header()), model.FirstContestCol)
	}

	if cfg.ServerURL != "" {
		log.Info(ctx, "probing server", logger.String("url", cfg.ServerURL))
		h, err := probeHealth(ctx, newHTTPClient(cfg.Timeout), cfg.ServerURL)
		if err != nil {
			return rep, err
		}
		rep.Health = &h
	}

	rep.Elapsed = time.Since(start)
	log.Info(ctx, "check completed", logger.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

// sampleSpan is the A1 span covering the first n rows.
func sampleSpan(n int) string {
	return sampleColumns + strconv.Itoa(n)
}
