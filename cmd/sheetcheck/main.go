// Command sheetcheck verifies the dashboard's spreadsheet connection.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/leetboard/internal/adapters/sheets"
	"github.com/okian/leetboard/internal/config"
	"github.com/okian/leetboard/internal/sheetcheck"
	"github.com/okian/leetboard/pkg/logger"
)

const checkTimeout = 2 * time.Minute

func main() {
	var (
		rows    = flag.Int("rows", sheetcheck.DefaultSampleRows, "Rows to sample, header included")
		server  = flag.String("server", "", "Base URL of a running server to probe")
		timeout = flag.Duration("timeout", sheetcheck.DefaultTimeout, "HTTP timeout for the server probe")
		verbose = flag.Bool("verbose", false, "Print every sampled row")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sheetcheck.ShowHelp(os.Stdout)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := sheetcheck.Config{SampleRows: *rows, ServerURL: *server, Timeout: *timeout, Verbose: *verbose}
	if err := run(ctx, cfg); err != nil {
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg sheetcheck.Config) error {
	appCfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return err
	}
	if err := logger.Init(logger.WithFormat(appCfg.LogFormat), logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return err
	}
	if !cfg.Verbose {
		_ = logger.SetLevelString("warn")
	}

	client, err := newSheet(ctx, appCfg)
	if err != nil {
		sheetcheck.PrintFailure(os.Stderr, sheetcheck.Report{SpreadsheetID: appCfg.SpreadsheetID}, err)
		return err
	}
	rep, err := sheetcheck.Run(ctx, client, cfg)
	if err != nil {
		sheetcheck.PrintFailure(os.Stderr, rep, err)
		return err
	}
	sheetcheck.Print(os.Stdout, rep, cfg.Verbose)
	return nil
}

func newSheet(ctx context.Context, cfg *config.Config) (sheetcheck.Sheet, error) {
	if cfg.SpreadsheetID == "" {
		return nil, sheetcheck.ErrMissingID
	}
	client, err := sheets.New(ctx, cfg.SpreadsheetID,
		sheets.WithSheetName(cfg.SheetName),
		sheets.WithCredentialsFile(cfg.CredentialsFile),
		sheets.WithCredentialsJSON(cfg.CredentialsJSON),
		sheets.WithLogger(logger.Named("sheets")),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}
