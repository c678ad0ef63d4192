package sheetcheck

import "errors"

// Sentinel kinds for failed checks.
var (
	ErrTabNotFound = errors.New("configured sheet tab not found")
	ErrMissingID   = errors.New("spreadsheet id is not configured")
	ErrShortHeader = errors.New("header row has fewer columns than the fixed layout")
	ErrUnhealthy   = errors.New("server health probe failed")
)
