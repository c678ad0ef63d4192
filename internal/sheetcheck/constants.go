package sheetcheck

import "time"

// Defaults for a check run.
const (
	DefaultSampleRows = 3
	DefaultTimeout    = 10 * time.Second
	sampleColumns     = "A1:ZZ"
	healthPath        = "/api/health"
)
