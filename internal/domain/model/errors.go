package model

import "errors"

// Failure kinds surfaced to callers. Cell-level coercion problems are not
// errors; they normalize to defaults.
var (
	// ErrSourceUnavailable means the sheet source could not be read
	// (permission, not found, bad range, transport).
	ErrSourceUnavailable = errors.New("sheet source unavailable")
	// ErrEmptySheet means the source answered but had no rows to normalize.
	ErrEmptySheet = errors.New("no data found in sheet")
	// ErrEmptyStudentSet means an aggregate was requested over zero students.
	ErrEmptyStudentSet = errors.New("no students to aggregate")
)
