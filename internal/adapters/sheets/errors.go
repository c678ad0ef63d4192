package sheets

import "errors"

// Sentinel kinds for client construction errors.
var (
	ErrMissingSpreadsheetID = errors.New("spreadsheet id is required")
	ErrCredentials          = errors.New("read service account credentials")
)
