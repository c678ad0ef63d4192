package service

import "errors"

// Sentinel kinds returned by the service.
var (
	ErrStudentNotFound = errors.New("student not found")
)
