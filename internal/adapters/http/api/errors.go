package api

import (
	"errors"
	"net/http"

	service "github.com/okian/leetboard/internal/app"
	"github.com/okian/leetboard/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Machine-readable failure codes.
const (
	codeSourceUnavailable = "source_unavailable"
	codeEmptySheet        = "empty_sheet"
	codeEmptyStudentSet   = "empty_student_set"
	codeBadRequest        = "bad_request"
	codeNotFound          = "not_found"
	codeInternal          = "internal_error"
	codeMethodNotAllowed  = "method_not_allowed"
)

// errorResponse is the failure body. Error is the human summary of what the
// endpoint was doing, Message the underlying cause.
type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an error kind to its status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, service.ErrStudentNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, model.ErrSourceUnavailable):
		return http.StatusInternalServerError, codeSourceUnavailable
	case errors.Is(err, model.ErrEmptySheet):
		return http.StatusInternalServerError, codeEmptySheet
	case errors.Is(err, model.ErrEmptyStudentSet):
		return http.StatusInternalServerError, codeEmptyStudentSet
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
