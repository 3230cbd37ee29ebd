package checks

import (
	"errors"
	"net/http"
)

// Domain errors for check operations.
var (
	ErrNotFound      = errors.New("visibility check not found")
	ErrDuplicate     = errors.New("visibility check already exists")
	ErrBrandNotFound = errors.New("brand not found")
	ErrNoQuestions   = errors.New("brand has no active questions to check")
	ErrNoProviders   = errors.New("no providers are available to query")
)

// MapHTTPStatus maps check domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrBrandNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoQuestions) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrNoProviders) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
