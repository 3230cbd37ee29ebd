package brands

import (
	"errors"
	"net/http"
)

// Domain errors for brand operations.
var (
	ErrNotFound  = errors.New("brand not found")
	ErrDuplicate = errors.New("brand already exists")
)

// MapHTTPStatus maps brand domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
