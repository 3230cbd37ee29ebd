package contents

import (
	"errors"
	"net/http"
)

// Domain errors for content operations.
var (
	ErrNotFound  = errors.New("content not found")
	ErrDuplicate = errors.New("content already exists")
)

// MapHTTPStatus maps content domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
