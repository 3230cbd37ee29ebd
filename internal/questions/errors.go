package questions

import (
	"errors"
	"net/http"
)

// Domain errors for question operations.
var (
	ErrNotFound        = errors.New("question not found")
	ErrDuplicate       = errors.New("question already exists")
	ErrKeywordRequired = errors.New("keyword is required to generate questions")
)

// MapHTTPStatus maps question domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrKeywordRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
