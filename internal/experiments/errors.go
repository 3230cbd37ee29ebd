package experiments

import (
	"errors"
	"net/http"
)

// Domain errors for experiment operations.
var (
	ErrNotFound             = errors.New("experiment not found")
	ErrDuplicate            = errors.New("experiment already exists")
	ErrInvalidTransition    = errors.New("experiment status does not allow this transition")
	ErrInterventionRequired = errors.New("content intervention is required to start the test period")
)

// MapHTTPStatus maps experiment domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInterventionRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
