// Package llm provides a uniform client surface over the LLM providers
// Beacon queries for visibility checks. Each configured provider is a named
// entry in a registry; callers address providers by key and receive the raw
// response text for classification.
package llm

import (
	"context"
	"errors"
	"net/http"
)

// System defines the public contract for querying configured LLM providers.
type System interface {
	Query(ctx context.Context, provider, question string) (*Response, error)
	Providers() []ProviderInfo
}

// Response is the answer one provider produced for one question.
type Response struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Question string `json:"question"`
	Text     string `json:"text"`
}

// ProviderInfo describes one registered provider.
type ProviderInfo struct {
	Key   string `json:"key"`
	Model string `json:"model"`
}

// Domain errors for LLM operations.
var (
	ErrUnknownProvider = errors.New("provider is not configured")
	ErrEmptyResponse   = errors.New("provider returned an empty response")
)

// MapHTTPStatus maps LLM domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnknownProvider) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
