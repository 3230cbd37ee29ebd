package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistrySkipsProvidersWithoutKeys(t *testing.T) {
	sys := New([]ProviderConfig{
		{Key: "openai", Model: "gpt-4o-mini", APIKey: ""},
		{Key: "anthropic", Model: "claude-sonnet-4-5", APIKey: ""},
		{Key: "mock"},
	}, time.Second, testLogger())

	providers := sys.Providers()
	if len(providers) != 1 {
		t.Fatalf("providers: got %d, want 1", len(providers))
	}
	if providers[0].Key != "mock" {
		t.Errorf("provider key: got %s, want mock", providers[0].Key)
	}
}

func TestRegistryProvidersSorted(t *testing.T) {
	sys := New([]ProviderConfig{
		{Key: "openai", Model: "gpt-4o-mini", APIKey: "sk-test"},
		{Key: "anthropic", Model: "claude-sonnet-4-5", APIKey: "sk-ant-test"},
		{Key: "gemini", Model: "gemini-2.0-flash", APIKey: "test",
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/"},
		{Key: "mock"},
	}, time.Second, testLogger())

	providers := sys.Providers()
	if len(providers) != 4 {
		t.Fatalf("providers: got %d, want 4", len(providers))
	}

	want := []string{"anthropic", "gemini", "mock", "openai"}
	for i, p := range providers {
		if p.Key != want[i] {
			t.Errorf("provider %d: got %s, want %s", i, p.Key, want[i])
		}
	}
}

func TestQueryUnknownProvider(t *testing.T) {
	sys := New([]ProviderConfig{{Key: "mock"}}, time.Second, testLogger())

	_, err := sys.Query(context.Background(), "openai", "best website builder?")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("error: got %v, want ErrUnknownProvider", err)
	}
}

func TestQueryMock(t *testing.T) {
	sys := New([]ProviderConfig{{Key: "mock", Model: "mock-2"}}, time.Second, testLogger())

	resp, err := sys.Query(context.Background(), "mock", "What's the best CRM?")
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if resp.Provider != "mock" {
		t.Errorf("provider: got %s, want mock", resp.Provider)
	}
	if resp.Model != "mock-2" {
		t.Errorf("model: got %s, want mock-2", resp.Model)
	}
	if resp.Question != "What's the best CRM?" {
		t.Errorf("question: got %s", resp.Question)
	}
	if !strings.Contains(resp.Text, "1.") {
		t.Errorf("text should contain a numbered list, got %q", resp.Text)
	}
}

func TestQueryEmptyResponse(t *testing.T) {
	r := &registry{
		providers: map[string]querier{"blank": blankProvider{}},
		timeout:   time.Second,
		logger:    testLogger(),
	}

	_, err := r.Query(context.Background(), "blank", "anything")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("error: got %v, want ErrEmptyResponse", err)
	}
}

type blankProvider struct{}

func (blankProvider) query(context.Context, string) (string, error) { return "", nil }
func (blankProvider) model() string                                 { return "blank-1" }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrUnknownProvider, http.StatusBadRequest},
		{ErrEmptyResponse, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
