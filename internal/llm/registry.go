package llm

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// ProviderConfig describes one provider entry for registry construction.
// BaseURL overrides the client endpoint for OpenAI-compatible providers
// such as Gemini.
type ProviderConfig struct {
	Key     string
	Model   string
	APIKey  string
	BaseURL string
}

// querier is the narrow contract each provider client satisfies.
type querier interface {
	query(ctx context.Context, question string) (string, error)
	model() string
}

type registry struct {
	providers map[string]querier
	timeout   time.Duration
	logger    *slog.Logger
}

// New builds a provider registry from configuration. Providers without an
// API key are skipped rather than failing construction, so a deployment only
// carries the providers it has credentials for. The mock provider needs no
// key.
func New(configs []ProviderConfig, timeout time.Duration, logger *slog.Logger) System {
	r := &registry{
		providers: make(map[string]querier),
		timeout:   timeout,
		logger:    logger.With("system", "llm"),
	}

	for _, cfg := range configs {
		switch cfg.Key {
		case "mock":
			r.providers[cfg.Key] = newMock(cfg.Model)
		case "anthropic":
			if cfg.APIKey == "" {
				continue
			}
			r.providers[cfg.Key] = newAnthropic(cfg)
		default:
			// openai, gemini, and any other OpenAI-compatible endpoint
			if cfg.APIKey == "" {
				continue
			}
			r.providers[cfg.Key] = newOpenAI(cfg)
		}
	}

	return r
}

func (r *registry) Query(ctx context.Context, provider, question string) (*Response, error) {
	p, ok := r.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := p.query(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", provider, err)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyResponse, provider)
	}

	r.logger.Debug("provider queried",
		"provider", provider,
		"model", p.model(),
		"duration", time.Since(start),
	)

	return &Response{
		Provider: provider,
		Model:    p.model(),
		Question: question,
		Text:     text,
	}, nil
}

func (r *registry) Providers() []ProviderInfo {
	info := make([]ProviderInfo, 0, len(r.providers))
	for key, p := range r.providers {
		info = append(info, ProviderInfo{Key: key, Model: p.model()})
	}

	sort.Slice(info, func(i, j int) bool { return info[i].Key < info[j].Key })
	return info
}
