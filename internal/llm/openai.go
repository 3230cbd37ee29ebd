package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIProvider struct {
	client    openai.Client
	modelName string
}

// newOpenAI creates a chat-completions client. A BaseURL override points the
// same client at any OpenAI-compatible endpoint, which is how the Gemini
// provider is wired.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAIProvider{
		client:    openai.NewClient(opts...),
		modelName: cfg.Model,
	}
}

func (p *openAIProvider) query(ctx context.Context, question string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(question),
		},
		Model: openai.ChatModel(p.modelName),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *openAIProvider) model() string {
	return p.modelName
}
