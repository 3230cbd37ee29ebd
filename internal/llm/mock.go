package llm

import (
	"context"
	"fmt"
)

type mockProvider struct {
	modelName string
}

// newMock creates a provider that answers every question with a deterministic
// canned response. It exists so the check runner and handlers can be exercised
// without credentials or network access.
func newMock(model string) *mockProvider {
	if model == "" {
		model = "mock-1"
	}
	return &mockProvider{modelName: model}
}

func (p *mockProvider) query(_ context.Context, question string) (string, error) {
	return fmt.Sprintf(
		"Here are some options for %q:\n1. Example One\n2. Example Two\n3. Example Three",
		question,
	), nil
}

func (p *mockProvider) model() string {
	return p.modelName
}
