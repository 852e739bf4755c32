package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic responses for tests and keyless
// development runs.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	op := strings.ToLower(req.Operation)
	text := "Mock response."
	switch {
	case strings.Contains(op, "summarize"):
		text = "Mock summary of the provided content."
	case strings.Contains(op, "ask"):
		text = "Mock answer grounded in the provided content."
	}
	return GenerateResponse{Text: text}, ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}, nil
}
