package providers

import (
	"context"
	"testing"

	"docflow/internal/config"
)

func TestManagerBuildsMockProvider(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock"})
	if err != nil {
		t.Fatal(err)
	}
	if m.LLMCount() != 1 || m.ActiveRef().Name != "mock" {
		t.Fatalf("unexpected manager state: count=%d ref=%+v", m.LLMCount(), m.ActiveRef())
	}
	if err := m.CheckCredentials(); err != nil {
		t.Fatalf("mock provider needs no credentials: %v", err)
	}
	resp, info, err := m.ActiveLLMProvider().Generate(context.Background(), GenerateRequest{Operation: "summarize", Prompt: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text == "" || info.Name != "mock" {
		t.Fatalf("unexpected mock response: %+v %+v", resp, info)
	}
}

func TestManagerRejectsUnknownProvider(t *testing.T) {
	if _, err := NewManager(config.Config{LLMProviders: "bedrock"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestManagerCheckCredentialsMissingGroqKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	m, err := NewManager(config.Config{LLMProviders: "groq"})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.CheckCredentials(); err == nil {
		t.Fatal("expected credential error for keyless groq provider")
	}
}

func TestManagerPassesGroqModelToProvider(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "groq", GroqModel: "llama-3.3-70b-versatile"})
	if err != nil {
		t.Fatal(err)
	}
	g, ok := m.ActiveLLMProvider().(*GroqProvider)
	if !ok {
		t.Fatalf("expected groq provider, got %T", m.ActiveLLMProvider())
	}
	if g.model != "llama-3.3-70b-versatile" {
		t.Fatalf("configured model not applied, got %q", g.model)
	}
}

func TestParseProviderList(t *testing.T) {
	refs := parseProviderList("mock|groq:key1|openai:key2")
	if len(refs) != 3 {
		t.Fatalf("expected 3 providers got %d", len(refs))
	}
	if refs[1].Name != "groq" || refs[1].KeyAlias != "key1" {
		t.Fatalf("unexpected parse result: %+v", refs[1])
	}
	if refs[0].KeyAlias != "" {
		t.Fatalf("expected no alias for bare entry: %+v", refs[0])
	}
}

func TestParseProviderListEmptyFallsBackToMock(t *testing.T) {
	refs := parseProviderList("  ")
	if len(refs) != 1 || refs[0].Name != "mock" {
		t.Fatalf("expected mock fallback, got %+v", refs)
	}
}
