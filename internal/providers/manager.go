package providers

import (
	"fmt"
	"strings"

	"docflow/internal/config"
)

// ProviderRef is one entry of a provider list such as "groq|openai:backup",
// where each entry is a provider name optionally followed by ":keyalias".
type ProviderRef struct {
	Raw      string
	Name     string
	KeyAlias string
}

// parseProviderList splits a "|"-separated provider list into refs. An empty
// or blank list yields the mock provider so the pipeline always has one.
func parseProviderList(raw string) []ProviderRef {
	var out []ProviderRef
	for _, entry := range strings.Split(raw, "|") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		ref := ProviderRef{Raw: entry, Name: entry}
		if name, alias, ok := strings.Cut(entry, ":"); ok {
			ref.Name = strings.TrimSpace(name)
			ref.KeyAlias = strings.TrimSpace(alias)
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		out = append(out, ProviderRef{Raw: "mock", Name: "mock"})
	}
	return out
}

type NamedLLMProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager builds the configured LLM providers and exposes the first as the
// active one. The pipeline is single-shot per request: there is no fallback
// or rotation across providers.
type Manager struct {
	llmProviders []NamedLLMProvider
}

func NewManager(cfg config.Config) (*Manager, error) {
	refs := parseProviderList(cfg.LLMProviders)

	m := &Manager{}
	for _, ref := range refs {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		m.llmProviders = append(m.llmProviders, NamedLLMProvider{Ref: ref, Provider: p})
	}
	if len(m.llmProviders) == 0 {
		m.llmProviders = []NamedLLMProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func (m *Manager) ActiveLLMProvider() LLMProvider {
	return m.llmProviders[0].Provider
}

func (m *Manager) ActiveRef() ProviderRef {
	return m.llmProviders[0].Ref
}

func (m *Manager) LLMCount() int {
	return len(m.llmProviders)
}

// CheckCredentials reports the first provider whose configured credential is
// absent. Called once at startup; a missing key is fatal there, not a
// per-request error.
func (m *Manager) CheckCredentials() error {
	for _, p := range m.llmProviders {
		c, ok := p.Provider.(interface{ CheckCredentials() error })
		if !ok {
			continue
		}
		if err := c.CheckCredentials(); err != nil {
			return fmt.Errorf("provider %s: %w", p.Ref.Raw, err)
		}
	}
	return nil
}

func buildProvider(ref ProviderRef, cfg config.Config) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias, cfg.GroqModel), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	case "ollama":
		return NewOllamaProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
