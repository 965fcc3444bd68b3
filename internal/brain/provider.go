// Package brain routes natural-language questions to LLM providers. All
// providers speak plain HTTP; the answer quality comes from stuffing the
// aggregated sports snapshot into the system prompt, not from any
// provider-specific feature.
package brain

import (
	"context"

	"github.com/ksilabs/ksi/internal/config"
)

// Provider is the interface for AI providers
type Provider interface {
	// Name returns the provider name (e.g., "claude", "openai")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate sends a prompt and returns the response
	Generate(ctx context.Context, req Request) (Response, error)
}

// Request is a prompt request to an AI provider
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Response is the AI provider's response
type Response struct {
	Content     string
	Model       string
	RawResponse string // The raw API response body for logging/debugging
}

// Manager holds multiple AI providers and falls back across them in
// priority order when one is unavailable or fails.
type Manager struct {
	providers []Provider
	preferred string
}

// NewManager creates an empty provider manager.
func NewManager() *Manager {
	return &Manager{providers: make([]Provider, 0)}
}

// NewManagerFromConfig builds a manager with one provider per enabled model,
// in the configured priority order.
func NewManagerFromConfig(cfg *config.Config) *Manager {
	m := NewManager()
	for _, name := range cfg.EnabledModels() {
		var pc *ProviderConfig
		switch name {
		case "openai":
			pc = OpenAIConfig(cfg.Models.OpenAI)
		case "claude":
			pc = ClaudeConfig(cfg.Models.Claude)
		case "gemini":
			pc = GeminiConfig(cfg.Models.Gemini)
		case "ollama":
			pc = OllamaConfig(cfg.Models.Ollama)
		default:
			continue
		}
		m.AddProvider(NewHTTPProvider(pc))
	}
	return m
}

// AddProvider appends a provider; earlier providers win the fallback race.
func (m *Manager) AddProvider(p Provider) {
	m.providers = append(m.providers, p)
}

// SetPreferred sets the preferred provider by name.
func (m *Manager) SetPreferred(name string) {
	m.preferred = name
}

// Active returns the provider to use: the preferred one when available,
// otherwise the first available, otherwise nil.
func (m *Manager) Active() Provider {
	if m.preferred != "" {
		for _, p := range m.providers {
			if p.Name() == m.preferred && p.Available() {
				return p
			}
		}
	}
	for _, p := range m.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}

// ListAvailable returns the names of all available providers.
func (m *Manager) ListAvailable() []string {
	var names []string
	for _, p := range m.providers {
		if p.Available() {
			names = append(names, p.Name())
		}
	}
	return names
}
