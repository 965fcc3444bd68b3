package brain

import (
	"context"
	"reflect"
	"testing"

	"github.com/ksilabs/ksi/internal/config"
)

// fakeProvider is a test double with controllable availability.
type fakeProvider struct {
	name      string
	available bool
}

func (f *fakeProvider) Name() string    { return f.name }
func (f *fakeProvider) Available() bool { return f.available }
func (f *fakeProvider) Generate(ctx context.Context, req Request) (Response, error) {
	return Response{Content: "answer from " + f.name}, nil
}

func TestManagerActiveFallbackOrder(t *testing.T) {
	m := NewManager()
	m.AddProvider(&fakeProvider{name: "openai", available: false})
	m.AddProvider(&fakeProvider{name: "claude", available: true})
	m.AddProvider(&fakeProvider{name: "ollama", available: true})

	if p := m.Active(); p == nil || p.Name() != "claude" {
		t.Errorf("Active() = %v, want first available (claude)", p)
	}
}

func TestManagerPreferred(t *testing.T) {
	m := NewManager()
	m.AddProvider(&fakeProvider{name: "claude", available: true})
	m.AddProvider(&fakeProvider{name: "ollama", available: true})

	m.SetPreferred("ollama")
	if p := m.Active(); p == nil || p.Name() != "ollama" {
		t.Errorf("Active() = %v, want preferred provider", p)
	}

	// An unavailable preferred provider falls back.
	m.SetPreferred("gemini")
	if p := m.Active(); p == nil || p.Name() != "claude" {
		t.Errorf("Active() = %v, want fallback when preferred is missing", p)
	}
}

func TestManagerNoProviders(t *testing.T) {
	m := NewManager()
	if p := m.Active(); p != nil {
		t.Errorf("Active() = %v, want nil for an empty manager", p)
	}

	m.AddProvider(&fakeProvider{name: "openai", available: false})
	if p := m.Active(); p != nil {
		t.Errorf("Active() = %v, want nil when nothing is available", p)
	}
}

func TestManagerListAvailable(t *testing.T) {
	m := NewManager()
	m.AddProvider(&fakeProvider{name: "openai", available: true})
	m.AddProvider(&fakeProvider{name: "claude", available: false})
	m.AddProvider(&fakeProvider{name: "ollama", available: true})

	got := m.ListAvailable()
	want := []string{"openai", "ollama"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAvailable() = %v, want %v", got, want)
	}
}

func TestNewManagerFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Models.Claude.APIKey = "sk-ant-test"
	cfg.Models.Claude.Priority = 1
	cfg.Models.OpenAI.APIKey = "sk-test"
	cfg.Models.OpenAI.Priority = 2
	cfg.Models.Ollama.Enabled = true
	cfg.Models.Ollama.Priority = 9

	m := NewManagerFromConfig(cfg)

	got := m.ListAvailable()
	want := []string{"claude", "openai", "ollama"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAvailable() = %v, want %v in priority order", got, want)
	}
}

func TestHTTPProviderAvailability(t *testing.T) {
	keyless := NewHTTPProvider(OpenAIConfig(config.ModelSettings{}))
	if keyless.Available() {
		t.Error("openai provider available without an API key")
	}

	ollama := NewHTTPProvider(OllamaConfig(config.ModelSettings{}))
	if !ollama.Available() {
		t.Error("ollama provider should not require an API key")
	}
}
