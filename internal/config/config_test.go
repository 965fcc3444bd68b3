package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// clearKeyEnv blanks the API key variables so tests are independent of the
// developer's shell environment.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	clearKeyEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Profile.Language != LanguageGerman {
		t.Errorf("default language = %q, want de", cfg.Profile.Language)
	}
	if cfg.Profile.DetailLevel != DetailBalanced {
		t.Errorf("default detail level = %q, want balanced", cfg.Profile.DetailLevel)
	}
	if cfg.Feeds.RefreshMinutes != 5 || cfg.Feeds.CacheHours != 6 {
		t.Errorf("feed defaults = %+v", cfg.Feeds)
	}
}

func TestLoadFromCorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want fallback to defaults", err)
	}
	if cfg.Profile.Persona != PersonaCasualFan {
		t.Errorf("Persona = %q, want default after corrupt config", cfg.Profile.Persona)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Profile.Name = "Lena"
	cfg.Profile.Language = LanguageEnglish
	cfg.Profile.Persona = PersonaFantasyPlayer
	cfg.Profile.FavoriteTeam = "Borussia Dortmund"
	cfg.Profile.Interests = []string{"stats", "transfers"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Profile, cfg.Profile) {
		t.Errorf("Profile = %+v, want %+v", loaded.Profile, cfg.Profile)
	}
}

func TestSaveRestrictsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := DefaultConfig().SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600 (holds API keys)", perm)
	}
}

func TestEnabledModelsPriorityOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Models.OpenAI.APIKey = "sk-test"
	cfg.Models.OpenAI.Priority = 2
	cfg.Models.Claude.APIKey = "sk-ant-test"
	cfg.Models.Claude.Priority = 1
	cfg.Models.Gemini.Enabled = false
	cfg.Models.Ollama.Enabled = true
	cfg.Models.Ollama.Priority = 3

	got := cfg.EnabledModels()
	want := []string{"claude", "openai", "ollama"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnabledModels() = %v, want %v", got, want)
	}
}

func TestEnabledModelsSkipsKeylessProviders(t *testing.T) {
	clearKeyEnv(t)
	cfg := DefaultConfig()
	// OpenAI and Claude are enabled by default but have no keys; only
	// Ollama works keyless, and it is disabled by default.
	if got := cfg.EnabledModels(); len(got) != 0 {
		t.Errorf("EnabledModels() = %v, want none without API keys", got)
	}
}

func TestPersonaValid(t *testing.T) {
	for _, p := range Personas {
		if !p.Valid() {
			t.Errorf("Persona %q reported invalid", p)
		}
	}
	if Persona("pundit").Valid() {
		t.Error("unknown persona reported valid")
	}
}
