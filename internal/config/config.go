package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Persona identifies a user's content preference profile.
// Unknown values are tolerated everywhere and simply attract no ranking
// boost, since the persona is advisory input rather than a required field.
type Persona string

const (
	PersonaCasualFan         Persona = "casual_fan"
	PersonaExpertAnalyst     Persona = "expert_analyst"
	PersonaBettingEnthusiast Persona = "betting_enthusiast"
	PersonaFantasyPlayer     Persona = "fantasy_player"
)

// Personas lists the known persona values, for onboarding menus.
var Personas = []Persona{
	PersonaCasualFan,
	PersonaExpertAnalyst,
	PersonaBettingEnthusiast,
	PersonaFantasyPlayer,
}

// Valid reports whether p is one of the known personas.
func (p Persona) Valid() bool {
	switch p {
	case PersonaCasualFan, PersonaExpertAnalyst, PersonaBettingEnthusiast, PersonaFantasyPlayer:
		return true
	}
	return false
}

// DetailLevel controls how verbose assistant responses should be.
type DetailLevel string

const (
	DetailQuick    DetailLevel = "quick"
	DetailBalanced DetailLevel = "balanced"
	DetailDetailed DetailLevel = "detailed"
)

// Language selects the assistant's response language.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// Profile holds user preferences and personalization.
type Profile struct {
	Name         string      `json:"name"`
	Language     Language    `json:"language"`
	DetailLevel  DetailLevel `json:"detail_level"`
	Persona      Persona     `json:"persona"`
	FavoriteTeam string      `json:"favorite_team"`
	Interests    []string    `json:"interests"`
}

// ModelSettings for a single LLM provider.
type ModelSettings struct {
	Enabled  bool   `json:"enabled"`
	APIKey   string `json:"api_key,omitempty"`
	Endpoint string `json:"endpoint,omitempty"` // For Ollama or custom endpoints
	Model    string `json:"model,omitempty"`
	Priority int    `json:"priority"` // Lower = higher priority for fallback
}

// ModelConfig holds settings per LLM provider.
type ModelConfig struct {
	OpenAI ModelSettings `json:"openai"`
	Claude ModelSettings `json:"claude"`
	Gemini ModelSettings `json:"gemini"`
	Ollama ModelSettings `json:"ollama"`
}

// FeedConfig holds data-aggregation settings.
type FeedConfig struct {
	RefreshMinutes int `json:"refresh_minutes"` // Interval between source refreshes
	ItemsPerFeed   int `json:"items_per_feed"`  // Feed length offered to the user
	CacheHours     int `json:"cache_hours"`     // Content cache TTL
}

// Config is the persistent application configuration.
type Config struct {
	Profile Profile     `json:"profile"`
	Models  ModelConfig `json:"models"`
	Feeds   FeedConfig  `json:"feeds"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Profile: Profile{
			Name:        "User",
			Language:    LanguageGerman,
			DetailLevel: DetailBalanced,
			Persona:     PersonaCasualFan,
		},
		Models: ModelConfig{
			OpenAI: ModelSettings{
				Enabled:  true,
				Priority: 1,
				Model:    "gpt-4-turbo-preview",
			},
			Claude: ModelSettings{
				Enabled:  true,
				Priority: 2,
				Model:    "claude-3-5-sonnet-20241022",
			},
			Gemini: ModelSettings{
				Enabled:  false,
				Priority: 3,
				Model:    "gemini-1.5-flash",
			},
			Ollama: ModelSettings{
				Enabled:  false,
				Priority: 4,
				Endpoint: "http://localhost:11434",
			},
		},
		Feeds: FeedConfig{
			RefreshMinutes: 5,
			ItemsPerFeed:   10,
			CacheHours:     6,
		},
	}
}

// Path returns the path to the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ksi", "config.json")
}

// Load reads config from disk, or returns defaults.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads config from an explicit path, or returns defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.AutoPopulateFromEnv()
			return cfg, nil
		}
		return nil, err
	}

	// A corrupt config falls back to defaults rather than failing startup.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}

	cfg.AutoPopulateFromEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes config to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600) // Restrictive permissions for API keys
}

// AutoPopulateFromEnv fills in API keys from environment variables.
func (c *Config) AutoPopulateFromEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Models.OpenAI.APIKey == "" {
		c.Models.OpenAI.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && c.Models.Claude.APIKey == "" {
		c.Models.Claude.APIKey = key
	}
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" && c.Models.Gemini.APIKey == "" {
		c.Models.Gemini.APIKey = key
	}
}

// EnabledModels returns the names of providers that are enabled and usable,
// ordered by priority.
func (c *Config) EnabledModels() []string {
	type candidate struct {
		name     string
		priority int
	}
	var candidates []candidate

	if c.Models.OpenAI.Enabled && c.Models.OpenAI.APIKey != "" {
		candidates = append(candidates, candidate{"openai", c.Models.OpenAI.Priority})
	}
	if c.Models.Claude.Enabled && c.Models.Claude.APIKey != "" {
		candidates = append(candidates, candidate{"claude", c.Models.Claude.Priority})
	}
	if c.Models.Gemini.Enabled && c.Models.Gemini.APIKey != "" {
		candidates = append(candidates, candidate{"gemini", c.Models.Gemini.Priority})
	}
	if c.Models.Ollama.Enabled {
		candidates = append(candidates, candidate{"ollama", c.Models.Ollama.Priority})
	}

	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].priority < candidates[j-1].priority; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	names := make([]string, len(candidates))
	for i, cand := range candidates {
		names[i] = cand.name
	}
	return names
}
