package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Ollama.Host != "http://localhost:11434" {
		t.Errorf("default ollama host = %q", cfg.Ollama.Host)
	}
	if cfg.Suggestions.CooldownHours != 48 {
		t.Errorf("default cooldown = %d, want 48", cfg.Suggestions.CooldownHours)
	}
	if cfg.Suggestions.MaxSuggestions != 3 {
		t.Errorf("default max suggestions = %d, want 3", cfg.Suggestions.MaxSuggestions)
	}
	if cfg.RateLimit.Enabled {
		t.Error("rate limiting should default off")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile on missing file: %v", err)
	}
	if cfg.Ollama.Model != "phi3:mini" {
		t.Errorf("expected defaults, got model %q", cfg.Ollama.Model)
	}
}

func TestLoadFromFileParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ollama:
  model: llama3
suggestions:
  cooldown_hours: 72
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Ollama.Model != "llama3" {
		t.Errorf("model = %q, want llama3", cfg.Ollama.Model)
	}
	if cfg.Suggestions.CooldownHours != 72 {
		t.Errorf("cooldown = %d, want 72", cfg.Suggestions.CooldownHours)
	}
	// Untouched sections keep their defaults
	if cfg.Ollama.Host != "http://localhost:11434" {
		t.Errorf("host = %q, want default", cfg.Ollama.Host)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ollama: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GAMENIGHT_OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("GAMENIGHT_OLLAMA_MODEL", "mistral")
	t.Setenv("GAMENIGHT_DB_PATH", "/tmp/games.db")
	t.Setenv("GAMENIGHT_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	if cfg.Ollama.Host != "http://gpu-box:11434" {
		t.Errorf("host = %q", cfg.Ollama.Host)
	}
	if cfg.Ollama.Model != "mistral" {
		t.Errorf("model = %q", cfg.Ollama.Model)
	}
	if cfg.Database.Path != "/tmp/games.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Ollama.Host = "" }},
		{"empty model", func(c *Config) { c.Ollama.Model = "" }},
		{"zero timeout", func(c *Config) { c.Ollama.TimeoutSecs = 0 }},
		{"temperature too high", func(c *Config) { c.Ollama.Temperature = 1.5 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"negative rate cooldown", func(c *Config) { c.RateLimit.CooldownSecs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateAndFixClamps(t *testing.T) {
	s := SuggestionsConfig{
		CooldownHours:        -5,
		MaxSuggestions:       0,
		RecentPlaysWindow:    7,
		DedupWindowMins:      2,
		DedupRetryWindowMins: 10,
		MaxRemembered:        10,
	}

	warnings := s.ValidateAndFix()

	if s.CooldownHours != 48 {
		t.Errorf("cooldown = %d, want default 48", s.CooldownHours)
	}
	if s.MaxSuggestions != 3 {
		t.Errorf("max suggestions = %d, want default 3", s.MaxSuggestions)
	}
	if s.DedupRetryWindowMins != s.DedupWindowMins {
		t.Errorf("retry window = %d, want clamped to %d", s.DedupRetryWindowMins, s.DedupWindowMins)
	}
	if len(warnings) != 3 {
		t.Errorf("got %d warnings, want 3", len(warnings))
	}

	// A valid config produces no warnings and is untouched
	good := DefaultSuggestionsConfig()
	if w := good.ValidateAndFix(); len(w) != 0 {
		t.Errorf("valid config produced warnings: %v", w)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("suggestions.cooldown_hours", "72"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := cfg.Get("suggestions.cooldown_hours")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "72" {
		t.Errorf("got %q, want 72", got)
	}

	if err := cfg.Set("suggestions.max_suggestions", "0"); err == nil {
		t.Error("Set should reject max_suggestions below 1")
	}
	if err := cfg.Set("nope.nope", "x"); err == nil {
		t.Error("Set should reject unknown keys")
	}
	if _, err := cfg.Get("ollama.nope"); err == nil {
		t.Error("Get should reject unknown fields")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Ollama.Model = "llama3"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Ollama.Model != "llama3" {
		t.Errorf("reloaded model = %q", loaded.Ollama.Model)
	}
}
