// Package config loads and validates the gamenight YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the gamenight configuration.
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	Ollama       OllamaConfig       `yaml:"ollama"`
	Suggestions  SuggestionsConfig  `yaml:"suggestions"`
	Conversation ConversationConfig `yaml:"conversation"`
	RateLimit    RateLimitConfig    `yaml:"rate_limiting"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite file path (empty = default)
}

// OllamaConfig holds language-model backend settings.
type OllamaConfig struct {
	Host        string  `yaml:"host"`        // API endpoint, e.g. http://localhost:11434
	Model       string  `yaml:"model"`       // Model name, e.g. phi3:mini
	TimeoutSecs int     `yaml:"timeout"`     // Request timeout in seconds
	Temperature float64 `yaml:"temperature"` // Sampling temperature 0.0-1.0
	MaxTokens   int     `yaml:"max_tokens"`  // Max tokens to generate
}

// SuggestionsConfig holds suggestion pipeline settings.
type SuggestionsConfig struct {
	CooldownHours        int `yaml:"cooldown_hours"`          // Skip games played within this window
	MaxSuggestions       int `yaml:"max_suggestions"`         // Cap on the relaxed candidate list
	RecentPlaysWindow    int `yaml:"recent_plays_window"`     // Days of play history shown to the model
	DedupWindowMins      int `yaml:"dedup_window_mins"`       // Recent-suggestion guard window
	DedupRetryWindowMins int `yaml:"dedup_retry_window_mins"` // Shorter window for the relaxed retry
	MaxRemembered        int `yaml:"max_remembered"`          // FIFO cap on guard entries
}

// ConversationConfig holds casual-chat settings.
type ConversationConfig struct {
	ContextMessages int `yaml:"context_messages"`  // Prior messages passed to the model
	CasualMaxLength int `yaml:"casual_max_length"` // Max casual reply length
}

// RateLimitConfig holds per-user throttle settings.
type RateLimitConfig struct {
	Enabled      bool   `yaml:"enabled"`
	CooldownSecs int    `yaml:"cooldown_seconds"`
	Message      string `yaml:"message"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // resolved by the store's default path
		},
		Ollama: OllamaConfig{
			Host:        "http://localhost:11434",
			Model:       "phi3:mini",
			TimeoutSecs: 60,
			Temperature: 0.8,
			MaxTokens:   300,
		},
		Suggestions: DefaultSuggestionsConfig(),
		Conversation: ConversationConfig{
			ContextMessages: 5,
			CasualMaxLength: 300,
		},
		RateLimit: RateLimitConfig{
			Enabled:      false, // small groups rarely need throttling
			CooldownSecs: 5,
			Message:      "whoa slow down a sec!",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// DefaultSuggestionsConfig returns the default suggestion pipeline settings.
func DefaultSuggestionsConfig() SuggestionsConfig {
	return SuggestionsConfig{
		CooldownHours:        48,
		MaxSuggestions:       3,
		RecentPlaysWindow:    7,
		DedupWindowMins:      5,
		DedupRetryWindowMins: 2,
		MaxRemembered:        10,
	}
}

// DefaultConfigPath returns the default config file path (~/.gamenight/config.yaml).
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gamenight", "config.yaml"), nil
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GAMENIGHT_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("GAMENIGHT_OLLAMA_HOST"); v != "" {
		c.Ollama.Host = v
	}
	if v := os.Getenv("GAMENIGHT_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("GAMENIGHT_LOG_LEVEL"); v != "" && isValidLogLevel(v) {
		c.Logging.Level = v
	}
	if v := os.Getenv("GAMENIGHT_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Logging.Level = "debug"
		}
	}
}

// Validate validates the configuration. Hard errors only; the suggestions
// section is clamped by ValidateAndFix instead of failing startup.
func (c *Config) Validate() error {
	if c.Ollama.Host == "" {
		return errors.New("ollama.host must not be empty")
	}
	if c.Ollama.Model == "" {
		return errors.New("ollama.model must not be empty")
	}
	if c.Ollama.TimeoutSecs < 1 {
		return errors.New("ollama.timeout must be >= 1")
	}
	if c.Ollama.Temperature < 0.0 || c.Ollama.Temperature > 1.0 {
		return fmt.Errorf("ollama.temperature must be in [0.0, 1.0] (got: %v)", c.Ollama.Temperature)
	}
	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got: %s)", c.Logging.Level)
	}
	if c.RateLimit.CooldownSecs < 0 {
		return errors.New("rate_limiting.cooldown_seconds must be >= 0")
	}

	c.Suggestions.ValidateAndFix()

	return nil
}

// ValidationWarning represents a config validation warning.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidateAndFix validates suggestion settings. Invalid values are fixed by
// falling back to defaults or clamping. Returns a list of warnings for
// diagnostics. Validation never prevents startup.
func (s *SuggestionsConfig) ValidateAndFix() []ValidationWarning {
	defaults := DefaultSuggestionsConfig()
	var warnings []ValidationWarning

	warn := func(field, msg string) {
		w := ValidationWarning{Field: field, Message: msg}
		warnings = append(warnings, w)
		log.Printf("WARN config: suggestions.%s: %s", field, msg)
	}

	if s.CooldownHours < 0 {
		warn("cooldown_hours", fmt.Sprintf("must be >= 0, got %d; falling back to default %d", s.CooldownHours, defaults.CooldownHours))
		s.CooldownHours = defaults.CooldownHours
	}

	// Counts and windows must be >= 1
	counts := []struct {
		name string
		val  *int
		def  int
	}{
		{"max_suggestions", &s.MaxSuggestions, defaults.MaxSuggestions},
		{"recent_plays_window", &s.RecentPlaysWindow, defaults.RecentPlaysWindow},
		{"dedup_window_mins", &s.DedupWindowMins, defaults.DedupWindowMins},
		{"dedup_retry_window_mins", &s.DedupRetryWindowMins, defaults.DedupRetryWindowMins},
		{"max_remembered", &s.MaxRemembered, defaults.MaxRemembered},
	}
	for _, c := range counts {
		if *c.val < 1 {
			warn(c.name, fmt.Sprintf("must be >= 1, got %d; falling back to default %d", *c.val, c.def))
			*c.val = c.def
		}
	}

	if s.DedupRetryWindowMins > s.DedupWindowMins {
		warn("dedup_retry_window_mins", fmt.Sprintf("must be <= dedup_window_mins (%d), got %d; clamping", s.DedupWindowMins, s.DedupRetryWindowMins))
		s.DedupRetryWindowMins = s.DedupWindowMins
	}

	return warnings
}

// Get retrieves a configuration value by dot-separated key.
// For example: "suggestions.cooldown_hours" or "ollama.model"
func (c *Config) Get(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "database":
		if field == "path" {
			return c.Database.Path, nil
		}
	case "ollama":
		switch field {
		case "host":
			return c.Ollama.Host, nil
		case "model":
			return c.Ollama.Model, nil
		case "timeout":
			return strconv.Itoa(c.Ollama.TimeoutSecs), nil
		case "temperature":
			return strconv.FormatFloat(c.Ollama.Temperature, 'f', -1, 64), nil
		case "max_tokens":
			return strconv.Itoa(c.Ollama.MaxTokens), nil
		}
	case "suggestions":
		switch field {
		case "cooldown_hours":
			return strconv.Itoa(c.Suggestions.CooldownHours), nil
		case "max_suggestions":
			return strconv.Itoa(c.Suggestions.MaxSuggestions), nil
		case "recent_plays_window":
			return strconv.Itoa(c.Suggestions.RecentPlaysWindow), nil
		case "dedup_window_mins":
			return strconv.Itoa(c.Suggestions.DedupWindowMins), nil
		}
	case "rate_limiting":
		switch field {
		case "enabled":
			return strconv.FormatBool(c.RateLimit.Enabled), nil
		case "cooldown_seconds":
			return strconv.Itoa(c.RateLimit.CooldownSecs), nil
		}
	case "logging":
		if field == "level" {
			return c.Logging.Level, nil
		}
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
	return "", fmt.Errorf("unknown field: %s.%s", section, field)
}

// Set sets a configuration value by dot-separated key.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "database":
		if field == "path" {
			c.Database.Path = value
			return nil
		}
	case "ollama":
		switch field {
		case "host":
			c.Ollama.Host = value
			return nil
		case "model":
			c.Ollama.Model = value
			return nil
		case "timeout":
			v, err := strconv.Atoi(value)
			if err != nil || v < 1 {
				return fmt.Errorf("invalid value for timeout: %s", value)
			}
			c.Ollama.TimeoutSecs = v
			return nil
		}
	case "suggestions":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %s", field, value)
		}
		switch field {
		case "cooldown_hours":
			if v < 0 {
				return errors.New("cooldown_hours must be >= 0")
			}
			c.Suggestions.CooldownHours = v
			return nil
		case "max_suggestions":
			if v < 1 {
				return errors.New("max_suggestions must be >= 1")
			}
			c.Suggestions.MaxSuggestions = v
			return nil
		case "recent_plays_window":
			if v < 1 {
				return errors.New("recent_plays_window must be >= 1")
			}
			c.Suggestions.RecentPlaysWindow = v
			return nil
		case "dedup_window_mins":
			if v < 1 {
				return errors.New("dedup_window_mins must be >= 1")
			}
			c.Suggestions.DedupWindowMins = v
			return nil
		}
	case "rate_limiting":
		switch field {
		case "enabled":
			v, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid value for enabled: %w", err)
			}
			c.RateLimit.Enabled = v
			return nil
		case "cooldown_seconds":
			v, err := strconv.Atoi(value)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid value for cooldown_seconds: %s", value)
			}
			c.RateLimit.CooldownSecs = v
			return nil
		}
	case "logging":
		if field == "level" {
			if !isValidLogLevel(value) {
				return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
			}
			c.Logging.Level = value
			return nil
		}
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
	return fmt.Errorf("unknown field: %s.%s", section, field)
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"database.path",
		"ollama.host",
		"ollama.model",
		"ollama.timeout",
		"suggestions.cooldown_hours",
		"suggestions.max_suggestions",
		"suggestions.recent_plays_window",
		"suggestions.dedup_window_mins",
		"rate_limiting.enabled",
		"rate_limiting.cooldown_seconds",
		"logging.level",
	}
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
