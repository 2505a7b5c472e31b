// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config represents settings that can be loaded from a JSON file and overridden
// by environment variables and CLI flags. All fields are optional.
type Config struct {
	// Server
	Port        int      `json:"port,omitempty"`
	CORSOrigins []string `json:"cors_origins,omitempty"`
	DatabaseURL string   `json:"database_url,omitempty"` // PostgreSQL connection URL; auth is disabled without it

	// Builder
	TemplateID     string `json:"template_id,omitempty"`      // template for new resumes
	KeepLastEntry  bool   `json:"keep_last_entry,omitempty"` // refuse to remove the last entry of a section
	SessionIdleTTL string `json:"session_idle_ttl,omitempty"` // e.g. "30m"

	// Export
	ChromePath    string `json:"chrome_path,omitempty"`
	ExportTimeout string `json:"export_timeout,omitempty"` // e.g. "60s"

	// Enhancement
	APIKey         string `json:"api_key,omitempty"`      // Gemini API key; rules only when empty
	EnhancerURL    string `json:"enhancer_url,omitempty"` // remote text-enhancer API for the CLI
	EnhanceTimeout string `json:"enhance_timeout,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           8080,
		CORSOrigins:    []string{"*"},
		TemplateID:     "modern",
		KeepLastEntry:  true,
		SessionIdleTTL: "30m",
		ExportTimeout:  "60s",
		EnhanceTimeout: "20s",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	for name, value := range map[string]string{
		"session_idle_ttl": c.SessionIdleTTL,
		"export_timeout":   c.ExportTimeout,
		"enhance_timeout":  c.EnhanceTimeout,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("config error: '%s' is not a duration: %q", name, value)
		}
		if d <= 0 {
			return fmt.Errorf("config error: '%s' must be positive", name)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools cannot be told apart from unset, so KeepLastEntry and Verbose are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.TemplateID == "" {
		result.TemplateID = defaults.TemplateID
	}
	if result.SessionIdleTTL == "" {
		result.SessionIdleTTL = defaults.SessionIdleTTL
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ExportTimeout == "" {
		result.ExportTimeout = defaults.ExportTimeout
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EnhancerURL == "" {
		result.EnhancerURL = defaults.EnhancerURL
	}
	if result.EnhanceTimeout == "" {
		result.EnhanceTimeout = defaults.EnhanceTimeout
	}
	return result
}

// ApplyEnv overrides fields from DATABASE_URL, PORT, GEMINI_API_KEY, CHROME_PATH,
// SESSION_IDLE_TIMEOUT, EXPORT_TIMEOUT and ENHANCER_URL when they are set.
func (c *Config) ApplyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.APIKey, "GEMINI_API_KEY")
	setString(&c.ChromePath, "CHROME_PATH")
	setString(&c.SessionIdleTTL, "SESSION_IDLE_TIMEOUT")
	setString(&c.ExportTimeout, "EXPORT_TIMEOUT")
	setString(&c.EnhancerURL, "ENHANCER_URL")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Duration parses a duration field, returning def when it is empty or invalid.
func Duration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// envInt reads an integer environment variable, returning def when unset.
func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}
