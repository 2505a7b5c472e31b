// Package llm wraps the language model used to polish resume text.
// Callers pick a tier rather than a model name so models can be swapped in config.
package llm

import (
	"os"
	"strconv"
)

// ModelTier represents how much capability a request needs
type ModelTier string

const (
	// TierFast is for short, mechanical edits: skill lists, education lines
	TierFast ModelTier = "fast"
	// TierQuality is for prose: summaries, experience and project descriptions
	TierQuality ModelTier = "quality"
)

// Provider represents an LLM provider
type Provider string

const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider
	Models          map[ModelTier]string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast:    "gemini-2.5-flash-lite",
			TierQuality: "gemini-2.5-flash",
		},
		Temperature:     0.7,
		MaxOutputTokens: 1000,
	}
}

// ConfigFromEnv returns DefaultConfig with GEMINI_MODEL, GEMINI_FAST_MODEL
// and LLM_TEMPERATURE applied when set.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg = cfg.WithModel(TierQuality, model)
	}
	if model := os.Getenv("GEMINI_FAST_MODEL"); model != "" {
		cfg = cfg.WithModel(TierFast, model)
	}
	if raw := os.Getenv("LLM_TEMPERATURE"); raw != "" {
		if t, err := strconv.ParseFloat(raw, 32); err == nil && t >= 0 && t <= 2 {
			cfg.Temperature = float32(t)
		}
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierQuality]; ok {
		return model
	}
	if model, ok := c.Models[TierFast]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := *c
	next.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return &next
}
