package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierFast))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierQuality))
	assert.InDelta(t, 0.7, config.Temperature, 0.001)
	assert.Equal(t, int32(1000), config.MaxOutputTokens)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierFast: "fallback-model"},
	}

	// Unknown tier falls back to quality, then fast
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
	assert.Equal(t, "", (&Config{}).GetModel(TierQuality))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierQuality, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierQuality), "original is unchanged")
	assert.Equal(t, "custom-model", next.GetModel(TierQuality))
	assert.Equal(t, "gemini-2.5-flash-lite", next.GetModel(TierFast))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-exp")
	t.Setenv("GEMINI_FAST_MODEL", "")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	config := ConfigFromEnv()
	assert.Equal(t, "gemini-exp", config.GetModel(TierQuality))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierFast))
	assert.InDelta(t, 0.2, config.Temperature, 0.001)

	t.Setenv("LLM_TEMPERATURE", "hot")
	assert.InDelta(t, 0.7, ConfigFromEnv().Temperature, 0.001, "invalid values are ignored")
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), nil, "")
	assert.Error(t, err)

	_, err = NewClient(t.Context(), &Config{Provider: "openai"}, "key")
	assert.ErrorContains(t, err, "unsupported")
}
