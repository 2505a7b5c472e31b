package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"port": 9090,
		"template_id": "academic",
		"keep_last_entry": true,
		"export_timeout": "90s",
		"cors_origins": ["http://localhost:5173"],
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "academic", cfg.TemplateID)
	assert.True(t, cfg.KeepLastEntry)
	assert.Equal(t, "90s", cfg.ExportTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to parse config JSON")

	_, err = LoadConfig("/nonexistent/path/config.json")
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", Defaults(), ""},
		{"empty", Config{}, ""},
		{"bad port", Config{Port: 70000}, "port"},
		{"bad duration", Config{ExportTimeout: "soon"}, "export_timeout"},
		{"negative duration", Config{SessionIdleTTL: "-5m"}, "session_idle_ttl"},
		{"missing chrome", Config{ChromePath: "/nonexistent/chrome"}, "chrome binary not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{Port: 9000, TemplateID: "creative"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port, "set values win")
	assert.Equal(t, "creative", merged.TemplateID)
	assert.Equal(t, "60s", merged.ExportTimeout, "empty values come from defaults")
	assert.Equal(t, []string{"*"}, merged.CORSOrigins)
	assert.False(t, merged.KeepLastEntry, "bools are never merged")
	assert.Equal(t, 9000, cfg.Port, "receiver is unchanged")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resume")
	t.Setenv("PORT", "7000")
	t.Setenv("EXPORT_TIMEOUT", "2m")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Defaults()
	cfg.APIKey = "from-file"
	cfg.ApplyEnv()

	assert.Equal(t, "postgres://localhost/resume", cfg.DatabaseURL)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "2m", cfg.ExportTimeout)
	assert.Equal(t, "from-file", cfg.APIKey, "unset variables keep the current value")
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 90*time.Second, Duration("90s", time.Minute))
	assert.Equal(t, time.Minute, Duration("", time.Minute))
	assert.Equal(t, time.Minute, Duration("later", time.Minute))
	assert.Equal(t, time.Minute, Duration("0s", time.Minute))
}
