package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		pepper     string
		wantCost   int
		wantErr    bool
	}{
		{"default cost", "", "", 10, false},
		{"valid cost", "12", "", 12, false},
		{"cost too low", "9", "", 0, true},
		{"cost too high", "15", "", 0, true},
		{"invalid cost", "abc", "", 0, true},
		{"with pepper", "10", "pepper-secret", 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, cfg.VerifyPassword("secret123", hash))
	assert.False(t, cfg.VerifyPassword("secret124", hash))

	other, err := cfg.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")
}

func TestPepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: 10, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: 10}

	hash, err := peppered.HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("secret123", hash))
	assert.False(t, plain.VerifyPassword("secret123", hash), "the pepper is required to verify")
}

func TestNeedsRehash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}
	hash, err := cfg.HashPassword("secret123")
	require.NoError(t, err)

	assert.False(t, cfg.NeedsRehash(hash))
	assert.True(t, (&PasswordConfig{BcryptCost: 11}).NeedsRehash(hash))
	assert.False(t, cfg.NeedsRehash("not-a-hash"))
}
