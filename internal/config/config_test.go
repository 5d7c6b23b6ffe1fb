package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, ":5000", cfg.HTTPAddr())
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, defaultOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.MediaEnabled())
}

func TestLoad_MergesAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://clinic.example.com/, http://localhost:3000 ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
		"https://clinic.example.com",
	}, cfg.AllowedOrigins)
}

func TestValidate_RequiresSecret(t *testing.T) {
	cfg := Config{JWTTTL: time.Hour}
	assert.EqualError(t, cfg.Validate(), "JWT_SECRET is required")

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestMediaEnabled(t *testing.T) {
	cfg := Config{CloudinaryCloudName: "demo", CloudinaryAPIKey: "k"}
	assert.False(t, cfg.MediaEnabled())
	cfg.CloudinaryAPISecret = "s"
	assert.True(t, cfg.MediaEnabled())
}
