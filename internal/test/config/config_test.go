package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bowl-catalog-backend/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		SupabaseURL:            "https://example.supabase.co",
		SupabasePublishableKey: "test-key",
		SupabaseJWTSecret:      "test-secret",
		MaxUploadBytes:         10 << 20,
		UploadConcurrency:      3,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingSupabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.SupabaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.SupabaseJWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_NonPositiveUploadLimit(t *testing.T) {
	cfg := validConfig()
	cfg.MaxUploadBytes = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_ZeroConcurrency(t *testing.T) {
	cfg := validConfig()
	cfg.UploadConcurrency = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_PUBLISHABLE_KEY", "test-key")
	t.Setenv("SUPABASE_JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "bowl-images", cfg.SupabaseStorageBucket)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 3, cfg.UploadConcurrency)
}
