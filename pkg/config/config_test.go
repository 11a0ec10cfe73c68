package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, []string{"pdf", "png", "jpg", "jpeg"}, cfg.Storage.AllowedExtensions)
	assert.Equal(t, int64(10*1024*1024), cfg.Storage.MaxFileSizeBytes)
	assert.Equal(t, AuthModeHeader, cfg.Auth.Mode)
	assert.Equal(t, "userId", cfg.Auth.CookieName)
	assert.Equal(t, "X-User-ID", cfg.Auth.HeaderName)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("API_PREFIX", "/api/")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/portal")
	t.Setenv("STORAGE_DRIVER", "S3")
	t.Setenv("STORAGE_ENDPOINT", "https://project.supabase.co/storage/v1/s3/")
	t.Setenv("LICENSE_ALLOWED_EXTENSIONS", "PDF, png")
	t.Setenv("ALLOWED_ORIGINS", "https://portal.example, https://admin.example")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/portal", cfg.Database.URL)
	assert.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	assert.Equal(t, "https://project.supabase.co/storage/v1/s3", cfg.Storage.Endpoint)
	assert.Equal(t, []string{"pdf", "png"}, cfg.Storage.AllowedExtensions)
	assert.Equal(t, []string{"https://portal.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, AuthModeJWT, cfg.Auth.Mode)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("AUTH_MODE", "jwt")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseDuration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, parseDuration("soon", 5*time.Second))
	assert.Equal(t, time.Minute, parseDuration("1m", 5*time.Second))
}
