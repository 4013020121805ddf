package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/renders?parseTime=true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
	assert.Equal(t, "v1beta", cfg.GeminiAPIVersion)
	assert.Equal(t, 180*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gemini-3-pro-image-preview", cfg.PremiumModel)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.StandardModel)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.AnalysisModel)
	assert.Equal(t, "2K", cfg.PremiumImageSize)
	assert.Equal(t, "16:9", cfg.PremiumAspectRatio)
	assert.Equal(t, 10, cfg.DefaultDailyLimit)
	assert.Equal(t, "renders", cfg.S3Prefix)
	assert.False(t, cfg.S3Enabled())
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MYSQL_DSN")
}

func TestLoadS3VarsRequiredTogether(t *testing.T) {
	t.Setenv("MYSQL_DSN", "dsn")
	t.Setenv("S3_BUCKET", "renders-bucket")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_REGION")
	assert.Contains(t, err.Error(), "S3_ACCESS_KEY")
	assert.Contains(t, err.Error(), "S3_SECRET_KEY")
	assert.Contains(t, err.Error(), "S3_PUBLIC_BASE_URL")
}

func TestLoadS3Complete(t *testing.T) {
	t.Setenv("MYSQL_DSN", "dsn")
	t.Setenv("S3_BUCKET", "renders-bucket")
	t.Setenv("S3_REGION", "us-east-1")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.S3Enabled())
	assert.Equal(t, "renders-bucket", cfg.S3Bucket)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MYSQL_DSN", "dsn")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("DEFAULT_DAILY_LIMIT", "3")
	t.Setenv("PREMIUM_MODEL", "custom-model")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.DefaultDailyLimit)
	assert.Equal(t, "custom-model", cfg.PremiumModel)
}

func TestLoadNegativeLimitClampsToZero(t *testing.T) {
	t.Setenv("MYSQL_DSN", "dsn")
	t.Setenv("DEFAULT_DAILY_LIMIT", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.DefaultDailyLimit)
}
