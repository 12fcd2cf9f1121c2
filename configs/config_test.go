package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Second, cfg.Cache.OpTimeout)
	assert.Equal(t, "md5", cfg.Cache.KeyDigest)
	assert.Equal(t, "json", cfg.Cache.Serializer)
	assert.Equal(t, "", cfg.Cache.KeyPrefix)
	assert.Equal(t, "6379", cfg.Redis.Port)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "bolt")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("CACHE_KEY_DIGEST", "xxhash")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BURST", "1.5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bolt", cfg.Cache.Backend)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "xxhash", cfg.Cache.KeyDigest)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 1.5, cfg.RateLimit.BurstMultiplier)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestGetSecondsEnv(t *testing.T) {
	t.Setenv("X_TTL", "90m")
	assert.Equal(t, 90*time.Minute, getSecondsEnv("X_TTL", time.Hour))

	t.Setenv("X_TTL", "garbage")
	assert.Equal(t, time.Hour, getSecondsEnv("X_TTL", time.Hour))

	t.Setenv("X_TTL", "0")
	assert.Equal(t, time.Hour, getSecondsEnv("X_TTL", time.Hour))
}
