package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load reads .env from the working directory, so every test runs in an empty one
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, key := range []string{"APP_ENV", "APP_PORT", "MAX_TIMETABLES", "STRICT_TIMINGS", "SEARCH_TIMEOUT", "CACHE_ENABLED", "CACHE_TTL", "CACHE_PREFIX", "REDIS_ADDR", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 500, cfg.MaxTimetables)
	assert.False(t, cfg.StrictTimings)
	assert.Equal(t, 10*time.Second, cfg.SearchTimeout)
	assert.Equal(t, CacheConfig{Enabled: true, TTL: 10 * time.Minute, Prefix: "timetables"}, cfg.Cache)
	assert.Equal(t, RedisConfig{Addr: "localhost:6379"}, cfg.Redis)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("MAX_TIMETABLES", "50")
	t.Setenv("STRICT_TIMINGS", "1")
	t.Setenv("SEARCH_TIMEOUT", "250ms")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 50, cfg.MaxTimetables)
	assert.True(t, cfg.StrictTimings)
	assert.Equal(t, 250*time.Millisecond, cfg.SearchTimeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Nil(t, NewRedisClient(cfg))
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=prod\nCACHE_PREFIX=tt\n"), 0o644))
	t.Setenv("APP_ENV", "")
	t.Setenv("CACHE_PREFIX", "")
	// godotenv does not override variables that are already set, even when empty
	os.Unsetenv("APP_ENV")
	os.Unsetenv("CACHE_PREFIX")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "tt", cfg.Cache.Prefix)
}
