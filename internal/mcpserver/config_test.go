package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/ramldoc/walker"
)

// clearRAMLDOCEnv clears all RAMLDOC_* env vars to isolate tests from the ambient environment.
func clearRAMLDOCEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RAMLDOC_CACHE_ENABLED", "RAMLDOC_CACHE_MAX_SIZE",
		"RAMLDOC_CACHE_FILE_TTL", "RAMLDOC_CACHE_URL_TTL",
		"RAMLDOC_CACHE_CONTENT_TTL", "RAMLDOC_CACHE_SWEEP_INTERVAL",
		"RAMLDOC_WALK_LIMIT", "RAMLDOC_WALK_DETAIL_LIMIT", "RAMLDOC_MAX_LIMIT",
		"RAMLDOC_SCOPE", "RAMLDOC_RENDER_ENGINE",
		"RAMLDOC_MAX_INLINE_SIZE", "RAMLDOC_ALLOW_PRIVATE_IPS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearRAMLDOCEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.WalkLimit)
	assert.Equal(t, 25, c.WalkDetailLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, walker.ScopePublic, c.Scope)
	assert.Equal(t, "html", c.RenderEngine)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearRAMLDOCEnv(t)
	t.Setenv("RAMLDOC_CACHE_ENABLED", "false")
	t.Setenv("RAMLDOC_CACHE_MAX_SIZE", "50")
	t.Setenv("RAMLDOC_CACHE_FILE_TTL", "30m")
	t.Setenv("RAMLDOC_CACHE_URL_TTL", "2m")
	t.Setenv("RAMLDOC_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("RAMLDOC_WALK_LIMIT", "200")
	t.Setenv("RAMLDOC_MAX_LIMIT", "500")
	t.Setenv("RAMLDOC_SCOPE", "private")
	t.Setenv("RAMLDOC_RENDER_ENGINE", "mustache")
	t.Setenv("RAMLDOC_MAX_INLINE_SIZE", "5242880")
	t.Setenv("RAMLDOC_ALLOW_PRIVATE_IPS", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 200, c.WalkLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, walker.ScopePrivate, c.Scope)
	assert.Equal(t, "mustache", c.RenderEngine)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearRAMLDOCEnv(t)
	t.Setenv("RAMLDOC_CACHE_MAX_SIZE", "banana")
	t.Setenv("RAMLDOC_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("RAMLDOC_CACHE_ENABLED", "maybe")
	t.Setenv("RAMLDOC_WALK_LIMIT", "-5")
	t.Setenv("RAMLDOC_SCOPE", "internal")
	t.Setenv("RAMLDOC_RENDER_ENGINE", "jade")
	t.Setenv("RAMLDOC_MAX_LIMIT", "0")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.WalkLimit)
	assert.Equal(t, walker.ScopePublic, c.Scope)
	assert.Equal(t, "html", c.RenderEngine)
	assert.Equal(t, 1000, c.MaxLimit)
}
