package mcpserver

import (
	"log/slog"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/erraggy/ramldoc/renderer"
	"github.com/erraggy/ramldoc/walker"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Walk tool defaults.
	WalkLimit       int
	WalkDetailLimit int
	MaxLimit        int

	// Scope used by walk and render tools when the call names none.
	Scope walker.Scope

	// Render tool defaults.
	RenderEngine string

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from RAMLDOC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("RAMLDOC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("RAMLDOC_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("RAMLDOC_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("RAMLDOC_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("RAMLDOC_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("RAMLDOC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		WalkLimit:          envInt("RAMLDOC_WALK_LIMIT", 100),
		WalkDetailLimit:    envInt("RAMLDOC_WALK_DETAIL_LIMIT", 25),
		MaxLimit:           envInt("RAMLDOC_MAX_LIMIT", 1000),
		Scope:              envScope("RAMLDOC_SCOPE", walker.ScopePublic),
		RenderEngine:       envEngine("RAMLDOC_RENDER_ENGINE", renderer.DefaultEngine),
		MaxInlineSize:      int64(envInt("RAMLDOC_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("RAMLDOC_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envScope(key string, fallback walker.Scope) walker.Scope {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if s := walker.Scope(v); s.IsValid() {
		return s
	}
	slog.Warn("invalid scope env var, using default", "key", key, "value", v, "default", string(fallback)) //nolint:gosec // G706: values are structured log fields, not format strings
	return fallback
}

func envEngine(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if slices.Contains(renderer.Engines(), v) {
		return v
	}
	slog.Warn("invalid engine env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
