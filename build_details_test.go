package ramldoc

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestVersion verifies that Version() is "dev" or a release tag.
func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommit(t *testing.T) {
	result := Commit()
	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.GreaterOrEqual(t, len(result), 7, "short git hash expected, got: %s", result)
	}
}

func TestBuildTime(t *testing.T) {
	result := BuildTime()
	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.Contains(t, result, "T", "RFC3339 expected, got: %s", result)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	result := UserAgent()
	assert.Equal(t, "ramldoc/"+Version(), result)
	assert.NotContains(t, result, " ")
	assert.NotContains(t, result, "\n")
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()
	for _, want := range []string{"Version:", "Commit:", "Build Time:", "Go Version:", Version(), GoVersion()} {
		assert.Contains(t, result, want)
	}
}
