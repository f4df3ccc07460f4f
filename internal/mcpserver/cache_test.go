package mcpserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/ramldoc/parser"
)

func TestParseCacheRecency(t *testing.T) {
	c := newParseCache(2)
	a, b, d := &parser.ParseResult{SourcePath: "a"}, &parser.ParseResult{SourcePath: "b"}, &parser.ParseResult{SourcePath: "d"}

	c.store("a", a, time.Hour)
	c.store("b", b, time.Hour)
	assert.Same(t, a, c.lookup("a"), "touch a so b is least recently used")
	c.store("d", d, time.Hour)

	assert.Equal(t, 2, c.len())
	assert.Same(t, a, c.lookup("a"))
	assert.Nil(t, c.lookup("b"))
	assert.Same(t, d, c.lookup("d"))
}

func TestParseCacheReplace(t *testing.T) {
	c := newParseCache(2)
	first, second := &parser.ParseResult{}, &parser.ParseResult{}
	c.store("k", first, time.Hour)
	c.store("k", second, time.Hour)
	assert.Equal(t, 1, c.len())
	assert.Same(t, second, c.lookup("k"))
}

func TestParseCacheExpiredLookupDrops(t *testing.T) {
	c := newParseCache(4)
	c.store("old", &parser.ParseResult{}, -time.Millisecond)
	assert.Nil(t, c.lookup("old"))
	assert.Equal(t, 0, c.len())
}

func TestParseCachePurgeExpired(t *testing.T) {
	c := newParseCache(4)
	c.store("a", &parser.ParseResult{}, -time.Second)
	c.store("b", &parser.ParseResult{}, time.Hour)
	c.store("c", &parser.ParseResult{}, -time.Second)
	assert.Equal(t, 2, c.purgeExpired())
	assert.Equal(t, 1, c.len())
}

func TestParseCacheSingleJanitor(t *testing.T) {
	c := newParseCache(4)
	ctx, cancel := context.WithCancel(context.Background())
	c.runJanitor(ctx, time.Hour)
	assert.True(t, c.janitor.Load())
	c.runJanitor(ctx, time.Hour)
	cancel()
	assert.Eventually(t, func() bool { return !c.janitor.Load() }, time.Second, 5*time.Millisecond)

	c.runJanitor(context.Background(), 0)
	assert.False(t, c.janitor.Load(), "zero interval starts nothing")
}

func TestSpecInputKind(t *testing.T) {
	tests := []struct {
		name string
		in   specInput
		kind inputKind
		set  int
	}{
		{"none", specInput{}, inputNone, 0},
		{"file", specInput{File: "api.raml"}, inputFile, 1},
		{"url", specInput{URL: "https://example.com/api.raml"}, inputURL, 1},
		{"content", specInput{Content: "#%RAML 0.8"}, inputContent, 1},
		{"two", specInput{File: "api.raml", Content: "x"}, inputNone, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, set := tt.in.kind()
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.set, set)
		})
	}
}

func TestInputKindTTL(t *testing.T) {
	withConfig(t, func(c *serverConfig) {
		c.CacheFileTTL = time.Minute
		c.CacheURLTTL = 2 * time.Minute
		c.CacheContentTTL = 3 * time.Minute
	})
	assert.Equal(t, time.Minute, inputFile.ttl())
	assert.Equal(t, 2*time.Minute, inputURL.ttl())
	assert.Equal(t, 3*time.Minute, inputContent.ttl())
}
