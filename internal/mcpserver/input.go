package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/erraggy/ramldoc"
	"github.com/erraggy/ramldoc/parser"
)

// specInput represents the three ways a RAML document can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a RAML file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a RAML document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline RAML document content"`
}

// inputKind says which field of a specInput is set.
type inputKind int

const (
	inputNone inputKind = iota
	inputFile
	inputURL
	inputContent
)

// kind returns the single input set, or inputNone with the number of
// inputs set when that is not exactly one.
func (s specInput) kind() (inputKind, int) {
	set := 0
	k := inputNone
	if s.File != "" {
		set, k = set+1, inputFile
	}
	if s.URL != "" {
		set, k = set+1, inputURL
	}
	if s.Content != "" {
		set, k = set+1, inputContent
	}
	if set != 1 {
		return inputNone, set
	}
	return k, set
}

// ttl is how long a parse of this kind of input stays cached.
func (k inputKind) ttl() time.Duration {
	switch k {
	case inputFile:
		return cfg.CacheFileTTL
	case inputURL:
		return cfg.CacheURLTTL
	default:
		return cfg.CacheContentTTL
	}
}

// cacheKey identifies the parse of s. Files are keyed by absolute path and
// modification time, so edits miss the cache; inline content by its
// SHA-256. An empty key means the input is not cacheable.
func (s specInput) cacheKey() string {
	switch k, _ := s.kind(); k {
	case inputFile:
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case inputContent:
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	case inputURL:
		return "url:" + s.URL
	default:
		return ""
	}
}

// resolve parses the document from whichever input was provided, using the
// cache for all three input kinds.
//
// Cached results are shared between calls. Tools that walk or render the
// tree must work on a copy, see document.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	kind, set := s.kind()
	if kind == inputNone {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", set)
	}
	if kind == inputContent && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RAMLDOC_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = s.cacheKey()
	}
	if key != "" {
		if hit := specCache.lookup(key); hit != nil {
			return hit, nil
		}
	}

	var opts []parser.Option
	switch kind {
	case inputFile:
		opts = append(opts, parser.WithFilePath(s.File))
	case inputURL:
		data, err := fetch(ctx, s.URL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithBytes(data), parser.WithSourceName(s.URL))
	case inputContent:
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("content.raml"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.store(key, result, kind.ttl())
	}

	return result, nil
}

// fetch downloads a RAML document. Private addresses are refused unless
// RAMLDOC_ALLOW_PRIVATE_IPS is set.
func fetch(ctx context.Context, url string) ([]byte, error) {
	client := fetchClient(cfg.AllowPrivateIPs)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	req.Header.Set("User-Agent", ramldoc.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("fetching %s: document exceeds %d bytes", url, cfg.MaxInlineSize)
	}
	return data, nil
}

// document returns a private copy of the parsed tree, safe to walk or
// render without touching the cached result.
func document(result *parser.ParseResult) *parser.ParseResult {
	c := *result
	c.Document = parser.NewDocument(result.Document.Node().Clone())
	c.Warnings = slices.Clone(result.Warnings)
	return &c
}
