// Package markdown renders RAML description text to HTML with goldmark.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Options selects Markdown dialect features.
type Options struct {
	// GFM enables GitHub Flavored Markdown: tables, strikethrough,
	// autolinks, and task lists.
	GFM bool `yaml:"gfm" toml:"gfm" json:"gfm"`
	// Breaks renders single newlines inside paragraphs as <br>.
	Breaks bool `yaml:"breaks" toml:"breaks" json:"breaks"`
	// Typographer replaces quotes, dashes, and ellipses with typographic
	// punctuation.
	Typographer bool `yaml:"typographer" toml:"typographer" json:"typographer"`
	// Unsafe passes raw HTML in descriptions through. When false it is
	// replaced with a comment.
	Unsafe bool `yaml:"unsafe" toml:"unsafe" json:"unsafe"`
}

// DefaultOptions returns GFM with raw HTML allowed.
func DefaultOptions() Options {
	return Options{GFM: true, Unsafe: true}
}

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer for opts.
func New(opts Options) *Renderer {
	var exts []goldmark.Extender
	if opts.GFM {
		exts = append(exts, extension.GFM)
	}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var rendererOpts []renderer.Option
	if opts.Breaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(rendererOpts...),
		),
	}
}

// Render converts text to HTML. Empty text yields "".
func (r *Renderer) Render(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return buf.String(), nil
}
