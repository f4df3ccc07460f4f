// Package docgen is the pipeline plugin that renders RAML files to HTML
// documentation pages.
//
// For every configured RAML file present in the FileSet it parses the file,
// writes a debug dump, resolves the base URI, walks the resource tree with
// the configured scope, renders descriptions as Markdown, sorts the top-level
// resources into declaration order, and renders the template into
// {dest}/index.html. Once all files are rendered, api://<name>/<anchor>
// links in every HTML file of the set are pointed at the rendered pages.
//
// Files are processed concurrently; the first failure cancels the rest and
// is returned.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/ramldoc/config"
	"github.com/erraggy/ramldoc/markdown"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/pipeline"
	"github.com/erraggy/ramldoc/ramlerrors"
	"github.com/erraggy/ramldoc/renderer"
)

// MetadataResources is the metadata key the resources of a rendered document
// are published under.
const MetadataResources = "resources"

// Plugin renders configured RAML files. Create it with New.
type Plugin struct {
	cfg         *config.Config
	sources     map[string]config.Source
	md          *markdown.Renderer
	renderer    *renderer.Renderer
	logger      parser.Logger
	concurrency int
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// WithConcurrency limits how many files are processed at once. Zero or less
// means no limit.
func WithConcurrency(n int) Option {
	return func(p *Plugin) { p.concurrency = n }
}

// New validates cfg and returns a Plugin for it. A nil cfg uses
// config.Default.
func New(cfg *config.Config, opts ...Option) (*Plugin, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Plugin{
		cfg:     cfg,
		sources: cfg.Sources(),
		md:      markdown.New(cfg.Markdown),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = parser.LoggerOrNop(p.logger)

	r, err := renderer.New(cfg.Template.Engine,
		renderer.WithHelpers(cfg.Template.Helpers),
		renderer.WithLogger(p.logger),
	)
	if err != nil {
		return nil, err
	}
	p.renderer = r
	return p, nil
}

// Config returns the plugin configuration.
func (p *Plugin) Config() *config.Config { return p.cfg }

// unit is one configured file found in the FileSet.
type unit struct {
	file   string
	source config.Source
}

// Select returns the configured files present in files, in path order.
func (p *Plugin) Select(files *pipeline.FileSet) []string {
	var out []string
	for _, f := range files.Paths() {
		if _, ok := p.sources[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Run implements pipeline.Plugin. Links are rewritten once every selected
// file has been rendered, so pages see links to each other regardless of
// completion order.
func (p *Plugin) Run(ctx context.Context, files *pipeline.FileSet, pl *pipeline.Pipeline) error {
	selected := p.Select(files)
	p.logger.Debug("selected RAML files", "count", len(selected))

	g, gctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for _, f := range selected {
		u := unit{file: f, source: p.sources[f]}
		g.Go(func() error {
			return p.process(gctx, u, files, pl.Metadata())
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	targets := make(map[string]string, len(selected))
	for _, f := range selected {
		targets[p.sources[f].Name] = p.sources[f].Dest
	}
	changed := files.Rewrite(pipeline.HasExt(".html"), func(_ string, contents []byte) ([]byte, bool) {
		return RewriteLinks(contents, targets)
	})
	p.logger.Debug("rewrote api links", "files", changed)
	return nil
}

func (p *Plugin) process(ctx context.Context, u unit, files *pipeline.FileSet, meta *pipeline.Metadata) error {
	logger := p.logger.With("api", u.source.Name)
	src := p.SourcePath(u.file)
	logger.Debug("processing RAML file", "path", src)

	doc, err := p.Load(src)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	metadata := meta.Snapshot()
	meta.Set(MetadataResources, doc.Resources())

	html, err := p.Render(u.source.Name, doc, metadata)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := path.Join(u.source.Dest, "index.html")
	logger.Debug("returning rendered HTML", "dest", dest, "bytes", len(html))
	files.Set(dest, []byte(html))
	return nil
}

// Render merges the render context for doc and renders the configured
// template. Render errors name the document.
func (p *Plugin) Render(name string, doc *parser.Document, metadata map[string]any) (string, error) {
	html, err := p.renderer.RenderFile(p.cfg.Template.File, p.Context(doc, metadata))
	if err != nil {
		var renderErr *ramlerrors.RenderError
		if errors.As(err, &renderErr) {
			renderErr.Document = name
			return "", renderErr
		}
		return "", fmt.Errorf("docgen: %s: %w", name, err)
	}
	return html, nil
}
