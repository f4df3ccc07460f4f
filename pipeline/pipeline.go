// Package pipeline is a small static-site build pipeline: it reads a source
// directory into an in-memory [FileSet], runs [Plugin]s over it in order, and
// writes the result to a destination directory.
//
// Plugins may process files concurrently; the FileSet and [Metadata] are
// safe for concurrent use.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/parser"
)

// Default directories, relative to the working directory.
const (
	DefaultSource      = "src"
	DefaultDestination = "build"
)

// Plugin transforms the files of a build.
type Plugin interface {
	Run(ctx context.Context, files *FileSet, p *Pipeline) error
}

// PluginFunc adapts a function to the Plugin interface.
type PluginFunc func(ctx context.Context, files *FileSet, p *Pipeline) error

// Run implements Plugin.
func (f PluginFunc) Run(ctx context.Context, files *FileSet, p *Pipeline) error {
	return f(ctx, files, p)
}

// Pipeline runs plugins over the files of a source directory.
type Pipeline struct {
	source      string
	destination string
	clean       bool
	metadata    *Metadata
	plugins     []Plugin
	logger      parser.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSource sets the source directory.
func WithSource(dir string) Option {
	return func(p *Pipeline) { p.source = dir }
}

// WithDestination sets the destination directory.
func WithDestination(dir string) Option {
	return func(p *Pipeline) { p.destination = dir }
}

// WithClean removes the destination directory before writing.
func WithClean(clean bool) Option {
	return func(p *Pipeline) { p.clean = clean }
}

// WithMetadata seeds the global metadata.
func WithMetadata(values map[string]any) Option {
	return func(p *Pipeline) { p.metadata = NewMetadata(values) }
}

// WithLogger sets the logger for build progress.
func WithLogger(l parser.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New returns a Pipeline reading DefaultSource and writing
// DefaultDestination unless configured otherwise.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		source:      DefaultSource,
		destination: DefaultDestination,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metadata == nil {
		p.metadata = NewMetadata(nil)
	}
	p.logger = parser.LoggerOrNop(p.logger)
	return p
}

// Use appends plugins and returns p.
func (p *Pipeline) Use(plugins ...Plugin) *Pipeline {
	p.plugins = append(p.plugins, plugins...)
	return p
}

// Source returns the source directory.
func (p *Pipeline) Source() string { return p.source }

// Destination returns the destination directory.
func (p *Pipeline) Destination() string { return p.destination }

// Metadata returns the global metadata.
func (p *Pipeline) Metadata() *Metadata { return p.metadata }

// Logger returns the pipeline logger, never nil.
func (p *Pipeline) Logger() parser.Logger { return p.logger }

// Join resolves a slash-separated FileSet path against the source directory.
func (p *Pipeline) Join(path string) string {
	return filepath.Join(p.source, filepath.FromSlash(path))
}

// Build reads the source directory, runs every plugin, and writes the
// resulting files. Nothing is written when reading or any plugin fails.
func (p *Pipeline) Build(ctx context.Context) (*FileSet, error) {
	files, err := p.Read(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.Run(ctx, files); err != nil {
		return nil, err
	}
	if err := p.Write(files); err != nil {
		return nil, err
	}
	return files, nil
}

// Read loads every regular file below the source directory.
func (p *Pipeline) Read(ctx context.Context) (*FileSet, error) {
	files := NewFileSet()
	err := filepath.WalkDir(p.source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(p.source, path)
		if err != nil {
			return err
		}
		files.SetFile(rel, File{Contents: data, Mode: info.Mode().Perm()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: reading %s: %w", p.source, err)
	}
	p.logger.Debug("read source directory", "dir", p.source, "files", files.Len())
	return files, nil
}

// Run runs the plugins in order, stopping at the first error.
func (p *Pipeline) Run(ctx context.Context, files *FileSet) error {
	for i, plugin := range p.plugins {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := plugin.Run(ctx, files, p); err != nil {
			return fmt.Errorf("pipeline: plugin %d: %w", i, err)
		}
	}
	return nil
}

// Write stores files below the destination directory. Paths that would
// leave the destination or replace a symlink are rejected.
func (p *Pipeline) Write(files *FileSet) error {
	if p.clean {
		if err := os.RemoveAll(p.destination); err != nil {
			return fmt.Errorf("pipeline: cleaning %s: %w", p.destination, err)
		}
	}
	var errs []error
	for _, rel := range files.Paths() {
		f, _ := files.Get(rel)
		if err := p.writeFile(rel, f); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("pipeline: writing %s: %w", p.destination, errors.Join(errs...))
	}
	p.logger.Debug("wrote destination directory", "dir", p.destination, "files", files.Len())
	return nil
}

func (p *Pipeline) writeFile(rel string, f File) error {
	target, ok := pathutil.WithinRoot(p.destination, filepath.FromSlash(rel))
	if !ok {
		return fmt.Errorf("%s: path escapes destination", rel)
	}
	target, err := pathutil.SanitizeOutputPath(target)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	if err := os.WriteFile(target, f.Contents, f.Mode); err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	return nil
}
