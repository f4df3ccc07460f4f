package docgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/erraggy/ramldoc/config"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/sorter"
	"github.com/erraggy/ramldoc/transform"
	"github.com/erraggy/ramldoc/walker"
)

// dumpMu serializes debug dump writes; the last file processed wins.
var dumpMu sync.Mutex

// SourcePath returns the on-disk path of a FileSet path below the
// configured source root.
func (p *Plugin) SourcePath(file string) string {
	return filepath.Join(p.cfg.Src, filepath.FromSlash(file))
}

// Load parses the RAML file at path and prepares it for rendering: debug
// dump, base URI, scope walk, Markdown descriptions, and declaration-order
// sort of the top-level resources. Includes are confined to the source
// root.
func (p *Plugin) Load(path string) (*parser.Document, error) {
	logger := p.logger.With("path", path)
	result, err := parser.ParseWithOptions(
		parser.WithFilePath(path),
		parser.WithRootDir(p.cfg.Src),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	return p.Prepare(result)
}

// Prepare runs the steps of Load that follow parsing on an already parsed
// result. The document of result is modified in place.
func (p *Plugin) Prepare(result *parser.ParseResult) (*parser.Document, error) {
	path := result.SourcePath
	logger := p.logger.With("path", path)
	if err := p.dump(result.Document); err != nil {
		return nil, err
	}

	doc := parser.ResolveBaseURI(result.Document)
	w := walker.New(walker.WithScope(p.cfg.Scope), walker.WithLogger(logger))
	w.Walk(doc.Node())
	stats := w.Stats()
	logger.Debug("walked resources",
		"resources", stats.Resources, "methods", stats.Methods,
		"filteredResources", stats.FilteredResources, "filteredMethods", stats.FilteredMethods)

	if err := transform.RenderDescriptions(doc.Node(), p.md, p.cfg.PreprocessFor(p.cfg.Scope)); err != nil {
		return nil, fmt.Errorf("docgen: %s: %w", path, err)
	}
	if err := sorter.SortResources(result.Source, doc.Node().Get(parser.KeyResources), logger); err != nil {
		return nil, fmt.Errorf("docgen: %s: %w", path, err)
	}
	return doc, nil
}

func (p *Plugin) dump(doc *parser.Document) error {
	if p.cfg.Dump == config.DumpDisabled {
		return nil
	}
	raw, err := json.Marshal(doc.Node())
	if err != nil {
		return fmt.Errorf("docgen: dump: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "\t"); err != nil {
		return fmt.Errorf("docgen: dump: %w", err)
	}

	dumpMu.Lock()
	defer dumpMu.Unlock()
	p.logger.Debug("dumping tree", "path", p.cfg.Dump)
	if err := os.WriteFile(p.cfg.Dump, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: debug output meant to be read
		return fmt.Errorf("docgen: dump: %w", err)
	}
	return nil
}

// Context builds the render context of doc. Later layers replace earlier
// keys:
//
//  1. the document fields, plus minifyAssets and helpers
//  2. template.params
//  3. metadata, except the published resources of other documents
//  4. section, when configured
//
// Parameters, headers, responses and bodies are parser.Pairs in
// declaration order.
func (p *Plugin) Context(doc *parser.Document, metadata map[string]any) map[string]any {
	ctx, ok := doc.Node().TemplateValue().(map[string]any)
	if !ok {
		ctx = map[string]any{}
	}
	ctx["minifyAssets"] = p.cfg.Template.MinifyAssets
	ctx["helpers"] = p.cfg.Template.Helpers

	for k, v := range p.cfg.Template.Params {
		ctx[k] = v
	}
	for k, v := range metadata {
		if k == MetadataResources {
			continue
		}
		ctx[k] = v
	}
	if p.cfg.Section != "" {
		ctx["section"] = p.cfg.Section
	}
	return ctx
}
