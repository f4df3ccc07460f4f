package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/ramldoc/ramlerrors"
)

// DefaultMaxFileSize limits the size of the main file and of every
// !include target.
const DefaultMaxFileSize int64 = 10 << 20

// HeaderPrefix starts the first line of every RAML document.
const HeaderPrefix = "#%RAML"

// Parser loads RAML files into resource trees.
type Parser struct {
	// RootDir confines !include targets. Defaults to the directory of the
	// parsed file (or the working directory for in-memory input).
	RootDir string
	// MaxFileSize limits input and include sizes. 0 uses DefaultMaxFileSize.
	MaxFileSize int64
	// RequireHeader rejects documents whose first line is not a #%RAML header.
	RequireHeader bool
	// Logger receives diagnostics. Nil means no logging.
	Logger Logger
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{
		MaxFileSize:   DefaultMaxFileSize,
		RequireHeader: true,
	}
}

// ParseResult holds a parsed RAML document and the text it came from.
type ParseResult struct {
	// SourcePath is the file the document was read from.
	SourcePath string
	// Source is the original document text. The resource sorter reads
	// declaration order from it.
	Source []byte
	// RAMLVersion is the version from the header line, e.g. "0.8".
	RAMLVersion string
	// Document is the normalized resource tree.
	Document *Document
	// Warnings lists non-fatal problems such as undeclared traits.
	Warnings []string
	// Stats counts what the tree contains.
	Stats DocumentStats
	// LoadTime is how long parsing took.
	LoadTime time.Duration
}

// DocumentStats summarizes a parsed document.
type DocumentStats struct {
	ResourceCount int
	MethodCount   int
	TraitCount    int
}

// Parse reads and parses the RAML file at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: caller-selected input file
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: path, Message: "cannot read file", Cause: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("parser: cannot resolve path: %w", err)
	}
	return p.parse(data, path, abs)
}

// ParseReader parses RAML read from r. Includes resolve against RootDir or
// the working directory.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: "ParseReader.raml", Message: "cannot read input", Cause: err}
	}
	return p.ParseBytes(data)
}

// ParseBytes parses RAML held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	dir := p.RootDir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("parser: cannot determine working directory: %w", err)
		}
	}
	return p.parse(data, "ParseBytes.raml", filepath.Join(dir, "ParseBytes.raml"))
}

func (p *Parser) parse(data []byte, source, absPath string) (*ParseResult, error) {
	start := time.Now()
	logger := LoggerOrNop(p.Logger).With("source", source)

	maxSize := p.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if int64(len(data)) > maxSize {
		return nil, &ramlerrors.ParseError{Path: source, Message: fmt.Sprintf("file is %d bytes, limit is %d", len(data), maxSize)}
	}

	ramlVersion, hasHeader := headerVersion(data)
	if p.RequireHeader && !hasHeader {
		return nil, &ramlerrors.ParseError{Path: source, Line: 1, Message: "missing " + HeaderPrefix + " header"}
	}

	root := p.RootDir
	if root == "" {
		root = filepath.Dir(absPath)
	}
	dec := newDecoder(root, maxSize, logger)
	dec.includeStack = append(dec.includeStack, absPath)

	raw, err := dec.decodeBytes(data, source, filepath.Dir(absPath))
	if err != nil {
		return nil, err
	}
	if !raw.IsMapping() {
		return nil, &ramlerrors.ParseError{Path: source, Message: "document root must be a mapping"}
	}

	z := newNormalizer(raw, logger)
	doc := NewDocument(z.document(raw))

	result := &ParseResult{
		SourcePath:  source,
		Source:      data,
		RAMLVersion: ramlVersion,
		Document:    doc,
		Warnings:    z.warnings,
		Stats:       collectStats(doc, len(z.traits)),
		LoadTime:    time.Since(start),
	}
	logger.Debug("parsed RAML document",
		"title", doc.Title(),
		"resources", result.Stats.ResourceCount,
		"methods", result.Stats.MethodCount,
		"duration", result.LoadTime)
	return result, nil
}

// headerVersion extracts "0.8" from a leading "#%RAML 0.8" line.
func headerVersion(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	line, _, _ := bytes.Cut(data, []byte("\n"))
	s := strings.TrimSpace(string(line))
	if !strings.HasPrefix(s, HeaderPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(s, HeaderPrefix)), true
}

func collectStats(doc *Document, traits int) DocumentStats {
	stats := DocumentStats{TraitCount: traits}
	var visit func([]*Resource)
	visit = func(resources []*Resource) {
		for _, r := range resources {
			stats.ResourceCount++
			stats.MethodCount += len(r.Methods())
			visit(r.Resources())
		}
	}
	visit(doc.Resources())
	return stats
}
