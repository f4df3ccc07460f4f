package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/ramlerrors"
)

// IncludeTag is the YAML tag RAML uses to splice in another file.
const IncludeTag = "!include"

// decoder converts yaml.Node trees into Node trees, resolving aliases,
// merge keys, and !include tags.
type decoder struct {
	root        string
	maxFileSize int64
	logger      Logger

	// includeStack holds the absolute paths of the files being decoded.
	includeStack []string
	// expanding holds the alias targets currently being converted.
	expanding map[*yaml.Node]bool
}

func newDecoder(root string, maxFileSize int64, logger Logger) *decoder {
	return &decoder{
		root:        root,
		maxFileSize: maxFileSize,
		logger:      logger,
		expanding:   make(map[*yaml.Node]bool),
	}
}

// decodeBytes parses data as YAML. source names the data in errors and dir
// is the directory !include targets are resolved against.
func (d *decoder) decodeBytes(data []byte, source, dir string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ramlerrors.ParseError{Path: source, Message: "invalid YAML", Cause: err}
	}
	if doc.Kind == 0 {
		return NewScalar(nil), nil
	}
	return d.convert(&doc, source, dir)
}

func (d *decoder) convert(yn *yaml.Node, source, dir string) (*Node, error) {
	switch yn.Kind {
	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return NewScalar(nil), nil
		}
		return d.convert(yn.Content[0], source, dir)

	case yaml.AliasNode:
		if d.expanding[yn.Alias] {
			return nil, &ramlerrors.ParseError{Path: source, Line: yn.Line, Column: yn.Column, Message: "recursive alias *" + yn.Value}
		}
		d.expanding[yn.Alias] = true
		defer delete(d.expanding, yn.Alias)
		return d.convert(yn.Alias, source, dir)

	case yaml.MappingNode:
		return d.convertMapping(yn, source, dir)

	case yaml.SequenceNode:
		seq := NewSequence()
		seq.Items = make([]*Node, 0, len(yn.Content))
		for _, item := range yn.Content {
			n, err := d.convert(item, source, dir)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, n)
		}
		return seq, nil

	case yaml.ScalarNode:
		if yn.Tag == IncludeTag {
			return d.include(yn, source, dir)
		}
		return scalarFromYAML(yn), nil

	default:
		return nil, &ramlerrors.ParseError{Path: source, Line: yn.Line, Column: yn.Column, Message: fmt.Sprintf("unsupported YAML node kind %d", yn.Kind)}
	}
}

func (d *decoder) convertMapping(yn *yaml.Node, source, dir string) (*Node, error) {
	m := NewMapping()
	var merges []*yaml.Node
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			merges = append(merges, v)
			continue
		}
		if k.Kind != yaml.ScalarNode {
			return nil, &ramlerrors.ParseError{Path: source, Line: k.Line, Column: k.Column, Message: "mapping keys must be scalars"}
		}
		val, err := d.convert(v, source, dir)
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, val)
	}

	// Explicit keys win over merged ones regardless of position.
	for _, mv := range merges {
		merged, err := d.convert(mv, source, dir)
		if err != nil {
			return nil, err
		}
		sources := []*Node{merged}
		if merged.IsSequence() {
			sources = merged.Items
		}
		for _, src := range sources {
			if !src.IsMapping() {
				return nil, &ramlerrors.ParseError{Path: source, Line: mv.Line, Column: mv.Column, Message: "merge value must be a mapping"}
			}
			for _, e := range src.Entries() {
				if !m.Has(e.Key) {
					m.Set(e.Key, e.Value)
				}
			}
		}
	}
	return m, nil
}

// include loads the file named by an !include scalar. YAML and RAML files
// are decoded as trees; anything else becomes a string scalar.
func (d *decoder) include(yn *yaml.Node, source, dir string) (*Node, error) {
	target := strings.TrimSpace(yn.Value)
	if target == "" {
		return nil, &ramlerrors.IncludeError{Message: fmt.Sprintf("empty !include in %s at line %d", source, yn.Line)}
	}

	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	abs, ok := pathutil.WithinRoot(d.root, resolved)
	if !ok {
		return nil, &ramlerrors.IncludeError{Target: target, IsPathTraversal: true}
	}
	if slices.Contains(d.includeStack, abs) {
		return nil, &ramlerrors.IncludeError{Target: target, IsCircular: true}
	}

	data, err := os.ReadFile(abs) //nolint:gosec // G304: confined to the source root above
	if err != nil {
		return nil, &ramlerrors.IncludeError{Target: target, Message: "cannot read file", Cause: err}
	}
	if d.maxFileSize > 0 && int64(len(data)) > d.maxFileSize {
		return nil, &ramlerrors.IncludeError{
			Target:  target,
			Message: fmt.Sprintf("file is %d bytes, limit is %d", len(data), d.maxFileSize),
		}
	}
	d.logger.Debug("resolved include", "target", target, "bytes", len(data))

	switch strings.ToLower(filepath.Ext(abs)) {
	case ".raml", ".yaml", ".yml":
		d.includeStack = append(d.includeStack, abs)
		defer func() { d.includeStack = d.includeStack[:len(d.includeStack)-1] }()
		return d.decodeBytes(data, abs, filepath.Dir(abs))
	default:
		return NewScalar(string(data)), nil
	}
}

func scalarFromYAML(yn *yaml.Node) *Node {
	switch yn.ShortTag() {
	case "!!null":
		return NewScalar(nil)
	case "!!bool":
		var b bool
		if err := yn.Decode(&b); err == nil {
			return NewScalar(b)
		}
	case "!!int":
		var i int
		if err := yn.Decode(&i); err == nil {
			return NewScalar(i)
		}
	case "!!float":
		var f float64
		if err := yn.Decode(&f); err == nil {
			return NewScalar(f)
		}
	}
	return NewScalar(yn.Value)
}
