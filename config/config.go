// Package config holds the documentation plugin configuration and loads it
// from YAML, TOML, or JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/ramldoc/markdown"
	"github.com/erraggy/ramldoc/pipeline"
	"github.com/erraggy/ramldoc/ramlerrors"
	"github.com/erraggy/ramldoc/renderer"
	"github.com/erraggy/ramldoc/transform"
	"github.com/erraggy/ramldoc/walker"
)

// Defaults applied by Default and ApplyDefaults.
const (
	DefaultSrc          = "src"
	DefaultTemplateFile = "template.html"
	DefaultDump         = "raml.json"
	// DumpDisabled as the dump path turns the debug dump off.
	DumpDisabled = "-"
)

// Format identifies a configuration file syntax.
type Format string

// Supported configuration formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FileSpec maps one RAML source file to its output directory.
type FileSpec struct {
	// Src is the RAML file, relative to the source root.
	Src string `yaml:"src" toml:"src" json:"src"`
	// Dest is the output directory; the page is written to Dest/index.html.
	Dest string `yaml:"dest" toml:"dest" json:"dest"`
}

// Template configures rendering.
type Template struct {
	Engine       string         `yaml:"engine" toml:"engine" json:"engine"`
	File         string         `yaml:"file" toml:"file" json:"file"`
	MinifyAssets bool           `yaml:"minifyAssets" toml:"minifyAssets" json:"minifyAssets"`
	Params       map[string]any `yaml:"params" toml:"params" json:"params"`

	// Helpers adds template functions or replaces built-in ones. It can
	// only be set from Go.
	Helpers map[string]any `yaml:"-" toml:"-" json:"-"`
}

// Config is the documentation plugin configuration.
type Config struct {
	// Src is the source root the RAML files are read from.
	Src string `yaml:"src" toml:"src" json:"src"`
	// Scope is "public" (default) or "private".
	Scope walker.Scope `yaml:"scope" toml:"scope" json:"scope"`
	// Section is merged into the render context when set.
	Section string `yaml:"section" toml:"section" json:"section"`
	// Dump is the debug dump path, DumpDisabled to skip it.
	Dump string `yaml:"dump" toml:"dump" json:"dump"`
	// Files maps logical API names, used by api:// links, to their files.
	Files    map[string]FileSpec `yaml:"files" toml:"files" json:"files"`
	Template Template            `yaml:"template" toml:"template" json:"template"`
	Markdown markdown.Options    `yaml:"markdown" toml:"markdown" json:"markdown"`

	// Preprocess selects a description pre-processor per scope. It can only
	// be set from Go.
	Preprocess map[walker.Scope]transform.PreprocessFunc `yaml:"-" toml:"-" json:"-"`
}

// Default returns a Config with every default applied and no files.
func Default() *Config {
	c := &Config{Markdown: markdown.DefaultOptions()}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Src == "" {
		c.Src = DefaultSrc
	}
	if c.Scope == "" {
		c.Scope = walker.ScopePublic
	}
	if c.Dump == "" {
		c.Dump = DefaultDump
	}
	if c.Template.Engine == "" {
		c.Template.Engine = renderer.DefaultEngine
	}
	if c.Template.File == "" {
		c.Template.File = DefaultTemplateFile
	}
	if c.Files == nil {
		c.Files = map[string]FileSpec{}
	}
	if c.Template.Params == nil {
		c.Template.Params = map[string]any{}
	}
}

// Validate reports the first invalid setting as a *ramlerrors.ConfigError.
func (c *Config) Validate() error {
	if !c.Scope.IsValid() {
		return &ramlerrors.ConfigError{Option: "scope", Value: string(c.Scope), Message: "must be public or private"}
	}
	if !slices.Contains(renderer.Engines(), c.Template.Engine) {
		return &ramlerrors.ConfigError{
			Option:  "template.engine",
			Value:   c.Template.Engine,
			Message: "must be one of " + strings.Join(renderer.Engines(), ", "),
		}
	}

	seen := make(map[string]string, len(c.Files))
	for _, name := range c.FileNames() {
		spec := c.Files[name]
		option := "files." + name
		switch {
		case strings.ContainsAny(name, "/ "):
			return &ramlerrors.ConfigError{Option: option, Message: "name must not contain '/' or spaces"}
		case spec.Src == "":
			return &ramlerrors.ConfigError{Option: option + ".src", Message: "missing source file"}
		case spec.Dest == "":
			return &ramlerrors.ConfigError{Option: option + ".dest", Message: "missing destination"}
		case escapes(spec.Dest):
			return &ramlerrors.ConfigError{Option: option + ".dest", Value: spec.Dest, Message: "must stay inside the build directory"}
		}
		src := pipeline.NormalizePath(spec.Src)
		if other, dup := seen[src]; dup {
			return &ramlerrors.ConfigError{Option: option + ".src", Value: spec.Src, Message: "already configured for " + other}
		}
		seen[src] = name
	}
	return nil
}

func escapes(p string) bool {
	n := pipeline.NormalizePath(p)
	return n == "" || n == ".." || strings.HasPrefix(n, "../")
}

// FileNames returns the configured API names in sorted order.
func (c *Config) FileNames() []string {
	names := make([]string, 0, len(c.Files))
	for name := range c.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source is a configured file looked up by its source path.
type Source struct {
	Name string
	Dest string
}

// Sources indexes the configured files by normalized source path, the form
// pipeline.FileSet keys use. Dest is slash-separated without surrounding
// slashes.
func (c *Config) Sources() map[string]Source {
	out := make(map[string]Source, len(c.Files))
	for name, spec := range c.Files {
		out[pipeline.NormalizePath(spec.Src)] = Source{Name: name, Dest: pipeline.NormalizePath(spec.Dest)}
	}
	return out
}

// PreprocessFor returns the description pre-processor for scope, or nil.
func (c *Config) PreprocessFor(scope walker.Scope) transform.PreprocessFunc {
	return c.Preprocess[scope]
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &ramlerrors.ConfigError{Option: "config", Value: path, Message: "unsupported file extension (want .yaml, .yml, .toml, or .json)"}
	}
}

// ResolvePaths joins the relative src, template file, and dump paths onto
// base, usually the directory of the configuration file.
func (c *Config) ResolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.Src = resolve(c.Src)
	c.Template.File = resolve(c.Template.File)
	if c.Dump != DumpDisabled {
		c.Dump = resolve(c.Dump)
	}
}

// Load reads, decodes, and validates the configuration file at path.
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ramlerrors.ConfigError{Option: "config", Value: path, Message: "cannot read file", Cause: err}
	}
	return Decode(data, format)
}

// Decode parses data in format over the defaults and validates the result.
// Unknown JSON fields are rejected.
func Decode(data []byte, format Format) (*Config, error) {
	c := Default()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, c)
	case FormatTOML:
		err = toml.Unmarshal(data, c)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(c)
	default:
		return nil, &ramlerrors.ConfigError{Option: "config", Value: string(format), Message: "unsupported format"}
	}
	if err != nil {
		return nil, &ramlerrors.ConfigError{Option: "config", Message: fmt.Sprintf("invalid %s", format), Cause: err}
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
