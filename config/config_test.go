package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramldoc/markdown"
	"github.com/erraggy/ramldoc/ramlerrors"
	"github.com/erraggy/ramldoc/transform"
	"github.com/erraggy/ramldoc/walker"
)

const yamlConfig = `
src: site
scope: private
section: reference
files:
  orders:
    src: apis/orders.raml
    dest: docs/orders
template:
  engine: mustache
  file: layouts/api.mustache
  minifyAssets: true
  params:
    title: My APIs
markdown:
  breaks: true
`

const tomlConfig = `
src = "site"
scope = "private"
section = "reference"

[files.orders]
src = "apis/orders.raml"
dest = "docs/orders"

[template]
engine = "mustache"
file = "layouts/api.mustache"
minifyAssets = true

[template.params]
title = "My APIs"

[markdown]
breaks = true
`

const jsonConfig = `{
  "src": "site",
  "scope": "private",
  "section": "reference",
  "files": {"orders": {"src": "apis/orders.raml", "dest": "docs/orders"}},
  "template": {
    "engine": "mustache",
    "file": "layouts/api.mustache",
    "minifyAssets": true,
    "params": {"title": "My APIs"}
  },
  "markdown": {"breaks": true}
}`

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "src", c.Src)
	assert.Equal(t, walker.ScopePublic, c.Scope)
	assert.Equal(t, "raml.json", c.Dump)
	assert.Equal(t, "html", c.Template.Engine)
	assert.Equal(t, "template.html", c.Template.File)
	assert.Equal(t, markdown.DefaultOptions(), c.Markdown)
	assert.NotNil(t, c.Files)
	assert.NotNil(t, c.Template.Params)
	assert.NoError(t, c.Validate())
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format Format
		data   string
	}{
		{FormatYAML, yamlConfig},
		{FormatTOML, tomlConfig},
		{FormatJSON, jsonConfig},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			c, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, "site", c.Src)
			assert.Equal(t, walker.ScopePrivate, c.Scope)
			assert.Equal(t, "reference", c.Section)
			assert.Equal(t, DefaultDump, c.Dump)
			assert.Equal(t, map[string]FileSpec{"orders": {Src: "apis/orders.raml", Dest: "docs/orders"}}, c.Files)
			assert.Equal(t, "mustache", c.Template.Engine)
			assert.Equal(t, "layouts/api.mustache", c.Template.File)
			assert.True(t, c.Template.MinifyAssets)
			assert.Equal(t, "My APIs", c.Template.Params["title"])
			assert.Equal(t, markdown.Options{GFM: true, Breaks: true, Unsafe: true}, c.Markdown, "unset markdown fields keep defaults")
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		data    string
		wantOpt string
		wantMsg string
	}{
		{"bad yaml", FormatYAML, "src: [", "config", "invalid yaml"},
		{"bad toml", FormatTOML, "src = ", "config", "invalid toml"},
		{"bad json", FormatJSON, "{", "config", "invalid json"},
		{"unknown json field", FormatJSON, `{"marked": {}}`, "config", "invalid json"},
		{"unknown format", Format("ini"), "", "config", "unsupported format"},
		{"bad scope", FormatYAML, "scope: internal", "scope", "must be public or private"},
		{"bad engine", FormatYAML, "template: {engine: jade}", "template.engine", "must be one of html, text, mustache"},
		{"missing src", FormatYAML, "files: {orders: {dest: docs/orders}}", "files.orders.src", "missing source file"},
		{"missing dest", FormatYAML, "files: {orders: {src: orders.raml}}", "files.orders.dest", "missing destination"},
		{"escaping dest", FormatYAML, "files: {orders: {src: orders.raml, dest: ../out}}", "files.orders.dest", "must stay inside"},
		{"root dest", FormatYAML, "files: {orders: {src: orders.raml, dest: ./}}", "files.orders.dest", "must stay inside"},
		{"bad name", FormatYAML, "files: {'my api': {src: orders.raml, dest: docs}}", "files.my api", "must not contain"},
		{"duplicate src", FormatYAML, "files: {a: {src: x.raml, dest: a}, b: {src: ./x.raml, dest: b}}", "files.b.src", "already configured for a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.ErrorIs(t, err, ramlerrors.ErrConfig)
			var cfgErr *ramlerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantOpt, cfgErr.Option)
			assert.Contains(t, cfgErr.Error(), tt.wantMsg)
		})
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ramldoc.yaml", FormatYAML, false},
		{"ramldoc.YML", FormatYAML, false},
		{"ramldoc.toml", FormatTOML, false},
		{"dir/ramldoc.json", FormatJSON, false},
		{"ramldoc.ini", "", true},
		{"ramldoc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ramlerrors.ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramldoc.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "site", c.Src)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ramlerrors.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSources(t *testing.T) {
	c := Default()
	c.Files = map[string]FileSpec{
		"orders":    {Src: "./apis/orders.raml", Dest: "/docs/orders/"},
		"customers": {Src: filepath.Join("apis", "customers.raml"), Dest: "docs/customers"},
	}
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"customers", "orders"}, c.FileNames())
	assert.Equal(t, map[string]Source{
		"apis/orders.raml":    {Name: "orders", Dest: "docs/orders"},
		"apis/customers.raml": {Name: "customers", Dest: "docs/customers"},
	}, c.Sources())
}

func TestPreprocessFor(t *testing.T) {
	c := Default()
	assert.Nil(t, c.PreprocessFor(walker.ScopePublic))

	c.Preprocess = map[walker.Scope]transform.PreprocessFunc{
		walker.ScopePrivate: strings.ToUpper,
	}
	assert.Nil(t, c.PreprocessFor(walker.ScopePublic))
	pre := c.PreprocessFor(walker.ScopePrivate)
	require.NotNil(t, pre)
	assert.Equal(t, "ABC", pre("abc"))
}

func TestResolvePaths(t *testing.T) {
	base := filepath.Join(string(filepath.Separator)+"site", "conf")
	abs := filepath.Join(string(filepath.Separator)+"abs", "template.html")

	c := Default()
	c.Template.File = abs
	c.ResolvePaths(base)
	assert.Equal(t, filepath.Join(base, "src"), c.Src)
	assert.Equal(t, abs, c.Template.File)
	assert.Equal(t, filepath.Join(base, "raml.json"), c.Dump)

	c = Default()
	c.Dump = DumpDisabled
	c.ResolvePaths(base)
	assert.Equal(t, DumpDisabled, c.Dump)
}
