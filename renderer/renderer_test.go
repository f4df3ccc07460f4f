package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cbroglie/mustache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramldoc/helpers"
	"github.com/erraggy/ramldoc/ramlerrors"
)

func writeTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func sampleData() map[string]any {
	return map[string]any{
		"title":       "Orders <API>",
		"description": "<p>Order management</p>",
		"securedBy":   []any{nil, "oauth_2_0"},
		"unsecured":   []any{nil},
		"resources": []any{
			map[string]any{"relativeUri": "/orders", "uniqueId": "orders"},
			map[string]any{"relativeUri": "/customers", "uniqueId": "customers"},
		},
	}
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		engine  string
		want    string
		wantErr bool
	}{
		{"", EngineHTML, false},
		{"html", EngineHTML, false},
		{"text", EngineText, false},
		{"mustache", EngineMustache, false},
		{"jade", "", true},
		{"HTML", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			r, err := New(tt.engine)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ramlerrors.ErrConfig)
				var cfgErr *ramlerrors.ConfigError
				require.True(t, errors.As(err, &cfgErr))
				assert.Equal(t, "template.engine", cfgErr.Option)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Engine())
		})
	}
}

func TestRenderFile(t *testing.T) {
	tests := []struct {
		name   string
		engine string
		tmpl   string
		want   string
	}{
		{
			name:   "html escapes and uses helpers",
			engine: EngineHTML,
			tmpl:   `<h1>{{.title}}</h1>{{safeHTML .description}}{{lock .securedBy}}{{range .resources}}<a href="#{{.uniqueId}}">{{.relativeUri}}</a>{{end}}`,
			want:   `<h1>Orders &lt;API&gt;</h1><p>Order management</p>` + string(helpers.LockExternal) + `<a href="#orders">/orders</a><a href="#customers">/customers</a>`,
		},
		{
			name:   "text does not escape",
			engine: EngineText,
			tmpl:   `{{.title}} {{upper "get"}}{{range .resources}} {{.relativeUri}}{{end}}`,
			want:   `Orders <API> GET /orders /customers`,
		},
		{
			name:   "mustache",
			engine: EngineMustache,
			tmpl:   `<h1>{{title}}</h1>{{{description}}}{{#resources}}<a href="#{{uniqueId}}">{{relativeUri}}</a>{{/resources}}`,
			want:   `<h1>Orders &lt;API&gt;</h1><p>Order management</p><a href="#orders">/orders</a><a href="#customers">/customers</a>`,
		},
		{
			name:   "mustache lock lambda",
			engine: EngineMustache,
			tmpl:   `[{{#helpers.lock}}{{{securedBy}}}{{/helpers.lock}}][{{#helpers.lock}}{{{missing}}}{{/helpers.lock}}]`,
			want:   `[` + string(helpers.LockExternal) + `][]`,
		},
		{
			name:   "mustache lock lambda escaped",
			engine: EngineMustache,
			tmpl:   `[{{#helpers.lock}}{{unsecured}}{{/helpers.lock}}][{{#helpers.lock}}{{securedBy}}{{/helpers.lock}}]`,
			want:   `[][` + string(helpers.LockExternal) + `]`,
		},
		{
			name:   "mustache transform lambdas",
			engine: EngineMustache,
			tmpl:   `{{#helpers.upper}}{{title}}{{/helpers.upper}} {{#helpers.anchor}}{{#resources}}{{relativeUri}}{{/resources}}{{/helpers.anchor}}`,
			want:   `ORDERS <API> orders_customers`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.engine)
			require.NoError(t, err)
			out, err := r.RenderFile(writeTemplate(t, "template", tt.tmpl), sampleData())
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRenderFileHighlight(t *testing.T) {
	r, err := New(EngineMustache)
	require.NoError(t, err)
	out, err := r.RenderFile(writeTemplate(t, "t.mustache", `{{#helpers.highlight}}{{example}}{{/helpers.highlight}}`),
		map[string]any{"example": `a < b`})
	require.NoError(t, err)
	assert.Equal(t, string(helpers.Highlight("a < b")), out)
}

func TestRenderFileMustachePartials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resource.mustache"), []byte(`<li>{{relativeUri}}</li>`), 0o600))
	main := filepath.Join(dir, "template.mustache")
	require.NoError(t, os.WriteFile(main, []byte(`<ul>{{#resources}}{{> resource}}{{/resources}}</ul>`), 0o600))

	r, err := New(EngineMustache)
	require.NoError(t, err)
	out, err := r.RenderFile(main, sampleData())
	require.NoError(t, err)
	assert.Equal(t, `<ul><li>/orders</li><li>/customers</li></ul>`, out)
}

func TestRenderFileErrors(t *testing.T) {
	tests := []struct {
		name   string
		engine string
		file   func(t *testing.T) string
	}{
		{"missing html template", EngineHTML, func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.html") }},
		{"missing mustache template", EngineMustache, func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.mustache") }},
		{"html parse error", EngineHTML, func(t *testing.T) string { return writeTemplate(t, "bad.html", `{{.title`) }},
		{"text exec error", EngineText, func(t *testing.T) string { return writeTemplate(t, "bad.txt", `{{template "nope"}}`) }},
		{"unknown function", EngineHTML, func(t *testing.T) string { return writeTemplate(t, "bad.html", `{{shout .title}}`) }},
		{"mustache syntax", EngineMustache, func(t *testing.T) string { return writeTemplate(t, "bad.mustache", `{{#open}}`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.engine)
			require.NoError(t, err)
			file := tt.file(t)
			_, err = r.RenderFile(file, sampleData())
			require.Error(t, err)
			assert.ErrorIs(t, err, ramlerrors.ErrRender)
			var renderErr *ramlerrors.RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.engine, renderErr.Engine)
			assert.Equal(t, file, renderErr.Template)
		})
	}
}

func TestWithHelpers(t *testing.T) {
	shout := func(v any) string { return "!" + v.(string) + "!" }
	echo := mustache.LambdaFunc(func(text string, render mustache.RenderFunc) (string, error) {
		s, err := render(text)
		return s + s, err
	})

	t.Run("html", func(t *testing.T) {
		r, err := New(EngineHTML, WithHelpers(map[string]any{"shout": shout}))
		require.NoError(t, err)
		out, err := r.RenderFile(writeTemplate(t, "t.html", `{{shout "hi"}} {{upper "x"}}`), nil)
		require.NoError(t, err)
		assert.Equal(t, "!hi! X", out)
	})

	t.Run("mustache", func(t *testing.T) {
		r, err := New(EngineMustache, WithHelpers(map[string]any{"echo": echo, "shout": shout}))
		require.NoError(t, err)
		out, err := r.RenderFile(writeTemplate(t, "t.mustache", `{{#helpers.echo}}ab{{/helpers.echo}}{{#helpers.shout}}x{{/helpers.shout}}`), nil)
		require.NoError(t, err)
		assert.Equal(t, "abab", out)
	})
}

func TestParseRendered(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"oauth_2_0", "oauth_2_0"},
		{"[<nil>]", []any{nil}},
		{"[<nil> oauth_2_0]", []any{nil, "oauth_2_0"}},
		{"[&lt;nil&gt;]", []any{nil}},
		{"[&lt;nil&gt; basic]", []any{nil, "basic"}},
		{"o&amp;auth", "o&auth"},
		{"[]", []any{}},
		{" [basic] ", []any{"basic"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRendered(tt.in))
		})
	}
}
