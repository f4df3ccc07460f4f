package helpers

import (
	"bytes"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramldoc/parser"
)

func TestLock(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want template.HTML
	}{
		{"undefined", nil, ""},
		{"only no-auth alternative", []any{nil}, ""},
		{"no-auth plus scheme", []any{nil, "oauth2"}, LockExternal},
		{"scheme plus no-auth", []any{"oauth2", nil}, LockExternal},
		{"single scheme list", []any{"oauth2"}, LockExternal},
		{"two no-auth entries", []any{nil, nil}, ""},
		{"empty list", []any{}, ""},
		{"string list", []string{"basic"}, LockExternal},
		{"empty string list", []string{}, ""},
		{"non-list truthy", "oauth2", LockInternal},
		{"true", true, LockInternal},
		{"false", false, ""},
		{"empty string", "", ""},
		{"zero", 0, ""},
		{"node list", parser.NewSequence(parser.NewScalar(nil), parser.NewScalar("oauth_2_0")), LockExternal},
		{"node list of null", parser.NewSequence(parser.NewScalar(nil)), ""},
		{"node empty list", parser.NewSequence(), ""},
		{"node scalar", parser.NewScalar("oauth_2_0"), LockInternal},
		{"node null", parser.NewScalar(nil), ""},
		{"nil node", (*parser.Node)(nil), ""},
		{"node mapping", func() *parser.Node {
			m := parser.NewMapping()
			m.Set("oauth_2_0", parser.NewMapping())
			return m
		}(), LockInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lock(tt.in))
		})
	}
}

func TestLockDoesNotModifyInput(t *testing.T) {
	list := []any{nil, "oauth2"}
	node := parser.NewSequence(parser.NewScalar(nil), parser.NewScalar("oauth2"))

	Lock(list)
	Lock(node)

	assert.Equal(t, []any{nil, "oauth2"}, list)
	assert.Equal(t, 2, node.Len())
}

func TestHighlight(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, template.HTML(""), Highlight(""))
		assert.NotEmpty(t, Highlight("  \n"), "whitespace is still code")
	})

	t.Run("plain text is escaped", func(t *testing.T) {
		out := string(Highlight("a <b> & c"))
		assert.Contains(t, out, "&lt;b&gt;")
		assert.Contains(t, out, "&amp;")
		assert.NotContains(t, out, "<pre")
		assert.Contains(t, out, `<span class="line">`)
	})

	t.Run("explicit lexer", func(t *testing.T) {
		out := string(HighlightAs("json", `{"id": 1}`))
		assert.Contains(t, out, `class="p"`)
		assert.Contains(t, out, "&#34;id&#34;")
		assert.NotContains(t, out, "<pre")
	})

	t.Run("unknown lexer falls back", func(t *testing.T) {
		assert.Equal(t, Highlight("x = 1"), HighlightAs("no-such-language", "x = 1"))
	})

	t.Run("one line span per line", func(t *testing.T) {
		out := string(HighlightAs("json", "{\n  \"a\": true\n}\n"))
		assert.Equal(t, 3, strings.Count(out, `<span class="line">`))
	})
}

func TestCSS(t *testing.T) {
	css, err := CSS("")
	require.NoError(t, err)
	assert.Contains(t, string(css), ".chroma")

	other, err := CSS("monokai")
	require.NoError(t, err)
	assert.NotEqual(t, css, other)
}

func TestFuncMapInTemplate(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		data any
		want string
	}{
		{"lock external", `{{lock .}}`, []any{nil, "oauth2"}, string(LockExternal)},
		{"lock none", `[{{lock .}}]`, []any{nil}, "[]"},
		{"safe html", `{{safeHTML .}}`, "<p>Hi</p>", "<p>Hi</p>"},
		{"escaped without safeHTML", `{{.}}`, "<p>Hi</p>", "&lt;p&gt;Hi&lt;/p&gt;"},
		{"upper", `{{upper .}}`, "get", "GET"},
		{"lower node", `{{lower .}}`, parser.NewScalar("POST"), "post"},
		{"anchor", `{{anchor .}}`, "orders/{orderId}", "orders_orderId"},
		{"title", `{{title .}}`, "user accounts", "User Accounts"},
		{"title keeps inner capitals", `{{title .}}`, "OAuth scopes", "OAuth Scopes"},
		{"json in script", `<script>var d = {{json .}};</script>`, map[string]any{"a": 1}, `<script>var d = {"a":1};</script>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("t").Funcs(FuncMap(nil)).Parse(tt.tmpl)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, tmpl.Execute(&buf, tt.data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFuncMapOverrides(t *testing.T) {
	fm := FuncMap(map[string]any{
		"lock":  func(any) string { return "locked" },
		"extra": func() string { return "x" },
	})
	assert.Contains(t, fm, "highlight")
	assert.Contains(t, fm, "extra")

	tmpl, err := template.New("t").Funcs(fm).Parse(`{{lock .}}{{extra}}`)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, nil))
	assert.Equal(t, "lockedx", buf.String())
}
