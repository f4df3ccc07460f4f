// Package helpers provides the functions documentation templates call while
// rendering: lock icons for secured resources and methods, syntax
// highlighting for example bodies, and a few string conveniences.
package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/parser"
)

// Lock markup returned by [Lock].
const (
	// LockExternal marks an operation callers must authenticate for.
	LockExternal template.HTML = `<i class="lock lock-external" title="Authentication required"></i>`
	// LockInternal marks an operation secured by a single, non-list scheme
	// reference.
	LockInternal template.HTML = `<i class="lock lock-internal" title="Internal authentication"></i>`
)

// DefaultStyle is the chroma style [CSS] falls back to.
const DefaultStyle = "github"

// Lock decides which lock icon a securedBy value gets.
//
// A list yields LockExternal when at least one non-null scheme remains once
// the first null ("no authentication" alternative) is removed, and nothing
// otherwise. The empty list yields nothing. Any other set value yields
// LockInternal; nil, false, zero, and "" yield nothing.
//
// securedBy may be a *parser.Node, a []any, a []string, or a plain scalar.
func Lock(securedBy any) template.HTML {
	switch v := securedBy.(type) {
	case *parser.Node:
		if v.IsSequence() {
			nulls := make([]bool, len(v.Items))
			for i, item := range v.Items {
				nulls[i] = item.IsNull()
			}
			return lockList(nulls)
		}
		if v.Truthy() {
			return LockInternal
		}
		return ""
	case []any:
		nulls := make([]bool, len(v))
		for i, item := range v {
			nulls[i] = item == nil
		}
		return lockList(nulls)
	case []string:
		return lockList(make([]bool, len(v)))
	default:
		if parser.NewScalar(v).Truthy() {
			return LockInternal
		}
		return ""
	}
}

func lockList(nulls []bool) template.HTML {
	skipped := false
	for _, isNull := range nulls {
		if isNull && !skipped {
			skipped = true
			continue
		}
		if !isNull {
			return LockExternal
		}
	}
	return ""
}

// Highlight returns code as chroma-highlighted HTML: one span per line and
// per token, class-based styling, and no surrounding <pre>. The lexer is
// guessed from the content; plain text is used when nothing matches. Only
// the empty string yields "".
func Highlight(code string) template.HTML {
	if code == "" {
		return ""
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	out, err := format(chroma.Coalesce(lexer), code)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(code))
	}
	return template.HTML(out)
}

// HighlightAs is Highlight with an explicit lexer name, e.g. "json" or
// "xml". Unknown names fall back to content detection.
func HighlightAs(language, code string) template.HTML {
	lexer := lexers.Get(language)
	if lexer == nil {
		return Highlight(code)
	}
	if code == "" {
		return ""
	}
	out, err := format(chroma.Coalesce(lexer), code)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(code))
	}
	return template.HTML(out)
}

func format(lexer chroma.Lexer, code string) (string, error) {
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	if err := f.Format(&buf, styles.Get(DefaultStyle), it); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// CSS returns the stylesheet for the classes Highlight emits, using the named
// chroma style. Unknown names use chroma's fallback style.
func CSS(style string) (template.CSS, error) {
	if style == "" {
		style = DefaultStyle
	}
	var buf bytes.Buffer
	f := chromahtml.New(chromahtml.WithClasses(true))
	if err := f.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("helpers: %w", err)
	}
	return template.CSS(buf.String()), nil
}

// HTML marks already rendered markup, such as a Markdown description, as
// safe for html/template.
func HTML(v any) template.HTML {
	return template.HTML(text(v))
}

// JSON encodes v for embedding in a <script> block. Nodes keep their key
// order.
func JSON(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("helpers: json: %w", err)
	}
	return template.JS(data), nil
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case template.HTML:
		return string(s)
	case *parser.Node:
		return s.Str()
	default:
		return fmt.Sprint(s)
	}
}

// Title upper-cases the first letter of each word and leaves the rest
// alone, so "user accounts" and "OAuth scopes" become "User Accounts" and
// "OAuth Scopes".
func Title(v any) string {
	// Casers are stateful; one per call.
	return cases.Title(language.English, cases.NoLower).String(text(v))
}

// FuncMap returns the helper functions under their template names:
// lock, highlight, highlightAs, css, safeHTML, json, anchor, upper, lower,
// and title.
// Entries in overrides are added last and replace helpers of the same name.
func FuncMap(overrides map[string]any) template.FuncMap {
	fm := template.FuncMap{
		"lock":        Lock,
		"highlight":   func(v any) template.HTML { return Highlight(text(v)) },
		"highlightAs": func(lang string, v any) template.HTML { return HighlightAs(lang, text(v)) },
		"css":         CSS,
		"safeHTML":    HTML,
		"json":        JSON,
		"anchor":      func(v any) string { return pathutil.Anchor(text(v)) },
		"upper":       func(v any) string { return strings.ToUpper(text(v)) },
		"lower":       func(v any) string { return strings.ToLower(text(v)) },
		"title":       Title,
	}
	for name, fn := range overrides {
		fm[name] = fn
	}
	return fm
}
