package renderer

import (
	"html"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/erraggy/ramldoc/helpers"
	"github.com/erraggy/ramldoc/internal/pathutil"
)

// lambdas exposes the helpers to mustache templates. A lambda receives the
// raw section text, renders it against the current context, and transforms
// the result:
//
//	{{#helpers.lock}}{{{securedBy}}}{{/helpers.lock}}
//	{{#helpers.highlight}}{{{example}}}{{/helpers.highlight}}
//
// Functions in funcs that already have the lambda signature are passed
// through under their own name.
func lambdas(funcs map[string]any) map[string]any {
	m := map[string]any{
		"lock": mustache.LambdaFunc(func(text string, render mustache.RenderFunc) (string, error) {
			s, err := render(text)
			if err != nil {
				return "", err
			}
			return string(helpers.Lock(parseRendered(s))), nil
		}),
		"highlight": transformLambda(func(s string) string { return string(helpers.Highlight(s)) }),
		"anchor":    transformLambda(pathutil.Anchor),
		"upper":     transformLambda(strings.ToUpper),
		"lower":     transformLambda(strings.ToLower),
		"title":     transformLambda(func(s string) string { return helpers.Title(s) }),
	}
	for name, fn := range funcs {
		switch l := fn.(type) {
		case mustache.LambdaFunc:
			m[name] = l
		case func(string, mustache.RenderFunc) (string, error):
			m[name] = mustache.LambdaFunc(l)
		}
	}
	return m
}

func transformLambda(fn func(string) string) mustache.LambdaFunc {
	return func(text string, render mustache.RenderFunc) (string, error) {
		s, err := render(text)
		if err != nil {
			return "", err
		}
		return fn(html.UnescapeString(s)), nil
	}
}

// parseRendered recovers a securedBy value from its mustache rendering.
// Lists render as "[a <nil> b]", or "[a &lt;nil&gt; b]" through a double
// mustache; anything else is kept as the string.
func parseRendered(s string) any {
	s = strings.TrimSpace(html.UnescapeString(s))
	inner, ok := strings.CutPrefix(s, "[")
	if !ok || !strings.HasSuffix(inner, "]") {
		return s
	}
	fields := strings.Fields(strings.TrimSuffix(inner, "]"))
	list := make([]any, len(fields))
	for i, f := range fields {
		if f != "<nil>" {
			list[i] = f
		}
	}
	return list
}
