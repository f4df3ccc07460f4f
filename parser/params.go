package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// paramPattern matches `<<name>>` and `<<name | !function>>`.
var paramPattern = regexp.MustCompile(`<<\s*([A-Za-z0-9_]+)\s*(?:\|\s*!([A-Za-z]+)\s*)?>>`)

// substitute replaces parameter references in every string scalar and
// mapping key of n. Unknown parameters are left as written.
func substitute(n *Node, params map[string]string) *Node {
	switch {
	case n == nil:
		return nil
	case n.IsMapping():
		out := NewMapping()
		for _, e := range n.Entries() {
			out.Set(expandParams(e.Key, params), substitute(e.Value, params))
		}
		return out
	case n.IsSequence():
		for i, item := range n.Items {
			n.Items[i] = substitute(item, params)
		}
		return n
	default:
		if s, ok := n.Value.(string); ok {
			n.Value = expandParams(s, params)
		}
		return n
	}
}

func expandParams(s string, params map[string]string) string {
	if !strings.Contains(s, "<<") {
		return s
	}
	return paramPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := paramPattern.FindStringSubmatch(match)
		value, ok := params[sub[1]]
		if !ok {
			return match
		}
		return applyParamFunction(sub[2], value)
	})
}

// applyParamFunction implements the RAML parameter functions.
func applyParamFunction(fn, value string) string {
	switch fn {
	case "":
		return value
	case "singularize":
		return singularize(value)
	case "pluralize":
		return pluralize(value)
	case "uppercase":
		return strings.ToUpper(value)
	case "lowercase":
		return strings.ToLower(value)
	case "uppercamelcase":
		return camelCase(value, true)
	case "lowercamelcase":
		return camelCase(value, false)
	default:
		return value
	}
}

func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "sses"), strings.HasSuffix(s, "xes"), strings.HasSuffix(s, "ches"), strings.HasSuffix(s, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		return s[:len(s)-1]
	}
	return s
}

func pluralize(s string) string {
	switch {
	case s == "":
		return s
	case strings.HasSuffix(s, "y") && len(s) > 1 && !strings.ContainsAny(s[len(s)-2:len(s)-1], "aeiou"):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "x"), strings.HasSuffix(s, "ch"), strings.HasSuffix(s, "sh"):
		return s + "es"
	}
	return s + "s"
}

// camelCase joins the words of s, title-casing each one. The first word is
// lower-cased unless upper is set.
func camelCase(s string, upper bool) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.' || r == '/'
	})
	titleCaser := cases.Title(language.English, cases.NoLower)
	lowerCaser := cases.Lower(language.English)
	var b strings.Builder
	for i, w := range words {
		if i == 0 && !upper {
			r := []rune(w)
			b.WriteString(lowerCaser.String(string(r[0])) + string(r[1:]))
			continue
		}
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}
