package docgen

import (
	"regexp"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/pipeline"
)

// apiLink matches href="api://<name>/<anchor path>" with its leading
// whitespace.
var apiLink = regexp.MustCompile(`(?i)(\s+)href="api://([^/"]+)/([^"]*)"`)

// RewriteLinks points api://name/... links at the pages in targets, which
// maps API names to destination directories:
//
//	href="api://orders/createOrder" -> href="/docs/orders#createOrder"
//	href="api://orders/"            -> href="/docs/orders"
//
// The anchor path is reduced with pathutil.Anchor. Links to names missing
// from targets are left alone. RewriteLinks reports whether anything
// changed.
func RewriteLinks(contents []byte, targets map[string]string) ([]byte, bool) {
	if len(targets) == 0 || !apiLink.Match(contents) {
		return contents, false
	}
	changed := false
	out := apiLink.ReplaceAllFunc(contents, func(match []byte) []byte {
		m := apiLink.FindSubmatch(match)
		dest, ok := targets[string(m[2])]
		if !ok {
			return match
		}
		changed = true
		link := "/" + pipeline.NormalizePath(dest)
		if anchor := pathutil.Anchor(string(m[3])); anchor != "" {
			link += "#" + anchor
		}
		rewritten := append([]byte{}, m[1]...)
		rewritten = append(rewritten, `href="`...)
		return append(rewritten, link+`"`...)
	})
	if !changed {
		return contents, false
	}
	return out, true
}
