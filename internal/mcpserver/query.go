package mcpserver

import (
	"cmp"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// paginate returns the page of items starting at offset. A non-positive
// limit means cfg.WalkLimit; no page is longer than cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.WalkLimit
	}
	limit = min(limit, cfg.MaxLimit)
	if offset < 0 || offset >= len(items) {
		return nil
	}
	return items[offset:min(offset+limit, len(items))]
}

// detailLimit is the page size for detail output: full nodes are large, so
// an unset limit falls back to cfg.WalkDetailLimit.
func detailLimit(limit int) int {
	if limit <= 0 {
		return cfg.WalkDetailLimit
	}
	return limit
}

// makeSlice returns nil for n == 0 so empty lists are omitted from JSON.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// groupCount is one bucket of a group_by result.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort counts items per key, largest group first and ties by key.
// An item may fall into several groups.
func groupAndSort[T any](items []T, keys func(T) []string) []groupCount {
	counts := map[string]int{}
	for _, item := range items {
		for _, k := range keys(item) {
			counts[k]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, groupCount{Key: k, Count: n})
	}
	slices.SortFunc(groups, func(a, b groupCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Key, b.Key))
	})
	return groups
}

// validateGroupBy accepts an empty groupBy or one of allowed, compared
// case-insensitively. Grouping and detail output exclude each other.
func validateGroupBy(groupBy string, detail bool, allowed []string) error {
	switch {
	case groupBy == "":
		return nil
	case detail:
		return fmt.Errorf("cannot use both group_by and detail")
	case slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, groupBy) }):
		return nil
	default:
		return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
	}
}

// validateGlobPattern rejects malformed path patterns up front, so
// matchWalkPath can treat a match error as a miss.
func validateGlobPattern(pattern string) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchWalkPath reports whether a full resource URL matches pattern. The
// pattern uses path.Match syntax, so * stays within one segment:
// /orders/* matches /orders/{orderId} but not /orders/{orderId}/items.
// An empty pattern matches everything.
func matchWalkPath(url, pattern string) bool {
	if pattern == "" {
		return true
	}
	ok, err := path.Match(pattern, url)
	return err == nil && ok
}

// absPath finds absolute paths under common system roots in error text.
var absPath = regexp.MustCompile(`/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*`)

// sanitizeError renders err with absolute paths replaced by <path>, so
// clients do not learn the server's directory layout.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return absPath.ReplaceAllString(err.Error(), "<path>")
}

// errResult reports err to the client as a tool error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
