package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/ramldoc/helpers"
	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/walker"
)

// Lock kinds reported by walk_methods.
const (
	lockExternal = "external"
	lockInternal = "internal"
	lockNone     = "none"
)

type walkMethodsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The RAML document to walk"`
	Scope   string    `json:"scope,omitempty"    jsonschema:"public (default) drops private resources and methods; private keeps and flags them"`
	Path    string    `json:"path,omitempty"     jsonschema:"Filter by full resource URL (* = one segment\\, e.g. /orders/*)"`
	Method  string    `json:"method,omitempty"   jsonschema:"Filter by HTTP method (e.g. post)"`
	Trait   string    `json:"trait,omitempty"    jsonschema:"Filter by applied trait name"`
	Lock    string    `json:"lock,omitempty"     jsonschema:"Filter by lock kind: external\\, internal\\, none"`
	Detail  bool      `json:"detail,omitempty"   jsonschema:"Return full method nodes instead of summaries"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: method\\, trait\\, lock"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type methodSummary struct {
	URL         string   `json:"url"`
	Method      string   `json:"method"`
	Lock        string   `json:"lock"`
	IsPrivate   bool     `json:"is_private,omitempty"`
	Traits      []string `json:"traits,omitempty"`
	SecuredBy   []string `json:"secured_by,omitempty"`
	Description string   `json:"description,omitempty"`
}

type methodDetail struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Method any    `json:"method"`
}

// methodInfo is one visited method with its owning resource.
type methodInfo struct {
	Path     string
	Resource *parser.Resource
	Method   *parser.Method
}

type walkMethodsOutput struct {
	Total     int             `json:"total"`
	Matched   int             `json:"matched"`
	Returned  int             `json:"returned"`
	Filtered  int             `json:"filtered"`
	Groups    []groupCount    `json:"groups,omitempty"`
	Summaries []methodSummary `json:"summaries,omitempty"`
	Methods   []methodDetail  `json:"methods,omitempty"`
}

func handleWalkMethods(ctx context.Context, _ *mcp.CallToolRequest, input walkMethodsInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"method", "trait", "lock"}); err != nil {
		return errResult(err), nil, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), nil, nil
	}
	if input.Lock != "" && !slices.Contains([]string{lockExternal, lockInternal, lockNone}, strings.ToLower(input.Lock)) {
		return errResult(fmt.Errorf("invalid lock value %q; valid values: external, internal, none", input.Lock)), nil, nil
	}

	var all []*methodInfo
	stats, err := walkSpec(ctx, input.Spec, input.Scope,
		walker.WithMethodHandler(func(wc *walker.WalkContext, m *parser.Method) walker.Action {
			all = append(all, &methodInfo{Path: wc.Path, Resource: wc.Parent, Method: m})
			return walker.Continue
		}),
	)
	if err != nil {
		return errResult(err), nil, nil
	}

	matched := filterWalkMethods(all, input)

	if input.GroupBy != "" {
		groups := groupAndSort(matched, func(info *methodInfo) []string {
			switch strings.ToLower(input.GroupBy) {
			case "trait":
				return info.Method.Traits()
			case "lock":
				return []string{lockKind(info.Method)}
			default:
				return []string{strings.ToLower(info.Method.Verb())}
			}
		})
		returned := paginate(groups, input.Offset, input.Limit)
		return nil, walkMethodsOutput{
			Total:    len(all),
			Matched:  len(matched),
			Returned: len(returned),
			Filtered: stats.FilteredMethods,
			Groups:   returned,
		}, nil
	}

	limit := input.Limit
	if input.Detail {
		limit = detailLimit(limit)
	}
	returned := paginate(matched, input.Offset, limit)

	output := walkMethodsOutput{
		Total:    len(all),
		Matched:  len(matched),
		Returned: len(returned),
		Filtered: stats.FilteredMethods,
	}

	if input.Detail {
		output.Methods = makeSlice[methodDetail](len(returned))
		for _, info := range returned {
			output.Methods = append(output.Methods, methodDetail{
				URL:    info.Resource.FullURL(),
				Path:   info.Path,
				Method: info.Method.Node().Interface(),
			})
		}
	} else {
		output.Summaries = makeSlice[methodSummary](len(returned))
		for _, info := range returned {
			m := info.Method
			output.Summaries = append(output.Summaries, methodSummary{
				URL:         info.Resource.FullURL(),
				Method:      strings.ToLower(m.Verb()),
				Lock:        lockKind(m),
				IsPrivate:   m.IsPrivate(),
				Traits:      nonEmpty(m.Traits()),
				SecuredBy:   nonEmpty(m.SecuredBy().Names()),
				Description: m.Description(),
			})
		}
	}

	return nil, output, nil
}

// filterWalkMethods applies all method filters and returns the matching subset.
func filterWalkMethods(methods []*methodInfo, input walkMethodsInput) []*methodInfo {
	var filtered []*methodInfo
	for _, info := range methods {
		if !matchWalkPath(info.Resource.FullURL(), input.Path) {
			continue
		}
		if input.Method != "" && !strings.EqualFold(info.Method.Verb(), input.Method) {
			continue
		}
		if input.Trait != "" && !slices.Contains(info.Method.Traits(), input.Trait) {
			continue
		}
		if input.Lock != "" && lockKind(info.Method) != strings.ToLower(input.Lock) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

// lockKind names the lock icon the documentation shows for m.
func lockKind(m *parser.Method) string {
	switch helpers.Lock(m.SecuredBy()) {
	case helpers.LockExternal:
		return lockExternal
	case helpers.LockInternal:
		return lockInternal
	default:
		return lockNone
	}
}

func nonEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
