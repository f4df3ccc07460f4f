package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/ramldoc/parser"
	"github.com/erraggy/ramldoc/walker"
)

type walkResourcesInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The RAML document to walk"`
	Scope   string    `json:"scope,omitempty"    jsonschema:"public (default) drops private resources and methods; private keeps and flags them"`
	Path    string    `json:"path,omitempty"     jsonschema:"Filter by full resource URL (* = one segment\\, e.g. /orders/*)"`
	Method  string    `json:"method,omitempty"   jsonschema:"Only resources that have this HTTP method (e.g. get)"`
	Detail  bool      `json:"detail,omitempty"   jsonschema:"Return full resource nodes instead of summaries"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: depth\\, method"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type resourceSummary struct {
	URL           string   `json:"url"`
	UniqueID      string   `json:"unique_id"`
	DisplayName   string   `json:"display_name,omitempty"`
	Depth         int      `json:"depth"`
	IsPrivate     bool     `json:"is_private,omitempty"`
	Methods       []string `json:"methods,omitempty"`
	URIParameters int      `json:"uri_parameters,omitempty"`
}

type resourceDetail struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Resource any    `json:"resource"`
}

// resourceInfo is one visited resource.
type resourceInfo struct {
	Path     string
	Depth    int
	Resource *parser.Resource
}

type walkResourcesOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Filtered  int               `json:"filtered"`
	Groups    []groupCount      `json:"groups,omitempty"`
	Summaries []resourceSummary `json:"summaries,omitempty"`
	Resources []resourceDetail  `json:"resources,omitempty"`
}

func handleWalkResources(ctx context.Context, _ *mcp.CallToolRequest, input walkResourcesInput) (*mcp.CallToolResult, any, error) {
	if err := validateGroupBy(input.GroupBy, input.Detail, []string{"depth", "method"}); err != nil {
		return errResult(err), nil, nil
	}
	if err := validateGlobPattern(input.Path); err != nil {
		return errResult(err), nil, nil
	}

	var all []*resourceInfo
	stats, err := walkSpec(ctx, input.Spec, input.Scope,
		walker.WithResourceHandler(func(wc *walker.WalkContext, r *parser.Resource) walker.Action {
			all = append(all, &resourceInfo{Path: wc.Path, Depth: wc.Depth, Resource: r})
			return walker.Continue
		}),
	)
	if err != nil {
		return errResult(err), nil, nil
	}

	matched := filterWalkResources(all, input)

	if input.GroupBy != "" {
		groups := groupAndSort(matched, func(info *resourceInfo) []string {
			if strings.EqualFold(input.GroupBy, "depth") {
				return []string{strconv.Itoa(info.Depth)}
			}
			return methodVerbs(info.Resource)
		})
		returned := paginate(groups, input.Offset, input.Limit)
		return nil, walkResourcesOutput{
			Total:    len(all),
			Matched:  len(matched),
			Returned: len(returned),
			Filtered: stats.FilteredResources,
			Groups:   returned,
		}, nil
	}

	limit := input.Limit
	if input.Detail {
		limit = detailLimit(limit)
	}
	returned := paginate(matched, input.Offset, limit)

	output := walkResourcesOutput{
		Total:    len(all),
		Matched:  len(matched),
		Returned: len(returned),
		Filtered: stats.FilteredResources,
	}

	if input.Detail {
		output.Resources = makeSlice[resourceDetail](len(returned))
		for _, info := range returned {
			output.Resources = append(output.Resources, resourceDetail{
				URL:      info.Resource.FullURL(),
				Path:     info.Path,
				Resource: info.Resource.Node().Interface(),
			})
		}
	} else {
		output.Summaries = makeSlice[resourceSummary](len(returned))
		for _, info := range returned {
			r := info.Resource
			output.Summaries = append(output.Summaries, resourceSummary{
				URL:           r.FullURL(),
				UniqueID:      r.UniqueID(),
				DisplayName:   r.DisplayName(),
				Depth:         info.Depth,
				IsPrivate:     r.IsPrivate(),
				Methods:       methodVerbs(r),
				URIParameters: len(r.AllURIParameters()),
			})
		}
	}

	return nil, output, nil
}

// filterWalkResources applies all resource filters and returns the matching subset.
func filterWalkResources(resources []*resourceInfo, input walkResourcesInput) []*resourceInfo {
	var filtered []*resourceInfo
	for _, info := range resources {
		if !matchWalkPath(info.Resource.FullURL(), input.Path) {
			continue
		}
		if input.Method != "" && !slices.Contains(methodVerbs(info.Resource), strings.ToLower(input.Method)) {
			continue
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func methodVerbs(r *parser.Resource) []string {
	methods := r.Methods()
	verbs := makeSlice[string](len(methods))
	for _, m := range methods {
		verbs = append(verbs, strings.ToLower(m.Verb()))
	}
	return verbs
}

// walkSpec resolves spec and walks a private copy of its tree with the
// requested scope, falling back to RAMLDOC_SCOPE.
func walkSpec(ctx context.Context, spec specInput, scope string, opts ...walker.Option) (walker.Stats, error) {
	s, err := resolveScope(scope)
	if err != nil {
		return walker.Stats{}, err
	}
	result, err := spec.resolve(ctx)
	if err != nil {
		return walker.Stats{}, err
	}
	w := walker.New(append([]walker.Option{walker.WithScope(s)}, opts...)...)
	w.Walk(document(result).Document.Node())
	return w.Stats(), nil
}

func resolveScope(scope string) (walker.Scope, error) {
	if scope == "" {
		return cfg.Scope, nil
	}
	s := walker.Scope(strings.ToLower(scope))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid scope %q; valid values: public, private", scope)
	}
	return s, nil
}
