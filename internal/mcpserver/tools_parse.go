package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type parseInput struct {
	Spec specInput `json:"spec"           jsonschema:"The RAML document to parse"`
	Full bool      `json:"full,omitempty" jsonschema:"Return the full normalized document as JSON instead of a summary only"`
}

type parseSummaryResource struct {
	RelativeURI string `json:"relative_uri"`
	DisplayName string `json:"display_name,omitempty"`
	MethodCount int    `json:"method_count"`
}

type parseOutput struct {
	RAMLVersion   string                 `json:"raml_version,omitempty"`
	Title         string                 `json:"title"`
	Version       string                 `json:"version,omitempty"`
	BaseURI       string                 `json:"base_uri,omitempty"`
	ResourceCount int                    `json:"resource_count"`
	MethodCount   int                    `json:"method_count"`
	TraitCount    int                    `json:"trait_count"`
	Resources     []parseSummaryResource `json:"resources,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	FullDocument  string                 `json:"full_document,omitempty"`
}

func handleParse(ctx context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	doc := result.Document
	output := parseOutput{
		RAMLVersion:   result.RAMLVersion,
		Title:         doc.Title(),
		Version:       doc.Version(),
		BaseURI:       doc.BaseURI(),
		ResourceCount: result.Stats.ResourceCount,
		MethodCount:   result.Stats.MethodCount,
		TraitCount:    result.Stats.TraitCount,
		Warnings:      result.Warnings,
	}

	top := doc.Resources()
	output.Resources = makeSlice[parseSummaryResource](len(top))
	for _, r := range top {
		output.Resources = append(output.Resources, parseSummaryResource{
			RelativeURI: r.RelativeURI(),
			DisplayName: r.DisplayName(),
			MethodCount: len(r.Methods()),
		})
	}

	if input.Full {
		data, err := json.MarshalIndent(doc.Node(), "", "  ")
		if err != nil {
			return errResult(err), parseOutput{}, nil
		}
		output.FullDocument = string(data)
	}

	return nil, output, nil
}
