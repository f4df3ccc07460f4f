package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/ramldoc/config"
	"github.com/erraggy/ramldoc/docgen"
)

type renderInput struct {
	Spec     specInput      `json:"spec"               jsonschema:"The RAML document to render"`
	Template string         `json:"template"           jsonschema:"Path to the template file"`
	Engine   string         `json:"engine,omitempty"   jsonschema:"Template engine: html (default)\\, text\\, or mustache"`
	Scope    string         `json:"scope,omitempty"    jsonschema:"public (default) drops private resources and methods; private keeps and flags them"`
	Section  string         `json:"section,omitempty"  jsonschema:"Value of the section template variable"`
	Params   map[string]any `json:"params,omitempty"   jsonschema:"Extra template variables; document fields with the same name are replaced"`
	Output   string         `json:"output,omitempty"   jsonschema:"Write the page to this file instead of returning it"`
}

type renderOutput struct {
	Title   string `json:"title"`
	Engine  string `json:"engine"`
	Scope   string `json:"scope"`
	Bytes   int    `json:"bytes"`
	Written string `json:"written,omitempty"`
	HTML    string `json:"html,omitempty"`
}

func handleRender(ctx context.Context, _ *mcp.CallToolRequest, input renderInput) (*mcp.CallToolResult, renderOutput, error) {
	if input.Template == "" {
		return errResult(fmt.Errorf("template is required")), renderOutput{}, nil
	}
	scope, err := resolveScope(input.Scope)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	engine := input.Engine
	if engine == "" {
		engine = cfg.RenderEngine
	}

	c := config.Default()
	c.Src = filepath.Dir(input.Template)
	c.Scope = scope
	c.Section = input.Section
	c.Dump = config.DumpDisabled
	c.Template.Engine = engine
	c.Template.File = input.Template
	if input.Params != nil {
		c.Template.Params = input.Params
	}
	plugin, err := docgen.New(c)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	result, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	doc, err := plugin.Prepare(document(result))
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	html, err := plugin.Render(doc.Title(), doc, nil)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	output := renderOutput{
		Title:  doc.Title(),
		Engine: engine,
		Scope:  string(scope),
		Bytes:  len(html),
	}
	if input.Output == "" {
		output.HTML = html
		return nil, output, nil
	}

	if err := os.MkdirAll(filepath.Dir(input.Output), 0o755); err != nil { //nolint:gosec // G301: output directory readable by web servers
		return errResult(err), renderOutput{}, nil
	}
	if err := os.WriteFile(input.Output, []byte(html), 0o644); err != nil { //nolint:gosec // G306: rendered pages are public
		return errResult(err), renderOutput{}, nil
	}
	output.Written = input.Output
	return nil, output, nil
}
