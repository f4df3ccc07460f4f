package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/ramldoc/helpers"
)

type highlightInput struct {
	Code  string `json:"code"            jsonschema:"The code sample to highlight"`
	Lang  string `json:"lang,omitempty"  jsonschema:"Language name (e.g. json\\, xml); detected when empty"`
	CSS   bool   `json:"css,omitempty"   jsonschema:"Also return the stylesheet for the highlight classes"`
	Style string `json:"style,omitempty" jsonschema:"Stylesheet style name (default github)"`
}

type highlightOutput struct {
	HTML string `json:"html"`
	CSS  string `json:"css,omitempty"`
}

func handleHighlight(_ context.Context, _ *mcp.CallToolRequest, input highlightInput) (*mcp.CallToolResult, highlightOutput, error) {
	if input.Code == "" {
		return errResult(fmt.Errorf("code is required")), highlightOutput{}, nil
	}

	var output highlightOutput
	if input.Lang != "" {
		output.HTML = string(helpers.HighlightAs(input.Lang, input.Code))
	} else {
		output.HTML = string(helpers.Highlight(input.Code))
	}

	if input.CSS {
		css, err := helpers.CSS(input.Style)
		if err != nil {
			return errResult(err), highlightOutput{}, nil
		}
		output.CSS = string(css)
	}
	return nil, output, nil
}
