// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes ramldoc capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/ramldoc"
)

const serverInstructions = `ramldoc MCP server: parses RAML 0.8 documents, walks their resource tree, and renders documentation pages.

Configuration: All defaults are configurable via RAMLDOC_* environment variables set in your MCP client config.

Key settings:
- RAMLDOC_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- RAMLDOC_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched documents
- RAMLDOC_CACHE_ENABLED (default: true): disable document caching entirely
- RAMLDOC_WALK_LIMIT (default: 100): default result limit for walk tools
- RAMLDOC_WALK_DETAIL_LIMIT (default: 25): default limit in detail mode
- RAMLDOC_SCOPE (default: public): scope used when a call names none
- RAMLDOC_RENDER_ENGINE (default: html): template engine for render

Scopes: public drops every resource and method whose "is" list contains "private"; private keeps them and flags them with isPrivate.

Caching: Parsed documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. Expired entries are purged every RAMLDOC_CACHE_SWEEP_INTERVAL (default: 60s).`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.runJanitor(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "ramldoc", Version: ramldoc.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse a RAML 0.8 document. Returns a structural summary: title, version, baseUri, RAML version, resource/method/trait counts, top-level resources, and warnings such as undeclared traits. Use full=true only for small documents; for large ones use walk_resources and walk_methods.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_resources",
		Description: "Walk the resource tree of a RAML document the way documentation builds do: computes parentUrl, uniqueId and allUriParameters, and drops private resources unless scope=private. Filter by path glob (* = one segment) or method. Returns summaries by default or full resource nodes with detail=true. Use group_by=depth or group_by=method for an overview.",
	}, handleWalkResources)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "walk_methods",
		Description: "Walk and query the methods of a RAML document after scope filtering. Filter by path glob, HTTP method, trait, or security (secured=true). Each summary carries the lock the documentation shows: external, internal, or none. Use group_by=trait or group_by=lock to find the most common patterns.",
	}, handleWalkMethods)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render",
		Description: "Render a documentation page for a RAML document with a template file (html, text, or mustache engine). Applies the same steps as a build: base URI resolution, scope filtering, Markdown descriptions, and declaration-order sorting. Returns the rendered page, or writes it to output when given.",
	}, handleRender)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "highlight",
		Description: "Syntax-highlight a code sample as HTML with CSS classes, the way the highlight template helper does. The language is detected unless lang is given. Use css=true to also return the stylesheet.",
	}, handleHighlight)
}
