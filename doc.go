// Package ramldoc turns RAML 0.8 API descriptions into HTML documentation
// pages as part of a static-site build.
//
// # Overview
//
// A build reads every file below a source directory into memory, runs a
// chain of plugins over that set, and writes the result to a destination
// directory. The docgen plugin picks the RAML files named in the
// configuration and replaces each with a rendered page:
//
//   - parser: Read RAML 0.8, resolve !include, traits and resource types
//   - walker: Annotate resources (parentUrl, uniqueId, allUriParameters)
//     and drop private nodes for public builds
//   - transform: Render description fields as Markdown
//   - sorter: Restore the declaration order of top-level resources
//   - renderer: Render html/template, text/template or Mustache templates
//     with the lock and highlight helpers
//   - pipeline: The in-memory file set and plugin chain
//   - docgen: The plugin tying the above together
//
// After all pages are rendered, links of the form
//
//	<a href="api://orders/createOrder">
//
// in any HTML file of the build are pointed at the rendered page of the
// "orders" API, here /docs/orders#createOrder.
//
// # Quick Start
//
// Configure the APIs to document in ramldoc.yaml:
//
//	src: src
//	scope: public
//	files:
//	  orders:
//	    src: apis/orders.raml
//	    dest: docs/orders
//	template:
//	  file: layouts/api.html
//
// and build:
//
//	ramldoc build -config ramldoc.yaml -dest build
//
// From Go:
//
//	cfg, err := config.Load("ramldoc.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	plugin, err := docgen.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := pipeline.New(pipeline.WithSource(cfg.Src), pipeline.WithDestination("build")).Use(plugin)
//	if _, err := p.Build(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// # Templates
//
// The render context holds the document fields (title, version, baseUri,
// resources and so on), the template params, the build metadata and the
// section. html and text templates get the helper functions directly:
//
//	{{range .resources}}<h2 id="{{.uniqueId}}">{{.relativeUri}}</h2>
//	  {{range .methods}}{{upper .method}}{{lock .securedBy}}{{end}}
//	{{end}}
//
// Mustache templates reach them as lambdas under "helpers":
//
//	{{#methods}}{{#helpers.lock}}{{securedBy}}{{/helpers.lock}}{{/methods}}
//
// # MCP
//
// ramldoc mcp serves the parse, walk and render operations to MCP clients
// over stdio. See internal/mcpserver for the tools and their RAMLDOC_*
// settings.
package ramldoc
