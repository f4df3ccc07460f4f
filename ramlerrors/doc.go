// Package ramlerrors provides structured error types for ramldoc.
//
// Import path: github.com/erraggy/ramldoc/ramlerrors
//
// The error types support [errors.Is] and [errors.As] so callers can tell a
// malformed RAML file apart from a broken template or a bad configuration.
//
// # Error Types
//
//   - [ParseError]: YAML syntax failures and documents that are not RAML
//   - [IncludeError]: !include targets that cannot be read or escape the source root
//   - [RenderError]: template engine failures for a single document
//   - [ConfigError]: invalid plugin configuration or options
//
// # Sentinel Errors
//
//   - [ErrParse]: matches any [ParseError]
//   - [ErrInclude]: matches any [IncludeError]
//   - [ErrPathTraversal]: matches [IncludeError] with IsPathTraversal=true
//   - [ErrRender]: matches any [RenderError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage
//
//	_, err := docgen.New(cfg).Run(ctx, files, meta)
//	var renderErr *ramlerrors.RenderError
//	if errors.As(err, &renderErr) {
//	    log.Printf("template %s failed for %s", renderErr.Template, renderErr.Document)
//	}
package ramlerrors
