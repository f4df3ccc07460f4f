package walker

import "github.com/erraggy/ramldoc/parser"

// WalkContext provides contextual information about the node being visited.
type WalkContext struct {
	// Path is the accessor path of the node from the document root.
	// Example: "resources[0].resources[1].methods[0]"
	Path string

	// Parent is the enclosing resource: the parent resource for resource
	// handlers, the owning resource for method handlers. Nil for top-level
	// resources.
	Parent *parser.Resource

	// Depth is the nesting level of the resource, 0 at the top.
	Depth int

	// Scope is the walker's scope.
	Scope Scope
}

// IsTopLevel reports whether the visited resource sits directly under the
// document root.
func (wc *WalkContext) IsTopLevel() bool {
	return wc.Depth == 0
}
