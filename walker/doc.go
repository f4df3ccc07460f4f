// Package walker annotates and scope-filters RAML resource trees.
//
// A walk computes the fields templates rely on (parentUrl, uniqueId,
// allUriParameters, isPrivate) and removes resources and methods whose "is"
// list contains "private" unless the walk runs with [ScopePrivate].
//
// # Quick Start
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("api.raml"))
//	walker.Walk(result.Document.Node(), walker.WithScope(walker.ScopePublic))
//
// # Privacy
//
// A resource marked private is removed in public scope together with its
// whole subtree. In private scope it is kept with isPrivate set, and its
// descendants inherit the flag unless they carry the marker themselves.
// Methods never inherit privacy from their resource: a method's isPrivate
// reflects only its own "is" list.
//
// # Handlers
//
// Handlers observe the annotated tree and return an [Action]:
//
//   - [Continue]: continue with methods, children, and siblings
//   - [SkipChildren]: no handler calls for the resource's methods and children
//   - [Stop]: no further handler calls at all
//
// Actions only silence handlers. Annotation and scope filtering always cover
// the whole tree.
//
// Example listing every kept endpoint:
//
//	walker.Walk(root,
//	    walker.WithMethodHandler(func(wc *walker.WalkContext, m *parser.Method) walker.Action {
//	        fmt.Println(strings.ToUpper(m.Verb()), wc.Parent.FullURL())
//	        return walker.Continue
//	    }),
//	)
//
// Handlers run after a resource's own fields are set and before its
// children are visited, so skipping children leaves the subtree
// unannotated and unfiltered.
package walker
