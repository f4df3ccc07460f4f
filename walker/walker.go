package walker

import (
	"fmt"
	"slices"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren silences the handlers for the methods and descendants of
	// the current resource. They are still annotated and scope-filtered.
	SkipChildren

	// Stop silences every later handler call. The rest of the tree is still
	// annotated and scope-filtered.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Scope selects whether private resources and methods are kept.
type Scope string

const (
	// ScopePublic removes everything marked private.
	ScopePublic Scope = "public"
	// ScopePrivate keeps private nodes and flags them with isPrivate.
	ScopePrivate Scope = "private"
)

// IsValid reports whether s is a known scope.
func (s Scope) IsValid() bool {
	return s == ScopePublic || s == ScopePrivate
}

// ResourceHandler is called for each resource that survives filtering,
// after its computed fields are set.
type ResourceHandler func(wc *WalkContext, r *parser.Resource) Action

// MethodHandler is called for each method that survives filtering.
type MethodHandler func(wc *WalkContext, m *parser.Method) Action

// Stats counts what a walk visited and removed.
type Stats struct {
	Resources         int
	Methods           int
	FilteredResources int
	FilteredMethods   int
}

// Walker annotates and scope-filters a RAML resource tree.
type Walker struct {
	scope      Scope
	logger     parser.Logger
	onResource ResourceHandler
	onMethod   MethodHandler

	stats   Stats
	stopped bool
}

// New creates a Walker. The default scope is ScopePublic.
func New(opts ...Option) *Walker {
	w := &Walker{
		scope:  ScopePublic,
		logger: parser.NopLogger{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk annotates and filters the tree below root. See [Walker.Walk].
func Walk(root *parser.Node, opts ...Option) *parser.Node {
	return New(opts...).Walk(root)
}

// Walk visits every resource reachable through "resources" sequences,
// starting at root, and for each one:
//
//   - sets parentUrl to the parent's parentUrl + relativeUri ("" at the top)
//   - sets uniqueId from parentUrl + relativeUri
//   - removes it when its "is" list contains "private" and the scope is not
//     private; otherwise sets isPrivate (true when marked, else inherited
//     from the parent)
//   - removes private methods under the same rule; a method's isPrivate
//     depends only on its own "is" list
//   - sets allUriParameters to the inherited parameters followed by its own
//     uriParameters in declaration order
//
// The tree is modified in place. Walk returns root, or nil when root has no
// "resources" sequence.
func (w *Walker) Walk(root *parser.Node) *parser.Node {
	if !root.Get(parser.KeyResources).IsSequence() {
		return nil
	}
	w.stats = Stats{}
	w.stopped = false

	path := pathutil.Get()
	defer pathutil.Put(path)

	w.walkResources(root, nil, nil, path, 0, false)
	w.logger.Debug("walked resource tree",
		"scope", string(w.scope),
		"resources", w.stats.Resources,
		"methods", w.stats.Methods,
		"filteredResources", w.stats.FilteredResources,
		"filteredMethods", w.stats.FilteredMethods)
	return root
}

// Stats returns the counts of the most recent walk.
func (w *Walker) Stats() Stats {
	return w.stats
}

// walkResources processes the "resources" sequence of container. Surviving
// entries are collected into a new slice, so removals never shift entries
// that are still to be visited. Handlers are not called when quiet is set.
func (w *Walker) walkResources(container *parser.Node, parent *parser.Resource, inherited []*parser.Node, path *pathutil.PathBuilder, depth int, quiet bool) {
	seq := container.Get(parser.KeyResources)
	if !seq.IsSequence() {
		return
	}

	path.Push(parser.KeyResources)
	defer path.Pop()

	kept := make([]*parser.Node, 0, len(seq.Items))
	for _, item := range seq.Items {
		if !item.IsMapping() {
			kept = append(kept, item)
			continue
		}

		r := parser.NewResource(item)
		parentURL := ""
		if parent != nil {
			parentURL = parent.ParentURL() + parent.RelativeURI()
		}
		r.SetParentURL(parentURL)
		r.SetUniqueID(pathutil.UniqueID(r.FullURL()))
		r.SetAllURIParameters(nil)

		if isMarkedPrivate(item) {
			if w.scope != ScopePrivate {
				w.stats.FilteredResources++
				w.logger.Debug("removed private resource", "resource", r.FullURL())
				continue
			}
			r.SetPrivate(true)
		} else {
			r.SetPrivate(parent != nil && parent.IsPrivate())
		}

		w.filterMethods(r)
		r.SetAllURIParameters(collectURIParameters(inherited, r))

		path.PushIndex(len(kept))
		kept = append(kept, item)
		w.stats.Resources++
		w.visit(r, parent, path, depth, quiet)
		path.Pop()
	}
	seq.Items = kept
}

// visit runs the handlers for r and its methods, then descends. The
// descent always happens; the actions only decide whether the handlers
// below hear about it.
func (w *Walker) visit(r *parser.Resource, parent *parser.Resource, path *pathutil.PathBuilder, depth int, quiet bool) {
	quiet = quiet || w.stopped
	if !quiet && w.onResource != nil {
		wc := &WalkContext{Path: path.String(), Parent: parent, Depth: depth, Scope: w.scope}
		quiet = !w.handleAction(w.onResource(wc, r))
	}

	if !quiet && w.onMethod != nil {
		path.Push(parser.KeyMethods)
		for i, m := range r.Methods() {
			path.PushIndex(i)
			wc := &WalkContext{Path: path.String(), Parent: r, Depth: depth, Scope: w.scope}
			action := w.onMethod(wc, m)
			path.Pop()
			if action == Stop {
				w.stopped = true
				break
			}
		}
		path.Pop()
	}

	w.walkResources(r.Node(), r, r.AllURIParameters(), path, depth+1, quiet)
}

// filterMethods removes private methods out of scope and sets isPrivate on
// the rest. The resource's own privacy is not consulted.
func (w *Walker) filterMethods(r *parser.Resource) {
	seq := r.Node().Get(parser.KeyMethods)
	if !seq.IsSequence() {
		return
	}
	kept := make([]*parser.Node, 0, len(seq.Items))
	for _, item := range seq.Items {
		if !item.IsMapping() {
			kept = append(kept, item)
			continue
		}
		m := parser.NewMethod(item)
		private := isMarkedPrivate(item)
		if private && w.scope != ScopePrivate {
			w.stats.FilteredMethods++
			w.logger.Debug("removed private method", "resource", r.FullURL(), "method", m.Verb())
			continue
		}
		m.SetPrivate(private)
		kept = append(kept, item)
		w.stats.Methods++
	}
	seq.Items = kept
}

// handleAction processes the action returned by a handler.
// Returns true if handlers should be called for the children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

func isMarkedPrivate(n *parser.Node) bool {
	return slices.Contains(n.Get(parser.KeyIs).Names(), parser.PrivateTrait)
}

// collectURIParameters returns a fresh slice holding the inherited
// parameters followed by r's own, so siblings never share a backing array.
func collectURIParameters(inherited []*parser.Node, r *parser.Resource) []*parser.Node {
	own := r.URIParameters().Entries()
	all := make([]*parser.Node, 0, len(inherited)+len(own))
	all = append(all, inherited...)
	for _, e := range own {
		all = append(all, e.Value)
	}
	return all
}
