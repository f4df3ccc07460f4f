package parser

import (
	"fmt"
	"strings"
)

// HTTPMethods are the method keys recognized on a resource, in the order
// RAML lists them.
var HTTPMethods = []string{"options", "get", "head", "post", "put", "delete", "trace", "connect", "patch"}

func isHTTPMethod(key string) bool {
	for _, m := range HTTPMethods {
		if key == m {
			return true
		}
	}
	return false
}

func isResourceKey(key string) bool {
	return strings.HasPrefix(key, "/")
}

// normalizer turns the raw RAML mapping into the resource tree shape:
// top-level "resources", per-resource "relativeUri", "methods", and nested
// "resources". Traits and resource types are applied on the way.
type normalizer struct {
	traits        map[string]*Node
	resourceTypes map[string]*Node
	securedBy     *Node
	logger        Logger
	warnings      []string
}

func newNormalizer(raw *Node, logger Logger) *normalizer {
	return &normalizer{
		traits:        namedDefinitions(raw.Get("traits")),
		resourceTypes: namedDefinitions(raw.Get("resourceTypes")),
		securedBy:     raw.Get(KeySecuredBy),
		logger:        logger,
	}
}

// namedDefinitions indexes trait or resource type declarations. RAML 0.8
// declares them as a sequence of single-key mappings; a plain mapping is
// accepted too.
func namedDefinitions(decl *Node) map[string]*Node {
	defs := make(map[string]*Node)
	add := func(m *Node) {
		for _, e := range m.Entries() {
			defs[e.Key] = e.Value
		}
	}
	switch {
	case decl.IsMapping():
		add(decl)
	case decl.IsSequence():
		for _, item := range decl.Items {
			if item.IsMapping() {
				add(item)
			}
		}
	}
	return defs
}

func (z *normalizer) warn(msg string, attrs ...any) {
	z.logger.Warn(msg, attrs...)
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(attrs); i += 2 {
		fmt.Fprintf(&b, " %v=%v", attrs[i], attrs[i+1])
	}
	z.warnings = append(z.warnings, b.String())
}

// document builds the normalized root. Non-resource keys keep their order;
// "resources" is appended after them.
func (z *normalizer) document(raw *Node) *Node {
	root := NewMapping()
	resources := NewSequence()
	for _, e := range raw.Entries() {
		if isResourceKey(e.Key) {
			if r := z.resource(e.Key, e.Value, ""); r != nil {
				resources.Items = append(resources.Items, r)
			}
			continue
		}
		root.Set(e.Key, e.Value)
	}
	root.Set(KeyResources, resources)
	return root
}

func (z *normalizer) resource(relativeURI string, raw *Node, parentPath string) *Node {
	fullPath := parentPath + relativeURI
	if raw.IsNull() {
		raw = NewMapping()
	}
	if !raw.IsMapping() {
		z.warn("ignoring resource that is not a mapping", "resource", fullPath)
		return nil
	}

	params := map[string]string{
		"resourcePath":     fullPath,
		"resourcePathName": resourcePathName(fullPath),
	}
	raw = z.applyResourceType(raw, params, 0)

	res := NewMapping()
	res.Set(KeyRelativeURI, NewScalar(relativeURI))
	methods := NewSequence()
	children := NewSequence()
	for _, e := range raw.Entries() {
		switch {
		case isResourceKey(e.Key):
			if child := z.resource(e.Key, e.Value, fullPath); child != nil {
				children.Items = append(children.Items, child)
			}
		case isHTTPMethod(e.Key):
			methods.Items = append(methods.Items, z.method(e.Key, e.Value, raw, params))
		default:
			res.Set(e.Key, e.Value)
		}
	}
	if !res.Has(KeyDisplayName) {
		res.Set(KeyDisplayName, NewScalar(relativeURI))
	}
	if methods.Len() > 0 {
		res.Set(KeyMethods, methods)
	}
	if children.Len() > 0 {
		res.Set(KeyResources, children)
	}
	return res
}

func (z *normalizer) method(verb string, raw, resource *Node, resourceParams map[string]string) *Node {
	m := NewMapping()
	m.Set(KeyMethod, NewScalar(verb))
	if raw.IsMapping() {
		for _, e := range raw.Entries() {
			m.Set(e.Key, e.Value)
		}
	}

	params := make(map[string]string, len(resourceParams)+1)
	for k, v := range resourceParams {
		params[k] = v
	}
	params["methodName"] = verb

	// Method traits first so they win over resource traits on conflicts.
	z.applyTraits(m, m.Get(KeyIs), params)
	z.applyTraits(m, resource.Get(KeyIs), params)

	if !m.Has(KeySecuredBy) {
		if sb := resource.Get(KeySecuredBy); sb != nil {
			m.Set(KeySecuredBy, sb.Clone())
		} else if z.securedBy != nil {
			m.Set(KeySecuredBy, z.securedBy.Clone())
		}
	}
	return m
}

// applyTraits merges every trait referenced by refs into target. Properties
// already present on target win.
func (z *normalizer) applyTraits(target, refs *Node, params map[string]string) {
	if !refs.IsSequence() {
		return
	}
	for _, ref := range refs.Items {
		name, args := definitionRef(ref)
		if name == "" {
			continue
		}
		def, ok := z.traits[name]
		if !ok && name == PrivateTrait {
			continue
		}
		if !ok {
			z.warn("trait is not declared", "trait", name, "method", params["methodName"], "resource", params["resourcePath"])
			continue
		}
		if !def.IsMapping() {
			continue
		}
		expanded := substitute(def.Clone(), mergeParams(params, args))
		mergeInto(target, expanded)
		z.logger.Debug("applied trait", "trait", name, "method", params["methodName"], "resource", params["resourcePath"])
	}
}

const maxResourceTypeDepth = 16

// applyResourceType returns raw with its resource type (and that type's own
// type, recursively) merged in. The resource's own properties win.
func (z *normalizer) applyResourceType(raw *Node, params map[string]string, depth int) *Node {
	typeRef := raw.Get(KeyType)
	if typeRef.IsNull() {
		return raw
	}
	name, args := definitionRef(typeRef)
	def, ok := z.resourceTypes[name]
	if !ok {
		z.warn("resource type is not declared", "type", name, "resource", params["resourcePath"])
		return raw
	}
	if depth >= maxResourceTypeDepth {
		z.warn("resource type nesting too deep", "type", name, "resource", params["resourcePath"])
		return raw
	}
	if !def.IsMapping() {
		return raw
	}

	expanded := substitute(def.Clone(), mergeParams(params, args))
	expanded = z.applyResourceType(expanded, params, depth+1)
	expanded.Delete(KeyType)

	out := raw.Clone()
	mergeInto(out, expanded)
	return out
}

// definitionRef splits `name` or `{name: {param: value}}` into its parts.
func definitionRef(ref *Node) (string, map[string]string) {
	switch {
	case ref.IsScalar():
		return ref.Str(), nil
	case ref.IsMapping() && ref.Len() > 0:
		e := ref.Entries()[0]
		args := make(map[string]string)
		for _, a := range e.Value.Entries() {
			args[a.Key] = a.Value.Str()
		}
		return e.Key, args
	}
	return "", nil
}

func mergeParams(base, args map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(args))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range args {
		out[k] = v
	}
	return out
}

// mergeInto copies src properties that dst lacks, recursing into mappings
// both sides declare. Keys ending in "?" are optional and only merged when
// dst already declares the key without the marker.
func mergeInto(dst, src *Node) {
	for _, e := range src.Entries() {
		key := e.Key
		optional := strings.HasSuffix(key, "?")
		if optional {
			key = strings.TrimSuffix(key, "?")
		}
		existing := dst.Get(key)
		switch {
		case existing == nil && optional:
			continue
		case existing == nil:
			dst.Set(key, e.Value)
		case existing.IsNull() && e.Value.IsMapping():
			// `get:` with no body picks up everything from the definition.
			dst.Set(key, e.Value)
		case existing.IsMapping() && e.Value.IsMapping():
			mergeInto(existing, e.Value)
		case key == KeyIs && existing.IsSequence() && e.Value.IsSequence():
			mergeTraitRefs(existing, e.Value)
		}
	}
}

func mergeTraitRefs(dst, src *Node) {
	have := make(map[string]bool)
	for _, n := range dst.Names() {
		have[n] = true
	}
	for _, item := range src.Items {
		name, _ := definitionRef(item)
		if name != "" && !have[name] {
			dst.Items = append(dst.Items, item)
			have[name] = true
		}
	}
}

// resourcePathName is the rightmost path segment that is not a URI
// parameter, e.g. "items" for "/orders/{id}/items/{itemId}".
func resourcePathName(fullPath string) string {
	segments := strings.Split(fullPath, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		s := segments[i]
		if s != "" && !strings.Contains(s, "{") {
			return s
		}
	}
	return ""
}
