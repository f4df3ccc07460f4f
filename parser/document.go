package parser

// Keys of the parsed document tree. Computed keys are added by the walker
// and the description transform.
const (
	KeyTitle            = "title"
	KeyVersion          = "version"
	KeyBaseURI          = "baseUri"
	KeyResources        = "resources"
	KeyRelativeURI      = "relativeUri"
	KeyDisplayName      = "displayName"
	KeyDescription      = "description"
	KeyDescriptionShort = "descriptionShort"
	KeyURIParameters    = "uriParameters"
	KeyIs               = "is"
	KeyType             = "type"
	KeyMethods          = "methods"
	KeyMethod           = "method"
	KeySecuredBy        = "securedBy"

	KeyBaseURIParameters = "baseUriParameters"
	KeyQueryParameters   = "queryParameters"
	KeyFormParameters    = "formParameters"
	KeyHeaders           = "headers"
	KeyResponses         = "responses"
	KeyBody              = "body"

	KeyParentURL        = "parentUrl"
	KeyUniqueID         = "uniqueId"
	KeyAllURIParameters = "allUriParameters"
	KeyIsPrivate        = "isPrivate"
)

// PrivateTrait marks a resource or method as internal. It needs no
// declaration under "traits".
const PrivateTrait = "private"

// Document is a typed view over the root mapping of a parsed RAML file.
// All reads and writes go to the underlying Node.
type Document struct {
	node *Node
}

// NewDocument wraps a root mapping node.
func NewDocument(root *Node) *Document {
	return &Document{node: root}
}

// Node returns the underlying root mapping.
func (d *Document) Node() *Node { return d.node }

// Title returns the API title.
func (d *Document) Title() string { return d.node.Get(KeyTitle).Str() }

// Version returns the API version.
func (d *Document) Version() string { return d.node.Get(KeyVersion).Str() }

// BaseURI returns the base URI template, or "" when none is declared.
func (d *Document) BaseURI() string { return d.node.Get(KeyBaseURI).Str() }

// Resources returns the top-level resources.
func (d *Document) Resources() []*Resource {
	return resourcesOf(d.node)
}

// Resource is a typed view over one resource mapping.
type Resource struct {
	node *Node
}

// NewResource wraps a resource mapping node.
func NewResource(n *Node) *Resource {
	return &Resource{node: n}
}

func resourcesOf(n *Node) []*Resource {
	seq := n.Get(KeyResources)
	if !seq.IsSequence() {
		return nil
	}
	out := make([]*Resource, 0, len(seq.Items))
	for _, item := range seq.Items {
		if item.IsMapping() {
			out = append(out, NewResource(item))
		}
	}
	return out
}

// Node returns the underlying mapping.
func (r *Resource) Node() *Node { return r.node }

// RelativeURI returns the URI segment as declared, e.g. "/{orderId}".
func (r *Resource) RelativeURI() string { return r.node.Get(KeyRelativeURI).Str() }

// DisplayName returns the display name.
func (r *Resource) DisplayName() string { return r.node.Get(KeyDisplayName).Str() }

// Description returns the (possibly rendered) description.
func (r *Resource) Description() string { return r.node.Get(KeyDescription).Str() }

// DescriptionShort returns the rendered first sentence of the description.
func (r *Resource) DescriptionShort() string { return r.node.Get(KeyDescriptionShort).Str() }

// ParentURL returns the concatenated relative URIs of all ancestors.
func (r *Resource) ParentURL() string { return r.node.Get(KeyParentURL).Str() }

// FullURL returns ParentURL followed by RelativeURI.
func (r *Resource) FullURL() string { return r.ParentURL() + r.RelativeURI() }

// UniqueID returns the anchor-safe identifier computed by the walker.
func (r *Resource) UniqueID() string { return r.node.Get(KeyUniqueID).Str() }

// IsPrivate reports the privacy flag computed by the walker.
func (r *Resource) IsPrivate() bool { return r.node.Get(KeyIsPrivate).Bool() }

// Traits returns the names listed under "is".
func (r *Resource) Traits() []string { return r.node.Get(KeyIs).Names() }

// Type returns the resource type name, if any.
func (r *Resource) Type() string {
	t := r.node.Get(KeyType)
	if t.IsMapping() && t.Len() > 0 {
		return t.keys[0]
	}
	return t.Str()
}

// SecuredBy returns the raw securedBy value.
func (r *Resource) SecuredBy() *Node { return r.node.Get(KeySecuredBy) }

// URIParameters returns the parameters declared on this resource only.
func (r *Resource) URIParameters() *Node { return r.node.Get(KeyURIParameters) }

// AllURIParameters returns every URI parameter in scope, root to leaf.
func (r *Resource) AllURIParameters() []*Node {
	return r.node.Get(KeyAllURIParameters).sequenceItems()
}

// Methods returns the resource's methods in declaration order.
func (r *Resource) Methods() []*Method {
	seq := r.node.Get(KeyMethods)
	if !seq.IsSequence() {
		return nil
	}
	out := make([]*Method, 0, len(seq.Items))
	for _, item := range seq.Items {
		if item.IsMapping() {
			out = append(out, NewMethod(item))
		}
	}
	return out
}

// Resources returns the nested child resources.
func (r *Resource) Resources() []*Resource {
	return resourcesOf(r.node)
}

// SetParentURL stores the computed parent URL.
func (r *Resource) SetParentURL(url string) { r.node.Set(KeyParentURL, NewScalar(url)) }

// SetUniqueID stores the computed identifier.
func (r *Resource) SetUniqueID(id string) { r.node.Set(KeyUniqueID, NewScalar(id)) }

// SetPrivate stores the computed privacy flag.
func (r *Resource) SetPrivate(private bool) { r.node.Set(KeyIsPrivate, NewScalar(private)) }

// SetAllURIParameters stores the inherited and own URI parameters.
// The parameter nodes are shared with their declaring resources.
func (r *Resource) SetAllURIParameters(params []*Node) {
	r.node.Set(KeyAllURIParameters, NewSequence(params...))
}

// Method is a typed view over one method mapping.
type Method struct {
	node *Node
}

// NewMethod wraps a method mapping node.
func NewMethod(n *Node) *Method {
	return &Method{node: n}
}

// Node returns the underlying mapping.
func (m *Method) Node() *Node { return m.node }

// Verb returns the HTTP method name in lower case, e.g. "get".
func (m *Method) Verb() string { return m.node.Get(KeyMethod).Str() }

// Description returns the (possibly rendered) description.
func (m *Method) Description() string { return m.node.Get(KeyDescription).Str() }

// DescriptionShort returns the rendered first sentence of the description.
func (m *Method) DescriptionShort() string { return m.node.Get(KeyDescriptionShort).Str() }

// IsPrivate reports the privacy flag computed by the walker.
func (m *Method) IsPrivate() bool { return m.node.Get(KeyIsPrivate).Bool() }

// Traits returns the names listed under "is".
func (m *Method) Traits() []string { return m.node.Get(KeyIs).Names() }

// SecuredBy returns the raw securedBy value.
func (m *Method) SecuredBy() *Node { return m.node.Get(KeySecuredBy) }

// QueryParameters returns the query parameter mapping.
func (m *Method) QueryParameters() *Node { return m.node.Get("queryParameters") }

// Headers returns the request header mapping.
func (m *Method) Headers() *Node { return m.node.Get("headers") }

// Body returns the request body mapping, keyed by media type.
func (m *Method) Body() *Node { return m.node.Get("body") }

// Responses returns the response mapping, keyed by status code.
func (m *Method) Responses() *Node { return m.node.Get("responses") }

// SetPrivate stores the computed privacy flag.
func (m *Method) SetPrivate(private bool) { m.node.Set(KeyIsPrivate, NewScalar(private)) }

func (n *Node) sequenceItems() []*Node {
	if !n.IsSequence() {
		return nil
	}
	return n.Items
}
