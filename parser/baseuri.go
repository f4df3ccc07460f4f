package parser

import "strings"

// VersionPlaceholder is the baseUri template variable replaced by
// ResolveBaseURI.
const VersionPlaceholder = "{version}"

// ResolveBaseURI replaces the first "{version}" in the document's baseUri
// with its version, or with "" when the document has none. Other template
// variables are left alone. Documents without a baseUri are returned
// unchanged.
func ResolveBaseURI(doc *Document) *Document {
	base := doc.node.Get(KeyBaseURI)
	if !base.Truthy() {
		return doc
	}
	resolved := strings.Replace(base.Str(), VersionPlaceholder, doc.Version(), 1)
	doc.node.Set(KeyBaseURI, NewScalar(resolved))
	return doc
}
