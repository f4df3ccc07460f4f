// Package parser loads RAML 0.8 documents into resource trees.
//
// The tree is made of [Node] values, a tagged union of mappings (with
// declaration order preserved), sequences, and scalars. [Document],
// [Resource], and [Method] are typed views over that tree; reads and writes
// through a view go straight to the nodes, so computed fields such as
// "uniqueId" are visible to every consumer of the tree, including its JSON
// form.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("api.raml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range result.Document.Resources() {
//		fmt.Println(r.RelativeURI(), len(r.Methods()))
//	}
//
// # Tree Shape
//
// Resource keys (those starting with "/") and HTTP method keys are moved
// out of the raw mapping: the root gets a "resources" sequence, each
// resource gets "relativeUri", a "methods" sequence whose entries carry a
// "method" key, and, when it has children, its own "resources" sequence.
//
// # Includes, Traits, and Resource Types
//
// !include targets with a .raml, .yaml, or .yml extension are decoded as
// YAML; other files become string scalars. Targets must stay inside the
// root directory. Traits listed under "is" (on the method or its resource)
// and resource types named by "type" are merged in; properties declared
// directly on the resource or method win. Parameters such as
// <<resourcePathName>> and <<methodName>> are substituted.
package parser
