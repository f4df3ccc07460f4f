// Package sorter restores the declaration order of top-level RAML resources.
//
// Parsers are free to return resources in any order. [DeclarationOrder]
// reads the order the resource keys appear in the original document text
// and [Sort] applies it to a "resources" sequence.
package sorter

import (
	"fmt"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/ramldoc/parser"
)

// Order maps a top-level resource path such as "/orders" to its position
// among the resource keys of the source document.
type Order map[string]int

// DeclarationOrder scans the top-level keys of a RAML or YAML document and
// numbers the ones starting with "/" from 0 in file order. Tags such as
// !include are not resolved.
func DeclarationOrder(source []byte) (Order, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("sorter: invalid YAML: %w", err)
	}
	order := make(Order)
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return order, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return order, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind != yaml.ScalarNode || !strings.HasPrefix(key.Value, "/") {
			continue
		}
		if _, dup := order[key.Value]; !dup {
			order[key.Value] = len(order)
		}
	}
	return order, nil
}

// Sort reorders the resources sequence in place by order, keyed on each
// resource's relativeUri. The sort is stable. A resource missing from order
// compares equal to everything and is reported once through logger.
// Only the given sequence is sorted; nested resources keep their order.
func Sort(order Order, resources *parser.Node, logger parser.Logger) {
	if !resources.IsSequence() {
		return
	}
	logger = parser.LoggerOrNop(logger)

	for _, item := range resources.Items {
		uri := item.Get(parser.KeyRelativeURI).Str()
		if _, ok := order[uri]; !ok {
			logger.Warn("no declaration order for resource", "resource", uri)
		}
	}

	slices.SortStableFunc(resources.Items, func(a, b *parser.Node) int {
		ia, okA := order[a.Get(parser.KeyRelativeURI).Str()]
		ib, okB := order[b.Get(parser.KeyRelativeURI).Str()]
		if !okA || !okB {
			return 0
		}
		return ia - ib
	})
}

// SortResources sorts resources into the order their keys are declared in
// source.
func SortResources(source []byte, resources *parser.Node, logger parser.Logger) error {
	order, err := DeclarationOrder(source)
	if err != nil {
		return err
	}
	Sort(order, resources, logger)
	return nil
}
