// Package transform maps functions over the scalar values of a RAML tree.
//
// [Transform] is a generic tree mapper: mappings and sequences are
// descended into and every scalar is replaced by the result of a [Func].
// [Descriptions] is the Func the documentation build uses to render every
// "description" through Markdown and derive "descriptionShort".
package transform

import (
	"fmt"
	"strconv"

	"github.com/erraggy/ramldoc/internal/pathutil"
	"github.com/erraggy/ramldoc/parser"
)

// Func computes the replacement for a scalar. key is the mapping key or the
// sequence index of the value, parent the containing mapping or sequence
// (nil for a scalar root), and path the accessor path of the value, e.g.
// "resources[0].methods[2].description".
type Func func(key string, value, parent *parser.Node, path string) (*parser.Node, error)

// Transform applies fn to every scalar reachable from node and stores the
// results in place. Containers are never passed to fn and keep their
// length, order, and key set; keys fn adds to a parent while its entries
// are being visited are not visited. A container reachable through more
// than one parent is visited once.
//
// Transform returns node, or fn's result when node itself is a scalar.
func Transform(node *parser.Node, fn Func) (*parser.Node, error) {
	if node == nil || node.IsScalar() {
		return fn("", node, nil, "")
	}

	t := &transformer{fn: fn, visited: make(map[*parser.Node]bool)}
	path := pathutil.Get()
	defer pathutil.Put(path)

	if err := t.container(node, path); err != nil {
		return nil, err
	}
	return node, nil
}

type transformer struct {
	fn      Func
	visited map[*parser.Node]bool
}

func (t *transformer) container(n *parser.Node, path *pathutil.PathBuilder) error {
	if t.visited[n] {
		return nil
	}
	t.visited[n] = true

	switch {
	case n.IsMapping():
		for _, key := range n.Keys() {
			path.Push(key)
			v, err := t.value(key, n.Get(key), n, path)
			path.Pop()
			if err != nil {
				return err
			}
			n.Set(key, v)
		}
	case n.IsSequence():
		for i, item := range n.Items {
			path.PushIndex(i)
			v, err := t.value(strconv.Itoa(i), item, n, path)
			path.Pop()
			if err != nil {
				return err
			}
			n.Items[i] = v
		}
	}
	return nil
}

func (t *transformer) value(key string, v, parent *parser.Node, path *pathutil.PathBuilder) (*parser.Node, error) {
	if v.IsMapping() || v.IsSequence() {
		return v, t.container(v, path)
	}
	out, err := t.fn(key, v, parent, path.String())
	if err != nil {
		return nil, fmt.Errorf("transform: %s: %w", path.String(), err)
	}
	return out, nil
}
