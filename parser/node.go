package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Kind identifies which member of the Node union is populated.
type Kind uint8

const (
	// ScalarNode holds a single value in Node.Value.
	ScalarNode Kind = iota
	// MappingNode holds ordered key/value pairs.
	MappingNode
	// SequenceNode holds ordered items in Node.Items.
	SequenceNode
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "scalar"
	case MappingNode:
		return "mapping"
	case SequenceNode:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Node is one value of a parsed RAML document: a mapping, a sequence, or a
// scalar. Mappings remember the order their keys were declared in.
//
// Scalar values are nil, string, bool, int, or float64.
type Node struct {
	Kind Kind

	// Value is set for ScalarNode.
	Value any

	// Items is set for SequenceNode.
	Items []*Node

	keys   []string
	fields map[string]*Node
}

// NewScalar returns a scalar node holding v.
func NewScalar(v any) *Node {
	return &Node{Kind: ScalarNode, Value: v}
}

// NewMapping returns an empty mapping node.
func NewMapping() *Node {
	return &Node{Kind: MappingNode, fields: make(map[string]*Node)}
}

// NewSequence returns a sequence node holding items.
func NewSequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Items: items}
}

// IsMapping reports whether n is a non-nil mapping.
func (n *Node) IsMapping() bool { return n != nil && n.Kind == MappingNode }

// IsSequence reports whether n is a non-nil sequence.
func (n *Node) IsSequence() bool { return n != nil && n.Kind == SequenceNode }

// IsScalar reports whether n is a non-nil scalar.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == ScalarNode }

// IsNull reports whether n is absent or a null scalar.
func (n *Node) IsNull() bool {
	return n == nil || (n.Kind == ScalarNode && n.Value == nil)
}

// Get returns the value stored under key, or nil when n is not a mapping or
// has no such key.
func (n *Node) Get(key string) *Node {
	if !n.IsMapping() {
		return nil
	}
	return n.fields[key]
}

// Has reports whether the mapping n declares key.
func (n *Node) Has(key string) bool {
	if !n.IsMapping() {
		return false
	}
	_, ok := n.fields[key]
	return ok
}

// Set stores v under key. New keys are appended to the key order; existing
// keys keep their position.
func (n *Node) Set(key string, v *Node) {
	if n.Kind != MappingNode {
		panic("parser: Set on " + n.Kind.String() + " node")
	}
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
}

// Delete removes key from the mapping n.
func (n *Node) Delete(key string) {
	if !n.IsMapping() {
		return
	}
	if _, ok := n.fields[key]; !ok {
		return
	}
	delete(n.fields, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
}

// Keys returns a copy of the mapping's keys in declaration order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	return slices.Clone(n.keys)
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Node
}

// Entries returns the mapping's pairs in declaration order.
func (n *Node) Entries() []Entry {
	if !n.IsMapping() {
		return nil
	}
	entries := make([]Entry, 0, len(n.keys))
	for _, k := range n.keys {
		entries = append(entries, Entry{Key: k, Value: n.fields[k]})
	}
	return entries
}

// Len returns the number of entries of a mapping or items of a sequence.
func (n *Node) Len() int {
	switch {
	case n.IsMapping():
		return len(n.keys)
	case n.IsSequence():
		return len(n.Items)
	default:
		return 0
	}
}

// Str returns the scalar value as a string. Null and container nodes yield "".
func (n *Node) Str() string {
	if !n.IsScalar() || n.Value == nil {
		return ""
	}
	switch v := n.Value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the scalar value when it is a bool, false otherwise.
func (n *Node) Bool() bool {
	if !n.IsScalar() {
		return false
	}
	b, _ := n.Value.(bool)
	return b
}

// Truthy reports whether n counts as set: containers always do, scalars do
// unless they are null, false, zero, or the empty string.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	if n.Kind != ScalarNode {
		return true
	}
	switch v := n.Value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

// Names returns the names listed by a trait-style sequence such as
// `is: [private, paged: {size: 10}]`. Scalars contribute their value and
// single-key mappings their key.
func (n *Node) Names() []string {
	if !n.IsSequence() {
		return nil
	}
	names := make([]string, 0, len(n.Items))
	for _, item := range n.Items {
		switch {
		case item.IsScalar() && item.Value != nil:
			names = append(names, item.Str())
		case item.IsMapping() && item.Len() > 0:
			names = append(names, item.keys[0])
		}
	}
	return names
}

// Interface converts n into plain Go values: map[string]any, []any, or the
// scalar value. Key order is lost.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingNode:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			m[k] = n.fields[k].Interface()
		}
		return m
	case SequenceNode:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = item.Interface()
		}
		return s
	default:
		return n.Value
	}
}

// collectionKeys name the mappings whose keys are user-chosen names:
// parameters, headers, status codes, and media types.
var collectionKeys = map[string]bool{
	KeyURIParameters:     true,
	KeyBaseURIParameters: true,
	KeyQueryParameters:   true,
	KeyFormParameters:    true,
	KeyHeaders:           true,
	KeyResponses:         true,
	KeyBody:              true,
}

// Pair is one named entry of a collection in a render context.
type Pair struct {
	Key   string
	Value any
}

// Pairs is a collection in declaration order. Templates range over it:
//
//	{{range .queryParameters}}{{.Key}}: {{.Value.type}}{{end}}
//	{{#queryParameters}}{{Key}}{{/queryParameters}}
type Pairs []Pair

// Get returns the value stored under key, or nil.
func (p Pairs) Get(key string) any {
	for _, e := range p {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Keys returns the names in declaration order.
func (p Pairs) Keys() []string {
	keys := make([]string, len(p))
	for i, e := range p {
		keys[i] = e.Key
	}
	return keys
}

// TemplateValue converts n like Interface, except that collection mappings
// (uriParameters, queryParameters, headers, responses, body and so on)
// become Pairs so templates see them in declaration order.
func (n *Node) TemplateValue() any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingNode:
		m := make(map[string]any, len(n.keys))
		for _, k := range n.keys {
			v := n.fields[k]
			if collectionKeys[k] && v.IsMapping() {
				m[k] = v.pairs()
				continue
			}
			m[k] = v.TemplateValue()
		}
		return m
	case SequenceNode:
		s := make([]any, len(n.Items))
		for i, item := range n.Items {
			s[i] = item.TemplateValue()
		}
		return s
	default:
		return n.Value
	}
}

func (n *Node) pairs() Pairs {
	out := make(Pairs, 0, len(n.keys))
	for _, k := range n.keys {
		out = append(out, Pair{Key: k, Value: n.fields[k].TemplateValue()})
	}
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case MappingNode:
		c := NewMapping()
		for _, k := range n.keys {
			c.Set(k, n.fields[k].Clone())
		}
		return c
	case SequenceNode:
		items := make([]*Node, len(n.Items))
		for i, item := range n.Items {
			items[i] = item.Clone()
		}
		return NewSequence(items...)
	default:
		return NewScalar(n.Value)
	}
}

// MarshalJSON writes mappings with their keys in declaration order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case MappingNode:
		buf.WriteByte('{')
		for i, k := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := n.fields[k].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		data, err := json.Marshal(n.Value)
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	return nil
}
