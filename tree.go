package ofxtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextKey is the key under which an element's own text is kept when it also has child elements.
const TextKey = "#text"

// Kind identifies the shape of a Node.
type Kind int

const (
	// LeafKind is a string value.
	LeafKind Kind = iota
	// ObjectKind is an ordered mapping of tag names to children.
	ObjectKind
	// ListKind is a run of repeated sibling elements sharing one tag name.
	ListKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case ObjectKind:
		return "object"
	case ListKind:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one of Leaf, *Object or List.
type Node interface {
	Kind() Kind
	isNode()
}

// Leaf is the text content of an element with no children.
type Leaf string

// List holds repeated sibling elements in document order.
type List []Node

// Object is an ordered mapping from tag name to child node.
type Object struct {
	keys   []string
	values map[string]Node
}

func (Leaf) Kind() Kind    { return LeafKind }
func (*Object) Kind() Kind { return ObjectKind }
func (List) Kind() Kind    { return ListKind }

func (Leaf) isNode()    {}
func (*Object) isNode() {}
func (List) isNode()    {}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{
		keys:   make([]string, 0),
		values: make(map[string]Node),
	}
}

// Set stores value under key, replacing any existing value in place.
func (o *Object) Set(key string, value Node) *Object {
	if _, found := o.values[key]; !found {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Add stores value under key. A key seen before collapses into a List of all values
// added under it, in order.
func (o *Object) Add(key string, value Node) *Object {
	existing, found := o.values[key]
	if !found {
		return o.Set(key, value)
	}
	if l, ok := existing.(List); ok {
		o.values[key] = append(l, value)
	} else {
		o.values[key] = List{existing, value}
	}
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Node, bool) {
	if o == nil {
		return nil, false
	}
	v, found := o.values[key]
	return v, found
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Lookup walks a dotted path such as "OFX.BANKMSGSRSV1.NAME" from node. A numeric segment
// indexes into a List.
func Lookup(node Node, path string) (Node, bool) {
	if path == "" {
		return node, node != nil
	}
	for _, segment := range strings.Split(path, ".") {
		switch n := node.(type) {
		case *Object:
			child, found := n.Get(segment)
			if !found {
				return nil, false
			}
			node = child
		case List:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(n) {
				return nil, false
			}
			node = n[idx]
		default:
			return nil, false
		}
	}
	return node, true
}

// Equal reports whether two trees have the same shape, keys, key order and leaf values.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Leaf:
		y, ok := b.(Leaf)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.values[k], y.values[k]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}

// MarshalJSON renders the object with its keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the object as a mapping with its keys in order.
func (o *Object) MarshalYAML() (interface{}, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		var value yaml.Node
		if err := value.Encode(o.values[k]); err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &value)
	}
	return m, nil
}

// MarshalYAML renders the leaf as a string scalar, so values such as 0 or NONE never
// change type on the way back in.
func (l Leaf) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(l)}, nil
}

// UnmarshalYAML builds the object from a YAML (or JSON) mapping, keeping key order.
func (o *Object) UnmarshalYAML(value *yaml.Node) error {
	node, err := fromYAML(value)
	if err != nil {
		return err
	}
	obj, ok := node.(*Object)
	if !ok {
		return fmt.Errorf("error - expected mapping at line %d, got %s", value.Line, node.Kind())
	}
	*o = *obj
	return nil
}

func fromYAML(value *yaml.Node) (Node, error) {
	switch value.Kind {
	case yaml.DocumentNode:
		if len(value.Content) == 0 {
			return NewObject(), nil
		}
		return fromYAML(value.Content[0])
	case yaml.AliasNode:
		return fromYAML(value.Alias)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			return Leaf(""), nil
		}
		return Leaf(value.Value), nil
	case yaml.SequenceNode:
		list := make(List, 0, len(value.Content))
		for _, item := range value.Content {
			n, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			list = append(list, n)
		}
		return list, nil
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(value.Content); i += 2 {
			n, err := fromYAML(value.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(value.Content[i].Value, n)
		}
		return obj, nil
	}
	return nil, fmt.Errorf("error - unsupported yaml node at line %d", value.Line)
}
