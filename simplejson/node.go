package simplejson

import (
	"strconv"
	"strings"
)

// Kind identifies the runtime kind of a parsed value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	}
	return "unknown"
}

type (
	//Node represents one parsed JSON value
	Node struct {
		kind Kind
		b    bool
		raw  string //number literal as it appeared in the input
		f    float64
		s    string
		list []*Node
		obj  *Object
	}

	//Object represents a string-keyed value collection preserving insertion order
	Object struct {
		keys   []string
		values map[string]*Node
	}
)

var nullNode = &Node{kind: KindNull}

// NullNode returns the null value node.
func NullNode() *Node {
	return nullNode
}

// BoolNode creates a bool node.
func BoolNode(value bool) *Node {
	return &Node{kind: KindBool, b: value}
}

// NumberNode creates a number node keeping the raw literal.
func NumberNode(literal string, value float64) *Node {
	return &Node{kind: KindNumber, raw: literal, f: value}
}

// StringNode creates a string node.
func StringNode(value string) *Node {
	return &Node{kind: KindString, s: value}
}

// ListNode creates a list node.
func ListNode(items []*Node) *Node {
	return &Node{kind: KindList, list: items}
}

// ObjectNode creates an object node.
func ObjectNode(object *Object) *Node {
	return &Node{kind: KindObject, obj: object}
}

// Kind returns node kind
func (n *Node) Kind() Kind {
	return n.kind
}

// IsNull returns true for the null node.
func (n *Node) IsNull() bool {
	return n.kind == KindNull
}

// Bool returns the bool value.
func (n *Node) Bool() bool {
	return n.b
}

// Float returns the parsed numeric value.
func (n *Node) Float() float64 {
	return n.f
}

// Literal returns the raw number literal.
func (n *Node) Literal() string {
	return n.raw
}

// Text returns the string value.
func (n *Node) Text() string {
	return n.s
}

// Items returns list elements.
func (n *Node) Items() []*Node {
	return n.list
}

// Object returns the object value.
func (n *Node) Object() *Object {
	return n.obj
}

// String renders the node; scalars verbatim, containers as compact JSON,
// null as the empty string.
func (n *Node) String() string {
	switch n.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(n.b)
	case KindNumber:
		return n.raw
	case KindString:
		return n.s
	case KindList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range n.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.render(&sb)
		}
		sb.WriteByte(']')
		return sb.String()
	case KindObject:
		var sb strings.Builder
		n.render(&sb)
		return sb.String()
	}
	return ""
}

func (n *Node) render(sb *strings.Builder) {
	switch n.kind {
	case KindNull:
		sb.WriteString("null")
	case KindString:
		sb.WriteString(strconv.Quote(n.s))
	case KindObject:
		sb.WriteByte('{')
		for i, key := range n.obj.keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(key))
			sb.WriteByte(':')
			n.obj.values[key].render(sb)
		}
		sb.WriteByte('}')
	case KindList:
		sb.WriteByte('[')
		for i, item := range n.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.render(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(n.String())
	}
}

// Interface returns the most specific native representation: nil, bool,
// int64 for integral numbers, float64, string, []interface{} or
// map[string]interface{}.
func (n *Node) Interface() interface{} {
	switch n.kind {
	case KindNull:
		return nil
	case KindBool:
		return n.b
	case KindNumber:
		if isIntegral(n.raw) {
			if i, err := strconv.ParseInt(n.raw, 10, 64); err == nil {
				return i
			}
		}
		return n.f
	case KindString:
		return n.s
	case KindList:
		items := make([]interface{}, len(n.list))
		for i, item := range n.list {
			items[i] = item.Interface()
		}
		return items
	case KindObject:
		ret := make(map[string]interface{}, len(n.obj.keys))
		for _, key := range n.obj.keys {
			ret[key] = n.obj.values[key].Interface()
		}
		return ret
	}
	return nil
}

func isIntegral(literal string) bool {
	return !strings.ContainsAny(literal, ".eE")
}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]*Node)}
}

// Len returns pair count.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string {
	return o.keys
}

// Value returns the node stored under key.
func (o *Object) Value(key string) (*Node, bool) {
	node, ok := o.values[key]
	return node, ok
}

// Set stores a pair; an existing key keeps its original position, last
// value wins.
func (o *Object) Set(key string, value *Node) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Pairs visits pairs in insertion order until the callback returns false.
func (o *Object) Pairs(cb func(key string, value *Node) bool) {
	for _, key := range o.keys {
		if !cb(key, o.values[key]) {
			return
		}
	}
}
