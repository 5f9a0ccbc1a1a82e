// Package jsonv wraps a parsed JSON document with total accessors: every
// lookup succeeds, and callers state the default they want for absent or
// mistyped fields. Object iteration keeps document order.
package jsonv

import (
	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
)

// Value is a node in a parsed JSON document. The zero Value is absent.
type Value struct {
	node ast.Node
}

// Pair is one member of a JSON object.
type Pair struct {
	Key   string
	Value Value
}

// Parse parses and fully validates b.
func Parse(b []byte) (Value, error) {
	root, err := sonic.Get(b)
	if err != nil {
		return Value{}, err
	}
	if err := root.LoadAll(); err != nil {
		return Value{}, err
	}
	return Value{node: root}, nil
}

// Lookup walks object keys (string) and array indexes (int).
// A missing step yields an absent Value.
func (v Value) Lookup(path ...any) Value {
	if !v.Exists() {
		return Value{}
	}
	n := v.node.GetByPath(path...)
	if n == nil || !n.Exists() {
		return Value{}
	}
	return Value{node: *n}
}

// Exists reports whether the value is present in the document.
// A JSON null is present.
func (v Value) Exists() bool {
	return v.node.Exists()
}

// IsObject reports whether v is a JSON object.
func (v Value) IsObject() bool { return v.kind() == ast.V_OBJECT }

// IsArray reports whether v is a JSON array.
func (v Value) IsArray() bool { return v.kind() == ast.V_ARRAY }

func (v Value) kind() int {
	if !v.Exists() {
		return ast.V_NONE
	}
	return v.node.TypeSafe()
}

// String returns the string value, or def if v is absent or not a string.
func (v Value) String(def string) string {
	if v.kind() != ast.V_STRING {
		return def
	}
	s, err := v.node.String()
	if err != nil {
		return def
	}
	return s
}

// Text renders v for display: strings unquoted, anything else as compact JSON.
// An absent value renders as "".
func (v Value) Text() string {
	if !v.Exists() {
		return ""
	}
	if v.kind() == ast.V_STRING {
		return v.String("")
	}
	return v.Raw()
}

// Raw returns the compact JSON text of v, keeping object key order.
// An absent value renders as "".
func (v Value) Raw() string {
	if !v.Exists() {
		return ""
	}
	raw, err := v.node.Raw()
	if err != nil {
		return ""
	}
	return raw
}

// Interface converts v to plain Go values (map[string]any, []any, float64, ...).
func (v Value) Interface() any {
	if !v.Exists() {
		return nil
	}
	out, err := v.node.Interface()
	if err != nil {
		return nil
	}
	return out
}

// Array returns the elements of v, or an empty slice if v is not an array.
func (v Value) Array() []Value {
	if v.kind() != ast.V_ARRAY {
		return []Value{}
	}
	it, err := v.node.Values()
	if err != nil {
		return []Value{}
	}
	out := make([]Value, 0, it.Len())
	var n ast.Node
	for it.Next(&n) {
		out = append(out, Value{node: n})
	}
	return out
}

// Pairs returns the members of v in document order, or nil if v is not an object.
func (v Value) Pairs() []Pair {
	if v.kind() != ast.V_OBJECT {
		return nil
	}
	it, err := v.node.Properties()
	if err != nil {
		return nil
	}
	var out []Pair
	var p ast.Pair
	for it.Next(&p) {
		out = append(out, Pair{Key: p.Key, Value: Value{node: p.Value}})
	}
	return out
}
