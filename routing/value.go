package routing

import "strings"

type valueKind uint8

const (
	scalarValue valueKind = iota
	listValue
	nullValue
)

// Value is an argument value: a scalar, an ordered list of scalars or null.
//
// The zero Value is the empty scalar.
type Value struct {
	kind  valueKind
	items []string
}

// Args maps argument names to their values.
type Args map[string]Value

// Scalar returns a single-valued Value.
func Scalar(s string) Value {
	return Value{kind: scalarValue, items: []string{s}}
}

// List returns a multi-valued Value. The items are copied.
func List(items ...string) Value {
	return Value{kind: listValue, items: append([]string(nil), items...)}
}

// Null returns a Value without content. In a query string it is rendered as
// the bare argument name.
func Null() Value {
	return Value{kind: nullValue}
}

// valueOf returns a scalar for one item and a list otherwise.
func valueOf(items []string) Value {
	if len(items) == 1 {
		return Value{kind: scalarValue, items: items}
	}

	return Value{kind: listValue, items: items}
}

// IsList reports whether v was built as a list.
func (v Value) IsList() bool {
	return v.kind == listValue
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == nullValue
}

// Len returns the number of scalars held by v.
func (v Value) Len() int {
	if v.kind == scalarValue && v.items == nil {
		return 1
	}

	return len(v.items)
}

// String returns the scalar, or the first element of a list.
func (v Value) String() string {
	if len(v.items) == 0 {
		return ""
	}

	return v.items[0]
}

// Strings returns a copy of the scalars held by v.
func (v Value) Strings() []string {
	if v.kind == scalarValue && v.items == nil {
		return []string{""}
	}

	return append([]string(nil), v.items...)
}

// Equal reports whether v and o have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.Len() != o.Len() {
		return false
	}

	a, b := v.Strings(), o.Strings()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// GoString renders v for debugging and test failures.
func (v Value) GoString() string {
	switch v.kind {
	case nullValue:
		return "null"
	case listValue:
		return "[" + strings.Join(v.items, ", ") + "]"
	default:
		return v.String()
	}
}

// Clone returns a shallow copy of a. Values share their backing arrays, which
// are never mutated.
func (a Args) Clone() Args {
	c := make(Args, len(a))
	for k, v := range a {
		c[k] = v
	}

	return c
}

// Equal reports whether a and o hold the same names and values.
func (a Args) Equal(o Args) bool {
	if len(a) != len(o) {
		return false
	}

	for k, v := range a {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}

	return true
}
