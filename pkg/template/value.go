package template

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type of a Value
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Value is a template value: a string, bool, number or list of values
type Value struct {
	kind Kind
	str  string
	b    bool
	num  float64
	list []Value
}

// Vars is the closed set of variables a template renders against
type Vars map[string]Value

// String returns a string value
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a bool value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number value
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List returns a list value
func List(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindList, list: items}
}

// Strings returns a list of string values
func Strings(items []string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return Value{kind: KindList, list: list}
}

// Kind returns the type of v
func (v Value) Kind() Kind { return v.kind }

// Items returns the elements of a list value
func (v Value) Items() []Value { return v.list }

// Truthy follows the usual scripting rules: false, "", 0 and an empty list
// are false, everything else is true
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindList:
		return len(v.list) > 0
	}
	return false
}

// String renders v for output. Lists render as comma separated items.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.num)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// Equal compares kind and content; lists compare element by element
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
