package template

import (
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// EscapeXML escapes the characters that are special in XML and HTML
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

type binding struct {
	name  string
	value Value
}

// env resolves identifiers: loop variables shadow template variables
type env struct {
	vars   Vars
	locals []binding
}

func (e *env) lookup(id *Ident) (Value, error) {
	for i := len(e.locals) - 1; i >= 0; i-- {
		if e.locals[i].name == id.Name {
			return e.locals[i].value, nil
		}
	}
	if v, ok := e.vars[id.Name]; ok {
		return v, nil
	}
	return Value{}, undefinedErr(id.Position, id.Name)
}

func (e *env) execute(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case *NodeText:
			if _, err := io.WriteString(w, n.Content); err != nil {
				return ioErr(err)
			}
		case *NodeOutput:
			v, err := e.eval(n.Expr)
			if err != nil {
				return err
			}
			out := v.String()
			if n.Escape {
				out = EscapeXML(out)
			}
			if _, err := io.WriteString(w, out); err != nil {
				return ioErr(err)
			}
		case *NodeIf:
			body, taken, err := e.pickBranch(n)
			if err != nil {
				return err
			}
			if taken {
				if err := e.execute(w, body); err != nil {
					return err
				}
			}
		case *NodeEach:
			seq, err := e.eval(n.Seq)
			if err != nil {
				return err
			}
			if seq.Kind() != KindList {
				return evalErr(n.Seq.Pos(), "forEach needs a list, got %s", seq.Kind())
			}
			for _, item := range seq.Items() {
				e.locals = append(e.locals, binding{name: n.Var, value: item})
				err := e.execute(w, n.Body)
				e.locals = e.locals[:len(e.locals)-1]
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (e *env) pickBranch(n *NodeIf) ([]Node, bool, error) {
	for _, br := range n.Branches {
		c, err := e.eval(br.Cond)
		if err != nil {
			return nil, false, err
		}
		if c.Truthy() {
			return br.Body, true, nil
		}
	}
	return n.Else, n.HasElse, nil
}

func (e *env) eval(x Expr) (Value, error) {
	switch x := x.(type) {
	case *Literal:
		return x.Value, nil
	case *Ident:
		return e.lookup(x)
	case *ListLit:
		items := make([]Value, 0, len(x.Items))
		for _, item := range x.Items {
			v, err := e.eval(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return List(items...), nil
	case *Unary:
		v, err := e.eval(x.X)
		if err != nil {
			return Value{}, err
		}
		if x.Op == tokNot {
			return Bool(!v.Truthy()), nil
		}
		if v.Kind() != KindNumber {
			return Value{}, evalErr(x.Position, "cannot negate a %s", v.Kind())
		}
		return Number(-v.num), nil
	case *Binary:
		return e.evalBinary(x)
	case *Index:
		return e.evalIndex(x)
	case *Length:
		v, err := e.eval(x.X)
		if err != nil {
			return Value{}, err
		}
		switch v.Kind() {
		case KindString:
			return Number(float64(utf8.RuneCountInString(v.str))), nil
		case KindList:
			return Number(float64(len(v.list))), nil
		}
		return Value{}, evalErr(x.Position, "a %s has no length", v.Kind())
	case *MethodCall:
		return e.evalMethod(x)
	case *Call:
		return e.evalCall(x)
	}
	return Value{}, evalErr(x.Pos(), "unsupported expression")
}

func (e *env) evalBinary(x *Binary) (Value, error) {
	left, err := e.eval(x.L)
	if err != nil {
		return Value{}, err
	}
	// && and || short-circuit and yield an operand
	switch x.Op {
	case tokAnd:
		if !left.Truthy() {
			return left, nil
		}
		return e.eval(x.R)
	case tokOr:
		if left.Truthy() {
			return left, nil
		}
		return e.eval(x.R)
	}

	right, err := e.eval(x.R)
	if err != nil {
		return Value{}, err
	}
	switch x.Op {
	case tokStrictEq, tokEq:
		return Bool(left.Equal(right)), nil
	case tokStrictNe, tokNe:
		return Bool(!left.Equal(right)), nil
	case tokPlus:
		if left.Kind() == KindNumber && right.Kind() == KindNumber {
			return Number(left.num + right.num), nil
		}
		if left.Kind() == KindList || right.Kind() == KindList {
			return Value{}, evalErr(x.Position, "cannot add %s and %s", left.Kind(), right.Kind())
		}
		if left.Kind() != KindString && right.Kind() != KindString {
			return Value{}, evalErr(x.Position, "cannot add %s and %s", left.Kind(), right.Kind())
		}
		return String(left.String() + right.String()), nil
	case tokMinus:
		if left.Kind() != KindNumber || right.Kind() != KindNumber {
			return Value{}, evalErr(x.Position, "cannot subtract %s from %s", right.Kind(), left.Kind())
		}
		return Number(left.num - right.num), nil
	}
	return Value{}, evalErr(x.Position, "unsupported operator %s", x.Op)
}

func (e *env) evalIndex(x *Index) (Value, error) {
	v, err := e.eval(x.X)
	if err != nil {
		return Value{}, err
	}
	idx, err := e.eval(x.Index)
	if err != nil {
		return Value{}, err
	}
	i, ok := asInt(idx)
	if !ok {
		return Value{}, evalErr(x.Position, "index must be a whole number, got %s", idx.Kind())
	}
	switch v.Kind() {
	case KindString:
		runes := []rune(v.str)
		if i < 0 || i >= len(runes) {
			return String(""), nil
		}
		return String(string(runes[i])), nil
	case KindList:
		if i < 0 || i >= len(v.list) {
			return Value{}, evalErr(x.Position, "index %d out of range for list of length %d", i, len(v.list))
		}
		return v.list[i], nil
	}
	return Value{}, evalErr(x.Position, "cannot index a %s", v.Kind())
}

func (e *env) evalArgs(args []Expr) ([]Value, error) {
	out := make([]Value, 0, len(args))
	for _, a := range args {
		v, err := e.eval(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *env) evalMethod(x *MethodCall) (Value, error) {
	recv, err := e.eval(x.Recv)
	if err != nil {
		return Value{}, err
	}
	args, err := e.evalArgs(x.Args)
	if err != nil {
		return Value{}, err
	}

	switch recv.Kind() {
	case KindString:
		return stringMethod(x, recv.str, args)
	case KindList:
		return listMethod(x, recv.list, args)
	}
	return Value{}, evalErr(x.Position, "%s has no method '%s'", recv.Kind(), x.Name)
}

func stringMethod(x *MethodCall, s string, args []Value) (Value, error) {
	switch x.Name {
	case "charAt":
		i, ok := asInt(args[0])
		if !ok {
			return Value{}, evalErr(x.Position, "charAt needs a whole number")
		}
		runes := []rune(s)
		if i < 0 || i >= len(runes) {
			return String(""), nil
		}
		return String(string(runes[i])), nil
	case "toUpperCase":
		return String(strings.ToUpper(s)), nil
	case "toLowerCase":
		return String(strings.ToLower(s)), nil
	case "trim":
		return String(strings.TrimSpace(s)), nil
	case "slice":
		runes := []rune(s)
		start, end, err := sliceBounds(x, len(runes), args)
		if err != nil {
			return Value{}, err
		}
		return String(string(runes[start:end])), nil
	case "startsWith", "endsWith", "includes":
		if args[0].Kind() != KindString {
			return Value{}, evalErr(x.Position, "%s needs a string, got %s", x.Name, args[0].Kind())
		}
		sub := args[0].str
		switch x.Name {
		case "startsWith":
			return Bool(strings.HasPrefix(s, sub)), nil
		case "endsWith":
			return Bool(strings.HasSuffix(s, sub)), nil
		}
		return Bool(strings.Contains(s, sub)), nil
	}
	return Value{}, evalErr(x.Position, "string has no method '%s'", x.Name)
}

func listMethod(x *MethodCall, items []Value, args []Value) (Value, error) {
	switch x.Name {
	case "join":
		sep := ","
		if len(args) == 1 {
			if args[0].Kind() != KindString {
				return Value{}, evalErr(x.Position, "join needs a string separator, got %s", args[0].Kind())
			}
			sep = args[0].str
		}
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return String(strings.Join(parts, sep)), nil
	case "includes":
		for _, item := range items {
			if item.Equal(args[0]) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	case "slice":
		start, end, err := sliceBounds(x, len(items), args)
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, end-start)
		copy(out, items[start:end])
		return List(out...), nil
	}
	return Value{}, evalErr(x.Position, "list has no method '%s'", x.Name)
}

// sliceBounds resolves slice(start, end) arguments; negative values count
// from the end and out of range values are clamped
func sliceBounds(x *MethodCall, length int, args []Value) (int, int, error) {
	bounds := []int{0, length}
	for i, a := range args {
		n, ok := asInt(a)
		if !ok {
			return 0, 0, evalErr(x.Position, "slice needs whole numbers, got %s", a.Kind())
		}
		if n < 0 {
			n += length
		}
		if n < 0 {
			n = 0
		}
		if n > length {
			n = length
		}
		bounds[i] = n
	}
	if bounds[1] < bounds[0] {
		bounds[1] = bounds[0]
	}
	return bounds[0], bounds[1], nil
}

func (e *env) evalCall(x *Call) (Value, error) {
	args, err := e.evalArgs(x.Args)
	if err != nil {
		return Value{}, err
	}
	switch x.Name {
	case "capitalize":
		if args[0].Kind() != KindString {
			return Value{}, evalErr(x.Position, "capitalize needs a string, got %s", args[0].Kind())
		}
		return String(capitalize(args[0].str)), nil
	}
	return Value{}, evalErr(x.Position, "unknown function '%s'", x.Name)
}

// capitalize upper-cases the first character and leaves the rest alone
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || (size == 1 && r == utf8.RuneError) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func asInt(v Value) (int, bool) {
	if v.Kind() != KindNumber || v.num != math.Trunc(v.num) {
		return 0, false
	}
	return int(v.num), true
}
