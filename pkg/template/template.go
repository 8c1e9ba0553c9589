package template

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	derrors "github.com/arthur-debert/droidgen/pkg/errors"
)

// Template is a parsed template ready to execute
type Template struct {
	name  string
	nodes []Node
	// first reference of each free variable, in source order
	free []*Ident
}

// Parse parses src. name is used in error positions.
func Parse(name string, src []byte) (*Template, error) {
	nodes, err := NewParser(name, src).Parse()
	if err != nil {
		return nil, err
	}
	t := &Template{name: name, nodes: nodes}
	t.free = freeVariables(nodes)
	return t, nil
}

// Name returns the name the template was parsed with
func (t *Template) Name() string { return t.name }

// Nodes returns the parsed tree
func (t *Template) Nodes() []Node { return t.nodes }

// Variables returns the sorted names of the variables the template needs.
// Loop variables are excluded inside the body that binds them.
func (t *Template) Variables() []string {
	names := make([]string, 0, len(t.free))
	for _, id := range t.free {
		names = append(names, id.Name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the template into w. Every variable is checked before
// anything is written.
func (t *Template) Execute(w io.Writer, vars Vars) error {
	for _, id := range t.free {
		if _, ok := vars[id.Name]; !ok {
			return undefinedErr(id.Position, id.Name)
		}
	}
	e := &env{vars: vars}
	return e.execute(w, t.nodes)
}

// Render parses and executes src in one step
func Render(name string, src []byte, vars Vars) (string, error) {
	t, err := Parse(name, src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, vars); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// freeVariables collects identifiers not bound by an enclosing forEach,
// keeping the first reference of each name
func freeVariables(nodes []Node) []*Ident {
	seen := map[string]bool{}
	var out []*Ident
	var bound []string

	isBound := func(name string) bool {
		for _, b := range bound {
			if b == name {
				return true
			}
		}
		return false
	}

	var walkExpr func(x Expr)
	walkExpr = func(x Expr) {
		switch x := x.(type) {
		case *Ident:
			if !isBound(x.Name) && !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x)
			}
		case *ListLit:
			for _, item := range x.Items {
				walkExpr(item)
			}
		case *Unary:
			walkExpr(x.X)
		case *Binary:
			walkExpr(x.L)
			walkExpr(x.R)
		case *Index:
			walkExpr(x.X)
			walkExpr(x.Index)
		case *Length:
			walkExpr(x.X)
		case *MethodCall:
			walkExpr(x.Recv)
			for _, a := range x.Args {
				walkExpr(a)
			}
		case *Call:
			for _, a := range x.Args {
				walkExpr(a)
			}
		}
	}

	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *NodeOutput:
				walkExpr(n.Expr)
			case *NodeIf:
				for _, br := range n.Branches {
					walkExpr(br.Cond)
					walk(br.Body)
				}
				walk(n.Else)
			case *NodeEach:
				walkExpr(n.Seq)
				bound = append(bound, n.Var)
				walk(n.Body)
				bound = bound[:len(bound)-1]
			}
		}
	}
	walk(nodes)
	return out
}

func syntaxErr(pos Position, format string, args ...interface{}) error {
	return derrors.Newf(derrors.ErrTemplateSyntax, "%s: %s", pos, fmt.Sprintf(format, args...)).
		WithDetails(pos.details())
}

func evalErr(pos Position, format string, args ...interface{}) error {
	return derrors.Newf(derrors.ErrTemplateEvaluation, "%s: %s", pos, fmt.Sprintf(format, args...)).
		WithDetails(pos.details())
}

func undefinedErr(pos Position, name string) error {
	return derrors.Newf(derrors.ErrUndefinedVariable, "%s: undefined variable '%s'", pos, name).
		WithDetails(pos.details()).
		WithDetail("variable", name)
}

func ioErr(err error) error {
	return derrors.Wrap(err, derrors.ErrIO, "failed to write template output")
}
