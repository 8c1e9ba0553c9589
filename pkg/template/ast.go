package template

// Node is an element of a parsed template body
type Node interface {
	node()
}

// NodeText is literal text copied to the output
type NodeText struct {
	Content string
}

// NodeOutput writes the value of an expression
type NodeOutput struct {
	Expr   Expr
	Escape bool
}

// NodeIf is an if / else if / else chain
type NodeIf struct {
	Branches []IfBranch
	Else     []Node
	HasElse  bool
	Position Position
}

// IfBranch is one condition of a NodeIf and the body it guards
type IfBranch struct {
	Cond Expr
	Body []Node
}

// NodeEach runs its body once per element of a list, binding Var
type NodeEach struct {
	Seq      Expr
	Var      string
	Body     []Node
	Position Position
}

func (*NodeText) node()   {}
func (*NodeOutput) node() {}
func (*NodeIf) node()     {}
func (*NodeEach) node()   {}

// Expr is a parsed expression
type Expr interface {
	Pos() Position
}

// Ident references a variable
type Ident struct {
	Name     string
	Position Position
}

// Literal is a constant value
type Literal struct {
	Value    Value
	Position Position
}

// ListLit is a list literal such as [] or ["a", b]
type ListLit struct {
	Items    []Expr
	Position Position
}

// Unary is a prefix operator application
type Unary struct {
	Op       tokenKind
	X        Expr
	Position Position
}

// Binary is an infix operator application
type Binary struct {
	Op       tokenKind
	L, R     Expr
	Position Position
}

// Index is x[i]
type Index struct {
	X, Index Expr
	Position Position
}

// Length is x.length
type Length struct {
	X        Expr
	Position Position
}

// MethodCall is recv.name(args...)
type MethodCall struct {
	Recv     Expr
	Name     string
	Args     []Expr
	Position Position
}

// Call is a builtin function call
type Call struct {
	Name     string
	Args     []Expr
	Position Position
}

func (e *Ident) Pos() Position      { return e.Position }
func (e *Literal) Pos() Position    { return e.Position }
func (e *ListLit) Pos() Position    { return e.Position }
func (e *Unary) Pos() Position      { return e.Position }
func (e *Binary) Pos() Position     { return e.Position }
func (e *Index) Pos() Position      { return e.Position }
func (e *Length) Pos() Position     { return e.Position }
func (e *MethodCall) Pos() Position { return e.Position }
func (e *Call) Pos() Position       { return e.Position }
