package template

import (
	"strconv"
)

type arity struct{ min, max int }

// methods lists every method an expression may call
var methods = map[string]arity{
	"charAt":      {1, 1},
	"toUpperCase": {0, 0},
	"toLowerCase": {0, 0},
	"slice":       {0, 2},
	"trim":        {0, 0},
	"startsWith":  {1, 1},
	"endsWith":    {1, 1},
	"includes":    {1, 1},
	"join":        {0, 1},
}

// builtins lists the free functions an expression may call
var builtins = map[string]arity{
	"capitalize": {1, 1},
}

// reserved words that cannot name a variable
var reserved = map[string]bool{
	"if":       true,
	"else":     true,
	"function": true,
	"true":     true,
	"false":    true,
	"var":      true,
	"let":      true,
	"const":    true,
	"return":   true,
}

// exprParser is a precedence-climbing parser over the tokens of one tag
type exprParser struct {
	idx    *lineIndex
	tokens []token
	pos    int
}

func newExprParser(idx *lineIndex, tokens []token) *exprParser {
	return &exprParser{idx: idx, tokens: tokens}
}

func (p *exprParser) peek() token {
	return p.tokens[p.pos]
}

func (p *exprParser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *exprParser) position(t token) Position {
	return p.idx.position(t.offset)
}

func (p *exprParser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, syntaxErr(p.position(t), "expected %s, found %s", kind, t.describe())
	}
	return t, nil
}

func (p *exprParser) expectEnd() error {
	if p.peek().kind == tokSemicolon {
		p.next()
	}
	t := p.peek()
	if t.kind != tokEOF {
		return syntaxErr(p.position(t), "unexpected %s", t.describe())
	}
	return nil
}

// parseExpr parses a full expression
func (p *exprParser) parseExpr() (Expr, error) {
	return p.parseOr()
}

func (p *exprParser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		op := p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.kind, L: left, R: right, Position: p.position(op)}
	}
	return left, nil
}

func (p *exprParser) parseAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		op := p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.kind, L: left, R: right, Position: p.position(op)}
	}
	return left, nil
}

func (p *exprParser) parseEquality() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStrictEq, tokStrictNe, tokEq, tokNe:
			op := p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = &Binary{Op: op.kind, L: left, R: right, Position: p.position(op)}
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseAdditive() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokPlus || p.peek().kind == tokMinus {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.kind, L: left, R: right, Position: p.position(op)}
	}
	return left, nil
}

func (p *exprParser) parseUnary() (Expr, error) {
	if k := p.peek().kind; k == tokNot || k == tokMinus {
		op := p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op.kind, X: x, Position: p.position(op)}, nil
	}
	return p.parsePostfix()
}

func (p *exprParser) parsePostfix() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokLBracket:
			open := p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket); err != nil {
				return nil, err
			}
			x = &Index{X: x, Index: index, Position: p.position(open)}
		case tokDot:
			p.next()
			name, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			if p.peek().kind != tokLParen {
				if name.text != "length" {
					return nil, syntaxErr(p.position(name), "unknown property '%s'", name.text)
				}
				x = &Length{X: x, Position: p.position(name)}
				continue
			}
			ar, ok := methods[name.text]
			if !ok {
				return nil, syntaxErr(p.position(name), "unknown method '%s'", name.text)
			}
			args, err := p.parseArgs(name, ar)
			if err != nil {
				return nil, err
			}
			x = &MethodCall{Recv: x, Name: name.text, Args: args, Position: p.position(name)}
		default:
			return x, nil
		}
	}
}

// parseArgs parses a parenthesized argument list and checks its length
func (p *exprParser) parseArgs(callee token, ar arity) ([]Expr, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []Expr
	for p.peek().kind != tokRParen {
		if len(args) > 0 {
			if _, err := p.expect(tokComma); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.next()
	if len(args) < ar.min || len(args) > ar.max {
		return nil, syntaxErr(p.position(callee), "'%s' takes %s, got %d", callee.text, ar.describe(), len(args))
	}
	return args, nil
}

func (a arity) describe() string {
	plural := func(n int) string {
		if n == 1 {
			return "1 argument"
		}
		return strconv.Itoa(n) + " arguments"
	}
	if a.min == a.max {
		return plural(a.min)
	}
	return strconv.Itoa(a.min) + " to " + plural(a.max)
}

func (p *exprParser) parsePrimary() (Expr, error) {
	t := p.next()
	pos := p.position(t)
	switch t.kind {
	case tokString:
		return &Literal{Value: String(t.text), Position: pos}, nil
	case tokNumber:
		n, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, syntaxErr(pos, "invalid number %q", t.text)
		}
		return &Literal{Value: Number(n), Position: pos}, nil
	case tokLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return x, nil
	case tokLBracket:
		list := &ListLit{Position: pos}
		for p.peek().kind != tokRBracket {
			if len(list.Items) > 0 {
				if _, err := p.expect(tokComma); err != nil {
					return nil, err
				}
			}
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		p.next()
		return list, nil
	case tokIdent:
		switch t.text {
		case "true":
			return &Literal{Value: Bool(true), Position: pos}, nil
		case "false":
			return &Literal{Value: Bool(false), Position: pos}, nil
		}
		if reserved[t.text] {
			return nil, syntaxErr(pos, "unexpected keyword '%s'", t.text)
		}
		if p.peek().kind == tokLParen {
			ar, ok := builtins[t.text]
			if !ok {
				return nil, syntaxErr(pos, "unknown function '%s'", t.text)
			}
			args, err := p.parseArgs(t, ar)
			if err != nil {
				return nil, err
			}
			return &Call{Name: t.text, Args: args, Position: pos}, nil
		}
		return &Ident{Name: t.text, Position: pos}, nil
	case tokEOF:
		return nil, syntaxErr(pos, "expected expression")
	}
	return nil, syntaxErr(pos, "unexpected %s", t.describe())
}

// parseExpression parses content as a single expression filling the whole tag
func parseExpression(idx *lineIndex, content string, base int) (Expr, error) {
	tokens, err := lex(idx, content, base)
	if err != nil {
		return nil, err
	}
	p := newExprParser(idx, tokens)
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return x, nil
}
