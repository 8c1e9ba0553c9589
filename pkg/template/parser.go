package template

import (
	"strings"
)

type stmtKind int

const (
	stmtNone stmtKind = iota
	stmtIf
	stmtElseIf
	stmtElse
	stmtEndIf
	stmtEach
	stmtEndEach
)

type statement struct {
	kind    stmtKind
	cond    Expr
	seq     Expr
	loopVar string
}

// blockFrame is an open if or forEach block
type blockFrame struct {
	ifNode   *NodeIf
	inElse   bool
	each     *NodeEach
	position Position
}

func (f *blockFrame) body() *[]Node {
	if f.each != nil {
		return &f.each.Body
	}
	if f.inElse {
		return &f.ifNode.Else
	}
	return &f.ifNode.Branches[len(f.ifNode.Branches)-1].Body
}

// Parser turns template source into a tree of nodes
type Parser struct {
	idx *lineIndex
}

// NewParser returns a parser for the named source
func NewParser(name string, src []byte) *Parser {
	return &Parser{idx: newLineIndex(name, string(src))}
}

// Parse builds the node tree
func (p *Parser) Parse() ([]Node, error) {
	segments, err := scan(p.idx)
	if err != nil {
		return nil, err
	}

	var root []Node
	var stack []*blockFrame
	current := func() *[]Node {
		if len(stack) == 0 {
			return &root
		}
		return stack[len(stack)-1].body()
	}

	for _, seg := range segments {
		switch seg.kind {
		case segText:
			body := current()
			*body = append(*body, &NodeText{Content: seg.content})
		case segComment:
		case segEscaped, segRaw:
			x, err := parseExpression(p.idx, seg.content, seg.offset)
			if err != nil {
				return nil, err
			}
			body := current()
			*body = append(*body, &NodeOutput{Expr: x, Escape: seg.kind == segEscaped})
		case segStatement:
			st, err := p.parseStatement(seg)
			if err != nil {
				return nil, err
			}
			tagPos := p.idx.position(seg.tagOffset)
			var top *blockFrame
			if len(stack) > 0 {
				top = stack[len(stack)-1]
			}

			switch st.kind {
			case stmtNone:
			case stmtIf:
				n := &NodeIf{Branches: []IfBranch{{Cond: st.cond}}, Position: tagPos}
				body := current()
				*body = append(*body, n)
				stack = append(stack, &blockFrame{ifNode: n, position: tagPos})
			case stmtElseIf, stmtElse:
				if top == nil || top.ifNode == nil {
					return nil, syntaxErr(tagPos, "'else' without matching 'if'")
				}
				if top.inElse {
					return nil, syntaxErr(tagPos, "'else' after final 'else'")
				}
				if st.kind == stmtElseIf {
					top.ifNode.Branches = append(top.ifNode.Branches, IfBranch{Cond: st.cond})
				} else {
					top.inElse = true
					top.ifNode.HasElse = true
				}
			case stmtEndIf:
				if top == nil {
					return nil, syntaxErr(tagPos, "unexpected '}' with no open block")
				}
				if top.ifNode == nil {
					return nil, syntaxErr(tagPos, "forEach block opened at %s must be closed with '})'", top.position)
				}
				stack = stack[:len(stack)-1]
			case stmtEach:
				n := &NodeEach{Seq: st.seq, Var: st.loopVar, Position: tagPos}
				body := current()
				*body = append(*body, n)
				stack = append(stack, &blockFrame{each: n, position: tagPos})
			case stmtEndEach:
				if top == nil {
					return nil, syntaxErr(tagPos, "unexpected '})' with no open block")
				}
				if top.each == nil {
					return nil, syntaxErr(tagPos, "if block opened at %s must be closed with '}'", top.position)
				}
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, syntaxErr(top.position, "block is never closed")
	}
	return root, nil
}

// parseStatement recognises the control statements a <% %> tag may hold
func (p *Parser) parseStatement(seg segment) (statement, error) {
	if strings.TrimSpace(seg.content) == "" {
		return statement{kind: stmtNone}, nil
	}
	tokens, err := lex(p.idx, seg.content, seg.offset)
	if err != nil {
		return statement{}, err
	}
	ep := newExprParser(p.idx, tokens)
	first := ep.peek()

	if first.kind == tokRBrace {
		ep.next()
		next := ep.peek()
		switch {
		case next.kind == tokRParen:
			ep.next()
			return statement{kind: stmtEndEach}, ep.expectEnd()
		case next.kind == tokIdent && next.text == "else":
			ep.next()
			if t := ep.peek(); t.kind == tokIdent && t.text == "if" {
				ep.next()
				cond, err := p.parseCondition(ep)
				if err != nil {
					return statement{}, err
				}
				return statement{kind: stmtElseIf, cond: cond}, nil
			}
			if _, err := ep.expect(tokLBrace); err != nil {
				return statement{}, err
			}
			return statement{kind: stmtElse}, ep.expectEnd()
		}
		return statement{kind: stmtEndIf}, ep.expectEnd()
	}

	if first.kind == tokIdent && first.text == "if" {
		ep.next()
		cond, err := p.parseCondition(ep)
		if err != nil {
			return statement{}, err
		}
		return statement{kind: stmtIf, cond: cond}, nil
	}

	if split := findForEach(tokens); split >= 0 {
		return p.parseForEach(tokens, split)
	}

	return statement{}, syntaxErr(p.idx.position(first.offset), "unsupported statement %q", strings.TrimSpace(seg.content))
}

// parseCondition parses "(expr) {" up to the end of the tag
func (p *Parser) parseCondition(ep *exprParser) (Expr, error) {
	if _, err := ep.expect(tokLParen); err != nil {
		return nil, err
	}
	cond, err := ep.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := ep.expect(tokRParen); err != nil {
		return nil, err
	}
	if _, err := ep.expect(tokLBrace); err != nil {
		return nil, err
	}
	return cond, ep.expectEnd()
}

// findForEach returns the index of the '.' in a top level ".forEach(" or -1
func findForEach(tokens []token) int {
	depth := 0
	for i, t := range tokens {
		switch t.kind {
		case tokLParen, tokLBracket:
			depth++
		case tokRParen, tokRBracket:
			depth--
		case tokDot:
			if depth == 0 && i+2 < len(tokens) &&
				tokens[i+1].kind == tokIdent && tokens[i+1].text == "forEach" &&
				tokens[i+2].kind == tokLParen {
				return i
			}
		}
	}
	return -1
}

// parseForEach handles "seq.forEach(function(x) {", "seq.forEach((x) => {"
// and "seq.forEach(x => {"
func (p *Parser) parseForEach(tokens []token, split int) (statement, error) {
	seqTokens := make([]token, split, split+1)
	copy(seqTokens, tokens[:split])
	seqTokens = append(seqTokens, token{kind: tokEOF, offset: tokens[split].offset})

	sp := newExprParser(p.idx, seqTokens)
	if sp.peek().kind == tokEOF {
		return statement{}, syntaxErr(p.idx.position(tokens[split].offset), "forEach needs a list to iterate")
	}
	seq, err := sp.parseExpr()
	if err != nil {
		return statement{}, err
	}
	if t := sp.peek(); t.kind != tokEOF {
		return statement{}, syntaxErr(sp.position(t), "unexpected %s", t.describe())
	}

	ep := newExprParser(p.idx, tokens[split+3:])
	var name token
	switch t := ep.peek(); {
	case t.kind == tokIdent && t.text == "function":
		ep.next()
		if _, err := ep.expect(tokLParen); err != nil {
			return statement{}, err
		}
		if name, err = ep.expect(tokIdent); err != nil {
			return statement{}, err
		}
		if _, err := ep.expect(tokRParen); err != nil {
			return statement{}, err
		}
	case t.kind == tokLParen:
		ep.next()
		if name, err = ep.expect(tokIdent); err != nil {
			return statement{}, err
		}
		if _, err := ep.expect(tokRParen); err != nil {
			return statement{}, err
		}
		if _, err := ep.expect(tokArrow); err != nil {
			return statement{}, err
		}
	case t.kind == tokIdent:
		name = ep.next()
		if _, err := ep.expect(tokArrow); err != nil {
			return statement{}, err
		}
	default:
		return statement{}, syntaxErr(ep.position(t), "expected a callback, found %s", t.describe())
	}
	if reserved[name.text] {
		return statement{}, syntaxErr(ep.position(name), "'%s' cannot name a loop variable", name.text)
	}
	if _, err := ep.expect(tokLBrace); err != nil {
		return statement{}, err
	}
	if err := ep.expectEnd(); err != nil {
		return statement{}, err
	}
	return statement{kind: stmtEach, seq: seq, loopVar: name.text}, nil
}
