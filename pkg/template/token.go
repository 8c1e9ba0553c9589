package template

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokDot
	tokComma
	tokSemicolon
	tokNot
	tokPlus
	tokMinus
	tokStrictEq
	tokStrictNe
	tokEq
	tokNe
	tokAnd
	tokOr
	tokArrow
)

var tokenNames = map[tokenKind]string{
	tokEOF:       "end of tag",
	tokIdent:     "identifier",
	tokString:    "string",
	tokNumber:    "number",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokLBracket:  "'['",
	tokRBracket:  "']'",
	tokLBrace:    "'{'",
	tokRBrace:    "'}'",
	tokDot:       "'.'",
	tokComma:     "','",
	tokSemicolon: "';'",
	tokNot:       "'!'",
	tokPlus:      "'+'",
	tokMinus:     "'-'",
	tokStrictEq:  "'==='",
	tokStrictNe:  "'!=='",
	tokEq:        "'=='",
	tokNe:        "'!='",
	tokAnd:       "'&&'",
	tokOr:        "'||'",
	tokArrow:     "'=>'",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	// text is the identifier name, the decoded string or the number literal
	text   string
	offset int
}

func (t token) describe() string {
	switch t.kind {
	case tokIdent:
		return "'" + t.text + "'"
	case tokString:
		return strconv.Quote(t.text)
	case tokNumber:
		return t.text
	}
	return t.kind.String()
}

// operators ordered longest first so "===" wins over "=="
var operators = []struct {
	text string
	kind tokenKind
}{
	{"===", tokStrictEq},
	{"!==", tokStrictNe},
	{"==", tokEq},
	{"!=", tokNe},
	{"&&", tokAnd},
	{"||", tokOr},
	{"=>", tokArrow},
	{"(", tokLParen},
	{")", tokRParen},
	{"[", tokLBracket},
	{"]", tokRBracket},
	{"{", tokLBrace},
	{"}", tokRBrace},
	{".", tokDot},
	{",", tokComma},
	{";", tokSemicolon},
	{"!", tokNot},
	{"+", tokPlus},
	{"-", tokMinus},
}

// lex tokenizes the content of a tag. base is the offset of content in the
// template source.
func lex(idx *lineIndex, content string, base int) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(content) {
		r, size := utf8.DecodeRuneInString(content[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '_' || r == '$' || unicode.IsLetter(r):
			start := i
			for i < len(content) {
				r, size = utf8.DecodeRuneInString(content[i:])
				if r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				i += size
			}
			tokens = append(tokens, token{kind: tokIdent, text: content[start:i], offset: base + start})
		case r >= '0' && r <= '9':
			start := i
			for i < len(content) && (content[i] >= '0' && content[i] <= '9' || content[i] == '.') {
				i++
			}
			text := content[start:i]
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, syntaxErr(idx.position(base+start), "invalid number %q", text)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, offset: base + start})
		case r == '\'' || r == '"':
			str, n, err := lexString(content[i:])
			if err != nil {
				return nil, syntaxErr(idx.position(base+i), "%s", err.Error())
			}
			tokens = append(tokens, token{kind: tokString, text: str, offset: base + i})
			i += n
		case r == '`':
			return nil, syntaxErr(idx.position(base+i), "template literals are not supported")
		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(content[i:], op.text) {
					tokens = append(tokens, token{kind: op.kind, text: op.text, offset: base + i})
					i += len(op.text)
					matched = true
					break
				}
			}
			if !matched {
				return nil, syntaxErr(idx.position(base+i), "unexpected character %q", r)
			}
		}
	}
	tokens = append(tokens, token{kind: tokEOF, offset: base + len(content)})
	return tokens, nil
}

type lexError string

func (e lexError) Error() string { return string(e) }

// lexString decodes a quoted string at the start of s and returns its value
// and the number of bytes consumed
func lexString(s string) (string, int, error) {
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case quote:
			return b.String(), i + 1, nil
		case '\n':
			return "", 0, lexError("unterminated string")
		case '\\':
			i++
			if i >= len(s) {
				return "", 0, lexError("unterminated string")
			}
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			default:
				return "", 0, lexError("unknown escape \\" + string(s[i]))
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, lexError("unterminated string")
}
