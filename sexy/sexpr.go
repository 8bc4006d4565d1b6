// Package sexy reads and writes the small S-expression dialect used by the
// markdown test corpus, and matches trees against patterns.
//
//	(program (declare (entry "int" "x" "5")) ...)
//
// Atoms are symbols, double-quoted strings and integers. "..." in a pattern
// list matches any number of remaining items. ';' starts a comment.
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeEllipsis
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeEllipsis:
		return "ellipsis"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

type Node struct {
	Type  NodeType
	Text  string  // atoms
	Items []*Node // NodeList
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Type {
	case NodeString:
		sb.WriteByte('"')
		for i := 0; i < len(n.Text); i++ {
			if c := n.Text[i]; c == '"' || c == '\\' {
				sb.WriteByte('\\')
			}
			sb.WriteByte(n.Text[i])
		}
		sb.WriteByte('"')
	case NodeEllipsis:
		sb.WriteString("...")
	case NodeList:
		sb.WriteByte('(')
		for i, item := range n.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			item.write(sb)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(n.Text)
	}
}

func NewSymbol(name string) *Node  { return &Node{Type: NodeSymbol, Text: name} }
func NewString(value string) *Node { return &Node{Type: NodeString, Text: value} }
func NewInteger(text string) *Node { return &Node{Type: NodeInteger, Text: text} }
func NewEllipsis() *Node           { return &Node{Type: NodeEllipsis} }
func NewList(items []*Node) *Node  { return &Node{Type: NodeList, Items: items} }

func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// IsSymbol reports whether n is the symbol s.
func (n *Node) IsSymbol(s string) bool {
	return n.Type == NodeSymbol && n.Text == s
}

// Parse reads exactly one datum from input.
func Parse(input string) (*Node, error) {
	p := &parser{lex: lexer{input: input}}
	p.advance()
	if p.err != nil {
		return nil, p.err
	}
	if p.tok.kind == tokEOF {
		return nil, fmt.Errorf("empty input")
	}
	node, err := p.datum()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, fmt.Errorf("offset %d: expected end of input but got %s", p.tok.pos, p.tok.kind)
	}
	return node, nil
}

type parser struct {
	lex lexer
	tok token
	err error
}

func (p *parser) advance() {
	if p.err != nil {
		return
	}
	p.tok, p.err = p.lex.next()
}

func (p *parser) datum() (*Node, error) {
	if p.err != nil {
		return nil, p.err
	}
	tok := p.tok
	switch tok.kind {
	case tokSymbol:
		p.advance()
		return NewSymbol(tok.text), p.err
	case tokString:
		p.advance()
		return NewString(tok.text), p.err
	case tokInteger:
		p.advance()
		return NewInteger(tok.text), p.err
	case tokEllipsis:
		p.advance()
		return NewEllipsis(), p.err
	case tokLParen:
		p.advance()
		items := []*Node{}
		for p.err == nil && p.tok.kind != tokRParen {
			if p.tok.kind == tokEOF {
				return nil, fmt.Errorf("offset %d: unterminated list", tok.pos)
			}
			item, err := p.datum()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		p.advance()
		return NewList(items), p.err
	default:
		return nil, fmt.Errorf("offset %d: unexpected %s", tok.pos, tok.kind)
	}
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokSymbol
	tokString
	tokInteger
	tokEllipsis
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	return [...]string{"EOF", "symbol", "string", "integer", "ellipsis", "'('", "')'"}[k]
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) peek(off int) byte {
	if l.pos+off >= len(l.input) {
		return 0
	}
	return l.input[l.pos+off]
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == ';' {
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
			continue
		}
		if !unicode.IsSpace(rune(c)) {
			break
		}
		l.pos++
	}

	start := l.pos
	c := l.peek(0)
	switch {
	case l.pos >= len(l.input):
		return token{kind: tokEOF, pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, pos: start}, nil
	case c == '"':
		return l.readString()
	case c == '.':
		if l.peek(1) == '.' && l.peek(2) == '.' {
			l.pos += 3
			return token{kind: tokEllipsis, text: "...", pos: start}, nil
		}
	case isDigit(c) || ((c == '-' || c == '+') && isDigit(l.peek(1))):
		l.pos++
		for isDigit(l.peek(0)) {
			l.pos++
		}
		return token{kind: tokInteger, text: l.input[start:l.pos], pos: start}, nil
	case isSymbolChar(c):
		for isSymbolChar(l.peek(0)) {
			l.pos++
		}
		return token{kind: tokSymbol, text: l.input[start:l.pos], pos: start}, nil
	}
	return token{}, fmt.Errorf("offset %d: unexpected character %q", start, c)
}

func (l *lexer) readString() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return token{}, fmt.Errorf("offset %d: unterminated string", start)
		}
		c := l.input[l.pos]
		l.pos++
		switch c {
		case '"':
			return token{kind: tokString, text: sb.String(), pos: start}, nil
		case '\\':
			esc := l.peek(0)
			if esc != '"' && esc != '\\' {
				return token{}, fmt.Errorf("offset %d: invalid escape sequence \\%c", l.pos-1, esc)
			}
			sb.WriteByte(esc)
			l.pos++
		default:
			sb.WriteByte(c)
		}
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSymbolChar(c byte) bool {
	return c == '-' || c == '_' || c == '!' || c == '?' || unicode.IsLetter(rune(c)) || isDigit(c)
}
