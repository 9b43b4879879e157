package sexpr

import (
	"fmt"
	"io"
	"strconv"
)

// Node is either an atom (List == nil) or a list of child nodes.
// Quoted is set for atoms that were written as "strings".
type Node struct {
	Atom   string
	Quoted bool
	List   []*Node
	Line   int

	isList bool
}

// IsList reports whether the node is a list, possibly empty
func (n *Node) IsList() bool {
	return n.isList
}

// Name returns the head atom of a list, e.g. "wire" for (wire ...)
func (n *Node) Name() string {
	if !n.isList || len(n.List) == 0 || n.List[0].isList {
		return ""
	}
	return n.List[0].Atom
}

// Find returns the first child list named key
func (n *Node) Find(key string) (*Node, bool) {
	for _, child := range n.List {
		if child.isList && child.Name() == key {
			return child, true
		}
	}
	return nil, false
}

// FindAll returns every child list named key
func (n *Node) FindAll(key string) []*Node {
	var out []*Node
	for _, child := range n.List {
		if child.isList && child.Name() == key {
			out = append(out, child)
		}
	}
	return out
}

// Str returns the atom at index i of a list
func (n *Node) Str(i int) (string, error) {
	if i < 0 || i >= len(n.List) {
		return "", fmt.Errorf("sexpr: line %d: (%s) has no item %d", n.Line, n.Name(), i)
	}
	item := n.List[i]
	if item.isList {
		return "", fmt.Errorf("sexpr: line %d: (%s) item %d is a list", n.Line, n.Name(), i)
	}
	return item.Atom, nil
}

// Float returns the atom at index i parsed as a number
func (n *Node) Float(i int) (float64, error) {
	s, err := n.Str(i)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("sexpr: line %d: (%s) item %d: %w", n.Line, n.Name(), i, err)
	}
	return f, nil
}

// HasAtom reports whether the list directly contains the bare atom s
func (n *Node) HasAtom(s string) bool {
	for _, child := range n.List {
		if !child.isList && !child.Quoted && child.Atom == s {
			return true
		}
	}
	return false
}

// Parser builds Nodes from a Lexer
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new parser from an io.Reader
func NewParser(r io.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// Parse reads every top-level expression from r
func Parse(r io.Reader) ([]*Node, error) {
	return NewParser(r).ParseAll()
}

// ParseAll parses all top-level S-expressions from the input
func (p *Parser) ParseAll() ([]*Node, error) {
	var result []*Node
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return result, nil
		}
		node, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		result = append(result, node)
	}
}

func (p *Parser) parseExpr(tok Token) (*Node, error) {
	switch tok.Type {
	case TokenLeftParen:
		return p.parseList(tok.Line)
	case TokenSymbol:
		return &Node{Atom: tok.Value, Line: tok.Line}, nil
	case TokenString:
		return &Node{Atom: tok.Value, Quoted: true, Line: tok.Line}, nil
	case TokenRightParen:
		return nil, fmt.Errorf("sexpr: line %d: unexpected ')'", tok.Line)
	default:
		return nil, fmt.Errorf("sexpr: line %d: unexpected EOF", tok.Line)
	}
}

func (p *Parser) parseList(line int) (*Node, error) {
	list := &Node{Line: line, isList: true}
	for {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Type {
		case TokenRightParen:
			return list, nil
		case TokenEOF:
			return nil, fmt.Errorf("sexpr: line %d: unexpected EOF in list opened here", line)
		}
		child, err := p.parseExpr(tok)
		if err != nil {
			return nil, err
		}
		list.List = append(list.List, child)
	}
}
