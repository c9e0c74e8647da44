package css

import (
	"fmt"
	"strings"

	"github.com/fwojciec/wesber"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const whitespace = " \t\n\r\f"

type token struct {
	tt   css.TokenType
	data string
	pos  int
}

// Parse parses src into a rule tree. filename is only used in error
// messages. Syntax errors are returned as EINVALID errors carrying the
// line and column of the offending construct.
func Parse(filename, src string) (*Stylesheet, error) {
	p := &parser{filename: filename, src: src, toks: lex(src)}
	rules, err := p.parseRules(false)
	if err != nil {
		return nil, err
	}
	return &Stylesheet{Rules: rules}, nil
}

// lex splits src into tokens whose data, concatenated, is src.
func lex(src string) []token {
	l := css.NewLexer(parse.NewInputString(src))
	var toks []token
	pos := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		toks = append(toks, token{tt: tt, data: string(data), pos: pos})
		pos += len(data)
	}
	if pos < len(src) {
		toks = append(toks, token{tt: css.DelimToken, data: src[pos:], pos: pos})
	}
	return toks
}

type parser struct {
	filename string
	src      string
	toks     []token
	i        int
}

func (p *parser) peek() token {
	if p.i >= len(p.toks) {
		return token{tt: css.ErrorToken, pos: len(p.src)}
	}
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	line, col := position(p.src, pos)
	return wesber.Errorf(wesber.EINVALID, "%s:%d:%d: %s", p.filename, line, col, fmt.Sprintf(format, args...))
}

// position returns the 1-based line and column of the byte offset pos.
func position(src string, pos int) (line, col int) {
	before := src[:pos]
	line = strings.Count(before, "\n") + 1
	col = pos - strings.LastIndexByte(before, '\n')
	return line, col
}

func isTrivia(tt css.TokenType) bool {
	switch tt {
	case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
		return true
	}
	return false
}

func appendRaw(nodes []Node, text string) []Node {
	if n := len(nodes); n > 0 {
		if r, ok := nodes[n-1].(*Raw); ok {
			r.Text += text
			return nodes
		}
	}
	return append(nodes, &Raw{Text: text})
}

// parseRules parses a list of rules up to the closing brace of the
// enclosing block, or to the end of input at the top level.
func (p *parser) parseRules(nested bool) ([]Node, error) {
	var nodes []Node
	for {
		t := p.peek()
		switch {
		case t.tt == css.ErrorToken:
			return nodes, nil
		case t.tt == css.RightBraceToken:
			if !nested {
				return nil, p.errorf(t.pos, "unexpected '}'")
			}
			return nodes, nil
		case isTrivia(t.tt):
			p.next()
			nodes = appendRaw(nodes, t.data)
		case t.tt == css.AtKeywordToken:
			n, err := p.parseAtRule()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			n, err := p.parseRule()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
	}
}

// prelude consumes the text before a block or the end of a statement.
// Braces always stop it; semicolons only outside parentheses and brackets.
func (p *parser) prelude() string {
	var b strings.Builder
	depth := 0
	for {
		t := p.peek()
		switch t.tt {
		case css.ErrorToken, css.LeftBraceToken, css.RightBraceToken:
			return b.String()
		case css.SemicolonToken:
			if depth == 0 {
				return b.String()
			}
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		b.WriteString(t.data)
		p.next()
	}
}

// block consumes a brace-delimited block whose content is parsed by body.
// start is the offset reported when the block is not closed.
func (p *parser) block(start int, body func() ([]Node, error)) ([]Node, error) {
	if t := p.peek(); t.tt != css.LeftBraceToken {
		return nil, p.errorf(start, "missing '{'")
	}
	p.next()
	children, err := body()
	if err != nil {
		return nil, err
	}
	if t := p.next(); t.tt != css.RightBraceToken {
		return nil, p.errorf(start, "missing '}'")
	}
	return children, nil
}

func (p *parser) parseRule() (Node, error) {
	start := p.peek().pos
	prelude := p.prelude()
	decls, err := p.block(start, p.parseDeclarations)
	if err != nil {
		return nil, err
	}
	return &Rule{Declarations: decls, prelude: prelude}, nil
}

// splitVendor splits a vendor prefix such as "-webkit-" off name.
func splitVendor(name string) (vendor, base string) {
	if !strings.HasPrefix(name, "-") {
		return "", name
	}
	i := strings.IndexByte(name[1:], '-')
	if i < 0 {
		return "", name
	}
	return name[:i+2], name[i+2:]
}

func (p *parser) parseAtRule() (Node, error) {
	at := p.peek()
	name := strings.ToLower(at.data[1:])
	vendor, base := splitVendor(name)

	switch {
	case name == "media":
		p.next()
		prelude := at.data + p.prelude()
		rules, err := p.block(at.pos, p.parseNestedRules)
		if err != nil {
			return nil, err
		}
		return &Media{Rules: rules, prelude: prelude}, nil
	case name == "host":
		p.next()
		prelude := at.data + p.prelude()
		rules, err := p.block(at.pos, p.parseNestedRules)
		if err != nil {
			return nil, err
		}
		return &Host{Rules: rules, prelude: prelude}, nil
	case name == "font-face":
		p.next()
		prelude := at.data + p.prelude()
		decls, err := p.block(at.pos, p.parseDeclarations)
		if err != nil {
			return nil, err
		}
		return &FontFace{Declarations: decls, prelude: prelude}, nil
	case base == "keyframes":
		p.next()
		prelude := at.data + p.prelude()
		frames, err := p.block(at.pos, p.parseKeyframes)
		if err != nil {
			return nil, err
		}
		return &Keyframes{Vendor: vendor, Keyframes: frames, prelude: prelude}, nil
	}
	return p.parseOpaqueAtRule()
}

func (p *parser) parseNestedRules() ([]Node, error) {
	return p.parseRules(true)
}

// parseOpaqueAtRule keeps an at-rule verbatim: a statement up to its
// semicolon, or a prelude followed by a balanced block.
func (p *parser) parseOpaqueAtRule() (Node, error) {
	at := p.next()
	var b strings.Builder
	b.WriteString(at.data)
	b.WriteString(p.prelude())

	switch p.peek().tt {
	case css.SemicolonToken:
		b.WriteString(p.next().data)
	case css.LeftBraceToken:
		depth := 0
		for {
			t := p.next()
			if t.tt == css.ErrorToken {
				return nil, p.errorf(at.pos, "missing '}'")
			}
			b.WriteString(t.data)
			if t.tt == css.LeftBraceToken {
				depth++
			} else if t.tt == css.RightBraceToken {
				depth--
			}
			if depth == 0 {
				break
			}
		}
	}
	return &AtRule{Name: strings.ToLower(at.data[1:]), text: b.String()}, nil
}

func (p *parser) parseKeyframes() ([]Node, error) {
	var nodes []Node
	for {
		t := p.peek()
		switch {
		case t.tt == css.ErrorToken, t.tt == css.RightBraceToken:
			return nodes, nil
		case isTrivia(t.tt):
			p.next()
			nodes = appendRaw(nodes, t.data)
		default:
			prelude := p.prelude()
			decls, err := p.block(t.pos, p.parseDeclarations)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &Keyframe{Declarations: decls, prelude: prelude})
		}
	}
}

// parseDeclarations parses the content of a style block: declarations,
// nested rules and at-rules, which are kept verbatim.
func (p *parser) parseDeclarations() ([]Node, error) {
	var nodes []Node
	for {
		t := p.peek()
		switch {
		case t.tt == css.ErrorToken, t.tt == css.RightBraceToken:
			return nodes, nil
		case isTrivia(t.tt):
			p.next()
			nodes = appendRaw(nodes, t.data)
		case t.tt == css.AtKeywordToken:
			n, err := p.parseOpaqueAtRule()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			n, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
	}
}

func (p *parser) parseDeclaration() (Node, error) {
	start := p.peek().pos

	var name strings.Builder
	for {
		t := p.peek()
		if t.tt == css.ColonToken {
			break
		}
		switch t.tt {
		case css.LeftBraceToken:
			return p.nestedRule(start, name.String())
		case css.SemicolonToken, css.RightBraceToken, css.ErrorToken:
			return nil, p.errorf(start, "property missing ':'")
		}
		name.WriteString(t.data)
		p.next()
	}
	property := strings.ToLower(strings.TrimSpace(name.String()))
	if property == "" {
		return nil, p.errorf(start, "missing property name")
	}
	colon := p.next()

	var value strings.Builder
	depth := 0
loop:
	for {
		t := p.peek()
		switch t.tt {
		case css.ErrorToken, css.RightBraceToken:
			break loop
		case css.LeftBraceToken:
			return p.nestedRule(start, name.String()+colon.data+value.String())
		case css.SemicolonToken:
			if depth == 0 {
				break loop
			}
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		value.WriteString(t.data)
		p.next()
	}

	raw := value.String()
	trimmed := strings.Trim(raw, whitespace)
	lead := len(raw) - len(strings.TrimLeft(raw, whitespace))
	return &Declaration{
		Property: property,
		Value:    trimmed,
		head:     name.String() + colon.data + raw[:lead],
		tail:     raw[lead+len(trimmed):],
	}, nil
}

// nestedRule parses a rule nested in a style block whose selector text has
// already been consumed.
func (p *parser) nestedRule(start int, prelude string) (Node, error) {
	decls, err := p.block(start, p.parseDeclarations)
	if err != nil {
		return nil, err
	}
	return &Rule{Declarations: decls, prelude: prelude}, nil
}
