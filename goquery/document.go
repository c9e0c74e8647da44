// Package goquery queries and rewrites HTML documents using goquery.
//
// Documents are tokenized rather than parsed, so rendering reproduces the
// source byte for byte except for attribute values changed through the
// goquery selection API.
package goquery

import (
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a goquery document that remembers the source text of every
// tag.
type Document struct {
	*goquery.Document
	segments []segment
}

// segment is the source text of one token. Tags keep their element and a
// snapshot of its attributes to detect mutations.
type segment struct {
	raw         string
	node        *html.Node
	attrs       []html.Attribute
	selfClosing bool
}

var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// Parse tokenizes src into a Document. Elements are nested as written;
// no implied elements are inserted. The content of noscript elements is
// treated as markup.
func Parse(src string) (*Document, error) {
	root := &html.Node{Type: html.DocumentNode}
	b := &builder{stack: []*html.Node{root}}
	if err := b.feed(src); err != nil {
		return nil, err
	}
	return &Document{
		Document: goquery.NewDocumentFromNode(root),
		segments: b.segments,
	}, nil
}

// builder assembles the element tree and segments of a document.
type builder struct {
	stack    []*html.Node
	segments []segment

	// floor is the stack index end tags may not close, the innermost
	// noscript element being fed.
	floor int
}

func (b *builder) feed(src string) error {
	z := html.NewTokenizer(strings.NewReader(src))
	consumed := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return err
			}
			break
		}
		// Raw must be copied before Token, which lowercases names in place.
		seg := segment{raw: string(z.Raw())}
		consumed += len(seg.raw)
		tok := z.Token()
		parent := b.stack[len(b.stack)-1]

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			n := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     cloneAttrs(tok.Attr),
			}
			parent.AppendChild(n)
			seg.node = n
			seg.attrs = cloneAttrs(tok.Attr)
			seg.selfClosing = tt == html.SelfClosingTagToken
			if tt == html.StartTagToken && !voidElements[tok.DataAtom] {
				b.stack = append(b.stack, n)
			}
		case html.EndTagToken:
			for i := len(b.stack) - 1; i > b.floor; i-- {
				if b.stack[i].Data == tok.Data {
					b.stack = b.stack[:i]
					break
				}
			}
		case html.TextToken:
			if parent.DataAtom == atom.Noscript {
				// The tokenizer reads noscript content as raw text.
				if err := b.feedNoscript(seg.raw); err != nil {
					return err
				}
				continue
			}
			parent.AppendChild(&html.Node{Type: html.TextNode, Data: tok.Data})
		}
		b.segments = append(b.segments, seg)
	}
	if consumed < len(src) {
		b.segments = append(b.segments, segment{raw: src[consumed:]})
	}
	return nil
}

// feedNoscript parses the content of the noscript element on top of the
// stack. Elements left open inside it are closed with it.
func (b *builder) feedNoscript(src string) error {
	floor := b.floor
	b.floor = len(b.stack) - 1
	err := b.feed(src)
	b.stack = b.stack[:b.floor+1]
	b.floor = floor
	return err
}

// Render returns the document source with mutated attribute values
// written back into their tags.
func (d *Document) Render() string {
	var b strings.Builder
	for _, s := range d.segments {
		if s.node == nil {
			b.WriteString(s.raw)
			continue
		}
		b.WriteString(s.render())
	}
	return b.String()
}

func (s segment) render() string {
	current := s.node.Attr
	if len(current) != len(s.attrs) {
		return s.rebuild()
	}
	out := s.raw
	for i, a := range current {
		orig := s.attrs[i]
		if a.Namespace != orig.Namespace || a.Key != orig.Key {
			return s.rebuild()
		}
		if a.Val == orig.Val {
			continue
		}
		if firstAttr(current, a.Key) != i {
			return s.rebuild()
		}
		start, end, quote, ok := attrValueSpan(out, a.Key)
		if !ok {
			return s.rebuild()
		}
		out = out[:start] + quoteValue(a.Val, quote) + out[end:]
	}
	return out
}

// rebuild renders the tag from its element when the source text cannot
// be patched.
func (s segment) rebuild() string {
	tt := html.StartTagToken
	if s.selfClosing {
		tt = html.SelfClosingTagToken
	}
	tok := html.Token{
		Type:     tt,
		DataAtom: s.node.DataAtom,
		Data:     s.node.Data,
		Attr:     s.node.Attr,
	}
	return tok.String()
}

func firstAttr(attrs []html.Attribute, key string) int {
	for i, a := range attrs {
		if a.Key == key {
			return i
		}
	}
	return -1
}

// quoteValue escapes v for the quoting style of the value it replaces.
func quoteValue(v string, quote byte) string {
	if quote != 0 {
		return string(quote) + html.EscapeString(v) + string(quote)
	}
	if v != "" && !strings.ContainsAny(v, " \t\n\r\f\"'=<>`") && !strings.Contains(v, "&") {
		return v
	}
	return `"` + html.EscapeString(v) + `"`
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// attrValueSpan locates the value of the first attribute named key in the
// raw text of a start tag. For quoted values the span includes the quotes
// and quote is the quote character; for unquoted values quote is 0.
// ok is false when the attribute is absent or has no value.
func attrValueSpan(raw, key string) (start, end int, quote byte, ok bool) {
	n := len(raw)
	i := 1
	for i < n && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' {
		i++
	}
	for {
		for i < n && (isSpace(raw[i]) || raw[i] == '/') {
			i++
		}
		if i >= n || raw[i] == '>' {
			return 0, 0, 0, false
		}

		nameStart := i
		i++
		for i < n && !isSpace(raw[i]) && raw[i] != '/' && raw[i] != '>' && raw[i] != '=' {
			i++
		}
		name := strings.ToLower(raw[nameStart:i])

		for i < n && isSpace(raw[i]) {
			i++
		}
		if i >= n || raw[i] != '=' {
			if name == key {
				return 0, 0, 0, false
			}
			continue
		}
		i++
		for i < n && isSpace(raw[i]) {
			i++
		}

		vs, q := i, byte(0)
		if i < n && (raw[i] == '"' || raw[i] == '\'') {
			q = raw[i]
			i++
			for i < n && raw[i] != q {
				i++
			}
			if i < n {
				i++
			}
		} else {
			for i < n && !isSpace(raw[i]) && raw[i] != '>' {
				i++
			}
		}
		if name == key {
			return vs, i, q, true
		}
	}
}

func cloneAttrs(attrs []html.Attribute) []html.Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]html.Attribute, len(attrs))
	copy(out, attrs)
	return out
}
