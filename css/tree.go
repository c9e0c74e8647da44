// Package css parses stylesheets into a lossless rule tree and rewrites the
// resource references found in it.
//
// The tree keeps every byte of the source: printing an unmodified
// Stylesheet reproduces the input exactly. Only Declaration.Value is meant
// to be mutated.
package css

import "strings"

// Node is an element of the rule tree.
type Node interface {
	writeTo(b *strings.Builder)
}

var (
	_ Node = (*Stylesheet)(nil)
	_ Node = (*Raw)(nil)
	_ Node = (*Rule)(nil)
	_ Node = (*Media)(nil)
	_ Node = (*Host)(nil)
	_ Node = (*FontFace)(nil)
	_ Node = (*Keyframes)(nil)
	_ Node = (*Keyframe)(nil)
	_ Node = (*Declaration)(nil)
	_ Node = (*AtRule)(nil)
)

// Stylesheet is the root of the tree.
type Stylesheet struct {
	Rules []Node
}

// String prints the stylesheet.
func (s *Stylesheet) String() string {
	var b strings.Builder
	s.writeTo(&b)
	return b.String()
}

func (s *Stylesheet) writeTo(b *strings.Builder) {
	writeAll(b, s.Rules)
}

// Raw is source text with no structure of its own: whitespace, comments,
// stray semicolons.
type Raw struct {
	Text string
}

func (r *Raw) writeTo(b *strings.Builder) {
	b.WriteString(r.Text)
}

// Rule is a style rule. Nested rules appear among its declarations.
type Rule struct {
	Declarations []Node
	prelude      string
}

// Selector returns the trimmed selector text.
func (r *Rule) Selector() string {
	return strings.TrimSpace(r.prelude)
}

func (r *Rule) writeTo(b *strings.Builder) {
	writeBlock(b, r.prelude, r.Declarations)
}

// Media is an @media block.
type Media struct {
	Rules   []Node
	prelude string
}

// Query returns the trimmed media query.
func (m *Media) Query() string {
	return strings.TrimSpace(m.prelude[len(atKeyword(m.prelude)):])
}

func (m *Media) writeTo(b *strings.Builder) {
	writeBlock(b, m.prelude, m.Rules)
}

// Host is an @host block.
type Host struct {
	Rules   []Node
	prelude string
}

func (h *Host) writeTo(b *strings.Builder) {
	writeBlock(b, h.prelude, h.Rules)
}

// FontFace is an @font-face block.
type FontFace struct {
	Declarations []Node
	prelude      string
}

func (f *FontFace) writeTo(b *strings.Builder) {
	writeBlock(b, f.prelude, f.Declarations)
}

// Keyframes is an @keyframes block, possibly vendor prefixed.
type Keyframes struct {
	// Vendor is the vendor prefix such as "-webkit-", or empty.
	Vendor    string
	Keyframes []Node
	prelude   string
}

// Name returns the animation name.
func (k *Keyframes) Name() string {
	return strings.TrimSpace(k.prelude[len(atKeyword(k.prelude)):])
}

func (k *Keyframes) writeTo(b *strings.Builder) {
	writeBlock(b, k.prelude, k.Keyframes)
}

// Keyframe is a single step of a Keyframes block.
type Keyframe struct {
	Declarations []Node
	prelude      string
}

// Selector returns the trimmed keyframe selector, e.g. "from" or "50%".
func (k *Keyframe) Selector() string {
	return strings.TrimSpace(k.prelude)
}

func (k *Keyframe) writeTo(b *strings.Builder) {
	writeBlock(b, k.prelude, k.Declarations)
}

// Declaration is a property and its value.
type Declaration struct {
	// Property is the lowercased property name.
	Property string

	// Value is the trimmed value text, without the terminating semicolon.
	Value string

	head string
	tail string
}

func (d *Declaration) writeTo(b *strings.Builder) {
	b.WriteString(d.head)
	b.WriteString(d.Value)
	b.WriteString(d.tail)
}

// AtRule is an at-rule the tree does not look into, such as @import,
// @charset, @supports or @page. Its text is kept verbatim.
type AtRule struct {
	// Name is the lowercased at-keyword without the leading "@".
	Name string
	text string
}

func (a *AtRule) writeTo(b *strings.Builder) {
	b.WriteString(a.text)
}

func writeAll(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		n.writeTo(b)
	}
}

func writeBlock(b *strings.Builder, prelude string, children []Node) {
	b.WriteString(prelude)
	b.WriteByte('{')
	writeAll(b, children)
	b.WriteByte('}')
}

// atKeyword returns the leading at-keyword of s, including the "@".
func atKeyword(s string) string {
	if !strings.HasPrefix(s, "@") {
		return ""
	}
	end := strings.IndexFunc(s[1:], func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '{' || r == '(' || r == '/'
	})
	if end < 0 {
		return s
	}
	return s[:end+1]
}
