package css

import (
	"regexp"

	"github.com/fwojciec/wesber"
)

// resourceProperties are the properties whose values may reference a file.
var resourceProperties = map[string]struct{}{
	"background":           {},
	"src":                  {},
	"cursor":               {},
	"content":              {},
	"border-image":         {},
	"-moz-border-image":    {},
	"-webkit-border-image": {},
	"-o-border-image":      {},
	"list-style":           {},
	"list-style-image":     {},
}

// urlRe matches url(...) with double, single or no quotes. Exactly one of
// the three groups captures the reference, without surrounding whitespace.
var urlRe = regexp.MustCompile(`(?i)url\(\s*(?:"\s*([^"]+?)\s*"|'\s*([^']+?)\s*'|([^\s'")][^)]*?))\s*\)`)

// IsResourceProperty returns true if values of property may reference a file.
func IsResourceProperty(property string) bool {
	_, ok := resourceProperties[property]
	return ok
}

// Walker rewrites the references of a rule tree.
type Walker struct {
	Resolver *wesber.Resolver
	Filter   wesber.Filter

	// Base is the path of the stylesheet; local references resolve
	// against its directory.
	Base string
}

// Walk visits node and its descendants in source order. The first url(...)
// of every matching declaration is replaced by its marker. The returned
// dependencies follow traversal order and are never nil.
func (w *Walker) Walk(node Node) []*wesber.Dependency {
	deps := []*wesber.Dependency{}
	w.walk(node, &deps)
	return deps
}

func (w *Walker) walk(node Node, deps *[]*wesber.Dependency) {
	switch n := node.(type) {
	case *Stylesheet:
		w.walkAll(n.Rules, deps)
	case *Media:
		w.walkAll(n.Rules, deps)
	case *Host:
		w.walkAll(n.Rules, deps)
	case *Rule:
		w.walkAll(n.Declarations, deps)
	case *FontFace:
		w.walkAll(n.Declarations, deps)
	case *Keyframes:
		w.walkAll(n.Keyframes, deps)
	case *Keyframe:
		w.walkAll(n.Declarations, deps)
	case *Declaration:
		if dep := w.declaration(n); dep != nil {
			*deps = append(*deps, dep)
		}
	}
}

func (w *Walker) walkAll(nodes []Node, deps *[]*wesber.Dependency) {
	for _, n := range nodes {
		w.walk(n, deps)
	}
}

func (w *Walker) declaration(d *Declaration) *wesber.Dependency {
	if !IsResourceProperty(d.Property) || !w.Filter.Match(d.Property) {
		return nil
	}
	m := urlRe.FindStringSubmatchIndex(d.Value)
	if m == nil {
		return nil
	}
	for g := 1; g <= 3; g++ {
		start, end := m[2*g], m[2*g+1]
		if start < 0 {
			continue
		}
		dep := w.Resolver.Resolve(d.Value[start:end], w.Base)
		d.Value = d.Value[:start] + dep.Marker + d.Value[end:]
		return dep
	}
	return nil
}
