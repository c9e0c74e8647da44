package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wesber"
)

// resourceAttrs maps each resource-bearing tag to the attribute holding
// its reference.
var resourceAttrs = map[string]string{
	"script": "src",
	"link":   "href",
	"img":    "src",
	"audio":  "src",
	"video":  "src",
	"iframe": "src",
	"embed":  "src",
	"object": "data",
}

// ResourceSelector matches every resource-bearing element.
const ResourceSelector = "script, link, img, audio, video, iframe, embed, object"

// ResourceAttr returns the attribute holding the reference of tag.
func ResourceAttr(tag string) (string, bool) {
	attr, ok := resourceAttrs[tag]
	return attr, ok
}

// Walker rewrites the references of an HTML document.
type Walker struct {
	Resolver *wesber.Resolver
	Filter   wesber.Filter

	// Base is the path of the document; local references resolve against
	// its directory.
	Base string
}

// Walk visits resource-bearing elements in document order and replaces
// each non-blank reference by its marker. The returned dependencies are
// never nil.
func (w *Walker) Walk(doc *Document) []*wesber.Dependency {
	deps := []*wesber.Dependency{}
	doc.Find(ResourceSelector).Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		attr, ok := ResourceAttr(tag)
		if !ok || !w.Filter.Match(tag) {
			return
		}
		val, exists := sel.Attr(attr)
		if !exists || strings.TrimSpace(val) == "" {
			return
		}
		dep := w.Resolver.Resolve(val, w.Base)
		sel.SetAttr(attr, dep.Marker)
		deps = append(deps, dep)
	})
	return deps
}
