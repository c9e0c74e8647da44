package goquery

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/wesber"
)

// Ensure Extractor implements wesber.Extractor.
var _ wesber.Extractor = (*Extractor)(nil)

// Extractor extracts the dependencies of HTML documents.
type Extractor struct {
	fs wesber.FileSystem
}

// NewExtractor creates an Extractor reading files from fsys.
func NewExtractor(fsys wesber.FileSystem) *Extractor {
	return &Extractor{fs: fsys}
}

// Extract reads the document at path, replaces the references of its
// resource-bearing elements by markers and returns the result. Read
// errors are returned unchanged.
func (e *Extractor) Extract(ctx context.Context, path string, opts wesber.Options) (*wesber.Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := e.fs.ReadFile(ctx, abs)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(src)
	if err != nil {
		return nil, wesber.Errorf(wesber.EINVALID, "%s: %v", abs, err)
	}

	w := &Walker{
		Resolver: wesber.NewResolver(e.fs),
		Filter:   wesber.NewFilter(opts.Resolved...),
		Base:     abs,
	}
	deps := w.Walk(doc)
	out := doc.Render()

	return &wesber.Result{
		File:         abs,
		Source:       src,
		Replacer:     out,
		ContentHash:  wesber.ContentHash(out),
		Dependencies: deps,
	}, nil
}
