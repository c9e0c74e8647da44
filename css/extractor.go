package css

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/wesber"
)

// Ensure Extractor implements wesber.Extractor.
var _ wesber.Extractor = (*Extractor)(nil)

// Extractor extracts the dependencies of stylesheets.
type Extractor struct {
	fs wesber.FileSystem
}

// NewExtractor creates an Extractor reading files from fsys.
func NewExtractor(fsys wesber.FileSystem) *Extractor {
	return &Extractor{fs: fsys}
}

// Extract reads the stylesheet at path, replaces the references of its
// resource properties by markers and returns the result. Read errors are
// returned unchanged; syntax errors are EINVALID.
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

	sheet, err := Parse(abs, src)
	if err != nil {
		return nil, err
	}

	w := &Walker{
		Resolver: wesber.NewResolver(e.fs),
		Filter:   wesber.NewFilter(opts.Resolved...),
		Base:     abs,
	}
	deps := w.Walk(sheet)
	out := sheet.String()

	return &wesber.Result{
		File:         abs,
		Source:       src,
		Replacer:     out,
		ContentHash:  wesber.ContentHash(out),
		Dependencies: deps,
	}, nil
}
