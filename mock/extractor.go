package mock

import (
	"context"

	"github.com/fwojciec/wesber"
)

var _ wesber.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wesber.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, path string, opts wesber.Options) (*wesber.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, path string, opts wesber.Options) (*wesber.Result, error) {
	return e.ExtractFn(ctx, path, opts)
}
