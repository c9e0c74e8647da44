package wesber

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
)

var _ Extractor = (*Registry)(nil)

// Registry dispatches extraction to the extractor registered for a file's
// extension. Extensions are matched case-insensitively.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// Register adds an extractor for an extension such as ".css".
// If an extractor is already registered for ext, it is replaced.
func (r *Registry) Register(ext string, e Extractor) {
	r.extractors[normalizeExt(ext)] = e
}

// Get returns the extractor for path, or nil when its extension is unknown.
func (r *Registry) Get(path string) Extractor {
	return r.extractors[normalizeExt(filepath.Ext(path))]
}

// Supports reports whether an extractor is registered for path.
func (r *Registry) Supports(path string) bool {
	return r.Get(path) != nil
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract runs the extractor registered for path.
func (r *Registry) Extract(ctx context.Context, path string, opts Options) (*Result, error) {
	e := r.Get(path)
	if e == nil {
		return nil, Errorf(EINVALID, "unsupported file type: %s", path)
	}
	return e.Extract(ctx, path, opts)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
