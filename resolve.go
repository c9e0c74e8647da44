package wesber

import (
	"path/filepath"
	"strings"
)

// Resolver turns raw references into dependencies.
type Resolver struct {
	files FileChecker
}

// NewResolver returns a Resolver that checks local targets with files.
func NewResolver(files FileChecker) *Resolver {
	return &Resolver{files: files}
}

// Resolve classifies raw, resolves local references against the directory
// of base, and computes the marker. Remote and inline references are marked
// by their own text, local ones by their absolute path, so the same target
// always gets the same marker.
func (r *Resolver) Resolve(raw, base string) *Dependency {
	file := strings.TrimSpace(raw)
	entire, b64 := Classify(file)

	dep := &Dependency{
		File:      file,
		EntireURI: entire,
		Base64:    b64,
	}
	if entire || b64 {
		dep.Marker = Marker(file)
		return dep
	}

	dep.Path = ResolvePath(base, file)
	dep.Marker = Marker(dep.Path)
	dep.Exists = r.files != nil && r.files.IsFile(dep.Path)
	return dep
}

// ResolvePath returns the absolute path of file relative to the directory
// containing base. Absolute files are only cleaned.
func ResolvePath(base, file string) string {
	p := file
	if !filepath.IsAbs(p) {
		p = filepath.Join(filepath.Dir(base), p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
