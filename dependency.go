package wesber

import (
	"context"
	"encoding/json"
)

// Dependency is a single resource reference discovered in a document.
type Dependency struct {
	// File is the reference exactly as written in the source, trimmed.
	File string `json:"file"`

	// Marker replaces File in the rewritten source. References to the same
	// target share a marker.
	Marker string `json:"hash"`

	// EntireURI reports an absolute http(s) URI.
	EntireURI bool `json:"entireUri"`

	// Base64 reports an inline base64 image payload.
	Base64 bool `json:"base64"`

	// Exists reports whether Path is an existing regular file.
	// Always false for remote and inline references.
	Exists bool `json:"exists"`

	// Path is the absolute filesystem path of a local reference.
	// Empty for remote and inline references.
	Path string `json:"path"`
}

// IsLocal returns true if the dependency refers to a file on disk.
func (d *Dependency) IsLocal() bool {
	return !d.EntireURI && !d.Base64
}

// MarshalJSON encodes a missing Path as null.
func (d *Dependency) MarshalJSON() ([]byte, error) {
	type alias Dependency
	var path *string
	if d.Path != "" {
		path = &d.Path
	}
	return json.Marshal(&struct {
		*alias
		Path *string `json:"path"`
	}{
		alias: (*alias)(d),
		Path:  path,
	})
}

// Result is the outcome of extracting one document.
type Result struct {
	// File is the absolute path of the document.
	File string `json:"file"`

	// Source is the document text as read from disk.
	Source string `json:"source"`

	// Replacer is Source with every extracted reference replaced by its marker.
	Replacer string `json:"replacer"`

	// ContentHash is the hex xxhash of Replacer.
	ContentHash string `json:"contentHash"`

	// Dependencies are listed in document order. Repeated references are kept.
	Dependencies []*Dependency `json:"dependencies"`
}

// Missing returns the number of local dependencies whose target does not
// exist.
func (r *Result) Missing() int {
	n := 0
	for _, d := range r.Dependencies {
		if d.IsLocal() && !d.Exists {
			n++
		}
	}
	return n
}

// Options controls an extraction.
type Options struct {
	// Resolved restricts extraction to the named kinds: CSS property names
	// for stylesheets, tag names for HTML. Empty means every kind.
	Resolved []string
}

// Extractor extracts and rewrites the dependencies of a single document.
type Extractor interface {
	// Extract reads the document at path and returns its rewritten source
	// and dependencies. Read and parse failures are returned unchanged.
	Extract(ctx context.Context, path string, opts Options) (*Result, error)
}

// FileChecker reports whether a path is an existing regular file.
type FileChecker interface {
	IsFile(path string) bool
}

// FileSystem provides the file access needed by extractors.
type FileSystem interface {
	FileChecker

	// ReadFile returns the content of the file at path.
	ReadFile(ctx context.Context, path string) (string, error)
}
