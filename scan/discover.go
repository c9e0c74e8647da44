package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wesber"
	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
	// rootGlob matches root entries for patterns starting with "**/".
	rootGlob glob.Glob
}

// Ignorer decides which paths of a tree are skipped. Patterns use '/' as
// separator and are matched against paths relative to the scanned root.
type Ignorer struct {
	patterns []compiledPattern
}

// NewIgnorer compiles the ignore patterns.
func NewIgnorer(patterns ...string) (*Ignorer, error) {
	ig := &Ignorer{}
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, wesber.Errorf(wesber.EINVALID, "invalid ignore pattern %q: %v", pattern, err)
		}
		cp := compiledPattern{pattern: pattern, glob: g}
		if simplified, ok := strings.CutPrefix(pattern, "**/"); ok {
			if rg, err := glob.Compile(simplified, '/'); err == nil {
				cp.rootGlob = rg
			}
		}
		ig.patterns = append(ig.patterns, cp)
	}
	return ig, nil
}

// Ignore returns true if relPath matches a pattern. A directory also
// matches patterns ending in "/**", so "node_modules/**" skips
// node_modules itself.
func (ig *Ignorer) Ignore(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	return ig.match(relPath) || ig.match(relPath+"/**")
}

func (ig *Ignorer) match(path string) bool {
	rootEntry := !strings.Contains(strings.TrimSuffix(path, "/**"), "/")
	for _, cp := range ig.patterns {
		if cp.glob.Match(path) {
			return true
		}
		if rootEntry && cp.rootGlob != nil && cp.rootGlob.Match(path) {
			return true
		}
	}
	return false
}

// Discover returns the files under root whose extension is one of exts,
// in lexical order. Ignored directories are not descended into.
func Discover(root string, exts []string, ig *Ignorer) ([]string, error) {
	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		want[strings.ToLower(ext)] = true
	}

	paths := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if ig != nil && ig.Ignore(relPath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if want[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
