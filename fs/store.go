package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wesber"
)

// ManifestName is the file name of the manifest written on Commit.
const ManifestName = "manifest.json"

// Ensure Store implements wesber.ResultStore at compile time.
var _ wesber.ResultStore = (*Store)(nil)

// Manifest describes the documents of an output directory.
type Manifest struct {
	Root      string          `json:"root"`
	Documents []ManifestEntry `json:"documents"`
}

// ManifestEntry describes one rewritten document. File is relative to the
// manifest's root.
type ManifestEntry struct {
	File         string               `json:"file"`
	ContentHash  string               `json:"contentHash"`
	Dependencies []*wesber.Dependency `json:"dependencies"`
}

// Store implements wesber.ResultStore with atomic update semantics.
// Rewritten documents mirror their location under root. They are saved
// to a temporary directory, then moved atomically on Commit together with
// the manifest.
type Store struct {
	root    string
	baseDir string
	name    string

	previous  map[string]string
	entries   []ManifestEntry
	unchanged int
}

// NewStore creates a new Store for documents under root.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewStore(root, baseDir, name string) *Store {
	return &Store{
		root:    root,
		baseDir: baseDir,
		name:    name,
	}
}

func (s *Store) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *Store) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the rewritten source of result. A document whose content
// hash matches the committed manifest is linked from the committed output
// instead of being written again.
func (s *Store) Save(ctx context.Context, result *wesber.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := s.relPath(result.File)
	if err != nil {
		return err
	}
	if s.previous == nil {
		// Leftovers of an interrupted run.
		if err := os.RemoveAll(s.tempDir()); err != nil {
			return err
		}
		s.previous = s.loadPrevious()
	}

	hash := result.ContentHash
	if hash == "" {
		hash = wesber.ContentHash(result.Replacer)
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	if prev, ok := s.previous[relPath]; ok && prev == hash &&
		os.Link(filepath.Join(s.finalDir(), relPath), fullPath) == nil {
		s.unchanged++
	} else if err := os.WriteFile(fullPath, []byte(result.Replacer), 0644); err != nil {
		return err
	}

	deps := result.Dependencies
	if deps == nil {
		deps = []*wesber.Dependency{}
	}
	s.entries = append(s.entries, ManifestEntry{
		File:         filepath.ToSlash(relPath),
		ContentHash:  hash,
		Dependencies: deps,
	})
	return nil
}

func (s *Store) relPath(file string) (string, error) {
	relPath, err := filepath.Rel(s.root, file)
	if err != nil {
		return "", wesber.Errorf(wesber.EINVALID, "%s is not under %s", file, s.root)
	}
	if relPath == "." || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", wesber.Errorf(wesber.EINVALID, "path traversal: %s is outside %s", file, s.root)
	}
	if relPath == ManifestName {
		return "", wesber.Errorf(wesber.EINVALID, "%s collides with the manifest", file)
	}
	return relPath, nil
}

// loadPrevious reads the content hashes of the committed manifest.
// A missing or unreadable manifest means nothing is reused.
func (s *Store) loadPrevious() map[string]string {
	prev := make(map[string]string)
	m, err := ReadManifest(filepath.Join(s.finalDir(), ManifestName))
	if err != nil {
		return prev
	}
	for _, e := range m.Documents {
		prev[filepath.FromSlash(e.File)] = e.ContentHash
	}
	return prev
}

// Unchanged returns the number of saved documents reused from the
// committed output.
func (s *Store) Unchanged() int {
	return s.unchanged
}

// Commit writes the manifest and replaces the output directory.
func (s *Store) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	entries := s.entries
	if entries == nil {
		entries = []ManifestEntry{}
	}
	b, err := json.MarshalIndent(&Manifest{Root: s.root, Documents: entries}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), ManifestName), append(b, '\n'), 0644); err != nil {
		return err
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the store was created.
func (s *Store) Abort() error {
	s.entries = nil
	return os.RemoveAll(s.tempDir())
}

// ReadManifest reads a manifest written by Commit.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.Join(wesber.Errorf(wesber.EINVALID, "invalid manifest %s", path), err)
	}
	return &m, nil
}
