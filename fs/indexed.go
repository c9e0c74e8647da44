package fs

import (
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wesber"
	"github.com/fwojciec/wesber/bloom"
)

// Ensure IndexedFileSystem implements wesber.FileSystem at compile time.
var _ wesber.FileSystem = (*IndexedFileSystem)(nil)

// IndexedFileSystem answers IsFile for paths under root from an index of
// the files found there when it was created. Paths the index rejects are
// reported missing without touching the disk; everything else is confirmed
// by the wrapped file system. Files created under root after indexing are
// not seen.
type IndexedFileSystem struct {
	wesber.FileSystem

	root  string
	index *bloom.Index

	// links are symlinks under root, which the walk does not follow.
	links []string
}

// NewIndexedFileSystem walks root and indexes every file below it.
func NewIndexedFileSystem(fsys wesber.FileSystem, root string, fpRate float64) (*IndexedFileSystem, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var paths, links []string
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&iofs.ModeSymlink != 0 {
			links = append(links, path)
		}
		paths = append(paths, indexKey(path))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &IndexedFileSystem{
		FileSystem: fsys,
		root:       root,
		index:      bloom.NewIndex(paths, fpRate),
		links:      links,
	}, nil
}

// indexKey folds case so that case-insensitive file systems never produce
// false negatives.
func indexKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}

// Len returns the number of indexed files.
func (f *IndexedFileSystem) Len() int {
	return f.index.Len()
}

// IsFile returns true if path is an existing regular file.
func (f *IndexedFileSystem) IsFile(path string) bool {
	if f.indexed(path) && !f.index.MayContain(indexKey(path)) {
		return false
	}
	return f.FileSystem.IsFile(path)
}

// indexed reports whether the index covers path.
func (f *IndexedFileSystem) indexed(path string) bool {
	if !within(f.root, path) {
		return false
	}
	for _, l := range f.links {
		if within(l, path) {
			return false
		}
	}
	return true
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
