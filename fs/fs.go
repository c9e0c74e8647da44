// Package fs provides file-based access for extraction and storage of
// rewritten documents.
package fs

import (
	"context"
	"os"

	"github.com/fwojciec/wesber"
)

// Ensure FileSystem implements wesber.FileSystem at compile time.
var _ wesber.FileSystem = (*FileSystem)(nil)

// FileSystem reads documents from the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// ReadFile returns the content of the file at path. Errors from the
// operating system are returned unchanged.
func (f *FileSystem) ReadFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsFile returns true if path is an existing regular file.
func (f *FileSystem) IsFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
