package mock

import (
	"context"

	"github.com/fwojciec/wesber"
)

var _ wesber.FileSystem = (*FileSystem)(nil)

// FileSystem is a mock implementation of wesber.FileSystem.
type FileSystem struct {
	ReadFileFn func(ctx context.Context, path string) (string, error)
	IsFileFn   func(path string) bool
}

func (f *FileSystem) ReadFile(ctx context.Context, path string) (string, error) {
	return f.ReadFileFn(ctx, path)
}

func (f *FileSystem) IsFile(path string) bool {
	return f.IsFileFn(path)
}
