package mock

import (
	"context"

	"github.com/fwojciec/wesber"
)

var _ wesber.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of wesber.ResultStore.
type ResultStore struct {
	SaveFn   func(ctx context.Context, result *wesber.Result) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ResultStore) Save(ctx context.Context, result *wesber.Result) error {
	return s.SaveFn(ctx, result)
}

func (s *ResultStore) Commit() error {
	return s.CommitFn()
}

func (s *ResultStore) Abort() error {
	return s.AbortFn()
}
