// Package scan extracts the dependencies of every document in a directory
// tree.
package scan

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fwojciec/wesber"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of documents extracted in parallel when
// Scanner.Concurrency is not set.
const DefaultConcurrency = 4

// Scanner orchestrates the extraction of a directory tree.
type Scanner struct {
	Extractor wesber.Extractor

	// Extensions selects the documents to extract, e.g. ".css".
	Extensions []string

	// Ignore holds glob patterns of paths to skip, relative to the root.
	Ignore []string

	// Options is passed to every extraction.
	Options wesber.Options

	// Store, if set, receives every extracted document. It is committed
	// when the scan completes and aborted otherwise.
	Store wesber.ResultStore

	Concurrency int
}

// Failure records a document that could not be extracted.
type Failure struct {
	Path string
	Err  error
}

// Result holds the outcome of a scan.
type Result struct {
	// Documents are the extracted documents in discovery order.
	Documents []*wesber.Result
	Failures  []Failure
}

// scanResult holds the outcome of extracting a single document.
type scanResult struct {
	position int
	path     string
	result   *wesber.Result
	err      error
}

// Scan discovers the documents under root and extracts them concurrently.
// A failing document is reported through progress and recorded in the
// result; the scan itself fails only when discovery fails, the context is
// cancelled or the store cannot be written.
func (s *Scanner) Scan(ctx context.Context, root string, progress wesber.ScanProgressFunc) (*Result, error) {
	ig, err := NewIgnorer(s.Ignore...)
	if err != nil {
		return nil, err
	}
	paths, err := Discover(root, s.Extensions, ig)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan scanResult, len(paths))
	var completed atomic.Int64
	total := len(paths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				resultCh <- s.extract(gctx, i, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]scanResult, len(paths))
	for r := range resultCh {
		results[r.position] = r
		if progress != nil {
			progress(wesber.ScanProgress{
				Path:      r.path,
				Completed: int(completed.Add(1)),
				Total:     total,
				Result:    r.result,
				Error:     r.err,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		s.abort()
		return nil, err
	}

	out := &Result{Documents: []*wesber.Result{}}
	for _, r := range results {
		if r.err != nil {
			out.Failures = append(out.Failures, Failure{Path: r.path, Err: r.err})
			continue
		}
		out.Documents = append(out.Documents, r.result)
	}

	if err := s.save(ctx, out.Documents); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scanner) extract(ctx context.Context, position int, path string) scanResult {
	r := scanResult{position: position, path: path}
	if err := ctx.Err(); err != nil {
		r.err = err
		return r
	}
	r.result, r.err = s.Extractor.Extract(ctx, path, s.Options)
	return r
}

func (s *Scanner) save(ctx context.Context, docs []*wesber.Result) error {
	if s.Store == nil {
		return nil
	}
	for _, doc := range docs {
		if err := s.Store.Save(ctx, doc); err != nil {
			s.abort()
			return fmt.Errorf("save %s: %w", doc.File, err)
		}
	}
	if err := s.Store.Commit(); err != nil {
		s.abort()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *Scanner) abort() {
	if s.Store != nil {
		_ = s.Store.Abort()
	}
}
