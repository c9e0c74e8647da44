package wesber

import "context"

// ScanProgress reports progress while a directory is being scanned.
type ScanProgress struct {
	Path      string
	Completed int
	Total     int
	Result    *Result
	Error     error
}

// ScanProgressFunc is called as documents are processed.
type ScanProgressFunc func(ScanProgress)

// ResultStore persists rewritten documents with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ResultStore interface {
	Save(ctx context.Context, result *Result) error
	Commit() error
	Abort() error
}
