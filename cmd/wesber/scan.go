package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wesber"
	"github.com/fwojciec/wesber/bloom"
	"github.com/fwojciec/wesber/fs"
	"github.com/fwojciec/wesber/scan"
	"github.com/gobwas/glob"
)

// maxPathLen is the display width of document paths in summary lines.
const maxPathLen = 60

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	root, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}

	// References under root are checked against an index of its files.
	files, err := fs.NewIndexedFileSystem(deps.FileSystem, root, bloom.DefaultFalsePositiveRate)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}
	deps.Logger.Debug("indexed", "root", root, "files", files.Len())
	registry := newRegistry(files, deps.Logger)

	scanner := &scan.Scanner{
		Extractor:   registry,
		Extensions:  registry.Extensions(),
		Ignore:      c.Ignore,
		Options:     wesber.Options{Resolved: c.Resolved},
		Concurrency: c.Concurrency,
	}

	var store *fs.Store
	if c.Output != "" {
		out, err := filepath.Abs(c.Output)
		if err != nil {
			return err
		}
		store = fs.NewStore(root, filepath.Dir(out), filepath.Base(out))
		scanner.Store = store
		// Output written inside the scanned tree must not be scanned again
		if rel, err := filepath.Rel(root, out); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			rel = filepath.ToSlash(rel)
			scanner.Ignore = append(scanner.Ignore, glob.QuoteMeta(rel), glob.QuoteMeta(rel+".tmp"))
		}
	}

	result, err := scanner.Scan(deps.Ctx, root, func(p wesber.ScanProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", relative(root, p.Path), errorMessage(p.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	for _, doc := range result.Documents {
		fmt.Fprintln(deps.Stdout, scan.FormatSummary(scan.TruncatePath(relative(root, doc.File), maxPathLen), len(doc.Dependencies), doc.Missing()))
	}

	report := scan.NewReport(result.Documents)
	fmt.Fprintf(deps.Stdout, "\n%d documents, %d deps (%d local, %d remote, %d inline), %d failed\n",
		report.Documents, report.Dependencies, report.Local, report.Remote, report.Inline, len(result.Failures))
	if store != nil {
		fmt.Fprintf(deps.Stdout, "Wrote %s (%d unchanged)\n", c.Output, store.Unchanged())
	}

	if c.Missing && len(report.Missing) > 0 {
		fmt.Fprintln(deps.Stdout, "\nMissing:")
		for _, path := range report.Missing {
			fmt.Fprintf(deps.Stdout, "  %s\n", relative(root, path))
			for _, ref := range report.Referrers[path] {
				fmt.Fprintf(deps.Stdout, "    <- %s\n", relative(root, ref))
			}
		}
	}

	if n := len(result.Failures); n > 0 {
		return fmt.Errorf("%d of %d documents failed", n, n+len(result.Documents))
	}
	return nil
}

// relative returns path relative to root when it lies under it.
func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
