package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wesber"
	"github.com/fwojciec/wesber/css"
	"github.com/fwojciec/wesber/fs"
	"github.com/fwojciec/wesber/goquery"
	wslog "github.com/fwojciec/wesber/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// File system used by the extractors. Set before calling Run().
	FileSystem wesber.FileSystem
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		FileSystem: fs.NewFileSystem(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wesber"),
		kong.Description("Extract and rewrite the resource dependencies of CSS and HTML files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wesber --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.FileSystem = m.FileSystem
	deps.Registry = newRegistry(m.FileSystem, deps.Logger)

	return kongCtx.Run(deps)
}

// newRegistry wires the extractors reading from fsys, logging every
// extraction.
func newRegistry(fsys wesber.FileSystem, logger *slog.Logger) *wesber.Registry {
	cssExtractor := wslog.NewLoggingExtractor(css.NewExtractor(fsys), logger)
	htmlExtractor := wslog.NewLoggingExtractor(goquery.NewExtractor(fsys), logger)

	r := wesber.NewRegistry()
	r.Register(".css", cssExtractor)
	r.Register(".html", htmlExtractor)
	r.Register(".htm", htmlExtractor)
	return r
}
