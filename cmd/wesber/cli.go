package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wesber"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	FileSystem wesber.FileSystem
	Registry   *wesber.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log every extraction"`

	CSS  CSSCmd  `cmd:"" name:"css" help:"Extract the dependencies of a stylesheet"`
	HTML HTMLCmd `cmd:"" name:"html" help:"Extract the dependencies of an HTML document"`
	Scan ScanCmd `cmd:"" help:"Extract every stylesheet and HTML document under a directory"`
}

// CSSCmd is the "css" subcommand.
type CSSCmd struct {
	File     string   `arg:"" help:"Stylesheet path"`
	Resolved []string `short:"r" name:"resolved" help:"Only extract these properties (repeatable)"`
}

// HTMLCmd is the "html" subcommand.
type HTMLCmd struct {
	File     string   `arg:"" help:"HTML document path"`
	Resolved []string `short:"r" name:"resolved" help:"Only extract these tags (repeatable)"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Dir         string   `arg:"" type:"existingdir" help:"Directory to scan"`
	Ignore      []string `short:"i" name:"ignore" help:"Skip paths matching glob (repeatable)"`
	Resolved    []string `short:"r" name:"resolved" help:"Only extract these properties or tags (repeatable)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	Output      string   `short:"o" type:"path" help:"Write rewritten files and manifest.json to this directory"`
	Missing     bool     `help:"List missing local dependencies"`
}
