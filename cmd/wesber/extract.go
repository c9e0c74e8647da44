package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/wesber"
)

// Run executes the css command.
func (c *CSSCmd) Run(deps *Dependencies) error {
	return runExtract(deps, ".css", c.File, c.Resolved)
}

// Run executes the html command.
func (c *HTMLCmd) Run(deps *Dependencies) error {
	return runExtract(deps, ".html", c.File, c.Resolved)
}

// runExtract extracts path with the extractor registered for ext,
// whatever the file's own extension.
func runExtract(deps *Dependencies, ext, path string, resolved []string) error {
	e := deps.Registry.Get(ext)
	result, err := e.Extract(deps.Ctx, path, wesber.Options{Resolved: resolved})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

// errorMessage returns the message of application errors and the full
// text of anything else, such as file system errors.
func errorMessage(err error) string {
	if wesber.ErrorCode(err) == wesber.EINTERNAL {
		return err.Error()
	}
	return wesber.ErrorMessage(err)
}
