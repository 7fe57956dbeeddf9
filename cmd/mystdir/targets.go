package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"mystdir/internal/driver"
	"mystdir/internal/source"
)

const stdinName = "<stdin>"

// parseTarget parses a single file, every Markdown file under a directory,
// or standard input when target is "-".
func parseTarget(ctx context.Context, target string, settings *runSettings, stdin io.Reader) (*source.FileSet, []driver.DocumentResult, error) {
	cfg := &settings.Driver
	if target == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		fs, res := driver.ParseSource(stdinName, content, cfg)
		return fs, []driver.DocumentResult{*res}, nil
	}

	st, err := os.Stat(target)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		fs, res, err := driver.ParseFile(target, cfg)
		if err != nil {
			return nil, nil, err
		}
		return fs, []driver.DocumentResult{*res}, nil
	}

	files, err := driver.ListMarkdownFiles(target)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list %s: %w", target, err)
	}
	if settings.UI.resolve(os.Stderr) && len(files) > 1 {
		return runParseWithUI(ctx, "parsing "+target, target, files, settings)
	}
	return driver.ParseFiles(ctx, target, files, cfg)
}
