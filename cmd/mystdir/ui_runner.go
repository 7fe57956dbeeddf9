package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"mystdir/internal/driver"
	"mystdir/internal/source"
	"mystdir/internal/ui"
)

type parseOutcome struct {
	fs      *source.FileSet
	results []driver.DocumentResult
	err     error
}

func runParseWithUI(ctx context.Context, title, dir string, files []string, settings *runSettings) (*source.FileSet, []driver.DocumentResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseOutcome, 1)

	run := settings.clone()
	run.Driver.Sink = driver.ChannelSink{Ch: events}
	// the TUI owns the terminal while it runs
	quiet := cliLogger.Level(max(cliLogger.GetLevel(), zerolog.ErrorLevel))
	run.Driver.Log = &quiet

	go func() {
		fs, results, err := driver.ParseFiles(ctx, dir, files, &run.Driver)
		outcomeCh <- parseOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the workers from blocking on a dead consumer
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
