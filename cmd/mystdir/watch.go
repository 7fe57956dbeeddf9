package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"mystdir/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file.md|directory>",
	Short: "Re-run diagnostics whenever Markdown files change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("format", "", "output format (pretty|json|sarif|short)")
	watchCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	watchCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	watchCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	watchCmd.Flags().Bool("source", true, "print the offending source line (pretty format)")
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "quiet period before re-running")
}

func runWatch(cmd *cobra.Command, args []string) error {
	target := args[0]
	if target == "-" {
		return fmt.Errorf("watch needs a file or directory, not standard input")
	}
	out := cmd.OutOrStdout()
	settings, err := loadRunSettings(cmd, out)
	if err != nil {
		return err
	}
	opts, err := readDiagOptions(cmd, settings)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	// the progress view would fight with the repeated reports
	settings.UI = modeOff

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		fset, results, err := parseTarget(ctx, target, settings, nil)
		if err != nil {
			cliLogger.Error().Err(err).Str("path", target).Msg("diagnosis failed")
			return
		}
		if _, err := reportDiagnostics(out, fset, results, settings, opts, nil); err != nil {
			cliLogger.Error().Err(err).Msg("report failed")
		}
	}
	return watchPath(ctx, target, debounce, out, run)
}

// watchPath calls run once and then again after every burst of relevant
// changes under root, until ctx is done.
func watchPath(ctx context.Context, root string, debounce time.Duration, out io.Writer, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		err = addWatchRecursive(watcher, root)
	} else {
		// editors replace files on save, so the directory is what gets watched
		err = watcher.Add(filepath.Dir(root))
	}
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}

	run()
	fmt.Fprintf(out, "watching %s for changes (Ctrl-C to stop)\n", root)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerC = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-timerC:
			timerC = nil
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cliLogger.Warn().Err(err).Msg("watcher error")
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) && st.IsDir() {
				if fi, statErr := os.Stat(evt.Name); statErr == nil && fi.IsDir() {
					if addErr := addWatchRecursive(watcher, evt.Name); addErr != nil {
						cliLogger.Warn().Err(addErr).Str("path", evt.Name).Msg("add watch failed")
					}
				}
			}
			if shouldRerun(evt, root, st.IsDir()) {
				cliLogger.Debug().Str("path", evt.Name).Str("op", evt.Op.String()).Msg("change detected")
				resetTimer()
			}
		}
	}
}

func shouldRerun(evt fsnotify.Event, root string, rootIsDir bool) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
		return false
	}
	if !rootIsDir {
		return filepath.Clean(evt.Name) == filepath.Clean(root)
	}
	if strings.HasPrefix(filepath.Base(evt.Name), ".") {
		return false
	}
	return driver.IsMarkdown(evt.Name)
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
