package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mystdir/internal/prof"
)

var profiling *prof.Session

// startProfiling enables the profilers requested by the persistent flags.
func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	profiling = session
	cliLogger.Debug().Str("cpu", opts.CPU).Str("mem", opts.Mem).Str("trace", opts.Trace).Msg("profiling enabled")
	return nil
}

func stopProfiling() {
	if err := profiling.Stop(); err != nil {
		cliLogger.Error().Err(err).Msg("failed to write profiles")
	}
}

// exitWith flushes the profiles before leaving with code, since os.Exit
// skips the post-run hooks.
func exitWith(code int) {
	stopProfiling()
	os.Exit(code)
}
