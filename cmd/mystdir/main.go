package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mystdir/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "mystdir",
	Short:         "Parse MyST directive blocks in Markdown documents",
	Long:          `mystdir finds {name} fenced directive blocks in Markdown and splits them into arguments, options and body`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}
		logger, err := newLogger(os.Stderr, level)
		if err != nil {
			return err
		}
		cliLogger = logger
		return startProfiling(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiling()
	},
}

// main registers subcommands and persistent flags and runs the root command.
// A failing command exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(schemasCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.String("log-level", "warn", "log level (debug|info|warn|error|disabled)")
	flags.Bool("timings", false, "report per-document phase timings")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics per document (0 = unlimited)")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	flags.Int("jobs", 0, "max parallel workers for directory runs (0 = auto)")
	flags.Bool("raw-options", false, "keep option values as parsed YAML instead of validating them")
	flags.StringToString("option", nil, "additional option applied to every directive (key=value, repeatable)")
	flags.StringSlice("schemas", nil, "extra TOML schema files")
	flags.Bool("cache", false, "reuse parse results from the on-disk cache")
	flags.String("ui", "auto", "progress UI for directory runs (auto|on|off)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a runtime trace to this file")

	if err := rootCmd.Execute(); err != nil {
		exitWith(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
