package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mystdir/internal/diag"
	"mystdir/internal/diagfmt"
	"mystdir/internal/driver"
	"mystdir/internal/source"
	"mystdir/internal/version"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.md|directory|->",
	Short: "Report problems in directive blocks",
	Long:  `Report unknown directives, bad arguments and invalid options in a Markdown file, every Markdown file under a directory, or standard input`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "", "output format (pretty|json|sarif|short); defaults to [output].format or pretty")
	diagCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	diagCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("source", true, "print the offending source line (pretty format)")
}

type diagOptions struct {
	format           outputFormat
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	showSource       bool
}

func readDiagOptions(cmd *cobra.Command, settings *runSettings) (diagOptions, error) {
	var opts diagOptions
	flags := cmd.Flags()

	format, err := flags.GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = settings.Format
	}
	if format == "" || format == string(formatText) {
		format = string(formatPretty)
	}
	if opts.format, err = readOutputFormat(format); err != nil {
		return opts, err
	}
	if opts.noWarnings, err = flags.GetBool("no-warnings"); err != nil {
		return opts, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if opts.warningsAsErrors, err = flags.GetBool("warnings-as-errors"); err != nil {
		return opts, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if opts.noWarnings && opts.warningsAsErrors {
		return opts, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if opts.withNotes, err = flags.GetBool("with-notes"); err != nil {
		return opts, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if opts.showSource, err = flags.GetBool("source"); err != nil {
		return opts, fmt.Errorf("failed to get source flag: %w", err)
	}
	return opts, nil
}

// runDiagnose prints the diagnostics of the target and exits with status 1
// when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	settings, err := loadRunSettings(cmd, out)
	if err != nil {
		return err
	}
	opts, err := readDiagOptions(cmd, settings)
	if err != nil {
		return err
	}

	fs, results, err := parseTarget(cmd.Context(), args[0], settings, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("diagnosis failed: %w", err)
	}

	exit, err := reportDiagnostics(out, fs, results, settings, opts, os.Args[1:])
	if err != nil {
		return err
	}
	if exit != 0 {
		exitWith(exit)
	}
	return nil
}

// reportDiagnostics writes the merged diagnostics of results and returns
// the process exit code.
func reportDiagnostics(out io.Writer, fs *source.FileSet, results []driver.DocumentResult, settings *runSettings, opts diagOptions, invocation []string) (int, error) {
	bag := driver.MergeBags(results)
	bag.Dedup()
	if opts.noWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	if opts.warningsAsErrors {
		bag.Transform(func(d *diag.Diagnostic) {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
		})
	}
	bag.Sort()

	exit := 0
	if bag.HasErrors() {
		exit = 1
	}

	switch opts.format {
	case formatPretty:
		prettyOpts := diagfmt.PrettyOpts{
			Color:      settings.Color,
			PathMode:   settings.PathMode,
			ShowNotes:  opts.withNotes,
			ShowSource: opts.showSource,
		}
		if err := diagfmt.Pretty(out, bag, fs, prettyOpts); err != nil {
			return 0, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case formatShort:
		if text := diag.FormatShortDiagnostics(bag.Items(), fs, opts.withNotes); text != "" {
			if _, err := fmt.Fprintln(out, text); err != nil {
				return 0, fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	case formatJSON:
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         settings.PathMode,
			IncludeNotes:     opts.withNotes,
		}
		if err := diagfmt.JSON(out, bag, fs, jsonOpts); err != nil {
			return 0, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case formatSarif:
		meta := diagfmt.SarifRunMeta{
			ToolName:       "mystdir",
			ToolVersion:    version.Version,
			InvocationArgs: invocation,
		}
		if err := diagfmt.Sarif(out, bag, fs, meta); err != nil {
			return 0, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown format: %s", opts.format)
	}
	return exit, nil
}
