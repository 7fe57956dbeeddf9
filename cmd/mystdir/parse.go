package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mystdir/internal/diag"
	"mystdir/internal/diagfmt"
	"mystdir/internal/driver"
	"mystdir/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.md|directory|->",
	Short: "Print the directive blocks of Markdown documents",
	Long:  `Parse every {name} directive block and print its arguments, options and body`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "output format (json|text); defaults to [output].format or text")
}

type documentJSON struct {
	Path       string             `json:"path"`
	Directives []driver.Directive `json:"directives"`
	Errors     int                `json:"errors"`
	Warnings   int                `json:"warnings"`
	Cached     bool               `json:"cached,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	settings, err := loadRunSettings(cmd, out)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format == "" {
		format = settings.Format
	}
	if format == "" || format == string(formatPretty) {
		format = string(formatText)
	}

	fs, results, err := parseTarget(cmd.Context(), args[0], settings, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	switch outputFormat(format) {
	case formatJSON:
		err = writeDocumentsJSON(out, fs, results, settings.PathMode)
	case formatText:
		err = writeDocumentsText(out, fs, results, settings)
	default:
		return fmt.Errorf("unsupported format %q (must be json or text)", format)
	}
	if err != nil {
		return err
	}

	// diagnostics go to stderr so stdout stays machine readable
	bag := driver.MergeBags(results)
	bag.Sort()
	errOut := cmd.ErrOrStderr()
	prettyOpts := diagfmt.PrettyOpts{
		Color:    settings.Color && colorEnabledFor(errOut),
		PathMode: settings.PathMode,
	}
	if err := diagfmt.Pretty(errOut, bag, fs, prettyOpts); err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	if bag.HasErrors() {
		exitWith(1)
	}
	return nil
}

func documentPath(fs *source.FileSet, res *driver.DocumentResult, mode diagfmt.PathMode) string {
	if fs == nil || int(res.FileID) >= fs.Len() {
		return res.Path
	}
	return fs.Get(res.FileID).FormatPath(mode.String(), fs.BaseDir())
}

func writeDocumentsJSON(w io.Writer, fs *source.FileSet, results []driver.DocumentResult, mode diagfmt.PathMode) error {
	docs := make([]documentJSON, 0, len(results))
	for i := range results {
		res := &results[i]
		doc := documentJSON{
			Path:       documentPath(fs, res, mode),
			Directives: res.Directives,
			Cached:     res.Cached,
		}
		if doc.Directives == nil {
			doc.Directives = []driver.Directive{}
		}
		for _, d := range res.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				doc.Errors++
			case d.Severity == diag.SevWarning:
				doc.Warnings++
			}
		}
		docs = append(docs, doc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode directives: %w", err)
	}
	return nil
}

func writeDocumentsText(w io.Writer, fs *source.FileSet, results []driver.DocumentResult, settings *runSettings) error {
	name := color.New(color.FgCyan, color.Bold)
	key := color.New(color.FgYellow)
	gutter := color.New(color.Faint)
	if !settings.Color {
		name.DisableColor()
		key.DisableColor()
		gutter.DisableColor()
	}

	var b strings.Builder
	for i := range results {
		res := &results[i]
		path := documentPath(fs, res, settings.PathMode)
		for _, d := range res.Directives {
			fmt.Fprintf(&b, "%s:%d: %s", path, d.Line, name.Sprint("{"+d.Name+"}"))
			for _, arg := range d.Arguments {
				fmt.Fprintf(&b, " %q", arg)
			}
			b.WriteByte('\n')

			keys := make([]string, 0, len(d.Options))
			for k := range d.Options {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&b, "    %s %s\n", key.Sprint(":"+k+":"), formatOptionValue(d.Options[k]))
			}
			for _, line := range d.Body {
				fmt.Fprintf(&b, "    %s %s\n", gutter.Sprint("|"), line)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func formatOptionValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case nil:
		return "None"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
