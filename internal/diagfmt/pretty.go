package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mystdir/internal/diag"
	"mystdir/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, marker *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue),
		code:   mk(color.Faint),
		gutter: mk(color.FgBlue, color.Bold),
		marker: mk(color.FgGreen, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diagnostics for humans, in bag order (call bag.Sort first
// for a stable layout):
//
//	guide.md:7:1: WARNING DIR1003: Unknown option keys: ['bogus'] (allowed: [...])
//	   7 | ```{figure} img.png
//	     | ^~~~~~~~~~~~~~~~~~~
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	f := fileOf(fs, d.Primary)
	loc := formatPath(fs, f, opts.PathMode)
	var start source.LineCol
	if f != nil {
		start, _ = fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d", loc, start.Line, start.Col)
	}
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		loc, p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message); err != nil {
		return err
	}

	if opts.ShowSource && f != nil && start.Line > 0 && d.Code != diag.ObsTimings {
		if err := writeSourceLine(w, f, d.Primary, start, opts.Width, p); err != nil {
			return err
		}
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			if _, err := fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSourceLine(w io.Writer, f *source.File, span source.Span, start source.LineCol, width int, p palette) error {
	line := strings.TrimRight(f.GetLine(start.Line), "\r")
	if line == "" {
		return nil
	}
	if width > 0 {
		line = truncate(line, width)
	}
	lineStart := f.LineSpan(start.Line).Start
	from := min(int(span.Start-lineStart), len(line))
	to := min(max(int(span.End-lineStart), from+1), len(line))

	num := fmt.Sprintf("%4d", start.Line)
	pad := strings.Repeat(" ", len(num))
	marker := strings.Repeat(" ", runewidth.StringWidth(line[:from]))
	if underline := runewidth.StringWidth(line[from:to]); underline > 0 {
		marker += "^" + strings.Repeat("~", underline-1)
	}
	if _, err := fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.marker.Sprint(marker))
	return err
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
