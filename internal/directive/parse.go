package directive

import (
	"strings"

	"mystdir/internal/diag"
)

// Invocation is one directive block as located by the document scanner.
type Invocation struct {
	Name      string
	FirstLine string // text after the directive name on the opening line
	Content   string // everything after the opening line
	Line      int    // document line of the opening line, 0 when unknown
}

// Result is the parsed form of one invocation.
type Result struct {
	Arguments []string
	Options   map[string]any
	Body      []string
	// BodyOffset counts the content lines before the first body line.
	BodyOffset int
	Warnings   []Warning
}

// BodyLine returns the document line of the first body line, or 0 when the
// invocation line is unknown.
func (r *Result) BodyLine(inv Invocation) int {
	if inv.Line <= 0 {
		return 0
	}
	return inv.Line + 1 + r.BodyOffset
}

// Parse splits an invocation into arguments, options and body. The only
// error it returns is *ArityError; every other problem ends up in
// Result.Warnings.
func Parse(inv Invocation, schema *Schema, opts Options) (*Result, error) {
	res := &Result{
		Arguments: []string{},
		Options:   map[string]any{},
	}
	body := splitLines(inv.Content)

	if schema.HasOptions() {
		split := SplitOptions(inv.Content, inv.Line)
		options, warnings := ValidateOptions(split, schema, opts)
		res.Options = options
		res.Warnings = append(res.Warnings, warnings...)
		rest := splitLines(split.Body)
		res.BodyOffset = len(body) - len(rest)
		body = rest
	}

	prepended := false
	if schema.HasArguments() {
		args, err := ParseArguments(inv.FirstLine, schema)
		if err != nil {
			return nil, err
		}
		res.Arguments = args
	} else if inv.FirstLine != "" {
		body = append([]string{inv.FirstLine}, body...)
		prepended = true
	}

	// one blank line may separate the options from the body
	if len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
		res.BodyOffset++
		prepended = false
	}
	if body == nil {
		body = []string{}
	}
	res.Body = body

	if len(body) > 0 && !schema.HasContent {
		line := res.BodyLine(inv)
		if prepended {
			line = inv.Line
		}
		res.Warnings = append(res.Warnings,
			newWarning(diag.DirContentNotAllowed, line, "Has content, but none permitted"))
	}
	return res, nil
}
