package schemas

import (
	"maps"

	"mystdir/internal/convert"
	"mystdir/internal/directive"
)

// AnyOptions is the name of the schema that keeps every option verbatim.
const AnyOptions = "test-any-options"

type spec = map[string]directive.Converter

func common(extra spec) spec {
	out := spec{
		"class": convert.ClassOption,
		"name":  convert.Unchanged,
	}
	maps.Copy(out, extra)
	return out
}

var (
	alignHV    = convert.Choice("top", "middle", "bottom", "left", "center", "right")
	alignH     = convert.Choice("left", "center", "right")
	imageItems = spec{
		"alt":     convert.Unchanged,
		"height":  convert.LengthOrUnitless,
		"width":   convert.LengthOrPercentageOrUnitless,
		"scale":   convert.Percentage,
		"align":   alignHV,
		"target":  convert.UnchangedRequired,
		"loading": convert.Choice("embed", "link", "lazy"),
	}
	codeItems = spec{
		"force":           convert.Flag,
		"linenos":         convert.Flag,
		"dedent":          convert.Int,
		"lineno-start":    convert.Int,
		"emphasize-lines": convert.UnchangedRequired,
		"caption":         convert.UnchangedRequired,
		"number-lines":    convert.Unchanged,
	}
	tableItems = spec{
		"header-rows":  convert.NonNegativeInt,
		"stub-columns": convert.NonNegativeInt,
		"width":        convert.LengthOrPercentageOrUnitless,
		"widths":       convert.Unchanged,
		"align":        alignH,
	}
)

func admonition(name string) *directive.Schema {
	return &directive.Schema{
		Name:                    name,
		FinalArgumentWhitespace: true,
		HasContent:              true,
		OptionSpec:              common(nil),
	}
}

func builtinSchemas() []*directive.Schema {
	out := []*directive.Schema{}
	for _, name := range []string{
		"attention", "caution", "danger", "error", "hint",
		"important", "note", "seealso", "tip", "warning",
	} {
		out = append(out, admonition(name))
	}
	generic := admonition("admonition")
	generic.RequiredArguments = 1
	out = append(out, generic)

	for _, name := range []string{"code-block", "code", "sourcecode"} {
		out = append(out, &directive.Schema{
			Name:              name,
			OptionalArguments: 1,
			HasContent:        true,
			OptionSpec:        common(codeItems),
		})
	}

	figureItems := maps.Clone(imageItems)
	figureItems["figwidth"] = convert.LengthOrPercentageOrUnitless
	figureItems["figclass"] = convert.ClassOption
	figureItems["align"] = alignH

	csvItems := maps.Clone(tableItems)
	maps.Copy(csvItems, spec{
		"header":    convert.Unchanged,
		"file":      convert.Path,
		"url":       convert.URI,
		"encoding":  convert.Encoding,
		"delim":     convert.UnchangedRequired,
		"keepspace": convert.Flag,
		"quote":     convert.UnchangedRequired,
		"escape":    convert.UnchangedRequired,
	})

	out = append(out,
		&directive.Schema{Name: "image", RequiredArguments: 1, FinalArgumentWhitespace: true,
			OptionSpec: common(imageItems)},
		&directive.Schema{Name: "figure", RequiredArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(figureItems)},
		&directive.Schema{Name: "math", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(spec{"label": convert.UnchangedRequired, "nowrap": convert.Flag})},
		&directive.Schema{Name: "include", RequiredArguments: 1, FinalArgumentWhitespace: true,
			OptionSpec: common(spec{
				"literal":      convert.Flag,
				"code":         convert.Unchanged,
				"encoding":     convert.Encoding,
				"parser":       convert.UnchangedRequired,
				"tab-width":    convert.Int,
				"start-line":   convert.Int,
				"end-line":     convert.Int,
				"start-after":  convert.UnchangedRequired,
				"end-before":   convert.UnchangedRequired,
				"number-lines": convert.Unchanged,
			})},
		&directive.Schema{Name: "literalinclude", RequiredArguments: 1, FinalArgumentWhitespace: true,
			OptionSpec: common(spec{
				"dedent":          convert.Int,
				"linenos":         convert.Flag,
				"lineno-start":    convert.Int,
				"lineno-match":    convert.Flag,
				"tab-width":       convert.Int,
				"language":        convert.UnchangedRequired,
				"force":           convert.Flag,
				"encoding":        convert.Encoding,
				"pyobject":        convert.UnchangedRequired,
				"lines":           convert.UnchangedRequired,
				"start-after":     convert.UnchangedRequired,
				"start-at":        convert.UnchangedRequired,
				"end-before":      convert.UnchangedRequired,
				"end-at":          convert.UnchangedRequired,
				"prepend":         convert.UnchangedRequired,
				"append":          convert.UnchangedRequired,
				"emphasize-lines": convert.UnchangedRequired,
				"caption":         convert.Unchanged,
				"diff":            convert.UnchangedRequired,
			})},
		&directive.Schema{Name: "toctree", HasContent: true,
			OptionSpec: common(spec{
				"maxdepth":      convert.Int,
				"caption":       convert.UnchangedRequired,
				"glob":          convert.Flag,
				"hidden":        convert.Flag,
				"includehidden": convert.Flag,
				"numbered":      convert.Unchanged,
				"titlesonly":    convert.Flag,
				"reversed":      convert.Flag,
			})},
		&directive.Schema{Name: "csv-table", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(csvItems)},
		&directive.Schema{Name: "list-table", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(tableItems)},
		&directive.Schema{Name: "table", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(spec{
				"align":  alignH,
				"width":  convert.LengthOrPercentageOrUnitless,
				"widths": convert.Unchanged,
			})},
		&directive.Schema{Name: "topic", RequiredArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(nil)},
		&directive.Schema{Name: "sidebar", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: common(spec{"subtitle": convert.UnchangedRequired})},
		&directive.Schema{Name: "epigraph", HasContent: true},
		&directive.Schema{Name: "raw", RequiredArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: spec{
				"file":     convert.Path,
				"url":      convert.URI,
				"encoding": convert.Encoding,
				"class":    convert.ClassOption,
			}},
		&directive.Schema{Name: "container", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: spec{"name": convert.Unchanged}},
		&directive.Schema{Name: "rubric", RequiredArguments: 1, FinalArgumentWhitespace: true,
			OptionSpec: common(nil)},
		&directive.Schema{Name: "glossary", HasContent: true, OptionSpec: spec{"sorted": convert.Flag}},
		&directive.Schema{Name: "only", RequiredArguments: 1, FinalArgumentWhitespace: true, HasContent: true},
		&directive.Schema{Name: "eval-rst", HasContent: true},
		&directive.Schema{Name: "mermaid", OptionalArguments: 1, FinalArgumentWhitespace: true,
			HasContent: true, OptionSpec: spec{
				"alt":     convert.Unchanged,
				"align":   alignH,
				"caption": convert.Unchanged,
				"zoom":    convert.Flag,
			}},
		&directive.Schema{Name: AnyOptions, HasContent: true, AcceptAnyOption: true},
	)

	for _, name := range []string{"versionadded", "versionchanged", "deprecated"} {
		out = append(out, &directive.Schema{
			Name:                    name,
			RequiredArguments:       1,
			OptionalArguments:       1,
			FinalArgumentWhitespace: true,
			HasContent:              true,
		})
	}
	return out
}

// Builtin returns a new registry holding the standard directive schemas.
func Builtin() *Registry {
	r := NewRegistry()
	for _, s := range builtinSchemas() {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}
