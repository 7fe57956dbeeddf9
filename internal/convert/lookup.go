package convert

import (
	"fmt"
	"strings"

	"mystdir/internal/directive"
)

var byName = map[string]directive.Converter{
	"flag":                             Flag,
	"unchanged":                        Unchanged,
	"unchanged_required":               UnchangedRequired,
	"path":                             Path,
	"uri":                              URI,
	"int":                              Int,
	"nonnegative_int":                  NonNegativeInt,
	"positive_int":                     PositiveInt,
	"float":                            Float,
	"percentage":                       Percentage,
	"length_or_unitless":               LengthOrUnitless,
	"length_or_percentage_or_unitless": LengthOrPercentageOrUnitless,
	"class_option":                     ClassOption,
	"positive_int_list":                PositiveIntList,
	"encoding":                         Encoding,
}

// Lookup resolves a converter by the name used in schema files. Names are
// matched with '-' and '_' treated alike. "choice:a|b|c" builds a Choice.
func Lookup(spec string) (directive.Converter, error) {
	spec = strings.TrimSpace(spec)
	if rest, ok := strings.CutPrefix(spec, "choice:"); ok {
		var values []string
		for _, v := range strings.Split(rest, "|") {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("choice converter %q lists no values", spec)
		}
		return Choice(values...), nil
	}
	conv, ok := byName[strings.ReplaceAll(strings.ToLower(spec), "-", "_")]
	if !ok {
		return nil, fmt.Errorf("unknown converter %q", spec)
	}
	return conv, nil
}

// Names lists the converter names Lookup accepts, without "choice:".
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
