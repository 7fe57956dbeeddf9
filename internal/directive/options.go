package directive

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"mystdir/internal/diag"
)

// Options controls how an invocation is parsed.
type Options struct {
	// Validate selects validated mode: option values are read as strings and
	// run through the schema converters. When false the option block is
	// decoded as YAML and returned uninterpreted.
	Validate bool
	// Additional options sit beneath the parsed ones; parsed keys win.
	Additional map[string]any
}

// DefaultOptions validates options and adds nothing.
var DefaultOptions = Options{Validate: true}

const (
	msgBadSyntax  = "Invalid options format (bad YAML)"
	msgNotMapping = "Invalid options format (not a dict)"
	msgBadFormat  = "Invalid options format"
)

// ValidateOptions deserializes the option block of split and, in validated
// mode, converts each value with the schema. It never fails: every problem is
// returned as one Warning and processing goes on with the next option.
func ValidateOptions(split Split, schema *Schema, opts Options) (map[string]any, []Warning) {
	if !opts.Validate {
		return decodeRawOptions(split)
	}

	items, err := readOptionItems(split.Source)
	if err != nil {
		problem := err.Error()
		var rerr *readError
		if errors.As(err, &rerr) {
			problem = rerr.Msg
		}
		return map[string]any{}, []Warning{
			newWarning(diag.DirOptionsSyntax, split.Line, "%s: %s", msgBadFormat, problem),
		}
	}

	if schema.AcceptAnyOption {
		options := make(map[string]any, len(items))
		for _, it := range items {
			options[it.Key] = it.Value
		}
		return options, nil
	}

	names, values := mergeOptions(items, opts.Additional)

	var (
		warnings []Warning
		unknown  []string
	)
	options := make(map[string]any, len(names))
	for _, name := range names {
		conv, ok := schema.OptionSpec[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		raw := values[name]
		shown := displayValue(raw)
		arg, err := optionText(raw)
		if err == nil {
			if IsFlag(conv) {
				arg = nil
			}
			shown = "None"
			if arg != nil {
				shown = *arg
			}
			var converted any
			converted, err = conv.Convert(arg)
			if err == nil {
				options[name] = converted
				continue
			}
		}
		warnings = append(warnings, newWarning(diag.DirInvalidOptionValue, split.Line,
			"Invalid option value for %s: %s: %v", pyQuote(name), shown, err))
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)
		warnings = append(warnings, newWarning(diag.DirUnknownOption, split.Line,
			"Unknown option keys: %s (allowed: %s)", pyList(unknown), pyList(schema.OptionNames())))
	}
	return options, warnings
}

// mergeOptions lays parsed items over the additional options. Additional keys
// come first in sorted order, parsed keys follow in document order.
func mergeOptions(items []optionItem, additional map[string]any) ([]string, map[string]any) {
	names := make([]string, 0, len(items)+len(additional))
	values := make(map[string]any, len(items)+len(additional))

	extra := make([]string, 0, len(additional))
	for name := range additional {
		extra = append(extra, name)
	}
	slices.Sort(extra)
	for _, name := range extra {
		names = append(names, name)
		values[name] = additional[name]
	}
	for _, it := range items {
		if _, seen := values[it.Key]; !seen {
			names = append(names, it.Key)
		}
		values[it.Key] = it.Value
	}
	return names, values
}

// optionText normalizes a raw option value to converter input. Empty text,
// nil and true mean "given without value".
func optionText(raw any) (*string, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case bool:
		if v {
			return nil, nil
		}
		s = "false"
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case float64:
		s = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return nil, &ConvertError{Msg: fmt.Sprintf("option is not a string: %T", raw)}
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

func displayValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "None"
	case string:
		return v
	}
	return fmt.Sprint(raw)
}

// decodeRawOptions decodes the option block as YAML without interpreting
// values, for callers that convert lists and nested mappings themselves.
func decodeRawOptions(split Split) (map[string]any, []Warning) {
	if !split.HasSource || strings.TrimSpace(split.Source) == "" {
		return map[string]any{}, nil
	}
	var doc any
	if err := yaml.Unmarshal([]byte(split.Source), &doc); err != nil {
		return map[string]any{}, []Warning{
			newWarning(diag.DirOptionsSyntax, split.Line, "%s: %v", msgBadSyntax, err),
		}
	}
	switch m := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	}
	return map[string]any{}, []Warning{newWarning(diag.DirOptionsNotMapping, split.Line, "%s", msgNotMapping)}
}

// pyList renders names as "['a', 'b']", the form users know from Sphinx
// warnings.
func pyList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pyQuote(n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func pyQuote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
