package directive

import (
	"slices"
	"strings"
)

// Converter turns the raw text of one option into its typed value. A nil
// argument means the option was given without a value. Converters are shared
// by every parse that uses the schema and must not keep state.
type Converter interface {
	Convert(arg *string) (any, error)
}

// ConverterFunc adapts a plain function to Converter.
type ConverterFunc func(arg *string) (any, error)

// Convert calls f(arg).
func (f ConverterFunc) Convert(arg *string) (any, error) {
	return f(arg)
}

// Named attaches a stable name to c. The name identifies the converter when
// schemas are compared, for instance to decide whether cached parses are
// still valid.
func Named(name string, c Converter) Converter {
	return &namedConverter{name: name, conv: c}
}

type namedConverter struct {
	name string
	conv Converter
}

func (n *namedConverter) Convert(arg *string) (any, error) {
	return n.conv.Convert(arg)
}

func (n *namedConverter) Name() string {
	return n.name
}

// ConverterName returns the name c was given with Named, "flag" for Flag and
// "" for converters without a name.
func ConverterName(c Converter) string {
	if n, ok := c.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

type flagConverter struct{}

func (flagConverter) Name() string {
	return "flag"
}

func (flagConverter) Convert(arg *string) (any, error) {
	if arg != nil && strings.TrimSpace(*arg) != "" {
		return nil, &ConvertError{Msg: "no argument is allowed; " + pyQuote(*arg) + " supplied"}
	}
	return true, nil
}

// Flag is the converter of options that take no value. The validator never
// hands it text, so a flag option always converts to true.
var Flag Converter = flagConverter{}

// IsFlag reports whether c is the Flag converter.
func IsFlag(c Converter) bool {
	_, ok := c.(flagConverter)
	return ok
}

// ConvertError is the error converters return for values they reject.
type ConvertError struct {
	Msg string
}

func (e *ConvertError) Error() string {
	return e.Msg
}

// Schema declares what a directive accepts. It is read-only while parses run.
type Schema struct {
	Name                    string
	RequiredArguments       int
	OptionalArguments       int
	FinalArgumentWhitespace bool
	HasContent              bool
	OptionSpec              map[string]Converter

	// AcceptAnyOption marks the permissive schema used in tests: every option
	// key is kept verbatim, nothing is converted.
	AcceptAnyOption bool
}

// HasArguments reports whether the first line holds arguments.
func (s *Schema) HasArguments() bool {
	return s.RequiredArguments > 0 || s.OptionalArguments > 0
}

// HasOptions reports whether the content may start with an option block.
func (s *Schema) HasOptions() bool {
	return len(s.OptionSpec) > 0 || s.AcceptAnyOption
}

// MaxArguments is the number of argument slots.
func (s *Schema) MaxArguments() int {
	return s.RequiredArguments + s.OptionalArguments
}

// OptionNames returns the declared option names, sorted.
func (s *Schema) OptionNames() []string {
	names := make([]string, 0, len(s.OptionSpec))
	for name := range s.OptionSpec {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
