// Package convert holds the option converters shared by the builtin
// directive schemas and by schema files.
//
// Every converter receives nil when the option was given without a value.
// Errors are *directive.ConvertError so their text reads the same in
// warnings no matter which converter failed.
package convert

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"mystdir/internal/directive"
)

// Flag marks options that take no value.
var Flag = directive.Flag

var (
	Unchanged         = named("unchanged", unchanged)
	UnchangedRequired = named("unchanged_required", unchangedRequired)
	Path              = named("path", path)
	URI               = named("uri", uri)
	Int               = named("int", integer)
	NonNegativeInt    = named("nonnegative_int", nonNegativeInt)
	PositiveInt       = named("positive_int", positiveInt)
	Float             = named("float", float)
	Percentage        = named("percentage", percentage)
	PositiveIntList   = named("positive_int_list", positiveIntList)
)

func named(name string, f func(arg *string) (any, error)) directive.Converter {
	return directive.Named(name, directive.ConverterFunc(f))
}

func fail(format string, args ...any) error {
	return &directive.ConvertError{Msg: fmt.Sprintf(format, args...)}
}

func required(arg *string) (string, error) {
	if arg == nil {
		return "", fail("argument required but none supplied")
	}
	return *arg, nil
}

func unchanged(arg *string) (any, error) {
	if arg == nil {
		return "", nil
	}
	return *arg, nil
}

func unchangedRequired(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// path joins the lines of a wrapped value after trimming each one.
func path(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for _, l := range strings.Split(s, "\n") {
		b.WriteString(strings.TrimSpace(l))
	}
	return b.String(), nil
}

// uri drops unescaped whitespace; "\ " keeps a literal space.
func uri(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == ' ' {
			b.WriteByte(' ')
			i++
			continue
		}
		if unicode.IsSpace(rune(c)) {
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fail("invalid literal for int() with base 10: %s", quote(s))
	}
	return n, nil
}

func integer(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	return parseInt(s)
}

func nonNegativeInt(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	n, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fail("negative value; must be positive or zero")
	}
	return n, nil
}

func positiveInt(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	n, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fail("negative or zero value; must be positive")
	}
	return n, nil
}

func float(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fail("could not convert string to float: %s", quote(s))
	}
	return f, nil
}

// percentage accepts "50" and "50%".
func percentage(arg *string) (any, error) {
	if arg != nil {
		s := strings.TrimSuffix(strings.TrimSpace(*arg), "%")
		arg = &s
	}
	return nonNegativeInt(arg)
}

// positiveIntList reads integers separated by commas or whitespace.
func positiveIntList(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	var fields []string
	if strings.Contains(s, ",") {
		fields = strings.Split(s, ",")
	} else {
		fields = strings.Fields(s)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f := strings.TrimSpace(f)
		n, err := positiveInt(&f)
		if err != nil {
			return nil, err
		}
		out = append(out, n.(int))
	}
	return out, nil
}

func quote(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
