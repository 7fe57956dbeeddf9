package directive

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystdir/internal/diag"
)

var (
	unchanged = ConverterFunc(func(arg *string) (any, error) {
		if arg == nil {
			return "", nil
		}
		return *arg, nil
	})
	integer = ConverterFunc(func(arg *string) (any, error) {
		if arg == nil {
			return nil, errors.New("argument required but none supplied")
		}
		return strconv.Atoi(*arg)
	})
	recordArg = func(seen *[]*string) Converter {
		return ConverterFunc(func(arg *string) (any, error) {
			*seen = append(*seen, arg)
			return "ok", nil
		})
	}
)

func testSchema() *Schema {
	return &Schema{
		Name:       "test",
		HasContent: true,
		OptionSpec: map[string]Converter{
			"a": integer,
			"b": unchanged,
		},
	}
}

func colon(src string, line int) Split {
	return Split{Source: src, HasSource: true, Line: line}
}

func TestValidateOptionsConvertsKnownOptions(t *testing.T) {
	options, warnings := ValidateOptions(colon("a: 1\nb: two", 4), testSchema(), DefaultOptions)
	assert.Empty(t, warnings)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, options)
}

func TestValidateOptionsUnknownKeysFormOneWarning(t *testing.T) {
	options, warnings := ValidateOptions(colon("d: 4\na: 1\nc: 3", 9), testSchema(), DefaultOptions)

	require.Len(t, warnings, 1)
	assert.Equal(t, diag.DirUnknownOption, warnings[0].Code)
	assert.Equal(t, "Unknown option keys: ['c', 'd'] (allowed: ['a', 'b'])", warnings[0].Message)
	assert.Equal(t, 9, warnings[0].Line)
	assert.Equal(t, map[string]any{"a": 1}, options)
}

func TestValidateOptionsConverterFailureIsOmitted(t *testing.T) {
	options, warnings := ValidateOptions(colon("a: x\nb: kept", 2), testSchema(), DefaultOptions)

	require.Len(t, warnings, 1)
	assert.Equal(t, diag.DirInvalidOptionValue, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "Invalid option value for 'a': x: ")
	assert.Contains(t, warnings[0].Message, "invalid syntax")
	assert.NotContains(t, options, "a")
	assert.Equal(t, "kept", options["b"])
}

func TestValidateOptionsFailureShowsNormalizedValue(t *testing.T) {
	_, warnings := ValidateOptions(colon("a:", 0), testSchema(), DefaultOptions)

	require.Len(t, warnings, 1)
	assert.Equal(t, "Invalid option value for 'a': None: argument required but none supplied", warnings[0].Message)
}

func TestValidateOptionsEmptyValueIsAbsent(t *testing.T) {
	var seen []*string
	schema := &Schema{OptionSpec: map[string]Converter{"x": recordArg(&seen), "y": recordArg(&seen)}}

	_, warnings := ValidateOptions(colon("x:\ny: text", 0), schema, DefaultOptions)
	require.Empty(t, warnings)
	require.Len(t, seen, 2)
	assert.Nil(t, seen[0])
	require.NotNil(t, seen[1])
	assert.Equal(t, "text", *seen[1])
}

func TestValidateOptionsFlagIgnoresText(t *testing.T) {
	schema := &Schema{OptionSpec: map[string]Converter{"nowrap": Flag}}

	options, warnings := ValidateOptions(colon("nowrap: yes please", 0), schema, DefaultOptions)
	assert.Empty(t, warnings)
	assert.Equal(t, map[string]any{"nowrap": true}, options)
}

func TestValidateOptionsAdditionalSitBeneath(t *testing.T) {
	opts := Options{
		Validate:   true,
		Additional: map[string]any{"a": "5", "b": "extra", "zzz": "unknown"},
	}
	options, warnings := ValidateOptions(colon("b: parsed", 0), testSchema(), opts)

	assert.Equal(t, map[string]any{"a": 5, "b": "parsed"}, options)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Unknown option keys: ['zzz'] (allowed: ['a', 'b'])", warnings[0].Message)
}

func TestValidateOptionsAdditionalNonStringValues(t *testing.T) {
	opts := Options{
		Validate:   true,
		Additional: map[string]any{"a": 7, "b": true, "c": []string{"x"}},
	}
	schema := &Schema{OptionSpec: map[string]Converter{"a": integer, "b": unchanged, "c": unchanged}}

	options, warnings := ValidateOptions(Split{}, schema, opts)
	assert.Equal(t, map[string]any{"a": 7, "b": ""}, options)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "Invalid option value for 'c'")
	assert.Contains(t, warnings[0].Message, "option is not a string")
}

func TestValidateOptionsBadSyntax(t *testing.T) {
	options, warnings := ValidateOptions(colon("a: 1\nbroken", 12), testSchema(), DefaultOptions)

	assert.Empty(t, options)
	require.Len(t, warnings, 1)
	assert.Equal(t, diag.DirOptionsSyntax, warnings[0].Code)
	assert.Equal(t, 12, warnings[0].Line)
	assert.Equal(t, "Invalid options format: expected 'key: value'", warnings[0].Message)
}

func TestValidateOptionsAcceptAnyOption(t *testing.T) {
	schema := &Schema{Name: "test-any-options", AcceptAnyOption: true}
	opts := Options{Validate: true, Additional: map[string]any{"ignored": "x"}}

	options, warnings := ValidateOptions(colon("whatever: 1\nelse: two", 0), schema, opts)
	assert.Empty(t, warnings)
	assert.Equal(t, map[string]any{"whatever": "1", "else": "two"}, options)
}

func TestValidateOptionsRawMode(t *testing.T) {
	raw := Options{Validate: false}

	t.Run("typed values are kept", func(t *testing.T) {
		options, warnings := ValidateOptions(colon("a: 1\nitems:\n  - x\n  - y\nnested: {k: v}", 0), testSchema(), raw)
		assert.Empty(t, warnings)
		assert.Equal(t, 1, options["a"])
		assert.Equal(t, []any{"x", "y"}, options["items"])
		assert.Equal(t, map[string]any{"k": "v"}, options["nested"])
	})

	t.Run("unknown keys are not checked", func(t *testing.T) {
		options, warnings := ValidateOptions(colon("zzz: 1", 0), testSchema(), raw)
		assert.Empty(t, warnings)
		assert.Equal(t, map[string]any{"zzz": 1}, options)
	})

	t.Run("not a mapping", func(t *testing.T) {
		options, warnings := ValidateOptions(colon("- a\n- b", 3), testSchema(), raw)
		assert.Empty(t, options)
		require.Len(t, warnings, 1)
		assert.Equal(t, diag.DirOptionsNotMapping, warnings[0].Code)
		assert.Equal(t, "Invalid options format (not a dict)", warnings[0].Message)
		assert.Equal(t, 3, warnings[0].Line)
	})

	t.Run("bad yaml", func(t *testing.T) {
		options, warnings := ValidateOptions(colon("a: [1, 2", 3), testSchema(), raw)
		assert.Empty(t, options)
		require.Len(t, warnings, 1)
		assert.Equal(t, diag.DirOptionsSyntax, warnings[0].Code)
		assert.True(t, strings.HasPrefix(warnings[0].Message, "Invalid options format (bad YAML)"), warnings[0].Message)
	})

	t.Run("falsy documents are not mappings", func(t *testing.T) {
		for _, src := range []string{"[]", "0", "false", "''"} {
			options, warnings := ValidateOptions(colon(src, 2), testSchema(), raw)
			assert.Empty(t, options, src)
			require.Len(t, warnings, 1, src)
			assert.Equal(t, diag.DirOptionsNotMapping, warnings[0].Code, src)
		}
	})

	t.Run("null document is empty", func(t *testing.T) {
		options, warnings := ValidateOptions(colon("~", 2), testSchema(), raw)
		assert.Empty(t, warnings)
		assert.Equal(t, map[string]any{}, options)
	})

	t.Run("absent block", func(t *testing.T) {
		options, warnings := ValidateOptions(Split{Body: "text"}, testSchema(), raw)
		assert.Empty(t, warnings)
		assert.Equal(t, map[string]any{}, options)
	})
}

func TestPyList(t *testing.T) {
	assert.Equal(t, "[]", pyList(nil))
	assert.Equal(t, "['a', 'b']", pyList([]string{"a", "b"}))
	assert.Equal(t, `["it's"]`, pyList([]string{"it's"}))
}
