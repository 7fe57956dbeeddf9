package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystdir/internal/diag"
)

func textSchema() *Schema {
	return &Schema{
		Name:              "text",
		OptionalArguments: 1,
		HasContent:        true,
		OptionSpec: map[string]Converter{
			"a": unchanged,
			"b": unchanged,
		},
	}
}

func TestParseFencedOptions(t *testing.T) {
	inv := Invocation{Name: "text", Content: "---\na: 1\nb: two\n---\ncontent", Line: 1}

	res, err := Parse(inv, textSchema(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "two"}, res.Options)
	assert.Equal(t, []string{"content"}, res.Body)
	assert.Equal(t, 4, res.BodyOffset)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []string{}, res.Arguments)
}

func TestParseKeepsTextAfterClosingFence(t *testing.T) {
	inv := Invocation{Name: "text", Content: "---\na: 1\n--- foo\nbody", Line: 1}

	res, err := Parse(inv, textSchema(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1"}, res.Options)
	assert.Equal(t, []string{"foo", "body"}, res.Body)
	assert.Equal(t, 2, res.BodyOffset)
	assert.Empty(t, res.Warnings)
}

func TestParseColonOptionsStripsBlankLine(t *testing.T) {
	inv := Invocation{Name: "text", Content: ":a: 1\n:b: two\n\ncontent"}

	res, err := Parse(inv, textSchema(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "two"}, res.Options)
	assert.Equal(t, []string{"content"}, res.Body)
	assert.Equal(t, 3, res.BodyOffset)
	assert.Empty(t, res.Warnings)
}

func TestParseOnlyOneBlankLineIsStripped(t *testing.T) {
	inv := Invocation{Name: "text", Content: ":a: 1\n\n\ncontent"}

	res, err := Parse(inv, textSchema(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "content"}, res.Body)
	assert.Equal(t, 2, res.BodyOffset)
}

func TestParseBodyOffsetAccountsForEveryLine(t *testing.T) {
	contents := []string{
		"---\na: 1\n---\n\nbody\nmore",
		":a: 1\n:b: 2\nbody",
		"no options\nhere",
		"\nleading blank",
		"---\nunclosed: yes",
		"---\na: 1\n--- tail\nbody",
		"---\na: 1\n--- \nbody",
	}
	for _, content := range contents {
		res, err := Parse(Invocation{Name: "text", Content: content}, textSchema(), DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, len(splitLines(content)), res.BodyOffset+len(res.Body), "content %q", content)
	}
}

func TestParseArgumentsAndOptions(t *testing.T) {
	schema := &Schema{
		Name:                    "figure",
		RequiredArguments:       1,
		FinalArgumentWhitespace: true,
		HasContent:              true,
		OptionSpec:              map[string]Converter{"width": unchanged},
	}
	inv := Invocation{Name: "figure", FirstLine: "images/my fig.png", Content: ":width: 80%\n\nCaption.", Line: 20}

	res, err := Parse(inv, schema, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"images/my fig.png"}, res.Arguments)
	assert.Equal(t, map[string]any{"width": "80%"}, res.Options)
	assert.Equal(t, []string{"Caption."}, res.Body)
	assert.Equal(t, 23, res.BodyLine(inv))
}

func TestParseArityIsFatal(t *testing.T) {
	schema := &Schema{Name: "image", RequiredArguments: 1, OptionSpec: map[string]Converter{"alt": unchanged}}

	res, err := Parse(Invocation{Name: "image", Content: ":alt: x"}, schema, DefaultOptions)
	assert.Nil(t, res)
	var aerr *ArityError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, ArityTooFew, aerr.Kind)

	_, err = Parse(Invocation{Name: "image", FirstLine: "a b"}, schema, DefaultOptions)
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, ArityTooMany, aerr.Kind)
}

func TestParseNoArgumentsPrependsFirstLine(t *testing.T) {
	schemas := []*Schema{
		{Name: "note", HasContent: true},
		{Name: "note", HasContent: true, OptionSpec: map[string]Converter{"class": unchanged}},
	}
	for _, schema := range schemas {
		inv := Invocation{Name: "note", FirstLine: "Inline start", Content: "second line"}
		res, err := Parse(inv, schema, DefaultOptions)
		require.NoError(t, err)
		assert.Equal(t, []string{}, res.Arguments)
		assert.Equal(t, []string{"Inline start", "second line"}, res.Body)
	}
}

func TestParseNoOptionSpecKeepsOptionLookalikes(t *testing.T) {
	schema := &Schema{Name: "code", OptionalArguments: 1, HasContent: true}
	inv := Invocation{Name: "code", FirstLine: "python", Content: "---\nnot: options\n---\nprint()"}

	res, err := Parse(inv, schema, DefaultOptions)
	require.NoError(t, err)
	assert.Empty(t, res.Options)
	assert.Equal(t, []string{"---", "not: options", "---", "print()"}, res.Body)
	assert.Equal(t, 0, res.BodyOffset)
}

func TestParseContentNotPermitted(t *testing.T) {
	schema := &Schema{Name: "rubric", RequiredArguments: 1, FinalArgumentWhitespace: true,
		OptionSpec: map[string]Converter{"class": unchanged}}
	inv := Invocation{Name: "rubric", FirstLine: "Heading", Content: ":class: x\n\nunexpected\nbody", Line: 5}

	res, err := Parse(inv, schema, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"unexpected", "body"}, res.Body)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, diag.DirContentNotAllowed, res.Warnings[0].Code)
	assert.Equal(t, "Has content, but none permitted", res.Warnings[0].Message)
	assert.Equal(t, 8, res.Warnings[0].Line)
}

func TestParseContentNotPermittedOnPrependedLine(t *testing.T) {
	schema := &Schema{Name: "hr"}
	res, err := Parse(Invocation{Name: "hr", FirstLine: "stray", Line: 3}, schema, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []string{"stray"}, res.Body)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 3, res.Warnings[0].Line)
}

func TestParseWarningsKeepOrder(t *testing.T) {
	schema := &Schema{Name: "x", OptionSpec: map[string]Converter{"a": integer, "b": integer}}
	inv := Invocation{Name: "x", Content: ":b: nope\n:zz: 1\n:a: nope\nbody", Line: 2}

	res, err := Parse(inv, schema, DefaultOptions)
	require.NoError(t, err)
	require.Len(t, res.Warnings, 4)
	assert.Contains(t, res.Warnings[0].Message, "'b'")
	assert.Contains(t, res.Warnings[1].Message, "'a'")
	assert.Equal(t, diag.DirUnknownOption, res.Warnings[2].Code)
	assert.Equal(t, diag.DirContentNotAllowed, res.Warnings[3].Code)
}

func TestParseIsDeterministic(t *testing.T) {
	schema := &Schema{
		Name:              "x",
		OptionalArguments: 2,
		HasContent:        true,
		OptionSpec:        map[string]Converter{"a": integer, "b": unchanged, "c": Flag},
	}
	inv := Invocation{
		Name:      "x",
		FirstLine: "one two",
		Content:   ":q: 1\n:a: bad\n:c:\n:z: 2\n:b: fine\n\nbody",
		Line:      1,
	}
	opts := Options{Validate: true, Additional: map[string]any{"y": "1", "b": "under"}}

	first, err := Parse(inv, schema, opts)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Parse(inv, schema, opts)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "Unknown option keys: ['q', 'y', 'z'] (allowed: ['a', 'b', 'c'])", first.Warnings[1].Message)
}

func TestParseRawModeKeepsStructures(t *testing.T) {
	schema := textSchema()
	inv := Invocation{Name: "text", Content: "---\nitems: [1, 2]\n---\nbody"}

	res, err := Parse(inv, schema, Options{Validate: false})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, res.Options["items"])
	assert.Equal(t, []string{"body"}, res.Body)
}
