package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOptionItems(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []optionItem
	}{
		{
			name: "plain values stay strings",
			src:  "a: 1\nb: two\nc: true",
			want: []optionItem{{"a", "1"}, {"b", "two"}, {"c", "true"}},
		},
		{
			name: "empty value",
			src:  "flag:\nother: x",
			want: []optionItem{{"flag", ""}, {"other", "x"}},
		},
		{
			name: "comments and blank lines",
			src:  "# leading\n\na: 1 # trailing\n\n  # indented comment\nb: x#y",
			want: []optionItem{{"a", "1"}, {"b", "x#y"}},
		},
		{
			name: "quoted values",
			src:  "a: 'it''s'\nb: \"tab\\there\"\nc: ': not a key'",
			want: []optionItem{{"a", "it's"}, {"b", "tab\there"}, {"c", ": not a key"}},
		},
		{
			name: "colon inside value",
			src:  "target: https://example.org/a:b",
			want: []optionItem{{"target", "https://example.org/a:b"}},
		},
		{
			name: "literal block keeps newlines",
			src:  "code: |\n  line one\n    indented\n\n  line three\nnext: x",
			want: []optionItem{{"code", "line one\n  indented\n\nline three\n"}, {"next", "x"}},
		},
		{
			name: "literal block strip chomping",
			src:  "code: |-\n  one\n  two\n\n",
			want: []optionItem{{"code", "one\ntwo"}},
		},
		{
			name: "literal block keep chomping",
			src:  "code: |+\n  one\n\n",
			want: []optionItem{{"code", "one\n\n"}},
		},
		{
			name: "folded block",
			src:  "caption: >\n  one\n  two\n\n  three",
			want: []optionItem{{"caption", "one two\nthree\n"}},
		},
		{
			name: "plain continuation lines fold",
			src:  "alt: a long\n  description\nwidth: 10",
			want: []optionItem{{"alt", "a long description"}, {"width", "10"}},
		},
		{
			name: "indented block as a whole",
			src:  "  a: 1\n  b: 2",
			want: []optionItem{{"a", "1"}, {"b", "2"}},
		},
		{
			name: "repeated key keeps first position",
			src:  "a: 1\nb: 2\na: 3",
			want: []optionItem{{"a", "3"}, {"b", "2"}},
		},
		{
			name: "empty source",
			src:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readOptionItems(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadOptionItemsErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{name: "missing colon", src: "a: 1\nnot an option", line: 2, msg: "expected 'key: value'"},
		{name: "empty key", src: ": value", line: 1, msg: "empty option key"},
		{name: "less indented key", src: "  a: 1\nb: 2", line: 2, msg: "inconsistent indentation"},
		{name: "unterminated single quote", src: "a: 'oops", line: 1, msg: "unterminated single-quoted value"},
		{name: "unterminated double quote", src: "a: \"oops", line: 1, msg: "unterminated double-quoted value"},
		{name: "text after quote", src: "a: 'x' y", line: 1, msg: "unexpected text after quoted value"},
		{name: "text after block indicator", src: "a: | x", line: 1, msg: "unexpected text after block indicator"},
		{name: "bad escape", src: `a: "\q"`, line: 1, msg: `unknown escape sequence \q`},
		{name: "tab indentation", src: "\ta: 1", line: 1, msg: "tabs are not allowed"},
		{name: "dedented block line", src: "a: |\n    one\n  two", line: 3, msg: "less indented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readOptionItems(tt.src)
			require.Error(t, err)
			var rerr *readError
			require.ErrorAs(t, err, &rerr)
			assert.Equal(t, tt.line, rerr.Line)
			assert.Contains(t, rerr.Msg, tt.msg)
		})
	}
}
