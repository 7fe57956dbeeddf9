package fuzztests

import (
	"testing"
)

const maxFuzzInput = 64 << 10

var directiveSeeds = []string{
	"",
	"```{note}\n```\n",
	"```{note} Inline title\n:class: tip\n\nBody.\n```\n",
	"```{figure} images/a b.png\n---\nwidth: 80%\nalt: |\n  multi\n  line\n---\nCaption\n```\n",
	"```{code-block} python\n:linenos:\n:emphasize-lines: 1,3\n\nprint('x')\n```\n",
	"```{image}\n```\n",
	"```{list-table} Title\n:header-rows: x\n:widths: 1 2\n```\n",
	"- item\n\n  ```{warning}\n  nested\n  ```\n",
	"> ```{tip}\n> quoted\n> ```\n",
	"```{test-any-options}\n---\na: [1, 2\n---\n```\n",
	"````{note}\n```{tip}\ninner\n```\n````\n",
	"```{unknown} args here\n:k: v\n```\n",
	"```{note}\n:class\n```\n",
	"~~~{math}\n:label: eq\n\\\\frac{1}{2}\n~~~\n",
}

var optionSeeds = []string{
	"",
	"a: 1",
	"a: 'quoted ''x'''\nb: \"esc\\tape\"",
	"code: |-\n  one\n  two\n",
	"caption: >\n  folded\n  text\n\n  para",
	"  a: 1\nb: 2",
	"\ta: tab",
	"a: [1, 2",
	"- a\n- b",
	": empty",
}

func addDocumentSeeds(f *testing.F) {
	for _, s := range directiveSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
