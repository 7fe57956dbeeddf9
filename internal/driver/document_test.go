package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystdir/internal/diag"
	"mystdir/internal/directive"
)

const sample = "# Guide\n" +
	"\n" +
	"```{note} Remember this\n" +
	"and this.\n" +
	"```\n" +
	"\n" +
	"```{figure} img.png\n" +
	":width: 50%\n" +
	":bogus: 1\n" +
	"\n" +
	"Caption.\n" +
	"```\n" +
	"\n" +
	"```{image}\n" +
	"```\n" +
	"\n" +
	"```{nosuch}\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"func main() {}\n" +
	"```\n"

func TestParseSource(t *testing.T) {
	cfg := DefaultConfig()
	fs, res := ParseSource("guide.md", []byte(sample), &cfg)

	require.Len(t, res.Directives, 2)
	note := res.Directives[0]
	assert.Equal(t, "note", note.Name)
	assert.Equal(t, 3, note.Line)
	assert.Equal(t, []string{"Remember this", "and this."}, note.Body)
	assert.Equal(t, map[string]any{}, note.Options)

	fig := res.Directives[1]
	assert.Equal(t, "figure", fig.Name)
	assert.Equal(t, []string{"img.png"}, fig.Arguments)
	assert.Equal(t, map[string]any{"width": "50%"}, fig.Options)
	assert.Equal(t, []string{"Caption."}, fig.Body)
	assert.Equal(t, 11, fig.BodyLine)

	items := res.Bag.Items()
	require.Len(t, items, 3)
	assert.Equal(t, diag.DirUnknownOption, items[0].Code)
	assert.Equal(t, diag.SevWarning, items[0].Severity)
	assert.Equal(t, diag.DirArity, items[1].Code)
	assert.Equal(t, diag.SevError, items[1].Severity)
	assert.Equal(t, `directive "image": 1 argument(s) required, 0 supplied`, items[1].Message)
	assert.Equal(t, diag.DirUnknownDirective, items[2].Code)
	assert.Equal(t, "Unknown directive type: 'nosuch'", items[2].Message)

	start, _ := fs.Resolve(items[0].Primary)
	assert.EqualValues(t, 7, start.Line)
	start, _ = fs.Resolve(items[2].Primary)
	assert.EqualValues(t, 17, start.Line)
	assert.True(t, res.Bag.HasErrors())
}

func TestParseSourceRawOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parse = directive.Options{Validate: false}
	_, res := ParseSource("raw.md", []byte("```{figure} a.png\n---\nwidth: 10\nextra: [1, 2]\n---\n```\n"), &cfg)

	require.Len(t, res.Directives, 1)
	assert.Equal(t, map[string]any{"width": 10, "extra": []any{1, 2}}, res.Directives[0].Options)
	assert.Zero(t, res.Bag.Len())
}

func TestParseSourceTimings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timings = true
	cfg.MaxDiagnostics = 1
	_, res := ParseSource("t.md", []byte("```{nosuch}\n```\n"), &cfg)

	require.NotNil(t, res.Timing)
	assert.Len(t, res.Timing.Phases, 2)
	items := res.Bag.Items()
	require.Len(t, items, 2)
	assert.Equal(t, diag.ObsTimings, items[1].Code)
	require.Len(t, items[1].Notes, 1)
	assert.Contains(t, items[1].Notes[0].Msg, `"kind":"document"`)
}

func TestParseFileMissing(t *testing.T) {
	cfg := DefaultConfig()
	_, _, err := ParseFile("does/not/exist.md", &cfg)
	assert.Error(t, err)
}

func TestFingerprintTracksConfig(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Parse = directive.Options{Validate: false}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := DefaultConfig()
	c.Registry.Replace(&directive.Schema{Name: "note"})
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
