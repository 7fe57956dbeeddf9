package schemas

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mystdir/internal/diag"
	"mystdir/internal/directive"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&directive.Schema{Name: "b"}))
	require.NoError(t, r.Register(&directive.Schema{Name: "a"}))

	assert.Error(t, r.Register(&directive.Schema{Name: "a"}))
	assert.Error(t, r.Register(&directive.Schema{}))
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, 2, r.Len())

	s, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a", s.Name)
	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.True(t, r.Replace(&directive.Schema{Name: "a", HasContent: true}))
	assert.False(t, r.Replace(&directive.Schema{Name: "c"}))
	s, _ = r.Lookup("a")
	assert.True(t, s.HasContent)
}

func TestRegistryConcurrentLookups(t *testing.T) {
	r := Builtin()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, name := range r.Names() {
				_, ok := r.Lookup(name)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestBuiltin(t *testing.T) {
	r := Builtin()
	assert.Equal(t, 38, r.Len())

	note, ok := r.Lookup("note")
	require.True(t, ok)
	assert.False(t, note.HasArguments())
	assert.True(t, note.HasContent)
	assert.Equal(t, []string{"class", "name"}, note.OptionNames())

	anyOpts, ok := r.Lookup(AnyOptions)
	require.True(t, ok)
	assert.True(t, anyOpts.AcceptAnyOption)

	fig, ok := r.Lookup("figure")
	require.True(t, ok)
	assert.Contains(t, fig.OptionNames(), "figwidth")
	img, _ := r.Lookup("image")
	assert.NotContains(t, img.OptionNames(), "figwidth")
}

func TestBuiltinFigureParses(t *testing.T) {
	fig, _ := Builtin().Lookup("figure")
	inv := directive.Invocation{
		Name:      "figure",
		FirstLine: "img.png",
		Content:   ":width: 80%\n:align: Center\n:class: Wide Shot\n\nCaption",
		Line:      1,
	}
	res, err := directive.Parse(inv, fig, directive.DefaultOptions)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, map[string]any{
		"width": "80%",
		"align": "center",
		"class": []string{"wide", "shot"},
	}, res.Options)
	assert.Equal(t, []string{"Caption"}, res.Body)
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemas.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
[[directive]]
name = "youtube"
required = 1
final_whitespace = true

[directive.options]
width = "length_or_percentage_or_unitless"
align = "choice:left|center|right"
autoplay = "flag"

[[directive]]
name = "raw-html"
content = true
accept_any = true
`)
	list, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, list, 2)

	yt := list[0]
	assert.Equal(t, "youtube", yt.Name)
	assert.Equal(t, 1, yt.RequiredArguments)
	assert.True(t, yt.FinalArgumentWhitespace)
	assert.False(t, yt.HasContent)
	assert.Equal(t, []string{"align", "autoplay", "width"}, yt.OptionNames())
	assert.True(t, directive.IsFlag(yt.OptionSpec["autoplay"]))

	assert.True(t, list[1].AcceptAnyOption)
	assert.True(t, list[1].HasContent)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    diag.Code
		msg     string
	}{
		{"bad toml", "[[directive]\n", diag.SchInvalidFile, "failed to parse TOML"},
		{"unknown key", "[[directive]]\nname = \"x\"\ncolour = 1\n", diag.SchInvalidFile, "unknown keys: directive.colour"},
		{"missing name", "[[directive]]\nrequired = 1\n", diag.SchInvalidFile, "missing name"},
		{"negative", "[[directive]]\nname = \"x\"\noptional = -1\n", diag.SchInvalidFile, "must not be negative"},
		{"bad converter", "[[directive]]\nname = \"x\"\n[directive.options]\na = \"wat\"\n", diag.SchUnknownConvert, `unknown converter "wat"`},
		{"duplicate", "[[directive]]\nname = \"x\"\n[[directive]]\nname = \"x\"\n", diag.SchDuplicateSchema, "declared twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			_, err := LoadFile(path)
			var ferr *FileError
			require.ErrorAs(t, err, &ferr)
			assert.Equal(t, tt.code, ferr.Code)
			assert.Equal(t, path, ferr.Path)
			assert.Contains(t, ferr.Msg, tt.msg)
		})
	}
}

func TestLoadFilesReplacesBuiltins(t *testing.T) {
	path := writeFile(t, "[[directive]]\nname = \"note\"\ncontent = false\n")
	r := Builtin()

	replaced, err := r.LoadFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, replaced)
	note, _ := r.Lookup("note")
	assert.False(t, note.HasContent)
}
