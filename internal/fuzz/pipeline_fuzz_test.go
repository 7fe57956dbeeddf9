package fuzztests

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"mystdir/internal/directive"
	"mystdir/internal/driver"
	"mystdir/internal/scan"
	"mystdir/internal/schemas"
	"mystdir/internal/testkit"
)

// parseTimeout bounds a single document; a slower run points at a loop.
const parseTimeout = 5 * time.Second

func FuzzParseDocument(f *testing.F) {
	addDocumentSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		cfg := driver.DefaultConfig()

		done := make(chan *driver.DocumentResult, 1)
		go func() {
			fs, res := driver.ParseSource("fuzz.md", input, &cfg)
			if err := testkit.CheckDocumentInvariants(fs, res); err != nil {
				t.Errorf("invariant violated: %v", err)
			}
			done <- res
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("document parse did not finish within %v", parseTimeout)
		}
	})
}

func FuzzParseInvocationDeterministic(f *testing.F) {
	for _, s := range optionSeeds {
		f.Add("figure", "a b.png", s)
		f.Add("note", "", "---\n"+s+"\n---\nbody")
		f.Add(schemas.AnyOptions, "", ":"+strings.ReplaceAll(s, "\n", "\n:"))
	}
	reg := schemas.Builtin()
	f.Fuzz(func(t *testing.T, name, firstLine, content string) {
		if len(content) > maxFuzzInput {
			content = content[:maxFuzzInput]
		}
		schema, ok := reg.Lookup(name)
		if !ok {
			schema, _ = reg.Lookup("note")
		}
		inv := directive.Invocation{Name: name, FirstLine: firstLine, Content: content, Line: 1}
		for _, opts := range []directive.Options{directive.DefaultOptions, {Validate: false}} {
			first, err1 := directive.Parse(inv, schema, opts)
			second, err2 := directive.Parse(inv, schema, opts)
			if (err1 == nil) != (err2 == nil) {
				t.Fatalf("error changed between runs: %v vs %v", err1, err2)
			}
			// compared as text so NaN option values still match
			if fmt.Sprintf("%#v", first) != fmt.Sprintf("%#v", second) {
				t.Fatalf("results differ between runs:\n%#v\n%#v", first, second)
			}
			if first != nil && first.BodyOffset < 0 {
				t.Fatalf("negative body offset %d", first.BodyOffset)
			}
		}
	})
}

func FuzzScanDocument(f *testing.F) {
	addDocumentSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input)
		for _, inv := range scan.Document(input) {
			if inv.Name == "" || strings.ContainsAny(inv.Name, " \t") {
				t.Fatalf("scanner produced invalid directive name %q", inv.Name)
			}
		}
	})
}
