package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("doc.md", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("doc.md", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("doc.md")
	if !exists || latestID != id2 {
		t.Errorf("expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first version content changed: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.md", []byte("a\r\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("one\r\ntwo\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "one\ntwo\n" {
		t.Errorf("unexpected content %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("expected BOM and CRLF flags, got %b", file.Flags)
	}
}

func TestGetLineAndLineCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		count   int
		lines   map[uint32]string
	}{
		{name: "empty", content: "", count: 0, lines: map[uint32]string{0: "", 1: "", 2: ""}},
		{name: "no trailing newline", content: "a\nb", count: 2, lines: map[uint32]string{1: "a", 2: "b", 3: ""}},
		{name: "trailing newline", content: "a\nb\n", count: 2, lines: map[uint32]string{1: "a", 2: "b", 3: ""}},
		{name: "blank middle line", content: "a\n\nc", count: 3, lines: map[uint32]string{2: "", 3: "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			file := fs.Get(fs.AddVirtual("x.md", []byte(tt.content)))
			if got := file.LineCount(); got != tt.count {
				t.Errorf("LineCount() = %d, want %d", got, tt.count)
			}
			for line, want := range tt.lines {
				if got := file.GetLine(line); got != want {
					t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
				}
			}
		})
	}
}

func TestLineSpanResolvesBack(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.md", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	span := file.LineSpan(2)
	if span.Start != 6 || span.End != 12 {
		t.Fatalf("LineSpan(2) = %+v", span)
	}
	start, end := fs.Resolve(span)
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Errorf("end = %+v, want 2:7", end)
	}

	missing := file.LineSpan(10)
	if !missing.Empty() {
		t.Errorf("expected empty span for missing line, got %+v", missing)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	target := filepath.Join(tmp, "other", "file.md")

	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if want := normalizePath(target); got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "docs", "index.md")

	got, err := RelativePath(target, tmp)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}
	if got != "docs/index.md" {
		t.Fatalf("expected relative path, got %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	if got := a.Cover(Span{File: 1, Start: 5, End: 12}); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover() = %+v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("Cover() across files changed span: %+v", got)
	}
}
