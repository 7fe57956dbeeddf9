// Package testkit holds checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mystdir/internal/driver"
	"mystdir/internal/source"
)

// CheckDocumentInvariants runs a minimal set of invariants on a parsed
// document:
// 1) every diagnostic span lies inside the document content
// 2) directives are in document order and start on an existing line
// 3) a body line, when known, comes after its directive's opening line
func CheckDocumentInvariants(fs *source.FileSet, res *driver.DocumentResult) error {
	if fs == nil || res == nil {
		return fmt.Errorf("nil file set or result")
	}
	if int(res.FileID) >= fs.Len() {
		return fmt.Errorf("result file id %d not in file set", res.FileID)
	}
	file := fs.Get(res.FileID)
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) diagnostic spans
	for _, d := range res.Bag.Items() {
		sp := d.Primary
		if sp.File != file.ID {
			return fmt.Errorf("diagnostic %s points to file %d, want %d", d.Code.ID(), sp.File, file.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("diagnostic %s span %v outside content of %d bytes", d.Code.ID(), sp, lenContent)
		}
	}

	// 2) and 3) directive lines
	lines := file.LineCount()
	prev := 0
	for _, d := range res.Directives {
		if d.Line < 1 || d.Line > lines {
			return fmt.Errorf("directive %q at line %d outside 1..%d", d.Name, d.Line, lines)
		}
		if d.Line < prev {
			return fmt.Errorf("directive %q at line %d precedes line %d", d.Name, d.Line, prev)
		}
		prev = d.Line
		if d.BodyLine != 0 && d.BodyLine <= d.Line {
			return fmt.Errorf("directive %q body line %d not after opening line %d", d.Name, d.BodyLine, d.Line)
		}
		if d.BodyOffset < 0 {
			return fmt.Errorf("directive %q has negative body offset %d", d.Name, d.BodyOffset)
		}
	}
	return nil
}
