// Package scan finds directive blocks in a Markdown document.
//
// A directive block is a fenced code block whose info string starts with a
// braced name:
//
//	```{note} Optional first line
//	content
//	```
//
// Fenced blocks with a plain language are ordinary code and are skipped.
package scan

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"mystdir/internal/directive"
)

var md = goldmark.New()

// Document returns the directive invocations of src in document order,
// including blocks nested in lists and block quotes.
func Document(src []byte) []directive.Invocation {
	root := md.Parser().Parse(text.NewReader(src))
	var out []directive.Invocation
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || block.Info == nil {
			return ast.WalkContinue, nil
		}
		info := block.Info.Segment
		name, rest, ok := ParseInfo(string(info.Value(src)))
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		out = append(out, directive.Invocation{
			Name:      name,
			FirstLine: rest,
			Content:   rawLines(block, src),
			Line:      1 + bytes.Count(src[:info.Start], []byte{'\n'}),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// ParseInfo splits a fence info string of the form "{name} rest".
func ParseInfo(info string) (name, rest string, ok bool) {
	info = strings.TrimSpace(info)
	if !strings.HasPrefix(info, "{") {
		return "", "", false
	}
	end := strings.IndexByte(info, '}')
	if end < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(info[1:end])
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", "", false
	}
	return name, strings.TrimSpace(info[end+1:]), true
}

func rawLines(n ast.Node, src []byte) string {
	lines := n.Lines()
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.WriteString(strings.Repeat(" ", seg.Padding))
		b.Write(seg.Value(src))
	}
	out := b.String()
	if trimmed, ok := strings.CutSuffix(out, "\r\n"); ok {
		return trimmed
	}
	return strings.TrimSuffix(out, "\n")
}
