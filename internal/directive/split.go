package directive

import (
	"strings"
	"unicode/utf8"
)

// Split is the outcome of separating an option block from directive content.
type Split struct {
	// Body is the content left after the option block.
	Body string
	// Source is the option block text, meaningful only when HasSource is set.
	Source    string
	HasSource bool
	// Line is the line reported with option diagnostics.
	Line int
}

// SplitOptions detects an option block at the start of content. Two forms are
// recognised, tried in this order:
//
//	---              :key: value
//	key: value       :other: value
//	---
//	body             body
//
// The fenced form runs to the next line starting with "---" (or to the end of
// content when there is none) and is dedented. The colon form takes every
// consecutive line whose left-trimmed text starts with ':' and drops that
// colon. line is the directive line, 0 when unknown.
func SplitOptions(content string, line int) Split {
	if strings.HasPrefix(content, "---") {
		return splitFenced(content, line)
	}
	if strings.HasPrefix(strings.TrimLeft(content, whitespace), ":") {
		return splitColon(content, line)
	}
	return Split{Body: content, Line: line}
}

func splitFenced(content string, line int) Split {
	if line > 0 {
		// the opening fence; the closing one is deliberately not counted
		line++
	}
	lines := splitLines(content)[1:]

	closing := -1
	for i, l := range lines {
		if isFenceLine(l) {
			closing = i
			break
		}
	}

	var block, body []string
	if closing < 0 {
		block = lines
	} else {
		block = lines[:closing]
		body = lines[closing+1:]
		// the character right after the dash run is dropped; anything past
		// it opens the body
		if rest := strings.TrimLeft(lines[closing], "-"); rest != "" {
			_, n := utf8.DecodeRuneInString(rest)
			body = append([]string{rest[n:]}, body...)
		}
	}
	return Split{
		Body:      strings.Join(body, "\n"),
		Source:    dedent(strings.Join(block, "\n")),
		HasSource: true,
		Line:      line,
	}
}

func splitColon(content string, line int) Split {
	lines := splitLines(content)
	block := make([]string, 0, len(lines))
	n := 0
	for _, l := range lines {
		trimmed := strings.TrimLeft(l, whitespace)
		if !strings.HasPrefix(trimmed, ":") {
			break
		}
		block = append(block, trimmed[1:])
		n++
	}
	return Split{
		Body:      strings.Join(lines[n:], "\n"),
		Source:    strings.Join(block, "\n"),
		HasSource: true,
		Line:      line,
	}
}

func isFenceLine(l string) bool {
	return strings.HasPrefix(l, "---")
}

const whitespace = " \t\n\r\v\f"

// splitLines splits text into lines without their terminators. A trailing
// newline does not produce an empty last line and "" yields no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// dedent removes the whitespace prefix common to all non-blank lines.
// Whitespace-only lines are emptied.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	prefix := ""
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = l[len(prefix):]
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
