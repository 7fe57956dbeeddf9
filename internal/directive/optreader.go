package directive

import (
	"fmt"
	"strings"
)

// optionItem is one entry of an option block, in document order.
type optionItem struct {
	Key   string
	Value string
}

// readError is returned by readOptionItems for malformed blocks. Line is
// relative to the option block, starting at 1.
type readError struct {
	Line int
	Msg  string
}

func (e *readError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// readOptionItems reads the restricted option grammar used in validated mode:
//
//	key: plain value
//	key: 'single quoted'
//	key: "double \"quoted\""
//	key: |            (or >, with optional - / + chomping)
//	  indented block
//
// Blank lines and lines starting with '#' are ignored. Every value is a
// string; nothing is coerced to numbers or booleans. A repeated key keeps its
// first position and its last value.
func readOptionItems(src string) ([]optionItem, error) {
	src = strings.TrimSuffix(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	lines := strings.Split(src, "\n")
	r := optionReader{lines: lines, keyIndent: -1}
	for r.pos < len(r.lines) {
		if err := r.entry(); err != nil {
			return nil, err
		}
	}
	return r.items, nil
}

type optionReader struct {
	lines     []string
	pos       int
	keyIndent int
	items     []optionItem
	index     map[string]int
}

func (r *optionReader) fail(line int, format string, args ...any) error {
	return &readError{Line: line + 1, Msg: fmt.Sprintf(format, args...)}
}

func (r *optionReader) entry() error {
	lineNo := r.pos
	raw := r.lines[r.pos]
	r.pos++

	if isBlankOrComment(raw) {
		return nil
	}
	indent := indentOf(raw)
	if strings.Contains(raw[:indent], "\t") {
		return r.fail(lineNo, "tabs are not allowed for indentation")
	}
	switch {
	case r.keyIndent < 0:
		r.keyIndent = indent
	case indent > r.keyIndent:
		return r.fail(lineNo, "unexpected indentation")
	case indent < r.keyIndent:
		return r.fail(lineNo, "inconsistent indentation")
	}

	key, rest, ok := splitKey(raw[indent:])
	if !ok {
		return r.fail(lineNo, "expected 'key: value'")
	}
	if key == "" {
		return r.fail(lineNo, "empty option key")
	}

	value, err := r.value(lineNo, rest)
	if err != nil {
		return err
	}
	r.add(key, value)
	return nil
}

func (r *optionReader) add(key, value string) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[key]; ok {
		r.items[i].Value = value
		return
	}
	r.index[key] = len(r.items)
	r.items = append(r.items, optionItem{Key: key, Value: value})
}

func (r *optionReader) value(lineNo int, rest string) (string, error) {
	rest = strings.TrimSpace(rest)
	switch {
	case rest == "" || strings.HasPrefix(rest, "#"):
		return r.plainContinuation(""), nil
	case rest[0] == '|' || rest[0] == '>':
		return r.blockScalar(lineNo, rest)
	case rest[0] == '\'':
		return singleQuoted(rest, func(msg string) error { return r.fail(lineNo, "%s", msg) })
	case rest[0] == '"':
		return doubleQuoted(rest, func(msg string) error { return r.fail(lineNo, "%s", msg) })
	}
	return r.plainContinuation(stripComment(rest)), nil
}

// plainContinuation folds more-indented lines following a plain scalar into
// it, separated by single spaces.
func (r *optionReader) plainContinuation(first string) string {
	parts := []string{}
	if first != "" {
		parts = append(parts, first)
	}
	for r.pos < len(r.lines) {
		l := r.lines[r.pos]
		if strings.TrimSpace(l) == "" || indentOf(l) <= r.keyIndent {
			break
		}
		parts = append(parts, stripComment(strings.TrimSpace(l)))
		r.pos++
	}
	return strings.Join(parts, " ")
}

func (r *optionReader) blockScalar(lineNo int, header string) (string, error) {
	style := header[0]
	chomp := byte(0)
	tail := header[1:]
	if tail != "" && (tail[0] == '-' || tail[0] == '+') {
		chomp = tail[0]
		tail = tail[1:]
	}
	if t := strings.TrimSpace(tail); t != "" && !strings.HasPrefix(t, "#") {
		return "", r.fail(lineNo, "unexpected text after block indicator: %q", t)
	}

	var body []string
	blockIndent := -1
	for r.pos < len(r.lines) {
		l := r.lines[r.pos]
		if strings.TrimSpace(l) == "" {
			body = append(body, "")
			r.pos++
			continue
		}
		ind := indentOf(l)
		if ind <= r.keyIndent {
			break
		}
		if blockIndent < 0 {
			blockIndent = ind
		}
		if ind < blockIndent {
			return "", r.fail(r.pos, "block line is less indented than the first one")
		}
		body = append(body, l[blockIndent:])
		r.pos++
	}

	// trailing blank lines belong to chomping, not to the text
	trailing := 0
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
		trailing++
	}

	var text string
	if style == '|' {
		text = strings.Join(body, "\n")
	} else {
		text = foldLines(body)
	}
	if len(body) == 0 {
		return "", nil
	}
	switch chomp {
	case '-':
		return text, nil
	case '+':
		return text + strings.Repeat("\n", trailing+1), nil
	}
	return text + "\n", nil
}

// foldLines joins lines with spaces; empty lines become line breaks and
// more-indented lines keep their own line.
func foldLines(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		if i == 0 {
			b.WriteString(l)
			continue
		}
		prev := lines[i-1]
		switch {
		case l == "":
			b.WriteByte('\n')
		case prev == "" || strings.HasPrefix(l, " ") || strings.HasPrefix(prev, " "):
			if prev != "" {
				b.WriteByte('\n')
			}
			b.WriteString(l)
		default:
			b.WriteByte(' ')
			b.WriteString(l)
		}
	}
	return b.String()
}

func singleQuoted(s string, fail func(string) error) (string, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		if err := checkAfterQuote(s[i+1:], fail); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	return "", fail("unterminated single-quoted value")
}

func doubleQuoted(s string, fail func(string) error) (string, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			if err := checkAfterQuote(s[i+1:], fail); err != nil {
				return "", err
			}
			return b.String(), nil
		case '\\':
			if i+1 >= len(s) {
				return "", fail("unterminated escape sequence")
			}
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '0':
				b.WriteByte(0)
			case '\\', '"', '/', ' ':
				b.WriteByte(s[i])
			default:
				return "", fail(fmt.Sprintf("unknown escape sequence \\%c", s[i]))
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", fail("unterminated double-quoted value")
}

func checkAfterQuote(rest string, fail func(string) error) error {
	rest = strings.TrimSpace(rest)
	if rest != "" && !strings.HasPrefix(rest, "#") {
		return fail(fmt.Sprintf("unexpected text after quoted value: %q", rest))
	}
	return nil
}

// splitKey splits "key: value" at the first ':' that is followed by a space
// or ends the line.
func splitKey(s string) (key, rest string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}
		if i+1 == len(s) || s[i+1] == ' ' || s[i+1] == '\t' {
			return strings.TrimSpace(s[:i]), s[i+1:], true
		}
	}
	return "", "", false
}

func stripComment(s string) string {
	if i := strings.Index(s, " #"); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func isBlankOrComment(l string) bool {
	t := strings.TrimSpace(l)
	return t == "" || strings.HasPrefix(t, "#")
}

func indentOf(l string) int {
	return len(l) - len(strings.TrimLeft(l, " \t"))
}
