package directive

import (
	"fmt"
	"strings"
	"unicode"
)

// ArityKind tells which bound of the argument count was violated.
type ArityKind uint8

const (
	ArityTooFew ArityKind = iota + 1
	ArityTooMany
)

// ArityError is the one fatal parse failure: the first line does not hold an
// acceptable number of arguments, so the invocation has no meaning.
type ArityError struct {
	Directive string
	Kind      ArityKind
	Limit     int // required count for ArityTooFew, maximum for ArityTooMany
	Supplied  int
}

func (e *ArityError) Error() string {
	var msg string
	if e.Kind == ArityTooFew {
		msg = fmt.Sprintf("%d argument(s) required, %d supplied", e.Limit, e.Supplied)
	} else {
		msg = fmt.Sprintf("maximum %d argument(s) allowed, %d supplied", e.Limit, e.Supplied)
	}
	if e.Directive != "" {
		return fmt.Sprintf("directive %q: %s", e.Directive, msg)
	}
	return msg
}

// ParseArguments splits firstLine on whitespace into the schema's argument
// slots. With FinalArgumentWhitespace the last slot takes the rest of the
// line verbatim when more words than slots were given.
func ParseArguments(firstLine string, schema *Schema) ([]string, error) {
	args := strings.Fields(firstLine)
	if len(args) < schema.RequiredArguments {
		return nil, &ArityError{
			Directive: schema.Name,
			Kind:      ArityTooFew,
			Limit:     schema.RequiredArguments,
			Supplied:  len(args),
		}
	}
	limit := schema.MaxArguments()
	if len(args) > limit {
		if !schema.FinalArgumentWhitespace || limit == 0 {
			return nil, &ArityError{
				Directive: schema.Name,
				Kind:      ArityTooMany,
				Limit:     limit,
				Supplied:  len(args),
			}
		}
		return splitN(firstLine, limit), nil
	}
	if args == nil {
		args = []string{}
	}
	return args, nil
}

// splitN splits on whitespace runs into at most n fields; the last field is
// the remainder of text starting at its first word, trailing space included.
func splitN(text string, n int) []string {
	out := make([]string, 0, n)
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	for len(out) < n-1 && rest != "" {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			break
		}
		out = append(out, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	if rest != "" {
		out = append(out, rest)
	}
	return out
}
