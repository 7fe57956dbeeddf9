package convert

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/unicode/norm"

	"mystdir/internal/directive"
)

var (
	ClassOption = named("class_option", classOption)
	Encoding    = named("encoding", encoding)
)

// classOption splits a value into class names, each made into an identifier.
func classOption(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, word := range strings.Fields(s) {
		id := MakeID(word)
		if id == "" {
			return nil, fail("cannot make %q into a class name", word)
		}
		names = append(names, id)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// MakeID turns text into an identifier: lower case ASCII letters and digits
// joined by single hyphens, starting with a letter. Accented letters lose
// their marks; other characters are dropped.
func MakeID(text string) string {
	decomposed := norm.NFKD.String(strings.ToLower(text))
	var b strings.Builder
	pendingHyphen := false
	for _, r := range decomposed {
		switch {
		case r > unicode.MaxASCII:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if b.Len() == 0 && !(r >= 'a' && r <= 'z') {
				continue
			}
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}

// Choice accepts one of values, compared case-insensitively.
func Choice(values ...string) directive.Converter {
	allowed := append([]string(nil), values...)
	return named("choice:"+strings.Join(allowed, "|"), func(arg *string) (any, error) {
		if arg == nil {
			return nil, fail("must supply an argument; choose from %s", formatValues(allowed))
		}
		v := strings.ToLower(strings.TrimSpace(*arg))
		for _, a := range allowed {
			if v == a {
				return v, nil
			}
		}
		return nil, fail("%q unknown; choose from %s", *arg, formatValues(allowed))
	})
}

func formatValues(values []string) string {
	if len(values) == 0 {
		return `""`
	}
	quoted := make([]string, len(values)-1)
	for i, v := range values[:len(values)-1] {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	if len(quoted) == 0 {
		return fmt.Sprintf("%q", values[0])
	}
	return fmt.Sprintf("%s, or %q", strings.Join(quoted, ", "), values[len(values)-1])
}

// encoding accepts any name known to the WHATWG encoding index.
func encoding(arg *string) (any, error) {
	s, err := required(arg)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(s)
	if _, err := htmlindex.Get(name); err != nil {
		return nil, fail("unknown encoding: %q", name)
	}
	return name, nil
}
