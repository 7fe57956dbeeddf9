package schemas

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"mystdir/internal/convert"
	"mystdir/internal/diag"
	"mystdir/internal/directive"
)

// FileError describes a problem in a schema file.
type FileError struct {
	Path string
	Code diag.Code
	Msg  string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

type schemaFile struct {
	Directives []schemaEntry `toml:"directive"`
}

type schemaEntry struct {
	Name            string            `toml:"name"`
	Required        int               `toml:"required"`
	Optional        int               `toml:"optional"`
	FinalWhitespace bool              `toml:"final_whitespace"`
	Content         bool              `toml:"content"`
	AcceptAny       bool              `toml:"accept_any"`
	Options         map[string]string `toml:"options"`
}

// LoadFile reads directive schemas from a TOML file:
//
//	[[directive]]
//	name = "youtube"
//	required = 1
//	content = false
//
//	[directive.options]
//	width = "length_or_percentage_or_unitless"
//	align = "choice:left|center|right"
//
// Errors are *FileError.
func LoadFile(path string) ([]*directive.Schema, error) {
	var file schemaFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, &FileError{Path: path, Code: diag.SchInvalidFile, Msg: fmt.Sprintf("failed to parse TOML: %v", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &FileError{Path: path, Code: diag.SchInvalidFile, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}

	out := make([]*directive.Schema, 0, len(file.Directives))
	seen := make(map[string]bool, len(file.Directives))
	for i, e := range file.Directives {
		s, err := e.schema()
		if err != nil {
			err.Path = path
			err.Msg = fmt.Sprintf("directive #%d: %s", i+1, err.Msg)
			return nil, err
		}
		if seen[s.Name] {
			return nil, &FileError{Path: path, Code: diag.SchDuplicateSchema,
				Msg: fmt.Sprintf("directive %q is declared twice", s.Name)}
		}
		seen[s.Name] = true
		out = append(out, s)
	}
	return out, nil
}

func (e schemaEntry) schema() (*directive.Schema, *FileError) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, &FileError{Code: diag.SchInvalidFile, Msg: "missing name"}
	}
	if e.Required < 0 || e.Optional < 0 {
		return nil, &FileError{Code: diag.SchInvalidFile, Msg: fmt.Sprintf("%s: argument counts must not be negative", name)}
	}
	s := &directive.Schema{
		Name:                    name,
		RequiredArguments:       e.Required,
		OptionalArguments:       e.Optional,
		FinalArgumentWhitespace: e.FinalWhitespace,
		HasContent:              e.Content,
		AcceptAnyOption:         e.AcceptAny,
	}
	if len(e.Options) == 0 {
		return s, nil
	}
	keys := make([]string, 0, len(e.Options))
	for k := range e.Options {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	s.OptionSpec = make(map[string]directive.Converter, len(keys))
	for _, k := range keys {
		conv, err := convert.Lookup(e.Options[k])
		if err != nil {
			return nil, &FileError{Code: diag.SchUnknownConvert, Msg: fmt.Sprintf("%s: option %q: %v", name, k, err)}
		}
		s.OptionSpec[k] = conv
	}
	return s, nil
}

// LoadFiles reads every file and registers its schemas, replacing earlier
// ones with the same name. It returns the names that were replaced.
func (r *Registry) LoadFiles(paths ...string) ([]string, error) {
	var replaced []string
	for _, p := range paths {
		list, err := LoadFile(p)
		if err != nil {
			return replaced, err
		}
		for _, s := range list {
			if r.Replace(s) {
				replaced = append(replaced, s.Name)
			}
		}
	}
	return replaced, nil
}
