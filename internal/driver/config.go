package driver

import (
	"crypto/sha256"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"mystdir/internal/directive"
	"mystdir/internal/schemas"
)

// Config controls how documents are parsed.
type Config struct {
	// Registry resolves directive names. Nil means the builtin schemas.
	Registry *schemas.Registry
	// Parse is handed to directive.Parse for every block.
	Parse directive.Options
	// MaxDiagnostics caps each document's bag; 0 means no limit.
	MaxDiagnostics int
	// Jobs bounds ParseDir's parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Timings records per-document phase timings as an info diagnostic.
	Timings bool
	Cache   *DiskCache
	Sink    ProgressSink
	Log     *zerolog.Logger
}

// DefaultConfig validates options against the builtin schemas.
func DefaultConfig() Config {
	return Config{
		Registry: schemas.Builtin(),
		Parse:    directive.DefaultOptions,
	}
}

func (c *Config) registry() *schemas.Registry {
	if c.Registry == nil {
		c.Registry = schemas.Builtin()
	}
	return c.Registry
}

func (c *Config) logger() *zerolog.Logger {
	if c.Log == nil {
		nop := zerolog.Nop()
		c.Log = &nop
	}
	return c.Log
}

// Fingerprint summarizes everything besides the document text that affects
// a parse result: the parse options, the shape of every schema and the
// converter behind each option. Converters built without directive.Named
// are only told apart by type.
func (c *Config) Fingerprint() [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "validate=%t\n", c.Parse.Validate)

	keys := make([]string, 0, len(c.Parse.Additional))
	for k := range c.Parse.Additional {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "additional %q=%#v\n", k, c.Parse.Additional[k])
	}

	reg := c.registry()
	for _, name := range reg.Names() {
		s, _ := reg.Lookup(name)
		fmt.Fprintf(h, "schema %q %d %d %t %t %t %q\n", s.Name, s.RequiredArguments, s.OptionalArguments,
			s.FinalArgumentWhitespace, s.HasContent, s.AcceptAnyOption, s.OptionNames())
		for _, opt := range s.OptionNames() {
			conv := s.OptionSpec[opt]
			id := directive.ConverterName(conv)
			if id == "" {
				id = fmt.Sprintf("%T", conv)
			}
			fmt.Fprintf(h, "option %q %q\n", opt, id)
		}
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
