package driver

import (
	"fmt"
	"time"

	"fortio.org/safecast"

	"mystdir/internal/diag"
	"mystdir/internal/directive"
	"mystdir/internal/observ"
	"mystdir/internal/scan"
	"mystdir/internal/source"
)

// Directive is one successfully parsed directive block.
type Directive struct {
	Name       string         `json:"name" msgpack:"name"`
	Line       int            `json:"line" msgpack:"line"`
	BodyLine   int            `json:"body_line" msgpack:"body_line"`
	Arguments  []string       `json:"arguments" msgpack:"arguments"`
	Options    map[string]any `json:"options" msgpack:"options"`
	Body       []string       `json:"body" msgpack:"body"`
	BodyOffset int            `json:"body_offset" msgpack:"body_offset"`
}

// DocumentResult holds the directives and diagnostics of one document.
type DocumentResult struct {
	Path       string
	FileID     source.FileID
	Directives []Directive
	Bag        *diag.Bag
	Cached     bool
	Timing     *observ.Report
}

// lineDiag is a diagnostic before it is bound to a span; the cache stores
// diagnostics in this form.
type lineDiag struct {
	Severity diag.Severity `msgpack:"severity"`
	Code     diag.Code     `msgpack:"code"`
	Message  string        `msgpack:"message"`
	Line     int           `msgpack:"line"`
}

func (d lineDiag) bind(file *source.File) *diag.Diagnostic {
	line, err := safecast.Conv[uint32](d.Line)
	if err != nil {
		line = 0
	}
	return diag.New(d.Severity, d.Code, file.LineSpan(line), d.Message)
}

// ParseDocument scans file for directive blocks and parses each against the
// registry. Unknown directives and argument count errors are reported in
// the bag; the other blocks are still parsed.
func ParseDocument(file *source.File, cfg *Config) *DocumentResult {
	log := cfg.logger()
	res := &DocumentResult{
		Path:   file.Path,
		FileID: file.ID,
		Bag:    diag.NewBag(cfg.MaxDiagnostics),
	}

	var key Digest
	if cfg.Cache != nil {
		key = CacheKey(file.Hash, cfg.Fingerprint())
		var payload DiskPayload
		hit, err := cfg.Cache.Get(key, &payload)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("path", file.Path).Msg("cache read failed")
		case hit && payload.Schema == diskCacheSchemaVersion:
			log.Debug().Str("path", file.Path).Msg("cache hit")
			res.Directives = payload.Directives
			for _, d := range payload.Diags {
				res.Bag.Add(d.bind(file))
			}
			res.Cached = true
			return res
		}
	}

	timer := observ.NewTimer()
	idx := timer.Begin("scan")
	invocations := scan.Document(file.Content)
	timer.End(idx, fmt.Sprintf("%d blocks", len(invocations)))

	idx = timer.Begin("parse")
	diags := parseInvocations(invocations, cfg, res)
	timer.End(idx, "")
	for _, d := range diags {
		res.Bag.Add(d.bind(file))
	}
	log.Debug().
		Str("path", file.Path).
		Int("directives", len(res.Directives)).
		Int("diagnostics", len(diags)).
		Msg("parsed document")

	if cfg.Cache != nil {
		payload := &DiskPayload{
			Schema:     diskCacheSchemaVersion,
			Path:       file.Path,
			Directives: res.Directives,
			Diags:      diags,
		}
		if err := cfg.Cache.Put(key, payload); err != nil {
			log.Warn().Err(err).Str("path", file.Path).Msg("cache write failed")
			diag.ReportWarning(diag.BagReporter{Bag: res.Bag}, diag.IOCacheError, source.Span{File: file.ID}, "failed to cache result: "+err.Error()).
				WithNote(source.Span{File: file.ID}, "cache directory: "+cfg.Cache.Dir()).
				Emit()
		}
	}

	if cfg.Timings {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(res.Bag, file, timingPayload{Kind: "document", Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	return res
}

func parseInvocations(invocations []directive.Invocation, cfg *Config, res *DocumentResult) []lineDiag {
	var diags []lineDiag
	reg := cfg.registry()
	for _, inv := range invocations {
		schema, ok := reg.Lookup(inv.Name)
		if !ok {
			diags = append(diags, lineDiag{
				Severity: diag.SevWarning,
				Code:     diag.DirUnknownDirective,
				Message:  fmt.Sprintf("Unknown directive type: '%s'", inv.Name),
				Line:     inv.Line,
			})
			continue
		}

		start := time.Now()
		parsed, err := directive.Parse(inv, schema, cfg.Parse)
		cfg.logger().Trace().Str("directive", inv.Name).Dur("elapsed", time.Since(start)).Msg("parsed block")
		if err != nil {
			diags = append(diags, lineDiag{
				Severity: diag.SevError,
				Code:     diag.DirArity,
				Message:  err.Error(),
				Line:     inv.Line,
			})
			continue
		}

		for _, w := range parsed.Warnings {
			line := w.Line
			if line <= 0 {
				line = inv.Line
			}
			diags = append(diags, lineDiag{
				Severity: diag.SevWarning,
				Code:     w.Code,
				Message:  w.Message,
				Line:     line,
			})
		}
		res.Directives = append(res.Directives, Directive{
			Name:       inv.Name,
			Line:       inv.Line,
			BodyLine:   parsed.BodyLine(inv),
			Arguments:  parsed.Arguments,
			Options:    parsed.Options,
			Body:       parsed.Body,
			BodyOffset: parsed.BodyOffset,
		})
	}
	return diags
}

// ParseFile loads path into a new file set and parses it.
func ParseFile(path string, cfg *Config) (*source.FileSet, *DocumentResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fs, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return fs, ParseDocument(fs.Get(id), cfg), nil
}

// ParseSource parses an in-memory document, such as standard input.
func ParseSource(name string, content []byte, cfg *Config) (*source.FileSet, *DocumentResult) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return fs, ParseDocument(fs.Get(id), cfg)
}
