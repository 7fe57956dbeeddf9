package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mystdir/internal/diag"
	"mystdir/internal/source"
)

// MarkdownExts lists the extensions ParseDir picks up.
var MarkdownExts = []string{".md", ".markdown"}

// IsMarkdown reports whether path has one of MarkdownExts.
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range MarkdownExts {
		if ext == e {
			return true
		}
	}
	return false
}

// ListMarkdownFiles returns every Markdown file under dir, sorted. Hidden
// directories are skipped.
func ListMarkdownFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsMarkdown(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every Markdown document under dir in parallel. Results are
// in file order. A document that cannot be read gets a result with an I/O
// diagnostic; only a cancelled context or a failed directory walk returns an
// error.
func ParseDir(ctx context.Context, dir string, cfg *Config) (*source.FileSet, []DocumentResult, error) {
	files, err := ListMarkdownFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return ParseFiles(ctx, dir, files, cfg)
}

// ParseFiles is ParseDir over an explicit list of paths.
func ParseFiles(ctx context.Context, baseDir string, files []string, cfg *Config) (*source.FileSet, []DocumentResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// resolved before the workers share cfg
	cfg.registry()
	log := cfg.logger()

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(cfg.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// an empty stand-in keeps the path attached to the diagnostic
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.Debug().Int("files", len(files)).Int("jobs", jobs).Str("dir", baseDir).Msg("parsing documents")

	// indices are unique per goroutine, no mutex needed
	results := make([]DocumentResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(cfg.MaxDiagnostics)
				span := source.Span{File: fileIDs[path]}
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, span, "failed to load file: "+loadErr.Error()).Emit()
				results[i] = DocumentResult{Path: path, FileID: span.File, Bag: bag}
				log.Warn().Err(loadErr).Str("path", path).Msg("load failed")
				emit(cfg.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(start)})
				return nil
			}

			emit(cfg.Sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
			res := ParseDocument(fileSet.Get(fileIDs[path]), cfg)
			res.Path = path
			results[i] = *res

			status := StatusDone
			switch {
			case res.Bag.HasErrors():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(cfg.Sink, Event{File: path, Stage: StageParse, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags collects the diagnostics of all results into one bag.
func MergeBags(results []DocumentResult) *diag.Bag {
	out := diag.NewBag(0)
	for i := range results {
		out.Merge(results[i].Bag)
	}
	return out
}
