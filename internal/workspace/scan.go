package workspace

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/rainbow/internal/logger"
	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

// Skip reasons reported in Result.Skipped.
const (
	SkipLanguage = "unsupported language"
	SkipTooLarge = "file too large"
)

// Result is the outcome of scanning one file.
type Result struct {
	File    File
	Ranges  *scanner.RangeMap
	Skipped string
	Cached  bool
	Err     error
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Scanner *scanner.Scanner
	Theme   theme.Theme
	// Supports filters files by language id. Nil accepts every language.
	Supports    func(languageID string) bool
	Cache       *Cache
	Logger      *logger.Logger
	Concurrency int
}

// Runner scans files with one scanner and theme.
type Runner struct {
	scanner     *scanner.Scanner
	theme       theme.Theme
	fingerprint string
	supports    func(string) bool
	cache       *Cache
	log         *logger.Logger
	concurrency int
}

// NewRunner builds a Runner. A nil scanner uses default options.
func NewRunner(opts RunnerOptions) *Runner {
	sc := opts.Scanner
	if sc == nil {
		sc = scanner.New(scanner.DefaultOptions())
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		scanner:     sc,
		theme:       opts.Theme,
		fingerprint: Fingerprint(opts.Theme, sc.Options()),
		supports:    opts.Supports,
		cache:       opts.Cache,
		log:         log,
		concurrency: concurrency,
	}
}

// Scan scans files in parallel. Results are returned in the order of files.
// Per-file failures are reported in Result.Err; the returned error is only
// set when ctx is cancelled.
func (r *Runner) Scan(ctx context.Context, files []File) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.ScanFile(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ScanFile scans a single file.
func (r *Runner) ScanFile(f File) Result {
	log := r.log.With("file", f.Path)

	if r.supports != nil && !r.supports(f.Language) {
		log.Debug("skipping file: language " + f.Language + " not enabled")
		return Result{File: f, Skipped: SkipLanguage}
	}

	info, err := os.Stat(f.Path)
	if err != nil {
		return Result{File: f, Err: rainbowerrors.NewScanError(f.Path, err)}
	}
	if info.Size() > int64(r.scanner.Options().MaxFileSize) {
		log.Debug("skipping file: larger than max file size")
		return Result{File: f, Skipped: SkipTooLarge}
	}

	text, err := ReadText(f.Path)
	if err != nil {
		return Result{File: f, Err: rainbowerrors.NewScanError(f.Path, err)}
	}

	return r.ScanText(f, text)
}

// ScanText scans text already loaded for f, consulting the cache.
func (r *Runner) ScanText(f File, text string) Result {
	key := Key(f.Path, text, r.fingerprint)
	if m, ok := r.cache.Get(key); ok {
		return Result{File: f, Ranges: m, Cached: true}
	}

	m := r.scanner.FindClassRanges(text, f.Language, r.theme)
	r.cache.Set(key, m)
	r.log.WithFields(map[string]any{"file": f.Path, "keys": m.Len(), "ranges": m.RangeCount()}).Debug("scanned")
	return Result{File: f, Ranges: m}
}

// Forget drops cached results for path.
func (r *Runner) Forget(path string) {
	r.cache.Forget(path)
}
