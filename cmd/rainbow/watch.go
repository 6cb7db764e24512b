package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/logger"
	"github.com/alexisbeaulieu97/rainbow/internal/watch"
	"github.com/alexisbeaulieu97/rainbow/internal/workspace"
)

type watchOptions struct {
	debounce time.Duration
}

func newWatchCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-scan files whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "Quiet period before a re-scan (default: watch.debounce from config)")

	return cmd
}

func runWatch(cmd *cobra.Command, rootFlags *rootFlags, opts *watchOptions, args []string) error {
	app, err := loadApp(cmd, rootFlags)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := newWatchSession(app, roots, cmd.OutOrStdout())

	files, err := workspace.Discover(ctx, roots, workspace.OptionsFromConfig(app.cfg))
	if err != nil {
		return newCommandError("watch", "discovering files", err, "Check the paths and the excludes in your configuration.")
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	session.rescan(ctx, paths)

	debounce := opts.debounce
	if debounce <= 0 {
		debounce = app.cfg.Watch.Debounce
	}
	watcher, err := watch.New(watch.Config{
		Debounce: debounce,
		Relevant: session.relevant,
		SkipDir:  session.skipDir,
		Logger:   app.log,
	})
	if err != nil {
		return newCommandError("watch", "starting the file watcher", err, "")
	}
	defer func() { _ = watcher.Stop() }()

	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			return newCommandError("watch", fmt.Sprintf("watching %s", root), err, "Check that the path exists.")
		}
	}

	coalescer := watch.NewCoalescer(session.rescan)
	batches := watcher.Start()
	app.log.WithFields(map[string]any{"roots": roots, "debounce": debounce.String()}).Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			coalescer.Wait()
			return nil
		case batch, ok := <-batches:
			if !ok {
				coalescer.Wait()
				return nil
			}
			for _, path := range batch.Removed {
				session.forget(path)
			}
			if len(batch.Changed) > 0 {
				coalescer.Trigger(ctx, batch.Changed)
			}
		}
	}
}

// watchSession owns the runner and output of one watch command.
type watchSession struct {
	cfg     *config.Config
	runner  *workspace.Runner
	log     *logger.Logger
	out     io.Writer
	outMu   sync.Mutex
	exclude []string
	roots   []string
}

func newWatchSession(app *appContext, roots []string, out io.Writer) *watchSession {
	abs := make([]string, 0, len(roots))
	for _, root := range roots {
		if p, err := filepath.Abs(root); err == nil {
			abs = append(abs, p)
		}
	}
	return &watchSession{
		cfg: app.cfg,
		runner: workspace.NewRunner(workspace.RunnerOptions{
			Scanner:  app.scanner,
			Theme:    app.theme,
			Supports: app.cfg.SupportsLanguage,
			Cache:    workspace.NewCache(0),
			Logger:   app.log,
		}),
		log:     app.log,
		out:     out,
		exclude: app.cfg.Excludes,
		roots:   abs,
	}
}

// rescan scans paths and prints one summary line per file.
func (s *watchSession) rescan(ctx context.Context, paths []string) {
	files := make([]workspace.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, workspace.File{Path: p, Rel: p, Language: config.LanguageForPath(p)})
	}

	results, err := s.runner.Scan(ctx, files)
	if err != nil {
		s.log.Error(err, "rescan failed")
		return
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	for _, res := range results {
		switch {
		case res.Err != nil:
			s.log.Error(res.Err, "scan failed")
		case res.Skipped != "":
			s.log.Debug("skipped " + res.File.Path + ": " + res.Skipped)
		default:
			fmt.Fprintf(s.out, "%s: %d keys, %d ranges\n", res.File.Path, res.Ranges.Len(), res.Ranges.RangeCount())
		}
	}
}

func (s *watchSession) forget(path string) {
	s.runner.Forget(path)
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, "%s: removed\n", path)
}

// relevant reports whether a changed file should trigger a re-scan.
func (s *watchSession) relevant(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	if isExcluded(s.relative(path), s.exclude) {
		return false
	}
	for _, pattern := range s.cfg.FilePatterns() {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (s *watchSession) skipDir(path string) bool {
	return isExcluded(s.relative(path), s.exclude)
}

// relative returns path relative to the watched root containing it.
func (s *watchSession) relative(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	for _, root := range s.roots {
		rel, err := filepath.Rel(root, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return rel
		}
	}
	return filepath.Base(path)
}

// isExcluded reports whether any element of path equals an exclude name or
// any trailing part of path matches an exclude glob.
func isExcluded(path string, excludes []string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i := range parts {
		suffix := strings.Join(parts[i:], "/")
		for _, ex := range excludes {
			if parts[i] == ex {
				return true
			}
			if ok, _ := doublestar.Match(ex, suffix); ok {
				return true
			}
		}
	}
	return false
}
