// Package workspace finds source files on disk and runs the class scanner
// over them.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
)

// File is a source file selected for scanning.
type File struct {
	Path     string
	Rel      string
	Language string
}

// DiscoverOptions controls which files Discover returns.
type DiscoverOptions struct {
	// Patterns are globs matched against the base name, e.g. "*.tsx".
	Patterns []string
	// Excludes are directory or file names, or doublestar globs matched
	// against the slash-separated path relative to the walked root.
	Excludes []string
	// NoGitignore disables .gitignore handling.
	NoGitignore bool
}

// OptionsFromConfig derives discovery options from cfg.
func OptionsFromConfig(cfg *config.Config) DiscoverOptions {
	return DiscoverOptions{
		Patterns: cfg.FilePatterns(),
		Excludes: cfg.Excludes,
	}
}

// Discover expands roots into the files to scan. Files named directly are
// always returned; directories are walked and filtered. The result is sorted
// by path and free of duplicates.
func Discover(ctx context.Context, roots []string, opts DiscoverOptions) ([]File, error) {
	for _, p := range append(append([]string(nil), opts.Patterns...), opts.Excludes...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid pattern %q", p)
		}
	}

	seen := make(map[string]struct{})
	var files []File
	add := func(path, rel string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, File{Path: path, Rel: filepath.ToSlash(rel), Language: config.LanguageForPath(path)})
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root), filepath.Base(root))
			continue
		}

		if err := walk(ctx, filepath.Clean(root), opts, add); err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func walk(ctx context.Context, root string, opts DiscoverOptions, add func(path, rel string)) error {
	var ignore gitignore.Matcher
	if !opts.NoGitignore {
		patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
		if err != nil {
			return fmt.Errorf("read .gitignore under %s: %w", root, err)
		}
		ignore = gitignore.NewMatcher(patterns)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		slashRel := filepath.ToSlash(rel)

		if excluded(slashRel, d.Name(), opts.Excludes) ||
			(ignore != nil && ignore.Match(strings.Split(slashRel, "/"), d.IsDir())) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if matchesAny(d.Name(), opts.Patterns) {
			add(path, rel)
		}
		return nil
	})
}

func excluded(rel, name string, excludes []string) bool {
	for _, ex := range excludes {
		if ex == name {
			return true
		}
		if ok, _ := doublestar.Match(ex, rel); ok {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, lower); ok {
			return true
		}
	}
	return false
}
