package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

func writeFile(t *testing.T, root, rel, contents string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func rels(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "index.html", `<p class="hover:a">`)
	writeFile(t, root, "src/App.TSX", "")
	writeFile(t, root, "src/util.go", "")
	writeFile(t, root, "src/gen/out.ts", "")
	writeFile(t, root, "node_modules/lib/index.js", "")
	writeFile(t, root, "legacy/old.vue", "")
	writeFile(t, root, "styles/site.css", "")
	writeFile(t, root, ".gitignore", "legacy/\n*.css\n")

	tests := []struct {
		name     string
		opts     DiscoverOptions
		expected []string
	}{
		{
			name: "config defaults with gitignore",
			opts: DiscoverOptions{
				Patterns: config.MergeExtensions(nil),
				Excludes: config.DefaultExcludes(),
			},
			expected: []string{"index.html", "src/App.TSX", "src/gen/out.ts"},
		},
		{
			name: "glob exclude",
			opts: DiscoverOptions{
				Patterns: config.MergeExtensions(nil),
				Excludes: []string{"node_modules", "src/gen/**"},
			},
			expected: []string{"index.html", "src/App.TSX"},
		},
		{
			name: "gitignore disabled",
			opts: DiscoverOptions{
				Patterns:    []string{"*.css", "*.vue"},
				Excludes:    config.DefaultExcludes(),
				NoGitignore: true,
			},
			expected: []string{"legacy/old.vue", "styles/site.css"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := Discover(context.Background(), []string{root}, tt.opts)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, rels(files))
		})
	}
}

func TestDiscoverExplicitFilesAndErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := writeFile(t, root, "notes.txt", "")

	files, err := Discover(context.Background(), []string{path, path}, DiscoverOptions{Patterns: []string{"*.html"}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "txt", files[0].Language)

	_, err = Discover(context.Background(), []string{filepath.Join(root, "missing")}, DiscoverOptions{})
	require.Error(t, err)

	_, err = Discover(context.Background(), []string{root}, DiscoverOptions{Patterns: []string{"[a-"}})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Discover(ctx, []string{root}, DiscoverOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	plain, err := DecodeText([]byte("hover:a"))
	require.NoError(t, err)
	assert.Equal(t, "hover:a", plain)

	withBOM, err := DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "hover:a"...))
	require.NoError(t, err)
	assert.Equal(t, "hover:a", withBOM)

	utf16LE := []byte{0xFF, 0xFE}
	for _, u := range utf16.Encode([]rune("lg:b")) {
		utf16LE = append(utf16LE, byte(u), byte(u>>8))
	}
	decoded, err := DecodeText(utf16LE)
	require.NoError(t, err)
	assert.Equal(t, "lg:b", decoded)
}

func TestRunnerScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	html := writeFile(t, root, "a.html", `<div class="hover:bg-red-500 md:flex"></div>`)
	md := writeFile(t, root, "b.md", `<div class="hover:bg-red-500"></div>`)
	big := writeFile(t, root, "c.html", `<div class="hover:bg-red-500"></div>`)

	cfg := config.Defaults()
	cache := NewCache(0)
	runner := NewRunner(RunnerOptions{
		Scanner:  scanner.New(cfg.Scan),
		Theme:    theme.Default(),
		Supports: cfg.SupportsLanguage,
		Cache:    cache,
	})

	files := []File{
		{Path: html, Rel: "a.html", Language: "html"},
		{Path: md, Rel: "b.md", Language: "markdown"},
		{Path: filepath.Join(root, "gone.html"), Rel: "gone.html", Language: "html"},
	}

	results, err := runner.Scan(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, []string{"hover", "md"}, results[0].Ranges.Keys())
	assert.False(t, results[0].Cached)

	assert.Equal(t, SkipLanguage, results[1].Skipped)
	assert.Nil(t, results[1].Ranges)

	var scanErr *rainbowerrors.ScanError
	require.ErrorAs(t, results[2].Err, &scanErr)

	again, err := runner.Scan(context.Background(), files[:1])
	require.NoError(t, err)
	assert.True(t, again[0].Cached)
	assert.Equal(t, 1, cache.Len())

	runner.Forget(html)
	assert.Zero(t, cache.Len())

	small := NewRunner(RunnerOptions{Scanner: scanner.New(scanner.Options{MaxFileSize: 10})})
	res := small.ScanFile(File{Path: big, Language: "html"})
	assert.Equal(t, SkipTooLarge, res.Skipped)
}

func TestRunnerScanLeavesCallerContextUsable(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := writeFile(t, root, "a.html", `<div class="hover:flex"></div>`)
	b := writeFile(t, root, "b.html", `<div class="md:flex"></div>`)

	ctx := context.Background()
	runner := NewRunner(RunnerOptions{Theme: theme.Default(), Concurrency: 1})
	for range 2 {
		results, err := runner.Scan(ctx, []File{{Path: a, Language: "html"}, {Path: b, Language: "html"}})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, []string{"hover"}, results[0].Ranges.Keys())
		assert.Equal(t, []string{"md"}, results[1].Ranges.Keys())
	}
	require.NoError(t, ctx.Err())
}

func TestRunnerScanCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(RunnerOptions{}).Scan(ctx, []File{{Path: "x.html"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCacheKeysDependOnContentAndFingerprint(t *testing.T) {
	t.Parallel()

	opts := scanner.DefaultOptions()
	fpDefault := Fingerprint(theme.Default(), opts)
	fpNeon := Fingerprint(theme.Neon(), opts)
	require.NotEqual(t, fpDefault, fpNeon)
	require.Equal(t, fpDefault, Fingerprint(theme.Default(), opts))

	require.NotEqual(t, Key("a.html", "x", fpDefault), Key("a.html", "y", fpDefault))
	require.NotEqual(t, Key("a.html", "x", fpDefault), Key("a.html", "x", fpNeon))

	var nilCache *Cache
	_, ok := nilCache.Get("k")
	require.False(t, ok)
	nilCache.Set("k", scanner.NewRangeMap())
	require.Zero(t, nilCache.Len())

	c := NewCache(0)
	c.Set(Key("a.html", "x", fpDefault), scanner.NewRangeMap())
	c.Set(Key("ab.html", "x", fpDefault), scanner.NewRangeMap())
	c.Forget("a.html")
	require.Equal(t, 1, c.Len())
	c.Flush()
	require.Zero(t, c.Len())
}
