package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/logger"
	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

func testSession(t *testing.T, root string, out *bytes.Buffer) *watchSession {
	t.Helper()
	cfg := config.Defaults()
	app := &appContext{
		cfg:       &cfg,
		log:       logger.Nop(),
		registry:  cfg.Registry(),
		themeName: theme.DefaultName,
		theme:     theme.Default(),
		scanner:   scanner.New(cfg.Scan),
	}
	return newWatchSession(app, []string{root}, out)
}

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	excludes := []string{"node_modules", "src/gen/**"}
	tests := map[string]bool{
		"node_modules":            true,
		"node_modules/lib/a.js":   true,
		"web/node_modules/x.html": true,
		"src/gen/out.ts":          true,
		"src/app.tsx":             false,
		"gen/out.ts":              false,
	}
	for path, expected := range tests {
		assert.Equal(t, expected, isExcluded(filepath.FromSlash(path), excludes), path)
	}
}

func TestWatchSessionFilters(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	s := testSession(t, root, &bytes.Buffer{})

	assert.True(t, s.relevant(filepath.Join(root, "src", "App.TSX")))
	assert.False(t, s.relevant(filepath.Join(root, "src", "main.go")))
	assert.False(t, s.relevant(filepath.Join(root, "node_modules", "x.html")))
	assert.True(t, s.skipDir(filepath.Join(root, "dist")))
	assert.False(t, s.skipDir(filepath.Join(root, "src")))
	assert.Equal(t, filepath.Join("src", "a.html"), s.relative(filepath.Join(root, "src", "a.html")))
}

func TestWatchSessionRescanAndForget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	page := writeFixture(t, root, "index.html", samplePage)
	notes := writeFixture(t, root, "notes.md", samplePage)

	out := &bytes.Buffer{}
	s := testSession(t, root, out)

	s.rescan(context.Background(), []string{page, notes})
	assert.Equal(t, page+": 2 keys, 2 ranges\n", out.String())

	out.Reset()
	s.forget(page)
	assert.Equal(t, page+": removed\n", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	s.rescan(ctx, []string{page})
	require.Empty(t, out.String())
}

func TestWatchSessionRescanLogsFailures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	page := writeFixture(t, root, "index.html", samplePage)

	logs := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "info", Writer: logs})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	s := testSession(t, root, out)
	s.log = log

	s.rescan(context.Background(), []string{page})
	assert.Equal(t, page+": 2 keys, 2 ranges\n", out.String())
	assert.Empty(t, logs.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	s.rescan(ctx, []string{page})
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "rescan failed")
	assert.Contains(t, logs.String(), context.Canceled.Error())
}
