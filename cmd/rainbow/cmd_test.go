package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
	"github.com/alexisbeaulieu97/rainbow/internal/tui"
	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

const samplePage = `<div class="hover:bg-red-500 md:flex"></div>`

// isolate points HOME at an empty directory so no user config is read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("RAINBOW_THEME", "")
	t.Setenv("RAINBOW_DEBUG", "")
	return dir
}

func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func executeCommand(args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2026-10-18"

	stdout, _, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, stdout, "rainbow 1.2.3")
	require.Contains(t, stdout, "abcdef1")
	require.Contains(t, stdout, "2026-10-18")
}

func TestScanCommandJSON(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "theme: default\n")
	page := writeFixture(t, dir, "site/index.html", samplePage)
	writeFixture(t, dir, "site/notes.txt", samplePage)

	stdout, _, err := executeCommand("scan", "--config", cfgPath, "--format", "json", filepath.Join(dir, "site"))
	require.NoError(t, err)

	var payload []struct {
		Path   string `json:"path"`
		Ranges []struct {
			Key string `json:"key"`
		} `json:"ranges"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, page, payload[0].Path)
	require.Len(t, payload[0].Ranges, 2)
	assert.Equal(t, "hover", payload[0].Ranges[0].Key)
	assert.Equal(t, "md", payload[0].Ranges[1].Key)
}

func TestScanCommandText(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "theme: default\n")
	writeFixture(t, dir, "index.html", samplePage)

	stdout, _, err := executeCommand("scan", "-c", cfgPath, dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FILE")
	assert.Contains(t, stdout, "hover")
	assert.Contains(t, stdout, "1:13-1:29")
	assert.Contains(t, stdout, "1 files, 2 keys, 2 ranges")
}

func TestScanCommandYAML(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "theme: default\n")
	writeFixture(t, dir, "index.html", samplePage)

	stdout, _, err := executeCommand("scan", "-c", cfgPath, "-f", "yaml", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "key: hover")
	assert.Contains(t, stdout, "startOffset: 12")
}

func TestScanCommandRejectsUnknownFormat(t *testing.T) {
	isolate(t)

	_, _, err := executeCommand("scan", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestConfigErrorsSurface(t *testing.T) {
	dir := isolate(t)
	broken := writeFixture(t, dir, "broken.yaml", "theme: [\n")

	_, _, err := executeCommand("themes", "--config", broken)
	require.Error(t, err)
	var parseErr *rainbowerrors.ParseError
	require.ErrorAs(t, err, &parseErr)

	_, _, err = executeCommand("themes", "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locating configuration")
}

func TestThemesCommandListsAndMarksActive(t *testing.T) {
	isolate(t)

	stdout, _, err := executeCommand("themes")
	require.NoError(t, err)
	assert.Equal(t, "* default\n  neon\n  synthwave\n", stdout)

	stdout, _, err = executeCommand("themes", "--theme", "neon")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* neon")

	t.Setenv("RAINBOW_THEME", "synthwave")
	stdout, _, err = executeCommand("themes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* synthwave")
}

func TestThemesCommandIncludesCustomThemes(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", `theme: mine
themes:
  mine:
    prefix:
      hover:
        color: "#123456"
`)

	stdout, _, err := executeCommand("themes", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "* mine")

	stdout, _, err = executeCommand("themes", "-c", cfgPath, "mine")
	require.NoError(t, err)
	assert.Contains(t, stdout, "hover:")
	assert.Contains(t, stdout, "#123456")
}

func TestThemesCommandUnknownTheme(t *testing.T) {
	isolate(t)

	_, _, err := executeCommand("themes", "retro")
	require.Error(t, err)
	var notFound *rainbowerrors.ThemeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "retro", notFound.Name)
}

func TestUnknownActiveThemeFallsBack(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)

	stdout, stderr, err := executeCommand("show", "--color", "never", "--theme", "retro", page)
	require.NoError(t, err)
	assert.Equal(t, samplePage, stdout)
	assert.Contains(t, stderr, "retro")
}

func TestShowCommand(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)

	stdout, _, err := executeCommand("show", "--color", "never", page)
	require.NoError(t, err)
	assert.Equal(t, samplePage, stdout)

	stdout, _, err = executeCommand("show", "--color", "never", "--legend", page)
	require.NoError(t, err)
	assert.Equal(t, samplePage+"\n\nhover 1\nmd 1\n", stdout)

	stdout, _, err = executeCommand("show", "--color", "always", page)
	require.NoError(t, err)
	assert.Contains(t, stdout, "\x1b[")

	_, _, err = executeCommand("show", "--color", "sometimes", page)
	require.Error(t, err)

	_, _, err = executeCommand("show", filepath.Join(dir, "missing.html"))
	require.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "conf", "rainbow.yaml")

	stdout, _, err := executeCommand("init", "--config", target, "--theme", "neon")
	require.NoError(t, err)
	assert.Contains(t, stdout, target)

	cfg, err := config.ParseConfig(target)
	require.NoError(t, err)
	assert.Equal(t, theme.NeonName, cfg.Theme)
	assert.Equal(t, config.DefaultDebounce, cfg.Watch.Debounce)

	_, _, err = executeCommand("init", "--config", target)
	require.Error(t, err)

	_, _, err = executeCommand("init", "--config", target, "--force")
	require.NoError(t, err)
	cfg, err = config.ParseConfig(target)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultName, cfg.Theme)
}

func stubPicker(t *testing.T, interactive bool, keys ...tea.KeyMsg) {
	t.Helper()
	originalRun := runProgram
	originalInteractive := isInteractive
	t.Cleanup(func() {
		runProgram = originalRun
		isInteractive = originalInteractive
	})

	isInteractive = func() bool { return interactive }
	runProgram = func(m tui.Model) (tui.Model, error) {
		var model tea.Model = m
		for _, key := range keys {
			model, _ = model.Update(key)
		}
		return model.(tui.Model), nil
	}
}

func TestPickCommandRequiresTerminal(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)
	stubPicker(t, false)

	_, _, err := executeCommand("pick", page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestPickCommandWritesAcceptedTheme(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "# keep me\ntheme: default\nexcludes: [vendor]\n")
	stubPicker(t, true, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})

	stdout, _, err := executeCommand("pick", "--config", cfgPath, "--write", page)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved theme neon")

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# keep me")
	assert.Contains(t, string(data), "theme: neon")
}

func TestPickCommandWithoutWrite(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "theme: default\n")
	stubPicker(t, true, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEnter})

	stdout, _, err := executeCommand("pick", "-c", cfgPath, page)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Selected theme synthwave")

	cfg, err := config.ParseConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultName, cfg.Theme)
}

func TestPickCommandCancelKeepsTheme(t *testing.T) {
	dir := isolate(t)
	page := writeFixture(t, dir, "index.html", samplePage)
	cfgPath := writeFixture(t, dir, "rainbow.yaml", "theme: neon\n")
	stubPicker(t, true, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEsc})

	stdout, _, err := executeCommand("pick", "-c", cfgPath, "--write", page)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Kept theme neon")

	cfg, err := config.ParseConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, theme.NeonName, cfg.Theme)
}

func TestThemesCommandDiff(t *testing.T) {
	isolate(t)

	stdout, _, err := executeCommand("themes", "neon", "--diff", "default")
	require.NoError(t, err)
	assert.Contains(t, stdout, "--- default\n+++ neon\n")
	assert.Contains(t, stdout, "\n-")
	assert.Contains(t, stdout, "\n+")

	stdout, _, err = executeCommand("themes", "default", "--diff", "default")
	require.NoError(t, err)
	assert.Equal(t, "Themes default and default are identical\n", stdout)

	_, _, err = executeCommand("themes", "default", "--diff", "retro")
	require.Error(t, err)
}
