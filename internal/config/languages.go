package config

import (
	"path/filepath"
	"slices"
	"strings"
)

var defaultExtensions = []string{
	"htm", "html", "js", "jsx", "ts", "tsx", "mdx",
	"vue", "svelte", "astro", "php",
	"css", "scss", "sass", "less", "styl", "pcss",
}

var defaultExcludes = []string{
	"node_modules", "dist", "build", ".git", ".next", ".nuxt", ".svelte-kit",
}

// extensionLanguages maps a file extension to the language id used by the scanner.
var extensionLanguages = map[string]string{
	"htm":     "html",
	"html":    "html",
	"js":      "javascript",
	"mjs":     "javascript",
	"cjs":     "javascript",
	"jsx":     "javascriptreact",
	"ts":      "typescript",
	"mts":     "typescript",
	"cts":     "typescript",
	"tsx":     "typescriptreact",
	"mdx":     "mdx",
	"md":      "markdown",
	"vue":     "vue",
	"svelte":  "svelte",
	"astro":   "astro",
	"php":     "php",
	"css":     "css",
	"scss":    "scss",
	"sass":    "sass",
	"less":    "less",
	"styl":    "stylus",
	"stylus":  "stylus",
	"pcss":    "postcss",
	"postcss": "postcss",
}

// DefaultLanguages lists the language ids scanned when none are configured.
func DefaultLanguages() []string {
	return []string{
		"html", "javascript", "javascriptreact", "typescript", "typescriptreact",
		"mdx", "vue", "svelte", "astro", "php",
		"css", "scss", "sass", "less", "stylus", "postcss",
	}
}

// DefaultExtensions lists the file extensions scanned by default.
func DefaultExtensions() []string {
	return slices.Clone(defaultExtensions)
}

// DefaultExcludes lists the directory names skipped while walking a workspace.
func DefaultExcludes() []string {
	return slices.Clone(defaultExcludes)
}

// MergeExtensions appends user extensions to the defaults and removes every
// extension negated with a leading "!". The result is a list of "*.ext" globs.
func MergeExtensions(user []string) []string {
	negated := make(map[string]struct{})
	var added []string
	for _, ext := range user {
		ext = normalizeExtension(ext)
		if rest, ok := strings.CutPrefix(ext, "!"); ok {
			negated[normalizeExtension(rest)] = struct{}{}
			continue
		}
		if ext != "" {
			added = append(added, ext)
		}
	}

	seen := make(map[string]struct{})
	var patterns []string
	for _, ext := range append(DefaultExtensions(), added...) {
		if _, skip := negated[ext]; skip {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		patterns = append(patterns, "*."+ext)
	}
	return patterns
}

// FilePatterns returns the "*.ext" globs selected by this configuration.
func (c *Config) FilePatterns() []string {
	return MergeExtensions(c.Extensions)
}

// LanguageForPath derives a language id from the file extension of path.
// Unknown extensions map to the bare extension.
func LanguageForPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ext
}

// SupportsLanguage reports whether languageID is enabled.
func (c *Config) SupportsLanguage(languageID string) bool {
	return slices.Contains(c.Languages, languageID)
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	neg := strings.HasPrefix(ext, "!")
	ext = strings.TrimPrefix(ext, "!")
	ext = strings.TrimPrefix(strings.TrimPrefix(ext, "*"), ".")
	if neg {
		return "!" + ext
	}
	return ext
}
