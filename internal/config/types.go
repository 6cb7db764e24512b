package config

import (
	"time"

	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

// DefaultDebounce is the delay between the last file change and a re-scan.
const DefaultDebounce = 100 * time.Millisecond

// Config represents the full rainbow configuration document.
type Config struct {
	Theme      string                 `yaml:"theme,omitempty" validate:"omitempty,theme_name"`
	Languages  []string               `yaml:"languages,omitempty" validate:"omitempty,dive,language_id"`
	Extensions []string               `yaml:"extensions,omitempty" validate:"omitempty,dive,extension"`
	Excludes   []string               `yaml:"excludes,omitempty" validate:"omitempty,dive,required"`
	Scan       scanner.Options        `yaml:"scan,omitempty"`
	Watch      WatchSettings          `yaml:"watch,omitempty"`
	Debug      bool                   `yaml:"debug,omitempty"`
	Themes     map[string]theme.Theme `yaml:"themes,omitempty" validate:"omitempty,dive,keys,theme_name,endkeys"`
}

// WatchSettings tunes the file watcher.
type WatchSettings struct {
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	return Config{
		Theme:     theme.DefaultName,
		Languages: DefaultLanguages(),
		Excludes:  DefaultExcludes(),
		Scan:      scanner.DefaultOptions(),
		Watch:     WatchSettings{Debounce: DefaultDebounce},
	}
}

// applyDefaults fills fields left unset by a parsed document.
func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = theme.DefaultName
	}
	if c.Languages == nil {
		c.Languages = DefaultLanguages()
	}
	if c.Excludes == nil {
		c.Excludes = DefaultExcludes()
	}
	c.Scan = c.Scan.WithDefaults()
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}

// Registry returns a theme registry holding the built-ins with the custom
// themes of this configuration merged over them.
func (c *Config) Registry() *theme.Registry {
	r := theme.NewRegistry()
	r.ApplyCustom(c.Themes)
	return r
}
