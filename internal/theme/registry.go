package theme

import (
	"fmt"
	"sort"
	"sync"

	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

// Registry holds the themes available for selection: the bundled palettes
// plus any custom themes layered over them.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewRegistry returns a registry pre-populated with the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]Theme)}
	for name, t := range Builtins() {
		r.themes[name] = t
	}
	return r
}

// Register adds or replaces a theme.
func (r *Registry) Register(name string, t Theme) error {
	if name == "" {
		return fmt.Errorf("theme name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[name] = t.Clone()
	return nil
}

// ApplyCustom merges each custom theme over the registered theme of the same
// name (or over an empty theme) and registers the result.
func (r *Registry) ApplyCustom(custom map[string]Theme) {
	names := make([]string, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		r.themes[name] = Merge(r.themes[name], custom[name])
	}
}

// Get returns a copy of the named theme.
func (r *Registry) Get(name string) (Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.themes[name]
	if !ok {
		return Theme{}, false
	}
	return t.Clone(), true
}

// Names lists registered theme names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Active returns the named theme. When it is not registered the empty theme
// is returned together with a ThemeNotFoundError so callers can log the
// problem and keep running.
func (r *Registry) Active(name string) (Theme, error) {
	if t, ok := r.Get(name); ok {
		return t, nil
	}
	return Theme{}, rainbowerrors.NewThemeNotFoundError(name, r.Names())
}
