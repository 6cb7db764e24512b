package theme

import "strings"

// Match is the outcome of a successful lookup.
type Match struct {
	// Config is the style found in the theme. It may be disabled.
	Config StyleConfig
	// Arbitrary is set when the lookup was answered by the arbitrary slot.
	Arbitrary bool
}

// Resolver answers modifier and base-class lookups against a single Theme.
// It never mutates the theme and is safe for concurrent use.
type Resolver struct {
	theme   Theme
	ignored []string
}

// NewResolver returns a resolver for t. Ignored modifiers such as "group" or
// "peer" are stripped from modifier keys before the second lookup attempt.
func NewResolver(t Theme, ignoredModifiers []string) *Resolver {
	ignored := make([]string, 0, len(ignoredModifiers))
	for _, m := range ignoredModifiers {
		m = strings.TrimSuffix(strings.TrimSpace(m), "-")
		if m == "" {
			continue
		}
		ignored = append(ignored, m+"-")
	}
	return &Resolver{theme: t, ignored: ignored}
}

// Theme returns the theme the resolver was built with.
func (r *Resolver) Theme() Theme {
	return r.theme
}

// Prefix resolves a modifier such as "hover", "group-hover/card" or "[&.on]".
func (r *Resolver) Prefix(key string) (Match, bool) {
	switch key {
	case KeyArbitrary:
		return slot(r.theme.Arbitrary, true)
	case KeyImportant:
		return slot(r.theme.Important, false)
	}

	if cfg, ok := r.theme.Prefix.Get(key); ok {
		return Match{Config: cfg}, true
	}

	cleaned := r.stripIgnored(key)
	if cleaned != key {
		if cfg, ok := r.theme.Prefix.Get(cleaned); ok {
			return Match{Config: cfg}, true
		}
	}

	for _, candidate := range []string{key, cleaned} {
		if i := strings.IndexByte(candidate, '/'); i > 0 {
			if cfg, ok := r.theme.Prefix.Get(candidate[:i]); ok {
				return Match{Config: cfg}, true
			}
		}
	}

	if isBracketed(key) {
		return slot(r.theme.Arbitrary, true)
	}

	for _, candidate := range []string{key, cleaned} {
		if i := strings.IndexByte(candidate, '-'); i > 0 {
			if cfg, ok := r.theme.Prefix.Get(candidate[:i] + wildcardSuffix); ok {
				return Match{Config: cfg}, true
			}
		}
	}

	return Match{}, false
}

// Base resolves a standalone utility class such as "flex" or "min-w-[100px]".
func (r *Resolver) Base(name string) (Match, bool) {
	if name == KeyArbitrary {
		return slot(r.theme.Arbitrary, true)
	}

	if cfg, ok := r.theme.Base.Get(name); ok {
		return Match{Config: cfg}, true
	}

	if isBracketed(name) {
		return slot(r.theme.Arbitrary, true)
	}

	for _, key := range r.theme.Base.keys {
		if !isWildcardKey(key) {
			continue
		}
		if strings.HasPrefix(name, strings.TrimSuffix(key, "*")) {
			return Match{Config: r.theme.Base.entries[key]}, true
		}
	}

	return Match{}, false
}

// stripIgnored removes each ignored modifier prefix at most once, in
// configured order. With [group peer has], "peer-has-checked" becomes
// "checked" but "has-peer-x" only loses "has-".
func (r *Resolver) stripIgnored(key string) string {
	for _, prefix := range r.ignored {
		if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			key = key[len(prefix):]
		}
	}
	return key
}

func slot(cfg *StyleConfig, arbitrary bool) (Match, bool) {
	if cfg == nil {
		return Match{}, false
	}
	return Match{Config: *cfg, Arbitrary: arbitrary}, true
}
