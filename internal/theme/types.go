package theme

import "strings"

// Reserved keys that address the dedicated catch-all slots of a Theme.
const (
	KeyArbitrary = "arbitrary"
	KeyImportant = "important"
)

// wildcardSuffix marks a style map key as matching every key sharing its prefix.
const wildcardSuffix = "-*"

// StyleConfig describes how a matched modifier or class is highlighted.
type StyleConfig struct {
	Color      string `yaml:"color,omitempty" json:"color,omitempty" validate:"omitempty,css_color"`
	FontWeight string `yaml:"fontWeight,omitempty" json:"fontWeight,omitempty" validate:"omitempty,font_weight"`
	Enabled    *bool  `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled reports whether the style is active. Styles are enabled unless
// explicitly switched off.
func (c StyleConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// IsZero reports whether no field of the style has been set.
func (c StyleConfig) IsZero() bool {
	return c.Color == "" && c.FontWeight == "" && c.Enabled == nil
}

func (c StyleConfig) clone() StyleConfig {
	if c.Enabled != nil {
		enabled := *c.Enabled
		c.Enabled = &enabled
	}
	return c
}

// Theme is the layered style configuration consulted while resolving class tokens.
type Theme struct {
	Prefix    StyleMap     `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Base      StyleMap     `yaml:"base,omitempty" json:"base,omitempty"`
	Arbitrary *StyleConfig `yaml:"arbitrary,omitempty" json:"arbitrary,omitempty"`
	Important *StyleConfig `yaml:"important,omitempty" json:"important,omitempty"`
}

// Clone returns a deep copy of the theme.
func (t Theme) Clone() Theme {
	out := Theme{
		Prefix: t.Prefix.Clone(),
		Base:   t.Base.Clone(),
	}
	if t.Arbitrary != nil {
		c := t.Arbitrary.clone()
		out.Arbitrary = &c
	}
	if t.Important != nil {
		c := t.Important.clone()
		out.Important = &c
	}
	return out
}

// IsEmpty reports whether the theme can never produce a match.
func (t Theme) IsEmpty() bool {
	return t.Prefix.Len() == 0 && t.Base.Len() == 0 && t.Arbitrary == nil && t.Important == nil
}

// Bool returns a pointer to v, convenient for StyleConfig.Enabled literals.
func Bool(v bool) *bool {
	return &v
}

// isWildcardKey reports whether key is a well-formed wildcard such as "min-*".
func isWildcardKey(key string) bool {
	return len(key) > len(wildcardSuffix) && strings.HasSuffix(key, wildcardSuffix)
}

// isBracketed reports whether s matches ^\[.+\]$.
func isBracketed(s string) bool {
	return len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']'
}
