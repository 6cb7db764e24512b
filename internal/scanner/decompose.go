package scanner

import (
	"strings"

	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

// decompose splits one class part into modifiers and a base class and emits a
// token for every piece the theme styles. offset is the document offset of part[0].
func (p *pass) decompose(part string, offset int) {
	if !trimmedOfColons(part) {
		return
	}

	chain, start := part, offset
	if part[0] == '!' {
		chain, start = part[1:], offset+1
		if !trimmedOfColons(chain) {
			return
		}
		if m, ok := p.resolver.Prefix(theme.KeyImportant); ok && m.Config.IsEnabled() {
			p.emit(TokenImportant, chain, offset, start, theme.KeyImportant, m.Config)
		}
	}
	end := offset + len(part)

	segments := splitColons(chain)
	if len(segments) == 1 {
		if m, ok := p.resolver.Base(chain); ok && m.Config.IsEnabled() {
			p.emit(TokenClass, chain, start, end, matchKey(chain, m), m.Config)
		}
		return
	}

	modifiers, base := segments[:len(segments)-1], segments[len(segments)-1]
	arbitraryBase := hasBracketValue(base)

	matched := false
	cursor := start
	for i, mod := range modifiers {
		if m, ok := p.resolver.Prefix(mod); ok && m.Config.IsEnabled() {
			matched = true
			tokEnd := cursor + len(mod) + 1
			if arbitraryBase || i == len(modifiers)-1 {
				tokEnd = end
			}
			p.emit(TokenPrefix, chain, cursor, tokEnd, matchKey(mod, m), m.Config)
		}
		cursor += len(mod) + 1
	}
	if matched {
		return
	}

	if m, ok := p.resolver.Prefix(base); ok && m.Config.IsEnabled() {
		p.emit(TokenPrefix, chain, cursor, end, matchKey(base, m), m.Config)
	}
}

// splitColons splits s on colons that are not inside square brackets.
func splitColons(s string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func trimmedOfColons(s string) bool {
	return s != "" && s[0] != ':' && s[len(s)-1] != ':'
}

// hasBracketValue reports whether s contains a [...] value.
func hasBracketValue(s string) bool {
	open := strings.IndexByte(s, '[')
	return open >= 0 && strings.IndexByte(s[open+1:], ']') >= 0
}

func matchKey(raw string, m theme.Match) string {
	if m.Arbitrary {
		return theme.KeyArbitrary
	}
	return raw
}
