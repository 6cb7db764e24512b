package scanner

import (
	"encoding/json"
	"sort"

	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

// Position is a zero-based line and byte column.
type Position struct {
	Line      int `json:"line" yaml:"line"`
	Character int `json:"character" yaml:"character"`
}

// Range is a half-open document range [Start, End).
type Range struct {
	Start       Position `json:"start" yaml:"start"`
	End         Position `json:"end" yaml:"end"`
	StartOffset int      `json:"startOffset" yaml:"startOffset"`
	EndOffset   int      `json:"endOffset" yaml:"endOffset"`
}

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.StartOffset < o.EndOffset && o.StartOffset < r.EndOffset
}

// Group is every range styled by one theme key.
type Group struct {
	Key    string            `json:"key" yaml:"key"`
	Config theme.StyleConfig `json:"config" yaml:"config"`
	Ranges []Range           `json:"ranges" yaml:"ranges"`
}

// RangeMap groups ranges by match key, in the order keys were first seen.
type RangeMap struct {
	keys   []string
	groups map[string]*Group
}

// NewRangeMap returns an empty map.
func NewRangeMap() *RangeMap {
	return &RangeMap{groups: make(map[string]*Group)}
}

// Len returns the number of keys.
func (m *RangeMap) Len() int {
	return len(m.keys)
}

// Keys returns the keys in first-seen order.
func (m *RangeMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the group for key.
func (m *RangeMap) Get(key string) (Group, bool) {
	g, ok := m.groups[key]
	if !ok {
		return Group{}, false
	}
	return *g, true
}

// Groups returns all groups in first-seen order.
func (m *RangeMap) Groups() []Group {
	out := make([]Group, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, *m.groups[k])
	}
	return out
}

// RangeCount returns the number of ranges across all keys.
func (m *RangeMap) RangeCount() int {
	n := 0
	for _, g := range m.groups {
		n += len(g.Ranges)
	}
	return n
}

// MarshalJSON encodes the map as an ordered list of groups.
func (m *RangeMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Groups())
}

// MarshalYAML encodes the map as an ordered list of groups.
func (m *RangeMap) MarshalYAML() (interface{}, error) {
	return m.Groups(), nil
}

// add records r under key unless it overlaps a range already stored there.
// The config of the first token seen for a key is kept.
func (m *RangeMap) add(key string, cfg theme.StyleConfig, r Range) bool {
	g, ok := m.groups[key]
	if !ok {
		g = &Group{Key: key, Config: cfg}
		m.groups[key] = g
		m.keys = append(m.keys, key)
	}
	for _, existing := range g.Ranges {
		if existing.Overlaps(r) {
			return false
		}
	}
	g.Ranges = append(g.Ranges, r)
	return true
}

// Aggregate converts token offsets into positions and groups them by match key.
// A range that overlaps an accepted range under the same key is dropped.
func Aggregate(text string, tokens []ClassToken) *RangeMap {
	out := NewRangeMap()
	if len(tokens) == 0 {
		return out
	}

	lines := newLineIndex(text)
	for _, tok := range tokens {
		if tok.End <= tok.Start || tok.Start < 0 || tok.End > len(text) {
			continue
		}
		out.add(tok.MatchKey, tok.Config, Range{
			Start:       lines.position(tok.Start),
			End:         lines.position(tok.End),
			StartOffset: tok.Start,
			EndOffset:   tok.End,
		})
	}
	return out
}

// lineIndex maps byte offsets to positions. LF, CRLF and a lone CR end a line.
type lineIndex struct {
	starts []int
}

func newLineIndex(text string) lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		}
	}
	return lineIndex{starts: starts}
}

func (l lineIndex) position(offset int) Position {
	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1
	return Position{Line: line, Character: offset - l.starts[line]}
}
