package scanner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

func TestAggregateDropsOverlapsPerKey(t *testing.T) {
	t.Parallel()

	text := "0123456789abcdef"
	red := theme.StyleConfig{Color: "#ff0000"}
	blue := theme.StyleConfig{Color: "#0000ff"}
	tokens := []ClassToken{
		{Start: 0, End: 5, MatchKey: "a", Config: red},
		{Start: 3, End: 8, MatchKey: "a", Config: blue},
		{Start: 5, End: 8, MatchKey: "a", Config: blue},
		{Start: 3, End: 8, MatchKey: "b", Config: blue},
		{Start: 9, End: 9, MatchKey: "c"},
		{Start: 10, End: 40, MatchKey: "c"},
	}

	got := Aggregate(text, tokens)

	require.Equal(t, []string{"a", "b"}, got.Keys())
	a, _ := got.Get("a")
	assert.Equal(t, red, a.Config)
	require.Len(t, a.Ranges, 2)
	assert.Equal(t, 0, a.Ranges[0].StartOffset)
	assert.Equal(t, 5, a.Ranges[1].StartOffset)

	b, _ := got.Get("b")
	require.Len(t, b.Ranges, 1)
	assert.Equal(t, 3, got.RangeCount())

	_, ok := got.Get("c")
	assert.False(t, ok)
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	idx := newLineIndex("ab\ncd\r\nef\rgh")
	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{5, Position{1, 2}},
		{7, Position{2, 0}},
		{10, Position{3, 0}},
		{12, Position{3, 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, idx.position(tt.offset), "offset %d", tt.offset)
	}
}

func TestRangeMapEncoding(t *testing.T) {
	t.Parallel()

	m := Aggregate("hover:a", []ClassToken{{Start: 0, End: 7, MatchKey: "hover", Config: theme.StyleConfig{Color: "#fff"}}})

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"hover","config":{"color":"#fff"},"ranges":[{"start":{"line":0,"character":0},"end":{"line":0,"character":7},"startOffset":0,"endOffset":7}]}]`, string(data))

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), "key: hover")

	assert.Empty(t, NewRangeMap().Groups())
}
