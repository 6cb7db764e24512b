package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClassWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word     string
		expected bool
	}{
		{"hover:bg-blue-500", true},
		{"w-1/2", true},
		{"!font-bold", true},
		{"bg-[url('/a b.png')]", true},
		{"[mask-type:luminance]", true},
		{"before:content-[\\\"x\\\"]", true},
		{"text-red-500;", false},
		{"foo()", false},
		{"é", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, isClassWord(tt.word), tt.word)
	}
}

func TestSplitColons(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"lg", "hover", "bg-red-500"}, splitColons("lg:hover:bg-red-500"))
	assert.Equal(t, []string{"[&:hover]", "underline"}, splitColons("[&:hover]:underline"))
	assert.Equal(t, []string{"bg-[url(a:b)]"}, splitColons("bg-[url(a:b)]"))
	assert.Equal(t, []string{"a", "", "b"}, splitColons("a::b"))
}

func TestIsCSSLanguage(t *testing.T) {
	t.Parallel()

	for _, lang := range []string{"css", "SCSS", "sass", "less", "stylus", "postcss"} {
		assert.True(t, IsCSSLanguage(lang), lang)
	}
	assert.False(t, IsCSSLanguage("html"))
}

func TestAsciiLowerKeepsLength(t *testing.T) {
	t.Parallel()

	in := "ClassName=İx"
	out := asciiLower(in)
	assert.Equal(t, len(in), len(out))
	assert.Equal(t, "classname=İx", out)
	assert.Equal(t, "already", asciiLower("already"))
}
