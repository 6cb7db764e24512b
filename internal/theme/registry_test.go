package theme

import (
	"testing"

	"github.com/stretchr/testify/require"

	rainbowerrors "github.com/alexisbeaulieu97/rainbow/pkg/errors"
)

func TestRegistryBuiltins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.Equal(t, []string{"default", "neon", "synthwave"}, r.Names())

	th, err := r.Active("default")
	require.NoError(t, err)
	hover, ok := th.Prefix.Get("hover")
	require.True(t, ok)
	require.Equal(t, "#4ade80", hover.Color)
}

func TestRegistryActiveFallsBackToEmptyTheme(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	th, err := r.Active("missing")
	require.Error(t, err)
	require.True(t, th.IsEmpty())

	var notFound *rainbowerrors.ThemeNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.Name)
	require.Contains(t, err.Error(), "default, neon, synthwave")
}

func TestRegistryApplyCustomMergesOverBuiltin(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.ApplyCustom(map[string]Theme{
		"default": {Prefix: NewStyleMap(Entry{Key: "hover", Config: styled("#123456", "")})},
		"mine":    {Base: NewStyleMap(Entry{Key: "flex", Config: styled("#654321", "")})},
	})

	def, err := r.Active("default")
	require.NoError(t, err)
	hover, _ := def.Prefix.Get("hover")
	require.Equal(t, "#123456", hover.Color)
	focus, ok := def.Prefix.Get("focus")
	require.True(t, ok)
	require.Equal(t, "#4ada95", focus.Color)

	mine, err := r.Active("mine")
	require.NoError(t, err)
	require.Equal(t, 0, mine.Prefix.Len())
	require.Equal(t, []string{"flex"}, mine.Base.Keys())
	require.Contains(t, r.Names(), "mine")
}

func TestRegistryGetReturnsCopies(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	th, _ := r.Get("neon")
	th.Prefix.Set("hover", styled("#000000", ""))

	again, _ := r.Get("neon")
	hover, _ := again.Prefix.Get("hover")
	require.Equal(t, "#00ff00", hover.Color)
}

func TestRegistryRegisterRejectsEmptyName(t *testing.T) {
	t.Parallel()

	require.Error(t, NewRegistry().Register("", Theme{}))
}
