package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestThemeYAMLKeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	doc := `
prefix:
  zeta: {color: "#111111"}
  alpha: {color: "#222222", fontWeight: bold}
base:
  text-*: {color: "#333333"}
  bg-*: {color: "#444444", enabled: false}
arbitrary: {color: "#555555"}
`
	var th Theme
	require.NoError(t, yaml.Unmarshal([]byte(doc), &th))

	require.Equal(t, []string{"zeta", "alpha"}, th.Prefix.Keys())
	require.Equal(t, []string{"text-*", "bg-*"}, th.Base.Keys())
	bg, _ := th.Base.Get("bg-*")
	require.False(t, bg.IsEnabled())
	require.NotNil(t, th.Arbitrary)
	require.Nil(t, th.Important)

	out, err := yaml.Marshal(th)
	require.NoError(t, err)

	var again Theme
	require.NoError(t, yaml.Unmarshal(out, &again))
	require.Equal(t, th.Prefix.Entries(), again.Prefix.Entries())
	require.Equal(t, th.Base.Entries(), again.Base.Entries())
}

func TestStyleMapRejectsSequences(t *testing.T) {
	t.Parallel()

	var th Theme
	err := yaml.Unmarshal([]byte("prefix: [hover, focus]\n"), &th)
	require.Error(t, err)
}

func TestStyleMapSetKeepsPosition(t *testing.T) {
	t.Parallel()

	var m StyleMap
	m.Set("a", styled("#000001", ""))
	m.Set("b", styled("#000002", ""))
	m.Set("a", styled("#000003", ""))

	require.Equal(t, []string{"a", "b"}, m.Keys())
	a, _ := m.Get("a")
	require.Equal(t, "#000003", a.Color)
}
