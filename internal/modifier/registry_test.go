package modifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterLookup(t *testing.T) {
	r := NewRegistry()

	a := newStub(nil, "Alpha", true)
	require.NoError(t, r.Register(a))

	err := r.Register(newStub(nil, "ALPHA", true))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, r.Register(nil), ErrNilModifier)

	got, ok := r.Lookup("alpha")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = r.Lookup("beta")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Build(t *testing.T) {
	root := t.TempDir()
	pluginDir := filepath.Join(root, "plugin")
	configDir := filepath.Join(root, "config")

	writeFile(t, filepath.Join(configDir, CvarDir), "bhop.cfg", "modifier_name Bhop\nmodifier_description user\n")
	writeFile(t, filepath.Join(pluginDir, CvarDir), "bhop.cfg", "modifier_name Bhop\nmodifier_description packaged\n")
	writeFile(t, filepath.Join(pluginDir, CvarDir), "surf.cfg", "modifier_name Surf\n")
	writeFile(t, filepath.Join(pluginDir, CvarDir), "lowgrav.cfg", "modifier_name LowGravity\n")
	writeFile(t, filepath.Join(pluginDir, CvarDir), "notes.txt", "modifier_name Ignored\n")

	host := newHost(t)
	r := NewRegistry()
	r.Build(BuildOptions{
		Env: Env{Host: host, PluginDir: pluginDir, ConfigDir: configDir},
		Factories: []Factory{
			stubFactory(newStub(nil, "Compiled", true)),
			stubFactory(newStub(nil, "Disabled", true)),
			nil,
		},
		Disabled: []string{"disabled", "LOWGRAVITY"},
	})

	assert.Equal(t, []string{"Compiled", "Bhop", "Surf"}, names(r.All()))

	bhop, ok := r.Lookup("bhop")
	require.True(t, ok)
	assert.Equal(t, "user", bhop.Description(), "user config dir takes precedence")

	for _, m := range r.All() {
		assert.True(t, m.IsRegistered(), m.Name())
	}

	r.Clear()
	assert.Zero(t, r.Len())
	assert.False(t, bhop.IsRegistered())
}

func TestRegistry_BuildCreatesMissingDirs(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry()
	r.Build(BuildOptions{Env: Env{Host: newHost(t), PluginDir: root, ConfigDir: root}})

	assert.Zero(t, r.Len())
	info, err := os.Stat(filepath.Join(root, CvarDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestActivationSet(t *testing.T) {
	a := newStub(nil, "A", true)
	b := newStub(nil, "B", true, "A")
	c := newStub(nil, "C", true)

	var s ActivationSet
	assert.True(t, s.Append(a))
	assert.True(t, s.Append(c))
	assert.False(t, s.Append(a), "duplicates rejected")
	assert.False(t, s.Append(nil))

	assert.Equal(t, []string{"A", "C"}, s.Names())
	assert.Equal(t, []string{"C", "A"}, names(s.Reversed()))
	assert.Equal(t, []string{"A"}, s.Blocking(b))

	found, ok := s.Find("c")
	require.True(t, ok)
	assert.Same(t, c, found)

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, []string{"C"}, s.Names())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestBlocks(t *testing.T) {
	a := newStub(nil, "A", true, "b")
	b := newStub(nil, "B", true)
	c := newStub(nil, "C", true)

	assert.True(t, Blocks(a, b))
	assert.True(t, Blocks(b, a), "one declared edge blocks both ways")
	assert.False(t, Blocks(a, c))
	assert.False(t, Blocks(nil, a))
}
