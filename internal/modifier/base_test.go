package modifier

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

func TestBase_Identity(t *testing.T) {
	b := NewBase("Xray", "See through walls", true, "Invisible", "Blind")

	assert.Equal(t, "Xray", b.Name())
	assert.Equal(t, "See through walls", b.Description())
	assert.True(t, b.SupportsRandomRounds())
	assert.True(t, b.IsIncompatibleWith("invisible"))
	assert.False(t, b.IsIncompatibleWith("Xray"))
	assert.False(t, b.IsRegistered())
	assert.False(t, b.IsActive())

	names := b.IncompatibleNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"Invisible", "Blind"}, b.IncompatibleNames())
}

func TestBase_OverlayPluginDirFirst(t *testing.T) {
	root := t.TempDir()
	pluginDir := filepath.Join(root, "plugin")
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(pluginDir, OverlayDir), "Stub.cfg", "sv_foo 1\n")
	writeFile(t, filepath.Join(configDir, OverlayDir), "Stub.cfg", "sv_foo 2\n")

	host := newHost(t)
	m := newStub(nil, "Stub", true)
	m.Registered(Env{Host: host, PluginDir: pluginDir, ConfigDir: configDir})

	require.NotNil(t, m.Config())
	assert.Equal(t, []string{"sv_foo 1"}, m.Config().ServerDirectives())

	foo, _ := host.FindSetting("sv_foo")
	m.Enable()
	assert.Equal(t, "1", foo.String())
	m.Disable()
	assert.Equal(t, "0", foo.String())
}

func TestBase_OverlayFallsBackToConfigDir(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(configDir, OverlayDir), "Stub.cfg", "sv_foo 2\n")

	m := newStub(nil, "Stub", true)
	m.Registered(Env{Host: newHost(t), PluginDir: filepath.Join(root, "plugin"), ConfigDir: configDir})

	require.NotNil(t, m.Config())
	assert.Equal(t, []string{"sv_foo 2"}, m.Config().ServerDirectives())
}

func TestBase_NoOverlay(t *testing.T) {
	host := newHost(t)
	m := newStub(nil, "Stub", true)
	m.Registered(Env{Host: host, PluginDir: t.TempDir()})

	assert.Nil(t, m.Config())
	assert.Zero(t, host.Bus().Count(world.EventPlayerConnected))
}

func TestBase_LateJoinerAndDisconnect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, OverlayDir), "Bhop.cfg", "Client:\nsv_autobunnyhopping true\n")

	host := newHost(t)
	m := newStub(nil, "Bhop", true)
	m.Registered(Env{Host: host, PluginDir: root})
	m.Enable()

	p, err := host.Connect("late", model.TeamTerrorist)
	require.NoError(t, err)
	v, _ := p.ClientSetting("sv_autobunnyhopping")
	assert.Equal(t, "true", v, "late joiner receives client directives")

	host.Disconnect(p.Slot())
	v, _ = p.ClientSetting("sv_autobunnyhopping")
	assert.Equal(t, "false", v, "disconnect rolls the client back")

	again, err := host.Connect("reuse", model.TeamTerrorist)
	require.NoError(t, err)
	require.Equal(t, p.Slot(), again.Slot())

	m.Disable()
	v, _ = again.ClientSetting("sv_autobunnyhopping")
	assert.Equal(t, "false", v)

	m.Unregistered()
	assert.Zero(t, host.Bus().Count(world.EventPlayerConnected))
	assert.Zero(t, host.Bus().Count(world.EventPlayerDisconnect))
}

func TestBase_RegisteredWithoutHost(t *testing.T) {
	m := newStub(nil, "Stub", true)
	m.Registered(Env{})
	assert.False(t, m.IsRegistered())
	assert.NotPanics(t, func() {
		m.Enable()
		m.Disable()
	})
}
