package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer(t *testing.T, slot int, name string) *Player {
	t.Helper()
	p, err := NewPlayer(slot, name, TeamTerrorist)
	require.NoError(t, err, "NewPlayer(%d, %s)", slot, name)
	return p
}

func TestNewPlayer(t *testing.T) {
	p := newTestPlayer(t, 3, "Alice")

	assert.Equal(t, 3, p.Slot())
	assert.Equal(t, "Alice", p.Name())
	assert.Equal(t, TeamTerrorist, p.Team())
	assert.Equal(t, DefaultHealth, p.Health())
	assert.Equal(t, DefaultMaxHealth, p.MaxHealth())
	assert.Equal(t, DefaultFOV, p.FOV())
	assert.InDelta(t, DefaultSpeedMultiplier, p.SpeedMultiplier(), 1e-9)
	assert.False(t, p.IsAlive())
	assert.True(t, p.Visible())

	_, err := NewPlayer(-1, "Bob", TeamTerrorist)
	assert.Error(t, err)
	_, err = NewPlayer(0, "", TeamTerrorist)
	assert.Error(t, err)
}

func TestPlayer_SetHealthKills(t *testing.T) {
	p := newTestPlayer(t, 0, "Alice")
	p.SetAlive(true)

	p.SetHealth(0)
	assert.False(t, p.IsAlive())
}

func TestPlayer_StripWeapons(t *testing.T) {
	p := newTestPlayer(t, 0, "Alice")
	p.GiveWeapon("weapon_knife")
	p.GiveWeapon("weapon_ak47")
	p.GiveWeapon("weapon_glock")
	p.GiveWeapon("weapon_ak47")

	removed := p.StripWeapons()

	assert.Equal(t, []string{"weapon_ak47", "weapon_glock"}, removed)
	assert.Equal(t, []string{"weapon_knife"}, p.Weapons())
}

func TestPlayer_ClientCommands(t *testing.T) {
	p := newTestPlayer(t, 0, "Alice")

	p.ReplicateSetting("SV_AutoBunnyHopping", "1")
	v, ok := p.ClientSetting("sv_autobunnyhopping")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	p.ExecuteClientCommand("cl_showfps 1")
	p.ExecuteClientCommandFromServer("r_drawviewmodel 0")

	assert.Equal(t, []string{"cl_showfps 1", "r_drawviewmodel 0"}, p.ClientCommands())
	v, ok = p.ClientSetting("r_drawviewmodel")
	require.True(t, ok)
	assert.Equal(t, "0", v)
}
