package commands

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/modifier/builtin"
	"github.com/udisondev/roundmods/internal/testutil"
	"github.com/udisondev/roundmods/internal/world"
)

const (
	bhopCfg = `modifier_name Bhop
modifier_description Bunny hopping is enabled
supports_random_rounds true
incompatible_modifiers [Surf]
sv_autobunnyhopping true
sv_enablebunnyhopping true
`
	surfCfg = `modifier_name Surf
modifier_description Surf mode
supports_random_rounds true
incompatible_modifiers [Bhop]
sv_airaccelerate 150
`
)

type fixture struct {
	w    *world.World
	core *modifier.Core
	h    *admin.Handler
	root *admin.Caller
}

func newFixture(t *testing.T, withModifiers bool) *fixture {
	t.Helper()

	dir := t.TempDir()
	var factories []modifier.Factory
	if withModifiers {
		testutil.WriteConfig(t, filepath.Join(dir, modifier.CvarDir), "bhop.cfg", bhopCfg)
		testutil.WriteConfig(t, filepath.Join(dir, modifier.CvarDir), "surf.cfg", surfCfg)
		factories = []modifier.Factory{func() modifier.Modifier { return builtin.NewXray() }}
	}

	w, _ := testutil.NewTestWorld(t, "alice", "bob")
	core := modifier.NewCore(modifier.Options{
		Env:       modifier.Env{Host: w, PluginDir: dir, ConfigDir: filepath.Join(dir, "user")},
		Factories: factories,
		MinRandom: 1,
		MaxRandom: 1,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
	core.Load()
	t.Cleanup(core.Unload)

	h := admin.NewHandler()
	RegisterAll(h, core, w)

	return &fixture{w: w, core: core, h: h, root: admin.NewCaller("console", admin.AccessRoot)}
}

func (f *fixture) run(text string) []string {
	f.h.Execute(f.root, text)
	return f.root.Drain()
}

func activeNames(core *modifier.Core) []string {
	var names []string
	for _, m := range core.Active() {
		names = append(names, m.Name())
	}
	return names
}

func TestListCommands(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{
		"Registered modifiers",
		"• Xray - [Everyone can see each other through walls.]",
		"• Bhop - [Bunny hopping is enabled]",
		"• Surf - [Surf mode]",
	}, f.run("listmodifiers"))

	assert.Equal(t, []string{"Active modifiers", "None"}, f.run("listactivemodifiers"))

	user := admin.NewCaller("player", admin.AccessUser)
	assert.True(t, f.h.Execute(user, "css_listmodifiers"), "listing is open to everyone")
}

func TestAddModifier(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"Added Bhop modifier."}, f.run("addmodifier Bhop"))
	setting, ok := f.w.FindSetting("sv_autobunnyhopping")
	require.True(t, ok)
	assert.Equal(t, "true", setting.String())

	assert.Equal(t, []string{"Bhop modifier is already active."}, f.run("addmodifier Bhop"))
	assert.Equal(t, []string{"Surf modifier is blocked by:", "• Bhop"}, f.run("addmodifier Surf"))
	assert.Equal(t, []string{"Nope modifier is not registered."}, f.run("addmodifier Nope"))
	assert.Equal(t, []string{"Command error: usage: addmodifier <modifier name>"}, f.run("addmodifier"))

	assert.Equal(t, []string{"Bhop"}, activeNames(f.core))
}

func TestRemoveModifier(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"No modifiers are active."}, f.run("removemodifier Bhop"))

	f.run("addmodifier Bhop")
	assert.Equal(t, []string{"Surf modifier is not active."}, f.run("removemodifier Surf"))
	assert.Equal(t, []string{"Removed Bhop modifier."}, f.run("removemodifier bhop"))

	setting, _ := f.w.FindSetting("sv_autobunnyhopping")
	assert.Equal(t, "false", setting.String(), "directives rolled back")

	f.run("addmodifier Xray")
	assert.Equal(t, []string{"Removed Xray modifier."}, f.run("removemodifier XRAY"), "reply uses the registered name")

	f.run("addmodifier Xray")
	f.run("addmodifier Surf")
	assert.Equal(t, []string{"Removed all modifiers."}, f.run("removemodifiers"))
	assert.Empty(t, f.core.Active())
}

func TestToggleAndShortcuts(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"Added xray modifier."}, f.run("togglemodifier xray"))
	assert.Equal(t, []string{"Removed xray modifier."}, f.run("togglemodifier xray"))
	assert.Equal(t, []string{"Ghost modifier is not registered."}, f.run("togglemodifier Ghost"))

	assert.Equal(t, []string{"Bhop Enabled."}, f.run("bhop"))
	assert.Equal(t, []string{"Surf modifier is blocked by:", "• Bhop"}, f.run("surf"))
	assert.Equal(t, []string{"Bhop Disabled."}, f.run("css_bhop"))
	assert.Equal(t, []string{"Surf Enabled."}, f.run("surf"))
	assert.Equal(t, []string{"Xray Enabled."}, f.run("xray"))

	assert.Equal(t, []string{"Surf", "Xray"}, activeNames(f.core))
}

func TestAddRandomModifiers(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"Failed to add random modifiers."}, f.run("addrandommodifiers abc"))
	assert.Equal(t, []string{"Failed to add random modifiers."}, f.run("addrandommodifiers 0"))

	// Bhop and Surf block each other, so at most two of the three can be drawn.
	assert.Equal(t, []string{"Only added 2 random modifiers."}, f.run("addrandommodifiers 5"))
	assert.Len(t, f.core.Active(), 2)
	assert.Contains(t, activeNames(f.core), "Xray")

	f.run("removemodifiers")
	reply := f.run("addrandommodifier")
	require.Len(t, reply, 1)
	assert.Regexp(t, `^Added (Bhop|Surf) modifier\.$`, reply[0], "last roll is excluded")
}

func TestRandomRoundsCommands(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"Random rounds are not enabled! Cannot re-roll modifiers."}, f.run("randomroundsreroll"))

	assert.Equal(t, []string{"Random rounds enabled."}, f.run("randomrounds"))
	assert.True(t, f.core.RandomRounds())

	assert.Equal(t, []string{"Re-rolled random round modifiers."}, f.run("reroll"))
	assert.Len(t, f.core.Active(), 1)

	assert.Equal(t, []string{"Random rounds disabled."}, f.run("randomrounds"))
	assert.Empty(t, f.core.Active(), "disabling random rounds clears modifiers")
}

func TestRandomBounds(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, []string{"Min modifiers for random rounds set to 2"}, f.run("minrandomrounds 2"))
	assert.Equal(t, []string{"Max modifiers for random rounds set to 3"}, f.run("maxrandomrounds 3"))
	assert.Equal(t, 2, f.core.MinRandom())
	assert.Equal(t, 3, f.core.MaxRandom())

	assert.Equal(t, []string{"Failed to set min modifiers for random rounds to x"}, f.run("minrandomrounds x"))
	assert.Equal(t, []string{"Failed to set max modifiers for random rounds to -1"}, f.run("maxrandomrounds -1"))
	assert.Equal(t, 3, f.core.MaxRandom())

	assert.Equal(t, []string{
		"Round 0, random rounds off (min 2, max 3)",
		"3 registered, 0 active",
	}, f.run("status"))
}

func TestEmptyRegistry(t *testing.T) {
	f := newFixture(t, false)

	assert.Equal(t, []string{"No modifiers are registered! Cannot activate random rounds!"}, f.run("randomrounds"))
	assert.Equal(t, []string{"No modifiers are registered."}, f.run("addmodifier Bhop"))
	assert.Equal(t, []string{"Failed to add random modifier."}, f.run("addrandommodifier"))
	assert.Equal(t, []string{"Bhop modifier is not registered."}, f.run("bhop"))
	assert.Equal(t, []string{"Registered modifiers", "None"}, f.run("listmodifiers"))
}

func TestReload(t *testing.T) {
	f := newFixture(t, true)
	f.run("addmodifier Bhop")

	assert.Equal(t, []string{"Reloading Modifiers..."}, f.run("reloadmodifiers"))
	assert.Empty(t, f.core.Active())
	assert.Len(t, f.core.Registered(), 3)

	setting, _ := f.w.FindSetting("sv_autobunnyhopping")
	assert.Equal(t, "false", setting.String())
}

func TestMutatingCommandsNeedRoot(t *testing.T) {
	f := newFixture(t, true)
	operator := admin.NewCaller("op", admin.AccessOperator)

	for _, cmd := range []string{"addmodifier Bhop", "removemodifiers", "randomrounds", "reload", "xray"} {
		assert.False(t, f.h.Execute(operator, cmd), cmd)
	}
	assert.Empty(t, f.core.Active())
	assert.False(t, f.core.RandomRounds())
}

func TestPlayersAndKick(t *testing.T) {
	f := newFixture(t, true)

	reply := f.run("players")
	require.Len(t, reply, 3)
	assert.Equal(t, "2 players", reply[0])
	assert.Contains(t, reply[1], "alice")

	assert.Equal(t, []string{"Kicked player alice"}, f.run("kick ALICE"))
	assert.Equal(t, 1, f.w.PlayerCount())
	assert.Equal(t, []string{`Command error: player "ghost" not found or already disconnected`}, f.run("kick ghost"))
}

func TestHelp(t *testing.T) {
	f := newFixture(t, false)
	reply := f.run("help")
	require.Len(t, reply, 1)
	assert.Contains(t, reply[0], "addmodifier")
	assert.Contains(t, reply[0], "randomroundsreroll")
}
