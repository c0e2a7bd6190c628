package modifier

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCvarModifier(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bhop.cfg", `modifier_name Bhop
modifier_description Jump to go faster
SUPPORTS_RANDOM_ROUNDS true
incompatible_modifiers [Surf,  LowGravity , ]
sv_autobunnyhopping 1 // always on
sv_enablebunnyhopping 1
Client:
sv_autobunnyhopping 1
`)

	m, err := LoadCvarModifier(path)
	require.NoError(t, err)

	assert.Equal(t, "Bhop", m.Name())
	assert.Equal(t, "Jump to go faster", m.Description())
	assert.True(t, m.SupportsRandomRounds())
	assert.Equal(t, []string{"Surf", "LowGravity"}, m.IncompatibleNames())
	assert.True(t, m.IsIncompatibleWith("surf"))
	assert.False(t, m.IsIncompatibleWith("Bhop"))
	assert.False(t, m.IsRegistered())

	require.NotNil(t, m.Config())
	assert.Equal(t, []string{"sv_autobunnyhopping 1", "sv_enablebunnyhopping 1"}, m.Config().ServerDirectives())
	assert.Equal(t, []string{"sv_autobunnyhopping 1"}, m.Config().ClientDirectives())
}

func TestLoadCvarModifier_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no name line", "sv_gravity 100\n"},
		{"empty name", "modifier_name\nsv_gravity 100\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "x.cfg", tt.content)

			m, err := LoadCvarModifier(path)
			require.NoError(t, err)
			assert.Equal(t, UnnamedModifier, m.Name())
			assert.False(t, m.SupportsRandomRounds())
			assert.Empty(t, m.IncompatibleNames())
			assert.Equal(t, []string{"sv_gravity 100"}, m.Config().ServerDirectives())
		})
	}
}

func TestLoadCvarModifier_InvalidRandomFlagKeepsDefault(t *testing.T) {
	path := writeFile(t, t.TempDir(), "x.cfg", "modifier_name X\nsupports_random_rounds maybe\n")

	m, err := LoadCvarModifier(path)
	require.NoError(t, err)
	assert.False(t, m.SupportsRandomRounds())
	assert.Empty(t, m.Config().ServerDirectives())
}

func TestLoadCvarModifier_Missing(t *testing.T) {
	_, err := LoadCvarModifier(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestCvarModifier_EnableDisable(t *testing.T) {
	host := newHost(t)
	path := writeFile(t, t.TempDir(), "foo.cfg", "modifier_name Foo\nsv_foo 1\n")

	m, err := LoadCvarModifier(path)
	require.NoError(t, err)
	m.Registered(Env{Host: host})

	foo, _ := host.FindSetting("sv_foo")

	m.Enable()
	assert.True(t, m.IsActive())
	assert.Equal(t, "1", foo.String())

	m.Disable()
	assert.False(t, m.IsActive())
	assert.Equal(t, "0", foo.String())
}

func TestParseNameList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"[a, b]", []string{"a", "b"}},
		{"a,b", []string{"a", "b"}},
		{"[]", nil},
		{"[ , ,]", nil},
		{"[Single Name]", []string{"Single Name"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNameList(tt.in))
		})
	}
}
