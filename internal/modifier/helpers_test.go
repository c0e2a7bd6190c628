package modifier

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

// callLog records lifecycle calls across modifiers in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

type stubModifier struct {
	Base
	log *callLog
}

func newStub(log *callLog, name string, random bool, incompatible ...string) *stubModifier {
	return &stubModifier{
		Base: NewBase(name, name+" description", random, incompatible...),
		log:  log,
	}
}

func (m *stubModifier) Enable() {
	m.Base.Enable()
	if m.log != nil {
		m.log.add("enable:" + m.Name())
	}
}

func (m *stubModifier) Disable() {
	m.Base.Disable()
	if m.log != nil {
		m.log.add("disable:" + m.Name())
	}
}

func stubFactory(m Modifier) Factory {
	return func() Modifier { return m }
}

func newHost(t *testing.T) *world.World {
	t.Helper()
	w := world.New()
	w.RegisterSetting(model.MustSetting("sv_foo", model.KindInt, 0, "0"))
	return w
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newTestCore builds a loaded Core over stubs with a deterministic selector.
func newTestCore(t *testing.T, seed uint64, mods ...Modifier) (*Core, *world.World) {
	t.Helper()
	host := newHost(t)

	factories := make([]Factory, len(mods))
	for i, m := range mods {
		factories[i] = stubFactory(m)
	}

	c := NewCore(Options{
		Env:       Env{Host: host},
		Factories: factories,
		MinRandom: 1,
		MaxRandom: 1,
		Rand:      seeded(seed),
	})
	c.Load()
	return c, host
}

func names(mods []Modifier) []string {
	out := make([]string, len(mods))
	for i, m := range mods {
		out[i] = m.Name()
	}
	return out
}
