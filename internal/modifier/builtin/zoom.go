package builtin

import (
	"log/slog"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// ZoomModifier forces every player's field of view.
type ZoomModifier struct {
	modifier.Base
	fov    int
	cached map[int]int // slot → FOV before the override
	epoch  uint64      // bumped on every Enable/Disable to drop stale deferred writes
}

func newZoomModifier(base modifier.Base, fov int) *ZoomModifier {
	return &ZoomModifier{Base: base, fov: fov, cached: make(map[int]int)}
}

// NewZoomIn narrows everyone's FOV to 30.
func NewZoomIn() *ZoomModifier {
	return newZoomModifier(modifier.NewBase("ZoomIn", "Everyone's FOV is set to 30", true, "ZoomOut"), 30)
}

// NewZoomOut widens everyone's FOV to 150.
func NewZoomOut() *ZoomModifier {
	return newZoomModifier(modifier.NewBase("ZoomOut", "Everyone's FOV is set to 150", true, "ZoomIn"), 150)
}

func (m *ZoomModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerConnected, func(e *world.Event) {
		if m.IsActive() && e.Player != nil {
			m.apply(e.Player)
		}
	})
	m.Listen(world.EventPlayerDisconnect, func(e *world.Event) { delete(m.cached, e.Slot) })
}

func (m *ZoomModifier) Enable() {
	m.Base.Enable()
	m.epoch++
	if m.Host() == nil {
		return
	}
	for _, p := range m.Host().Players() {
		m.apply(p)
	}
}

func (m *ZoomModifier) Disable() {
	m.epoch++
	if m.Host() != nil {
		for _, p := range m.Host().Players() {
			fov, ok := m.cached[p.Slot()]
			if !ok {
				slog.Warn("no cached FOV to restore", "modifier", m.Name(), "player", p.Name())
				continue
			}
			p.SetFOV(fov)
		}
	}
	clear(m.cached)
	m.Base.Disable()
}

// apply caches the player's FOV and writes the override on the next tick,
// after the engine has finished with the triggering event.
func (m *ZoomModifier) apply(p *model.Player) {
	if _, ok := m.cached[p.Slot()]; !ok {
		m.cached[p.Slot()] = p.FOV()
	}

	epoch := m.epoch
	m.Host().NextTick(func() {
		if m.epoch != epoch || !m.IsActive() {
			return
		}
		if current, ok := m.Host().Player(p.Slot()); !ok || current != p {
			return
		}
		p.SetFOV(m.fov)
	})
}
