package builtin

import (
	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// Xray makes every living player glow through walls.
type Xray struct {
	modifier.Base
	glowing map[int]bool // slots we turned the glow on for
}

// NewXray creates the Xray modifier.
func NewXray() *Xray {
	return &Xray{
		Base:    modifier.NewBase("Xray", "Everyone can see each other through walls.", true),
		glowing: make(map[int]bool),
	}
}

func (m *Xray) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerSpawn, func(e *world.Event) {
		if m.IsActive() && e.Player != nil {
			m.glow(e.Player)
		}
	})
	m.Listen(world.EventPlayerHurt, func(e *world.Event) {
		if e.Player != nil && !e.Player.IsAlive() {
			m.unglow(e.Player)
		}
	})
	m.Listen(world.EventPlayerDisconnect, func(e *world.Event) { delete(m.glowing, e.Slot) })
}

func (m *Xray) Enable() {
	m.Base.Enable()
	if m.Host() == nil {
		return
	}
	for _, p := range m.Host().Players() {
		m.glow(p)
	}
}

func (m *Xray) Disable() {
	if m.Host() != nil {
		for _, p := range m.Host().Players() {
			m.unglow(p)
		}
	}
	clear(m.glowing)
	m.Base.Disable()
}

func (m *Xray) glow(p *model.Player) {
	if !p.IsAlive() {
		return
	}
	p.SetGlow(true)
	m.glowing[p.Slot()] = true
}

func (m *Xray) unglow(p *model.Player) {
	if !m.glowing[p.Slot()] {
		return
	}
	p.SetGlow(false)
	delete(m.glowing, p.Slot())
}
