package builtin

import (
	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// Vampire heals attackers by the damage they deal to enemies.
type Vampire struct {
	modifier.Base
}

// NewVampire creates the Vampire modifier.
func NewVampire() *Vampire {
	return &Vampire{Base: modifier.NewBase("Vampire", "You steal the damage you deal", true)}
}

func (m *Vampire) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerHurt, m.onHurt)
}

// Disable resets everyone to default health; stolen health is not tracked per player.
func (m *Vampire) Disable() {
	if m.Host() != nil {
		for _, p := range m.Host().Players() {
			if p.IsAlive() {
				p.SetHealth(model.DefaultHealth)
			}
		}
	}
	m.Base.Disable()
}

func (m *Vampire) onHurt(e *world.Event) {
	if !m.IsActive() || e.Attacker == nil || e.Player == nil {
		return
	}
	attacker, victim := e.Attacker, e.Player
	if attacker == victim || attacker.Team() == victim.Team() || !attacker.IsAlive() {
		return
	}

	// Overkill damage is not stolen.
	stolen := int(e.Damage)
	if hp := victim.Health(); hp < 0 {
		stolen += hp
	}
	if stolen > 0 {
		attacker.SetHealth(attacker.Health() + stolen)
	}
}
