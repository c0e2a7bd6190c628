package builtin

import (
	"math/rand/v2"

	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// TeleportOnHit moves a player who takes damage to a random spawn spot.
type TeleportOnHit struct {
	modifier.Base
}

// NewTeleportOnHit creates the TeleportOnHit modifier.
func NewTeleportOnHit() *TeleportOnHit {
	return &TeleportOnHit{
		Base: modifier.NewBase("TeleportOnHit", "Players are teleported to a random spot on hit", true, "SwapOnHit"),
	}
}

func (m *TeleportOnHit) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerHurt, m.onHurt)
}

func (m *TeleportOnHit) onHurt(e *world.Event) {
	if !m.IsActive() || e.Player == nil || !e.Player.IsAlive() {
		return
	}
	points := m.Host().SpawnPoints()
	if len(points) == 0 {
		return
	}
	e.Player.SetPosition(points[rand.IntN(len(points))])
}

// SwapOnHit swaps the attacker and the victim on every hit.
type SwapOnHit struct {
	modifier.Base
}

// NewSwapOnHit creates the SwapOnHit modifier.
func NewSwapOnHit() *SwapOnHit {
	return &SwapOnHit{
		Base: modifier.NewBase("SwapOnHit", "Players will swap places on hit", true, "TeleportOnHit"),
	}
}

func (m *SwapOnHit) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerHurt, m.onHurt)
}

func (m *SwapOnHit) onHurt(e *world.Event) {
	if !m.IsActive() || e.Attacker == nil || e.Player == nil || e.Attacker == e.Player {
		return
	}
	attacker, victim := e.Attacker, e.Player
	from, to := attacker.Position(), victim.Position()
	attacker.SetPosition(to)
	victim.SetPosition(from)
}
