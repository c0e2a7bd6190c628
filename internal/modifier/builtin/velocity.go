package builtin

import (
	"time"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// speedReassertInterval is how often the multiplier is written again; the
// engine resets it on landing and on weapon switch.
const speedReassertInterval = 200 * time.Millisecond

// SpeedModifier scales every player's movement speed.
type SpeedModifier struct {
	modifier.Base
	multiplier float64
	timer      *world.Timer
}

// NewLightweight doubles movement speed.
func NewLightweight() *SpeedModifier {
	return &SpeedModifier{
		Base:       modifier.NewBase("Lightweight", "Max movement speed is much faster", true, "LeadBoots"),
		multiplier: 2.0,
	}
}

// NewLeadBoots halves movement speed.
func NewLeadBoots() *SpeedModifier {
	return &SpeedModifier{
		Base:       modifier.NewBase("LeadBoots", "Max movement speed is much slower", true, "Lightweight"),
		multiplier: 0.5,
	}
}

func (m *SpeedModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerSpawn, m.onPlayerEvent)
	m.Listen(world.EventPlayerHurt, m.onPlayerEvent)
}

func (m *SpeedModifier) Enable() {
	m.Base.Enable()
	host := m.Host()
	if host == nil {
		return
	}

	m.setAll(m.multiplier)
	m.timer.Kill()
	m.timer = host.Every(speedReassertInterval, func() { m.setAll(m.multiplier) })
}

func (m *SpeedModifier) Disable() {
	m.timer.Kill()
	m.timer = nil
	m.setAll(model.DefaultSpeedMultiplier)
	m.Base.Disable()
}

func (m *SpeedModifier) setAll(multiplier float64) {
	if m.Host() == nil {
		return
	}
	for _, p := range m.Host().Players() {
		p.SetSpeedMultiplier(multiplier)
	}
}

func (m *SpeedModifier) onPlayerEvent(e *world.Event) {
	if m.IsActive() && e.Player != nil {
		e.Player.SetSpeedMultiplier(m.multiplier)
	}
}
