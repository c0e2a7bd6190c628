package builtin

import (
	"math/rand/v2"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// healthTracker remembers each slot's max health before it was overridden.
type healthTracker struct {
	original map[int]int // slot → max health
}

func newHealthTracker() healthTracker {
	return healthTracker{original: make(map[int]int)}
}

// apply caches the current max health unless already cached, then overrides it.
func (t *healthTracker) apply(p *model.Player, maxHealth int) {
	if !p.IsAlive() {
		return
	}
	if _, ok := t.original[p.Slot()]; !ok {
		t.original[p.Slot()] = p.MaxHealth()
	}
	p.SetMaxHealth(maxHealth)
}

func (t *healthTracker) reset(p *model.Player) {
	if hp, ok := t.original[p.Slot()]; ok && p.IsAlive() {
		p.SetMaxHealth(hp)
	}
	delete(t.original, p.Slot())
}

func (t *healthTracker) forget(slot int) {
	delete(t.original, slot)
}

// HealthModifier sets every living player's max health.
type HealthModifier struct {
	modifier.Base
	tracker   healthTracker
	maxHealth func() int
}

func newHealthModifier(base modifier.Base, maxHealth func() int) *HealthModifier {
	return &HealthModifier{
		Base:      base,
		tracker:   newHealthTracker(),
		maxHealth: maxHealth,
	}
}

// NewJuggernaut raises everyone's max health to 500.
func NewJuggernaut() *HealthModifier {
	return newHealthModifier(
		modifier.NewBase("Juggernaut", "Everyone's max health is set to 500", true, "GlassCannon", "RandomHealth"),
		func() int { return 500 })
}

// NewGlassCannon drops everyone's max health to 1.
func NewGlassCannon() *HealthModifier {
	return newHealthModifier(
		modifier.NewBase("GlassCannon", "Everyone is 1 hit to kill", true, "Juggernaut", "RandomHealth"),
		func() int { return 1 })
}

// NewRandomHealth rolls a max health in [1, 99] for every player separately.
func NewRandomHealth() *HealthModifier {
	return newHealthModifier(
		modifier.NewBase("RandomHealth", "Everyone's health is set to a random number", true, "Juggernaut", "GlassCannon"),
		func() int { return 1 + rand.IntN(99) })
}

func (m *HealthModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerSpawn, m.onSpawn)
	m.Listen(world.EventPlayerDisconnect, func(e *world.Event) { m.tracker.forget(e.Slot) })
}

func (m *HealthModifier) Enable() {
	m.Base.Enable()
	if m.Host() == nil {
		return
	}
	for _, p := range m.Host().Players() {
		m.tracker.apply(p, m.maxHealth())
	}
}

func (m *HealthModifier) Disable() {
	if m.Host() != nil {
		for _, p := range m.Host().Players() {
			m.tracker.reset(p)
		}
	}
	m.Base.Disable()
}

func (m *HealthModifier) onSpawn(e *world.Event) {
	if m.IsActive() && e.Player != nil {
		m.tracker.apply(e.Player, m.maxHealth())
	}
}
