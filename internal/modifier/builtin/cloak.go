package builtin

import (
	"math/rand/v2"
	"slices"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// CloakModifier turns players invisible. pick chooses who is cloaked on Enable.
// Cloaked players become visible again when they die or leave.
type CloakModifier struct {
	modifier.Base
	pick    func(players []*model.Player) []*model.Player
	cloaked map[int]bool // slots we made invisible
}

func newCloakModifier(base modifier.Base, pick func([]*model.Player) []*model.Player) *CloakModifier {
	return &CloakModifier{Base: base, pick: pick, cloaked: make(map[int]bool)}
}

// NewCloaked makes every player invisible.
func NewCloaked() *CloakModifier {
	return newCloakModifier(
		modifier.NewBase("Cloaked", "Everyone is invisible", true, "RandomCloak", "SingleCloak"),
		func(players []*model.Player) []*model.Player { return players })
}

// NewRandomCloak gives every player an even chance to be invisible.
func NewRandomCloak() *CloakModifier {
	return newCloakModifier(
		modifier.NewBase("RandomCloak", "Everyone has a random chance to be invisible", true, "Cloaked", "SingleCloak"),
		func(players []*model.Player) []*model.Player {
			return slices.DeleteFunc(slices.Clone(players), func(*model.Player) bool { return rand.IntN(2) == 1 })
		})
}

// NewSingleCloak makes one random player of each team invisible.
func NewSingleCloak() *CloakModifier {
	return newCloakModifier(
		modifier.NewBase("SingleCloak", "Each team has an invisible player", true, "Cloaked", "RandomCloak"),
		func(players []*model.Player) []*model.Player {
			var picked []*model.Player
			for _, team := range []model.Team{model.TeamTerrorist, model.TeamCounterTerrorist} {
				members := slices.DeleteFunc(slices.Clone(players), func(p *model.Player) bool { return p.Team() != team })
				if len(members) > 0 {
					picked = append(picked, members[rand.IntN(len(members))])
				}
			}
			return picked
		})
}

func (m *CloakModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerHurt, func(e *world.Event) {
		if e.Player != nil && !e.Player.IsAlive() {
			m.uncloak(e.Player)
		}
	})
	m.Listen(world.EventPlayerDisconnect, func(e *world.Event) {
		if e.Player != nil {
			m.uncloak(e.Player)
		}
		delete(m.cloaked, e.Slot)
	})
}

func (m *CloakModifier) Enable() {
	m.Base.Enable()
	if m.Host() == nil {
		return
	}
	for _, p := range m.pick(m.Host().Players()) {
		m.cloak(p)
	}
}

func (m *CloakModifier) Disable() {
	if m.Host() != nil {
		for _, p := range m.Host().Players() {
			m.uncloak(p)
		}
	}
	clear(m.cloaked)
	m.Base.Disable()
}

func (m *CloakModifier) cloak(p *model.Player) {
	if m.cloaked[p.Slot()] {
		return
	}
	p.SetVisible(false)
	m.cloaked[p.Slot()] = true
}

func (m *CloakModifier) uncloak(p *model.Player) {
	if !m.cloaked[p.Slot()] {
		return
	}
	p.SetVisible(true)
	delete(m.cloaked, p.Slot())
}
