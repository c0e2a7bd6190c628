package builtin

import (
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

// DamageModifier scales all damage before it is applied.
type DamageModifier struct {
	modifier.Base
	multiplier float64
}

// NewMoreDamage doubles all damage dealt.
func NewMoreDamage() *DamageModifier {
	return &DamageModifier{
		Base:       modifier.NewBase("MoreDamage", "Damage dealt is doubled", true, "LessDamage"),
		multiplier: 2.0,
	}
}

// NewLessDamage halves all damage dealt.
func NewLessDamage() *DamageModifier {
	return &DamageModifier{
		Base:       modifier.NewBase("LessDamage", "Damage dealt is halved", true, "MoreDamage"),
		multiplier: 0.5,
	}
}

func (m *DamageModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventTakeDamage, func(e *world.Event) {
		if m.IsActive() {
			e.Damage *= m.multiplier
		}
	})
}
