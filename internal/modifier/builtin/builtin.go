// Package builtin holds the compiled modifiers.
package builtin

import "github.com/udisondev/roundmods/internal/modifier"

// Factories returns the static table of compiled modifiers, in registration order.
func Factories() []modifier.Factory {
	return []modifier.Factory{
		func() modifier.Modifier { return NewJuggernaut() },
		func() modifier.Modifier { return NewGlassCannon() },
		func() modifier.Modifier { return NewRandomHealth() },
		func() modifier.Modifier { return NewLightweight() },
		func() modifier.Modifier { return NewLeadBoots() },
		func() modifier.Modifier { return NewMoreDamage() },
		func() modifier.Modifier { return NewLessDamage() },
		func() modifier.Modifier { return NewKnivesOnly() },
		func() modifier.Modifier { return NewGrenadesOnly() },
		func() modifier.Modifier { return NewRandomWeapon() },
		func() modifier.Modifier { return NewVampire() },
		func() modifier.Modifier { return NewZoomIn() },
		func() modifier.Modifier { return NewZoomOut() },
		func() modifier.Modifier { return NewXray() },
		func() modifier.Modifier { return NewCloaked() },
		func() modifier.Modifier { return NewRandomCloak() },
		func() modifier.Modifier { return NewSingleCloak() },
		func() modifier.Modifier { return NewTeleportOnHit() },
		func() modifier.Modifier { return NewSwapOnHit() },
	}
}
