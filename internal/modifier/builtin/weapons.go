package builtin

import (
	"math/rand/v2"
	"strings"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
	"github.com/udisondev/roundmods/internal/world"
)

var randomWeapons = []string{
	"weapon_ak47", "weapon_m4a1", "weapon_m4a1_silencer", "weapon_awp", "weapon_ssg08",
	"weapon_deagle", "weapon_revolver", "weapon_glock", "weapon_usp_silencer", "weapon_p250",
	"weapon_fiveseven", "weapon_tec9", "weapon_cz75a", "weapon_famas", "weapon_aug",
	"weapon_sg556", "weapon_mac10", "weapon_mp9", "weapon_mp7", "weapon_mp5sd",
	"weapon_ump45", "weapon_p90", "weapon_bizon", "weapon_nova", "weapon_xm1014",
	"weapon_mag7", "weapon_sawedoff", "weapon_m249", "weapon_negev", "weapon_taser",
}

var grenades = []string{
	"weapon_molotov", "weapon_smokegrenade", "weapon_hegrenade", "weapon_flashbang",
}

// weaponStash holds the weapons taken from each slot until they are returned.
type weaponStash struct {
	items map[int][]string // slot → weapon names
}

func newWeaponStash() weaponStash {
	return weaponStash{items: make(map[int][]string)}
}

func (s *weaponStash) take(p *model.Player) {
	removed := p.StripWeapons()
	s.items[p.Slot()] = append(s.items[p.Slot()], removed...)
}

// giveBack strips whatever the player holds now and returns the stashed weapons.
func (s *weaponStash) giveBack(p *model.Player) {
	p.StripWeapons()
	for _, w := range s.items[p.Slot()] {
		p.GiveWeapon(w)
	}
	delete(s.items, p.Slot())
}

func (s *weaponStash) forget(slot int) { delete(s.items, slot) }
func (s *weaponStash) reset()          { clear(s.items) }

// WeaponModifier removes everyone's weapons and optionally hands out a loadout.
type WeaponModifier struct {
	modifier.Base
	stash   weaponStash
	loadout func(host modifier.Host) []string
	current []string // loadout rolled at the last Enable
}

func newWeaponModifier(base modifier.Base, loadout func(host modifier.Host) []string) *WeaponModifier {
	return &WeaponModifier{Base: base, stash: newWeaponStash(), loadout: loadout}
}

// NewKnivesOnly takes every weapon but the knife.
func NewKnivesOnly() *WeaponModifier {
	return newWeaponModifier(
		modifier.NewBase("KnivesOnly", "Buy menu is disabled, knives only", true, "GrenadesOnly", "RandomWeapon"),
		nil)
}

// NewGrenadesOnly leaves the knife and hands out grenades.
func NewGrenadesOnly() *WeaponModifier {
	return newWeaponModifier(
		modifier.NewBase("GrenadesOnly", "Buy menu is disabled, grenades only", true, "KnivesOnly", "RandomWeapon"),
		func(modifier.Host) []string { return grenades })
}

// NewRandomWeapon gives everyone the same weapon, rolled on each enable.
func NewRandomWeapon() *WeaponModifier {
	return newWeaponModifier(
		modifier.NewBase("RandomWeapon", "Buy menu is disabled, random weapon only", true, "KnivesOnly", "GrenadesOnly"),
		func(host modifier.Host) []string {
			weapon := randomWeapons[rand.IntN(len(randomWeapons))]
			host.Broadcast(strings.TrimPrefix(weapon, "weapon_") + " round.")
			return []string{weapon}
		})
}

func (m *WeaponModifier) Registered(env modifier.Env) {
	m.Base.Registered(env)
	m.Listen(world.EventPlayerSpawn, m.onSpawn)
	m.Listen(world.EventPlayerDisconnect, func(e *world.Event) { m.stash.forget(e.Slot) })
}

// Enable starts from an empty stash so a repeated enable cannot leak stale entries.
func (m *WeaponModifier) Enable() {
	m.stash.reset()
	m.Base.Enable()

	host := m.Host()
	if host == nil {
		return
	}

	m.current = nil
	if m.loadout != nil {
		m.current = m.loadout(host)
	}
	for _, p := range host.Players() {
		m.stash.take(p)
		for _, w := range m.current {
			p.GiveWeapon(w)
		}
	}
	host.Broadcast("Removing items, they will be returned when the modifier is disabled.")
}

func (m *WeaponModifier) Disable() {
	if host := m.Host(); host != nil {
		for _, p := range host.Players() {
			m.stash.giveBack(p)
		}
		host.Broadcast("Returning items...")
	}
	m.stash.reset()
	m.Base.Disable()
}

func (m *WeaponModifier) onSpawn(e *world.Event) {
	if !m.IsActive() || e.Player == nil {
		return
	}
	e.Player.StripWeapons()
	for _, w := range m.current {
		e.Player.GiveWeapon(w)
	}
}
