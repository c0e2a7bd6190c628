package model

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Team is the side a player fights for.
type Team uint8

const (
	TeamSpectator Team = iota
	TeamTerrorist
	TeamCounterTerrorist
)

func (t Team) String() string {
	switch t {
	case TeamTerrorist:
		return "T"
	case TeamCounterTerrorist:
		return "CT"
	default:
		return "SPEC"
	}
}

// Default pawn values restored by modifiers that have no cached original.
const (
	DefaultHealth          = 100
	DefaultMaxHealth       = 100
	DefaultFOV             = 90
	DefaultSpeedMultiplier = 1.0
)

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float64
}

// Player is a connected client and its pawn state.
// Slot is the stable per-connection id; a later connection may reuse it.
// Thread-safe: all fields are guarded by mu.
type Player struct {
	slot int
	name string

	mu        sync.RWMutex
	team      Team
	alive     bool
	health    int
	maxHealth int
	speed     float64
	fov       int
	glow      bool
	visible   bool
	pos       Vec3
	weapons   []string

	// Client-side overrides of replicated settings: name (lowercase) → value.
	clientSettings map[string]string
	// Commands executed on the client, oldest first.
	clientCommands []string
}

// NewPlayer creates a connected, dead player with default pawn values.
func NewPlayer(slot int, name string, team Team) (*Player, error) {
	if slot < 0 {
		return nil, fmt.Errorf("slot must be non-negative, got %d", slot)
	}
	if name == "" {
		return nil, fmt.Errorf("player name is empty")
	}
	return &Player{
		slot:           slot,
		name:           name,
		team:           team,
		health:         DefaultHealth,
		maxHealth:      DefaultMaxHealth,
		speed:          DefaultSpeedMultiplier,
		fov:            DefaultFOV,
		visible:        true,
		clientSettings: make(map[string]string),
	}, nil
}

func (p *Player) Slot() int    { return p.slot }
func (p *Player) Name() string { return p.name }

func (p *Player) Team() Team {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.team
}

func (p *Player) SetTeam(t Team) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.team = t
}

func (p *Player) IsAlive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.alive
}

func (p *Player) SetAlive(alive bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alive = alive
}

func (p *Player) Health() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health
}

// SetHealth sets current health. Health at or below zero kills the pawn.
func (p *Player) SetHealth(hp int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health = hp
	if hp <= 0 {
		p.alive = false
	}
}

func (p *Player) MaxHealth() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxHealth
}

// SetMaxHealth sets max health and tops current health up to it.
func (p *Player) SetMaxHealth(hp int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxHealth = hp
	p.health = hp
}

func (p *Player) SpeedMultiplier() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.speed
}

func (p *Player) SetSpeedMultiplier(m float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = m
}

func (p *Player) FOV() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fov
}

func (p *Player) SetFOV(fov int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fov = fov
}

func (p *Player) Glowing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.glow
}

func (p *Player) SetGlow(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.glow = on
}

// Visible reports whether the pawn is rendered to other players.
func (p *Player) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

func (p *Player) SetVisible(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = on
}

func (p *Player) Position() Vec3 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// SetPosition teleports the pawn.
func (p *Player) SetPosition(pos Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos = pos
}

// Weapons returns a copy of the carried weapon designer names.
func (p *Player) Weapons() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.weapons)
}

// GiveWeapon adds a weapon unless it is already carried.
func (p *Player) GiveWeapon(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if slices.Contains(p.weapons, name) {
		return
	}
	p.weapons = append(p.weapons, name)
}

// StripWeapons removes every weapon except the knife and returns what was removed.
func (p *Player) StripWeapons() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var removed []string
	kept := p.weapons[:0]
	for _, w := range p.weapons {
		if w == "weapon_knife" {
			kept = append(kept, w)
			continue
		}
		removed = append(removed, w)
	}
	p.weapons = kept
	return removed
}

// ClientSetting returns the client's override for a replicated setting.
func (p *Player) ClientSetting(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.clientSettings[strings.ToLower(name)]
	return v, ok
}

// ReplicateSetting overrides a replicated setting for this client only.
func (p *Player) ReplicateSetting(name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientSettings[strings.ToLower(name)] = value
}

// ExecuteClientCommand runs a command as if typed by the client.
func (p *Player) ExecuteClientCommand(cmd string) {
	p.executeClientCommand(cmd)
}

// ExecuteClientCommandFromServer runs a command on the client on behalf of the server.
// Used for settings the client is not allowed to execute itself.
func (p *Player) ExecuteClientCommandFromServer(cmd string) {
	p.executeClientCommand(cmd)
}

func (p *Player) executeClientCommand(cmd string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clientCommands = append(p.clientCommands, cmd)
	if name, value, ok := SplitDirective(cmd); ok {
		p.clientSettings[strings.ToLower(name)] = strings.Trim(value, `"`)
	}
}

// ClientCommands returns a copy of commands executed on this client.
func (p *Player) ClientCommands() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.clientCommands)
}
