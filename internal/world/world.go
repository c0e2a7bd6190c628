package world

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/udisondev/roundmods/internal/model"
)

// MaxPlayers is the number of player slots.
const MaxPlayers = 64

// maxMessages bounds the broadcast history kept for inspection.
const maxMessages = 256

// World is the match host: console settings, connected players, events and the
// deferred-work scheduler. It stands in for the game engine the modifiers drive.
type World struct {
	bus   *Bus
	sched *Scheduler

	mu       sync.RWMutex
	settings map[string]*model.Setting // lowercase name → setting
	spawns   map[model.Team][]model.Vec3
	players  map[int]*model.Player     // slot → player
	messages []string
	centre   string
	round    int
}

// New creates an empty world with the default settings table.
func New() *World {
	w := &World{
		bus:      NewBus(),
		sched:    NewScheduler(time.Now()),
		settings: make(map[string]*model.Setting, 32),
		players:  make(map[int]*model.Player, MaxPlayers),
		spawns:   DefaultSpawnPoints(),
	}
	for _, s := range DefaultSettings() {
		w.RegisterSetting(s)
	}
	return w
}

// Bus returns the event bus.
func (w *World) Bus() *Bus { return w.bus }

// Scheduler returns the deferred-work scheduler.
func (w *World) Scheduler() *Scheduler { return w.sched }

// Subscribe registers an event handler.
func (w *World) Subscribe(t EventType, fn Handler) SubscriptionID {
	return w.bus.Subscribe(t, fn)
}

// Unsubscribe removes an event handler.
func (w *World) Unsubscribe(id SubscriptionID) {
	w.bus.Unsubscribe(id)
}

// NextTick defers fn to the next host tick.
func (w *World) NextTick(fn func()) {
	w.sched.NextTick(fn)
}

// Every schedules fn on a fixed cadence until the timer is killed.
func (w *World) Every(interval time.Duration, fn func()) *Timer {
	return w.sched.Every(interval, fn)
}

// RegisterSetting adds or replaces a console setting.
func (w *World) RegisterSetting(s *model.Setting) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings[strings.ToLower(s.Name())] = s
}

// FindSetting looks a setting up by case-insensitive name.
func (w *World) FindSetting(name string) (*model.Setting, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s, ok := w.settings[strings.ToLower(name)]
	return s, ok
}

// IssueServerCommand executes a "<setting> <value>" console line.
func (w *World) IssueServerCommand(cmd string) error {
	name, value, ok := model.SplitDirective(cmd)
	if !ok {
		return fmt.Errorf("malformed server command %q", cmd)
	}
	s, found := w.FindSetting(name)
	if !found {
		return fmt.Errorf("unknown setting %q", name)
	}
	if err := s.Set(value); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	slog.Debug("server command", "command", cmd)
	return nil
}

// Broadcast sends a chat line to every player.
func (w *World) Broadcast(msg string) {
	w.mu.Lock()
	w.messages = append(w.messages, msg)
	if len(w.messages) > maxMessages {
		w.messages = slices.Clone(w.messages[len(w.messages)-maxMessages:])
	}
	w.mu.Unlock()

	slog.Info("chat", "message", msg)
}

// Center shows a message in the middle of every player's screen.
func (w *World) Center(msg string) {
	w.mu.Lock()
	w.centre = msg
	w.mu.Unlock()

	slog.Info("centre message", "message", msg)
}

// Messages returns the broadcast history, oldest first.
func (w *World) Messages() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.messages)
}

// CenterMessage returns the last centre message.
func (w *World) CenterMessage() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.centre
}

// Players returns connected players ordered by slot.
func (w *World) Players() []*model.Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]*model.Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *model.Player) int { return a.Slot() - b.Slot() })
	return out
}

// Player returns the player in slot.
func (w *World) Player(slot int) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[slot]
	return p, ok
}

// PlayerCount returns the number of connected players.
func (w *World) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// Connect places a new player in the lowest free slot and emits EventPlayerConnected.
func (w *World) Connect(name string, team model.Team) (*model.Player, error) {
	w.mu.Lock()
	slot := -1
	for i := range MaxPlayers {
		if _, taken := w.players[i]; !taken {
			slot = i
			break
		}
	}
	if slot < 0 {
		w.mu.Unlock()
		return nil, fmt.Errorf("server full (%d slots)", MaxPlayers)
	}
	p, err := model.NewPlayer(slot, name, team)
	if err != nil {
		w.mu.Unlock()
		return nil, fmt.Errorf("connecting %s: %w", name, err)
	}
	w.players[slot] = p
	w.mu.Unlock()

	slog.Info("player connected", "name", name, "slot", slot)
	w.bus.Emit(&Event{Type: EventPlayerConnected, Slot: slot, Player: p})
	return p, nil
}

// Disconnect emits EventPlayerDisconnect while the player is still present, then
// frees the slot.
func (w *World) Disconnect(slot int) bool {
	p, ok := w.Player(slot)
	if !ok {
		return false
	}

	w.bus.Emit(&Event{Type: EventPlayerDisconnect, Slot: slot, Player: p})

	w.mu.Lock()
	delete(w.players, slot)
	w.mu.Unlock()

	slog.Info("player disconnected", "name", p.Name(), "slot", slot)
	return true
}

// SpawnPoints returns every team's spawn spots, terrorists first.
func (w *World) SpawnPoints() []model.Vec3 {
	var out []model.Vec3
	for _, team := range []model.Team{model.TeamTerrorist, model.TeamCounterTerrorist} {
		out = append(out, w.spawns[team]...)
	}
	return out
}

// Spawn revives a player's pawn with default health and emits EventPlayerSpawn.
func (w *World) Spawn(slot int) bool {
	p, ok := w.Player(slot)
	if !ok {
		return false
	}
	p.SetMaxHealth(model.DefaultMaxHealth)
	p.SetAlive(true)
	if points := w.spawns[p.Team()]; len(points) > 0 {
		p.SetPosition(points[slot%len(points)])
	}
	p.GiveWeapon("weapon_knife")

	w.bus.Emit(&Event{Type: EventPlayerSpawn, Slot: slot, Player: p})
	return true
}

// Hurt applies damage from attacker (may be nil) to the victim. EventTakeDamage
// handlers may scale the damage before it is applied. Returns damage dealt.
func (w *World) Hurt(attacker *model.Player, victimSlot int, damage float64) int {
	victim, ok := w.Player(victimSlot)
	if !ok || !victim.IsAlive() {
		return 0
	}

	pre := &Event{Type: EventTakeDamage, Slot: victimSlot, Player: victim, Attacker: attacker, Damage: damage}
	w.bus.Emit(pre)

	dealt := int(pre.Damage)
	if dealt < 0 {
		dealt = 0
	}
	victim.SetHealth(victim.Health() - dealt)

	w.bus.Emit(&Event{Type: EventPlayerHurt, Slot: victimSlot, Player: victim, Attacker: attacker, Damage: float64(dealt)})
	return dealt
}

// Round returns the current round number (0 before the first round).
func (w *World) Round() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.round
}

// StartRound respawns every player and emits EventRoundStart.
func (w *World) StartRound() {
	w.mu.Lock()
	w.round++
	round := w.round
	w.mu.Unlock()

	for _, p := range w.Players() {
		w.Spawn(p.Slot())
	}

	slog.Info("round started", "round", round)
	w.bus.Emit(&Event{Type: EventRoundStart, Round: round})
}

// EndRound emits EventRoundEnd.
func (w *World) EndRound() {
	round := w.Round()
	slog.Info("round ended", "round", round)
	w.bus.Emit(&Event{Type: EventRoundEnd, Round: round})
}

// Tick advances the scheduler.
func (w *World) Tick(now time.Time) {
	w.sched.Tick(now)
}

// Submit runs fn on the host loop and waits for it.
func (w *World) Submit(ctx context.Context, fn func()) error {
	return w.sched.Submit(ctx, fn)
}
