package modifier

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/roundmods/internal/world"
)

// Options configures a Core.
type Options struct {
	Env       Env
	Factories []Factory
	Disabled  []string

	RandomRoundsByDefault bool
	ShowCentreMessage     bool
	CanRepeat             bool
	MinRandom             int
	MaxRandom             int

	// Rand seeds the selector; nil uses a random seed.
	Rand    *rand.Rand
	Journal Journal
}

// Core owns the registry, the activation set and the last-roll history, and
// applies round-boundary policy. Every method must run on the host loop.
type Core struct {
	env       Env
	factories []Factory
	disabled  []string
	journal   Journal

	registry *Registry
	active   ActivationSet
	history  []Modifier
	selector *Selector

	randomByDefault bool
	showCentre      bool
	canRepeat       bool
	randomRounds    bool
	minRandom       int
	maxRandom       int

	round   int
	roundID uuid.UUID
	subs    []world.SubscriptionID
	loaded  bool
}

// NewCore creates an unloaded Core.
func NewCore(opts Options) *Core {
	journal := opts.Journal
	if journal == nil {
		journal = NopJournal{}
	}
	minRandom, maxRandom := max(opts.MinRandom, 0), max(opts.MaxRandom, 0)

	return &Core{
		env:             opts.Env,
		factories:       opts.Factories,
		disabled:        opts.Disabled,
		journal:         journal,
		registry:        NewRegistry(),
		selector:        NewSelector(opts.Rand),
		randomByDefault: opts.RandomRoundsByDefault,
		showCentre:      opts.ShowCentreMessage,
		canRepeat:       opts.CanRepeat,
		minRandom:       minRandom,
		maxRandom:       maxRandom,
		roundID:         uuid.New(),
	}
}

// Load builds the registry and subscribes to round events.
func (c *Core) Load() {
	if c.loaded {
		slog.Warn("modifier core already loaded")
		return
	}
	c.loaded = true

	c.build()

	if host := c.env.Host; host != nil {
		c.subs = append(c.subs,
			host.Subscribe(world.EventRoundStart, func(e *world.Event) { c.OnRoundStart(e.Round) }),
			host.Subscribe(world.EventRoundEnd, func(*world.Event) { c.OnRoundEnd() }),
		)
	}

	slog.Info("modifier core loaded",
		"registered", c.registry.Len(),
		"randomRounds", c.randomRounds)
}

// Unload removes every active modifier, unregisters all modifiers and stops
// listening to round events.
func (c *Core) Unload() {
	c.RemoveAll(ReasonUnload)
	c.registry.Clear()
	c.history = nil

	if host := c.env.Host; host != nil {
		for _, id := range c.subs {
			host.Unsubscribe(id)
		}
	}
	c.subs = nil
	c.loaded = false

	slog.Info("modifier core unloaded")
}

// Reload force-removes active modifiers and rebuilds the registry from scratch.
func (c *Core) Reload() {
	c.RemoveAll(ReasonReload)
	c.registry.Clear()
	c.history = nil
	c.build()

	slog.Info("modifiers reloaded", "registered", c.registry.Len())
}

func (c *Core) build() {
	c.registry.Build(BuildOptions{
		Env:       c.env,
		Factories: c.factories,
		Disabled:  c.disabled,
	})
	if c.randomByDefault {
		c.randomRounds = true
	}
}

// Registry returns the modifier catalog.
func (c *Core) Registry() *Registry { return c.registry }

// Registered returns every registered modifier in registration order.
func (c *Core) Registered() []Modifier { return c.registry.All() }

// Active returns the active modifiers in activation order.
func (c *Core) Active() []Modifier { return c.active.Items() }

// History returns the modifiers active right after the last successful roll.
func (c *Core) History() []Modifier {
	out := make([]Modifier, len(c.history))
	copy(out, c.history)
	return out
}

// IsActive reports whether a modifier with the given name is active.
func (c *Core) IsActive(name string) bool {
	_, ok := c.active.Find(name)
	return ok
}

// IsRegistered reports whether a modifier with the given name is registered.
func (c *Core) IsRegistered(name string) bool {
	_, ok := c.registry.Lookup(name)
	return ok
}

// RandomRounds reports whether every round start rolls fresh modifiers.
func (c *Core) RandomRounds() bool { return c.randomRounds }

// MinRandom returns the lower bound of modifiers rolled per random round.
func (c *Core) MinRandom() int { return c.minRandom }

// MaxRandom returns the upper bound of modifiers rolled per random round.
func (c *Core) MaxRandom() int { return c.maxRandom }

// Round returns the number of the last round that started.
func (c *Core) Round() int { return c.round }

// AddByName activates a registered modifier.
// Errors: ErrNoModifiers, ErrNotRegistered, *IncompatibleError, ErrAlreadyActive.
func (c *Core) AddByName(name string) error {
	if c.registry.Len() == 0 {
		return ErrNoModifiers
	}
	m, ok := c.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotRegistered)
	}
	return c.Add(m)
}

// Add activates m.
func (c *Core) Add(m Modifier) error {
	if m == nil {
		slog.Warn("trying to add nil modifier")
		return ErrNilModifier
	}

	if blocking := c.active.Blocking(m); len(blocking) > 0 {
		return &IncompatibleError{Name: m.Name(), Blocking: blocking}
	}
	if c.active.Contains(m) {
		return fmt.Errorf("%s: %w", m.Name(), ErrAlreadyActive)
	}

	c.activate([]Modifier{m}, ReasonCommand)
	return nil
}

// RemoveByName deactivates the first active modifier matching name.
// Nothing active is a successful no-op; no match is ErrNotActive.
func (c *Core) RemoveByName(name string) error {
	if c.active.Len() == 0 {
		return nil
	}
	m, ok := c.active.Find(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotActive)
	}
	return c.Remove(m)
}

// Remove deactivates m.
func (c *Core) Remove(m Modifier) error {
	if m == nil {
		slog.Warn("trying to remove nil modifier")
		return ErrNilModifier
	}
	if !c.active.Contains(m) {
		return fmt.Errorf("%s: %w", m.Name(), ErrNotActive)
	}

	m.Disable()
	c.active.Remove(m)
	c.record(ActionDeactivated, ReasonCommand, []Modifier{m})

	slog.Info("modifier removed", "modifier", m.Name())
	return nil
}

// ToggleByName adds or removes a modifier. added reports the new state.
func (c *Core) ToggleByName(name string) (added bool, err error) {
	if !c.IsRegistered(name) {
		slog.Warn("trying to toggle unregistered modifier", "modifier", name)
		return false, fmt.Errorf("%s: %w", name, ErrNotRegistered)
	}
	if c.IsActive(name) {
		return false, c.RemoveByName(name)
	}
	if err := c.AddByName(name); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveAll disables every active modifier, newest first.
func (c *Core) RemoveAll(reason JournalReason) {
	if c.active.Len() == 0 {
		return
	}

	removed := c.active.Reversed()
	c.broadcast("Removing modifiers:")
	for _, m := range removed {
		m.Disable()
		c.broadcast("• " + m.Name())
	}
	c.active.Clear()
	c.record(ActionCleared, reason, removed)

	slog.Info("removed all modifiers", "count", len(removed), "reason", reason)
}

// AddRandom activates up to k random compatible modifiers and records them as
// the last roll. Fewer than k are activated when the pool is smaller.
func (c *Core) AddRandom(k int) ([]Modifier, error) {
	return c.addRandom(k, ReasonCommand)
}

func (c *Core) addRandom(k int, reason JournalReason) ([]Modifier, error) {
	if k <= 0 {
		return nil, nil
	}

	picked, err := c.selector.Select(SelectRequest{
		Registered: c.registry.All(),
		Active:     &c.active,
		History:    c.history,
		Count:      k,
		CanRepeat:  c.canRepeat,
	})
	if err != nil {
		slog.Warn("random modifier selection failed", "requested", k, "error", err)
		return nil, err
	}

	c.activate(picked, reason)
	c.history = c.active.Items()
	c.record(ActionRolled, reason, picked)
	return picked, nil
}

// SetRandomRounds switches random-rounds mode. Turning it on needs at least one
// registered modifier; turning it off removes every active modifier.
func (c *Core) SetRandomRounds(on bool) error {
	if on && !c.randomRounds && c.registry.Len() == 0 {
		return ErrNoModifiers
	}
	if on == c.randomRounds {
		return nil
	}
	c.randomRounds = on

	if on {
		c.broadcast("Random rounds enabled for next round!")
		c.centre("Random Rounds Enabled")
	} else {
		c.broadcast("Random rounds disabled!")
		c.centre("Random Rounds Disabled")
		c.RemoveAll(ReasonCommand)
	}

	slog.Info("random rounds toggled", "enabled", on)
	return nil
}

// ToggleRandomRounds flips random-rounds mode and returns the new state.
func (c *Core) ToggleRandomRounds() (bool, error) {
	if err := c.SetRandomRounds(!c.randomRounds); err != nil {
		return c.randomRounds, err
	}
	return c.randomRounds, nil
}

// SetMinRandom sets the lower bound of modifiers rolled each random round.
func (c *Core) SetMinRandom(n int) error {
	if n < 0 {
		return fmt.Errorf("min random count %d: %w", n, ErrInvalidInput)
	}
	c.minRandom = n
	return nil
}

// SetMaxRandom sets the upper bound of modifiers rolled each random round.
func (c *Core) SetMaxRandom(n int) error {
	if n < 0 {
		return fmt.Errorf("max random count %d: %w", n, ErrInvalidInput)
	}
	c.maxRandom = n
	return nil
}

// Reroll replaces the current random-round modifiers with a fresh roll.
func (c *Core) Reroll() error {
	if !c.randomRounds {
		return ErrRandomRoundsDisabled
	}
	if c.registry.Len() == 0 {
		return ErrNoModifiers
	}
	c.RemoveAll(ReasonReroll)
	c.rollRound(ReasonReroll)
	return nil
}

// OnRoundStart applies round-start policy: a fresh roll in random-rounds mode,
// otherwise a Disable/Enable cycle of every active modifier in activation order.
func (c *Core) OnRoundStart(round int) {
	c.round = round
	c.roundID = uuid.New()

	if !c.randomRounds {
		for _, m := range c.active.Items() {
			m.Disable()
			m.Enable()
		}
		return
	}

	if c.registry.Len() == 0 {
		c.broadcast("No registered modifiers found! Skipping random round...")
		return
	}
	c.RemoveAll(ReasonRoundStart)
	c.rollRound(ReasonRoundStart)
}

// OnRoundEnd removes random-round modifiers.
func (c *Core) OnRoundEnd() {
	if c.randomRounds {
		c.RemoveAll(ReasonRoundEnd)
	}
}

func (c *Core) rollRound(reason JournalReason) {
	count := c.selector.RollCount(c.minRandom, c.maxRandom)
	if _, err := c.addRandom(count, reason); err != nil {
		c.broadcast("Failed to apply random modifiers! Skipping random round...")
	}
}

// activate enables a batch behind one announcement, in the given order.
func (c *Core) activate(batch []Modifier, reason JournalReason) {
	if len(batch) == 0 {
		return
	}

	if c.showCentre {
		names := make([]string, len(batch))
		for i, m := range batch {
			names[i] = m.Name()
		}
		c.centre("Activating Modifiers:\n" + strings.Join(names, ", "))
	}

	c.broadcast("Activating modifiers:")
	for _, m := range batch {
		c.broadcast(fmt.Sprintf("• %s - [%s]", m.Name(), m.Description()))
	}

	for _, m := range batch {
		m.Enable()
		c.active.Append(m)
		slog.Info("modifier activated", "modifier", m.Name(), "reason", reason)
	}
	c.record(ActionActivated, reason, batch)
}

func (c *Core) record(action JournalAction, reason JournalReason, mods []Modifier) {
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name()
	}
	c.journal.Record(JournalEvent{
		RoundID:   c.roundID,
		Round:     c.round,
		Action:    action,
		Reason:    reason,
		Modifiers: names,
		At:        time.Now(),
	})
}

func (c *Core) broadcast(msg string) {
	if c.env.Host != nil {
		c.env.Host.Broadcast(msg)
	}
}

func (c *Core) centre(msg string) {
	if c.env.Host != nil {
		c.env.Host.Center(msg)
	}
}
