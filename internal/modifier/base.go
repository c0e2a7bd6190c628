package modifier

import (
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/udisondev/roundmods/internal/world"
)

// OverlayDir is the directory, under the plugin and config dirs, holding
// per-modifier <Name>.cfg files applied alongside compiled behaviour.
const OverlayDir = "ModifierConfig"

// Base implements the identity and lifecycle bookkeeping shared by every
// modifier. Concrete modifiers embed it and wrap Enable/Disable.
type Base struct {
	name         string
	description  string
	random       bool
	incompatible []string

	host       Host
	registered bool
	active     bool

	config     *Config
	ownsConfig bool // config came from the modifier's own file; skip overlay lookup
	subs       []world.SubscriptionID
}

// NewBase creates a Base. incompatible lists the names this modifier blocks.
func NewBase(name, description string, supportsRandom bool, incompatible ...string) Base {
	return Base{
		name:         name,
		description:  description,
		random:       supportsRandom,
		incompatible: slices.Clone(incompatible),
	}
}

// Name returns the registry key. Lookups compare it case-insensitively.
func (b *Base) Name() string { return b.name }

// Description returns the text shown when the modifier is listed or activated.
func (b *Base) Description() string { return b.description }

// SupportsRandomRounds reports whether the selector may roll this modifier.
func (b *Base) SupportsRandomRounds() bool { return b.random }

// IsRegistered reports whether the modifier is attached to a host.
func (b *Base) IsRegistered() bool { return b.registered }

// IsActive reports whether the modifier is enabled.
func (b *Base) IsActive() bool { return b.active }

// Host returns the host the modifier was registered with, or nil.
func (b *Base) Host() Host { return b.host }

// Config returns the attached directive config, or nil.
func (b *Base) Config() *Config { return b.config }

// IncompatibleNames returns a copy of the declared incompatibility edges.
func (b *Base) IncompatibleNames() []string {
	return slices.Clone(b.incompatible)
}

// IsIncompatibleWith reports whether name is among the declared edges.
func (b *Base) IsIncompatibleWith(name string) bool {
	return slices.ContainsFunc(b.incompatible, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

// Registered attaches the modifier to the host, loads the optional overlay config
// and starts tracking late joiners for it.
func (b *Base) Registered(env Env) {
	if env.Host == nil {
		slog.Warn("modifier registered without host", "modifier", b.name)
		return
	}
	b.host = env.Host
	b.registered = true

	if !b.ownsConfig {
		b.config = loadOverlay(b.name, env.PluginDir, env.ConfigDir)
	}
	if b.config != nil {
		b.Listen(world.EventPlayerConnected, b.onConnected)
		b.Listen(world.EventPlayerDisconnect, b.onDisconnect)
	}
}

// Unregistered drops every subscription made through Listen.
func (b *Base) Unregistered() {
	if b.host != nil {
		for _, id := range b.subs {
			b.host.Unsubscribe(id)
		}
	}
	b.subs = nil
	b.registered = false
	b.active = false
}

// Enable marks the modifier active and applies its config.
func (b *Base) Enable() {
	b.active = true
	if b.config != nil && b.host != nil {
		b.config.Apply(b.host)
	}
}

// Disable rolls back its config and marks the modifier inactive.
func (b *Base) Disable() {
	if b.config != nil && b.host != nil {
		b.config.Remove(b.host)
	}
	b.active = false
}

// Listen subscribes fn for the modifier's registered lifetime.
func (b *Base) Listen(t world.EventType, fn world.Handler) {
	if b.host == nil {
		return
	}
	b.subs = append(b.subs, b.host.Subscribe(t, fn))
}

func (b *Base) onConnected(e *world.Event) {
	if !b.active || e.Player == nil {
		return
	}
	b.config.ApplyClient(b.host, e.Player)
}

func (b *Base) onDisconnect(e *world.Event) {
	if b.active && e.Player != nil {
		b.config.RemoveClient(e.Player)
	}
	b.config.ForgetSlot(e.Slot)
}

// loadOverlay returns the first <name>.cfg found in the plugin dir, then the
// config dir. Missing directories are created.
func loadOverlay(name, pluginDir, configDir string) *Config {
	for _, root := range []string{pluginDir, configDir} {
		if root == "" {
			continue
		}
		dir := filepath.Join(root, OverlayDir)
		if err := ensureDir(dir); err != nil {
			slog.Warn("cannot create overlay dir", "dir", dir, "error", err)
			continue
		}

		cfg, err := ParseConfig(filepath.Join(dir, name+".cfg"), nil)
		if err != nil {
			if !errors.Is(err, ErrConfigNotFound) {
				slog.Warn("failed to parse overlay config", "modifier", name, "error", err)
			}
			continue
		}
		slog.Info("loaded overlay config", "modifier", name, "path", cfg.Path())
		return cfg
	}
	return nil
}
