// Package modifier implements the modifier orchestration engine: the registry of
// known modifiers, the ordered activation set, incompatibility-aware random
// selection and the Core that applies round-boundary policy.
//
// All engine state is owned by the host loop goroutine. External callers go
// through world.Scheduler.Submit.
package modifier

import (
	"time"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

// Host is the game-side API modifiers act on. *world.World implements it.
type Host interface {
	Players() []*model.Player
	Player(slot int) (*model.Player, bool)
	SpawnPoints() []model.Vec3
	FindSetting(name string) (*model.Setting, bool)
	IssueServerCommand(cmd string) error
	Broadcast(msg string)
	Center(msg string)
	Subscribe(t world.EventType, fn world.Handler) world.SubscriptionID
	Unsubscribe(id world.SubscriptionID)
	NextTick(fn func())
	Every(interval time.Duration, fn func()) *world.Timer
}

// Env is handed to a modifier when it joins the registry.
type Env struct {
	Host Host
	// PluginDir and ConfigDir are the parents of ConVarModifiers/ and ModifierConfig/.
	PluginDir string
	ConfigDir string
}

// Modifier is a named behaviour unit with an enable/disable lifecycle.
//
// Enable must tolerate a repeated call without a Disable in between. Disable must
// tolerate players that disconnected while the modifier was active.
type Modifier interface {
	Name() string
	Description() string
	SupportsRandomRounds() bool
	// IncompatibleNames returns the outgoing incompatibility edges.
	IncompatibleNames() []string
	// IsIncompatibleWith is a pure, case-insensitive membership test.
	IsIncompatibleWith(name string) bool
	IsRegistered() bool
	IsActive() bool

	Registered(env Env)
	Unregistered()
	Enable()
	Disable()
}

// Blocks reports whether a and b may not be active together. Each side declares
// only its own edges; either edge blocks.
func Blocks(a, b Modifier) bool {
	if a == nil || b == nil {
		return false
	}
	return a.IsIncompatibleWith(b.Name()) || b.IsIncompatibleWith(a.Name())
}
