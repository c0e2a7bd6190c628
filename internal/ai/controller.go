// Package ai drives bot players so that modifiers see spawns, damage and
// deaths without real clients connected.
package ai

import (
	"context"
	"time"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

// Controller drives one bot.
type Controller interface {
	// Slot is the player slot the controller owns.
	Slot() int
	// Tick performs one decision. Runs on the host loop.
	Tick()
}

// Host is the world surface bots act through.
type Host interface {
	Players() []*model.Player
	Player(slot int) (*model.Player, bool)
	Connect(name string, team model.Team) (*model.Player, error)
	Hurt(attacker *model.Player, victimSlot int, damage float64) int
	Subscribe(t world.EventType, fn world.Handler) world.SubscriptionID
	Unsubscribe(id world.SubscriptionID)
	Submit(ctx context.Context, fn func()) error
}

// DefaultTickInterval is how often bots act.
const DefaultTickInterval = time.Second
