package world

import (
	"log/slog"
	"sync"

	"github.com/udisondev/roundmods/internal/model"
)

// EventType identifies a game event.
type EventType uint8

const (
	EventPlayerConnected EventType = iota + 1
	EventPlayerDisconnect
	EventPlayerSpawn
	EventTakeDamage // before damage is applied; handlers may change Damage
	EventPlayerHurt // after damage is applied
	EventRoundStart
	EventRoundEnd
)

func (t EventType) String() string {
	switch t {
	case EventPlayerConnected:
		return "player_connected"
	case EventPlayerDisconnect:
		return "player_disconnect"
	case EventPlayerSpawn:
		return "player_spawn"
	case EventTakeDamage:
		return "take_damage"
	case EventPlayerHurt:
		return "player_hurt"
	case EventRoundStart:
		return "round_start"
	case EventRoundEnd:
		return "round_end"
	default:
		return "unknown"
	}
}

// Event carries the payload of a game event.
// Player and Attacker may be nil depending on the type.
type Event struct {
	Type     EventType
	Slot     int
	Player   *model.Player
	Attacker *model.Player
	Damage   float64
	Round    int
}

// Handler processes an event. Handlers run on the host loop.
type Handler func(e *Event)

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn Handler
}

// Bus distributes events to subscribers in subscription order.
type Bus struct {
	mu        sync.RWMutex
	listeners map[EventType][]subscription
	nextID    SubscriptionID
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]subscription),
	}
}

// Subscribe adds a handler for the given event type.
func (b *Bus) Subscribe(t EventType, fn Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[t] = append(b.listeners[t], subscription{id: id, fn: fn})
	return id
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for t, subs := range b.listeners {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			b.listeners[t] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers the event to a snapshot of the current subscribers, so handlers
// may subscribe or unsubscribe while it runs.
func (b *Bus) Emit(e *Event) {
	b.mu.RLock()
	subs := make([]subscription, len(b.listeners[e.Type]))
	copy(subs, b.listeners[e.Type])
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}

	if len(subs) > 0 {
		slog.Debug("event emitted", "type", e.Type, "listeners", len(subs))
	}
}

// Count returns the number of handlers subscribed to t.
func (b *Bus) Count(t EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[t])
}
