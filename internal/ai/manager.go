package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

// TickManager ticks every registered bot on the host loop.
type TickManager struct {
	host     Host
	interval time.Duration

	controllers     sync.Map // slot → Controller
	controllerCount atomic.Int32
	sub             world.SubscriptionID
}

// NewTickManager creates a bot tick manager. interval <= 0 uses DefaultTickInterval.
func NewTickManager(host Host, interval time.Duration) *TickManager {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	m := &TickManager{host: host, interval: interval}
	m.sub = host.Subscribe(world.EventPlayerDisconnect, func(e *world.Event) {
		m.Unregister(e.Slot)
	})
	return m
}

// Register registers a controller for its slot.
func (m *TickManager) Register(controller Controller) {
	if _, loaded := m.controllers.Swap(controller.Slot(), controller); !loaded {
		m.controllerCount.Add(1)
	}
	slog.Debug("bot controller registered", "slot", controller.Slot())
}

// Unregister removes the controller for slot.
func (m *TickManager) Unregister(slot int) {
	if _, ok := m.controllers.LoadAndDelete(slot); !ok {
		return
	}
	m.controllerCount.Add(-1)
	slog.Debug("bot controller unregistered", "slot", slot)
}

// SpawnBots connects n bots alternating teams and registers a Bot for each.
func (m *TickManager) SpawnBots(n int, rng *rand.Rand) error {
	for i := range n {
		team := model.TeamTerrorist
		if i%2 == 1 {
			team = model.TeamCounterTerrorist
		}
		p, err := m.host.Connect(fmt.Sprintf("bot%02d", i+1), team)
		if err != nil {
			return fmt.Errorf("connecting bot %d: %w", i+1, err)
		}
		m.Register(NewBot(p.Slot(), m.host, rng))
	}
	return nil
}

// Start ticks bots until ctx is cancelled.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer m.host.Unsubscribe(m.sub)

	slog.Info("bot tick manager started", "interval", m.interval, "bots", m.Count())

	for {
		select {
		case <-ctx.Done():
			slog.Info("bot tick manager stopping")
			return nil
		case <-ticker.C:
			if err := m.host.Submit(ctx, m.tickAll); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				return fmt.Errorf("submitting bot tick: %w", err)
			}
		}
	}
}

// tickAll ticks all registered controllers. Runs on the host loop.
func (m *TickManager) tickAll() {
	count := 0
	m.controllers.Range(func(_, value any) bool {
		value.(Controller).Tick()
		count++
		return true
	})

	if count > 0 && IsDebugEnabled() {
		slog.Debug("bot tick completed", "controllers", count)
	}
}

// Count returns number of registered controllers.
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// GetController returns the controller for slot.
func (m *TickManager) GetController(slot int) (Controller, error) {
	value, ok := m.controllers.Load(slot)
	if !ok {
		return nil, fmt.Errorf("controller not found for slot %d", slot)
	}
	return value.(Controller), nil
}
