package world

import (
	"context"
	"log/slog"
	"time"
)

// MatchConfig controls the simulated round clock.
type MatchConfig struct {
	TickInterval  time.Duration
	RoundDuration time.Duration
	FreezeTime    time.Duration // pause between round end and the next round start
}

// Match drives the host loop: it ticks the scheduler and starts/ends rounds on a
// fixed clock. All game callbacks run on the goroutine calling Run.
type Match struct {
	world *World
	cfg   MatchConfig

	inRound    bool
	phaseUntil time.Time
}

// NewMatch creates a match loop for w.
func NewMatch(w *World, cfg MatchConfig) *Match {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	if cfg.RoundDuration <= 0 {
		cfg.RoundDuration = 2 * time.Minute
	}
	if cfg.FreezeTime < 0 {
		cfg.FreezeTime = 0
	}
	return &Match{world: w, cfg: cfg}
}

// Run blocks until ctx is cancelled. The first round starts after one freeze period.
func (m *Match) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.TickInterval)
	defer ticker.Stop()

	m.phaseUntil = time.Now().Add(m.cfg.FreezeTime)

	slog.Info("match loop started",
		"tick", m.cfg.TickInterval,
		"round", m.cfg.RoundDuration,
		"freeze", m.cfg.FreezeTime)

	for {
		select {
		case <-ctx.Done():
			slog.Info("match loop stopping", "round", m.world.Round())
			// Drain work submitted before shutdown so waiters are released.
			m.world.Tick(time.Now())
			return ctx.Err()

		case now := <-ticker.C:
			m.Step(now)
		}
	}
}

// Step advances the round clock to now and ticks the world once.
func (m *Match) Step(now time.Time) {
	if !now.Before(m.phaseUntil) {
		if m.inRound {
			m.world.EndRound()
			m.phaseUntil = now.Add(m.cfg.FreezeTime)
		} else {
			m.world.StartRound()
			m.phaseUntil = now.Add(m.cfg.RoundDuration)
		}
		m.inRound = !m.inRound
	}
	m.world.Tick(now)
}

// InRound reports whether a round is in progress.
func (m *Match) InRound() bool { return m.inRound }
