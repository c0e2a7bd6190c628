package ai

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/roundmods/internal/model"
)

const (
	minShotDamage = 8
	maxShotDamage = 40
)

// Bot shoots a random living enemy on some ticks.
type Bot struct {
	slot int
	host Host
	rng  *rand.Rand
	// fireChance is the probability of shooting on a tick.
	fireChance float64
}

// NewBot creates a bot for slot. rng may be nil.
func NewBot(slot int, host Host, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Bot{slot: slot, host: host, rng: rng, fireChance: 0.5}
}

func (b *Bot) Slot() int { return b.slot }

// Tick picks a living enemy and shoots it.
func (b *Bot) Tick() {
	self, ok := b.host.Player(b.slot)
	if !ok || !self.IsAlive() {
		return
	}
	if b.rng.Float64() >= b.fireChance {
		return
	}

	var targets []*model.Player
	for _, p := range b.host.Players() {
		if p.IsAlive() && p.Team() != self.Team() && p.Team() != model.TeamSpectator {
			targets = append(targets, p)
		}
	}
	if len(targets) == 0 {
		return
	}

	target := targets[b.rng.IntN(len(targets))]
	damage := minShotDamage + b.rng.IntN(maxShotDamage-minShotDamage+1)
	dealt := b.host.Hurt(self, target.Slot(), float64(damage))

	if IsDebugEnabled() {
		slog.Debug("bot shot",
			"bot", self.Name(),
			"target", target.Name(),
			"damage", dealt,
			"targetHealth", target.Health())
	}
}
