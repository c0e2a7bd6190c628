package commands

import (
	"fmt"
	"strings"

	"github.com/udisondev/roundmods/internal/admin"
)

// Players handles players: lists connected players and their pawn state.
type Players struct {
	players PlayerManager
}

// NewPlayers creates the players command handler.
func NewPlayers(players PlayerManager) *Players {
	return &Players{players: players}
}

func (c *Players) Names() []string            { return []string{"players"} }
func (c *Players) RequiredAccessLevel() int32 { return admin.AccessOperator }

func (c *Players) Handle(caller *admin.Caller, _ []string) error {
	list := c.players.Players()
	caller.Reply(fmt.Sprintf("%d players", len(list)))
	for _, p := range list {
		state := "dead"
		if p.IsAlive() {
			state = "alive"
		}
		caller.Reply(fmt.Sprintf("#%d %s [%s] %s hp=%d/%d fov=%d speed=%.2f",
			p.Slot(), p.Name(), p.Team(), state, p.Health(), p.MaxHealth(), p.FOV(), p.SpeedMultiplier()))
	}
	return nil
}

// Kick handles kick <playerName>: disconnects a player.
type Kick struct {
	players PlayerManager
}

// NewKick creates the kick command handler.
func NewKick(players PlayerManager) *Kick {
	return &Kick{players: players}
}

func (c *Kick) Names() []string            { return []string{"kick"} }
func (c *Kick) RequiredAccessLevel() int32 { return admin.AccessOperator }

func (c *Kick) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: kick <playerName>")
	}

	targetName := args[1]
	for _, p := range c.players.Players() {
		if strings.EqualFold(p.Name(), targetName) && c.players.Disconnect(p.Slot()) {
			caller.Reply(fmt.Sprintf("Kicked player %s", p.Name()))
			return nil
		}
	}
	return fmt.Errorf("player %q not found or already disconnected", targetName)
}
