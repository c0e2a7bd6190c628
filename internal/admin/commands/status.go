package commands

import (
	"errors"
	"fmt"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/modifier"
)

// replyError turns a Core error into the status lines an operator sees.
func replyError(caller *admin.Caller, name string, err error) {
	var incompatible *modifier.IncompatibleError
	switch {
	case errors.As(err, &incompatible):
		caller.Reply(fmt.Sprintf("%s modifier is blocked by:", incompatible.Name))
		for _, b := range incompatible.Blocking {
			caller.Reply("• " + b)
		}
	case errors.Is(err, modifier.ErrNoModifiers):
		caller.Reply("No modifiers are registered.")
	case errors.Is(err, modifier.ErrNotRegistered):
		caller.Reply(fmt.Sprintf("%s modifier is not registered.", name))
	case errors.Is(err, modifier.ErrAlreadyActive):
		caller.Reply(fmt.Sprintf("%s modifier is already active.", name))
	case errors.Is(err, modifier.ErrNotActive):
		caller.Reply(fmt.Sprintf("%s modifier is not active.", name))
	default:
		caller.Reply(fmt.Sprintf("%s: %s", name, err))
	}
}

// replyModifiers prints a titled list of modifiers with descriptions.
func replyModifiers(caller *admin.Caller, title string, mods []modifier.Modifier) {
	caller.Reply(title)
	if len(mods) == 0 {
		caller.Reply("None")
		return
	}
	for _, m := range mods {
		caller.Reply(fmt.Sprintf("• %s - [%s]", m.Name(), m.Description()))
	}
}

// Status handles status: prints the engine state.
type Status struct {
	core ModifierCore
}

// NewStatus creates the status command handler.
func NewStatus(core ModifierCore) *Status {
	return &Status{core: core}
}

func (c *Status) Names() []string            { return []string{"status", "modifierstatus"} }
func (c *Status) RequiredAccessLevel() int32 { return admin.AccessUser }

func (c *Status) Handle(caller *admin.Caller, _ []string) error {
	mode := "off"
	if c.core.RandomRounds() {
		mode = "on"
	}
	caller.Reply(fmt.Sprintf("Round %d, random rounds %s (min %d, max %d)",
		c.core.Round(), mode, c.core.MinRandom(), c.core.MaxRandom()))
	caller.Reply(fmt.Sprintf("%d registered, %d active", len(c.core.Registered()), len(c.core.Active())))
	return nil
}
