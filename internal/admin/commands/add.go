package commands

import (
	"fmt"

	"github.com/udisondev/roundmods/internal/admin"
)

// AddModifier handles addmodifier <name>: activates a modifier until it is
// removed or the next random round clears it.
type AddModifier struct {
	core ModifierCore
}

// NewAddModifier creates the addmodifier command handler.
func NewAddModifier(core ModifierCore) *AddModifier {
	return &AddModifier{core: core}
}

func (c *AddModifier) Names() []string            { return []string{"addmodifier"} }
func (c *AddModifier) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *AddModifier) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: addmodifier <modifier name>")
	}

	name := args[1]
	if err := c.core.AddByName(name); err != nil {
		replyError(caller, name, err)
		return nil
	}
	caller.Reply(fmt.Sprintf("Added %s modifier.", name))
	return nil
}

// ToggleModifier handles togglemodifier <name>.
type ToggleModifier struct {
	core ModifierCore
}

// NewToggleModifier creates the togglemodifier command handler.
func NewToggleModifier(core ModifierCore) *ToggleModifier {
	return &ToggleModifier{core: core}
}

func (c *ToggleModifier) Names() []string            { return []string{"togglemodifier"} }
func (c *ToggleModifier) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *ToggleModifier) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: togglemodifier <modifier name>")
	}

	name := args[1]
	added, err := c.core.ToggleByName(name)
	if err != nil {
		replyError(caller, name, err)
		return nil
	}

	action := "Removed"
	if added {
		action = "Added"
	}
	caller.Reply(fmt.Sprintf("%s %s modifier.", action, name))
	return nil
}

// Shortcut toggles one fixed modifier, e.g. bhop or xray.
type Shortcut struct {
	core     ModifierCore
	command  string
	modifier string
}

// NewShortcut creates a command that toggles modifier under the given name.
func NewShortcut(core ModifierCore, command, modifier string) *Shortcut {
	return &Shortcut{core: core, command: command, modifier: modifier}
}

func (c *Shortcut) Names() []string            { return []string{c.command} }
func (c *Shortcut) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *Shortcut) Handle(caller *admin.Caller, _ []string) error {
	added, err := c.core.ToggleByName(c.modifier)
	if err != nil {
		replyError(caller, c.modifier, err)
		return nil
	}

	state := "Disabled"
	if added {
		state = "Enabled"
	}
	caller.Reply(fmt.Sprintf("%s %s.", c.modifier, state))
	return nil
}
