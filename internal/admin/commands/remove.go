package commands

import (
	"fmt"
	"strings"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/modifier"
)

// RemoveModifier handles removemodifier <name>.
type RemoveModifier struct {
	core ModifierCore
}

// NewRemoveModifier creates the removemodifier command handler.
func NewRemoveModifier(core ModifierCore) *RemoveModifier {
	return &RemoveModifier{core: core}
}

func (c *RemoveModifier) Names() []string            { return []string{"removemodifier"} }
func (c *RemoveModifier) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *RemoveModifier) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: removemodifier <modifier name>")
	}

	if len(c.core.Active()) == 0 {
		caller.Reply("No modifiers are active.")
		return nil
	}

	name := args[1]
	for _, m := range c.core.Active() {
		if strings.EqualFold(m.Name(), name) {
			name = m.Name()
			break
		}
	}
	if err := c.core.RemoveByName(name); err != nil {
		replyError(caller, name, err)
		return nil
	}
	caller.Reply(fmt.Sprintf("Removed %s modifier.", name))
	return nil
}

// RemoveModifiers handles removemodifiers: clears every active modifier.
type RemoveModifiers struct {
	core ModifierCore
}

// NewRemoveModifiers creates the removemodifiers command handler.
func NewRemoveModifiers(core ModifierCore) *RemoveModifiers {
	return &RemoveModifiers{core: core}
}

func (c *RemoveModifiers) Names() []string            { return []string{"removemodifiers"} }
func (c *RemoveModifiers) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *RemoveModifiers) Handle(caller *admin.Caller, _ []string) error {
	c.core.RemoveAll(modifier.ReasonCommand)
	caller.Reply("Removed all modifiers.")
	return nil
}
