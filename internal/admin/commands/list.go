package commands

import "github.com/udisondev/roundmods/internal/admin"

// ListModifiers handles listmodifiers: prints every registered modifier.
type ListModifiers struct {
	core ModifierCore
}

// NewListModifiers creates the listmodifiers command handler.
func NewListModifiers(core ModifierCore) *ListModifiers {
	return &ListModifiers{core: core}
}

func (c *ListModifiers) Names() []string            { return []string{"listmodifiers"} }
func (c *ListModifiers) RequiredAccessLevel() int32 { return admin.AccessUser }

func (c *ListModifiers) Handle(caller *admin.Caller, _ []string) error {
	replyModifiers(caller, "Registered modifiers", c.core.Registered())
	return nil
}

// ListActiveModifiers handles listactivemodifiers: prints active modifiers
// in activation order.
type ListActiveModifiers struct {
	core ModifierCore
}

// NewListActiveModifiers creates the listactivemodifiers command handler.
func NewListActiveModifiers(core ModifierCore) *ListActiveModifiers {
	return &ListActiveModifiers{core: core}
}

func (c *ListActiveModifiers) Names() []string            { return []string{"listactivemodifiers"} }
func (c *ListActiveModifiers) RequiredAccessLevel() int32 { return admin.AccessUser }

func (c *ListActiveModifiers) Handle(caller *admin.Caller, _ []string) error {
	replyModifiers(caller, "Active modifiers", c.core.Active())
	return nil
}
