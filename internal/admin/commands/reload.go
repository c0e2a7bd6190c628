package commands

import "github.com/udisondev/roundmods/internal/admin"

// Reload handles reloadmodifiers: removes all active modifiers and rebuilds
// the registry from the compiled table and config directories.
type Reload struct {
	core ModifierCore
}

// NewReload creates the reload command handler.
func NewReload(core ModifierCore) *Reload {
	return &Reload{core: core}
}

func (c *Reload) Names() []string            { return []string{"reloadmodifiers", "reload"} }
func (c *Reload) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *Reload) Handle(caller *admin.Caller, _ []string) error {
	caller.Reply("Reloading Modifiers...")
	c.core.Reload()
	return nil
}
