package commands

import (
	"strings"

	"github.com/udisondev/roundmods/internal/admin"
)

// Help handles help: lists registered command names.
type Help struct {
	h *admin.Handler
}

// NewHelp creates the help command handler.
func NewHelp(h *admin.Handler) *Help {
	return &Help{h: h}
}

func (c *Help) Names() []string            { return []string{"help"} }
func (c *Help) RequiredAccessLevel() int32 { return admin.AccessUser }

func (c *Help) Handle(caller *admin.Caller, _ []string) error {
	caller.Reply("Commands: " + strings.Join(c.h.Names(), ", "))
	return nil
}
