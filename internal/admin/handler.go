package admin

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// CommandPrefix is accepted in front of every command name.
const CommandPrefix = "css_"

// Command is an operator command.
// Each command registers one or more names and a required access level.
type Command interface {
	// Handle executes the command. args includes command name at [0].
	// Status lines go to caller.Reply; a returned error means bad usage.
	Handle(caller *Caller, args []string) error
	// Names returns all registered command names.
	Names() []string
	// RequiredAccessLevel returns the minimum access level to use this command.
	RequiredAccessLevel() int32
}

// Handler dispatches commands by name.
// Thread-safe: commands are registered once at startup, then read-only.
type Handler struct {
	mu   sync.RWMutex
	cmds map[string]Command // lowercase name → Command
}

// NewHandler creates a new command handler.
func NewHandler() *Handler {
	return &Handler{
		cmds: make(map[string]Command, 32),
	}
}

// Register registers a command.
// All command names are lowercased for case-insensitive lookup.
func (h *Handler) Register(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, name := range cmd.Names() {
		h.cmds[strings.ToLower(name)] = cmd
	}
}

// Execute runs one command line. A leading "css_" or "!" is ignored.
// Returns true if a command was found and executed.
func (h *Handler) Execute(caller *Caller, text string) bool {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return false
	}

	cmdName := normalize(parts[0])

	h.mu.RLock()
	cmd, ok := h.cmds[cmdName]
	h.mu.RUnlock()

	if !ok {
		caller.Reply("Unknown command: " + cmdName)
		return false
	}

	accessLevel := caller.AccessLevel()
	al := GetAccessLevel(accessLevel)
	if al == nil || !al.CanUseCmds {
		caller.Reply("You do not have access to this command.")
		slog.Warn("unauthorized command attempt",
			"caller", caller.Name(),
			"command", cmdName,
			"accessLevel", accessLevel)
		return false
	}

	if accessLevel < cmd.RequiredAccessLevel() {
		caller.Reply(fmt.Sprintf("Insufficient access level for %s (need %d, have %d)",
			cmdName, cmd.RequiredAccessLevel(), accessLevel))
		slog.Warn("command access denied",
			"caller", caller.Name(),
			"command", cmdName,
			"required", cmd.RequiredAccessLevel(),
			"actual", accessLevel)
		return false
	}

	slog.Info("command",
		"caller", caller.Name(),
		"command", text)

	parts[0] = cmdName
	if err := cmd.Handle(caller, parts); err != nil {
		caller.Reply(fmt.Sprintf("Command error: %s", err))
		slog.Error("command failed",
			"caller", caller.Name(),
			"command", text,
			"error", err)
	}

	return true
}

// Names returns every registered name, sorted.
func (h *Handler) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.cmds))
	for name := range h.cmds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CommandCount returns number of registered command names.
func (h *Handler) CommandCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cmds)
}

func normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimPrefix(name, "!")
	return strings.TrimPrefix(name, CommandPrefix)
}
