package modifier

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/udisondev/roundmods/internal/model"
)

const (
	commentMarker = "//"
	clientMarker  = "Client:"
)

// MetadataHook is offered every server-mode line before it becomes a directive.
// Returning true consumes the line.
type MetadataHook func(key, value string) bool

// clientApply selects how a client directive reaches the player.
type clientApply uint8

const (
	applyReplicate clientApply = iota
	applyClientExec
	applyServerExec
)

type clientRollback struct {
	name  string
	value string
	mode  clientApply
}

// Config is a parsed list of console directives applied while a modifier is
// active, together with the values needed to undo them.
//
// Rollback entries are recorded right before the directive they undo executes
// and are replayed newest first, so applying twice without a Remove still
// restores the original values.
type Config struct {
	path   string
	server []string
	client []string

	serverRollback []string
	clientRollback map[int][]clientRollback // slot → entries
}

// ParseConfig reads a directive file. hook may be nil.
func ParseConfig(path string, hook MetadataHook) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	c := &Config{
		path:           path,
		clientRollback: make(map[int][]clientRollback),
	}

	clientMode := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, commentMarker) {
			continue
		}
		if strings.Contains(line, clientMarker) {
			clientMode = true
			continue
		}
		if idx := strings.Index(trimmed, commentMarker); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[:idx])
		}
		if trimmed == "" {
			continue
		}

		if clientMode {
			c.client = append(c.client, trimmed)
			continue
		}
		if hook != nil {
			key, value, ok := model.SplitDirective(trimmed)
			if !ok {
				key, value = trimmed, ""
			}
			if hook(key, value) {
				continue
			}
		}
		c.server = append(c.server, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	return c, nil
}

// Path returns the file the config was parsed from.
func (c *Config) Path() string { return c.path }

// ServerDirectives returns the server directives in file order.
func (c *Config) ServerDirectives() []string { return slices.Clone(c.server) }

// ClientDirectives returns the per-client directives in file order.
func (c *Config) ClientDirectives() []string { return slices.Clone(c.client) }

// Applied reports whether any rollback state is pending.
func (c *Config) Applied() bool {
	return len(c.serverRollback) > 0 || len(c.clientRollback) > 0
}

// Apply issues the server directives and applies the client directives to every
// connected player.
func (c *Config) Apply(host Host) {
	for _, directive := range c.server {
		name, value, ok := model.SplitDirective(directive)
		if !ok {
			slog.Warn("skipping malformed server directive", "config", c.path, "directive", directive)
			continue
		}

		setting, found := host.FindSetting(name)
		if !found {
			slog.Warn("cannot find server setting", "config", c.path, "setting", name)
			continue
		}

		c.serverRollback = append(c.serverRollback, name+" "+setting.Literal())
		if err := host.IssueServerCommand(name + " " + value); err != nil {
			c.serverRollback = c.serverRollback[:len(c.serverRollback)-1]
			slog.Warn("server directive failed", "config", c.path, "directive", directive, "error", err)
			continue
		}
		slog.Debug("applied server directive", "config", c.path, "directive", directive)
	}

	for _, p := range host.Players() {
		c.ApplyClient(host, p)
	}
}

// ApplyClient applies the client directives to one player, recording the values
// to restore under the player's slot.
func (c *Config) ApplyClient(host Host, p *model.Player) {
	if p == nil {
		slog.Warn("cannot apply client config to nil player", "config", c.path)
		return
	}
	if len(c.client) == 0 {
		return
	}

	entries := c.clientRollback[p.Slot()]
	for _, directive := range c.client {
		name, value, ok := model.SplitDirective(directive)
		if !ok {
			slog.Warn("skipping malformed client directive", "config", c.path, "directive", directive)
			continue
		}

		setting, found := host.FindSetting(name)
		if !found {
			slog.Warn("cannot find client setting", "config", c.path, "setting", name)
			continue
		}

		switch {
		case setting.Has(model.FlagReplicated):
			current, overridden := p.ClientSetting(name)
			if !overridden {
				current = setting.String()
			}
			entries = append(entries, clientRollback{name: name, value: current, mode: applyReplicate})
			p.ReplicateSetting(name, value)
		case setting.Has(model.FlagClientCanExecute):
			entries = append(entries, clientRollback{name: name, value: setting.Literal(), mode: applyClientExec})
			p.ExecuteClientCommand(name + " " + value)
		default:
			entries = append(entries, clientRollback{name: name, value: setting.Literal(), mode: applyServerExec})
			p.ExecuteClientCommandFromServer(name + " " + value)
		}
	}
	c.clientRollback[p.Slot()] = entries
}

// RemoveClient restores the values recorded for one player and forgets them.
func (c *Config) RemoveClient(p *model.Player) {
	if p == nil {
		slog.Warn("cannot remove client config from nil player", "config", c.path)
		return
	}

	entries, ok := c.clientRollback[p.Slot()]
	if !ok {
		return
	}
	for _, e := range slices.Backward(entries) {
		switch e.mode {
		case applyReplicate:
			p.ReplicateSetting(e.name, e.value)
		case applyClientExec:
			p.ExecuteClientCommand(e.name + " " + e.value)
		default:
			p.ExecuteClientCommandFromServer(e.name + " " + e.value)
		}
	}
	delete(c.clientRollback, p.Slot())
}

// ForgetSlot drops rollback state for a slot without replaying it.
func (c *Config) ForgetSlot(slot int) {
	delete(c.clientRollback, slot)
}

// Remove undoes every connected player's client directives, then the server
// directives, and clears all rollback state. No-op without a prior Apply.
func (c *Config) Remove(host Host) {
	for _, p := range host.Players() {
		c.RemoveClient(p)
	}

	for _, directive := range slices.Backward(c.serverRollback) {
		if err := host.IssueServerCommand(directive); err != nil {
			slog.Warn("rollback directive failed", "config", c.path, "directive", directive, "error", err)
			continue
		}
		slog.Debug("rolled back server directive", "config", c.path, "directive", directive)
	}

	c.serverRollback = nil
	clear(c.clientRollback)
}
