package modifier

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Factory creates a compiled modifier.
type Factory func() Modifier

// Registry is the catalog of known modifiers in registration order.
// Names are unique case-insensitively; the first registration wins.
// Not safe for concurrent use: owned by the host loop.
type Registry struct {
	list   []Modifier
	byName map[string]Modifier // lowercase name → modifier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Modifier)}
}

// Register adds m. Returns ErrNilModifier or ErrDuplicate without changing state.
func (r *Registry) Register(m Modifier) error {
	if m == nil {
		return ErrNilModifier
	}
	key := strings.ToLower(m.Name())
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("%s: %w", m.Name(), ErrDuplicate)
	}
	r.byName[key] = m
	r.list = append(r.list, m)
	return nil
}

// Lookup finds a modifier by case-insensitive name.
func (r *Registry) Lookup(name string) (Modifier, bool) {
	m, ok := r.byName[strings.ToLower(name)]
	return m, ok
}

// All returns the registered modifiers in registration order.
func (r *Registry) All() []Modifier {
	return slices.Clone(r.list)
}

// Len returns the number of registered modifiers.
func (r *Registry) Len() int { return len(r.list) }

// Clear calls Unregistered on every modifier and empties the registry.
func (r *Registry) Clear() {
	for _, m := range r.list {
		m.Unregistered()
	}
	r.list = nil
	clear(r.byName)
}

// BuildOptions controls Build.
type BuildOptions struct {
	Env       Env
	Factories []Factory
	// Disabled names are skipped, case-insensitively.
	Disabled []string
}

// Build fills the registry from compiled factories, then config files in
// <ConfigDir>/ConVarModifiers and <PluginDir>/ConVarModifiers, in that order.
// Registered is called on every accepted modifier.
func (r *Registry) Build(opts BuildOptions) {
	for _, factory := range opts.Factories {
		if factory == nil {
			slog.Warn("skipping nil modifier factory")
			continue
		}
		r.admit(factory(), opts, "compiled")
	}

	for _, root := range []string{opts.Env.ConfigDir, opts.Env.PluginDir} {
		if root == "" {
			continue
		}
		for _, m := range loadCvarDir(filepath.Join(root, CvarDir)) {
			r.admit(m, opts, m.Config().Path())
		}
	}

	slog.Info("modifier registry built", "registered", r.Len())
}

func (r *Registry) admit(m Modifier, opts BuildOptions, source string) {
	if m == nil {
		slog.Warn("skipping nil modifier", "source", source)
		return
	}
	if isDisabled(m.Name(), opts.Disabled) {
		slog.Info("disabled modifier", "modifier", m.Name(), "source", source)
		return
	}
	if err := r.Register(m); err != nil {
		slog.Warn("modifier names must be unique, dropping", "modifier", m.Name(), "source", source, "error", err)
		return
	}
	m.Registered(opts.Env)
	slog.Debug("registered modifier", "modifier", m.Name(), "source", source)
}

func loadCvarDir(dir string) []*CvarModifier {
	if err := ensureDir(dir); err != nil {
		slog.Warn("cannot create modifier config dir", "dir", dir, "error", err)
		return nil
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.cfg"))
	if err != nil {
		slog.Warn("cannot list modifier configs", "dir", dir, "error", err)
		return nil
	}
	slices.Sort(paths)

	mods := make([]*CvarModifier, 0, len(paths))
	for _, path := range paths {
		m, err := LoadCvarModifier(path)
		if err != nil {
			slog.Warn("failed to load modifier config", "path", path, "error", err)
			continue
		}
		mods = append(mods, m)
	}
	return mods
}

func isDisabled(name string, disabled []string) bool {
	return slices.ContainsFunc(disabled, func(d string) bool {
		return strings.EqualFold(d, name)
	})
}

// ensureDir creates dir if it does not exist.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
