package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/world"
)

// NewTestWorld creates a world with the named players connected and spawned.
// Players alternate between terrorists and counter-terrorists.
func NewTestWorld(t testing.TB, names ...string) (*world.World, []*model.Player) {
	t.Helper()

	w := world.New()
	players := make([]*model.Player, 0, len(names))
	for i, name := range names {
		team := model.TeamTerrorist
		if i%2 == 1 {
			team = model.TeamCounterTerrorist
		}
		p, err := w.Connect(name, team)
		if err != nil {
			t.Fatalf("connecting %s: %v", name, err)
		}
		w.Spawn(p.Slot())
		players = append(players, p)
	}
	return w, players
}

// WriteConfig writes a directive file under dir, creating dir as needed.
func WriteConfig(t testing.TB, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
