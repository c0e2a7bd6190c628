package commands

import (
	"github.com/udisondev/roundmods/internal/model"
	"github.com/udisondev/roundmods/internal/modifier"
)

// ModifierCore is the part of modifier.Core the commands drive.
// Calls must happen on the host loop goroutine.
type ModifierCore interface {
	Reload()
	Registered() []modifier.Modifier
	Active() []modifier.Modifier
	AddByName(name string) error
	ToggleByName(name string) (bool, error)
	AddRandom(k int) ([]modifier.Modifier, error)
	RemoveByName(name string) error
	RemoveAll(reason modifier.JournalReason)
	ToggleRandomRounds() (bool, error)
	SetMinRandom(n int) error
	SetMaxRandom(n int) error
	Reroll() error
	RandomRounds() bool
	MinRandom() int
	MaxRandom() int
	Round() int
}

// PlayerManager provides player lookup for player commands.
type PlayerManager interface {
	Players() []*model.Player
	Disconnect(slot int) bool
}
