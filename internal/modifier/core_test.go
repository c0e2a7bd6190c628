package modifier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/roundmods/internal/world"
)

type recordingJournal struct {
	events []JournalEvent
}

func (j *recordingJournal) Record(e JournalEvent) { j.events = append(j.events, e) }

func TestCore_AddByName(t *testing.T) {
	log := &callLog{}
	a := newStub(log, "A", true)
	c, host := newTestCore(t, 1, a)

	require.NoError(t, c.AddByName("a"))
	assert.True(t, a.IsActive())
	assert.True(t, c.IsActive("A"))
	assert.Equal(t, []string{"enable:A"}, log.calls)

	msgs := host.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Activating modifiers:", msgs[0])
	assert.Equal(t, "• A - [A description]", msgs[1])

	err := c.AddByName("A")
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.True(t, IsBenign(err))
	assert.Equal(t, []string{"enable:A"}, log.calls, "already active is a no-op")
}

func TestCore_AddByNameErrors(t *testing.T) {
	empty, _ := newTestCore(t, 1)
	assert.ErrorIs(t, empty.AddByName("A"), ErrNoModifiers)

	c, _ := newTestCore(t, 1, newStub(nil, "A", true))
	err := c.AddByName("Missing")
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Contains(t, err.Error(), "not registered")

	assert.ErrorIs(t, c.Add(nil), ErrNilModifier)
	assert.ErrorIs(t, c.Remove(nil), ErrNilModifier)
}

func TestCore_IncompatibleEitherDirection(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"declaring side active", "A", "B"},
		{"declared side active", "B", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newStub(nil, "A", true, "B")
			b := newStub(nil, "B", true)
			c, _ := newTestCore(t, 1, a, b)

			require.NoError(t, c.AddByName(tt.first))

			err := c.AddByName(tt.second)
			require.ErrorIs(t, err, ErrIncompatible)

			var incompatible *IncompatibleError
			require.True(t, errors.As(err, &incompatible))
			assert.Equal(t, []string{tt.first}, incompatible.Blocking)
			assert.Equal(t, []string{tt.first}, names(c.Active()))
		})
	}
}

func TestCore_IncompatibleListsEveryBlocker(t *testing.T) {
	a := newStub(nil, "A", true)
	b := newStub(nil, "B", true)
	x := newStub(nil, "X", true, "A", "B")
	c, _ := newTestCore(t, 1, a, b, x)

	require.NoError(t, c.AddByName("A"))
	require.NoError(t, c.AddByName("B"))

	var incompatible *IncompatibleError
	require.ErrorAs(t, c.AddByName("X"), &incompatible)
	assert.Equal(t, []string{"A", "B"}, incompatible.Blocking)
	assert.Contains(t, incompatible.Error(), "A, B")
}

func TestCore_RemoveAllIsLIFO(t *testing.T) {
	log := &callLog{}
	c, host := newTestCore(t, 1,
		newStub(log, "A", true),
		newStub(log, "B", true),
		newStub(log, "C", true),
	)

	for _, n := range []string{"B", "A", "C"} {
		require.NoError(t, c.AddByName(n))
	}
	log.calls = nil

	c.RemoveAll(ReasonCommand)

	assert.Equal(t, []string{"disable:C", "disable:A", "disable:B"}, log.calls)
	assert.Empty(t, c.Active())

	msgs := host.Messages()
	assert.Equal(t, []string{"Removing modifiers:", "• C", "• A", "• B"}, msgs[len(msgs)-4:])

	log.calls = nil
	c.RemoveAll(ReasonCommand)
	assert.Empty(t, log.calls, "empty set is a no-op")
}

func TestCore_AddRemoveRoundTrip(t *testing.T) {
	a := newStub(nil, "A", true)
	b := newStub(nil, "B", true)
	c, _ := newTestCore(t, 1, a, b)
	require.NoError(t, c.AddByName("B"))

	for range 2 {
		require.NoError(t, c.AddByName("A"))
		assert.Len(t, c.Active(), 2)
		require.NoError(t, c.RemoveByName("a"))
		assert.Equal(t, []string{"B"}, names(c.Active()))
		assert.False(t, a.IsActive())
		assert.Equal(t, 2, c.Registry().Len())
	}
}

func TestCore_RemoveByName(t *testing.T) {
	c, _ := newTestCore(t, 1, newStub(nil, "A", true), newStub(nil, "B", true))

	assert.NoError(t, c.RemoveByName("A"), "nothing active is a successful no-op")

	require.NoError(t, c.AddByName("A"))
	err := c.RemoveByName("B")
	assert.ErrorIs(t, err, ErrNotActive)
	assert.Equal(t, []string{"A"}, names(c.Active()))
}

func TestCore_ToggleByName(t *testing.T) {
	log := &callLog{}
	a := newStub(log, "A", true)
	b := newStub(log, "B", true, "A")
	c, _ := newTestCore(t, 1, a, b)

	added, err := c.ToggleByName("A")
	require.NoError(t, err)
	assert.True(t, added)

	_, err = c.ToggleByName("B")
	assert.ErrorIs(t, err, ErrIncompatible)

	added, err = c.ToggleByName("a")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, c.Active())

	before := c.Active()
	_, err = c.ToggleByName("X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
	assert.Equal(t, before, c.Active())
}

func TestCore_AddRandomReducesCount(t *testing.T) {
	c, _ := newTestCore(t, 5,
		newStub(nil, "A", true),
		newStub(nil, "B", true),
		newStub(nil, "C", false),
	)

	added, err := c.AddRandom(5)
	require.NoError(t, err)
	assert.Len(t, added, 2)
	assert.ElementsMatch(t, []string{"A", "B"}, names(c.Active()))
	assert.Equal(t, names(c.Active()), names(c.History()))

	added, err = c.AddRandom(0)
	assert.NoError(t, err)
	assert.Empty(t, added)
}

func TestCore_AddRandomNeverActivatesIncompatible(t *testing.T) {
	for seed := range uint64(100) {
		mods := []Modifier{
			newStub(nil, "A", true, "B"),
			newStub(nil, "B", true, "C"),
			newStub(nil, "C", true),
			newStub(nil, "D", true, "A", "C"),
			newStub(nil, "E", true),
		}
		c, _ := newTestCore(t, seed, mods...)

		_, err := c.AddRandom(5)
		require.NoError(t, err)

		active := c.Active()
		for i := range active {
			for j := i + 1; j < len(active); j++ {
				require.False(t, Blocks(active[i], active[j]),
					"seed %d: %s and %s active together", seed, active[i].Name(), active[j].Name())
			}
		}
	}
}

func TestCore_RandomScenario(t *testing.T) {
	for seed := range uint64(100) {
		a := newStub(nil, "A", true)
		b := newStub(nil, "B", true, "A")
		cc := newStub(nil, "C", false)
		c, _ := newTestCore(t, seed, a, b, cc)

		added, err := c.AddRandom(2)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, added, 1, "seed %d", seed)
		assert.NotEqual(t, a.IsActive(), b.IsActive(), "seed %d: exactly one of A and B", seed)
		assert.False(t, cc.IsActive())
	}
}

func TestCore_NoRepeatBetweenRolls(t *testing.T) {
	for seed := range uint64(50) {
		var mods []Modifier
		for i := range 6 {
			mods = append(mods, newStub(nil, fmt.Sprintf("M%d", i), true))
		}
		c, _ := newTestCore(t, seed, mods...)

		first, err := c.AddRandom(3)
		require.NoError(t, err)
		c.RemoveAll(ReasonCommand)

		second, err := c.AddRandom(3)
		require.NoError(t, err)
		require.Len(t, second, 3)

		for _, m := range second {
			assert.NotContains(t, first, m, "seed %d: %s repeated", seed, m.Name())
		}
	}
}

func TestCore_RoundStartFixedModeCyclesInOrder(t *testing.T) {
	log := &callLog{}
	c, host := newTestCore(t, 1, newStub(log, "A", true), newStub(log, "B", true))

	require.NoError(t, c.AddByName("B"))
	require.NoError(t, c.AddByName("A"))
	log.calls = nil

	host.StartRound()

	assert.Equal(t, []string{"disable:B", "enable:B", "disable:A", "enable:A"}, log.calls)
	assert.Equal(t, []string{"B", "A"}, names(c.Active()))
	assert.Equal(t, 1, c.Round())
}

func TestCore_RandomRoundsLifecycle(t *testing.T) {
	journal := &recordingJournal{}
	host := newHost(t)
	a, b, d := newStub(nil, "A", true), newStub(nil, "B", true), newStub(nil, "D", true)

	c := NewCore(Options{
		Env:                   Env{Host: host},
		Factories:             []Factory{stubFactory(a), stubFactory(b), stubFactory(d)},
		RandomRoundsByDefault: true,
		ShowCentreMessage:     true,
		CanRepeat:             true,
		MinRandom:             2,
		MaxRandom:             2,
		Rand:                  seeded(9),
		Journal:               journal,
	})
	c.Load()
	require.True(t, c.RandomRounds())

	host.StartRound()
	assert.Len(t, c.Active(), 2)
	assert.Contains(t, host.CenterMessage(), "Activating Modifiers:")

	require.NoError(t, c.Reroll())
	assert.Len(t, c.Active(), 2)

	host.EndRound()
	assert.Empty(t, c.Active())

	var actions []JournalAction
	for _, e := range journal.events {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []JournalAction{
		ActionActivated, ActionRolled, // round start
		ActionCleared, ActionActivated, ActionRolled, // reroll
		ActionCleared, // round end
	}, actions)
	assert.Equal(t, journal.events[0].RoundID, journal.events[5].RoundID, "same round id within a round")
	assert.Equal(t, ReasonRoundEnd, journal.events[5].Reason)
}

func TestCore_SetRandomRounds(t *testing.T) {
	empty, _ := newTestCore(t, 1)
	assert.ErrorIs(t, empty.SetRandomRounds(true), ErrNoModifiers)
	assert.False(t, empty.RandomRounds())
	assert.ErrorIs(t, empty.Reroll(), ErrRandomRoundsDisabled)

	c, host := newTestCore(t, 1, newStub(nil, "A", true))
	require.NoError(t, c.AddByName("A"))

	on, err := c.ToggleRandomRounds()
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, "Random Rounds Enabled", host.CenterMessage())
	assert.Len(t, c.Active(), 1, "turning on leaves modifiers until next round")

	on, err = c.ToggleRandomRounds()
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, c.Active(), "turning off removes everything")
}

func TestCore_MinMaxRandom(t *testing.T) {
	c, _ := newTestCore(t, 1, newStub(nil, "A", true))

	require.NoError(t, c.SetMinRandom(2))
	require.NoError(t, c.SetMaxRandom(4))
	assert.Equal(t, 2, c.MinRandom())
	assert.Equal(t, 4, c.MaxRandom())

	assert.ErrorIs(t, c.SetMinRandom(-1), ErrInvalidInput)
	assert.ErrorIs(t, c.SetMaxRandom(-1), ErrInvalidInput)
	assert.Equal(t, 2, c.MinRandom())
}

func TestCore_RoundStartPoolEmptySkipsRound(t *testing.T) {
	c, host := newTestCore(t, 1, newStub(nil, "OnlyManual", false))
	require.NoError(t, c.SetRandomRounds(true))

	assert.NotPanics(t, func() { host.StartRound() })
	assert.Empty(t, c.Active())
	assert.Contains(t, host.Messages(), "Failed to apply random modifiers! Skipping random round...")
}

func TestCore_ReloadAndUnload(t *testing.T) {
	log := &callLog{}
	a := newStub(log, "A", true)
	c, host := newTestCore(t, 1, a)
	require.NoError(t, c.AddByName("A"))

	c.Reload()
	assert.False(t, a.IsActive())
	assert.Empty(t, c.Active())
	assert.Empty(t, c.History())
	assert.Equal(t, 1, c.Registry().Len(), "factories rebuild the registry")

	c.Unload()
	assert.Zero(t, c.Registry().Len())
	assert.False(t, a.IsRegistered())
	assert.Zero(t, host.Bus().Count(world.EventRoundStart))
}
