package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/udisondev/roundmods/internal/admin"
	"github.com/udisondev/roundmods/internal/modifier"
)

// AddRandomModifier handles addrandommodifier.
type AddRandomModifier struct {
	core ModifierCore
}

// NewAddRandomModifier creates the addrandommodifier command handler.
func NewAddRandomModifier(core ModifierCore) *AddRandomModifier {
	return &AddRandomModifier{core: core}
}

func (c *AddRandomModifier) Names() []string            { return []string{"addrandommodifier"} }
func (c *AddRandomModifier) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *AddRandomModifier) Handle(caller *admin.Caller, _ []string) error {
	added, err := c.core.AddRandom(1)
	if err != nil || len(added) == 0 {
		caller.Reply("Failed to add random modifier.")
		return nil
	}
	caller.Reply(fmt.Sprintf("Added %s modifier.", added[0].Name()))
	return nil
}

// AddRandomModifiers handles addrandommodifiers <count>.
type AddRandomModifiers struct {
	core ModifierCore
}

// NewAddRandomModifiers creates the addrandommodifiers command handler.
func NewAddRandomModifiers(core ModifierCore) *AddRandomModifiers {
	return &AddRandomModifiers{core: core}
}

func (c *AddRandomModifiers) Names() []string            { return []string{"addrandommodifiers"} }
func (c *AddRandomModifiers) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *AddRandomModifiers) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: addrandommodifiers <modifier count>")
	}

	count, err := strconv.Atoi(args[1])
	if err != nil || count <= 0 {
		caller.Reply("Failed to add random modifiers.")
		return nil
	}

	added, err := c.core.AddRandom(count)
	if err != nil {
		caller.Reply("Failed to add random modifiers.")
		return nil
	}

	if len(added) == count {
		caller.Reply(fmt.Sprintf("Adding %d random modifiers.", count))
	} else {
		caller.Reply(fmt.Sprintf("Only added %d random modifiers.", len(added)))
	}
	return nil
}

// RandomRounds handles randomrounds: toggles the per-round roll.
type RandomRounds struct {
	core ModifierCore
}

// NewRandomRounds creates the randomrounds command handler.
func NewRandomRounds(core ModifierCore) *RandomRounds {
	return &RandomRounds{core: core}
}

func (c *RandomRounds) Names() []string            { return []string{"randomrounds"} }
func (c *RandomRounds) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *RandomRounds) Handle(caller *admin.Caller, _ []string) error {
	on, err := c.core.ToggleRandomRounds()
	if errors.Is(err, modifier.ErrNoModifiers) {
		caller.Reply("No modifiers are registered! Cannot activate random rounds!")
		return nil
	}
	if err != nil {
		return err
	}

	if on {
		caller.Reply("Random rounds enabled.")
	} else {
		caller.Reply("Random rounds disabled.")
	}
	return nil
}

// RandomBound handles minrandomrounds and maxrandomrounds.
type RandomBound struct {
	name  string
	label string
	set   func(int) error
}

// NewMinRandomRounds creates the minrandomrounds command handler.
func NewMinRandomRounds(core ModifierCore) *RandomBound {
	return &RandomBound{name: "minrandomrounds", label: "Min", set: core.SetMinRandom}
}

// NewMaxRandomRounds creates the maxrandomrounds command handler.
func NewMaxRandomRounds(core ModifierCore) *RandomBound {
	return &RandomBound{name: "maxrandomrounds", label: "Max", set: core.SetMaxRandom}
}

func (c *RandomBound) Names() []string            { return []string{c.name} }
func (c *RandomBound) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *RandomBound) Handle(caller *admin.Caller, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <number>", c.name)
	}

	input := args[1]
	n, err := strconv.Atoi(input)
	if err == nil {
		err = c.set(n)
	}
	if err != nil {
		caller.Reply(fmt.Sprintf("Failed to set %s modifiers for random rounds to %s", strings.ToLower(c.label), input))
		return nil
	}

	caller.Reply(fmt.Sprintf("%s modifiers for random rounds set to %d", c.label, n))
	return nil
}

// Reroll handles randomroundsreroll: replaces this round's random modifiers.
type Reroll struct {
	core ModifierCore
}

// NewReroll creates the randomroundsreroll command handler.
func NewReroll(core ModifierCore) *Reroll {
	return &Reroll{core: core}
}

func (c *Reroll) Names() []string            { return []string{"randomroundsreroll", "reroll"} }
func (c *Reroll) RequiredAccessLevel() int32 { return admin.AccessRoot }

func (c *Reroll) Handle(caller *admin.Caller, _ []string) error {
	switch err := c.core.Reroll(); {
	case errors.Is(err, modifier.ErrRandomRoundsDisabled):
		caller.Reply("Random rounds are not enabled! Cannot re-roll modifiers.")
	case errors.Is(err, modifier.ErrNoModifiers):
		caller.Reply("No registered modifiers found! Cannot re-roll modifiers.")
	case err != nil:
		return err
	default:
		caller.Reply("Re-rolled random round modifiers.")
	}
	return nil
}
