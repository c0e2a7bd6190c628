package modifier

import (
	"errors"
	"strings"
)

var (
	// ErrNoModifiers is returned when the registry is empty.
	ErrNoModifiers = errors.New("no modifiers are registered")
	// ErrNotRegistered is returned for an unknown modifier name.
	ErrNotRegistered = errors.New("modifier is not registered")
	// ErrAlreadyActive is benign: the modifier was already in the active set.
	ErrAlreadyActive = errors.New("modifier is already active")
	// ErrNotActive is benign: the modifier was not in the active set.
	ErrNotActive = errors.New("modifier is not active")
	// ErrIncompatible is wrapped by *IncompatibleError.
	ErrIncompatible = errors.New("modifier is blocked")
	// ErrPoolEmpty is returned when random selection finds no candidates.
	ErrPoolEmpty = errors.New("random modifier pool is empty")
	// ErrConfigNotFound is returned when a config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidInput is returned for malformed command arguments.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNilModifier is returned when a nil modifier reaches an internal API.
	ErrNilModifier = errors.New("nil modifier")
	// ErrRandomRoundsDisabled is returned by Reroll outside random-rounds mode.
	ErrRandomRoundsDisabled = errors.New("random rounds are not enabled")
	// ErrDuplicate is returned when a modifier name is registered twice.
	ErrDuplicate = errors.New("duplicate modifier name")
)

// IncompatibleError lists the active modifiers blocking an activation.
type IncompatibleError struct {
	Name     string
	Blocking []string
}

func (e *IncompatibleError) Error() string {
	return e.Name + " modifier is blocked by: " + strings.Join(e.Blocking, ", ")
}

func (e *IncompatibleError) Unwrap() error { return ErrIncompatible }

// IsBenign reports whether err only means the target was already in the requested state.
func IsBenign(err error) bool {
	return errors.Is(err, ErrAlreadyActive) || errors.Is(err, ErrNotActive)
}
