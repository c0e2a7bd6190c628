package modifier

import (
	"slices"
	"strings"
)

// ActivationSet is the ordered list of active modifiers, oldest first.
// It holds no duplicates. Teardown order is the reverse of activation order.
type ActivationSet struct {
	items []Modifier
}

// Len returns the number of active modifiers.
func (s *ActivationSet) Len() int { return len(s.items) }

// Items returns a snapshot in activation order.
func (s *ActivationSet) Items() []Modifier { return slices.Clone(s.items) }

// Contains reports whether m is active.
func (s *ActivationSet) Contains(m Modifier) bool {
	return slices.Contains(s.items, m)
}

// Find returns the first active modifier whose name matches case-insensitively.
func (s *ActivationSet) Find(name string) (Modifier, bool) {
	i := slices.IndexFunc(s.items, func(m Modifier) bool {
		return strings.EqualFold(m.Name(), name)
	})
	if i < 0 {
		return nil, false
	}
	return s.items[i], true
}

// Append adds m at the end. Returns false if m is nil or already present.
func (s *ActivationSet) Append(m Modifier) bool {
	if m == nil || s.Contains(m) {
		return false
	}
	s.items = append(s.items, m)
	return true
}

// Remove deletes m, keeping the order of the rest.
func (s *ActivationSet) Remove(m Modifier) bool {
	i := slices.Index(s.items, m)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// Blocking returns the names of active modifiers that block m, in activation order.
func (s *ActivationSet) Blocking(m Modifier) []string {
	var names []string
	for _, active := range s.items {
		if Blocks(active, m) {
			names = append(names, active.Name())
		}
	}
	return names
}

// Reversed returns a snapshot in teardown (LIFO) order.
func (s *ActivationSet) Reversed() []Modifier {
	out := slices.Clone(s.items)
	slices.Reverse(out)
	return out
}

// Names returns the active names in activation order.
func (s *ActivationSet) Names() []string {
	names := make([]string, len(s.items))
	for i, m := range s.items {
		names[i] = m.Name()
	}
	return names
}

// Clear empties the set.
func (s *ActivationSet) Clear() { s.items = nil }
