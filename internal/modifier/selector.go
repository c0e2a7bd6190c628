package modifier

import (
	"log/slog"
	"math/rand/v2"
	"slices"
)

// Selector draws compatible random batches of modifiers.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a selector. A nil rng uses a randomly seeded PCG source.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// SelectRequest is the input of Select.
type SelectRequest struct {
	Registered []Modifier
	Active     *ActivationSet
	History    []Modifier
	Count      int
	CanRepeat  bool
}

// Pool returns the candidates: modifiers that support random rounds, are not
// active and, unless repeats are allowed, were not in the last roll.
func (s *Selector) Pool(req SelectRequest) []Modifier {
	pool := make([]Modifier, 0, len(req.Registered))
	for _, m := range req.Registered {
		if m == nil || !m.SupportsRandomRounds() {
			continue
		}
		if req.Active != nil && req.Active.Contains(m) {
			continue
		}
		if !req.CanRepeat && slices.Contains(req.History, m) {
			continue
		}
		pool = append(pool, m)
	}
	return pool
}

// Prune makes one pass over every unordered pair of pool, in pool order, and for
// each blocking pair drops one of the two by coin flip. The result has no
// blocking pair but is not necessarily the largest such subset.
func (s *Selector) Prune(pool []Modifier) []Modifier {
	removed := make([]bool, len(pool))
	for a := range pool {
		for b := a + 1; b < len(pool); b++ {
			if !Blocks(pool[a], pool[b]) {
				continue
			}
			if s.rng.IntN(2) == 0 {
				removed[a] = true
			} else {
				removed[b] = true
			}
		}
	}

	out := make([]Modifier, 0, len(pool))
	for i, m := range pool {
		if !removed[i] {
			out = append(out, m)
		}
	}
	return out
}

// Select returns up to req.Count distinct modifiers, none of which block each
// other. The count is reduced to the pool size when the pool is smaller.
func (s *Selector) Select(req SelectRequest) ([]Modifier, error) {
	if len(req.Registered) == 0 {
		return nil, ErrNoModifiers
	}

	pool := s.Prune(s.Pool(req))
	if len(pool) == 0 {
		return nil, ErrPoolEmpty
	}

	k := req.Count
	if k > len(pool) {
		slog.Info("not enough modifiers in random pool, reducing count",
			"requested", k,
			"available", len(pool))
		k = len(pool)
	}

	picked := make([]Modifier, 0, k)
	for range k {
		i := s.rng.IntN(len(pool))
		picked = append(picked, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}
	return picked, nil
}

// RollCount returns a uniform count in [lo, hi]. hi below lo yields lo.
func (s *Selector) RollCount(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}
