package container

import (
	"github.com/rhartert/saturn/limits"
	"github.com/rhartert/saturn/term"
	"github.com/rhartert/yagh"
)

// Passive holds clauses awaiting selection, prioritized by two independent
// orders — age and weight — popped in a configured alternation ratio
// (spec.md §4.5). Grounded on internal/sat/ordering.go's use of
// github.com/rhartert/yagh.IntMap for VarOrder's activity heap: here the
// same indexable min-heap is keyed by term.ClauseID instead of variable id,
// one heap per priority dimension.
//
// Removal from Passive (spec.md's updateLimits) does not touch the heaps
// directly: the clauses map is the source of truth for membership, so
// PopSelected treats a heap entry whose clause id is no longer in that map
// as stale and skips it. This avoids needing an arbitrary-key
// removal operation beyond what the teacher's usage of yagh demonstrates
// (New/Put/Contains/Pop).
type Passive struct {
	byAge    *yagh.IntMap[int64]
	byWeight *yagh.IntMap[int64]
	clauses  map[term.ClauseID]*term.Clause

	// ageRatio:weightRatio is the alternation ratio; turn cycles through
	// 0..ageRatio+weightRatio-1, popping from the age heap while
	// turn < ageRatio and from the weight heap otherwise.
	ageRatio, weightRatio int
	turn                  int

	lim limits.Limits
}

// NewPassive returns an empty Passive container that alternates ageRatio
// age-ordered pops for every weightRatio weight-ordered pops.
func NewPassive(ageRatio, weightRatio int) *Passive {
	if ageRatio <= 0 {
		ageRatio = 1
	}
	if weightRatio <= 0 {
		weightRatio = 1
	}
	return &Passive{
		byAge:       yagh.New[int64](1024),
		byWeight:    yagh.New[int64](1024),
		clauses:     make(map[term.ClauseID]*term.Clause),
		ageRatio:    ageRatio,
		weightRatio: weightRatio,
	}
}

// packPriority combines a primary ordering key with the clause id as a
// tiebreak into a single int64 priority, giving the lexicographic
// (primary, id) ascending order spec.md §5 requires of both heaps. Clause
// ids are assumed to fit 32 bits, which holds for any slice this engine
// could run to exhaustion within its time budget.
func packPriority(primary uint32, id term.ClauseID) int64 {
	return int64(primary)<<32 | int64(uint32(id))
}

// Add inserts c into both priority heaps.
func (p *Passive) Add(c *term.Clause) {
	c.Store = term.StorePassive
	p.clauses[c.ID] = c
	p.byAge.Put(int(c.ID), packPriority(c.Age, c.ID))
	p.byWeight.Put(int(c.ID), packPriority(c.Weight(), c.ID))
}

// Len returns the number of clauses currently owned by Passive (including
// any not-yet-lazily-collected stale heap entries is not observable from
// here; this counts live clauses only).
func (p *Passive) Len() int { return len(p.clauses) }

// IsEmpty reports whether Passive holds no live clauses.
func (p *Passive) IsEmpty() bool { return len(p.clauses) == 0 }

// UpdateLimits tightens the age/weight caps so that approximately reachable
// clauses (spec.md §4.6 estimatedReachableCount) remain selectable; clauses
// now exceeding either cap transition Passive → None and are dropped from
// the live set. Returns the new Limits.
func (p *Passive) UpdateLimits(reachable int) limits.Limits {
	if reachable < 0 || reachable >= len(p.clauses) {
		return p.lim
	}

	ages := make([]uint32, 0, len(p.clauses))
	weights := make([]uint32, 0, len(p.clauses))
	for _, c := range p.clauses {
		ages = append(ages, c.Age)
		weights = append(weights, c.Weight())
	}

	ageCap := nthSmallestUint32(ages, reachable-1)
	weightCap := nthSmallestUint32(weights, reachable-1)

	newLim := limits.Limits{
		AgeLimit: ageCap, AgeLimited: true,
		WeightLimit: weightCap, WeightLimited: true,
	}
	p.lim = newLim

	for id, c := range p.clauses {
		if !newLim.Admits(c.Age, c.Weight()) {
			c.Store = term.StoreNone
			delete(p.clauses, id)
		}
	}
	return p.lim
}

// nthSmallestUint32 returns the value at sorted position n (0-indexed) of
// vs (0 for n < 0). UpdateLimits calls it with n = reachable-1, so the cap
// keeps the `reachable` smallest values admissible under each dimension
// independently; clauses tied with the cap value are kept as well.
func nthSmallestUint32(vs []uint32, n int) uint32 {
	cp := append([]uint32(nil), vs...)
	// Insertion sort: containers are bounded by the active search's live
	// clause count, which stays small enough that O(n^2) is not a concern
	// relative to the inference work done per given clause.
	for i := 1; i < len(cp); i++ {
		v := cp[i]
		j := i - 1
		for j >= 0 && cp[j] > v {
			cp[j+1] = cp[j]
			j--
		}
		cp[j+1] = v
	}
	if n >= len(cp) {
		n = len(cp) - 1
	}
	if n < 0 {
		return 0
	}
	return cp[n]
}

// PopSelected removes and returns the next clause per the configured
// age/weight alternation, skipping stale or limit-exceeding entries.
// Reports false if Passive is empty.
func (p *Passive) PopSelected() (*term.Clause, bool) {
	for len(p.clauses) > 0 {
		useAge := p.turn < p.ageRatio
		p.turn++
		if p.turn >= p.ageRatio+p.weightRatio {
			p.turn = 0
		}

		var (
			id term.ClauseID
			ok bool
		)
		if useAge {
			id, ok = popFromHeap(p.byAge)
		} else {
			id, ok = popFromHeap(p.byWeight)
		}
		if !ok {
			return nil, false
		}

		c, live := p.clauses[id]
		if !live {
			continue // stale: already removed by UpdateLimits or re-pop elsewhere
		}
		if !p.lim.Admits(c.Age, c.Weight()) {
			c.Store = term.StoreNone
			delete(p.clauses, id)
			continue
		}

		delete(p.clauses, id)
		c.Store = term.StoreNone
		return c, true
	}
	return nil, false
}

func popFromHeap(h *yagh.IntMap[int64]) (term.ClauseID, bool) {
	item, ok := h.Pop()
	if !ok {
		return 0, false
	}
	return term.ClauseID(item.Elem), true
}
