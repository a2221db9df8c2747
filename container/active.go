package container

import (
	"sort"

	"github.com/rhartert/saturn/index"
	"github.com/rhartert/saturn/term"
)

// Active is the set of clauses selected for inference, indexed by id, with
// their selected literals present in the supplied literal indexes
// (spec.md §4.5). Simplification mirrors the same shape for forward/
// backward simplification retrieval, so both are built from clauseSet.
//
// clauseSet optionally owns the clause's Store tag. Active owns it (the
// None→...→Active transition is exclusive per spec.md §3's invariant 8).
// Simplification does not: per spec.md §4.6 a clause is added to
// _simplCont as soon as it is added to Passive, before it is ever
// activated, so simplification membership is an auxiliary index view, not
// an exclusive owning container — it must not fight Active or Passive over
// the Store tag.
type clauseSet struct {
	clauses map[term.ClauseID]*term.Clause
	idx     *index.LiteralIndex
	store   term.StoreTag
	owns    bool
}

func newClauseSet(idx *index.LiteralIndex, store term.StoreTag, owns bool) clauseSet {
	return clauseSet{clauses: make(map[term.ClauseID]*term.Clause), idx: idx, store: store, owns: owns}
}

// Add inserts c's selected literals into the index and records membership.
func (cs *clauseSet) Add(c *term.Clause) {
	if cs.owns {
		c.Store = cs.store
	}
	cs.clauses[c.ID] = c
	for _, l := range c.Literals()[:c.Selected()] {
		cs.idx.Insert(c, l)
	}
}

// Remove deletes c's selected literals from the index and drops membership.
// Returns false if c was not a member.
func (cs *clauseSet) Remove(c *term.Clause) bool {
	if _, ok := cs.clauses[c.ID]; !ok {
		return false
	}
	for _, l := range c.Literals()[:c.Selected()] {
		cs.idx.Remove(c, l)
	}
	delete(cs.clauses, c.ID)
	if cs.owns && c.Store == cs.store {
		c.Store = term.StoreNone
	}
	return true
}

// Contains reports whether c is a member.
func (cs *clauseSet) Contains(c *term.Clause) bool {
	_, ok := cs.clauses[c.ID]
	return ok
}

// Len returns the number of member clauses.
func (cs *clauseSet) Len() int { return len(cs.clauses) }

// All returns every member clause ordered by ascending clause id; callers
// must not mutate the result. The sort is required, not cosmetic: a Go map
// range has no stable order across runs, and inference generation
// (saturation.generate) and simplification (forwardSimplify,
// backwardSimplify) both iterate this slice to decide what gets derived, so
// an unordered result would make retrieval order depend on map iteration
// rather than on insertion history (spec.md §3's determinism requirement).
func (cs *clauseSet) All() []*term.Clause {
	out := make([]*term.Clause, 0, len(cs.clauses))
	for _, c := range cs.clauses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Index returns the literal index backing this container's retrieval.
func (cs *clauseSet) Index() *index.LiteralIndex { return cs.idx }

// Active is the container of clauses eligible as the "other premise" of a
// generating inference (resolution, superposition, factoring, ...).
type Active struct {
	clauseSet
}

// NewActive returns an empty Active container backed by idx for retrieval.
func NewActive(idx *index.LiteralIndex) *Active {
	return &Active{clauseSet: newClauseSet(idx, term.StoreActive, true)}
}

// Simplification mirrors Active but is queried by forward/backward
// simplification rules (demodulation, subsumption) rather than generating
// inferences. It is an auxiliary index, not an owning container: a clause
// enters it as soon as it is accepted into Passive (spec.md §4.6 step 1)
// and stays available for simplification retrieval independent of whatever
// container currently owns it.
type Simplification struct {
	clauseSet
}

// NewSimplification returns an empty Simplification container backed by idx.
func NewSimplification(idx *index.LiteralIndex) *Simplification {
	return &Simplification{clauseSet: newClauseSet(idx, term.StoreNone, false)}
}
