package term

import "strings"

// ClauseID uniquely identifies a clause for the lifetime of a slice.
type ClauseID uint64

// StoreTag records which container (if any) currently owns a clause. The
// container exclusivity invariant (spec.md §3, §8 property 8) requires this
// field to always agree with the owning container.
type StoreTag uint8

const (
	StoreNone StoreTag = iota
	StoreUnprocessed
	StorePassive
	StoreActive
	StoreSelected
)

func (s StoreTag) String() string {
	switch s {
	case StoreUnprocessed:
		return "Unprocessed"
	case StorePassive:
		return "Passive"
	case StoreActive:
		return "Active"
	case StoreSelected:
		return "Selected"
	default:
		return "None"
	}
}

// InferenceKind names the rule that produced a clause.
type InferenceKind uint8

const (
	InferenceInput InferenceKind = iota
	InferenceResolution
	InferenceSuperposition
	InferenceEqualityResolution
	InferenceEqualityFactoring
	InferenceFactoring
	InferenceForwardDemodulation
	InferenceBackwardDemodulation
	InferenceSubsumptionResolution
	InferenceGrounding
)

func (k InferenceKind) String() string {
	switch k {
	case InferenceResolution:
		return "resolution"
	case InferenceSuperposition:
		return "superposition"
	case InferenceEqualityResolution:
		return "equality_resolution"
	case InferenceEqualityFactoring:
		return "equality_factoring"
	case InferenceFactoring:
		return "factoring"
	case InferenceForwardDemodulation:
		return "forward_demodulation"
	case InferenceBackwardDemodulation:
		return "backward_demodulation"
	case InferenceSubsumptionResolution:
		return "subsumption_resolution"
	case InferenceGrounding:
		return "grounding"
	default:
		return "input"
	}
}

// Clause is {id, literals (multiset), age, weight, parents, inference,
// store}. Clause.literals always contains at least one literal for a
// non-empty clause; a clause with zero literals is the distinguished empty
// clause marking refutation (spec.md §3).
type Clause struct {
	ID        ClauseID
	literals  []*Literal
	Age       uint32
	weight    uint32
	Parents   []ClauseID
	Inference InferenceKind
	Store     StoreTag

	// selected is the number of leading literals (after Literals() ordering
	// is fixed by the caller) considered "selected" for resolution/
	// superposition purposes by a literal selection policy external to this
	// package. 0 means "all literals selected" (the common case for
	// input/unit clauses), matching the teacher's convention of leaving
	// selection unset until a LiteralSelector runs.
	selected int

	// sliceRef is only used by the "clausepool" build (clause_allocpool.go);
	// it is nil otherwise.
	sliceRef *[]*Literal
}

// Literals returns the clause's literals. Callers must not mutate the
// returned slice.
func (c *Clause) Literals() []*Literal { return c.literals }

// Len returns the number of literals in c.
func (c *Clause) Len() int { return len(c.literals) }

// IsEmpty reports whether c is the empty clause (a refutation).
func (c *Clause) IsEmpty() bool { return len(c.literals) == 0 }

// Weight returns c's cached weight (sum of literal weights).
func (c *Clause) Weight() uint32 { return c.weight }

// Selected returns the number of selected literals, or Len() if no explicit
// selection has been made.
func (c *Clause) Selected() int {
	if c.selected == 0 {
		return len(c.literals)
	}
	return c.selected
}

// SetSelected records the number of leading literals considered selected.
// n must be in [1, Len()].
func (c *Clause) SetSelected(n int) {
	if n < 1 || n > len(c.literals) {
		panic("term: invalid literal selection count")
	}
	c.selected = n
}

// nextClauseID is the per-slice clause id counter. It lives on Table so each
// slice context gets its own sequence (no process-wide global, per
// SPEC_FULL.md Concurrency / Design Notes).
func (tbl *Table) nextClauseID() ClauseID {
	tbl.clauseSeq++
	return ClauseID(tbl.clauseSeq)
}

// NewClause allocates a clause over the given literals with the given
// inference provenance. The literal slice's weight is computed from each
// literal's argument weights plus one unit per literal, mirroring KBO's
// "every symbol (including the predicate) costs weight" convention; the
// authoritative ordering-sensitive weight recomputation is done by package
// kbo when a weight map is available.
func (tbl *Table) NewClause(literals []*Literal, inference InferenceKind, parents []ClauseID) *Clause {
	c := newClause(literals)
	c.ID = tbl.nextClauseID()
	c.Inference = inference
	c.Parents = append([]ClauseID(nil), parents...)
	c.Store = StoreNone

	var w uint32
	for _, l := range literals {
		w++
		for _, a := range l.Args {
			w += uint32(a.Weight())
		}
	}
	c.weight = w
	return c
}

// String renders c for diagnostics.
func (c *Clause) String(sig *Signature) string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	for i, l := range c.literals {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(l.String(sig))
	}
	sb.WriteByte(']')
	return sb.String()
}
