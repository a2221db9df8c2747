// Package saturation implements the given-clause main loop under the
// Limited Resource Strategy (component C6): it orchestrates the literal
// index (package index), the clause containers (package container), the
// KBO ordering (package kbo) and the wall-clock limits (package limits)
// into the saturation algorithm of spec.md §4.6.
//
// Grounded on Saturation/LRS.cpp (original_source): doSaturation's loop
// structure, shouldUpdateLimits's 500/50 cadence constants and
// estimatedReachableCount's formula are carried over near verbatim,
// re-expressed in the teacher's idiom (explicit error returns, no global
// mutable state, context.Context for cancellation in place of SIGINT).
package saturation

import "github.com/rhartert/saturn/term"

// ProblemCnf is the preprocessed clause set the core receives as input
// (spec.md §6): clausification, Skolemisation and parsing are external
// collaborators' responsibility.
type ProblemCnf struct {
	Signature *term.Signature
	Table     *term.Table
	Clauses   []*term.Clause
}

// Property records statistics about a problem used to pick strategy
// parameters (e.g. CASC category dispatch, §4.7).
type Property struct {
	HasEquality    bool
	Clauses        int
	MaxArity       int
	AllUnitClauses bool
	AllHornClauses bool

	// CategoryHint records the portfolio category this problem falls into:
	// "FOF", "SAT", or "EPR", mirroring CASCMode.hpp's makeEPR/_sat split.
	CategoryHint string
}

// Options is the recognized subset of slice/run options (spec.md §6).
type Options struct {
	TimeLimitInDeciseconds int
	SimulatedTimeLimit     int // 0 means unset; overrides perceived budget for LRS math.
	LRSFirstTimeCheck      int // percent of budget before LRS may tighten limits.
	Complete               bool

	AgeRatio    int
	WeightRatio int

	KBOFuncWeightFile string
	KBOPredWeightFile string

	ReverseLiteralComparison bool
}

// DefaultOptions returns the engine's baseline option set.
func DefaultOptions() Options {
	return Options{
		TimeLimitInDeciseconds: 0,
		LRSFirstTimeCheck:      10,
		Complete:               true,
		AgeRatio:               1,
		WeightRatio:            1,
	}
}

// ResultKind enumerates the outcomes a saturation slice can terminate with
// (spec.md §6).
type ResultKind int

const (
	Unknown ResultKind = iota
	Refutation
	Satisfiable
	RefutationNotFound
	TimeLimit
	MemoryLimit
)

func (r ResultKind) String() string {
	switch r {
	case Refutation:
		return "Refutation"
	case Satisfiable:
		return "Satisfiable"
	case RefutationNotFound:
		return "RefutationNotFound"
	case TimeLimit:
		return "TimeLimit"
	case MemoryLimit:
		return "MemoryLimit"
	default:
		return "Unknown"
	}
}

// Result is the outcome of one saturation slice. Proof is the refutation's
// empty clause, whose Parents chain forms the parent-link proof graph
// (spec.md §1 Non-goals: no richer proof reconstruction format is
// mandated).
type Result struct {
	Kind  ResultKind
	Proof *term.Clause
}
