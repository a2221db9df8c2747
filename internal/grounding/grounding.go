// Package grounding implements a finite-model-style ground instantiation
// fallback, supplementing spec.md's distilled scope with a feature present
// in the original prover but dropped by the distillation.
//
// It is deliberately NOT wired into package saturation or package casc:
// spec.md §1 lists grounding among the external collaborators referenced
// only by contract ("a preprocessed clause set... as inputs"), so this
// package is a standalone, optional tool a caller may use upstream of the
// saturation slice, never a dependency the core engine reaches for itself.
//
// Grounded on original_source's Shell/Grounding.hpp: GroundingApplicator's
// odometer-style enumeration over a clause's own constants (one digit per
// distinct variable, each digit ranging over the constants seen in the
// clause, a single synthetic constant substituted when the clause has
// none) is reproduced here without access to the corresponding .cpp (the
// pack retrieved only the header), so the exact assignment order and the
// fresh-constant naming are re-derived from the header's member shape
// rather than copied.
package grounding

import "github.com/rhartert/saturn/term"

// GroundClause enumerates every ground instance of clause obtained by
// assigning each of its distinct variables, independently, to one of the
// constants (arity-0 functors) occurring in the clause. If the clause has
// no constants, one instance is produced using the fallback functor
// fresh, which the caller must already have declared in sig (mirroring
// GroundingApplicator's synthetic "_constants" entry used when
// _varNumbering is non-empty but no constant was found).
func GroundClause(tbl *term.Table, sig *term.Signature, clause *term.Clause, fresh term.FunctorID) []*term.Clause {
	vars := clauseVariables(clause)
	if len(vars) == 0 {
		return []*term.Clause{clause}
	}

	consts := constantsOf(sig, clause)
	if len(consts) == 0 {
		consts = []term.FunctorID{fresh}
	}

	var out []*term.Clause
	assign := make([]int, len(vars))
	for {
		subst := make(map[term.VarID]*term.Term, len(vars))
		for i, v := range vars {
			subst[v] = tbl.MkCompound(consts[assign[i]], nil)
		}
		out = append(out, groundInstance(tbl, clause, subst))

		if !odometerNext(assign, len(consts)) {
			break
		}
	}
	return out
}

// GroundAll grounds every clause in clauses, concatenating the results in
// order (Shell/Grounding.hpp's simplyGround).
func GroundAll(tbl *term.Table, sig *term.Signature, clauses []*term.Clause, fresh term.FunctorID) []*term.Clause {
	var out []*term.Clause
	for _, c := range clauses {
		out = append(out, GroundClause(tbl, sig, c, fresh)...)
	}
	return out
}

// EqualityAxioms returns the reflexivity unit clause X0=X0, and if
// otherThanReflexivity is set, also emits symmetry and transitivity as
// Horn clauses. None of them is ground (ground them with GroundClause if
// needed), matching getEqualityAxioms(otherThanReflexivity).
func EqualityAxioms(tbl *term.Table, sig *term.Signature, otherThanReflexivity bool) []*term.Clause {
	x := tbl.MkVar(0)
	refl := tbl.MkLiteral(sig.EqualityPredicate, true, []*term.Term{x, x})
	axioms := []*term.Clause{tbl.NewClause([]*term.Literal{refl}, term.InferenceGrounding, nil)}
	if !otherThanReflexivity {
		return axioms
	}

	y, z := tbl.MkVar(1), tbl.MkVar(2)
	xEqY := tbl.MkLiteral(sig.EqualityPredicate, true, []*term.Term{x, y})
	yEqX := tbl.MkLiteral(sig.EqualityPredicate, true, []*term.Term{y, x})
	symmetry := tbl.NewClause(
		[]*term.Literal{tbl.Negate(xEqY), yEqX},
		term.InferenceGrounding, nil,
	)

	yEqZ := tbl.MkLiteral(sig.EqualityPredicate, true, []*term.Term{y, z})
	xEqZ := tbl.MkLiteral(sig.EqualityPredicate, true, []*term.Term{x, z})
	transitivity := tbl.NewClause(
		[]*term.Literal{tbl.Negate(xEqY), tbl.Negate(yEqZ), xEqZ},
		term.InferenceGrounding, nil,
	)

	return append(axioms, symmetry, transitivity)
}

// clauseVariables returns the distinct variables occurring in clause, in a
// stable order (lowest VarID first) so repeated calls enumerate assignments
// identically.
func clauseVariables(clause *term.Clause) []term.VarID {
	seen := map[term.VarID]bool{}
	var vars []term.VarID
	for _, l := range clause.Literals() {
		for _, a := range l.Args {
			for v := range term.VariablesOf(a) {
				if !seen[v] {
					seen[v] = true
					vars = append(vars, v)
				}
			}
		}
	}
	for i := 1; i < len(vars); i++ {
		v := vars[i]
		j := i - 1
		for j >= 0 && vars[j] > v {
			vars[j+1] = vars[j]
			j--
		}
		vars[j+1] = v
	}
	return vars
}

// constantsOf collects the distinct arity-0 functors occurring in clause.
func constantsOf(sig *term.Signature, clause *term.Clause) []term.FunctorID {
	seen := map[term.FunctorID]bool{}
	var consts []term.FunctorID
	var walk func(*term.Term)
	walk = func(t *term.Term) {
		if t.Kind() != term.KindCompound {
			return
		}
		if len(t.Args()) == 0 {
			if info, ok := sig.TryFunctor(t.Functor()); ok && info.Arity == 0 && !seen[t.Functor()] {
				seen[t.Functor()] = true
				consts = append(consts, t.Functor())
			}
			return
		}
		for _, a := range t.Args() {
			walk(a)
		}
	}
	for _, l := range clause.Literals() {
		for _, a := range l.Args {
			walk(a)
		}
	}
	return consts
}

// groundInstance builds the clause obtained by substituting subst into
// every literal of clause.
func groundInstance(tbl *term.Table, clause *term.Clause, subst map[term.VarID]*term.Term) *term.Clause {
	lits := make([]*term.Literal, len(clause.Literals()))
	for i, l := range clause.Literals() {
		args := make([]*term.Term, len(l.Args))
		for j, a := range l.Args {
			args[j] = substituteGround(tbl, a, subst)
		}
		lits[i] = tbl.MkLiteral(l.Predicate, l.Polarity, args)
	}
	return tbl.NewClause(lits, term.InferenceGrounding, []term.ClauseID{clause.ID})
}

func substituteGround(tbl *term.Table, t *term.Term, subst map[term.VarID]*term.Term) *term.Term {
	if t.Kind() == term.KindVar {
		if g, ok := subst[t.VarID()]; ok {
			return g
		}
		return t
	}
	if t.Kind() != term.KindCompound {
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	for i, a := range args {
		newArgs[i] = substituteGround(tbl, a, subst)
	}
	return tbl.MkCompound(t.Functor(), newArgs)
}

// odometerNext advances assign like a mixed-radix counter with base radix
// in every position, mirroring GroundingApplicator.newAssignment's
// increment-with-carry over _indexes. Returns false once every position has
// rolled over (all assignments exhausted).
func odometerNext(assign []int, radix int) bool {
	for i := len(assign) - 1; i >= 0; i-- {
		assign[i]++
		if assign[i] < radix {
			return true
		}
		assign[i] = 0
	}
	return false
}
