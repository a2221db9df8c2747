package saturation

import (
	"github.com/rhartert/saturn/container"
	"github.com/rhartert/saturn/index"
	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/term"
)

// nextAge returns one plus the maximum Age among parents, the convention
// used throughout for a derived clause's age (spec.md §3's age/weight
// caches; age increases monotonically with derivation depth).
func nextAge(parents ...*term.Clause) uint32 {
	var max uint32
	for _, p := range parents {
		if p.Age > max {
			max = p.Age
		}
	}
	return max + 1
}

// generate runs every generating inference with c as one premise against
// the Active container, returning the newly derived clauses. Grounded on
// the resolution/factoring/equality-resolution rule shapes used throughout
// Inferences/ in original_source, re-expressed over the literal index's
// unifying-substitution retrieval (package index) instead of a dedicated
// resolution-clause data structure.
func generate(tbl *term.Table, sig *term.Signature, ord *kbo.Ordering, c *term.Clause, active *container.Active) []*term.Clause {
	var out []*term.Clause
	out = append(out, binaryResolution(tbl, c, active)...)
	out = append(out, factoring(tbl, c)...)
	out = append(out, equalityResolution(tbl, sig, c)...)
	for _, other := range active.All() {
		out = append(out, superposeFrom(tbl, ord, sig, c, other)...)
		out = append(out, superposeFrom(tbl, ord, sig, other, c)...)
	}
	return out
}

// binaryResolution derives, for every selected literal of c and every
// complementary-unifiable selected literal of an active clause, the
// resolvent clause.
func binaryResolution(tbl *term.Table, c *term.Clause, active *container.Active) []*term.Clause {
	var out []*term.Clause
	lits := c.Literals()
	for i := 0; i < c.Selected(); i++ {
		li := lits[i]
		for e, subst := range active.Index().GetUnifyingSubstitutions(li, true) {
			other := e.Clause
			if other.ID == c.ID {
				continue
			}
			var resolvent []*term.Literal
			for j, l := range lits {
				if j == i {
					continue
				}
				resolvent = append(resolvent, subst.ApplyLiteral(tbl, index.BankQuery, l))
			}
			for j, l := range other.Literals() {
				if l == e.Literal && j < other.Selected() {
					continue
				}
				resolvent = append(resolvent, subst.ApplyLiteral(tbl, index.BankStored, l))
			}
			resolvent = dedupLiterals(resolvent)
			nc := tbl.NewClause(resolvent, term.InferenceResolution, []term.ClauseID{c.ID, other.ID})
			nc.Age = nextAge(c, other)
			out = append(out, nc)
		}
	}
	return out
}

// factoring merges two selected literals of c of the same polarity that
// unify, discarding the duplicate.
func factoring(tbl *term.Table, c *term.Clause) []*term.Clause {
	var out []*term.Clause
	lits := c.Literals()
	n := c.Selected()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if lits[i].Predicate != lits[j].Predicate || lits[i].Polarity != lits[j].Polarity {
				continue
			}
			b := map[term.VarID]*term.Term{}
			if !unifiesSameClause(lits[i], lits[j], b) {
				continue
			}
			var factored []*term.Literal
			for k, l := range lits {
				if k == j {
					continue
				}
				factored = append(factored, substituteLiteral(tbl, l, b))
			}
			factored = dedupLiterals(factored)
			nc := tbl.NewClause(factored, term.InferenceFactoring, []term.ClauseID{c.ID})
			nc.Age = nextAge(c)
			out = append(out, nc)
		}
	}
	return out
}

// equalityResolution derives the clause obtained by removing a negative
// equality literal s != t when s and t unify (the resolvent substitutes the
// mgu into the remaining literals).
func equalityResolution(tbl *term.Table, sig *term.Signature, c *term.Clause) []*term.Clause {
	var out []*term.Clause
	lits := c.Literals()
	n := c.Selected()
	for i := 0; i < n; i++ {
		l := lits[i]
		if l.Polarity || !l.IsEquality(sig) {
			continue
		}
		b := map[term.VarID]*term.Term{}
		if !unifiesTerms(l.Args[0], l.Args[1], b) {
			continue
		}
		var resolvent []*term.Literal
		for k, other := range lits {
			if k == i {
				continue
			}
			resolvent = append(resolvent, substituteLiteral(tbl, other, b))
		}
		resolvent = dedupLiterals(resolvent)
		nc := tbl.NewClause(resolvent, term.InferenceEqualityResolution, []term.ClauseID{c.ID})
		nc.Age = nextAge(c)
		out = append(out, nc)
	}
	return out
}

// unifiesSameClause/unifiesTerms implement plain syntactic unification
// within a single variable namespace (no bank needed: both sides come from
// the same clause), used by factoring and equality resolution.
func unifiesSameClause(a, b *term.Literal, subst map[term.VarID]*term.Term) bool {
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !unifiesTerms(a.Args[i], b.Args[i], subst) {
			return false
		}
	}
	return true
}

func unifiesTerms(a, b *term.Term, subst map[term.VarID]*term.Term) bool {
	a = derefVar(a, subst)
	b = derefVar(b, subst)
	if a == b {
		return true
	}
	if a.IsVar() {
		if occursVar(a.VarID(), b, subst) {
			return false
		}
		subst[a.VarID()] = b
		return true
	}
	if b.IsVar() {
		if occursVar(b.VarID(), a, subst) {
			return false
		}
		subst[b.VarID()] = a
		return true
	}
	if a.IsNumeric() || b.IsNumeric() {
		return false
	}
	if a.Functor() != b.Functor() {
		return false
	}
	aa, ba := a.Args(), b.Args()
	for i := range aa {
		if !unifiesTerms(aa[i], ba[i], subst) {
			return false
		}
	}
	return true
}

func derefVar(t *term.Term, subst map[term.VarID]*term.Term) *term.Term {
	for t.IsVar() {
		next, ok := subst[t.VarID()]
		if !ok {
			return t
		}
		t = next
	}
	return t
}

func occursVar(v term.VarID, t *term.Term, subst map[term.VarID]*term.Term) bool {
	t = derefVar(t, subst)
	if t.IsVar() {
		return t.VarID() == v
	}
	for _, a := range t.Args() {
		if occursVar(v, a, subst) {
			return true
		}
	}
	return false
}

func substituteTerm(tbl *term.Table, t *term.Term, subst map[term.VarID]*term.Term) *term.Term {
	t = derefVar(t, subst)
	if t.IsVar() || t.IsNumeric() {
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		newArgs[i] = substituteTerm(tbl, a, subst)
		changed = changed || newArgs[i] != a
	}
	if !changed {
		return t
	}
	return tbl.MkCompound(t.Functor(), newArgs)
}

func substituteLiteral(tbl *term.Table, l *term.Literal, subst map[term.VarID]*term.Term) *term.Literal {
	args := make([]*term.Term, len(l.Args))
	for i, a := range l.Args {
		args[i] = substituteTerm(tbl, a, subst)
	}
	return tbl.MkLiteral(l.Predicate, l.Polarity, args)
}

// dedupLiterals removes duplicate (pointer-equal, post-interning) literals,
// preserving first-occurrence order; clause literals are a multiset in the
// data model but duplicate removal keeps derived clauses from growing
// without bound under repeated factoring-equivalent resolutions.
func dedupLiterals(lits []*term.Literal) []*term.Literal {
	seen := make(map[*term.Literal]bool, len(lits))
	out := lits[:0:0]
	for _, l := range lits {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// superposeFrom implements ordered superposition using the positive unit
// equality eq to rewrite a top-level argument of a selected literal of
// into, oriented by kbo.Ordering so only ordering-decreasing rewrites are
// performed (spec.md's KBO is "consulted by C6 for inference admissibility").
// Subterms below the top-level arguments are not rewritten.
func superposeFrom(tbl *term.Table, ord *kbo.Ordering, sig *term.Signature, eq *term.Clause, into *term.Clause) []*term.Clause {
	if eq.ID == into.ID {
		return nil // self-superposition at the equation's own maximal literal is excluded (see DESIGN.md)
	}
	if eq.Len() != 1 || !eq.Literals()[0].Polarity || !eq.Literals()[0].IsEquality(sig) {
		return nil
	}
	eqLit := eq.Literals()[0]
	lhs, rhs := eqLit.Args[0], eqLit.Args[1]
	if ord.Compare(lhs, rhs) != kbo.Greater {
		lhs, rhs = rhs, lhs
		if ord.Compare(lhs, rhs) != kbo.Greater {
			return nil // not orientable; skip (spec.md §4.2 admissibility may still hold elsewhere)
		}
	}

	var out []*term.Clause
	for li, l := range into.Literals() {
		if li >= into.Selected() {
			break
		}
		for ai, arg := range l.Args {
			subst := map[term.VarID]*term.Term{}
			if !unifiesTerms(lhs, arg, subst) {
				continue
			}
			newArgs := append([]*term.Term(nil), l.Args...)
			newArgs[ai] = substituteTerm(tbl, rhs, subst)
			newLit := tbl.MkLiteral(l.Predicate, l.Polarity, newArgs)

			var lits []*term.Literal
			for k, other := range into.Literals() {
				if k == li {
					lits = append(lits, newLit)
					continue
				}
				lits = append(lits, substituteLiteral(tbl, other, subst))
			}
			nc := tbl.NewClause(lits, term.InferenceSuperposition, []term.ClauseID{eq.ID, into.ID})
			nc.Age = nextAge(eq, into)
			out = append(out, nc)
		}
	}
	return out
}
