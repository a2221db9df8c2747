package saturation

import (
	"github.com/rhartert/saturn/container"
	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/term"
)

// forwardSimplify applies cheap clause-local simplifications (tautology
// deletion, duplicate-literal removal) and then forward demodulation
// against the Simplification container's unit equalities. Returns false if
// c simplifies to a tautology and should be discarded (spec.md §4.6 step 1:
// "if forwardSimplify(c) succeeds" — succeeds here means "c survives").
func forwardSimplify(tbl *term.Table, sig *term.Signature, ord *kbo.Ordering, c *term.Clause, simpl *container.Simplification) (*term.Clause, bool) {
	lits := dedupLiterals(c.Literals())
	if isTautology(sig, lits) {
		return nil, false
	}
	rewritten := demodulateLiterals(tbl, ord, sig, lits, simplWrapper{simpl, sig}, c.ID)
	if sameLiterals(rewritten, c.Literals()) {
		return c, true
	}
	nc := tbl.NewClause(rewritten, term.InferenceForwardDemodulation, []term.ClauseID{c.ID})
	nc.Age = c.Age
	return nc, true
}

// backwardSimplify demodulates active clauses using c as a fresh unit
// equality, if c is one; any active clause it rewrites is removed from
// Active (spec.md §4.6: "may demote or delete active clauses"). Returns the
// rewritten clauses, which the caller re-queues into Unprocessed.
func backwardSimplify(tbl *term.Table, sig *term.Signature, ord *kbo.Ordering, c *term.Clause, active *container.Active) []*term.Clause {
	if c.Len() != 1 || !c.Literals()[0].Polarity || !c.Literals()[0].IsEquality(sig) {
		return nil
	}
	var demoted []*term.Clause
	for _, other := range active.All() {
		if other.ID == c.ID {
			continue
		}
		rewritten := demodulateLiterals(tbl, ord, sig, other.Literals(), singleEqSet{c}, other.ID)
		if len(rewritten) != other.Len() || !sameLiterals(rewritten, other.Literals()) {
			nc := tbl.NewClause(rewritten, term.InferenceBackwardDemodulation, []term.ClauseID{c.ID, other.ID})
			demoted = append(demoted, nc)
			active.Remove(other)
		}
	}
	return demoted
}

// unitEqSource abstracts over "every unit equality in a Simplification
// container" vs. "exactly one fresh equality", so demodulateLiterals serves
// both forwardSimplify (searches the whole standing set) and
// backwardSimplify (searches only the newly derived equation).
type unitEqSource interface {
	unitEqualities() []*term.Clause
}

type singleEqSet struct{ c *term.Clause }

func (s singleEqSet) unitEqualities() []*term.Clause { return []*term.Clause{s.c} }

// simplWrapper adapts a standing Simplification container to unitEqSource,
// filtering its members down to positive unit equalities (the only shape
// demodulation rewrites with).
type simplWrapper struct {
	s   *container.Simplification
	sig *term.Signature
}

func (w simplWrapper) unitEqualities() []*term.Clause {
	var out []*term.Clause
	for _, c := range w.s.All() {
		if c.Len() == 1 && c.Literals()[0].Polarity && c.Literals()[0].IsEquality(w.sig) {
			out = append(out, c)
		}
	}
	return out
}

func demodulateLiterals(tbl *term.Table, ord *kbo.Ordering, sig *term.Signature, lits []*term.Literal, src unitEqSource, selfID term.ClauseID) []*term.Literal {
	out := make([]*term.Literal, len(lits))
	copy(out, lits)
	for i, l := range out {
		out[i] = demodulateLiteral(tbl, ord, sig, l, src, selfID)
	}
	return out
}

func demodulateLiteral(tbl *term.Table, ord *kbo.Ordering, sig *term.Signature, l *term.Literal, src unitEqSource, selfID term.ClauseID) *term.Literal {
	args := make([]*term.Term, len(l.Args))
	changed := false
	for i, a := range l.Args {
		na := demodulateTerm(tbl, ord, sig, a, src, selfID)
		args[i] = na
		changed = changed || na != a
	}
	if !changed {
		return l
	}
	return tbl.MkLiteral(l.Predicate, l.Polarity, args)
}

func demodulateTerm(tbl *term.Table, ord *kbo.Ordering, sig *term.Signature, t *term.Term, src unitEqSource, selfID term.ClauseID) *term.Term {
	if t.IsVar() || t.IsNumeric() {
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		na := demodulateTerm(tbl, ord, sig, a, src, selfID)
		newArgs[i] = na
		changed = changed || na != a
	}
	cur := t
	if changed {
		cur = tbl.MkCompound(t.Functor(), newArgs)
	}

	for _, eq := range src.unitEqualities() {
		if eq.ID == selfID {
			continue
		}
		eqLit := eq.Literals()[0]
		if rewritten, ok := tryRewrite(tbl, ord, eqLit, false, cur); ok {
			return demodulateTerm(tbl, ord, sig, rewritten, src, selfID)
		}
		if rewritten, ok := tryRewrite(tbl, ord, eqLit, true, cur); ok {
			return demodulateTerm(tbl, ord, sig, rewritten, src, selfID)
		}
	}
	return cur
}

// tryRewrite attempts to match eqLit's side (false=lhs args[0], true=rhs
// args[1]) as a generalization of t, and if the compiled orientation check
// (package kbo) confirms lhs ≻ rhs under the match, returns the rewritten
// term.
func tryRewrite(tbl *term.Table, ord *kbo.Ordering, eqLit *term.Literal, side bool, t *term.Term) (*term.Term, bool) {
	pattern, replacement := eqLit.Args[0], eqLit.Args[1]
	if side {
		pattern, replacement = replacement, pattern
	}
	subst := map[term.VarID]*term.Term{}
	if !matchesPattern(pattern, t, subst) {
		return nil, false
	}
	instrs := ord.PreprocessEquation(eqLit, side)
	if ord.Execute(instrs, subst, tbl) != kbo.DemodGreater {
		return nil, false
	}
	return demodSubstitute(tbl, replacement, subst), true
}

// matchesPattern is one-directional matching (pattern variables are free,
// t's variables are opaque), used for forward/backward demodulation.
func matchesPattern(pattern, t *term.Term, subst map[term.VarID]*term.Term) bool {
	if pattern.IsVar() {
		if bound, ok := subst[pattern.VarID()]; ok {
			return bound == t
		}
		subst[pattern.VarID()] = t
		return true
	}
	if t.IsVar() {
		return false
	}
	if pattern.IsNumeric() || t.IsNumeric() {
		return pattern == t
	}
	if pattern.Functor() != t.Functor() {
		return false
	}
	pa, ta := pattern.Args(), t.Args()
	for i := range pa {
		if !matchesPattern(pa[i], ta[i], subst) {
			return false
		}
	}
	return true
}

func demodSubstitute(tbl *term.Table, t *term.Term, subst map[term.VarID]*term.Term) *term.Term {
	if t.IsVar() {
		if b, ok := subst[t.VarID()]; ok {
			return b
		}
		return t
	}
	if t.IsNumeric() {
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		newArgs[i] = demodSubstitute(tbl, a, subst)
		changed = changed || newArgs[i] != a
	}
	if !changed {
		return t
	}
	return tbl.MkCompound(t.Functor(), newArgs)
}

// isTautology reports whether lits contains a complementary literal pair
// (p and ~p over identical arguments) or a reflexive equality x=x.
func isTautology(sig *term.Signature, lits []*term.Literal) bool {
	for _, l := range lits {
		if l.Polarity && l.IsEquality(sig) && l.Args[0] == l.Args[1] {
			return true
		}
	}
	for i := range lits {
		for j := i + 1; j < len(lits); j++ {
			if lits[i].Predicate == lits[j].Predicate &&
				lits[i].Polarity != lits[j].Polarity &&
				sameArgs(lits[i].Args, lits[j].Args) {
				return true
			}
		}
	}
	return false
}

func sameArgs(a, b []*term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameLiterals(a, b []*term.Literal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
