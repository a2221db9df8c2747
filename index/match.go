package index

import "github.com/rhartert/saturn/term"

// matchBindings maps a pattern variable to the concrete term it is bound to.
// Matching is one-directional: only pattern-side variables may bind.
type matchBindings map[term.VarID]*term.Term

// matchTerm attempts to extend b so that pattern, with b applied, becomes
// equal to instance. Pattern variables are free; instance variables are
// treated as opaque constants (matched by identity only).
func matchTerm(pattern, instance *term.Term, b matchBindings) bool {
	if pattern.IsVar() {
		if bound, ok := b[pattern.VarID()]; ok {
			return bound == instance
		}
		b[pattern.VarID()] = instance
		return true
	}
	if instance.IsVar() {
		return false
	}
	if pattern.IsNumeric() || instance.IsNumeric() {
		return pattern == instance
	}
	if pattern.Functor() != instance.Functor() {
		return false
	}
	pa, ia := pattern.Args(), instance.Args()
	for i := range pa {
		if !matchTerm(pa[i], ia[i], b) {
			return false
		}
	}
	return true
}

// matchLiteral matches a pattern literal against a ground-or-not instance
// literal, requiring identical predicate and (unless complementary is
// requested) identical polarity.
func matchLiteral(pattern, instance *term.Literal, complementary bool) (matchBindings, bool) {
	if pattern.Predicate != instance.Predicate {
		return nil, false
	}
	wantSame := !complementary
	if (pattern.Polarity == instance.Polarity) != wantSame {
		return nil, false
	}
	b := matchBindings{}
	for i := range pattern.Args {
		if !matchTerm(pattern.Args[i], instance.Args[i], b) {
			return nil, false
		}
	}
	return b, true
}

// isVariant reports whether a and b are identical up to a bijective
// variable renaming: a generalizes b and b generalizes a, through a
// consistent one-to-one mapping in both directions.
func isVariant(a, b *term.Term) bool {
	fwd := map[term.VarID]term.VarID{}
	bwd := map[term.VarID]term.VarID{}
	return variantRec(a, b, fwd, bwd)
}

func variantRec(a, b *term.Term, fwd, bwd map[term.VarID]term.VarID) bool {
	if a.IsVar() && b.IsVar() {
		av, bv := a.VarID(), b.VarID()
		if f, ok := fwd[av]; ok {
			return f == bv
		}
		if _, ok := bwd[bv]; ok {
			return false
		}
		fwd[av] = bv
		bwd[bv] = av
		return true
	}
	if a.IsVar() != b.IsVar() {
		return false
	}
	if a.IsNumeric() || b.IsNumeric() {
		return a == b
	}
	if a.Functor() != b.Functor() {
		return false
	}
	aa, ba := a.Args(), b.Args()
	for i := range aa {
		if !variantRec(aa[i], ba[i], fwd, bwd) {
			return false
		}
	}
	return true
}

// literalIsVariant reports whether two literals of the same predicate and
// polarity are variants of one another (spec.md §4.3, getVariants).
func literalIsVariant(a, b *term.Literal) bool {
	if a.Predicate != b.Predicate || a.Polarity != b.Polarity {
		return false
	}
	fwd := map[term.VarID]term.VarID{}
	bwd := map[term.VarID]term.VarID{}
	for i := range a.Args {
		if !variantRec(a.Args[i], b.Args[i], fwd, bwd) {
			return false
		}
	}
	return true
}
