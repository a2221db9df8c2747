package index

import "github.com/rhartert/saturn/term"

// bankedTerm is a term paired with the "bank" (namespace) its variables
// live in. Two literals being unified or matched almost always reuse the
// same small variable ids (X0, X1, ...), so we disambiguate with a bank tag
// rather than physically renaming one side apart.
type bankedTerm struct {
	t    *term.Term
	bank uint8
}

type bindingKey struct {
	id   term.VarID
	bank uint8
}

// bindings maps a banked variable to the banked term it is bound to.
type bindings map[bindingKey]bankedTerm

func (b bindings) deref(bt bankedTerm) bankedTerm {
	for bt.t.IsVar() {
		key := bindingKey{id: bt.t.VarID(), bank: bt.bank}
		next, ok := b[key]
		if !ok {
			return bt
		}
		bt = next
	}
	return bt
}

// Constraint is a deferred theory equality produced by unify with
// withConstraints set: when two subterms have different head symbols, or
// differ and at least one is a numeric constant, the mismatch is deferred
// rather than failing outright (spec.md §4.3,
// getUnificationsWithConstraints). Whether the symbols involved are
// interpreted is not checked.
type Constraint struct {
	LHS, RHS *term.Term
}

const (
	bankQuery  uint8 = 0
	bankStored uint8 = 1
)

// BankQuery and BankStored tag which side of a two-literal unification a
// term came from, for use with Substitution.Apply by callers (package
// saturation) building resolvents/factors from an index retrieval.
const (
	BankQuery  = bankQuery
	BankStored = bankStored
)

// Substitution is the unifier produced by a successful index retrieval.
// It is opaque outside this package; callers apply it via Apply/ApplyLiteral.
type Substitution struct {
	b bindings
}

// Apply fully resolves t (from the given bank) under s, interning the
// result through tbl.
func (s Substitution) Apply(tbl *term.Table, bank uint8, t *term.Term) *term.Term {
	return resolve(tbl, s.b, bankedTerm{t, bank})
}

// ApplyLiteral fully resolves every argument of l (from the given bank)
// under s, returning the interned resulting literal with l's predicate and
// polarity.
func (s Substitution) ApplyLiteral(tbl *term.Table, bank uint8, l *term.Literal) *term.Literal {
	args := make([]*term.Term, len(l.Args))
	for i, a := range l.Args {
		args[i] = s.Apply(tbl, bank, a)
	}
	return tbl.MkLiteral(l.Predicate, l.Polarity, args)
}

// unify attempts to unify t1 (bank1) with t2 (bank2) under b, extending b
// in place. withConstraints controls whether interpreted-symbol mismatches
// are deferred as constraints (returned) instead of failing.
func unify(t1 *term.Term, bank1 uint8, t2 *term.Term, bank2 uint8, b bindings, withConstraints bool) ([]Constraint, bool) {
	var constraints []Constraint
	ok := unifyRec(t1, bank1, t2, bank2, b, withConstraints, &constraints)
	if !ok {
		return nil, false
	}
	return constraints, true
}

func unifyRec(t1 *term.Term, bank1 uint8, t2 *term.Term, bank2 uint8, b bindings, withConstraints bool, constraints *[]Constraint) bool {
	bt1 := b.deref(bankedTerm{t1, bank1})
	bt2 := b.deref(bankedTerm{t2, bank2})

	if bt1.t == bt2.t && bt1.bank == bt2.bank {
		return true
	}

	if bt1.t.IsVar() {
		if bt2.t.IsVar() && bt2.t.VarID() == bt1.t.VarID() && bt2.bank == bt1.bank {
			return true
		}
		if occursCheck(b, bt1.t.VarID(), bt1.bank, bt2) {
			return false
		}
		b[bindingKey{bt1.t.VarID(), bt1.bank}] = bt2
		return true
	}
	if bt2.t.IsVar() {
		if occursCheck(b, bt2.t.VarID(), bt2.bank, bt1) {
			return false
		}
		b[bindingKey{bt2.t.VarID(), bt2.bank}] = bt1
		return true
	}

	if bt1.t.IsNumeric() || bt2.t.IsNumeric() {
		if bt1.t == bt2.t {
			return true
		}
		if withConstraints && (bt1.t.IsNumeric() || bt2.t.IsNumeric()) {
			*constraints = append(*constraints, Constraint{LHS: bt1.t, RHS: bt2.t})
			return true
		}
		return false
	}

	if bt1.t.Functor() != bt2.t.Functor() {
		if withConstraints {
			*constraints = append(*constraints, Constraint{LHS: bt1.t, RHS: bt2.t})
			return true
		}
		return false
	}

	args1, args2 := bt1.t.Args(), bt2.t.Args()
	for i := range args1 {
		if !unifyRec(args1[i], bt1.bank, args2[i], bt2.bank, b, withConstraints, constraints) {
			return false
		}
	}
	return true
}

// occursCheck reports whether variable v (in bank vb) occurs, after
// dereferencing through b, in bt.
func occursCheck(b bindings, v term.VarID, vb uint8, bt bankedTerm) bool {
	bt = b.deref(bt)
	if bt.t.IsVar() {
		return bt.t.VarID() == v && bt.bank == vb
	}
	for _, a := range bt.t.Args() {
		if occursCheck(b, v, vb, bankedTerm{a, bt.bank}) {
			return true
		}
	}
	return false
}

// resolve builds the concrete term obtained by fully applying b to a
// banked term, interning the result through tbl.
func resolve(tbl *term.Table, b bindings, bt bankedTerm) *term.Term {
	bt = b.deref(bt)
	if bt.t.IsVar() || bt.t.IsNumeric() {
		return bt.t
	}
	args := bt.t.Args()
	newArgs := make([]*term.Term, len(args))
	for i, a := range args {
		newArgs[i] = resolve(tbl, b, bankedTerm{a, bt.bank})
	}
	return tbl.MkCompound(bt.t.Functor(), newArgs)
}

// unifyLiterals unifies query (bank 0) with stored (bank 1) if
// complementary polarity is satisfied. Returns the bindings and any
// deferred constraints.
func unifyLiterals(query, stored *term.Literal, complementary bool, withConstraints bool) (bindings, []Constraint, bool) {
	if query.Predicate != stored.Predicate {
		return nil, nil, false
	}
	wantSamePolarity := !complementary
	if (query.Polarity == stored.Polarity) != wantSamePolarity {
		return nil, nil, false
	}

	b := bindings{}
	var constraints []Constraint
	for i := range query.Args {
		cs, ok := unify(query.Args[i], bankQuery, stored.Args[i], bankStored, b, withConstraints)
		if !ok {
			return nil, nil, false
		}
		constraints = append(constraints, cs...)
	}
	return b, constraints, true
}
