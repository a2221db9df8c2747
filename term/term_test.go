package term

import "testing"

func newTestSig() *Signature {
	sig := NewSignature()
	sig.AddFunctor(FunctorInfo{Name: "a", Arity: 0})
	sig.AddFunctor(FunctorInfo{Name: "f", Arity: 1})
	return sig
}

func TestTable_MkCompound_IsHashConsed(t *testing.T) {
	sig := newTestSig()
	tbl := NewTable(sig)

	a1 := tbl.MkCompound(0, nil)
	a2 := tbl.MkCompound(0, nil)
	if a1 != a2 {
		t.Errorf("MkCompound: two calls for the same constant returned distinct terms")
	}

	f1 := tbl.MkCompound(1, []*Term{a1})
	f2 := tbl.MkCompound(1, []*Term{a2})
	if f1 != f2 {
		t.Errorf("MkCompound: structurally equal compounds were not interned to the same pointer")
	}
}

func TestTable_MkCompound_ArityMismatchPanics(t *testing.T) {
	sig := newTestSig()
	tbl := NewTable(sig)

	defer func() {
		if recover() == nil {
			t.Errorf("MkCompound: expected a panic on arity mismatch")
		}
	}()
	tbl.MkCompound(1, nil) // f/1 called with zero arguments.
}

func TestTable_MkVar_IsHashConsed(t *testing.T) {
	sig := newTestSig()
	tbl := NewTable(sig)

	x1 := tbl.MkVar(0)
	x2 := tbl.MkVar(0)
	if x1 != x2 {
		t.Errorf("MkVar: two calls for the same id returned distinct terms")
	}
}

func TestVariablesOf(t *testing.T) {
	sig := newTestSig()
	tbl := NewTable(sig)

	x := tbl.MkVar(0)
	fx := tbl.MkCompound(1, []*Term{x})
	ffx := tbl.MkCompound(1, []*Term{fx})

	counts := VariablesOf(ffx)
	if counts[0] != 1 {
		t.Errorf("VariablesOf(f(f(X))): got count %d for X, want 1", counts[0])
	}
}

func TestOccurs(t *testing.T) {
	sig := newTestSig()
	tbl := NewTable(sig)

	x := tbl.MkVar(0)
	fx := tbl.MkCompound(1, []*Term{x})

	if !Occurs(0, fx) {
		t.Errorf("Occurs(X, f(X)) = false, want true")
	}
	if Occurs(1, fx) {
		t.Errorf("Occurs(Y, f(X)) = true, want false")
	}
}

func TestClause_WeightAndEmpty(t *testing.T) {
	sig := newTestSig()
	sig.AddPredicate("p", 1, 0)
	tbl := NewTable(sig)

	a := tbl.MkCompound(0, nil)
	lit := tbl.MkLiteral(1, true, []*Term{a})
	c := tbl.NewClause([]*Literal{lit}, InferenceInput, nil)

	if c.IsEmpty() {
		t.Errorf("Clause with one literal reported IsEmpty")
	}
	if c.Weight() == 0 {
		t.Errorf("Clause.Weight() = 0, want > 0")
	}

	empty := tbl.NewClause(nil, InferenceResolution, []ClauseID{c.ID})
	if !empty.IsEmpty() {
		t.Errorf("Clause with zero literals should report IsEmpty")
	}
}

func TestClause_SetSelected(t *testing.T) {
	sig := newTestSig()
	sig.AddPredicate("p", 1, 0)
	tbl := NewTable(sig)

	a := tbl.MkCompound(0, nil)
	x := tbl.MkVar(0)
	l1 := tbl.MkLiteral(1, true, []*Term{a})
	l2 := tbl.MkLiteral(1, false, []*Term{x})
	c := tbl.NewClause([]*Literal{l1, l2}, InferenceInput, nil)

	if c.Selected() != 2 {
		t.Errorf("Selected() with no explicit selection = %d, want Len()=2", c.Selected())
	}
	c.SetSelected(1)
	if c.Selected() != 1 {
		t.Errorf("Selected() after SetSelected(1) = %d, want 1", c.Selected())
	}
}

func TestSignature_IsEquality(t *testing.T) {
	sig := NewSignature()
	if !sig.IsEquality(sig.EqualityPredicate) {
		t.Errorf("IsEquality(EqualityPredicate) = false, want true")
	}
	other := sig.AddPredicate("p", 1, 0)
	if sig.IsEquality(other) {
		t.Errorf("IsEquality(p) = true, want false")
	}
}
