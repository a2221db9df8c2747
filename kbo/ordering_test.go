package kbo

import (
	"testing"

	"github.com/rhartert/saturn/term"
)

func newTestOrdering() (*term.Signature, *term.Table, *Ordering) {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	sig.AddFunctor(term.FunctorInfo{Name: "b", Arity: 0})
	sig.AddFunctor(term.FunctorInfo{Name: "f", Arity: 1})
	sig.AddFunctor(term.FunctorInfo{Name: "g", Arity: 1})

	tbl := term.NewTable(sig)
	ord := NewOrdering(sig, DefaultWeightMap(sig.NumFunctors()), Precedence{
		FuncRank: []int{0, 1, 2, 3}, // a < b < f < g
	})
	return sig, tbl, ord
}

func TestOrdering_Compare_WeightDominates(t *testing.T) {
	_, tbl, ord := newTestOrdering()
	a := tbl.MkCompound(0, nil)
	fa := tbl.MkCompound(2, []*term.Term{a})

	if got := ord.Compare(fa, a); got != Greater {
		t.Errorf("Compare(f(a), a) = %v, want Greater", got)
	}
	if got := ord.Compare(a, fa); got != Less {
		t.Errorf("Compare(a, f(a)) = %v, want Less", got)
	}
}

func TestOrdering_Compare_SameWeightTieBreaksOnPrecedence(t *testing.T) {
	_, tbl, ord := newTestOrdering()
	a := tbl.MkCompound(0, nil)
	b := tbl.MkCompound(1, nil)

	if got := ord.Compare(b, a); got != Greater {
		t.Errorf("Compare(b, a) = %v, want Greater (b ranks above a)", got)
	}
	if got := ord.Compare(a, b); got != Less {
		t.Errorf("Compare(a, b) = %v, want Less", got)
	}
}

func TestOrdering_Compare_VariableVsGroundTerm(t *testing.T) {
	_, tbl, ord := newTestOrdering()
	x := tbl.MkVar(0)
	a := tbl.MkCompound(0, nil)
	fx := tbl.MkCompound(2, []*term.Term{x})

	if got := ord.Compare(x, fx); got != Less {
		t.Errorf("Compare(X, f(X)) = %v, want Less (X occurs in f(X))", got)
	}
	if got := ord.Compare(x, a); got != Incomparable {
		t.Errorf("Compare(X, a) = %v, want Incomparable", got)
	}
}

func TestOrdering_Compare_Reflexive(t *testing.T) {
	_, tbl, ord := newTestOrdering()
	a := tbl.MkCompound(0, nil)
	if got := ord.Compare(a, a); got != Equal {
		t.Errorf("Compare(a, a) = %v, want Equal", got)
	}
}

func TestResult_Opposite(t *testing.T) {
	tests := []struct {
		r    Result
		want Result
	}{
		{Greater, Less},
		{Less, Greater},
		{Equal, Equal},
		{Incomparable, Incomparable},
	}
	for _, tt := range tests {
		if got := tt.r.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestOrdering_CheckAdmissibility_FlagsLowVariableWeight(t *testing.T) {
	sig, _, _ := newTestOrdering()
	weights := DefaultWeightMap(sig.NumFunctors())
	weights.Special.Variable = 0
	ord := NewOrdering(sig, weights, Precedence{FuncRank: []int{0, 1, 2, 3}})

	var errs []error
	ord.CheckAdmissibility(func(e error) { errs = append(errs, e) })
	if len(errs) == 0 {
		t.Errorf("CheckAdmissibility: expected a violation for variable weight 0")
	}
}
