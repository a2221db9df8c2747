package rebalance

import (
	"math/big"
	"testing"

	"github.com/rhartert/saturn/term"
)

func newArithSig() (*term.Signature, term.FunctorID, term.FunctorID, term.FunctorID) {
	sig := term.NewSignature()
	addFn := sig.AddFunctor(term.FunctorInfo{Name: "+", Arity: 2, Sort: term.SortInt, Interp: term.Add})
	mulFn := sig.AddFunctor(term.FunctorInfo{Name: "*", Arity: 2, Sort: term.SortRat, Interp: term.Mul})
	minusFn := sig.AddFunctor(term.FunctorInfo{Name: "-", Arity: 1, Sort: term.SortInt, Interp: term.Minus})
	return sig, addFn, mulFn, minusFn
}

func TestCanInvertTop_Add(t *testing.T) {
	sig, addFn, _, _ := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	two := tbl.MkNumeric(term.SortInt, big.NewRat(2, 1))
	plus := tbl.MkCompound(addFn, []*term.Term{x, two})

	ctx := InversionContext{TopTerm: plus, TopIdx: 0, ToWrap: tbl.MkNumeric(term.SortInt, big.NewRat(5, 1))}
	if !CanInvertTop(sig, ctx) {
		t.Fatalf("CanInvertTop: + should always be invertible")
	}
}

func TestInvertTop_Add(t *testing.T) {
	sig, addFn, _, _ := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	two := tbl.MkNumeric(term.SortInt, big.NewRat(2, 1))
	plus := tbl.MkCompound(addFn, []*term.Term{x, two})
	five := tbl.MkNumeric(term.SortInt, big.NewRat(5, 1))

	ctx := InversionContext{TopTerm: plus, TopIdx: 0, ToWrap: five}
	got := InvertTop(tbl, sig, ctx)
	// x = 5 + (-2) = 3.
	want := tbl.MkCompound(addFn, []*term.Term{five, tbl.MkNumeric(term.SortInt, big.NewRat(-2, 1))})
	if got != want {
		t.Errorf("InvertTop(+): got %s, want %s", got.String(sig), want.String(sig))
	}
}

func TestCanInvertTop_MulByZeroIsNotInvertible(t *testing.T) {
	sig, _, mulFn, _ := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	zero := tbl.MkNumeric(term.SortRat, big.NewRat(0, 1))
	mul := tbl.MkCompound(mulFn, []*term.Term{x, zero})

	ctx := InversionContext{TopTerm: mul, TopIdx: 0, ToWrap: tbl.MkNumeric(term.SortRat, big.NewRat(5, 1))}
	if CanInvertTop(sig, ctx) {
		t.Errorf("CanInvertTop: multiplying by zero must not be invertible")
	}
}

func TestCanInvertTop_MulByNonZeroRational(t *testing.T) {
	sig, _, mulFn, _ := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	three := tbl.MkNumeric(term.SortRat, big.NewRat(3, 1))
	mul := tbl.MkCompound(mulFn, []*term.Term{x, three})

	ctx := InversionContext{TopTerm: mul, TopIdx: 0, ToWrap: tbl.MkNumeric(term.SortRat, big.NewRat(6, 1))}
	if !CanInvertTop(sig, ctx) {
		t.Fatalf("CanInvertTop: multiplying by a non-zero rational constant should be invertible")
	}
	got := InvertTop(tbl, sig, ctx)
	// x = 6 * (1/3).
	six := tbl.MkNumeric(term.SortRat, big.NewRat(6, 1))
	want := tbl.MkCompound(mulFn, []*term.Term{six, tbl.MkNumeric(term.SortRat, big.NewRat(1, 3))})
	if got != want {
		t.Errorf("InvertTop(*): got %s, want %s", got.String(sig), want.String(sig))
	}
}

func TestInvertTop_Minus(t *testing.T) {
	sig, _, _, minusFn := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	neg := tbl.MkCompound(minusFn, []*term.Term{x})
	five := tbl.MkNumeric(term.SortInt, big.NewRat(5, 1))

	ctx := InversionContext{TopTerm: neg, TopIdx: 0, ToWrap: five}
	if !CanInvertTop(sig, ctx) {
		t.Fatalf("CanInvertTop: unary minus should always be invertible")
	}
	got := InvertTop(tbl, sig, ctx)
	if !got.IsNumeric() || got.NumericValue().Cmp(big.NewRat(-5, 1)) != 0 {
		t.Errorf("InvertTop(-): got %v, want -5", got)
	}
}

func TestInvertTop_PanicsWhenNotInvertible(t *testing.T) {
	sig, _, mulFn, _ := newArithSig()
	tbl := term.NewTable(sig)
	x := tbl.MkVar(0)
	zero := tbl.MkNumeric(term.SortRat, big.NewRat(0, 1))
	mul := tbl.MkCompound(mulFn, []*term.Term{x, zero})
	ctx := InversionContext{TopTerm: mul, TopIdx: 0, ToWrap: tbl.MkNumeric(term.SortRat, big.NewRat(5, 1))}

	defer func() {
		if recover() == nil {
			t.Errorf("InvertTop: expected a panic for a non-invertible context")
		}
	}()
	InvertTop(tbl, sig, ctx)
}
