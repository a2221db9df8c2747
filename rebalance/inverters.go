// Package rebalance implements the rebalancing inverters (component C4):
// given an equation t = w where t's head is at a position that can be
// isolated, it decides invertibility and produces the inverse context that
// solves for the subterm.
//
// Grounded on Kernel/Rebalancing/Inverters.cpp (original_source):
// NumberTheoryInverter::canInvertTop / invertTop map directly onto
// CanInvertTop / InvertTop below, one case arm per interpreted function.
package rebalance

import (
	"math/big"

	"github.com/rhartert/saturn/term"
)

// InversionContext is {topTerm, topIdx, toWrap}: the equation
// topTerm = toWrap, where we attempt to isolate topTerm.Args()[topIdx].
type InversionContext struct {
	TopTerm *term.Term
	TopIdx  int
	ToWrap  *term.Term
}

// CanInvertTop implements the case table of spec.md §4.4.
func CanInvertTop(sig *term.Signature, ctx InversionContext) bool {
	t := ctx.TopTerm
	if t.IsVar() || t.IsNumeric() {
		return false
	}
	info := sig.Functor(t.Functor())

	switch info.Interp {
	case term.Add, term.Minus:
		return true
	case term.Mul:
		other := t.Args()[1-ctx.TopIdx]
		switch info.Sort {
		case term.SortRat, term.SortReal:
			return nonZeroConstant(other)
		case term.SortInt:
			return isUnitConstant(other)
		default:
			return false
		}
	case term.ArrayStore:
		return ctx.TopIdx == 2
	default:
		return info.IsTermAlgebraCons
	}
}

// InvertTop implements spec.md §4.4's invertTop. Precondition:
// CanInvertTop(ctx) must hold; violation is fatal (an InternalInvariant per
// spec.md §7), matching the original's ASS(canInvertTop(ctxt)).
func InvertTop(tbl *term.Table, sig *term.Signature, ctx InversionContext) *term.Term {
	if !CanInvertTop(sig, ctx) {
		panic("rebalance: InvertTop called with non-invertible context")
	}

	t := ctx.TopTerm
	info := sig.Functor(t.Functor())

	switch info.Interp {
	case term.Add:
		other := t.Args()[1-ctx.TopIdx]
		return mkBinary(tbl, sig, t.Functor(), ctx.ToWrap, negate(tbl, sig, info.Sort, other))
	case term.Minus:
		return negate(tbl, sig, info.Sort, ctx.ToWrap)
	case term.Mul:
		other := t.Args()[1-ctx.TopIdx]
		switch info.Sort {
		case term.SortRat, term.SortReal:
			inv := reciprocal(other)
			return mkBinary(tbl, sig, t.Functor(), ctx.ToWrap, tbl.MkNumeric(info.Sort, inv))
		case term.SortInt:
			v := other.NumericValue()
			if v.Cmp(big.NewRat(1, 1)) == 0 {
				return ctx.ToWrap
			}
			// v == -1
			return mkBinary(tbl, sig, t.Functor(), other, ctx.ToWrap)
		}
	case term.ArrayStore:
		selectFn, ok := sig.ArraySelectFor(t.Functor())
		if !ok {
			panic("rebalance: no registered select functor for store functor")
		}
		s := ctx.ToWrap
		i := t.Args()[1]
		return tbl.MkCompound(selectFn, []*term.Term{s, i})
	}

	// Term-algebra constructor: x = destructor_idx(toWrap).
	dtor := info.Destructors[ctx.TopIdx]
	return tbl.MkCompound(dtor, []*term.Term{ctx.ToWrap})
}

func nonZeroConstant(t *term.Term) bool {
	return t.IsNumeric() && t.NumericValue().Sign() != 0
}

func isUnitConstant(t *term.Term) bool {
	if !t.IsNumeric() {
		return false
	}
	v := t.NumericValue()
	return v.Cmp(big.NewRat(1, 1)) == 0 || v.Cmp(big.NewRat(-1, 1)) == 0
}

func reciprocal(t *term.Term) *big.Rat {
	v := t.NumericValue()
	return new(big.Rat).Inv(v)
}

func negate(tbl *term.Table, sig *term.Signature, sort term.Sort, t *term.Term) *term.Term {
	if t.IsNumeric() {
		return tbl.MkNumeric(sort, new(big.Rat).Neg(t.NumericValue()))
	}
	minusFn := findInterpreted(sig, sort, term.Minus, 1)
	return tbl.MkCompound(minusFn, []*term.Term{t})
}

func mkBinary(tbl *term.Table, sig *term.Signature, fn term.FunctorID, a, b *term.Term) *term.Term {
	return tbl.MkCompound(fn, []*term.Term{a, b})
}

// findInterpreted looks up the unique functor of the given sort,
// interpretation and arity. This is the Go stand-in for the original's
// env.signature->getInterpretingSymbol: interpreted symbols are assumed
// unique per (sort, interpretation, arity) within a Signature.
func findInterpreted(sig *term.Signature, sort term.Sort, interp term.Interpretation, arity int) term.FunctorID {
	for id := 0; ; id++ {
		info, ok := sig.TryFunctor(term.FunctorID(id))
		if !ok {
			break
		}
		if info.Sort == sort && info.Interp == interp && info.Arity == arity {
			return term.FunctorID(id)
		}
	}
	panic("rebalance: no interpreted symbol registered for requested sort/interpretation")
}
