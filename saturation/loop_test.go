package saturation

import (
	"context"
	"testing"

	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/term"
)

// TestSlice_Refutation_PAndNotP implements scenario S1 (spec.md §8):
// { p(a), ~p(a) } under resolution must refute as soon as the second clause
// is activated against the first.
func TestSlice_Refutation_PAndNotP(t *testing.T) {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	pPred := sig.AddPredicate("p", 1, 0)

	tbl := term.NewTable(sig)
	a := tbl.MkCompound(0, nil)

	posLit := tbl.MkLiteral(pPred, true, []*term.Term{a})
	negLit := tbl.MkLiteral(pPred, false, []*term.Term{a})

	c1 := tbl.NewClause([]*term.Literal{posLit}, term.InferenceInput, nil)
	c2 := tbl.NewClause([]*term.Literal{negLit}, term.InferenceInput, nil)

	ord := kbo.NewOrdering(sig, kbo.DefaultWeightMap(sig.NumFunctors()), kbo.Precedence{})

	problem := ProblemCnf{Signature: sig, Table: tbl, Clauses: []*term.Clause{c1, c2}}
	opt := DefaultOptions()
	slice := NewSlice(problem, ord, opt)

	result := slice.Run(context.Background())
	if result.Kind != Refutation {
		t.Fatalf("Run: got %v, want Refutation", result.Kind)
	}
	if result.Proof == nil || !result.Proof.IsEmpty() {
		t.Fatalf("Run: refutation proof should be the empty clause")
	}
}

// TestSlice_Satisfiable_SingleUnitClause implements scenario S2: a single
// unit clause under a complete calculus saturates with no contradiction.
func TestSlice_Satisfiable_SingleUnitClause(t *testing.T) {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	pPred := sig.AddPredicate("p", 1, 0)

	tbl := term.NewTable(sig)
	a := tbl.MkCompound(0, nil)
	lit := tbl.MkLiteral(pPred, true, []*term.Term{a})
	c := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)

	ord := kbo.NewOrdering(sig, kbo.DefaultWeightMap(sig.NumFunctors()), kbo.Precedence{})

	problem := ProblemCnf{Signature: sig, Table: tbl, Clauses: []*term.Clause{c}}
	opt := DefaultOptions()
	slice := NewSlice(problem, ord, opt)

	result := slice.Run(context.Background())
	if result.Kind != Satisfiable {
		t.Fatalf("Run: got %v, want Satisfiable", result.Kind)
	}
}

func TestSlice_Run_RespectsContextCancellation(t *testing.T) {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	pPred := sig.AddPredicate("p", 1, 0)

	tbl := term.NewTable(sig)
	a := tbl.MkCompound(0, nil)
	lit := tbl.MkLiteral(pPred, true, []*term.Term{a})
	c := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)

	ord := kbo.NewOrdering(sig, kbo.DefaultWeightMap(sig.NumFunctors()), kbo.Precedence{})
	problem := ProblemCnf{Signature: sig, Table: tbl, Clauses: []*term.Clause{c}}
	slice := NewSlice(problem, ord, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := slice.Run(ctx)
	if result.Kind != Unknown {
		t.Fatalf("Run with cancelled context: got %v, want Unknown", result.Kind)
	}
}
