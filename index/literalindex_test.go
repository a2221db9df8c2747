package index

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rhartert/saturn/term"
)

func newTestSig() *term.Signature {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	sig.AddFunctor(term.FunctorInfo{Name: "b", Arity: 0})
	sig.AddFunctor(term.FunctorInfo{Name: "f", Arity: 1})
	sig.AddPredicate("p", 1, 0)
	sig.AddPredicate("q", 2, 0)
	return sig
}

func TestLiteralIndex_GetUnifications(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)

	a := tbl.MkCompound(0, nil)
	fa := tbl.MkCompound(2, []*term.Term{a})
	x := tbl.MkVar(0)
	fx := tbl.MkCompound(2, []*term.Term{x})

	storedLit := tbl.MkLiteral(pPred, true, []*term.Term{fx})
	c := tbl.NewClause([]*term.Literal{storedLit}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c, storedLit)

	query := tbl.MkLiteral(pPred, true, []*term.Term{fa})

	var got []Entry
	for e := range idx.GetUnifications(query, false) {
		got = append(got, e)
	}
	if len(got) != 1 {
		t.Fatalf("GetUnifications: got %d entries, want 1", len(got))
	}
	if got[0].Clause != c {
		t.Errorf("GetUnifications: wrong clause returned")
	}
}

func TestLiteralIndex_GetUnifications_Complementary(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)

	a := tbl.MkCompound(0, nil)
	storedLit := tbl.MkLiteral(pPred, false, []*term.Term{a})
	c := tbl.NewClause([]*term.Literal{storedLit}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c, storedLit)

	query := tbl.MkLiteral(pPred, true, []*term.Term{a})

	count := 0
	for range idx.GetUnifications(query, true) {
		count++
	}
	if count != 1 {
		t.Errorf("complementary GetUnifications: got %d, want 1", count)
	}

	count = 0
	for range idx.GetUnifications(query, false) {
		count++
	}
	if count != 0 {
		t.Errorf("same-polarity GetUnifications should not match opposite-polarity entry, got %d", count)
	}
}

func TestLiteralIndex_GetGeneralizationsAndInstances(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)

	a := tbl.MkCompound(0, nil)
	x := tbl.MkVar(0)

	patternLit := tbl.MkLiteral(pPred, true, []*term.Term{x})
	c := tbl.NewClause([]*term.Literal{patternLit}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c, patternLit)

	groundQuery := tbl.MkLiteral(pPred, true, []*term.Term{a})

	genCount := 0
	for range idx.GetGeneralizations(groundQuery) {
		genCount++
	}
	if genCount != 1 {
		t.Errorf("GetGeneralizations: got %d, want 1 (p(X) generalizes p(a))", genCount)
	}

	instCount := 0
	for range idx.GetInstances(groundQuery) {
		instCount++
	}
	if instCount != 0 {
		t.Errorf("GetInstances from a ground query should not find p(X) as an instance, got %d", instCount)
	}

	// Reverse roles: indexing the ground literal, querying with the variable.
	idx2 := NewLiteralIndex(tbl)
	groundLit := tbl.MkLiteral(pPred, true, []*term.Term{a})
	c2 := tbl.NewClause([]*term.Literal{groundLit}, term.InferenceInput, nil)
	idx2.Insert(c2, groundLit)

	varQuery := tbl.MkLiteral(pPred, true, []*term.Term{x})
	instCount = 0
	for range idx2.GetInstances(varQuery) {
		instCount++
	}
	if instCount != 1 {
		t.Errorf("GetInstances: got %d, want 1 (p(a) is an instance of p(X))", instCount)
	}
}

func TestLiteralIndex_GetVariants(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)

	x := tbl.MkVar(0)
	y := tbl.MkVar(1)

	storedLit := tbl.MkLiteral(pPred, true, []*term.Term{x})
	c := tbl.NewClause([]*term.Literal{storedLit}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c, storedLit)

	queryLit := tbl.MkLiteral(pPred, true, []*term.Term{y})

	count := 0
	for range idx.GetVariants(queryLit) {
		count++
	}
	if count != 1 {
		t.Errorf("GetVariants: got %d, want 1 (p(X) and p(Y) are variants)", count)
	}
}

func TestLiteralIndex_GetAll_ReturnsEveryLiveEntry(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)
	qPred := term.PredicateID(2)

	a := tbl.MkCompound(0, nil)
	b := tbl.MkCompound(1, nil)
	l1 := tbl.MkLiteral(pPred, true, []*term.Term{a})
	l2 := tbl.MkLiteral(qPred, false, []*term.Term{a, b})
	c1 := tbl.NewClause([]*term.Literal{l1}, term.InferenceInput, nil)
	c2 := tbl.NewClause([]*term.Literal{l2}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c1, l1)
	idx.Insert(c2, l2)

	var got []term.ClauseID
	for e := range idx.GetAll() {
		got = append(got, e.Clause.ID)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []term.ClauseID{c1.ID, c2.ID}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAll clause ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLiteralIndex_RemoveTombstones(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	pPred := term.PredicateID(1)

	a := tbl.MkCompound(0, nil)
	lit := tbl.MkLiteral(pPred, true, []*term.Term{a})
	c := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)

	idx := NewLiteralIndex(tbl)
	idx.Insert(c, lit)
	idx.Remove(c, lit)

	count := 0
	for range idx.GetAll() {
		count++
	}
	if count != 0 {
		t.Errorf("GetAll after Remove: got %d entries, want 0", count)
	}
}
