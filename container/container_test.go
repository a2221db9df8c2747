package container

import (
	"testing"

	"github.com/rhartert/saturn/index"
	"github.com/rhartert/saturn/term"
)

func newTestSig() *term.Signature {
	sig := term.NewSignature()
	sig.AddFunctor(term.FunctorInfo{Name: "a", Arity: 0})
	sig.AddPredicate("p", 1, 0)
	return sig
}

func TestUnprocessed_FIFO(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	lit := tbl.MkLiteral(term.PredicateID(1), true, []*term.Term{tbl.MkCompound(0, nil)})

	c1 := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)
	c2 := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)

	u := NewUnprocessed()
	u.Add(c1)
	u.Add(c2)

	if got := u.Pop(); got != c1 {
		t.Errorf("Pop: got clause %v, want c1", got.ID)
	}
	if got := u.Pop(); got != c2 {
		t.Errorf("Pop: got clause %v, want c2", got.ID)
	}
	if !u.IsEmpty() {
		t.Errorf("expected empty unprocessed queue")
	}
}

func TestPassive_UpdateLimitsAndAlternation(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	lit := tbl.MkLiteral(term.PredicateID(1), true, []*term.Term{tbl.MkCompound(0, nil)})

	p := NewPassive(1, 1)
	var clauses []*term.Clause
	for i := 0; i < 5; i++ {
		c := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)
		c.Age = uint32(i)
		clauses = append(clauses, c)
		p.Add(c)
	}

	if p.Len() != 5 {
		t.Fatalf("Len: got %d, want 5", p.Len())
	}

	p.UpdateLimits(2)
	if p.Len() != 2 {
		t.Fatalf("after UpdateLimits(2): got %d live clauses, want 2", p.Len())
	}

	count := 0
	for {
		_, ok := p.PopSelected()
		if !ok {
			break
		}
		count++
	}
	if count != 2 {
		t.Errorf("PopSelected: drained %d clauses, want 2", count)
	}
	if !p.IsEmpty() {
		t.Errorf("expected Passive empty after drain")
	}
}

func TestActiveAndSimplification_NonExclusive(t *testing.T) {
	sig := newTestSig()
	tbl := term.NewTable(sig)
	lit := tbl.MkLiteral(term.PredicateID(1), true, []*term.Term{tbl.MkCompound(0, nil)})
	c := tbl.NewClause([]*term.Literal{lit}, term.InferenceInput, nil)

	activeIdx := index.NewLiteralIndex(tbl)
	simplIdx := index.NewLiteralIndex(tbl)

	active := NewActive(activeIdx)
	simpl := NewSimplification(simplIdx)

	simpl.Add(c)
	if c.Store != term.StoreNone {
		t.Errorf("Simplification.Add must not change Store, got %v", c.Store)
	}

	active.Add(c)
	if c.Store != term.StoreActive {
		t.Errorf("Active.Add must set Store=Active, got %v", c.Store)
	}

	if !simpl.Contains(c) {
		t.Errorf("expected clause still present in Simplification after Active.Add")
	}

	active.Remove(c)
	if c.Store != term.StoreNone {
		t.Errorf("Active.Remove must clear Store, got %v", c.Store)
	}
	if !simpl.Contains(c) {
		t.Errorf("Simplification membership must be unaffected by Active.Remove")
	}
}
