//go:build clausepool

package term

import (
	"math/bits"
	"sync"
)

// Number of slice pools, adapted from the teacher's internal/sat clause
// allocator (clauses_alloc.go): pool i serves requested capacities in
// [2^i, 2^(i+1)-1] (pool 0 also serves 0), the last pool has no upper bound.
const nPools = 4

const lastCapa = 1 << nPools

var pools = [nPools]sync.Pool{}

func pid(capa int) int {
	if lastCapa <= capa {
		return nPools - 1
	}
	p := max(bits.Len(uint(capa))-1, 0)
	if capa < (1<<p) && p > 0 {
		p--
	}
	return p
}

func allocSlice(capa int) *[]*Literal {
	p := pid(capa)

	ref := pools[p].Get()
	if ref != nil && capa <= cap(*ref.(*[]*Literal)) {
		return ref.(*[]*Literal)
	}

	if p < nPools-1 {
		s := make([]*Literal, 0, 2<<p)
		return &s
	}
	if capa <= lastCapa*2 {
		s := make([]*Literal, 0, lastCapa*2)
		return &s
	}
	s := make([]*Literal, 0, capa)
	return &s
}

func freeSlice(s *[]*Literal) {
	*s = (*s)[:0]
	pools[pid(cap(*s))].Put(s)
}

func newClause(literals []*Literal) *Clause {
	c := &Clause{}
	ref := allocSlice(len(literals))
	c.sliceRef = ref
	c.literals = (*ref)[:0]
	c.literals = append(c.literals, literals...)
	return c
}
