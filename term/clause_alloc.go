//go:build !clausepool

package term

// newClause allocates a fresh Clause holding a copy of literals. See
// clause_allocpool.go for the pooled variant used under the "clausepool"
// build tag, adapted from the teacher's sync.Pool-backed literal slice
// allocator for the same reason the teacher has one: large problems
// produce and discard huge numbers of short-lived clauses.
func newClause(literals []*Literal) *Clause {
	c := &Clause{}
	c.literals = make([]*Literal, len(literals))
	copy(c.literals, literals)
	return c
}
