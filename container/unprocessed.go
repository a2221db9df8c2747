// Package container implements the clause containers (component C5):
// Unprocessed, Passive, Active and the Simplification container that
// mirrors Active for forward/backward simplification retrieval.
//
// Grounded on internal/sat/queue.go (teacher): Unprocessed reuses the
// teacher's generic ring-buffer Queue verbatim, generalized from int
// literals to *term.Clause. Passive's twin heaps are grounded on
// github.com/rhartert/yagh, the same indexable priority heap the teacher
// uses for VarOrder's activity queue (internal/sat/ordering.go), here
// keyed by clause id instead of variable id.
package container

import (
	"fmt"
	"strings"

	"github.com/rhartert/saturn/term"
)

// Queue is a generic FIFO ring buffer, adapted from the teacher's
// internal/sat/queue.go (originally Queue[int] for unit-propagation
// literals) to hold *term.Clause instead.
type Queue[T any] struct {
	ring  []T
	mask  int
	start int
	end   int
	size  int
}

// NewQueue returns a new Queue with at least the given capacity.
func NewQueue[T any](capa int) *Queue[T] {
	capa = nextPower2(capa)
	return &Queue[T]{
		ring: make([]T, capa),
		mask: capa - 1,
	}
}

func nextPower2(i int) int {
	if i < 1 {
		i = 1
	}
	i |= i >> 1
	i |= i >> 2
	i |= i >> 4
	i |= i >> 8
	i |= i >> 16
	i |= i >> 32
	return i + 1
}

func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }
func (q *Queue[T]) Size() int     { return q.size }

func (q *Queue[T]) Clear() {
	q.start = 0
	q.end = 0
	q.size = 0
}

func (q *Queue[T]) Push(elem T) {
	if q.size == len(q.ring) {
		q.resize()
	}
	q.ring[q.end] = elem
	q.end = (q.end + 1) & q.mask
	q.size++
}

func (q *Queue[T]) resize() {
	newRing := make([]T, len(q.ring)*2)
	if q.start == 0 {
		copy(newRing, q.ring)
		q.ring = newRing
		q.mask = len(newRing) - 1
		q.end = q.size
	} else {
		l := len(q.ring) - q.start
		copy(newRing[:l], q.ring[q.start:])
		copy(newRing[l:], q.ring[:q.end])
		q.start = 0
		q.end = len(q.ring)
		q.ring = newRing
		q.mask = len(newRing) - 1
	}
}

func (q *Queue[T]) Pop() T {
	if q.size == 0 {
		panic("container: pop on an empty queue")
	}
	elem := q.ring[q.start]
	q.start = (q.start + 1) & q.mask
	q.size--
	return elem
}

func (q *Queue[T]) String() string {
	if q.IsEmpty() {
		return "Queue[]"
	}
	var sb strings.Builder
	sb.WriteString("Queue[")
	sb.WriteString(fmt.Sprintf("%v", q.ring[q.start]))
	for i := 1; i < q.Size(); i++ {
		p := (q.start + i) & q.mask
		sb.WriteString(fmt.Sprintf(" %v", q.ring[p]))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Unprocessed is the FIFO of freshly derived clauses (spec.md §4.5).
type Unprocessed struct {
	q *Queue[*term.Clause]
}

// NewUnprocessed returns an empty Unprocessed container.
func NewUnprocessed() *Unprocessed {
	return &Unprocessed{q: NewQueue[*term.Clause](64)}
}

// Add pushes c onto the unprocessed queue, tagging its store field.
func (u *Unprocessed) Add(c *term.Clause) {
	c.Store = term.StoreUnprocessed
	u.q.Push(c)
}

// IsEmpty reports whether the unprocessed queue has drained.
func (u *Unprocessed) IsEmpty() bool { return u.q.IsEmpty() }

// Len returns the number of pending clauses.
func (u *Unprocessed) Len() int { return u.q.Size() }

// Pop removes and returns the oldest pending clause.
func (u *Unprocessed) Pop() *term.Clause {
	c := u.q.Pop()
	c.Store = term.StoreNone
	return c
}
