// Package term implements the hash-consed term, literal and clause model
// (component C1) together with the signature that interprets functor and
// predicate symbols.
package term

import "fmt"

// FunctorID identifies a function symbol (or constant, arity 0) in a
// Signature.
type FunctorID uint32

// PredicateID identifies a predicate symbol in a Signature.
type PredicateID uint32

// Sort distinguishes the interpreted numeric/array sorts from uninterpreted
// ones. Only a handful of sorts are interpreted by this engine; anything
// else is an opaque uninterpreted sort identified by name.
type Sort int

const (
	SortUninterpreted Sort = iota
	SortInt
	SortRat
	SortReal
	SortArray
)

func (s Sort) String() string {
	switch s {
	case SortInt:
		return "$int"
	case SortRat:
		return "$rat"
	case SortReal:
		return "$real"
	case SortArray:
		return "$array"
	default:
		return "$uninterpreted"
	}
}

// Interpretation tags a functor with the built-in operation it implements.
// The zero value means "uninterpreted".
type Interpretation int

const (
	NotInterpreted Interpretation = iota
	Add
	Minus
	Mul
	One
	ZeroC
	ArrayStore
	ArraySelect
)

// FunctorInfo describes one function symbol.
type FunctorInfo struct {
	Name   string
	Arity  int
	Sort   Sort
	Interp Interpretation

	// IsTermAlgebraCons marks constructors of a term-algebra (ADT) sort.
	IsTermAlgebraCons bool
	// Destructors holds, for a term-algebra constructor, the selector
	// functor for each argument position (Destructors[i] undoes
	// constructor argument i).
	Destructors []FunctorID
}

// PredicateInfo describes one predicate symbol.
type PredicateInfo struct {
	Name  string
	Arity int
	// Level records the predicate's level as declared. KBO's
	// predLevel-first comparison (kbo.Ordering.ComparePredicates) reads
	// levels from kbo.Precedence.PredLevels, not from this field.
	Level int
}

// Signature maps functor/predicate ids to their declaration. It is built
// once per slice context and is append-only for the lifetime of a
// saturation run (see SPEC_FULL.md Concurrency).
type Signature struct {
	functors   []FunctorInfo
	predicates []PredicateInfo

	// EqualityPredicate is the reserved predicate id used for equality
	// literals.
	EqualityPredicate PredicateID

	// arraySelectOf maps an array "store" functor to the "select" functor
	// of the same array sort, used by the rebalancing inverter to build
	// store(a,i,x)=s ==> x=select(s,i) (spec.md §4.4).
	arraySelectOf map[FunctorID]FunctorID
}

// RegisterArraySelect records that selectFn is the ARRAY_SELECT functor
// corresponding to the ARRAY_STORE functor storeFn.
func (s *Signature) RegisterArraySelect(storeFn, selectFn FunctorID) {
	if s.arraySelectOf == nil {
		s.arraySelectOf = make(map[FunctorID]FunctorID)
	}
	s.arraySelectOf[storeFn] = selectFn
}

// ArraySelectFor returns the ARRAY_SELECT functor paired with storeFn.
func (s *Signature) ArraySelectFor(storeFn FunctorID) (FunctorID, bool) {
	id, ok := s.arraySelectOf[storeFn]
	return id, ok
}

// NewSignature returns an empty signature with the reserved equality
// predicate already declared.
func NewSignature() *Signature {
	sig := &Signature{}
	sig.EqualityPredicate = sig.AddPredicate("=", 2, 0)
	return sig
}

// AddFunctor declares a new function symbol and returns its id.
func (s *Signature) AddFunctor(info FunctorInfo) FunctorID {
	id := FunctorID(len(s.functors))
	s.functors = append(s.functors, info)
	return id
}

// AddPredicate declares a new predicate symbol and returns its id.
func (s *Signature) AddPredicate(name string, arity int, level int) PredicateID {
	id := PredicateID(len(s.predicates))
	s.predicates = append(s.predicates, PredicateInfo{Name: name, Arity: arity, Level: level})
	return id
}

// Functor returns the declaration of functor id. Panics (fatal, per
// spec.md §4.1) if id is out of range: an unknown functor is a bug in the
// caller, not a recoverable condition.
func (s *Signature) Functor(id FunctorID) *FunctorInfo {
	if int(id) >= len(s.functors) {
		panic(fmt.Sprintf("term: unknown functor id %d", id))
	}
	return &s.functors[id]
}

// Predicate returns the declaration of predicate id.
func (s *Signature) Predicate(id PredicateID) *PredicateInfo {
	if int(id) >= len(s.predicates) {
		panic(fmt.Sprintf("term: unknown predicate id %d", id))
	}
	return &s.predicates[id]
}

// IsEquality reports whether p is the reserved equality predicate.
func (s *Signature) IsEquality(p PredicateID) bool {
	return p == s.EqualityPredicate
}

// TryFunctor returns the declaration of functor id without panicking,
// reporting false if id is out of range.
func (s *Signature) TryFunctor(id FunctorID) (*FunctorInfo, bool) {
	if int(id) >= len(s.functors) {
		return nil, false
	}
	return &s.functors[id], true
}

// NumFunctors returns the number of declared functors.
func (s *Signature) NumFunctors() int { return len(s.functors) }

// NumPredicates returns the number of declared predicates.
func (s *Signature) NumPredicates() int { return len(s.predicates) }
