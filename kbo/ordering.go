// Package kbo implements the Knuth-Bendix term and literal ordering
// (component C2): a total simplification ordering on terms used to orient
// equalities and to restrict resolution/superposition to ordering-admissible
// inferences, plus a compiled instruction form for fast repeated
// demodulation checks (see demod.go).
//
// Grounded on Kernel/KBO.hpp (original_source): the weight map / special
// weights / precedence shape and the compiled-instruction demodulator check
// are carried over directly; the recursive comparison itself follows
// spec.md §4.2.
package kbo

import "github.com/rhartert/saturn/term"

// Result is the four-valued outcome of comparing two terms or literals,
// following the same "lifted enum with an Opposite and a String" shape the
// teacher uses for its three-valued LBool (internal/sat/lbool.go).
type Result int8

const (
	Incomparable Result = 0
	Greater      Result = 1
	Less         Result = -1
	Equal        Result = 2
)

// Opposite returns the result of comparing the same two operands in the
// reverse order.
func (r Result) Opposite() Result {
	switch r {
	case Greater:
		return Less
	case Less:
		return Greater
	default:
		return r
	}
}

func (r Result) String() string {
	switch r {
	case Greater:
		return "Greater"
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	default:
		return "Incomparable"
	}
}

// SpecialWeights holds the weights that apply to variables and to the
// interpreted numeric constants, mirroring KboSpecialWeights<FuncSigTraits>.
type SpecialWeights struct {
	Variable term.Weight
	NumInt   term.Weight
	NumRat   term.Weight
	NumReal  term.Weight
}

// DefaultSpecialWeights matches KboSpecialWeights::dflt() (all 1).
var DefaultSpecialWeights = SpecialWeights{Variable: 1, NumInt: 1, NumRat: 1, NumReal: 1}

// WeightMap assigns a KBO weight to every functor (or predicate) id, plus a
// weight for symbols introduced during proof search that never appear in
// the original signature.
type WeightMap struct {
	PerFunctor []term.Weight
	Introduced term.Weight
	Special    SpecialWeights
}

// SymbolWeight returns the weight of functor id, falling back to
// Introduced for ids beyond the map (symbols introduced by inference, e.g.
// Skolem functions minted after the map was built).
func (m *WeightMap) SymbolWeight(id term.FunctorID) term.Weight {
	if int(id) < len(m.PerFunctor) {
		return m.PerFunctor[id]
	}
	return m.Introduced
}

// DefaultWeightMap returns a weight map assigning weight 1 to every functor
// up to n, matching KboWeightMap::dflt() for the common "unit weight"
// configuration.
func DefaultWeightMap(n int) WeightMap {
	w := make([]term.Weight, n)
	for i := range w {
		w[i] = 1
	}
	return WeightMap{PerFunctor: w, Introduced: 1, Special: DefaultSpecialWeights}
}

// Precedence is an injective ranking of symbol ids. Functions and
// predicates use independent precedences (spec.md §3).
type Precedence struct {
	FuncRank []int
	PredRank []int
	// PredLevels groups predicates into levels compared before ranks
	// (spec.md §3, §4.2).
	PredLevels []int
}

func (p *Precedence) funcRank(id term.FunctorID) int {
	if int(id) < len(p.FuncRank) {
		return p.FuncRank[id]
	}
	// Symbols introduced after the precedence was fixed are maximal,
	// matching the "introduced" weight convention above.
	return len(p.FuncRank) + int(id)
}

func (p *Precedence) predRank(id term.PredicateID) int {
	if int(id) < len(p.PredRank) {
		return p.PredRank[id]
	}
	return len(p.PredRank) + int(id)
}

func (p *Precedence) predLevel(id term.PredicateID) int {
	if int(id) < len(p.PredLevels) {
		return p.PredLevels[id]
	}
	return 0
}

// Ordering is a KBO instance: a weight map, a precedence, and the signature
// they're defined over. It also owns the compiled-demodulator-instruction
// cache (see demod.go), which is mutable but single-owner within a slice
// (SPEC_FULL.md Concurrency).
type Ordering struct {
	Sig        *term.Signature
	Weights    WeightMap
	Precedence Precedence

	// ReverseLiteralComparison toggles the direction of the predLevel/
	// precedence comparison for non-equality literals (Options key
	// "reverseLiteralComparison", spec.md §6).
	ReverseLiteralComparison bool

	demodCache map[demodKey][]Instruction
}

// NewOrdering returns a KBO ordering over sig with the given weights and
// precedence.
func NewOrdering(sig *term.Signature, weights WeightMap, prec Precedence) *Ordering {
	return &Ordering{
		Sig:        sig,
		Weights:    weights,
		Precedence: prec,
		demodCache: make(map[demodKey][]Instruction),
	}
}

// Clone returns a new Ordering over the same signature, weights and
// precedence but with an empty demodulator-instruction cache. Each
// portfolio slice (package casc) runs its own given-clause loop and must
// not observe another slice's cached demodulator programs, so the runner
// clones the base ordering per slice instead of sharing one *Ordering.
func (o *Ordering) Clone() *Ordering {
	return &Ordering{
		Sig:                      o.Sig,
		Weights:                  o.Weights,
		Precedence:               o.Precedence,
		ReverseLiteralComparison: o.ReverseLiteralComparison,
		demodCache:               make(map[demodKey][]Instruction),
	}
}

// weight computes the real KBO weight of t (unlike term.Term.Weight, which
// only caches a unit-per-symbol hint). Terms are hash-consed so this could
// be memoized per Ordering instance; we recompute directly here since
// saturation clauses are small and weight is also needed, pre-substitution,
// by the compiled demodulator (demod.go), which must not depend on a
// memo table keyed by terms that don't exist yet.
func (o *Ordering) weight(t *term.Term) int64 {
	if t.IsVar() {
		return int64(o.Weights.Special.Variable)
	}
	if t.IsNumeric() {
		return int64(o.numericWeight(t.NumericSort()))
	}
	w := int64(o.Weights.Introduced)
	if int(t.Functor()) < len(o.Weights.PerFunctor) {
		w = int64(o.Weights.PerFunctor[t.Functor()])
	}
	for _, a := range t.Args() {
		w += o.weight(a)
	}
	return w
}

func (o *Ordering) numericWeight(sort term.Sort) term.Weight {
	switch sort {
	case term.SortInt:
		return o.Weights.Special.NumInt
	case term.SortRat:
		return o.Weights.Special.NumRat
	default:
		return o.Weights.Special.NumReal
	}
}

// varCounts returns the per-variable occurrence multiset of t.
func varCounts(t *term.Term) map[term.VarID]int {
	return term.VariablesOf(t)
}

func multisetGE(a, b map[term.VarID]int) bool {
	for v, n := range b {
		if a[v] < n {
			return false
		}
	}
	return true
}

// Compare implements the total KBO comparison of spec.md §4.2.
func (o *Ordering) Compare(t, s *term.Term) Result {
	if t == s {
		return Equal
	}
	if t.IsVar() {
		if s.IsVar() {
			return Incomparable
		}
		if term.Occurs(t.VarID(), s) {
			return Less
		}
		return Incomparable
	}
	if s.IsVar() {
		if term.Occurs(s.VarID(), t) {
			return Greater
		}
		return Incomparable
	}

	wt, ws := o.weight(t), o.weight(s)
	vt, vs := varCounts(t), varCounts(s)
	tGEs := multisetGE(vt, vs)
	sGEt := multisetGE(vs, vt)

	switch {
	case wt > ws && tGEs:
		return Greater
	case ws > wt && sGEt:
		return Less
	case wt == ws && tGEs && sGEt:
		if t.Functor() == s.Functor() {
			return o.compareArgsLex(t.Args(), s.Args())
		}
		fr, sr := o.Precedence.funcRank(t.Functor()), o.Precedence.funcRank(s.Functor())
		if fr > sr {
			return Greater
		}
		if fr < sr {
			return Less
		}
		return Incomparable
	default:
		return Incomparable
	}
}

// compareArgsLex compares two equal-arity argument lists left to right,
// recursing into the first position whose comparison is not Equal.
func (o *Ordering) compareArgsLex(a, b []*term.Term) Result {
	for i := range a {
		r := o.Compare(a[i], b[i])
		if r != Equal {
			return r
		}
	}
	return Equal
}

// ComparePredicates orders two literals: first by predLevel, then (for
// equality literals) by a four-way multiset comparison of their sides, and
// otherwise by predicate precedence followed by lexicographic argument
// comparison (spec.md §4.2).
func (o *Ordering) ComparePredicates(l1, l2 *term.Literal) Result {
	lv1, lv2 := o.Precedence.predLevel(l1.Predicate), o.Precedence.predLevel(l2.Predicate)
	if lv1 != lv2 {
		if o.ReverseLiteralComparison {
			lv1, lv2 = lv2, lv1
		}
		if lv1 > lv2 {
			return Greater
		}
		return Less
	}

	if o.Sig.IsEquality(l1.Predicate) && o.Sig.IsEquality(l2.Predicate) {
		return o.compareEqualitySides(l1.Args, l2.Args)
	}
	if o.Sig.IsEquality(l1.Predicate) != o.Sig.IsEquality(l2.Predicate) {
		// Equality literals are conventionally maximal among predicates of
		// the same level.
		if o.Sig.IsEquality(l1.Predicate) {
			return Greater
		}
		return Less
	}

	pr1, pr2 := o.Precedence.predRank(l1.Predicate), o.Precedence.predRank(l2.Predicate)
	if o.ReverseLiteralComparison {
		pr1, pr2 = pr2, pr1
	}
	switch {
	case pr1 > pr2:
		return Greater
	case pr1 < pr2:
		return Less
	case l1.Predicate == l2.Predicate:
		return o.compareArgsLex(l1.Args, l2.Args)
	default:
		return Incomparable
	}
}

// compareEqualitySides implements the multiset extension of Compare over
// the two (unordered) sides of an equality literal, i.e. treats {a,b} and
// {c,d} as two-element multisets and applies the Dershowitz-Manna multiset
// ordering.
func (o *Ordering) compareEqualitySides(ab, cd []*term.Term) Result {
	return compareMultiset(ab, cd, o.Compare)
}

// compareMultiset implements the Dershowitz-Manna multiset extension of cmp
// for small (here: 2-element) multisets: M > N iff M != N and every element
// of N not matched by an equal element of M is dominated by some element of
// M not matched by an equal element of N.
func compareMultiset(a, b []*term.Term, cmp func(x, y *term.Term) Result) Result {
	ra := append([]*term.Term(nil), a...)
	rb := append([]*term.Term(nil), b...)

	// Remove one matching (Equal) pair at a time.
	for i := 0; i < len(ra); i++ {
		for j := 0; j < len(rb); j++ {
			if ra[i] == rb[j] {
				ra = append(ra[:i], ra[i+1:]...)
				rb = append(rb[:j], rb[j+1:]...)
				i--
				break
			}
		}
	}
	if len(ra) == 0 && len(rb) == 0 {
		return Equal
	}

	aDominatesAllB := true
	for _, y := range rb {
		dominated := false
		for _, x := range ra {
			if cmp(x, y) == Greater {
				dominated = true
				break
			}
		}
		if !dominated {
			aDominatesAllB = false
			break
		}
	}
	if aDominatesAllB && len(rb) > 0 {
		return Greater
	}

	bDominatesAllA := true
	for _, x := range ra {
		dominated := false
		for _, y := range rb {
			if cmp(y, x) == Greater {
				dominated = true
				break
			}
		}
		if !dominated {
			bDominatesAllA = false
			break
		}
	}
	if bDominatesAllA && len(ra) > 0 {
		return Less
	}

	return Incomparable
}

// AdmissibilityError reports a non-admissible weight/precedence combination
// (spec.md §4.2: checkAdmissibility never fails internally, it reports via
// a handler).
type AdmissibilityError struct {
	Reason string
}

func (e *AdmissibilityError) Error() string { return "kbo: " + e.Reason }

// CheckAdmissibility validates the KBO admissibility invariant from
// spec.md §3: every unary function symbol of minimal precedence must have
// weight >= 1, variable weight must be >= 1, and non-constant functors must
// have weight >= variable weight except possibly one zero-weighted maximal
// unary symbol. Violations are reported through handle rather than
// returned, matching checkAdmissibility's HandleError callback.
func (o *Ordering) CheckAdmissibility(handle func(error)) {
	if o.Weights.Special.Variable < 1 {
		handle(&AdmissibilityError{Reason: "variable weight must be >= 1"})
	}

	minRank := minInt(o.Precedence.FuncRank)
	zeroWeightMaximalSeen := false
	maxRank := maxInt(o.Precedence.FuncRank)

	for id := range o.Weights.PerFunctor {
		info := o.Sig.Functor(term.FunctorID(id))
		w := o.Weights.PerFunctor[id]
		rank := o.Precedence.funcRank(term.FunctorID(id))

		if info.Arity == 1 && rank == minRank && w < 1 {
			handle(&AdmissibilityError{Reason: "minimal-precedence unary symbol must have weight >= 1: " + info.Name})
		}
		if info.Arity > 0 && w < o.Weights.Special.Variable {
			if info.Arity == 1 && rank == maxRank && w == 0 && !zeroWeightMaximalSeen {
				zeroWeightMaximalSeen = true
				continue
			}
			handle(&AdmissibilityError{Reason: "non-constant functor weight below variable weight: " + info.Name})
		}
	}
}

func minInt(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxInt(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
