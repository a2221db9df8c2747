package kbo

import "github.com/rhartert/saturn/term"

// InstructionTag names one compiled demodulator-check instruction
// (Kernel/KBO.hpp's KBO::InstructionTag).
type InstructionTag uint8

const (
	TagWeight InstructionTag = iota
	TagCompareVV
	TagCompareVT
	TagCompareTV
	TagFullCompare
	TagSuccess
)

// Instruction is one step of a compiled demodulator-check program. Exactly
// one of the fields is meaningful, selected by Tag.
type Instruction struct {
	Tag InstructionTag

	// TagWeight
	Coeffs    map[term.VarID]int64
	Threshold int64

	// TagCompareVV
	V1, V2 term.VarID

	// TagCompareVT / TagCompareTV
	V     term.VarID
	Fixed *term.Term

	// TagFullCompare: substitute both templates fully and fall back to
	// Ordering.Compare. Used when the two sides don't share enough
	// structure to decompose into VV/VT/TV steps.
	LHS, RHS *term.Term
}

// DemodResult is the two-valued outcome of executing a compiled
// demodulator check: either the substitution preserves lhs > rhs, or it
// doesn't (and the rewrite must not be applied).
type DemodResult uint8

const (
	NotGreater DemodResult = iota
	DemodGreater
)

type demodKey struct {
	eq   *term.Literal
	side bool
}

// PreprocessEquation compiles (or returns the cached compilation of) the
// instruction stream checking, for a unit equation lit with lhs named as
// the side oriented greater (lhs ≻ rhs), whether a given substitution keeps
// that orientation. side distinguishes which of the two literal argument
// orderings lhs corresponds to, matching the (equation, side) cache key of
// spec.md §4.2.
func (o *Ordering) PreprocessEquation(lit *term.Literal, side bool) []Instruction {
	key := demodKey{eq: lit, side: side}
	if cached, ok := o.demodCache[key]; ok {
		return cached
	}

	lhs, rhs := lit.Args[0], lit.Args[1]
	if side {
		lhs, rhs = rhs, lhs
	}

	instrs := []Instruction{o.weightInstruction(lhs, rhs)}
	instrs = o.decompose(lhs, rhs, instrs)
	instrs = append(instrs, Instruction{Tag: TagSuccess})

	o.demodCache[key] = instrs
	return instrs
}

func (o *Ordering) weightInstruction(lhs, rhs *term.Term) Instruction {
	coeffs := map[term.VarID]int64{}
	for v, n := range term.VariablesOf(lhs) {
		coeffs[v] += int64(n)
	}
	for v, n := range term.VariablesOf(rhs) {
		coeffs[v] -= int64(n)
	}
	threshold := o.baseWeight(lhs) - o.baseWeight(rhs)
	return Instruction{Tag: TagWeight, Coeffs: coeffs, Threshold: threshold}
}

// baseWeight is weight() with variables contributing zero, isolating the
// ground/functor component of the weight so the variable contribution can
// be added back in at match time via the Weight instruction's coefficients.
func (o *Ordering) baseWeight(t *term.Term) int64 {
	if t.IsVar() {
		return 0
	}
	if t.IsNumeric() {
		return int64(o.numericWeight(t.NumericSort()))
	}
	w := int64(o.Weights.Introduced)
	if int(t.Functor()) < len(o.Weights.PerFunctor) {
		w = int64(o.Weights.PerFunctor[t.Functor()])
	}
	for _, a := range t.Args() {
		w += o.baseWeight(a)
	}
	return w
}

// decompose walks lhs/rhs in lockstep, appending CompareVV/VT/TV
// instructions wherever both sides share recursive structure, and falling
// back to a single TagFullCompare instruction where they don't.
func (o *Ordering) decompose(lhs, rhs *term.Term, instrs []Instruction) []Instruction {
	if lhs == rhs {
		return instrs // identical subterm: contributes nothing further
	}
	switch {
	case lhs.IsVar() && rhs.IsVar():
		return append(instrs, Instruction{Tag: TagCompareVV, V1: lhs.VarID(), V2: rhs.VarID()})
	case lhs.IsVar() && !rhs.IsVar():
		return append(instrs, Instruction{Tag: TagCompareVT, V: lhs.VarID(), Fixed: rhs})
	case !lhs.IsVar() && rhs.IsVar():
		return append(instrs, Instruction{Tag: TagCompareTV, V: rhs.VarID(), Fixed: lhs})
	case !lhs.IsNumeric() && !rhs.IsNumeric() && lhs.Functor() == rhs.Functor():
		for i := range lhs.Args() {
			instrs = o.decompose(lhs.Args()[i], rhs.Args()[i], instrs)
		}
		return instrs
	default:
		return append(instrs, Instruction{Tag: TagFullCompare, LHS: lhs, RHS: rhs})
	}
}

// Execute runs a compiled instruction stream against a substitution
// (variables absent from subst are treated as unbound, i.e. they stand for
// themselves with the special variable weight). tbl is used to build
// variable terms for the unbound case and to apply substitutions under
// TagFullCompare.
func (o *Ordering) Execute(instrs []Instruction, subst map[term.VarID]*term.Term, tbl *term.Table) DemodResult {
	resolve := func(v term.VarID) *term.Term {
		if t, ok := subst[v]; ok {
			return t
		}
		return tbl.MkVar(v)
	}

	i := 0
	if instrs[0].Tag == TagWeight {
		instr := instrs[0]
		running := instr.Threshold
		for v, c := range instr.Coeffs {
			running += c * o.weight(resolve(v))
		}
		switch {
		case running > 0:
			return DemodGreater
		case running < 0:
			return NotGreater
		}
		i = 1
	}

	for ; i < len(instrs); i++ {
		instr := instrs[i]
		switch instr.Tag {
		case TagCompareVV:
			r := o.Compare(resolve(instr.V1), resolve(instr.V2))
			switch r {
			case Greater:
				return DemodGreater
			case Equal:
				continue
			default:
				return NotGreater
			}
		case TagCompareVT:
			r := o.Compare(resolve(instr.V), instr.Fixed)
			switch r {
			case Greater:
				return DemodGreater
			case Equal:
				continue
			default:
				return NotGreater
			}
		case TagCompareTV:
			r := o.Compare(instr.Fixed, resolve(instr.V))
			switch r {
			case Greater:
				return DemodGreater
			case Equal:
				continue
			default:
				return NotGreater
			}
		case TagFullCompare:
			lhs := applySubst(tbl, instr.LHS, subst)
			rhs := applySubst(tbl, instr.RHS, subst)
			if o.Compare(lhs, rhs) == Greater {
				return DemodGreater
			}
			return NotGreater
		case TagSuccess:
			return DemodGreater
		}
	}
	return DemodGreater
}

// applySubst builds the term obtained from t by replacing every variable
// with its binding in subst (identity if unbound).
func applySubst(tbl *term.Table, t *term.Term, subst map[term.VarID]*term.Term) *term.Term {
	if t.IsVar() {
		if b, ok := subst[t.VarID()]; ok {
			return b
		}
		return t
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		newArgs[i] = applySubst(tbl, a, subst)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return tbl.MkCompound(t.Functor(), newArgs)
}
