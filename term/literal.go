package term

import (
	"fmt"
	"strings"
)

// Literal is {predicate, polarity, args}. Equality literals are
// distinguished by Signature's reserved equality predicate. Literals are
// hash-consed the same way terms are: equal literals built from the same
// Table share identity.
type Literal struct {
	Predicate PredicateID
	Polarity  bool
	Args      []*Term

	hkey uint64
}

// IsEquality reports whether l is an equality (or disequality) literal.
func (l *Literal) IsEquality(sig *Signature) bool {
	return sig.IsEquality(l.Predicate)
}

// Negate returns the literal with the opposite polarity, interned through
// tbl.
func (tbl *Table) Negate(l *Literal) *Literal {
	return tbl.MkLiteral(l.Predicate, !l.Polarity, l.Args)
}

// MkLiteral returns the interned literal pred(args...) with the given
// polarity.
func (tbl *Table) MkLiteral(pred PredicateID, polarity bool, args []*Term) *Literal {
	info := tbl.sig.Predicate(pred)
	if len(args) != info.Arity {
		panic(fmt.Sprintf("term: arity mismatch for predicate %q: want %d, got %d", info.Name, info.Arity, len(args)))
	}

	h := hashLiteral(pred, polarity, args)
	for _, cand := range tbl.literals[h] {
		if sameLiteral(cand, pred, polarity, args) {
			return cand
		}
	}

	l := &Literal{
		Predicate: pred,
		Polarity:  polarity,
		Args:      append([]*Term(nil), args...),
		hkey:      h,
	}
	tbl.literals[h] = append(tbl.literals[h], l)
	return l
}

func sameLiteral(l *Literal, pred PredicateID, polarity bool, args []*Term) bool {
	if l.Predicate != pred || l.Polarity != polarity || len(l.Args) != len(args) {
		return false
	}
	for i, a := range args {
		if l.Args[i] != a {
			return false
		}
	}
	return true
}

func hashLiteral(pred PredicateID, polarity bool, args []*Term) uint64 {
	h := uint64(pred)*0x100000001b3 + 0xcbf29ce484222325
	if polarity {
		h ^= 0xff51afd7ed558ccd
	}
	for _, a := range args {
		h ^= a.hkey
		h *= 0x100000001b3
	}
	return h
}

// String renders l for diagnostics.
func (l *Literal) String(sig *Signature) string {
	info := sig.Predicate(l.Predicate)
	var sb strings.Builder
	if !l.Polarity {
		sb.WriteByte('~')
	}
	if sig.IsEquality(l.Predicate) && len(l.Args) == 2 {
		sb.WriteString(l.Args[0].String(sig))
		sb.WriteString(" = ")
		sb.WriteString(l.Args[1].String(sig))
		return sb.String()
	}
	sb.WriteString(info.Name)
	if len(l.Args) > 0 {
		sb.WriteByte('(')
		for i, a := range l.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(a.String(sig))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}
