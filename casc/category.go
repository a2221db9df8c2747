package casc

import (
	"strconv"

	"github.com/rhartert/saturn/saturation"
)

// Classify dispatches a Property to its portfolio category, grounded on
// CASCMode.hpp's makeEPR/_sat classification: EPR problems (an "EPR" hint,
// or a non-empty problem whose Property.MaxArity is 0, i.e. no function
// symbols of arity > 0) get their own schedule, as do SAT-mode problems
// (a "SAT" hint); everything else is plain FOF.
func Classify(p saturation.Property) Category {
	if p.CategoryHint == "SAT" {
		return CategorySAT
	}
	if p.CategoryHint == "EPR" || (p.MaxArity == 0 && p.Clauses > 0) {
		return CategoryEPR
	}
	return CategoryFOF
}

// DefaultSchedules returns a minimal, explicit schedule set per category.
// The original's CASCMode ships hundreds of hand-tuned strategy codes
// mined from CASC competition logs; absent that corpus, this engine
// exposes a single-code schedule per category that runs the default
// saturation options for the slice's full budget, leaving room for a
// caller to supply a richer ScheduleSet built from its own strategy
// library without changing runSchedule's retry policy.
func DefaultSchedules(budgetDeciseconds int) map[Category]ScheduleSet {
	mk := func(code string) ScheduleSet {
		s := Schedule{Slice(code + "_" + strconv.Itoa(budgetDeciseconds))}
		return ScheduleSet{Quick: s, Fallback: s}
	}
	return map[Category]ScheduleSet{
		CategoryFOF: mk("default"),
		CategorySAT: mk("sat_default"),
		CategoryEPR: mk("epr_default"),
	}
}
