package casc

import (
	"context"
	"strconv"
	"strings"

	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/saturation"
)

// NewRunner adapts a saturation.ProblemCnf into a StrategyRunner: each call
// builds a fresh saturation.Slice from the problem and opt, patched with the
// strategy code's age/weight ratio and the slice's decisecond budget, and
// runs it to completion or to context cancellation.
//
// base is cloned (package kbo's Clone, a fresh demodulator-instruction
// cache) on every call rather than shared: a schedule can run several
// slices back to back, and each one must start from an empty cache, not
// observe whatever a previous slice happened to demodulate.
//
// The strategy code grammar is a narrow slice of the original's option
// string (CASCMode.hpp hands whole option strings to the prover): only the
// "<name>+<ratio>" convention is recognized, where ratio sets the age:weight
// alternation (a ratio of N means 1 age pop per N weight pops, mirroring
// Vampire's age_weight_ratio). Unrecognized or missing ratios fall back to
// opt's configured ratio.
func NewRunner(problem saturation.ProblemCnf, base *kbo.Ordering, opt saturation.Options) StrategyRunner {
	return func(ctx context.Context, code string, budgetDeciseconds int) (bool, error) {
		sliceOpt := opt
		sliceOpt.TimeLimitInDeciseconds = budgetDeciseconds
		sliceOpt.AgeRatio, sliceOpt.WeightRatio = ratioFromCode(code, opt.AgeRatio, opt.WeightRatio)

		ord := base.Clone()
		slice := saturation.NewSlice(problem, ord, sliceOpt)
		result := slice.Run(ctx)

		if err := ctx.Err(); err != nil {
			return false, ErrInterrupted
		}

		switch result.Kind {
		case saturation.Refutation:
			return true, nil
		default:
			return false, nil
		}
	}
}

// ratioFromCode extracts the age:weight ratio from a "<name>+<ratio>"
// strategy code, falling back to (defaultAge, defaultWeight) when the code
// carries no recognizable ratio suffix.
func ratioFromCode(code string, defaultAge, defaultWeight int) (age, weight int) {
	i := strings.IndexByte(code, '+')
	if i < 0 {
		return defaultAge, defaultWeight
	}
	n, err := strconv.Atoi(code[i+1:])
	if err != nil || n <= 0 {
		return defaultAge, defaultWeight
	}
	return 1, n
}
