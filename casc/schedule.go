// Package casc implements the portfolio scheduler (component C7): given a
// problem's computed Property, it selects and time-slices a list of
// strategy encodings under a global wall-clock budget.
//
// Grounded on CASC/CASCMode.hpp (original_source): the quick/fallback
// schedule split by category (plain FOF / SAT-mode / EPR), the
// "<code>_<tdeci>" slice grammar, and runSchedule's remember-set retry
// policy all mirror that header's public shape. SIGINT handling
// (CASCMode::handleSIGINT) is re-expressed as context cancellation per
// SPEC_FULL.md's concurrency design note rather than a process signal
// handler.
package casc

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Category is the portfolio category a Property dispatches to
// (CASCMode.hpp's _sat/_epr flags).
type Category int

const (
	CategoryFOF Category = iota
	CategorySAT
	CategoryEPR
)

// Slice is one scheduled strategy encoding: "<code>_<tdeci>".
type Slice string

// Chopped splits a Slice into its strategy code and decisecond budget,
// implementing spec.md §4.7's getSliceTime/chopped.
func (s Slice) Chopped() (code string, deciseconds int, err error) {
	str := string(s)
	i := strings.LastIndexByte(str, '_')
	if i < 0 {
		return "", 0, fmt.Errorf("casc: malformed slice %q: missing _<tdeci> suffix", s)
	}
	tdeci, err := strconv.Atoi(str[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("casc: malformed slice %q: %w", s, err)
	}
	return str[:i], tdeci, nil
}

// Schedule is an ordered list of slices to attempt in turn.
type Schedule []Slice

// ScheduleSet is the two ordered lists a category dispatches to (spec.md
// §4.7): Quick is tried first, Fallback only if Quick fails entirely.
type ScheduleSet struct {
	Quick    Schedule
	Fallback Schedule
}

// StrategyRunner runs one strategy slice with the given code and time
// budget (in deciseconds), returning true on a refutation/success outcome.
// The saturation package's Slice.Run, adapted to this signature, is the
// real implementation; tests use a stub.
type StrategyRunner func(ctx context.Context, code string, budgetDeciseconds int) (bool, error)

// RunSchedule implements spec.md §4.7's runSchedule: it tries each slice
// in order, skipping codes already in remember, running each with
// min(sliceTime, remainingBudget), and stopping at the first success.
// remember is mutated in place so repeated calls across schedules share
// the no-repeat policy. It returns the budget left over after the attempt
// (0 if the budget ran out before the remaining slices could run), so
// a caller chaining further schedules against the same wall clock (Run's
// quick-then-fallback handoff) can pass on only what's actually left.
func RunSchedule(ctx context.Context, slices Schedule, remainingBudget int, remember map[string]bool, run StrategyRunner) (bool, int, error) {
	for _, s := range slices {
		if remainingBudget <= 0 {
			return false, 0, nil
		}
		code, tdeci, err := s.Chopped()
		if err != nil {
			return false, remainingBudget, err
		}
		if remember[code] {
			continue
		}

		budget := tdeci
		if remainingBudget < budget {
			budget = remainingBudget
		}

		ok, err := run(ctx, code, budget)
		if err != nil {
			return false, remainingBudget, err // Interrupted (SIGINT-as-cancellation): fatal to the whole process.
		}
		if ok {
			return true, remainingBudget - budget, nil
		}
		remember[code] = true
		remainingBudget -= budget
	}
	return false, remainingBudget, nil
}

// Run implements the outer portfolio driver: quick, then fallback, then
// RefutationNotFound. totalBudgetDeciseconds bounds the sum of slice
// budgets actually spent across both schedules: Fallback only gets
// whatever Quick left unspent, not a fresh copy of the total, matching a
// single shared wall-clock budget for the whole portfolio run rather than
// one budget per schedule.
func Run(ctx context.Context, set ScheduleSet, totalBudgetDeciseconds int, run StrategyRunner) (bool, error) {
	remember := map[string]bool{}

	ok, remaining, err := RunSchedule(ctx, set.Quick, totalBudgetDeciseconds, remember, run)
	if err != nil || ok {
		return ok, err
	}
	ok, _, err = RunSchedule(ctx, set.Fallback, remaining, remember, run)
	if err != nil || ok {
		return ok, err
	}
	return false, nil
}

// ErrInterrupted is returned by a StrategyRunner when its context was
// cancelled mid-slice (SIGINT policy, spec.md §4.7: fatal to the whole
// process, not just the slice).
var ErrInterrupted = fmt.Errorf("casc: interrupted")
