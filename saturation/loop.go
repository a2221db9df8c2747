package saturation

import (
	"context"

	"github.com/rhartert/saturn/container"
	"github.com/rhartert/saturn/index"
	"github.com/rhartert/saturn/kbo"
	"github.com/rhartert/saturn/limits"
	"github.com/rhartert/saturn/term"
)

// limitUpdateFirstThreshold and limitUpdateRepeatThreshold are the call
// counters controlling shouldUpdateLimits's cadence (spec.md §4.6): update
// on the 500th check, or every 50th check once a limit is already active.
const (
	limitUpdateFirstThreshold  = 500
	limitUpdateRepeatThreshold = 50
)

// Slice runs one saturation slice to completion (or to a resource/time
// limit), implementing the given-clause main loop of spec.md §4.6.
type Slice struct {
	tbl *term.Table
	sig *term.Signature
	ord *kbo.Ordering
	opt Options

	unprocessed *container.Unprocessed
	passive     *container.Passive
	active      *container.Active
	simplCont   *container.Simplification

	clock       *limits.Clock
	complete    bool
	updateCalls int
	lim         limits.Limits

	// rate smooths clauses-activated-per-second for Stats; lastRateCheckMs
	// and lastActivated mark the last sample point.
	rate            limits.EMA
	lastRateCheckMs int64
	lastActivated   int
}

// Stats reports a point-in-time snapshot of a slice's progress, useful for
// portfolio logging.
type Stats struct {
	Activated       int
	Passive         int
	ActivatedPerSec float64
}

// Stats returns the slice's current progress snapshot.
func (s *Slice) Stats() Stats {
	return Stats{
		Activated:       s.active.Len(),
		Passive:         s.passive.Len(),
		ActivatedPerSec: s.rate.Val(),
	}
}

// sampleRate folds the current activation count into the smoothed
// activations-per-second rate, at most once per 100ms of wall clock.
func (s *Slice) sampleRate() {
	now := s.clock.ElapsedMilliseconds()
	dt := now - s.lastRateCheckMs
	if dt < 100 {
		return
	}
	activated := s.active.Len()
	instant := float64(activated-s.lastActivated) / (float64(dt) / 1000)
	s.rate.Add(instant)
	s.lastRateCheckMs = now
	s.lastActivated = activated
}

// NewSlice constructs a fresh saturation slice over problem, with the given
// ordering and options. Every input clause is fed into Unprocessed.
func NewSlice(problem ProblemCnf, ord *kbo.Ordering, opt Options) *Slice {
	activeIdx := index.NewLiteralIndex(problem.Table)
	simplIdx := index.NewLiteralIndex(problem.Table)

	s := &Slice{
		tbl:         problem.Table,
		sig:         problem.Signature,
		ord:         ord,
		opt:         opt,
		unprocessed: container.NewUnprocessed(),
		passive:     container.NewPassive(opt.AgeRatio, opt.WeightRatio),
		active:      container.NewActive(activeIdx),
		simplCont:   container.NewSimplification(simplIdx),
		clock:       limits.NewClock(opt.TimeLimitInDeciseconds),
		complete:    opt.Complete,
		rate:        limits.NewEMA(0.5),
	}
	for _, c := range problem.Clauses {
		s.unprocessed.Add(c)
	}
	return s
}

// Run executes the main loop until termination, or until ctx is cancelled
// (SIGINT-as-cancellation per SPEC_FULL.md's concurrency design note,
// re-expressing CASCMode::handleSIGINT without a process-wide signal
// handler).
func (s *Slice) Run(ctx context.Context) Result {
	for {
		select {
		case <-ctx.Done():
			return Result{Kind: Unknown}
		default:
		}

		// 1-2. Drain unprocessed, absorbing newly generated clauses.
		for !s.unprocessed.IsEmpty() {
			c := s.unprocessed.Pop()
			if refutation, found := s.consumeUnprocessed(c); found {
				return Result{Kind: Refutation, Proof: refutation}
			}

			// 3. Wall clock.
			if s.clock.TimeLimitReached() {
				return Result{Kind: TimeLimit}
			}
		}

		// 4. Periodic LRS limit update.
		s.updateCalls++
		if s.shouldUpdateLimits() {
			s.updateCalls = 0
			if est := s.estimatedReachableCount(); est >= 0 {
				s.lim = s.passive.UpdateLimits(est)
				if s.lim.Active() {
					s.complete = false
				}
			}
		}

		// 5. onAllProcessed is a no-op in this engine (no splitting/AVATAR
		// component to re-feed unprocessed), so there's nothing more to
		// absorb once step 1-2's loop exits.

		// 6. Passive exhausted?
		if s.passive.IsEmpty() {
			if s.complete {
				return Result{Kind: Satisfiable}
			}
			return Result{Kind: RefutationNotFound}
		}

		// 7. Pop and activate.
		c, ok := s.passive.PopSelected()
		if !ok {
			if s.complete {
				return Result{Kind: Satisfiable}
			}
			return Result{Kind: RefutationNotFound}
		}
		if refutation, found := s.activate(c); found {
			return Result{Kind: Refutation, Proof: refutation}
		}
		s.sampleRate()

		// 8. Re-check wall clock.
		if s.clock.TimeLimitReached() {
			return Result{Kind: TimeLimit}
		}
	}
}

// consumeUnprocessed implements step 1 of the main loop for one popped
// clause, returning (emptyClause, true) if a refutation was produced.
func (s *Slice) consumeUnprocessed(c *term.Clause) (*term.Clause, bool) {
	simplified, ok := forwardSimplify(s.tbl, s.sig, s.ord, c, s.simplCont)
	if !ok {
		c.Store = term.StoreNone
		return nil, false
	}
	if simplified.IsEmpty() {
		return simplified, true
	}

	demoted := backwardSimplify(s.tbl, s.sig, s.ord, simplified, s.active)
	for _, nc := range demoted {
		s.unprocessed.Add(nc)
	}

	s.addToPassive(simplified)
	return nil, false
}

// addToPassive implements spec.md §4.6 step 1's "try addToPassive(c)": a
// clause always succeeds unless it's already subsumed (subsumption is not
// implemented beyond the tautology check in forwardSimplify, so addToPassive
// always accepts here). Accepted clauses are mirrored into _simplCont.
func (s *Slice) addToPassive(c *term.Clause) {
	s.passive.Add(c)
	s.simplCont.Add(c)
}

// activate implements spec.md §4.6 step 7: move c into Active and run every
// generating inference against it, queuing results into Unprocessed.
// Returns (emptyClause, true) if the empty clause was derived.
func (s *Slice) activate(c *term.Clause) (*term.Clause, bool) {
	news := generate(s.tbl, s.sig, s.ord, c, s.active)
	s.active.Add(c)

	for _, nc := range news {
		if nc.IsEmpty() {
			return nc, true
		}
		s.unprocessed.Add(nc)
	}
	return nil, false
}

// shouldUpdateLimits implements spec.md §4.6's cadence: update on the
// 500th check, or every 50th check once a limit is already active.
func (s *Slice) shouldUpdateLimits() bool {
	if s.updateCalls >= limitUpdateFirstThreshold {
		return true
	}
	if s.lim.Active() && s.updateCalls >= limitUpdateRepeatThreshold {
		return true
	}
	return false
}

// estimatedReachableCount implements spec.md §4.6's reachability estimate.
// Returns -1 when the estimate isn't yet meaningful.
func (s *Slice) estimatedReachableCount() int {
	processed := s.active.Len()
	elapsed := s.clock.ElapsedMilliseconds()

	timeLimitDeciseconds := s.opt.TimeLimitInDeciseconds
	firstCheck := int64(s.opt.LRSFirstTimeCheck) * int64(timeLimitDeciseconds) // percent * deciseconds
	if elapsed < firstCheck || elapsed == 0 {
		return -1
	}

	effectiveLimit := timeLimitDeciseconds
	if s.opt.SimulatedTimeLimit > 0 {
		effectiveLimit = s.opt.SimulatedTimeLimit
	}
	timeLeft := int64(effectiveLimit)*100 - elapsed
	if timeLeft <= 0 || processed <= 10 {
		return -1
	}
	return int(int64(processed) * timeLeft / elapsed)
}
