// Package limits implements the global wall-clock and the age/weight
// Limits record (component C8). Deciseconds (x100ms) are the native unit
// for options, matching spec.md §6.
package limits

import "time"

// Limits caps what the passive container may still select (spec.md §3,
// §4.5): a clause exceeding either active cap becomes unselectable.
type Limits struct {
	WeightLimit   uint32
	AgeLimit      uint32
	WeightLimited bool
	AgeLimited    bool
}

// Admits reports whether a clause of the given age/weight is still
// selectable under the current limits.
func (l Limits) Admits(age, weight uint32) bool {
	if l.AgeLimited && age > l.AgeLimit {
		return false
	}
	if l.WeightLimited && weight > l.WeightLimit {
		return false
	}
	return true
}

// Active reports whether either limit is currently restricting selection.
// Per spec.md §4.6, once this becomes true the saturation loop can no
// longer claim completeness.
func (l Limits) Active() bool {
	return l.WeightLimited || l.AgeLimited
}

// Clock provides the monotonic elapsed time and deadline test used by the
// saturation loop (spec.md §4.8). A Clock is owned by exactly one slice.
type Clock struct {
	start time.Time

	// timeLimitDeciseconds is the slice's wall-clock budget in
	// deciseconds; zero means "no limit".
	timeLimitDeciseconds int
}

// NewClock starts a new clock with the given deadline (in deciseconds, 0
// for unbounded).
func NewClock(timeLimitDeciseconds int) *Clock {
	return &Clock{start: time.Now(), timeLimitDeciseconds: timeLimitDeciseconds}
}

// ElapsedMilliseconds returns the milliseconds elapsed since the clock
// started.
func (c *Clock) ElapsedMilliseconds() int64 {
	return time.Since(c.start).Milliseconds()
}

// TimeLimitReached reports whether the slice's wall-clock budget has been
// exhausted. A zero budget never reaches its limit.
func (c *Clock) TimeLimitReached() bool {
	if c.timeLimitDeciseconds <= 0 {
		return false
	}
	return c.ElapsedMilliseconds() >= int64(c.timeLimitDeciseconds)*100
}

// TimeLimitDeciseconds returns the configured budget (0 = unbounded).
func (c *Clock) TimeLimitDeciseconds() int { return c.timeLimitDeciseconds }

// EMA is an exponential moving average, adapted from sat.EMA: the main loop
// uses it to smooth the given-clauses-processed-per-second rate it reports
// in Stats, since raw per-iteration rates are too noisy to log usefully.
type EMA struct {
	decay float64
	value float64
	init  bool
}

// NewEMA returns an EMA with the given decay (closer to 1 weights history
// more heavily than the latest sample).
func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

// Add folds x into the average. The first sample seeds the average
// directly rather than decaying from zero, so a slice's very first
// activations-per-second reading (package saturation's Slice.sampleRate)
// isn't artificially pulled toward 0 before enough samples accumulate.
func (ema *EMA) Add(x float64) {
	if !ema.init {
		ema.init = true
		ema.value = x
	} else {
		ema.value = ema.decay*ema.value + x*(1-ema.decay)
	}
}

// Val returns the current average.
func (ema *EMA) Val() float64 {
	return ema.value
}
