package limits

import "testing"

func TestLimits_Admits(t *testing.T) {
	tests := []struct {
		name   string
		lim    Limits
		age    uint32
		weight uint32
		want   bool
	}{
		{"unlimited admits anything", Limits{}, 1000, 1000, true},
		{"age limited, within", Limits{AgeLimit: 10, AgeLimited: true}, 5, 0, true},
		{"age limited, exceeds", Limits{AgeLimit: 10, AgeLimited: true}, 11, 0, false},
		{"weight limited, exceeds", Limits{WeightLimit: 10, WeightLimited: true}, 0, 11, false},
		{"both limited, both within", Limits{AgeLimit: 10, AgeLimited: true, WeightLimit: 10, WeightLimited: true}, 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lim.Admits(tt.age, tt.weight); got != tt.want {
				t.Errorf("Admits(%d, %d) = %v, want %v", tt.age, tt.weight, got, tt.want)
			}
		})
	}
}

func TestLimits_Active(t *testing.T) {
	if (Limits{}).Active() {
		t.Errorf("Active() on zero-value Limits = true, want false")
	}
	if !(Limits{AgeLimited: true}).Active() {
		t.Errorf("Active() with AgeLimited = false, want true")
	}
	if !(Limits{WeightLimited: true}).Active() {
		t.Errorf("Active() with WeightLimited = false, want true")
	}
}

func TestClock_TimeLimitReached_Unbounded(t *testing.T) {
	c := NewClock(0)
	if c.TimeLimitReached() {
		t.Errorf("TimeLimitReached() with a zero budget = true, want false (unbounded)")
	}
}

func TestClock_TimeLimitDeciseconds(t *testing.T) {
	c := NewClock(42)
	if got := c.TimeLimitDeciseconds(); got != 42 {
		t.Errorf("TimeLimitDeciseconds() = %d, want 42", got)
	}
}

func TestEMA(t *testing.T) {
	ema := NewEMA(0.5)
	ema.Add(10)
	if got := ema.Val(); got != 10 {
		t.Errorf("Val() after first Add = %v, want 10 (first sample seeds the average)", got)
	}
	ema.Add(20)
	if got := ema.Val(); got != 15 {
		t.Errorf("Val() after second Add = %v, want 15 (0.5*10 + 0.5*20)", got)
	}
}
