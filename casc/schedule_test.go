package casc

import (
	"context"
	"testing"
)

func TestSlice_Chopped(t *testing.T) {
	code, tdeci, err := Slice("dis+10_300").Chopped()
	if err != nil {
		t.Fatalf("Chopped: unexpected error: %v", err)
	}
	if code != "dis+10" || tdeci != 300 {
		t.Errorf("Chopped: got (%q, %d), want (%q, %d)", code, tdeci, "dis+10", 300)
	}
}

func TestSlice_Chopped_Malformed(t *testing.T) {
	if _, _, err := Slice("noseparator").Chopped(); err == nil {
		t.Errorf("Chopped: expected error for malformed slice")
	}
}

func TestRunSchedule_SkipsRememberedCodes(t *testing.T) {
	remember := map[string]bool{"a": true}
	var tried []string

	ok, _, err := RunSchedule(context.Background(), Schedule{"a_10", "b_10"}, 100, remember,
		func(_ context.Context, code string, budget int) (bool, error) {
			tried = append(tried, code)
			return false, nil
		})
	if err != nil {
		t.Fatalf("RunSchedule: unexpected error: %v", err)
	}
	if ok {
		t.Errorf("RunSchedule: expected overall failure")
	}
	if len(tried) != 1 || tried[0] != "b" {
		t.Errorf("RunSchedule: got tried=%v, want [b] (a was remembered)", tried)
	}
}

func TestRunSchedule_StopsOnSuccess(t *testing.T) {
	var tried []string
	ok, remaining, err := RunSchedule(context.Background(), Schedule{"a_10", "b_10"}, 100, map[string]bool{},
		func(_ context.Context, code string, budget int) (bool, error) {
			tried = append(tried, code)
			return code == "a", nil
		})
	if err != nil {
		t.Fatalf("RunSchedule: unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("RunSchedule: expected success")
	}
	if len(tried) != 1 {
		t.Errorf("RunSchedule: should stop after the first success, tried=%v", tried)
	}
	if remaining != 90 {
		t.Errorf("RunSchedule: remaining budget = %d, want 90 (100 - the 10 spent on the successful slice)", remaining)
	}
}

func TestRunSchedule_ReturnsLeftoverBudget(t *testing.T) {
	ok, remaining, err := RunSchedule(context.Background(), Schedule{"a_10", "b_20"}, 100, map[string]bool{},
		func(_ context.Context, code string, budget int) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("RunSchedule: unexpected error: %v", err)
	}
	if ok {
		t.Errorf("RunSchedule: expected overall failure")
	}
	if remaining != 70 {
		t.Errorf("RunSchedule: remaining budget = %d, want 70 (100 - 10 - 20)", remaining)
	}
}

func TestRun_FallsBackAfterQuickFails(t *testing.T) {
	set := ScheduleSet{
		Quick:    Schedule{"a_10"},
		Fallback: Schedule{"b_10"},
	}
	var tried []string
	ok, err := Run(context.Background(), set, 100, func(_ context.Context, code string, budget int) (bool, error) {
		tried = append(tried, code)
		return code == "b", nil
	})
	if err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	if !ok {
		t.Errorf("Run: expected eventual success via fallback")
	}
	if len(tried) != 2 {
		t.Errorf("Run: got tried=%v, want both quick and fallback attempted", tried)
	}
}

func TestRun_FallbackGetsLeftoverBudgetNotFullBudget(t *testing.T) {
	set := ScheduleSet{
		Quick:    Schedule{"a_60"},
		Fallback: Schedule{"b_60"},
	}
	var budgets []int
	_, _ = Run(context.Background(), set, 100, func(_ context.Context, code string, budget int) (bool, error) {
		budgets = append(budgets, budget)
		return false, nil
	})
	if len(budgets) != 2 {
		t.Fatalf("Run: got %d runs, want 2", len(budgets))
	}
	if budgets[0] != 60 {
		t.Errorf("Run: quick budget = %d, want 60", budgets[0])
	}
	if budgets[1] != 40 {
		t.Errorf("Run: fallback budget = %d, want 40 (100 - 60 leftover), not the full 60 the slice asked for", budgets[1])
	}
}
