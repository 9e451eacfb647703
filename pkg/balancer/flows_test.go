package balancer

import (
	"reflect"
	"testing"
)

func TestIntegerFlows_SumsToTarget(t *testing.T) {
	cases := []struct {
		flows  []float64
		target int
	}{
		{[]float64{1.5, 1.5, 1.5}, 100},
		{[]float64{0.3, 0.7}, 7},
		{[]float64{5}, 45},
		{[]float64{10, 20, 30, 40}, 99},
	}

	for _, tc := range cases {
		got := IntegerFlows(tc.flows, tc.target)
		total := 0
		for _, f := range got {
			total += f
		}
		if total != tc.target {
			t.Errorf("IntegerFlows(%v, %d) sums to %d", tc.flows, tc.target, total)
		}
		if len(got) != len(tc.flows) {
			t.Errorf("IntegerFlows(%v, %d) has %d entries, want %d", tc.flows, tc.target, len(got), len(tc.flows))
		}
	}
}

func TestIntegerFlows_Proportional(t *testing.T) {
	got := IntegerFlows([]float64{1, 1, 2}, 100)

	want := []int{25, 25, 50}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntegerFlows() = %v, want %v", got, want)
	}
}

func TestIntegerFlows_LastAbsorbsRemainder(t *testing.T) {
	// 100/3 truncates to 33 per entry; the last picks up the leftover.
	got := IntegerFlows([]float64{1, 1, 1}, 100)

	want := []int{33, 33, 34}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("IntegerFlows() = %v, want %v", got, want)
	}
}

func TestIntegerFlows_Empty(t *testing.T) {
	if got := IntegerFlows(nil, 100); got != nil {
		t.Errorf("IntegerFlows(nil) = %v, want nil", got)
	}
}
