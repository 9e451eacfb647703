package balancer

import (
	"reflect"
	"testing"
)

func TestAssign_ExactFit(t *testing.T) {
	m := Assign([]int{10, 20}, []int{10, 20})

	if got := m.Flow(0, 0); got != 10 {
		t.Errorf("Flow(0,0) = %d, want 10", got)
	}
	if got := m.Flow(1, 1); got != 20 {
		t.Errorf("Flow(1,1) = %d, want 20", got)
	}
	if got := m.Flow(0, 1); got != 0 {
		t.Errorf("Flow(0,1) = %d, want 0", got)
	}
}

func TestAssign_PartialInputFeedsNextOutputFirst(t *testing.T) {
	// Input 0 (100) covers output 0 (60) and must continue into output 1
	// before input 1 is touched.
	m := Assign([]int{100, 50}, []int{60, 90})

	want := Matrix{
		0: {0: 60, 1: 40},
		1: {1: 50},
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Assign() = %v, want %v", m, want)
	}
}

func TestAssign_OneInputManyOutputs(t *testing.T) {
	m := Assign([]int{90}, []int{30, 30, 30})

	for out := range 3 {
		if got := m.Flow(0, out); got != 30 {
			t.Errorf("Flow(0,%d) = %d, want 30", out, got)
		}
	}
}

func TestAssign_ManyInputsOneOutput(t *testing.T) {
	m := Assign([]int{30, 30, 30}, []int{90})

	for in := range 3 {
		if got := m.Flow(in, 0); got != 30 {
			t.Errorf("Flow(%d,0) = %d, want 30", in, got)
		}
	}
}

func TestAssign_Totals(t *testing.T) {
	inputs := []int{480, 480, 480}
	outputs := make([]int, 32)
	for i := range outputs {
		outputs[i] = 45
	}

	m := Assign(inputs, outputs)

	for in := range inputs {
		if got := m.InputTotal(in); got != inputs[in] {
			t.Errorf("InputTotal(%d) = %d, want %d", in, got, inputs[in])
		}
	}
	for out := range outputs {
		if got := m.OutputTotal(out); got != outputs[out] {
			t.Errorf("OutputTotal(%d) = %d, want %d", out, got, outputs[out])
		}
	}
}

func TestAssign_ZeroFlowsNotRecorded(t *testing.T) {
	m := Assign([]int{0, 10, 0}, []int{10, 0})

	want := Matrix{1: {0: 10}}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Assign() = %v, want %v", m, want)
	}
	if got := m.Inputs(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Inputs() = %v, want [1]", got)
	}
}

func TestMatrix_Destinations_Copy(t *testing.T) {
	m := Assign([]int{10}, []int{10})

	dests := m.Destinations(0)
	dests[0] = 999

	if got := m.Flow(0, 0); got != 10 {
		t.Errorf("Flow(0,0) = %d after mutating Destinations copy, want 10", got)
	}
}
