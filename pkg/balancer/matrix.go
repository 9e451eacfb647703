package balancer

import (
	"maps"
	"slices"
)

// Matrix is the sparse assignment relation produced by [Assign]:
// matrix[input][output] holds the flow that input contributes to that output.
// Entries are always positive; absent pairs carry no flow. The matrix is
// built once and read-only afterwards.
type Matrix map[int]map[int]int

func (m Matrix) set(in, out, flow int) {
	if flow <= 0 {
		return
	}
	dests, ok := m[in]
	if !ok {
		dests = make(map[int]int)
		m[in] = dests
	}
	dests[out] = flow
}

// Flow returns the amount the input contributes to the output, or 0 if the
// pair is unassigned.
func (m Matrix) Flow(in, out int) int { return m[in][out] }

// Inputs returns the indices of inputs with at least one assignment,
// in ascending order.
func (m Matrix) Inputs() []int {
	return slices.Sorted(maps.Keys(m))
}

// Destinations returns a copy of the output→flow assignments for one input.
// Returns nil for inputs with no assignments.
func (m Matrix) Destinations(in int) map[int]int {
	dests, ok := m[in]
	if !ok {
		return nil
	}
	return maps.Clone(dests)
}

// InputTotal returns the total flow assigned from one input.
func (m Matrix) InputTotal(in int) int {
	total := 0
	for _, flow := range m[in] {
		total += flow
	}
	return total
}

// OutputTotal returns the total flow assigned to one output.
func (m Matrix) OutputTotal(out int) int {
	total := 0
	for _, dests := range m {
		total += dests[out]
	}
	return total
}

// Assign greedily matches inputs to outputs and returns the assignment matrix.
//
// Inputs are held in a working queue in their original order. Outputs are
// satisfied in their given order; each one repeatedly consumes the front of
// the queue. An input that fits entirely is consumed in full; an input larger
// than the output's remaining demand is used partially and pushed back onto
// the front of the queue, so the same input keeps feeding the next output
// before any later input is touched. This first-available matching is
// single-pass and deterministic, and it minimizes fragmentation: a partially
// consumed input is always reused immediately.
//
// Assign assumes sum(inputs) == sum(outputs); [Design] checks that
// precondition before calling. Under it the queue can never run dry while
// an output still has demand, so there is no failure path.
func Assign(inputs, outputs []int) Matrix {
	matrix := Matrix{}

	type avail struct {
		idx  int
		flow int
	}
	queue := make([]avail, 0, len(inputs))
	for i, flow := range inputs {
		queue = append(queue, avail{idx: i, flow: flow})
	}

	for out, required := range outputs {
		remaining := required
		for remaining > 0 && len(queue) > 0 {
			head := queue[0]
			queue = queue[1:]

			if head.flow <= remaining {
				matrix.set(head.idx, out, head.flow)
				remaining -= head.flow
			} else {
				matrix.set(head.idx, out, remaining)
				queue = append([]avail{{idx: head.idx, flow: head.flow - remaining}}, queue...)
				remaining = 0
			}
		}
	}

	return matrix
}
