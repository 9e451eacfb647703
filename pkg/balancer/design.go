package balancer

import (
	"fmt"

	"github.com/coder0xff/optifactory/pkg/graph"
)

// InfeasibleFlowError reports that a balancer network cannot exist because
// the requested input and output totals disagree. It is the only caller
// error the engine raises, checked eagerly before any node is created.
type InfeasibleFlowError struct {
	InputTotal  int
	OutputTotal int
}

func (e *InfeasibleFlowError) Error() string {
	return fmt.Sprintf("total input flow %d must equal total output flow %d",
		e.InputTotal, e.OutputTotal)
}

// Design synthesizes a balancer network redistributing the given input flow
// rates into exactly the given output flow rates, using the minimum number
// of splitter and merger devices per fan-out and fan-in tree.
//
// Order is significant: it drives both the greedy input-to-output matching
// and the I<i>/O<j> node numbering. One input or output node is created per
// entry, unconditionally, so zero-flow entries stay visible in the graph
// even though no edge reaches them.
//
// Design is purely functional over its arguments - no I/O, no shared state -
// so concurrent calls for different materials need no coordination. It
// returns an *InfeasibleFlowError when the totals differ, with no partial
// result.
func Design(inputs, outputs []int) (*graph.Graph, error) {
	inTotal, outTotal := sum(inputs), sum(outputs)
	if inTotal != outTotal {
		return nil, &InfeasibleFlowError{InputTotal: inTotal, OutputTotal: outTotal}
	}

	matrix := Assign(inputs, outputs)

	g := graph.New()
	for i := range inputs {
		mustAddNode(g, graph.Node{
			ID:    fmt.Sprintf("I%d", i),
			Label: fmt.Sprintf("Input %d", i),
			Kind:  graph.KindInput,
		})
	}
	for j := range outputs {
		mustAddNode(g, graph.Node{
			ID:    fmt.Sprintf("O%d", j),
			Label: fmt.Sprintf("Output %d", j),
			Kind:  graph.KindOutput,
		})
	}

	ids := &deviceCounter{}

	// Fan-out: one split tree per assigned input, recording which node ends
	// up feeding each of its destinations directly.
	inputFeeds := make(map[int]map[int]feed, len(matrix))
	for _, in := range matrix.Inputs() {
		inputFeeds[in] = buildSplitTree(g, ids, fmt.Sprintf("I%d", in), matrix.Destinations(in))
	}

	// Fan-in: collect every node feeding each output across all inputs.
	// A single contributor connects directly; several go through a merge tree.
	for j := range outputs {
		var streams []stream
		for _, in := range matrix.Inputs() {
			if f, ok := inputFeeds[in][j]; ok {
				streams = append(streams, stream{node: f.node, flow: f.flow})
			}
		}

		outID := fmt.Sprintf("O%d", j)
		switch len(streams) {
		case 0:
			// Zero-flow output: the node exists but receives no edge.
		case 1:
			mustAddEdge(g, graph.Edge{From: streams[0].node, To: outID, Flow: streams[0].flow})
		default:
			total := 0
			for _, s := range streams {
				total += s.flow
			}
			merged := buildMergeTree(g, ids, streams)
			mustAddEdge(g, graph.Edge{From: merged, To: outID, Flow: total})
		}
	}

	return g, nil
}

func sum(flows []int) int {
	total := 0
	for _, f := range flows {
		total += f
	}
	return total
}
