package balancer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coder0xff/optifactory/pkg/graph"
)

// deviceCounter hands out device numbers from one strictly increasing
// sequence shared by splitters and mergers, so IDs never collide within a
// synthesis call. Each call to [Design] owns its own counter; nothing is
// shared across calls.
type deviceCounter struct {
	next int
}

func (c *deviceCounter) splitterID() string {
	id := fmt.Sprintf("S%d", c.next)
	c.next++
	return id
}

func (c *deviceCounter) mergerID() string {
	id := fmt.Sprintf("M%d", c.next)
	c.next++
	return id
}

// feed records which materialized node ultimately emits to a destination,
// and at what rate. Destinations are conceptual until grouped under a real
// device, so this is resolved only as splitters are allocated.
type feed struct {
	node string
	flow int
}

// splitRoot is one root of the in-progress fan-out tree: either a conceptual
// leaf (a destination not yet wired to a device) or an already materialized
// splitter covering several destinations.
type splitRoot struct {
	device string      // empty while the root is still a conceptual leaf
	dests  map[int]int // destination index -> flow carried for it
}

func (r splitRoot) leaf() bool { return r.device == "" }

func (r splitRoot) total() int {
	total := 0
	for _, flow := range r.dests {
		total += flow
	}
	return total
}

// stream is one as-yet-unmerged flow feeding an output: the node that emits
// it and its rate.
type stream struct {
	node string
	flow int
}

// buildSplitTree wires sourceID to every destination in dests through a
// minimal tree of splitters, and returns which node ends up feeding each
// destination directly.
//
// A single destination needs no device: the source feeds it as-is. Otherwise
// each destination starts as a conceptual leaf root, sorted by (flow, index)
// descending so ties break deterministically, and roots are grouped three at
// a time (two only when exactly two remain) under a fresh splitter. The new
// splitter re-enters the root list at the end. Grouping by three removes two
// roots per device and grouping by two removes one, so preferring threes
// yields the minimum device count: exactly ceil((n-1)/2) splitters for n
// destinations.
func buildSplitTree(g *graph.Graph, ids *deviceCounter, sourceID string, dests map[int]int) map[int]feed {
	if len(dests) == 1 {
		for dest, flow := range dests {
			return map[int]feed{dest: {node: sourceID, flow: flow}}
		}
	}

	order := make([]int, 0, len(dests))
	for dest := range dests {
		order = append(order, dest)
	}
	slices.SortFunc(order, func(a, b int) int {
		if dests[a] != dests[b] {
			return dests[b] - dests[a]
		}
		return b - a
	})

	roots := make([]splitRoot, 0, len(order))
	for _, dest := range order {
		roots = append(roots, splitRoot{dests: map[int]int{dest: dests[dest]}})
	}

	feeds := make(map[int]feed, len(dests))
	for len(roots) > 1 {
		size := 2
		if len(roots) >= 3 {
			size = 3
		}

		splitter := ids.splitterID()
		mustAddNode(g, graph.Node{ID: splitter, Kind: graph.KindSplitter})

		merged := make(map[int]int)
		for _, child := range roots[:size] {
			if child.leaf() {
				for dest, flow := range child.dests {
					feeds[dest] = feed{node: splitter, flow: flow}
				}
			} else {
				mustAddEdge(g, graph.Edge{From: splitter, To: child.device, Flow: child.total()})
			}
			for dest, flow := range child.dests {
				merged[dest] = flow
			}
		}

		roots = append(roots[size:], splitRoot{device: splitter, dests: merged})
	}

	root := roots[0]
	mustAddEdge(g, graph.Edge{From: sourceID, To: root.device, Flow: root.total()})
	return feeds
}

// buildMergeTree combines the given streams through a minimal tree of
// mergers and returns the node emitting the combined flow. It mirrors
// buildSplitTree exactly: streams sorted by (flow, node) descending, grouped
// three at a time with a fallback to two, the fresh merger re-entering the
// stream list at the end with the summed flow.
//
// Callers handle the single-stream case themselves (a direct edge, no
// device); calling with fewer than two streams is an algorithm defect.
func buildMergeTree(g *graph.Graph, ids *deviceCounter, streams []stream) string {
	if len(streams) < 2 {
		panic(fmt.Sprintf("balancer: merge tree requested for %d streams", len(streams)))
	}

	slices.SortFunc(streams, func(a, b stream) int {
		if a.flow != b.flow {
			return b.flow - a.flow
		}
		return strings.Compare(b.node, a.node)
	})

	for len(streams) > 1 {
		size := 2
		if len(streams) >= 3 {
			size = 3
		}

		merger := ids.mergerID()
		mustAddNode(g, graph.Node{ID: merger, Kind: graph.KindMerger})

		total := 0
		for _, s := range streams[:size] {
			mustAddEdge(g, graph.Edge{From: s.node, To: merger, Flow: s.flow})
			total += s.flow
		}

		streams = append(streams[size:], stream{node: merger, flow: total})
	}

	return streams[0].node
}

// The synthesizer only ever adds fresh device IDs and edges between nodes it
// just created, so graph mutations cannot fail for caller-visible reasons.
// A failure here is an algorithm defect, not an input error.

func mustAddNode(g *graph.Graph, n graph.Node) {
	if err := g.AddNode(n); err != nil {
		panic(fmt.Sprintf("balancer: add node %s: %v", n.ID, err))
	}
}

func mustAddEdge(g *graph.Graph, e graph.Edge) {
	if err := g.AddEdge(e); err != nil {
		panic(fmt.Sprintf("balancer: add edge %s -> %s: %v", e.From, e.To, err))
	}
}
