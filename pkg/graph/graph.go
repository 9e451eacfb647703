package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] and [Graph.RenameNode]
	// when the node ID is empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] and [Graph.RenameNode]
	// when a node with the same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist, or by [Graph.RenameNode] when the old ID is not found.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrNonPositiveFlow is returned by [Graph.AddEdge] for edges that would
	// carry zero or negative flow. Zero-flow legs are omitted, not drawn.
	ErrNonPositiveFlow = errors.New("edge flow must be positive")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrDeviceDegree is returned by [Graph.Validate] when a splitter or
	// merger is wired outside its one-in/up-to-three-out (or mirror) limits.
	ErrDeviceDegree = errors.New("device degree out of range")

	// ErrFlowNotConserved is returned by [Graph.Validate] when a device's
	// incoming flow does not equal its outgoing flow.
	ErrFlowNotConserved = errors.New("device flow not conserved")
)

// Kind classifies a node in a balancer network.
type Kind int

const (
	// KindInput is an external source feeding flow into the network.
	KindInput Kind = iota
	// KindOutput is an external sink receiving flow from the network.
	KindOutput
	// KindSplitter is a device with one incoming flow and up to three outgoing flows.
	KindSplitter
	// KindMerger is a device with up to three incoming flows and one outgoing flow.
	KindMerger
)

// String returns the lowercase kind name used in serialized graphs.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindSplitter:
		return "splitter"
	case KindMerger:
		return "merger"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsDevice reports whether the kind is a synthesized device (splitter or merger),
// as opposed to an external input or output endpoint.
func (k Kind) IsDevice() bool { return k == KindSplitter || k == KindMerger }

// Node is a vertex in a balancer network: an external endpoint (input/output)
// or a synthesized device (splitter/merger). Devices carry empty labels; they
// are identified by shape and ID when rendered.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID    string // Unique identifier (I<i>, O<j>, S<n>, M<n>)
	Label string // Display label ("Input 0", "Output 3", "" for devices)
	Kind  Kind
}

// Edge is a directed, flow-labeled arc between two nodes.
// Every edge carries a positive integer flow; flow is conserved across
// every device, so edges fully determine throughput at each node.
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
	Flow int    // Flow carried by this arc (always > 0)
}

// Graph is the directed graph emitted by one balancer synthesis call.
// Nodes and edges accumulate monotonically - nothing is deleted or relabeled
// after creation - and both are kept in insertion order so identical synthesis
// calls produce byte-identical renderings.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization, but distinct graphs are fully
// independent.
type Graph struct {
	nodes    []*Node
	index    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> target IDs
	incoming map[string][]string // nodeID -> source IDs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	node := &n
	g.nodes = append(g.nodes, node)
	g.index[node.ID] = node
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if either endpoint
// is missing, and ErrNonPositiveFlow if the edge would carry no flow.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
	}
	if e.Flow <= 0 {
		return fmt.Errorf("%w: %s -> %s (%d)", ErrNonPositiveFlow, e.From, e.To, e.Flow)
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
// The returned slice contains pointers to the actual node structs.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// CountKind returns the number of nodes of the given kind.
func (g *Graph) CountKind(k Kind) int {
	count := 0
	for _, n := range g.nodes {
		if n.Kind == k {
			count++
		}
	}
	return count
}

// Targets returns the IDs of nodes this node has edges to.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Targets(id string) []string { return g.outgoing[id] }

// Sources returns the IDs of nodes that have edges to this node.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Sources(id string) []string { return g.incoming[id] }

// InFlow returns the total flow carried by edges into the node.
func (g *Graph) InFlow(id string) int {
	total := 0
	for _, e := range g.edges {
		if e.To == id {
			total += e.Flow
		}
	}
	return total
}

// OutFlow returns the total flow carried by edges out of the node.
func (g *Graph) OutFlow(id string) int {
	total := 0
	for _, e := range g.edges {
		if e.From == id {
			total += e.Flow
		}
	}
	return total
}

// RenameNode changes a node's ID, updating all edges and indices.
// Returns ErrInvalidNodeID if newID is empty, ErrUnknownSourceNode if
// oldID doesn't exist, or ErrDuplicateNodeID if newID is already in use.
func (g *Graph) RenameNode(oldID, newID string) error {
	if newID == "" {
		return ErrInvalidNodeID
	}
	node, ok := g.index[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSourceNode, oldID)
	}
	if _, exists := g.index[newID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, newID)
	}

	node.ID = newID
	delete(g.index, oldID)
	g.index[newID] = node

	for i := range g.edges {
		if g.edges[i].From == oldID {
			g.edges[i].From = newID
		}
		if g.edges[i].To == oldID {
			g.edges[i].To = newID
		}
	}

	g.outgoing[newID] = g.outgoing[oldID]
	delete(g.outgoing, oldID)
	for id, targets := range g.outgoing {
		for i, t := range targets {
			if t == oldID {
				g.outgoing[id][i] = newID
			}
		}
	}

	g.incoming[newID] = g.incoming[oldID]
	delete(g.incoming, oldID)
	for id, sources := range g.incoming {
		for i, s := range sources {
			if s == oldID {
				g.incoming[id][i] = newID
			}
		}
	}

	return nil
}

// NamespaceDevices renames every splitter and merger node to <prefix>_<id>,
// leaving input and output nodes untouched. Embedders splicing several
// per-material networks into one diagram use this to keep device IDs from
// colliding across sub-graphs.
func (g *Graph) NamespaceDevices(prefix string) error {
	// Collect first: renaming while iterating would revisit renamed nodes.
	var ids []string
	for _, n := range g.nodes {
		if n.Kind.IsDevice() {
			ids = append(ids, n.ID)
		}
	}
	for _, id := range ids {
		if err := g.RenameNode(id, prefix+"_"+id); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks structural integrity and returns nil if valid.
// It verifies three constraints:
//
//  1. All edges connect existing nodes.
//  2. Degree limits hold: inputs have no incoming edges, outputs no outgoing
//     edges, splitters have exactly one incoming and two or three outgoing
//     edges, mergers the mirror image.
//  3. Flow is conserved at every device (incoming total == outgoing total).
//
// Returns ErrInvalidEdgeEndpoint, ErrDeviceDegree, or ErrFlowNotConserved
// accordingly. A graph returned by the synthesizer always validates; use
// this after renaming or splicing operations.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.index[e.From]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.From)
		}
		if _, ok := g.index[e.To]; !ok {
			return fmt.Errorf("%w: %s", ErrInvalidEdgeEndpoint, e.To)
		}
	}

	for _, n := range g.nodes {
		in, out := len(g.incoming[n.ID]), len(g.outgoing[n.ID])
		switch n.Kind {
		case KindInput:
			if in != 0 {
				return fmt.Errorf("%w: input %s has %d incoming edges", ErrDeviceDegree, n.ID, in)
			}
		case KindOutput:
			if out != 0 {
				return fmt.Errorf("%w: output %s has %d outgoing edges", ErrDeviceDegree, n.ID, out)
			}
		case KindSplitter:
			if in != 1 || out < 2 || out > 3 {
				return fmt.Errorf("%w: splitter %s has %d in, %d out", ErrDeviceDegree, n.ID, in, out)
			}
		case KindMerger:
			if out != 1 || in < 2 || in > 3 {
				return fmt.Errorf("%w: merger %s has %d in, %d out", ErrDeviceDegree, n.ID, in, out)
			}
		}
		if n.Kind.IsDevice() {
			if inFlow, outFlow := g.InFlow(n.ID), g.OutFlow(n.ID); inFlow != outFlow {
				return fmt.Errorf("%w: %s receives %d, emits %d", ErrFlowNotConserved, n.ID, inFlow, outFlow)
			}
		}
	}
	return nil
}
