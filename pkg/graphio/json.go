// Package graphio serializes balancer graphs as JSON.
//
// The format is the interchange surface for embedders: a planner that
// balances many materials reads each network back as a structured fragment,
// namespaces its device nodes, and splices it into a larger diagram without
// touching rendered DOT text.
package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/coder0xff/optifactory/pkg/graph"
)

var kindNames = map[graph.Kind]string{
	graph.KindInput:    "input",
	graph.KindOutput:   "output",
	graph.KindSplitter: "splitter",
	graph.KindMerger:   "merger",
}

var namedKinds = map[string]graph.Kind{
	"input":    graph.KindInput,
	"output":   graph.KindOutput,
	"splitter": graph.KindSplitter,
	"merger":   graph.KindMerger,
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

type jsonNode struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Kind  string `json:"kind"`
}

type jsonEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Flow int    `json:"flow"`
}

// WriteJSON encodes a graph as JSON and writes it to w.
// Nodes and edges keep their insertion order, so output is deterministic
// and re-importing with [ReadJSON] round-trips exactly.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := jsonGraph{
		Nodes: make([]jsonNode, g.NodeCount()),
		Edges: make([]jsonEdge, g.EdgeCount()),
	}

	for i, n := range g.Nodes() {
		out.Nodes[i] = jsonNode{ID: n.ID, Label: n.Label, Kind: kindNames[n.Kind]}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = jsonEdge{From: e.From, To: e.To, Flow: e.Flow}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a JSON graph from r.
// Unknown node kinds and edges referencing missing nodes are rejected, so a
// successfully read graph is structurally sound.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := graph.New()
	for _, n := range data.Nodes {
		kind, ok := namedKinds[n.Kind]
		if !ok {
			return nil, fmt.Errorf("node %s: unknown kind %q", n.ID, n.Kind)
		}
		if err := g.AddNode(graph.Node{ID: n.ID, Label: n.Label, Kind: kind}); err != nil {
			return nil, err
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(graph.Edge{From: e.From, To: e.To, Flow: e.Flow}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ImportJSON reads a graph from a JSON file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
