package graph

import (
	"errors"
	"reflect"
	"testing"
)

// device builds the smallest valid network around one splitter:
// I0 -> S0 -> {O0, O1}.
func device(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, n := range []Node{
		{ID: "I0", Label: "Input 0", Kind: KindInput},
		{ID: "O0", Label: "Output 0", Kind: KindOutput},
		{ID: "O1", Label: "Output 1", Kind: KindOutput},
		{ID: "S0", Kind: KindSplitter},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range []Edge{
		{From: "I0", To: "S0", Flow: 60},
		{From: "S0", To: "O0", Flow: 30},
		{From: "S0", To: "O1", Flow: 30},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s->%s): %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddNode_Duplicate(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "I0", Kind: KindInput}); err != nil {
		t.Fatalf("AddNode error: %v", err)
	}
	if err := g.AddNode(Node{ID: "I0", Kind: KindInput}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode duplicate error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddNode_EmptyID(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode empty ID error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "I0", Kind: KindInput})

	if err := g.AddEdge(Edge{From: "X", To: "I0", Flow: 1}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "I0", To: "X", Flow: 1}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestAddEdge_NonPositiveFlow(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "I0", Kind: KindInput})
	g.AddNode(Node{ID: "O0", Kind: KindOutput})

	if err := g.AddEdge(Edge{From: "I0", To: "O0", Flow: 0}); !errors.Is(err, ErrNonPositiveFlow) {
		t.Errorf("error = %v, want ErrNonPositiveFlow", err)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	g := device(t)

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	want := []string{"I0", "O0", "O1", "S0"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("node order = %v, want %v", ids, want)
	}
}

func TestFlows(t *testing.T) {
	g := device(t)

	if got := g.OutFlow("I0"); got != 60 {
		t.Errorf("OutFlow(I0) = %d, want 60", got)
	}
	if got := g.InFlow("S0"); got != 60 {
		t.Errorf("InFlow(S0) = %d, want 60", got)
	}
	if got := g.OutFlow("S0"); got != 60 {
		t.Errorf("OutFlow(S0) = %d, want 60", got)
	}
	if got := g.InFlow("O1"); got != 30 {
		t.Errorf("InFlow(O1) = %d, want 30", got)
	}
}

func TestRenameNode(t *testing.T) {
	g := device(t)

	if err := g.RenameNode("S0", "iron_S0"); err != nil {
		t.Fatalf("RenameNode error: %v", err)
	}

	if _, ok := g.Node("S0"); ok {
		t.Error("old ID still present after rename")
	}
	if _, ok := g.Node("iron_S0"); !ok {
		t.Error("new ID missing after rename")
	}
	if got := g.Targets("iron_S0"); len(got) != 2 {
		t.Errorf("Targets(iron_S0) = %v, want 2 targets", got)
	}
	if got := g.InFlow("iron_S0"); got != 60 {
		t.Errorf("InFlow(iron_S0) = %d, want 60", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after rename: %v", err)
	}
}

func TestRenameNode_Conflict(t *testing.T) {
	g := device(t)
	if err := g.RenameNode("S0", "O0"); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("error = %v, want ErrDuplicateNodeID", err)
	}
	if err := g.RenameNode("missing", "X"); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("error = %v, want ErrUnknownSourceNode", err)
	}
}

func TestNamespaceDevices(t *testing.T) {
	g := device(t)

	if err := g.NamespaceDevices("iron"); err != nil {
		t.Fatalf("NamespaceDevices error: %v", err)
	}

	if _, ok := g.Node("iron_S0"); !ok {
		t.Error("splitter not namespaced")
	}
	// Endpoints keep their IDs so the embedder can rewire them itself.
	if _, ok := g.Node("I0"); !ok {
		t.Error("input node renamed, should be untouched")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after namespacing: %v", err)
	}
}

func TestValidate_DegreeLimits(t *testing.T) {
	g := device(t)
	// A fourth outgoing edge pushes S0 past the 3-way fan limit.
	g.AddNode(Node{ID: "O2", Kind: KindOutput})
	g.AddEdge(Edge{From: "S0", To: "O2", Flow: 10})
	g.AddNode(Node{ID: "O3", Kind: KindOutput})
	g.AddEdge(Edge{From: "S0", To: "O3", Flow: 10})

	if err := g.Validate(); !errors.Is(err, ErrDeviceDegree) {
		t.Errorf("Validate() = %v, want ErrDeviceDegree", err)
	}
}

func TestValidate_FlowConservation(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "I0", Kind: KindInput})
	g.AddNode(Node{ID: "O0", Kind: KindOutput})
	g.AddNode(Node{ID: "O1", Kind: KindOutput})
	g.AddNode(Node{ID: "S0", Kind: KindSplitter})
	g.AddEdge(Edge{From: "I0", To: "S0", Flow: 60})
	g.AddEdge(Edge{From: "S0", To: "O0", Flow: 30})
	g.AddEdge(Edge{From: "S0", To: "O1", Flow: 20}) // 10 goes missing

	if err := g.Validate(); !errors.Is(err, ErrFlowNotConserved) {
		t.Errorf("Validate() = %v, want ErrFlowNotConserved", err)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := device(t).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestCountKind(t *testing.T) {
	g := device(t)
	if got := g.CountKind(KindOutput); got != 2 {
		t.Errorf("CountKind(KindOutput) = %d, want 2", got)
	}
	if got := g.CountKind(KindMerger); got != 0 {
		t.Errorf("CountKind(KindMerger) = %d, want 0", got)
	}
}
