package mir

import (
	"reflect"
	"testing"
)

func testGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "bb0", Block: 0, Stmts: []string{"x = 1"}, Terminator: "Goto { target: bb1 }"},
			{ID: "bb1", Block: 1, Stmts: []string{"y = 2"}, Terminator: "Call"},
			{ID: "bb2", Block: 2, Stmts: nil, Terminator: "Return"},
			{ID: "bb3", Block: 3, Stmts: nil, Terminator: "UnwindResume"},
		},
		Edges: []Edge{
			{Source: "bb0", Target: "bb1", Label: "goto"},
			{Source: "bb1", Target: "bb2", Label: "call"},
			{Source: "bb1", Target: "bb3", Label: "unwind"},
		},
	}
}

func TestFilterNoConfig(t *testing.T) {
	g := testGraph()
	got := Filter(g, FilterConfig{})

	if len(got.Nodes) != 4 {
		t.Errorf("node count = %d, want 4", len(got.Nodes))
	}
	if len(got.Edges) != 3 {
		t.Errorf("edge count = %d, want 3", len(got.Edges))
	}
}

func TestFilterHideUnwind(t *testing.T) {
	g := testGraph()
	got := Filter(g, FilterConfig{HideUnwindEdges: true})

	for _, n := range got.Nodes {
		if n.ID == "bb3" {
			t.Error("unwind-resume node bb3 should be dropped")
		}
	}
	if len(got.Nodes) != 3 {
		t.Errorf("node count = %d, want 3", len(got.Nodes))
	}
	for _, e := range got.Edges {
		if e.Label == "unwind" {
			t.Error("unwind edge should be dropped")
		}
	}
	if len(got.Edges) != 2 {
		t.Errorf("edge count = %d, want 2", len(got.Edges))
	}
}

func TestFilterRestrictToPath(t *testing.T) {
	g := testGraph()
	got := Filter(g, FilterConfig{PathOnly: Path{0, 1}})

	if len(got.Nodes) != 2 {
		t.Fatalf("node count = %d, want 2", len(got.Nodes))
	}
	if got.Nodes[0].ID != "bb0" || got.Nodes[1].ID != "bb1" {
		t.Errorf("kept nodes = %s, %s, want bb0, bb1", got.Nodes[0].ID, got.Nodes[1].ID)
	}

	// bb1->bb2 and bb1->bb3 lose an endpoint and must go, even though no
	// rule names them explicitly.
	if len(got.Edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(got.Edges))
	}
	if got.Edges[0].Target != "bb1" {
		t.Errorf("kept edge target = %q, want bb1", got.Edges[0].Target)
	}
}

func TestFilterStorageToggleDoesNotDropNodes(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: "bb0", Block: 0, Stmts: []string{"StorageLive(x)"}, Terminator: "Return"},
	}}
	got := Filter(g, FilterConfig{HideStorageStmts: true})

	if len(got.Nodes) != 1 {
		t.Errorf("node count = %d, want 1: storage toggle is not a graph filter", len(got.Nodes))
	}
	if len(got.Nodes[0].Stmts) != 1 {
		t.Error("statement list must stay intact under the storage toggle")
	}
}

func TestFilterIdempotent(t *testing.T) {
	g := testGraph()
	configs := []FilterConfig{
		{},
		{HideUnwindEdges: true},
		{PathOnly: Path{0, 1, 2}},
		{HideUnwindEdges: true, PathOnly: Path{0, 2}},
	}

	for _, cfg := range configs {
		once := Filter(g, cfg)
		twice := Filter(once, cfg)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("filter not idempotent for %+v", cfg)
		}
	}
}
