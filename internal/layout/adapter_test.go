package layout

import (
	"testing"

	"github.com/ikari-pl/borrowscope/internal/mir"
)

func TestVisibleStmtCount(t *testing.T) {
	n := mir.Node{Stmts: []string{"StorageLive(x)", "x = 1", "StorageDead(x)", "y = 2"}}

	if got := VisibleStmtCount(&n, false); got != 4 {
		t.Errorf("visible (storage shown) = %d, want 4", got)
	}
	if got := VisibleStmtCount(&n, true); got != 2 {
		t.Errorf("visible (storage hidden) = %d, want 2", got)
	}
}

func TestArrangeHeights(t *testing.T) {
	g := &mir.Graph{
		Nodes: []mir.Node{
			{ID: "bb0", Block: 0, Stmts: []string{"StorageLive(x)", "x = 1"}, Terminator: "Goto { target: bb1 }"},
			{ID: "bb1", Block: 1, Terminator: "Return"},
		},
		Edges: []mir.Edge{{Source: "bb0", Target: "bb1"}},
	}

	boxes, _ := Arrange(g, false, DefaultOptions())
	if len(boxes) != 2 {
		t.Fatalf("box count = %d, want 2", len(boxes))
	}
	// header + 2 stmts + terminator
	if boxes[0].Height != 4 {
		t.Errorf("bb0 height = %v, want 4", boxes[0].Height)
	}
	// header + terminator
	if boxes[1].Height != 2 {
		t.Errorf("bb1 height = %v, want 2", boxes[1].Height)
	}

	// Hiding storage shrinks the box by one row.
	boxes, _ = Arrange(g, true, DefaultOptions())
	if boxes[0].Height != 3 {
		t.Errorf("bb0 height (storage hidden) = %v, want 3", boxes[0].Height)
	}
}

func TestArrangeTotalHeight(t *testing.T) {
	g := &mir.Graph{
		Nodes: []mir.Node{
			{ID: "bb0", Block: 0, Terminator: "Goto { target: bb1 }"},
			{ID: "bb1", Block: 1, Terminator: "Return"},
		},
		Edges: []mir.Edge{{Source: "bb0", Target: "bb1"}},
	}

	opts := DefaultOptions()
	boxes, total := Arrange(g, false, opts)

	want := 0.0
	for _, b := range boxes {
		if b.Y+b.Height > want {
			want = b.Y + b.Height
		}
	}
	want += opts.Padding
	if total != want {
		t.Errorf("total = %v, want %v", total, want)
	}
	// Linked blocks must not overlap vertically.
	if boxes[1].Y < boxes[0].Y+boxes[0].Height {
		t.Errorf("bb1 at y=%v overlaps bb0 (y=%v h=%v)", boxes[1].Y, boxes[0].Y, boxes[0].Height)
	}
}

func TestArrangeEmptyGraph(t *testing.T) {
	boxes, total := Arrange(&mir.Graph{}, false, DefaultOptions())
	if len(boxes) != 0 {
		t.Errorf("box count = %d, want 0", len(boxes))
	}
	if total != DefaultTotalHeight {
		t.Errorf("total = %v, want default %v", total, DefaultTotalHeight)
	}
}

func TestPlaceBreaksCycles(t *testing.T) {
	boxes := []NodeBox{
		{Node: mir.Node{ID: "bb0", Block: 0}, Width: 10, Height: 3},
		{Node: mir.Node{ID: "bb1", Block: 1}, Width: 10, Height: 3},
	}
	edges := []mir.Edge{
		{Source: "bb0", Target: "bb1"},
		{Source: "bb1", Target: "bb0"},
	}

	// A loop between two blocks must still produce finite coordinates.
	got := Place(boxes, edges, DefaultOptions())
	for _, b := range got {
		if b.Y < 0 || b.X < 0 {
			t.Errorf("%s placed at (%v, %v), want non-negative coordinates", b.Node.ID, b.X, b.Y)
		}
	}
}
