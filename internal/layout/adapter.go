// Package layout sizes and positions the filtered subgraph for display.
// Sizing lives here; placement is delegated to an opaque geometry engine.
package layout

import (
	"math"

	"github.com/ikari-pl/borrowscope/internal/mir"
)

// NodeBox is a positioned basic block.
type NodeBox struct {
	Node   mir.Node
	X, Y   float64
	Width  float64
	Height float64
}

// Row heights in terminal cells. Each block renders a header row, one row
// per visible statement and one terminator row.
const (
	headerRows     = 1
	terminatorRows = 1
	// DefaultTotalHeight replaces a non-finite total, which the geometry
	// engine can report for an empty graph.
	DefaultTotalHeight = 10.0
)

// VisibleStmtCount counts the statements that currently occupy a display
// row. The program point's numbering is unaffected: hiding storage
// statements changes selectability and height, never the index space.
func VisibleStmtCount(n *mir.Node, hideStorage bool) int {
	if !hideStorage {
		return len(n.Stmts)
	}
	count := 0
	for _, s := range n.Stmts {
		if !mir.IsStorageStmt(s) {
			count++
		}
	}
	return count
}

// Arrange sizes every node from its visible statement count, runs the
// geometry engine, and returns the positioned boxes with the total
// container height (max over nodes of y+height, plus padding). A
// non-finite total is replaced with a safe default rather than propagated.
func Arrange(g *mir.Graph, hideStorage bool, opts Options) ([]NodeBox, float64) {
	boxes := make([]NodeBox, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		width := float64(widestLine(&n))
		height := float64(headerRows + VisibleStmtCount(&n, hideStorage) + terminatorRows)
		boxes = append(boxes, NodeBox{Node: n, Width: width, Height: height})
	}

	boxes = Place(boxes, g.Edges, opts)

	total := math.Inf(-1)
	for _, b := range boxes {
		if b.Y+b.Height > total {
			total = b.Y + b.Height
		}
	}
	total += opts.Padding

	if math.IsInf(total, 0) || math.IsNaN(total) {
		total = DefaultTotalHeight
	}
	return boxes, total
}

func widestLine(n *mir.Node) int {
	w := len(n.ID)
	for _, s := range n.Stmts {
		if len(s) > w {
			w = len(s)
		}
	}
	if len(n.Terminator) > w {
		w = len(n.Terminator)
	}
	return w
}
