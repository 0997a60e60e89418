// Package mir models the control-flow graph of a single analyzed function
// as emitted by the analysis backend, plus the program-point addressing
// scheme used everywhere else in the inspector.
package mir

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node is one basic block: an ordered statement list and a terminator.
type Node struct {
	ID         string   `json:"id"`
	Block      int      `json:"block"`
	Stmts      []string `json:"stmts"`
	Terminator string   `json:"terminator"`
}

// Edge connects two basic blocks. Nodes are referenced by ID ("bb0", "bb1").
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Graph is the full function graph. It is immutable once fetched and
// replaced wholesale when the selected function changes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Point addresses a single program point. Stmt ranges over [0, len(Stmts)]
// inclusive; the value len(Stmts) denotes "at the terminator".
type Point struct {
	Block int
	Stmt  int
}

func (p Point) String() string {
	return fmt.Sprintf("bb%d[%d]", p.Block, p.Stmt)
}

// AtTerminator reports whether p sits on n's terminator position.
func (p Point) AtTerminator(n *Node) bool {
	return p.Stmt == len(n.Stmts)
}

// Path is one concrete control-flow path through a function, as enumerated
// by the analysis. Paths are selected by index, never by content.
type Path []int

// Contains reports whether block appears anywhere on the path.
func (p Path) Contains(block int) bool {
	for _, b := range p {
		if b == block {
			return true
		}
	}
	return false
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, b := range p {
		parts[i] = "bb" + strconv.Itoa(b)
	}
	return strings.Join(parts, " -> ")
}

// NodeByBlock finds the node with the given block number.
func (g *Graph) NodeByBlock(block int) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Block == block {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// NodeByID finds the node with the given "bbN" identifier.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// BlocksInOrder returns the graph's nodes sorted by block number. This is
// the displayed ordering that navigation treats as a ring.
func (g *Graph) BlocksInOrder() []Node {
	out := make([]Node, len(g.Nodes))
	copy(out, g.Nodes)
	sort.Slice(out, func(i, j int) bool { return out[i].Block < out[j].Block })
	return out
}

// IsStorageStmt reports whether a statement is lifetime bookkeeping
// (StorageLive/StorageDead), optionally hidden from display and stepping.
func IsStorageStmt(stmt string) bool {
	return strings.HasPrefix(stmt, "StorageLive(") || strings.HasPrefix(stmt, "StorageDead(")
}

// IsUnwindEdge reports whether an edge routes to an unwind cleanup block.
func IsUnwindEdge(e Edge) bool {
	return e.Label == "unwind"
}

// IsUnwindResume reports whether a terminator marks an unwind-resume block.
// The backend has emitted both the Debug spelling and the MIR-dump one.
func IsUnwindResume(terminator string) bool {
	return terminator == "UnwindResume" || terminator == "resume"
}
