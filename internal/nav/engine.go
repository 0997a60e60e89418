// Package nav implements program-point stepping over the currently
// displayed block set. All functions are pure: they map an intent plus the
// displayed graph to the next point and never touch shared state.
package nav

import (
	"github.com/ikari-pl/borrowscope/internal/mir"
)

// Direction is a stepping intent.
type Direction int

const (
	Up Direction = iota
	Down
)

// Opposite returns the reverse direction.
func Opposite(d Direction) Direction {
	if d == Up {
		return Down
	}
	return Up
}

// Selectable reports whether position pos in node n can hold the current
// point. The terminator position is always selectable; statement positions
// are selectable unless the storage filter hides them. Numbering always
// refers to the full statement list, hidden or not.
func Selectable(n *mir.Node, pos int, hideStorage bool) bool {
	if pos == len(n.Stmts) {
		return true
	}
	if pos < 0 || pos > len(n.Stmts) {
		return false
	}
	if !hideStorage {
		return true
	}
	return !mir.IsStorageStmt(n.Stmts[pos])
}

// Step advances the point one selectable position in the given direction.
// displayed is the filtered block set in display order; it behaves as a
// ring, so stepping down from the last block's terminator wraps to the
// first block. Stepping never loops forever: after one full lap over the
// displayed blocks without a selectable position the input point is
// returned unchanged.
func Step(dir Direction, p mir.Point, displayed []mir.Node, hideStorage bool) mir.Point {
	if len(displayed) == 0 {
		return p
	}

	idx := indexOfBlock(displayed, p.Block)
	if idx < 0 {
		// The point's block was filtered out from underneath it.
		return Anchor(p, displayed, hideStorage)
	}

	// Within-block: scan outward from the current position.
	n := &displayed[idx]
	if dir == Down {
		for q := p.Stmt + 1; q <= len(n.Stmts); q++ {
			if Selectable(n, q, hideStorage) {
				return mir.Point{Block: n.Block, Stmt: q}
			}
		}
	} else {
		for q := p.Stmt - 1; q >= 0; q-- {
			if Selectable(n, q, hideStorage) {
				return mir.Point{Block: n.Block, Stmt: q}
			}
		}
	}

	// Cross-block: walk the ring until a block yields a selectable
	// position. The terminator is always selectable, so the first
	// neighbor normally wins; the lap bound guards the degenerate case.
	for lap := 1; lap <= len(displayed); lap++ {
		var j int
		if dir == Down {
			j = (idx + lap) % len(displayed)
		} else {
			j = ((idx-lap)%len(displayed) + len(displayed)) % len(displayed)
		}
		m := &displayed[j]
		if dir == Down {
			for q := 0; q <= len(m.Stmts); q++ {
				if Selectable(m, q, hideStorage) {
					return mir.Point{Block: m.Block, Stmt: q}
				}
			}
		} else {
			for q := len(m.Stmts); q >= 0; q-- {
				if Selectable(m, q, hideStorage) {
					return mir.Point{Block: m.Block, Stmt: q}
				}
			}
		}
	}

	return p
}

// Jump is the digit-key shortcut: it targets the block unconditionally and
// leaves range validation to the Anchor pass that follows every mutation.
func Jump(block int) mir.Point {
	return mir.Point{Block: block, Stmt: 0}
}

// Anchor re-validates a point against the displayed block set after the
// graph or the filters changed. The containing block is located by block
// number, never by position in the previous ordering. If the block is gone
// entirely, the point falls back to the first displayed block.
func Anchor(p mir.Point, displayed []mir.Node, hideStorage bool) mir.Point {
	if len(displayed) == 0 {
		return p
	}

	idx := indexOfBlock(displayed, p.Block)
	if idx < 0 {
		first := &displayed[0]
		return mir.Point{Block: first.Block, Stmt: firstSelectable(first, hideStorage)}
	}

	n := &displayed[idx]
	stmt := p.Stmt
	if stmt < 0 {
		stmt = 0
	}
	if stmt > len(n.Stmts) {
		stmt = len(n.Stmts)
	}
	if !Selectable(n, stmt, hideStorage) {
		// Slide forward to the next selectable position; the terminator
		// guarantees one exists.
		for q := stmt + 1; q <= len(n.Stmts); q++ {
			if Selectable(n, q, hideStorage) {
				stmt = q
				break
			}
		}
	}
	return mir.Point{Block: n.Block, Stmt: stmt}
}

func firstSelectable(n *mir.Node, hideStorage bool) int {
	for q := 0; q <= len(n.Stmts); q++ {
		if Selectable(n, q, hideStorage) {
			return q
		}
	}
	return len(n.Stmts)
}

func indexOfBlock(nodes []mir.Node, block int) int {
	for i := range nodes {
		if nodes[i].Block == block {
			return i
		}
	}
	return -1
}
