package layout

import (
	"sort"

	"github.com/ikari-pl/borrowscope/internal/mir"
)

// Options tunes the geometry engine.
type Options struct {
	RankSep float64 // vertical gap between ranks
	NodeSep float64 // horizontal gap between nodes on one rank
	Padding float64 // outer padding added to the total height
}

// DefaultOptions returns the spacing used by the graph view.
func DefaultOptions() Options {
	return Options{RankSep: 2, NodeSep: 4, Padding: 1}
}

// Place assigns coordinates to the boxes. It is the opaque geometry
// collaborator behind Arrange: callers only rely on the contract
// (nodes + edges + options in, positioned nodes out) and may swap the
// algorithm without touching anything else.
//
// The placement is a longest-path layering: each node's rank is the longest
// edge-distance from an entry node, nodes on one rank are packed left to
// right in block order, and ranks are stacked top to bottom.
func Place(boxes []NodeBox, edges []mir.Edge, opts Options) []NodeBox {
	if len(boxes) == 0 {
		return boxes
	}

	byID := make(map[string]int, len(boxes))
	for i, b := range boxes {
		byID[b.Node.ID] = i
	}

	succ := make(map[int][]int)
	for _, e := range edges {
		s, okS := byID[e.Source]
		t, okT := byID[e.Target]
		if !okS || !okT || s == t {
			continue
		}
		succ[s] = append(succ[s], t)
	}

	rank := longestPathRanks(len(boxes), succ)

	// Group by rank, keep block order within a rank stable.
	grouped := make(map[int][]int)
	maxRank := 0
	for i := range boxes {
		grouped[rank[i]] = append(grouped[rank[i]], i)
		if rank[i] > maxRank {
			maxRank = rank[i]
		}
	}
	for _, idxs := range grouped {
		sort.Slice(idxs, func(a, b int) bool {
			return boxes[idxs[a]].Node.Block < boxes[idxs[b]].Node.Block
		})
	}

	y := 0.0
	for r := 0; r <= maxRank; r++ {
		idxs := grouped[r]
		if len(idxs) == 0 {
			continue
		}
		x := 0.0
		rowH := 0.0
		for _, i := range idxs {
			boxes[i].X = x
			boxes[i].Y = y
			x += boxes[i].Width + opts.NodeSep
			if boxes[i].Height > rowH {
				rowH = boxes[i].Height
			}
		}
		y += rowH + opts.RankSep
	}

	return boxes
}

// longestPathRanks computes per-node ranks. Back edges (loops) are broken
// by capping the relaxation at n passes.
func longestPathRanks(n int, succ map[int][]int) []int {
	rank := make([]int, n)
	for pass := 0; pass < n; pass++ {
		changed := false
		for u := 0; u < n; u++ {
			for _, v := range succ[u] {
				if rank[u]+1 > rank[v] && rank[u]+1 < n {
					rank[v] = rank[u] + 1
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return rank
}
