package mir

// FilterConfig is pure view state: it never mutates the underlying graph.
type FilterConfig struct {
	// HideUnwindEdges drops unwind-labeled edges and unwind-resume blocks.
	HideUnwindEdges bool
	// PathOnly, when non-nil, restricts the display to blocks on the path.
	PathOnly Path
	// HideStorageStmts hides StorageLive/StorageDead statements. It affects
	// layout heights and position selectability, not the filtered node set,
	// and is carried here so the whole display configuration travels as one
	// value.
	HideStorageStmts bool
}

// Filter derives the display subgraph for the given configuration.
//
// Rules, in order: unwind-resume nodes and unwind edges go first, then
// nodes (and edges) off the restricted path. An edge survives only if both
// endpoints survived node filtering. Filtering is idempotent; no hidden
// state accumulates between calls.
func Filter(g *Graph, cfg FilterConfig) *Graph {
	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if cfg.HideUnwindEdges && IsUnwindResume(n.Terminator) {
			continue
		}
		if cfg.PathOnly != nil && !cfg.PathOnly.Contains(n.Block) {
			continue
		}
		nodes = append(nodes, n)
	}

	kept := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		kept[n.ID] = true
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if cfg.HideUnwindEdges && IsUnwindEdge(e) {
			continue
		}
		if !kept[e.Source] || !kept[e.Target] {
			continue
		}
		edges = append(edges, e)
	}

	return &Graph{Nodes: nodes, Edges: edges}
}
