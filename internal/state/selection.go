// Package state holds the composed selection state every other component
// derives from, and its durable snapshots.
package state

import (
	"github.com/ikari-pl/borrowscope/internal/mir"
)

// Selection is the observable inspector state: which function, which path,
// which program point, and the display toggles. Every mutation replaces the
// whole field; nothing is merged.
type Selection struct {
	Function string
	// PathIndex selects a path by position in the enumerated list;
	// NoPath means no path is selected.
	PathIndex        int
	Point            mir.Point
	HideUnwindEdges  bool
	HideStorageStmts bool
	RestrictToPath   bool
}

// NoPath is the PathIndex value for "no path selected".
const NoPath = -1

// NewSelection returns the cold-start default: no function, no path, point
// at the origin, everything shown.
func NewSelection() Selection {
	return Selection{
		PathIndex: NoPath,
		Point:     mir.Point{Block: 0, Stmt: 0},
	}
}

// WithFunction switches functions. The point resets to the origin and the
// path selection drops, since paths are enumerated per function.
func (s Selection) WithFunction(fn string) Selection {
	s.Function = fn
	s.PathIndex = NoPath
	s.Point = mir.Point{Block: 0, Stmt: 0}
	return s
}

// WithPathIndex selects a path by index.
func (s Selection) WithPathIndex(idx int) Selection {
	s.PathIndex = idx
	return s
}

// WithPoint moves the current program point.
func (s Selection) WithPoint(p mir.Point) Selection {
	s.Point = p
	return s
}

// FilterConfig derives the display filter from the selection. paths is the
// function's enumerated path list; an out-of-range PathIndex (a stale
// persisted value, or a list still loading) behaves as "no restriction".
func (s Selection) FilterConfig(paths []mir.Path) mir.FilterConfig {
	cfg := mir.FilterConfig{
		HideUnwindEdges:  s.HideUnwindEdges,
		HideStorageStmts: s.HideStorageStmts,
	}
	if s.RestrictToPath && s.PathIndex >= 0 && s.PathIndex < len(paths) {
		cfg.PathOnly = paths[s.PathIndex]
	}
	return cfg
}

// SelectedPath returns the currently selected path, or nil.
func (s Selection) SelectedPath(paths []mir.Path) mir.Path {
	if s.PathIndex >= 0 && s.PathIndex < len(paths) {
		return paths[s.PathIndex]
	}
	return nil
}
