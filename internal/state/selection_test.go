package state

import (
	"testing"

	"github.com/ikari-pl/borrowscope/internal/mir"
)

func TestNewSelection(t *testing.T) {
	sel := NewSelection()
	if sel.Function != "" {
		t.Errorf("function = %q, want empty", sel.Function)
	}
	if sel.PathIndex != NoPath {
		t.Errorf("path index = %d, want NoPath", sel.PathIndex)
	}
	if (sel.Point != mir.Point{Block: 0, Stmt: 0}) {
		t.Errorf("point = %v, want origin", sel.Point)
	}
}

func TestWithFunctionResets(t *testing.T) {
	sel := NewSelection().
		WithFunction("foo").
		WithPathIndex(2).
		WithPoint(mir.Point{Block: 3, Stmt: 1})

	sel = sel.WithFunction("bar")
	if sel.Function != "bar" {
		t.Errorf("function = %q", sel.Function)
	}
	if sel.PathIndex != NoPath {
		t.Errorf("path index = %d, want NoPath: paths are per-function", sel.PathIndex)
	}
	if (sel.Point != mir.Point{Block: 0, Stmt: 0}) {
		t.Errorf("point = %v, want origin after function switch", sel.Point)
	}
}

func TestFilterConfig(t *testing.T) {
	paths := []mir.Path{{0, 1}, {0, 2}}

	sel := NewSelection()
	sel.HideUnwindEdges = true
	sel.RestrictToPath = true
	sel = sel.WithPathIndex(1)

	cfg := sel.FilterConfig(paths)
	if !cfg.HideUnwindEdges {
		t.Error("unwind toggle not carried into the filter")
	}
	if len(cfg.PathOnly) != 2 || cfg.PathOnly[1] != 2 {
		t.Errorf("path restriction = %v, want [0 2]", cfg.PathOnly)
	}
}

func TestFilterConfigOutOfRangeIndex(t *testing.T) {
	sel := NewSelection()
	sel.RestrictToPath = true
	sel = sel.WithPathIndex(5)

	// A stale persisted index or a still-loading list means no restriction.
	cfg := sel.FilterConfig([]mir.Path{{0}})
	if cfg.PathOnly != nil {
		t.Errorf("restriction = %v, want none for an out-of-range index", cfg.PathOnly)
	}
}

func TestFilterConfigNotRestricted(t *testing.T) {
	sel := NewSelection().WithPathIndex(0)
	cfg := sel.FilterConfig([]mir.Path{{0, 1}})
	if cfg.PathOnly != nil {
		t.Error("selecting a path must not restrict the display by itself")
	}
}

func TestSelectedPath(t *testing.T) {
	paths := []mir.Path{{0, 1}}

	if got := NewSelection().SelectedPath(paths); got != nil {
		t.Errorf("path with no selection = %v, want nil", got)
	}
	if got := NewSelection().WithPathIndex(0).SelectedPath(paths); len(got) != 2 {
		t.Errorf("path = %v, want [0 1]", got)
	}
	if got := NewSelection().WithPathIndex(3).SelectedPath(paths); got != nil {
		t.Errorf("out-of-range path = %v, want nil", got)
	}
}
