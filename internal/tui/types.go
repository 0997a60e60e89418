package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/layout"
	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/overlay"
	"github.com/ikari-pl/borrowscope/internal/state"
)

// State represents the complete application state.
type State struct {
	// Selection is the authoritative (function, path, point, toggles)
	// tuple everything else derives from.
	Sel state.Selection

	// Per-function datasets, replaced wholesale on function change.
	Functions  []data.Function
	Graph      *mir.Graph
	Paths      []mir.Path
	Assertions []overlay.Assertion

	// Display derivations, recomputed on every selection mutation.
	Displayed   *mir.Graph
	Order       []mir.Node // displayed blocks in ring order
	Boxes       []layout.NodeBox
	TotalHeight float64

	// Per-point overlays. A nil Bundle renders as an empty panel.
	Bundle    *overlay.Bundle
	BundleKey overlay.BundleKey
	Dot       string

	// Current view state
	CurrentView  string
	PreviousView string

	// UI components
	FnList  list.Model
	DotView viewport.Model

	// Window dimensions
	WindowWidth  int
	WindowHeight int

	// Graph panel scroll, in lines. Kept so the current point stays
	// visible while stepping.
	GraphScroll int

	// Status
	StatusMessage string
	StatusIsError bool
}

// DisplayedPath returns the selected path, or nil when none is selected.
func (s *State) DisplayedPath() mir.Path {
	return s.Sel.SelectedPath(s.Paths)
}

// Constants for view names.
const (
	ViewGraph     = "graph"
	ViewFunctions = "functions"
	ViewDot       = "dot"
	ViewHelp      = "help"
)

// FnItem is a function catalog entry in the picker list.
type FnItem struct {
	Fn data.Function
}

// FilterValue implements list.Item.
func (fi FnItem) FilterValue() string {
	return fi.Fn.ID + " " + fi.Fn.Name
}

// Title implements list.Item.
func (fi FnItem) Title() string {
	return fi.Fn.Name
}

// Description implements list.Item.
func (fi FnItem) Description() string {
	return fi.Fn.ID
}

// KeyBinding represents a keyboard shortcut shown in the help view.
type KeyBinding struct {
	Key         string
	Description string
	Context     string // "global", "graph", "functions", "dot"
}

// HelpSection represents a section in the help view.
type HelpSection struct {
	Title    string
	Bindings []KeyBinding
}

// DefaultKeyBindings returns the default set of key bindings.
func DefaultKeyBindings() []HelpSection {
	return []HelpSection{
		{
			Title: "Stepping",
			Bindings: []KeyBinding{
				{Key: "j/↓", Description: "Step down one program point", Context: "graph"},
				{Key: "k/↑", Description: "Step up one program point", Context: "graph"},
				{Key: "0-9", Description: "Jump to block", Context: "graph"},
			},
		},
		{
			Title: "Display",
			Bindings: []KeyBinding{
				{Key: "u", Description: "Toggle unwind edges", Context: "graph"},
				{Key: "s", Description: "Toggle storage statements", Context: "graph"},
				{Key: "p", Description: "Restrict display to selected path", Context: "graph"},
				{Key: "n/N", Description: "Cycle path selection", Context: "graph"},
			},
		},
		{
			Title: "Views",
			Bindings: []KeyBinding{
				{Key: "f", Description: "Function picker", Context: "global"},
				{Key: "d", Description: "Dependency graph (DOT) for the point", Context: "global"},
				{Key: "?", Description: "Help", Context: "global"},
				{Key: "Esc", Description: "Back", Context: "global"},
				{Key: "q/Ctrl+c", Description: "Quit", Context: "global"},
			},
		},
	}
}

// formatPoint renders a point for the header line.
func formatPoint(p mir.Point, n *mir.Node) string {
	if n != nil && p.AtTerminator(n) {
		return fmt.Sprintf("bb%d: terminator", p.Block)
	}
	return fmt.Sprintf("bb%d: statement %d", p.Block, p.Stmt)
}
