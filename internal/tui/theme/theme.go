// Package theme provides the visual theme for the inspector TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents the complete visual theme for the application.
type Theme struct {
	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color
	Muted   lipgloss.Color
	Subtle  lipgloss.Color
	Text    lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Domain colors
	Borrow    lipgloss.Color // active borrows and reborrow deltas
	Heap      lipgloss.Color // abstract heap entries
	Condition lipgloss.Color // path conditions
	Assertion lipgloss.Color // implied assertions
	Storage   lipgloss.Color // StorageLive/StorageDead bookkeeping
	Unwind    lipgloss.Color // unwind edges and resume blocks
	OldPlace  lipgloss.Color // pre-mutation snapshots

	// UI element colors
	Border    lipgloss.Color
	Selection lipgloss.Color
	Highlight lipgloss.Color
}

// DefaultTheme returns the default dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Base:    lipgloss.Color("#0d1117"),
		Surface: lipgloss.Color("#161b22"),
		Overlay: lipgloss.Color("#21262d"),
		Muted:   lipgloss.Color("#484f58"),
		Subtle:  lipgloss.Color("#6e7681"),
		Text:    lipgloss.Color("#e6edf3"),

		Primary:   lipgloss.Color("#58a6ff"),
		Secondary: lipgloss.Color("#bc8cff"),

		Success: lipgloss.Color("#3fb950"),
		Warning: lipgloss.Color("#d29922"),
		Error:   lipgloss.Color("#f85149"),
		Info:    lipgloss.Color("#58a6ff"),

		Borrow:    lipgloss.Color("#ffa657"),
		Heap:      lipgloss.Color("#7ee787"),
		Condition: lipgloss.Color("#79c0ff"),
		Assertion: lipgloss.Color("#d2a8ff"),
		Storage:   lipgloss.Color("#6e7681"),
		Unwind:    lipgloss.Color("#ff7b72"),
		OldPlace:  lipgloss.Color("#a371f7"),

		Border:    lipgloss.Color("#30363d"),
		Selection: lipgloss.Color("#388bfd"),
		Highlight: lipgloss.Color("#1f6feb"),
	}
}

// Styles bundles the lipgloss styles derived from a theme.
type Styles struct {
	theme *Theme

	// Layout styles
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Sidebar lipgloss.Style

	// Component styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style

	// Graph styles
	BlockHeader  lipgloss.Style
	Stmt         lipgloss.Style
	StmtStorage  lipgloss.Style
	StmtCurrent  lipgloss.Style
	Terminator   lipgloss.Style
	EdgeLabel    lipgloss.Style
	UnwindMarker lipgloss.Style

	// Overlay styles
	HeapEntry lipgloss.Style
	OldPlace  lipgloss.Style
	Borrow    lipgloss.Style
	Condition lipgloss.Style
	Assertion lipgloss.Style
	DeltaAdd  lipgloss.Style
	DeltaDrop lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style

	// Special styles
	KeyBinding lipgloss.Style
	KeyLabel   lipgloss.Style
	Divider    lipgloss.Style
}

// NewStyles derives the style set from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	s := &Styles{theme: theme}

	s.Header = lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.Surface).
		Bold(true).
		Padding(0, 2)

	s.Footer = lipgloss.NewStyle().
		Foreground(theme.Subtle).
		Background(theme.Surface).
		Padding(0, 1)

	s.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(theme.Border).
		Padding(0, 1)

	s.Title = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	s.Label = lipgloss.NewStyle().
		Foreground(theme.Subtle)

	s.Value = lipgloss.NewStyle().
		Foreground(theme.Text)

	s.BlockHeader = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Stmt = lipgloss.NewStyle().
		Foreground(theme.Text)

	s.StmtStorage = lipgloss.NewStyle().
		Foreground(theme.Storage)

	s.StmtCurrent = lipgloss.NewStyle().
		Foreground(theme.Text).
		Background(theme.Selection).
		Bold(true)

	s.Terminator = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Italic(true)

	s.EdgeLabel = lipgloss.NewStyle().
		Foreground(theme.Subtle)

	s.UnwindMarker = lipgloss.NewStyle().
		Foreground(theme.Unwind)

	s.HeapEntry = lipgloss.NewStyle().
		Foreground(theme.Heap)

	s.OldPlace = lipgloss.NewStyle().
		Foreground(theme.OldPlace).
		Italic(true)

	s.Borrow = lipgloss.NewStyle().
		Foreground(theme.Borrow)

	s.Condition = lipgloss.NewStyle().
		Foreground(theme.Condition)

	s.Assertion = lipgloss.NewStyle().
		Foreground(theme.Assertion)

	s.DeltaAdd = lipgloss.NewStyle().
		Foreground(theme.Success)

	s.DeltaDrop = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.Success = lipgloss.NewStyle().
		Foreground(theme.Success)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.KeyBinding = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.KeyLabel = lipgloss.NewStyle().
		Foreground(theme.Subtle)

	s.Divider = lipgloss.NewStyle().
		Foreground(theme.Border)

	return s
}

// Theme returns the theme the styles were derived from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
