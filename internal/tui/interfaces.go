// Package tui provides the terminal user interface for stepping through
// per-program-point borrow-checker analysis output.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/state"
)

// TUI provides the main terminal user interface.
type TUI interface {
	// Run starts the TUI and blocks until the user exits.
	Run(ctx context.Context, client *data.Client, store *state.Store, sel state.Selection) error
}

// Model represents the application state for the TUI.
type Model interface {
	// Init initializes the model.
	Init() tea.Cmd

	// Update handles messages and updates the model.
	Update(tea.Msg) (tea.Model, tea.Cmd)

	// View renders the current view.
	View() string
}

// ViewManager manages different views in the TUI.
type ViewManager interface {
	// GetCurrentView returns the currently active view.
	GetCurrentView(state *State) View

	// SwitchView switches to the specified view.
	SwitchView(viewName string) error

	// GetView returns a view by name.
	GetView(viewName string) View

	// RegisterView registers a new view.
	RegisterView(view View)
}

// View represents a single view in the TUI.
type View interface {
	// Name returns the view's name.
	Name() string

	// Render renders the view with the given model state.
	Render(state *State) string
}
