package tui

import (
	"fmt"

	"github.com/ikari-pl/borrowscope/internal/tui/theme"
)

// viewManager implements the ViewManager interface.
type viewManager struct {
	views       map[string]View
	currentView string
}

// NewViewManager creates a new ViewManager with the default views
// registered.
func NewViewManager(styles *theme.Styles) ViewManager {
	vm := &viewManager{
		views:       make(map[string]View),
		currentView: ViewGraph,
	}

	vm.RegisterView(NewGraphView(styles))
	vm.RegisterView(NewFunctionsView(styles))
	vm.RegisterView(NewDotView(styles))
	vm.RegisterView(NewHelpView(styles))

	return vm
}

// GetCurrentView returns the currently active view.
func (vm *viewManager) GetCurrentView(state *State) View {
	if state == nil {
		return vm.views[vm.currentView]
	}

	viewName := state.CurrentView
	if viewName == "" {
		viewName = vm.currentView
	}

	if view, ok := vm.views[viewName]; ok {
		return view
	}
	return vm.views[ViewGraph]
}

// SwitchView switches to the specified view.
func (vm *viewManager) SwitchView(viewName string) error {
	if _, ok := vm.views[viewName]; !ok {
		return fmt.Errorf("view '%s' not found", viewName)
	}
	vm.currentView = viewName
	return nil
}

// GetView returns a view by name.
func (vm *viewManager) GetView(viewName string) View {
	return vm.views[viewName]
}

// RegisterView registers a new view.
func (vm *viewManager) RegisterView(view View) {
	if view != nil {
		vm.views[view.Name()] = view
	}
}
