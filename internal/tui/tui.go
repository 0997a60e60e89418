package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/layout"
	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/nav"
	"github.com/ikari-pl/borrowscope/internal/overlay"
	"github.com/ikari-pl/borrowscope/internal/state"
	"github.com/ikari-pl/borrowscope/internal/tui/theme"
)

// tui implements the TUI interface.
type tui struct {
	logger      *slog.Logger
	viewManager ViewManager
	styles      *theme.Styles
}

// NewTUI creates a new TUI instance.
func NewTUI(logger *slog.Logger) TUI {
	styles := theme.NewStyles(theme.DefaultTheme())
	viewManager := NewViewManager(styles)

	return &tui{
		logger:      logger,
		viewManager: viewManager,
		styles:      styles,
	}
}

// Run starts the TUI and blocks until the user exits.
func (t *tui) Run(ctx context.Context, client *data.Client, store *state.Store, sel state.Selection) error {
	if client == nil {
		return fmt.Errorf("client cannot be nil")
	}

	model := NewModel(client, store, sel, t.viewManager, t.styles, t.logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// model implements the Model interface and serves as the main application
// model. All state mutation happens here, on the single event loop; the
// fetch commands only ever report back via messages.
type model struct {
	state       *State
	viewManager ViewManager
	styles      *theme.Styles
	client      *data.Client
	store       *state.Store
	tracker     *overlay.Tracker
	layoutOpts  layout.Options
	logger      *slog.Logger
}

// NewModel creates a new model instance seeded with the given selection.
func NewModel(client *data.Client, store *state.Store, sel state.Selection, vm ViewManager, styles *theme.Styles, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Theme().Text).
		Background(styles.Theme().Selection).
		Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Theme().Subtle).
		Background(styles.Theme().Selection)

	fnList := list.New(nil, delegate, 80, 30)
	fnList.Title = ""
	fnList.SetShowTitle(false)
	fnList.SetShowStatusBar(true)
	fnList.SetFilteringEnabled(true)
	fnList.SetShowHelp(false)

	dotView := viewport.New(80, 30)

	initialView := ViewFunctions
	if sel.Function != "" {
		initialView = ViewGraph
	}

	st := &State{
		Sel:          sel,
		CurrentView:  initialView,
		FnList:       fnList,
		DotView:      dotView,
		WindowWidth:  80,
		WindowHeight: 30,
	}

	return &model{
		state:       st,
		viewManager: vm,
		styles:      styles,
		client:      client,
		store:       store,
		tracker:     overlay.NewTracker(),
		layoutOpts:  layout.DefaultOptions(),
		logger:      logger,
	}
}

// Init initializes the model: the catalog always loads, and a persisted
// function selection starts loading immediately.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadFunctionsCmd(m.client)}
	if m.state.Sel.Function != "" {
		cmds = append(cmds, m.loadFunctionCmds()...)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleWindowResize(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case functionsLoadedMsg:
		return m.handleFunctionsLoaded(msg)

	case graphLoadedMsg:
		return m.handleGraphLoaded(msg)

	case pathsLoadedMsg:
		return m.handlePathsLoaded(msg)

	case assertionsLoadedMsg:
		return m.handleAssertionsLoaded(msg)

	case bundleLoadedMsg:
		return m.handleBundleLoaded(msg)

	case dotLoadedMsg:
		return m.handleDotLoaded(msg)

	default:
		// Let the focused component absorb everything else.
		if m.state.CurrentView == ViewFunctions {
			var cmd tea.Cmd
			m.state.FnList, cmd = m.state.FnList.Update(msg)
			return m, cmd
		}
		if m.state.CurrentView == ViewDot {
			var cmd tea.Cmd
			m.state.DotView, cmd = m.state.DotView.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// View renders the current view.
func (m *model) View() string {
	currentView := m.viewManager.GetCurrentView(m.state)
	if currentView == nil {
		return "Error: No view available"
	}
	return currentView.Render(m.state)
}

// handleWindowResize handles window resize messages.
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) {
	m.state.WindowWidth = msg.Width
	m.state.WindowHeight = msg.Height

	headerHeight := 2
	footerHeight := 2

	contentHeight := msg.Height - headerHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.state.FnList.SetWidth(msg.Width - 4)
	m.state.FnList.SetHeight(contentHeight)
	m.state.DotView.Width = msg.Width - 4
	m.state.DotView.Height = contentHeight
}

// handleKeyPress handles key press messages.
func (m *model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state.CurrentView {
	case ViewFunctions:
		return m.handleFunctionsKey(msg)
	case ViewDot:
		return m.handleDotKey(msg)
	case ViewHelp:
		return m.handleHelpKey(msg)
	default:
		return m.handleGraphKey(msg)
	}
}

// handleGraphKey handles keys in the main graph view.
func (m *model) handleGraphKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return m.handleJump(int(key[0] - '0'))
	}

	switch key {
	case "q", "esc":
		return m, tea.Quit

	case "down", "j":
		return m.handleStep(nav.Down)

	case "up", "k":
		return m.handleStep(nav.Up)

	case "u":
		m.state.Sel.HideUnwindEdges = !m.state.Sel.HideUnwindEdges
		m.saveToggles()
		return m.refresh()

	case "s":
		m.state.Sel.HideStorageStmts = !m.state.Sel.HideStorageStmts
		m.saveToggles()
		return m.refresh()

	case "p":
		if m.state.Sel.PathIndex == state.NoPath {
			m.setStatus("no path selected", false)
			return m, nil
		}
		m.state.Sel.RestrictToPath = !m.state.Sel.RestrictToPath
		return m.refresh()

	case "n":
		return m.handleCyclePath(1)

	case "N":
		return m.handleCyclePath(-1)

	case "f":
		m.switchTo(ViewFunctions)
		return m, nil

	case "d":
		m.switchTo(ViewDot)
		return m, nil

	case "?":
		m.switchTo(ViewHelp)
		return m, nil
	}

	return m, nil
}

// handleFunctionsKey handles keys in the function picker.
func (m *model) handleFunctionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.state.FnList.SelectedItem().(FnItem); ok {
			return m.selectFunction(item.Fn.ID)
		}
		return m, nil

	case "q", "esc":
		if m.state.FnList.FilterState() == list.Filtering {
			break
		}
		if m.state.Sel.Function != "" {
			m.switchTo(ViewGraph)
			return m, nil
		}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.state.FnList, cmd = m.state.FnList.Update(msg)
	return m, cmd
}

// handleDotKey handles keys in the DOT graph view.
func (m *model) handleDotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "d":
		m.switchTo(ViewGraph)
		return m, nil
	}

	var cmd tea.Cmd
	m.state.DotView, cmd = m.state.DotView.Update(msg)
	return m, cmd
}

// handleHelpKey handles keys in the help view.
func (m *model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "?":
		m.switchTo(m.state.PreviousView)
	}
	return m, nil
}

// handleStep advances the program point one selectable position.
func (m *model) handleStep(dir nav.Direction) (tea.Model, tea.Cmd) {
	if len(m.state.Order) == 0 {
		return m, nil
	}
	m.state.Sel.Point = nav.Step(dir, m.state.Sel.Point, m.state.Order, m.state.Sel.HideStorageStmts)
	return m, tea.Batch(m.refreshOverlay()...)
}

// handleJump is the digit-key block shortcut. The jump itself does not
// validate the target; the anchor pass supplies the missing-block fallback.
func (m *model) handleJump(block int) (tea.Model, tea.Cmd) {
	if len(m.state.Order) == 0 {
		return m, nil
	}
	p := nav.Jump(block)
	m.state.Sel.Point = nav.Anchor(p, m.state.Order, m.state.Sel.HideStorageStmts)
	return m, tea.Batch(m.refreshOverlay()...)
}

// handleCyclePath moves the path selection by delta, wrapping.
func (m *model) handleCyclePath(delta int) (tea.Model, tea.Cmd) {
	count := len(m.state.Paths)
	if count == 0 {
		m.setStatus("no paths enumerated for this function", false)
		return m, nil
	}

	idx := m.state.Sel.PathIndex
	if idx == state.NoPath {
		if delta > 0 {
			idx = 0
		} else {
			idx = count - 1
		}
	} else {
		idx = ((idx+delta)%count + count) % count
	}

	m.state.Sel = m.state.Sel.WithPathIndex(idx)
	if m.store != nil {
		m.store.SavePathIndex(idx)
	}
	return m.refresh()
}

// selectFunction switches to a function and starts loading its datasets.
func (m *model) selectFunction(fn string) (tea.Model, tea.Cmd) {
	m.state.Sel = m.state.Sel.WithFunction(fn)
	if m.store != nil {
		m.store.SaveFunction(fn)
		m.store.SavePathIndex(state.NoPath)
	}

	// Replaced wholesale; nothing from the previous function survives.
	m.state.Graph = nil
	m.state.Paths = nil
	m.state.Assertions = nil
	m.state.Displayed = nil
	m.state.Order = nil
	m.state.Boxes = nil
	m.state.Bundle = nil
	m.state.BundleKey = overlay.BundleKey{}
	m.state.Dot = ""
	m.state.DotView.SetContent("")
	m.state.StatusMessage = ""

	// Supersede any per-point fetch still in flight for the old function;
	// its token must not remain the newest until the new graph arrives.
	m.tracker.Issue(overlay.ClassBundle)
	m.tracker.Issue(overlay.ClassDot)

	m.switchTo(ViewGraph)
	return m, tea.Batch(m.loadFunctionCmds()...)
}

// loadFunctionCmds issues the per-function loads for the current selection.
func (m *model) loadFunctionCmds() []tea.Cmd {
	fn := m.state.Sel.Function
	return []tea.Cmd{
		loadGraphCmd(m.client, fn, m.tracker.Issue(overlay.ClassGraph)),
		loadPathsCmd(m.client, fn, m.tracker.Issue(overlay.ClassPaths)),
		loadAssertionsCmd(m.client, fn, m.tracker.Issue(overlay.ClassAssertions)),
	}
}

// refresh recomputes the display derivations and re-issues the overlay
// fetches: filter, layout, anchor, then overlays.
func (m *model) refresh() (tea.Model, tea.Cmd) {
	m.refreshDisplay()
	return m, tea.Batch(m.refreshOverlay()...)
}

// refreshDisplay reruns filter and layout, then re-anchors the point
// against the newly displayed block set.
func (m *model) refreshDisplay() {
	if m.state.Graph == nil {
		return
	}
	cfg := m.state.Sel.FilterConfig(m.state.Paths)
	m.state.Displayed = mir.Filter(m.state.Graph, cfg)
	m.state.Order = m.state.Displayed.BlocksInOrder()
	m.state.Boxes, m.state.TotalHeight = layout.Arrange(m.state.Displayed, cfg.HideStorageStmts, m.layoutOpts)
	m.state.Sel.Point = nav.Anchor(m.state.Sel.Point, m.state.Order, cfg.HideStorageStmts)
}

// refreshOverlay derives the dependent dataset keys for the current
// selection and issues the per-point fetches. Issuing always advances the
// class token, so an in-flight fetch for a previous point is superseded
// even when the new point produces no request at all.
func (m *model) refreshOverlay() []tea.Cmd {
	var cmds []tea.Cmd
	sel := m.state.Sel

	dotKey := overlay.DotKey{Function: sel.Function, Block: sel.Point.Block, Stmt: sel.Point.Stmt}
	cmds = append(cmds, loadDotCmd(m.client, dotKey, m.tracker.Issue(overlay.ClassDot)))

	bundleToken := m.tracker.Issue(overlay.ClassBundle)
	path := m.state.DisplayedPath()
	if path == nil {
		m.state.Bundle = nil
		return cmds
	}
	prefix, ok := overlay.PrefixForPoint(path, sel.Point.Block)
	if !ok {
		// The point sits outside the chosen path: no valid overlay
		// exists for it, and whatever was displayed is now stale.
		m.state.Bundle = nil
		return cmds
	}

	key := overlay.BundleKey{Function: sel.Function, Prefix: prefix, Stmt: sel.Point.Stmt}
	m.state.BundleKey = key
	cmds = append(cmds, loadBundleCmd(m.client, key, bundleToken))
	return cmds
}

// handleFunctionsLoaded installs the catalog.
func (m *model) handleFunctionsLoaded(msg functionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Error("loading function catalog failed", "error", msg.err)
		m.setStatus("could not load function catalog", true)
		return m, nil
	}

	m.state.Functions = msg.functions
	items := make([]list.Item, 0, len(msg.functions))
	for _, fn := range msg.functions {
		items = append(items, FnItem{Fn: fn})
	}
	m.state.FnList.SetItems(items)
	return m, nil
}

// handleGraphLoaded installs a freshly fetched function graph.
func (m *model) handleGraphLoaded(msg graphLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Latest(overlay.ClassGraph, msg.token) {
		return m, nil
	}
	// Completion-time read: the selection may have moved on while the
	// fetch was in flight.
	if msg.fn != m.state.Sel.Function {
		return m, nil
	}

	if msg.err != nil {
		m.state.Graph = &mir.Graph{}
		if errors.Is(msg.err, data.ErrNotFound) {
			m.logger.Debug("no graph", "function", msg.fn)
			m.setStatus(fmt.Sprintf("no graph for %s", msg.fn), false)
		} else {
			m.logger.Error("loading graph failed", "function", msg.fn, "error", msg.err)
			m.setStatus("could not load function graph", true)
		}
	} else {
		m.state.Graph = msg.graph
		m.state.StatusMessage = ""
	}

	return m.refresh()
}

// handlePathsLoaded installs the enumerated path list.
func (m *model) handlePathsLoaded(msg pathsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Latest(overlay.ClassPaths, msg.token) {
		return m, nil
	}
	if msg.fn != m.state.Sel.Function {
		return m, nil
	}

	if msg.err != nil {
		m.state.Paths = nil
		if errors.Is(msg.err, data.ErrNotFound) {
			m.logger.Debug("no paths enumerated", "function", msg.fn)
		} else {
			m.logger.Error("loading paths failed", "function", msg.fn, "error", msg.err)
		}
	} else {
		m.state.Paths = msg.paths
	}

	// A persisted index can outrange the fresh list.
	if m.state.Sel.PathIndex >= len(m.state.Paths) {
		m.state.Sel = m.state.Sel.WithPathIndex(state.NoPath)
	}

	return m.refresh()
}

// handleAssertionsLoaded installs the assertion list.
func (m *model) handleAssertionsLoaded(msg assertionsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Latest(overlay.ClassAssertions, msg.token) {
		return m, nil
	}
	if msg.fn != m.state.Sel.Function {
		return m, nil
	}

	if msg.err != nil {
		m.state.Assertions = nil
		if errors.Is(msg.err, data.ErrNotFound) {
			m.logger.Debug("no assertions", "function", msg.fn)
		} else {
			m.logger.Error("loading assertions failed", "function", msg.fn, "error", msg.err)
		}
		return m, nil
	}
	m.state.Assertions = msg.assertions
	return m, nil
}

// handleBundleLoaded installs a per-point bundle, or clears the panel on
// failure. Stale data under a new point is a correctness bug, so the
// displayed bundle is never left behind: either the new data lands or the
// panel empties.
func (m *model) handleBundleLoaded(msg bundleLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Latest(overlay.ClassBundle, msg.token) {
		return m, nil
	}
	// Completion-time read: the selection may have moved on.
	if msg.key.Function != m.state.Sel.Function {
		return m, nil
	}
	if !msg.key.Equal(m.state.BundleKey) {
		return m, nil
	}

	if msg.err != nil {
		m.state.Bundle = nil
		if errors.Is(msg.err, data.ErrNotFound) {
			m.logger.Debug("no overlay bundle for point", "key", msg.key.String())
		} else {
			m.logger.Error("loading overlay bundle failed", "key", msg.key.String(), "error", msg.err)
		}
		return m, nil
	}

	m.state.Bundle = msg.bundle
	return m, nil
}

// handleDotLoaded installs the auxiliary DOT graph text.
func (m *model) handleDotLoaded(msg dotLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.tracker.Latest(overlay.ClassDot, msg.token) {
		return m, nil
	}
	// Completion-time read against the current point.
	if msg.key.Function != m.state.Sel.Function ||
		msg.key.Block != m.state.Sel.Point.Block ||
		msg.key.Stmt != m.state.Sel.Point.Stmt {
		return m, nil
	}

	if msg.err != nil {
		m.state.Dot = ""
		m.state.DotView.SetContent("")
		if errors.Is(msg.err, data.ErrNotFound) {
			m.logger.Debug("no dot graph for point", "key", msg.key.String())
		} else {
			m.logger.Error("loading dot graph failed", "key", msg.key.String(), "error", msg.err)
		}
		return m, nil
	}

	m.state.Dot = msg.dot
	m.state.DotView.SetContent(msg.dot)
	return m, nil
}

func (m *model) switchTo(view string) {
	if view == "" {
		view = ViewGraph
	}
	m.state.PreviousView = m.state.CurrentView
	m.state.CurrentView = view
	m.viewManager.SwitchView(view)
}

func (m *model) saveToggles() {
	if m.store != nil {
		m.store.SaveToggles(m.state.Sel.HideUnwindEdges, m.state.Sel.HideStorageStmts)
	}
}

func (m *model) setStatus(text string, isError bool) {
	m.state.StatusMessage = text
	m.state.StatusIsError = isError
}
