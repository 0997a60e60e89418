package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/overlay"
	"github.com/ikari-pl/borrowscope/internal/state"
	"github.com/ikari-pl/borrowscope/internal/tui/theme"
)

// ═══════════════════════════════════════════════════════════════════════════════
// GRAPH VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// graphView renders the function graph with the overlay sidebar.
type graphView struct {
	styles *theme.Styles
}

// NewGraphView creates the main graph view.
func NewGraphView(styles *theme.Styles) View {
	return &graphView{styles: styles}
}

// Name returns the view's name.
func (gv *graphView) Name() string {
	return ViewGraph
}

// Render renders the view with the given model state.
func (gv *graphView) Render(st *State) string {
	width := st.WindowWidth
	if width < 40 {
		width = 80
	}
	contentHeight := st.WindowHeight - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	header := gv.renderHeader(st, width)
	footer := gv.renderFooter(st, width)

	if st.Sel.Function == "" {
		body := gv.styles.Muted.Render("No function selected. Press 'f' to pick one.")
		return strings.Join([]string{header, body, footer}, "\n")
	}
	if st.Graph == nil {
		body := gv.styles.Muted.Render("Loading " + st.Sel.Function + "...")
		return strings.Join([]string{header, body, footer}, "\n")
	}

	leftWidth := width * 3 / 5
	rightWidth := width - leftWidth - 3

	left := gv.renderBlocks(st, leftWidth, contentHeight)
	right := gv.renderOverlay(st, rightWidth, contentHeight)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gv.styles.Sidebar.Render(right))
	return strings.Join([]string{header, body, footer}, "\n")
}

// renderHeader shows the function, the point and the display toggles.
func (gv *graphView) renderHeader(st *State, width int) string {
	title := "BORROWSCOPE"
	if st.Sel.Function != "" {
		title += " │ " + st.Sel.Function
		var node *mir.Node
		if st.Graph != nil {
			node, _ = st.Graph.NodeByBlock(st.Sel.Point.Block)
		}
		title += " │ " + formatPoint(st.Sel.Point, node)
	}

	var toggles []string
	if st.Sel.HideUnwindEdges {
		toggles = append(toggles, "unwind hidden")
	}
	if st.Sel.HideStorageStmts {
		toggles = append(toggles, "storage hidden")
	}
	if st.Sel.PathIndex != state.NoPath {
		p := fmt.Sprintf("path %d/%d", st.Sel.PathIndex+1, len(st.Paths))
		if st.Sel.RestrictToPath {
			p += " (restricted)"
		}
		toggles = append(toggles, p)
	}
	if len(toggles) > 0 {
		title += " │ " + strings.Join(toggles, " · ")
	}

	return gv.styles.Header.Width(width).Render(title)
}

// renderBlocks renders the positioned blocks. Boxes sharing a y coordinate
// form one rank and sit side by side in x order; ranks stack top to bottom
// at their layout rows, and the current point stays in the visible window.
func (gv *graphView) renderBlocks(st *State, width, height int) string {
	if len(st.Boxes) == 0 {
		return gv.styles.Muted.Render("(no blocks displayed)")
	}

	order := make([]int, len(st.Boxes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ba, bb := &st.Boxes[order[a]], &st.Boxes[order[b]]
		if ba.Y != bb.Y {
			return ba.Y < bb.Y
		}
		return ba.X < bb.X
	})

	var lines []string
	currentLine := 0

	for i := 0; i < len(order); {
		y := st.Boxes[order[i]].Y
		for len(lines) < int(y) {
			lines = append(lines, "")
		}
		rankStart := len(lines)

		var cols []string
		for ; i < len(order) && st.Boxes[order[i]].Y == y; i++ {
			blockLines, pointLine := gv.renderBlock(st, &st.Boxes[order[i]].Node)
			if pointLine >= 0 {
				currentLine = rankStart + pointLine
			}
			if len(cols) > 0 {
				cols = append(cols, "    ")
			}
			cols = append(cols, strings.Join(blockLines, "\n"))
		}
		lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cols...), "\n")...)
	}

	// The layout's reported container height bounds the scroll extent.
	for len(lines) < int(st.TotalHeight) {
		lines = append(lines, "")
	}

	st.GraphScroll = clampScroll(st.GraphScroll, currentLine, len(lines), height)
	end := st.GraphScroll + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := lines[st.GraphScroll:end]

	return lipgloss.NewStyle().Width(width).Render(strings.Join(visible, "\n"))
}

// renderBlock renders one basic block. The second return is the index of
// the current point's line within the block, or -1.
func (gv *graphView) renderBlock(st *State, n *mir.Node) ([]string, int) {
	var lines []string
	pointLine := -1
	isCurrent := st.Sel.Point.Block == n.Block

	head := n.ID
	if mir.IsUnwindResume(n.Terminator) {
		head += " " + gv.styles.UnwindMarker.Render("(unwind)")
	}
	lines = append(lines, gv.styles.BlockHeader.Render(head))

	for i, stmt := range n.Stmts {
		storage := mir.IsStorageStmt(stmt)
		if st.Sel.HideStorageStmts && storage {
			continue
		}
		text := fmt.Sprintf("  %2d  %s", i, stmt)
		switch {
		case isCurrent && st.Sel.Point.Stmt == i:
			pointLine = len(lines)
			lines = append(lines, gv.styles.StmtCurrent.Render(text))
		case storage:
			lines = append(lines, gv.styles.StmtStorage.Render(text))
		default:
			lines = append(lines, gv.styles.Stmt.Render(text))
		}
	}

	term := fmt.Sprintf("  %2d  %s", len(n.Stmts), n.Terminator)
	if isCurrent && st.Sel.Point.Stmt == len(n.Stmts) {
		pointLine = len(lines)
		lines = append(lines, gv.styles.StmtCurrent.Render(term))
	} else {
		lines = append(lines, gv.styles.Terminator.Render(term))
	}

	if st.Displayed != nil {
		for _, e := range st.Displayed.Edges {
			if e.Source != n.ID {
				continue
			}
			label := fmt.Sprintf("      → %s (%s)", e.Target, e.Label)
			if mir.IsUnwindEdge(e) {
				lines = append(lines, gv.styles.UnwindMarker.Render(label))
			} else {
				lines = append(lines, gv.styles.EdgeLabel.Render(label))
			}
		}
	}

	return lines, pointLine
}

// renderOverlay renders the per-point datasets resident right now.
func (gv *graphView) renderOverlay(st *State, width, height int) string {
	var sections []string

	if st.Sel.PathIndex == state.NoPath {
		sections = append(sections, gv.styles.Muted.Render("No path selected (press 'n')."))
	} else if st.Bundle == nil {
		path := st.DisplayedPath()
		if path != nil && !path.Contains(st.Sel.Point.Block) {
			sections = append(sections, gv.styles.Muted.Render("Point is off the selected path."))
		} else {
			sections = append(sections, gv.styles.Muted.Render("(no overlay data)"))
		}
	} else {
		sections = append(sections, gv.renderBundle(st.Bundle)...)
	}

	if len(st.Assertions) > 0 {
		sections = append(sections, gv.renderAssertions(st))
	}

	out := strings.Join(sections, "\n")
	lines := strings.Split(out, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

// renderBundle renders the heap, borrows, deltas and path conditions.
func (gv *graphView) renderBundle(b *overlay.Bundle) []string {
	var sections []string

	if len(b.Heap) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Heap") + "\n")
		for _, h := range b.Heap {
			place := h.Place.Place
			if h.Place.Old() {
				place = gv.styles.OldPlace.Render(place + " at " + h.Place.At)
			}
			sb.WriteString(fmt.Sprintf("  %s = %s : %s\n",
				place, gv.styles.HeapEntry.Render(h.Value), gv.styles.Label.Render(h.Type)))
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	if len(b.Borrows) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Borrows") + "\n")
		for _, br := range b.Borrows {
			sb.WriteString("  " + gv.styles.Borrow.Render(formatBorrow(br)) + "\n")
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	if len(b.ActionsStart) > 0 || len(b.ActionsMid) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Deltas") + "\n")
		for _, a := range b.ActionsStart {
			sb.WriteString("  " + gv.renderAction(a) + "\n")
		}
		for _, a := range b.ActionsMid {
			sb.WriteString("  " + gv.renderAction(a) + "\n")
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	if len(b.Bridge.Expansions) > 0 || len(b.Bridge.AddedReborrows) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Reborrow bridge") + "\n")
		for _, e := range b.Bridge.Expansions {
			fields := make([]string, len(e.Fields))
			for i, f := range e.Fields {
				fields[i] = f.Place
			}
			sb.WriteString(fmt.Sprintf("  expand %s -> {%s}\n", e.Base.Place, strings.Join(fields, ", ")))
		}
		for _, br := range b.Bridge.AddedReborrows {
			sb.WriteString("  " + gv.styles.DeltaAdd.Render("+ "+formatBorrow(br)) + "\n")
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	if len(b.PathConditions) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Path conditions") + "\n")
		for _, pc := range b.PathConditions {
			sb.WriteString("  " + gv.styles.Condition.Render(pc) + "\n")
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	if len(b.RepacksStart) > 0 || len(b.RepacksMid) > 0 {
		var sb strings.Builder
		sb.WriteString(gv.styles.Title.Render("Repacks") + "\n")
		for _, r := range b.RepacksStart {
			sb.WriteString("  " + r + "\n")
		}
		for _, r := range b.RepacksMid {
			sb.WriteString("  " + r + "\n")
		}
		sections = append(sections, strings.TrimRight(sb.String(), "\n"))
	}

	return sections
}

// renderAction renders one borrow-graph delta.
func (gv *graphView) renderAction(a overlay.Action) string {
	switch a.Kind {
	case overlay.ActionAddReborrow:
		if a.Reborrow != nil {
			return gv.styles.DeltaAdd.Render("+ " + formatBorrow(*a.Reborrow))
		}
	case overlay.ActionRemoveReborrow:
		if a.Reborrow != nil {
			return gv.styles.DeltaDrop.Render("- " + formatBorrow(*a.Reborrow))
		}
	case overlay.ActionExpandPlace, overlay.ActionCollapsePlace:
		if a.Place != nil {
			return gv.styles.Stmt.Render(a.Kind + " " + a.Place.Place)
		}
	}
	return gv.styles.Muted.Render(a.Kind)
}

// renderAssertions lists the function's assertions, marking those implied
// by the path conditions at the current point.
func (gv *graphView) renderAssertions(st *State) string {
	var sb strings.Builder
	sb.WriteString(gv.styles.Title.Render("Assertions") + "\n")

	resident := map[string]bool{}
	if st.Bundle != nil {
		for _, pc := range st.Bundle.PathConditions {
			resident[pc] = true
		}
	}

	for _, a := range st.Assertions {
		implied := len(a.Pcs) > 0
		for _, pc := range a.Pcs {
			if !resident[pc] {
				implied = false
				break
			}
		}
		marker := "  "
		text := gv.styles.Muted.Render(a.Assertion)
		if implied {
			marker = gv.styles.Success.Render("✓ ")
			text = gv.styles.Assertion.Render(a.Assertion)
		}
		sb.WriteString("  " + marker + text + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// renderFooter shows keybindings plus any status message.
func (gv *graphView) renderFooter(st *State, width int) string {
	bindings := "j/k step · 0-9 jump · u unwind · s storage · p path · n/N cycle · f functions · d dot · ? help · q quit"
	footer := gv.styles.Footer.Width(width).Render(bindings)

	if st.StatusMessage != "" {
		style := gv.styles.Muted
		if st.StatusIsError {
			style = gv.styles.Error
		}
		return style.Render(st.StatusMessage) + "\n" + footer
	}
	return footer
}

// ═══════════════════════════════════════════════════════════════════════════════
// FUNCTIONS VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// functionsView is the function picker.
type functionsView struct {
	styles *theme.Styles
}

// NewFunctionsView creates the function picker view.
func NewFunctionsView(styles *theme.Styles) View {
	return &functionsView{styles: styles}
}

// Name returns the view's name.
func (fv *functionsView) Name() string {
	return ViewFunctions
}

// Render renders the view with the given model state.
func (fv *functionsView) Render(st *State) string {
	width := st.WindowWidth
	if width < 40 {
		width = 80
	}

	header := fv.styles.Header.Width(width).Render("BORROWSCOPE │ Select function")
	footer := fv.styles.Footer.Width(width).Render("enter select · / filter · esc back · q quit")

	body := st.FnList.View()
	if len(st.Functions) == 0 {
		body = fv.styles.Muted.Render("No functions in the catalog.")
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

// ═══════════════════════════════════════════════════════════════════════════════
// DOT VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// dotView shows the auxiliary DOT dependency graph for the current point.
type dotView struct {
	styles *theme.Styles
}

// NewDotView creates the DOT graph view.
func NewDotView(styles *theme.Styles) View {
	return &dotView{styles: styles}
}

// Name returns the view's name.
func (dv *dotView) Name() string {
	return ViewDot
}

// Render renders the view with the given model state.
func (dv *dotView) Render(st *State) string {
	width := st.WindowWidth
	if width < 40 {
		width = 80
	}

	var node *mir.Node
	if st.Graph != nil {
		node, _ = st.Graph.NodeByBlock(st.Sel.Point.Block)
	}
	title := "BORROWSCOPE │ Dependency graph │ " + formatPoint(st.Sel.Point, node)
	header := dv.styles.Header.Width(width).Render(title)
	footer := dv.styles.Footer.Width(width).Render("↑/↓ scroll · esc back · q quit")

	body := st.DotView.View()
	if st.Dot == "" {
		body = dv.styles.Muted.Render("No dependency graph for this point.")
	}

	return strings.Join([]string{header, body, footer}, "\n")
}

// ═══════════════════════════════════════════════════════════════════════════════
// HELP VIEW
// ═══════════════════════════════════════════════════════════════════════════════

// helpView lists the key bindings.
type helpView struct {
	styles *theme.Styles
}

// NewHelpView creates the help view.
func NewHelpView(styles *theme.Styles) View {
	return &helpView{styles: styles}
}

// Name returns the view's name.
func (hv *helpView) Name() string {
	return ViewHelp
}

// Render renders the view with the given model state.
func (hv *helpView) Render(st *State) string {
	width := st.WindowWidth
	if width < 40 {
		width = 80
	}

	header := hv.styles.Header.Width(width).Render("BORROWSCOPE │ Help")
	footer := hv.styles.Footer.Width(width).Render("esc back")

	var sb strings.Builder
	for _, section := range DefaultKeyBindings() {
		sb.WriteString("\n" + hv.styles.Title.Render(section.Title) + "\n")
		for _, b := range section.Bindings {
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				hv.styles.KeyBinding.Render(fmt.Sprintf("%-10s", b.Key)),
				hv.styles.KeyLabel.Render(b.Description)))
		}
	}

	return strings.Join([]string{header, sb.String(), footer}, "\n")
}

// formatBorrow renders a borrow edge in the "blocked <- assigned" shape.
func formatBorrow(b overlay.Borrow) string {
	kind := "&"
	if b.IsMut {
		kind = "&mut"
	}
	out := fmt.Sprintf("%s %s blocks %s", kind, b.AssignedPlace.Place, b.BlockedPlace.Place)
	if len(b.Conditions) > 0 {
		out += " if " + strings.Join(b.Conditions, " && ")
	}
	return out
}

// clampScroll keeps the target line inside the window.
func clampScroll(scroll, target, total, height int) int {
	if total <= height {
		return 0
	}
	if target < scroll {
		scroll = target
	}
	if target >= scroll+height {
		scroll = target - height + 1
	}
	if scroll > total-height {
		scroll = total - height
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}
