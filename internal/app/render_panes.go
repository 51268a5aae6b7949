package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"

	"github.com/fuel-scm/fuel/internal/app/state"
	"github.com/fuel-scm/fuel/internal/fossil"
)

// renderBody renders the four panes, or only the zoomed one.
func (m *Model) renderBody(layout layoutDims) string {
	if zoomed := m.state.view.ZoomedPane; zoomed != state.NoZoom {
		return m.renderPane(layout, zoomed)
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(layout, state.PaneDirs),
		m.renderPane(layout, state.PaneStash),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(layout, state.PaneFiles),
		m.renderPane(layout, state.PaneLog),
	)
	gap := lipgloss.NewStyle().Width(layout.gapX).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}

// renderPane draws one bordered pane of the given layout.
func (m *Model) renderPane(layout layoutDims, p state.Pane) string {
	width, height := layout.paneSize(p)
	focused := m.state.view.FocusedPane == p
	style := m.paneStyle(focused)

	innerWidth := maxInt(1, width-style.GetHorizontalFrameSize())
	rows := maxInt(1, height-style.GetVerticalFrameSize()-1)

	var info string
	var lines []string
	switch p {
	case state.PaneDirs:
		lines = m.renderDirRows(innerWidth, rows, focused)
	case state.PaneFiles:
		info = m.filesInfo()
		lines = m.renderFileRows(innerWidth, rows, focused)
	case state.PaneStash:
		if n := len(m.data.stashes); n > 0 {
			info = fmt.Sprintf("(%d)", n)
		}
		lines = m.renderStashRows(innerWidth, rows, focused)
	case state.PaneLog:
		lines = m.renderLogRows(innerWidth, rows)
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, innerWidth, "…")
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPaneTitle(p, info, focused, innerWidth),
		strings.Join(lines, "\n"),
	)
	// Width and Height exclude the border in lipgloss.
	return style.
		Width(maxInt(1, width-style.GetHorizontalBorderSize())).
		Height(maxInt(1, height-style.GetVerticalBorderSize())).
		MaxHeight(height).
		Render(content)
}

func (m *Model) filesInfo() string {
	if len(m.data.marked) > 0 {
		return fmt.Sprintf("(%d/%d, %d marked)", len(m.data.visible), m.data.ws.Len(), len(m.data.marked))
	}
	if !m.data.scanned {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", len(m.data.visible), m.data.ws.Len())
}

// scrollWindow keeps cursor inside [offset, offset+rows) and returns the
// adjusted offset.
func scrollWindow(cursor, offset, rows, total int) int {
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+rows {
		offset = cursor - rows + 1
	}
	if offset > total-rows {
		offset = total - rows
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m *Model) selectedRowStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Background(m.theme.Accent).Foreground(m.theme.AccentFg).Bold(true)
	}
	return lipgloss.NewStyle().Background(m.theme.BorderDim).Foreground(m.theme.TextFg)
}

func (m *Model) placeholderRow(text string) []string {
	return []string{lipgloss.NewStyle().Foreground(m.theme.MutedFg).Italic(true).Render(text)}
}

func (m *Model) renderDirRows(width, rows int, focused bool) []string {
	tree := m.data.tree
	if len(tree.Flat) == 0 {
		return m.placeholderRow("No directories.")
	}
	m.data.dirOffset = scrollWindow(tree.Index, m.data.dirOffset, rows, len(tree.Flat))

	selected := m.selectedRowStyle(focused)
	end := min(m.data.dirOffset+rows, len(tree.Flat))
	out := make([]string, 0, end-m.data.dirOffset)
	for i := m.data.dirOffset; i < end; i++ {
		node := tree.Flat[i]
		marker := "  "
		if len(node.Children) > 0 {
			marker = "▾ "
			if tree.Collapsed[node.Path] {
				marker = "▸ "
			}
		}
		icon := ""
		if m.config.ShowIcons {
			icon = iconWithSpace(deviconForName(node.Name(), true))
		}
		row := strings.Repeat("  ", node.Depth) + marker + icon + node.Name()
		if i == tree.Index {
			row = selected.Width(width).Render(ansi.Truncate(row, width, "…"))
		}
		out = append(out, row)
	}
	return out
}

func (m *Model) renderFileRows(width, rows int, focused bool) []string {
	switch {
	case !m.data.statusKnown:
		return m.placeholderRow("Checking workspace...")
	case m.data.repoStatus != fossil.RepoOK:
		return m.placeholderRow("Not a fossil workspace. o: recent workspaces, O: open directory")
	case !m.data.scanned:
		return m.placeholderRow("Scanning...")
	case len(m.data.visible) == 0:
		if m.data.filterQuery != "" {
			return m.placeholderRow("No files match the filter.")
		}
		return m.placeholderRow("No files to show.")
	}

	total := len(m.data.visible)
	m.data.fileOffset = scrollWindow(m.data.fileCursor, m.data.fileOffset, rows, total)

	selected := m.selectedRowStyle(focused)
	markStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	highlight := lipgloss.NewStyle().Foreground(m.theme.Yellow).Bold(true)

	end := min(m.data.fileOffset+rows, total)
	out := make([]string, 0, end-m.data.fileOffset)
	for i := m.data.fileOffset; i < end; i++ {
		match := m.data.visible[i]
		f := match.File

		mark := "  "
		if m.data.marked[f.FilePath()] {
			mark = markStyle.Render("● ")
		}
		typ := f.Type()
		symbol := lipgloss.NewStyle().Foreground(m.theme.Status(typ.String())).Render(typ.Symbol())

		name := f.Filename()
		if m.data.filters.AsList {
			name = f.FilePath()
		}
		icon := ""
		if m.config.ShowIcons {
			icon = iconWithSpace(deviconForName(f.Filename(), false))
		}

		if i == m.data.fileCursor {
			row := fmt.Sprintf("%s%s %s%s", mark, typ.Symbol(), icon, name)
			out = append(out, selected.Width(width).Render(ansi.Truncate(ansi.Strip(row), width, "…")))
			continue
		}
		// Match indexes are rune positions in the relative path.
		shift := len([]rune(f.FilePath())) - len([]rune(name))
		name = highlightRunes(name, match.Indexes, shift, highlight)
		out = append(out, fmt.Sprintf("%s%s %s%s", mark, symbol, icon, name))
	}
	return out
}

// highlightRunes styles the runes of s at positions idx-shift.
func highlightRunes(s string, indexes []int, shift int, style lipgloss.Style) string {
	if len(indexes) == 0 {
		return s
	}
	hit := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		hit[i-shift] = true
	}
	var b strings.Builder
	for i, r := range []rune(s) {
		if hit[i] {
			b.WriteString(style.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m *Model) renderStashRows(width, rows int, focused bool) []string {
	if len(m.data.stashes) == 0 {
		return m.placeholderRow("No stashes.")
	}
	total := len(m.data.stashes)
	m.data.stashOffset = scrollWindow(m.data.stashCursor, m.data.stashOffset, rows, total)

	selected := m.selectedRowStyle(focused)
	idStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	end := min(m.data.stashOffset+rows, total)
	out := make([]string, 0, end-m.data.stashOffset)
	for i := m.data.stashOffset; i < end; i++ {
		st := m.data.stashes[i]
		if i == m.data.stashCursor {
			row := fmt.Sprintf("%3s  %s", st.ID, st.Name)
			out = append(out, selected.Width(width).Render(ansi.Truncate(row, width, "…")))
			continue
		}
		out = append(out, fmt.Sprintf("%s  %s", idStyle.Render(fmt.Sprintf("%3s", st.ID)), st.Name))
	}
	return out
}

// renderLogRows shows the tail of the log, logOffset lines up from the end.
func (m *Model) renderLogRows(width, rows int) []string {
	end := len(m.data.logLines) - m.data.logOffset
	if end <= 0 {
		return m.placeholderRow("No output yet.")
	}

	var wrapped []string
	// Only wrap what can be shown.
	for i := end - 1; i >= 0 && len(wrapped) < rows; i-- {
		parts := strings.Split(wrap.String(m.data.logLines[i], width), "\n")
		wrapped = append(parts, wrapped...)
	}
	if len(wrapped) > rows {
		wrapped = wrapped[len(wrapped)-rows:]
	}
	return wrapped
}
