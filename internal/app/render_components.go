package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fuel-scm/fuel/internal/app/state"
)

// renderHeader renders the title bar: project, workspace and view filters.
func (m *Model) renderHeader(layout layoutDims) string {
	headerStyle := lipgloss.NewStyle().
		Background(m.theme.AccentDim).
		Foreground(m.theme.TextFg).
		Bold(true).
		Width(layout.width).
		Padding(0, 2).Align(lipgloss.Center)

	content := "Fuel"
	if name := m.services.bridge.ProjectName(); name != "" {
		content = fmt.Sprintf("%s  •  %s", content, name)
	}
	content = fmt.Sprintf("%s  •  %s", content, m.displayWorkspace())
	if m.data.statusKnown && m.data.scanned {
		content = fmt.Sprintf("%s  •  %s", content, m.data.filters.Summary())
	}
	if m.services.bridge.UIRunning() {
		content += "  •  web ui"
	}
	content = ansi.Truncate(content, maxInt(1, layout.width-headerStyle.GetHorizontalPadding()), "…")
	return headerStyle.Render(content)
}

// displayWorkspace shortens the workspace path with ~ for the home directory.
func (m *Model) displayWorkspace() string {
	dir := m.Workspace()
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if rel, err := filepath.Rel(home, dir); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join("~", rel)
	}
	return dir
}

// renderFilter renders the file filter input bar.
func (m *Model) renderFilter(layout layoutDims) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	filterStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Padding(0, 1)
	line := fmt.Sprintf("%s %s", labelStyle.Render("Filter"), m.ui.filterInput.View())
	return filterStyle.Width(layout.width).Render(line)
}

// renderFooter renders the footer: key hints for the focused pane, or the
// progress of the running fossil command.
func (m *Model) renderFooter(layout layoutDims) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextFg).
		Background(m.theme.BorderDim).
		Padding(0, 1)

	if m.busy {
		label := m.busyLabel
		if status := m.services.ui.Status(); status != "" {
			label = status
		}
		content := fmt.Sprintf("%s %s  %s", m.ui.spinner.View(), label, m.renderKeyHint("Esc", "Abort"))
		return footerStyle.Width(layout.width).Render(content)
	}

	var hints []string
	switch m.state.view.FocusedPane {
	case state.PaneDirs:
		hints = []string{
			m.renderKeyHint("j/k", "Navigate"),
			m.renderKeyHint("Enter", "Expand"),
			m.renderKeyHint("c", "Commit"),
			m.renderKeyHint("a", "Add"),
		}
	case state.PaneStash:
		hints = []string{
			m.renderKeyHint("Enter", "Apply"),
			m.renderKeyHint("x", "Drop"),
			m.renderKeyHint("d", "Diff"),
			m.renderKeyHint("s", "Stash"),
		}
	case state.PaneLog:
		hints = []string{
			m.renderKeyHint("j/k", "Scroll"),
			m.renderKeyHint("L", "Clear"),
		}
	default:
		hints = []string{
			m.renderKeyHint("Space", "Mark"),
			m.renderKeyHint("d", "Diff"),
			m.renderKeyHint("a", "Add"),
			m.renderKeyHint("c", "Commit"),
			m.renderKeyHint("/", "Filter"),
		}
	}
	hints = append(hints,
		m.renderKeyHint("r", "Refresh"),
		m.renderKeyHint("q", "Quit"),
		m.renderKeyHint("?", "Help"),
		m.renderKeyHint("ctrl+p", "Palette"),
	)

	content := strings.Join(hints, "  ")
	if m.statusLine != "" {
		status := lipgloss.NewStyle().Foreground(m.theme.WarnFg).Render(m.statusLine)
		content = status + "  " + content
	}
	return footerStyle.Width(layout.width).MaxHeight(1).Render(content)
}

// renderKeyHint renders a single key hint.
func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.Accent)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

// renderPaneTitle renders a pane title with focus and zoom indicators.
func (m *Model) renderPaneTitle(p state.Pane, info string, focused bool, width int) string {
	numStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	if focused {
		numStyle = numStyle.Foreground(m.theme.Accent).Bold(true)
		titleStyle = titleStyle.Foreground(m.theme.TextFg).Bold(true)
	}
	title := fmt.Sprintf("%s %s", numStyle.Render(fmt.Sprintf("[%d]", paneKey(p))), titleStyle.Render(p.String()))
	if info != "" {
		title += " " + lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render(info)
	}

	if p == state.PaneFiles && !m.state.view.ShowingFilter && m.data.filterQuery != "" {
		filtered := lipgloss.NewStyle().Foreground(m.theme.WarnFg).Italic(true)
		title += " " + filtered.Render(fmt.Sprintf("filtered: %q", m.data.filterQuery))
	}
	if m.state.view.ZoomedPane == p {
		zoomed := lipgloss.NewStyle().Foreground(m.theme.Accent).Italic(true)
		title += " " + zoomed.Render("Zoomed") + " " + m.renderKeyHint("=", "Unzoom")
	}
	return lipgloss.NewStyle().Width(width).MaxHeight(1).Render(title)
}

// paneKey returns the number key that focuses p.
func paneKey(p state.Pane) int {
	switch p {
	case state.PaneDirs:
		return 1
	case state.PaneFiles:
		return 2
	case state.PaneStash:
		return 3
	default:
		return 4
	}
}
