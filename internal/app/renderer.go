package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/fuel-scm/fuel/internal/app/screen"
)

// View renders the main window and any screen on top of it.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Wait for window size before rendering full UI
	if m.state.view.WindowWidth == 0 || m.state.view.WindowHeight == 0 {
		return "Loading..."
	}

	layout := m.computeLayout()

	header := m.renderHeader(layout)
	footer := m.renderFooter(layout)
	body := truncateToHeight(m.renderBody(layout), layout.bodyHeight)

	sections := []string{header}
	if layout.filterHeight > 0 {
		sections = append(sections, m.renderFilter(layout))
	}
	sections = append(sections, body, footer)

	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if !m.state.ui.screenManager.IsActive() {
		return baseView
	}
	scr := m.state.ui.screenManager.Current()
	switch scr.Type() {
	case screen.TypeOutput, screen.TypeCommit, screen.TypeHelp:
		return m.overlayPopup(baseView, scr.View(), 1)
	case screen.TypeListSelect:
		return m.overlayPopup(baseView, scr.View(), 2)
	default:
		return m.overlayPopup(baseView, scr.View(), 3)
	}
}

// overlayPopup overlays a popup on top of the base view, keeping the parts
// of the base lines outside the popup so pane borders stay visible.
func (m *Model) overlayPopup(base, popup string, marginTop int) string {
	if base == "" || popup == "" {
		return base
	}

	baseLines := strings.Split(base, "\n")
	popupLines := strings.Split(popup, "\n")

	baseWidth := lipgloss.Width(baseLines[0])
	popupWidth := lipgloss.Width(popupLines[0])
	leftPad := maxInt((baseWidth-popupWidth)/2, 0)

	// Pull the popup up when it would run past the bottom.
	if overflow := marginTop + len(popupLines) - len(baseLines); overflow > 0 {
		marginTop = maxInt(marginTop-overflow, 0)
	}

	for i, line := range popupLines {
		row := marginTop + i
		if row >= len(baseLines) {
			break
		}

		leftPart := ansi.Truncate(baseLines[row], leftPad, "")
		if w := lipgloss.Width(leftPart); w < leftPad {
			leftPart += strings.Repeat(" ", leftPad-w)
		}
		rightPart := ansi.TruncateLeft(baseLines[row], leftPad+popupWidth, "")

		newLine := leftPart + line + rightPart
		if w := lipgloss.Width(newLine); w < baseWidth {
			newLine += strings.Repeat(" ", baseWidth-w)
		}
		baseLines[row] = newLine
	}

	return strings.Join(baseLines, "\n")
}

// truncateToHeight ensures output doesn't exceed maxLines.
func truncateToHeight(s string, maxLines int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}
