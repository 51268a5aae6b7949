package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/app/state"
)

// layoutDims holds computed layout dimensions for the UI.
type layoutDims struct {
	width        int
	height       int
	headerHeight int
	footerHeight int
	filterHeight int
	bodyHeight   int
	gapX         int
	gapY         int

	leftWidth   int
	rightWidth  int
	dirsHeight  int
	stashHeight int
	filesHeight int
	logHeight   int
}

// setWindowSize updates the window dimensions.
func (m *Model) setWindowSize(width, height int) {
	m.state.view.WindowWidth = width
	m.state.view.WindowHeight = height
	if scr, ok := m.state.ui.screenManager.Current().(interface{ SetSize(int, int) }); ok {
		scr.SetSize(width, height)
	}
}

// computeLayout calculates the pane sizes. The directory and stash panes
// share the left column; files and log share the right one.
func (m *Model) computeLayout() layoutDims {
	width := m.state.view.WindowWidth
	height := m.state.view.WindowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}

	headerHeight := 1
	footerHeight := 1
	filterHeight := 0
	if m.state.view.ShowingFilter {
		filterHeight = 1
	}
	bodyHeight := maxInt(height-headerHeight-footerHeight-filterHeight, 8)

	l := layoutDims{
		width:        width,
		height:       height,
		headerHeight: headerHeight,
		footerHeight: footerHeight,
		filterHeight: filterHeight,
		bodyHeight:   bodyHeight,
	}

	// Zoom mode: the zoomed pane gets the full body area.
	if zoomed := m.state.view.ZoomedPane; zoomed != state.NoZoom {
		l.leftWidth = width
		l.rightWidth = width
		switch zoomed {
		case state.PaneDirs:
			l.dirsHeight = bodyHeight
		case state.PaneStash:
			l.stashHeight = bodyHeight
		case state.PaneFiles:
			l.filesHeight = bodyHeight
		case state.PaneLog:
			l.logHeight = bodyHeight
		}
		return l
	}

	l.gapX = 1
	l.gapY = 0

	leftRatio := 0.28
	if m.state.view.FocusedPane == state.PaneDirs || m.state.view.FocusedPane == state.PaneStash {
		leftRatio = 0.36
	}
	l.leftWidth = int(float64(width-l.gapX) * leftRatio)
	if l.leftWidth < minLeftPaneWidth {
		l.leftWidth = minLeftPaneWidth
	}
	l.rightWidth = width - l.leftWidth - l.gapX
	if l.rightWidth < minRightPaneWidth {
		l.rightWidth = minRightPaneWidth
		l.leftWidth = maxInt(width-l.rightWidth-l.gapX, 0)
	}

	dirsRatio := 0.70
	if m.state.view.FocusedPane == state.PaneStash {
		dirsRatio = 0.45
	}
	l.dirsHeight = maxInt(int(float64(bodyHeight)*dirsRatio), 4)
	l.stashHeight = bodyHeight - l.dirsHeight
	if l.stashHeight < 4 {
		l.stashHeight = 4
		l.dirsHeight = bodyHeight - l.stashHeight
	}

	filesRatio := 0.70
	switch m.state.view.FocusedPane {
	case state.PaneFiles:
		filesRatio = 0.78
	case state.PaneLog:
		filesRatio = 0.40
	}
	l.filesHeight = maxInt(int(float64(bodyHeight)*filesRatio), 4)
	l.logHeight = bodyHeight - l.filesHeight
	if l.logHeight < 4 {
		l.logHeight = 4
		l.filesHeight = bodyHeight - l.logHeight
	}
	return l
}

// paneSize returns the outer size of a pane in the current layout.
func (l layoutDims) paneSize(p state.Pane) (int, int) {
	switch p {
	case state.PaneDirs:
		return l.leftWidth, l.dirsHeight
	case state.PaneStash:
		return l.leftWidth, l.stashHeight
	case state.PaneFiles:
		return l.rightWidth, l.filesHeight
	default:
		return l.rightWidth, l.logHeight
	}
}

// paneHeight returns the number of list rows a pane can show.
func (m *Model) paneHeight(p state.Pane) int {
	_, h := m.computeLayout().paneSize(p)
	// Frame plus the title row.
	return maxInt(1, h-m.basePaneStyle().GetVerticalFrameSize()-1)
}

func (m *Model) basePaneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderDim).
		Padding(0, 1)
}

func (m *Model) paneStyle(focused bool) lipgloss.Style {
	style := m.basePaneStyle()
	if focused {
		return style.BorderForeground(m.theme.Accent)
	}
	return style
}
