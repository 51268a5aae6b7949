package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/app/state"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.state.ui.screenManager.IsActive() {
			return m, m.state.ui.screenManager.Update(msg)
		}
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.spinner, cmd = m.ui.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.appendLog(msg.lines...)
		return m, m.services.ui.waitForLog()

	case queryMsg:
		m.showQuery(msg.req)
		return m, m.services.ui.waitForQuery()

	case opDoneMsg:
		return m.handleOpDone(msg)

	case repoStatusMsg:
		return m.handleRepoStatus(msg)

	case recheckMsg:
		return m, m.checkWorkspace()

	case scanDoneMsg:
		m.applyScan(msg)
		return m, nil

	case previewMsg:
		m.showPreview(msg)
		return m, nil

	case outputMsg:
		m.showOutput(msg.title, msg.lines)
		return m, nil

	case watchEventMsg:
		return m.handleWatchEvent(msg)

	case editorDoneMsg:
		if msg.err != nil {
			m.showError(msg.err)
		}
		return m, m.refresh()

	case statusMsg:
		m.statusLine = msg.text
		return m, nil

	case errMsg:
		m.showError(msg.err)
		return m, nil
	}
	return m, nil
}

// handleKeyMsg processes keyboard input when not in a modal screen.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.view.ShowingFilter {
		return m.handleFilterInput(msg)
	}
	return m.handleBuiltInKey(msg)
}

func (m *Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keyStr == keyEnter:
		m.state.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		return m, nil
	case isEscKey(keyStr) || keyStr == keyCtrlC:
		m.state.view.ShowingFilter = false
		m.ui.filterInput.Blur()
		m.ui.filterInput.SetValue("")
		m.data.filterQuery = ""
		m.updateVisible()
		return m, nil
	case keyStr == keyUp || keyStr == keyCtrlK:
		m.moveFileCursor(-1)
		return m, nil
	case keyStr == keyDown || keyStr == keyCtrlJ:
		m.moveFileCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.ui.filterInput, cmd = m.ui.filterInput.Update(msg)
	if q := m.ui.filterInput.Value(); q != m.data.filterQuery {
		m.data.filterQuery = q
		m.data.fileCursor = 0
		m.updateVisible()
	}
	return m, cmd
}

// handlePaneKey handles keys bound to the focused pane before the
// global bindings.
func (m *Model) handlePaneKey(keyStr string) (tea.Cmd, bool) {
	switch m.state.view.FocusedPane {
	case state.PaneDirs:
		if keyStr == keyEnter {
			if node := m.data.tree.SelectedPath(); node != "" {
				m.data.tree.ToggleCollapse(node)
				m.updateVisible()
			}
			return nil, true
		}
	case state.PaneFiles:
		if keyStr == keyEnter {
			return m.registry.Execute("diff"), true
		}
	case state.PaneStash:
		switch keyStr {
		case keyEnter:
			return m.registry.Execute("stash-apply"), true
		case "x":
			return m.registry.Execute("stash-drop"), true
		case "d":
			return m.registry.Execute("stash-diff"), true
		}
	}
	return nil, false
}

// shortcuts maps global keys to registry actions.
var shortcuts = map[string]string{
	"f5": "refresh",
	"r":  "refresh",
	"d":  "diff",
	"a":  "add",
	"D":  "remove",
	"R":  "revert",
	"m":  "rename",
	"c":  "commit",
	"e":  "edit",
	"y":  "copy-path",
	"h":  "history",
	" ":  "mark",
	"u":  "undo",
	"U":  "update",
	"P":  "push",
	"p":  "pull",
	"t":  "timeline",
	"w":  "web-ui",
	"o":  "recent",
	"O":  "open-dir",
	"s":  "stash-new",
	"n":  "view-unknown",
	"M":  "view-modified",
	"C":  "view-unchanged",
	"i":  "view-ignored",
	"v":  "view-list",
	"L":  "clear-log",
	"/":  "filter",
	"=":  "zoom",
	"1":  "focus-dirs",
	"2":  "focus-files",
	"3":  "focus-stash",
	"4":  "focus-log",
	"?":  "help",
}

func (m *Model) handleBuiltInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keyStr == keyCtrlC || keyStr == "q":
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case isEscKey(keyStr):
		switch {
		case m.busy:
			m.abortOp()
		case m.data.filterQuery != "":
			m.data.filterQuery = ""
			m.ui.filterInput.SetValue("")
			m.updateVisible()
		case len(m.data.marked) > 0:
			m.clearMarks()
		case m.state.view.ZoomedPane != state.NoZoom:
			m.state.view.ZoomedPane = state.NoZoom
		}
		return m, nil
	case keyStr == keyTab:
		m.state.view.FocusedPane = m.state.view.FocusedPane.Next()
		return m, m.followZoom()
	case keyStr == "shift+tab":
		m.state.view.FocusedPane = m.state.view.FocusedPane.Prev()
		return m, m.followZoom()
	case keyStr == "ctrl+p":
		return m, m.showPalette()
	}

	if m.handleNavigationKey(keyStr) {
		return m, nil
	}
	if cmd, ok := m.handlePaneKey(keyStr); ok {
		return m, cmd
	}
	if id, ok := shortcuts[keyStr]; ok {
		return m, m.registry.Execute(id)
	}
	return m, nil
}

func (m *Model) followZoom() tea.Cmd {
	if m.state.view.ZoomedPane != state.NoZoom {
		m.state.view.ZoomedPane = m.state.view.FocusedPane
	}
	return nil
}

// handleNavigationKey moves the cursor of the focused pane.
func (m *Model) handleNavigationKey(keyStr string) bool {
	delta := 0
	page := maxInt(1, m.paneHeight(m.state.view.FocusedPane)-1)
	switch keyStr {
	case "j", keyDown:
		delta = 1
	case "k", keyUp:
		delta = -1
	case "pgdown", "ctrl+f":
		delta = page
	case "pgup", "ctrl+b":
		delta = -page
	case "g", "home":
		delta = -1 << 20
	case "G", "end":
		delta = 1 << 20
	default:
		return false
	}

	switch m.state.view.FocusedPane {
	case state.PaneDirs:
		m.moveDirCursor(delta)
	case state.PaneFiles:
		m.moveFileCursor(delta)
	case state.PaneStash:
		m.moveStashCursor(delta)
	case state.PaneLog:
		// The log is shown newest last; moving down means newer lines.
		m.scrollLog(-delta)
	}
	return true
}
