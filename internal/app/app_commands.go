package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/app/commands"
	"github.com/fuel-scm/fuel/internal/app/state"
	"github.com/fuel-scm/fuel/internal/fossil"
)

// registerCommands wires every action of the main window into the
// registry used by the key handler, the palette and the help screen.
func (m *Model) registerCommands() {
	r := m.registry
	workspaceOK := func() bool {
		return m.data.statusKnown && m.data.repoStatus == fossil.RepoOK
	}

	commands.RegisterFileActions(r, commands.FileHandlers{
		Diff:          m.showDiff,
		GraphicalDiff: m.showGraphicalDiff,
		Add:           m.addFiles,
		Remove:        m.removeFiles,
		Revert:        m.revertFiles,
		Rename:        m.renameFile,
		Commit:        m.commitFiles,
		Edit:          m.editFile,
		CopyPath:      m.copyPath,
		History:       m.openFileHistory,
		Mark: func() tea.Cmd {
			m.toggleMark()
			return nil
		},
	})
	commands.RegisterRepositoryActions(r, commands.RepositoryHandlers{
		Refresh:     m.refresh,
		Update:      m.previewUpdate,
		Undo:        m.previewUndo,
		Push:        m.push,
		Pull:        m.pull,
		Timeline:    m.openTimeline,
		WebUI:       m.toggleWebUI,
		Recent:      m.showRecentWorkspaces,
		OpenDir:     m.promptOpenDir,
		NewRepo:     m.promptNewRepository,
		OpenRepo:    m.promptOpenRepository,
		CloneRepo:   m.promptCloneRepository,
		CloseRepo:   m.closeRepository,
		WorkspaceOK: workspaceOK,
	})
	commands.RegisterStashActions(r, commands.StashHandlers{
		New:   m.newStash,
		Apply: m.applyStash,
		Drop:  m.dropStash,
		Diff:  m.diffStash,
	})
	commands.RegisterViewActions(r, commands.ViewHandlers{
		ToggleUnknown:   m.toggleFilter(func(f *state.Filters) { f.Unknown = !f.Unknown }),
		ToggleModified:  m.toggleFilter(func(f *state.Filters) { f.Modified = !f.Modified }),
		ToggleUnchanged: m.toggleFilter(func(f *state.Filters) { f.Unchanged = !f.Unchanged }),
		ToggleIgnored:   m.toggleFilter(func(f *state.Filters) { f.Ignored = !f.Ignored }),
		ToggleList:      m.toggleListMode,
		ClearLog: func() tea.Cmd {
			m.data.logLines = nil
			m.data.logOffset = 0
			return nil
		},
	})
	commands.RegisterNavigationActions(r, commands.NavigationHandlers{
		Filter:    m.startFilter,
		Zoom:      m.toggleZoom,
		FocusDirs: m.focusPane(state.PaneDirs),
		FocusFile: m.focusPane(state.PaneFiles),
		FocusStsh: m.focusPane(state.PaneStash),
		FocusLog:  m.focusPane(state.PaneLog),
	})
	commands.RegisterSettingsActions(r, commands.SettingsHandlers{
		Theme: m.showThemeSelect,
		Help:  m.showHelp,
	})
}

// toggleFilter flips a scan toggle, saves it and rescans.
func (m *Model) toggleFilter(flip func(*state.Filters)) func() tea.Cmd {
	return func() tea.Cmd {
		flip(&m.data.filters)
		m.data.filters.Store(m.config)
		m.persistConfig()
		cmd := m.refresh()
		m.statusLine = "Showing " + m.data.filters.Summary()
		return cmd
	}
}

// toggleListMode only changes how files are shown; no rescan is needed.
func (m *Model) toggleListMode() tea.Cmd {
	m.data.filters.AsList = !m.data.filters.AsList
	m.data.filters.Store(m.config)
	m.persistConfig()
	m.data.fileCursor = 0
	m.updateVisible()
	return nil
}

func (m *Model) focusPane(p state.Pane) func() tea.Cmd {
	return func() tea.Cmd {
		m.state.view.FocusedPane = p
		if m.state.view.ZoomedPane != state.NoZoom {
			m.state.view.ZoomedPane = p
		}
		return nil
	}
}

func (m *Model) toggleZoom() tea.Cmd {
	if m.state.view.ZoomedPane == state.NoZoom {
		m.state.view.ZoomedPane = m.state.view.FocusedPane
	} else {
		m.state.view.ZoomedPane = state.NoZoom
	}
	return nil
}

func (m *Model) startFilter() tea.Cmd {
	m.state.view.ShowingFilter = true
	m.state.view.FocusedPane = state.PaneFiles
	m.ui.filterInput.SetValue(m.data.filterQuery)
	m.ui.filterInput.CursorEnd()
	return m.ui.filterInput.Focus()
}
