package app

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appscreen "github.com/fuel-scm/fuel/internal/app/screen"
	"github.com/fuel-scm/fuel/internal/app/state"
	"github.com/fuel-scm/fuel/internal/fossil"
)

func TestNewModelDefaults(t *testing.T) {
	m, ws := newTestModel(t, true)

	assert.Equal(t, ws.dir, m.Workspace())
	assert.Equal(t, state.PaneFiles, m.state.view.FocusedPane)
	assert.Equal(t, state.NoZoom, m.state.view.ZoomedPane)
	assert.False(t, m.data.statusKnown)
	assert.True(t, m.data.filters.Modified)
	assert.Nil(t, m.registry.Execute("commit"), "workspace actions need a checked workspace")
}

func TestOpenWorkspaceScansFiles(t *testing.T) {
	m, ws := openTestModel(t)

	assert.Equal(t, fossil.RepoOK, m.data.repoStatus)
	assert.Equal(t, "*.o", m.data.ignoreGlob)
	assert.Equal(t, "Demo", m.services.bridge.ProjectName())
	assert.Equal(t, []string{"b.txt", "new.txt"}, visiblePaths(m))
	require.Len(t, m.data.stashes, 1)
	assert.Equal(t, "first", m.data.stashes[0].Name)
	assert.Contains(t, m.config.RecentWorkspaces, ws.dir)
	assert.True(t, ws.called(t, "ls -l"))
	assert.False(t, m.busy)
}

func TestNotAWorkspacePromptsForRepository(t *testing.T) {
	m, _ := newTestModel(t, false)
	drive(t, m, m.checkWorkspace())

	assert.True(t, m.data.statusKnown)
	assert.Equal(t, fossil.RepoNotFound, m.data.repoStatus)
	scr, ok := m.state.ui.screenManager.Current().(*appscreen.ChoiceScreen)
	require.True(t, ok, "expected a choice screen")
	assert.Equal(t, []string{"Open repository", "New repository", "Clone repository", "Cancel"}, scr.Choices)

	m.state.ui.screenManager.Clear()
	assert.Contains(t, m.View(), "Not a fossil workspace")
}

func TestDirectorySelectionAndListMode(t *testing.T) {
	m, _ := openTestModel(t)

	sendKey(t, m, "1")
	assert.Equal(t, state.PaneDirs, m.state.view.FocusedPane)
	sendKey(t, m, "j")
	assert.Equal(t, "src", m.data.tree.SelectedPath())
	assert.Equal(t, []string{"src/a.c"}, visiblePaths(m))

	sendKey(t, m, "g")
	sendKey(t, m, "v")
	assert.True(t, m.data.filters.AsList)
	assert.True(t, m.config.ViewAsList)
	assert.Equal(t, []string{"b.txt", "new.txt", "src/a.c"}, visiblePaths(m))
}

func TestFilterNarrowsFiles(t *testing.T) {
	m, _ := openTestModel(t)
	sendKey(t, m, "v")

	sendKey(t, m, "/")
	require.True(t, m.state.view.ShowingFilter)
	for _, r := range "ac" {
		sendKey(t, m, string(r))
	}
	assert.Equal(t, "ac", m.data.filterQuery)
	assert.Equal(t, []string{"src/a.c"}, visiblePaths(m))

	sendKey(t, m, "enter")
	assert.False(t, m.state.view.ShowingFilter)
	assert.Equal(t, "ac", m.data.filterQuery, "enter keeps the filter")

	sendKey(t, m, "esc")
	assert.Empty(t, m.data.filterQuery)
	assert.Len(t, m.data.visible, 3)
}

func TestMarkSelectsFiles(t *testing.T) {
	m, _ := openTestModel(t)
	sendKey(t, m, "v")

	sendKey(t, m, " ")
	assert.Equal(t, 1, m.data.fileCursor, "marking moves down")
	sendKey(t, m, "j")
	sendKey(t, m, " ")
	assert.Equal(t, map[string]bool{"b.txt": true, "src/a.c": true}, m.data.marked)

	got := filePaths(m.selectedFiles(0xff))
	assert.Equal(t, []string{"b.txt", "src/a.c"}, got)

	sendKey(t, m, "esc")
	assert.Empty(t, m.data.marked)
}

func TestAddRunsFossilAndRescans(t *testing.T) {
	m, ws := openTestModel(t)
	sendKey(t, m, "j")
	require.Equal(t, "new.txt", m.currentFile().FilePath())

	sendKey(t, m, "a")
	assert.True(t, ws.called(t, "add new.txt"))

	calls := ws.calls(t)
	assert.Equal(t, "stash ls", calls[len(calls)-1], "add is followed by a rescan")
	assert.False(t, m.busy)
}

func TestAddWithoutUnknownFilesShowsInfo(t *testing.T) {
	m, ws := openTestModel(t)
	require.Equal(t, "b.txt", m.currentFile().FilePath())

	sendKey(t, m, "a")
	scr, ok := m.state.ui.screenManager.Current().(*appscreen.InfoScreen)
	require.True(t, ok)
	assert.Contains(t, scr.Message, "No unknown files selected")
	assert.False(t, ws.called(t, "add b.txt"))
}

func TestRevertNeedsConfirmation(t *testing.T) {
	m, ws := openTestModel(t)
	sendKey(t, m, "v")
	sendKey(t, m, "G")
	require.Equal(t, "src/a.c", m.currentFile().FilePath())

	sendKey(t, m, "R")
	require.Equal(t, appscreen.TypeConfirm, m.state.ui.screenManager.Type())
	sendKey(t, m, "n")
	assert.False(t, ws.called(t, "revert src/a.c"))

	sendKey(t, m, "R")
	sendKey(t, m, "y")
	assert.True(t, ws.called(t, "revert src/a.c"))
	assert.False(t, m.state.ui.screenManager.IsActive())
}

func TestDiffShowsOutput(t *testing.T) {
	m, _ := openTestModel(t)
	sendKey(t, m, "v")
	sendKey(t, m, "G")

	sendKey(t, m, "enter")
	scr, ok := m.state.ui.screenManager.Current().(*appscreen.OutputScreen)
	require.True(t, ok, "expected diff output")
	assert.Contains(t, scr.View(), "src/a.c")
}

func TestUpdatePreviewAppliesOnConfirm(t *testing.T) {
	m, ws := openTestModel(t)

	sendKey(t, m, "U")
	assert.True(t, ws.called(t, "update --dry-run"))
	require.Equal(t, appscreen.TypeOutput, m.state.ui.screenManager.Type())

	sendKey(t, m, "y")
	assert.True(t, ws.called(t, "update"))
}

func TestUndoWithoutChanges(t *testing.T) {
	m, ws := openTestModel(t)

	sendKey(t, m, "u")
	assert.True(t, ws.called(t, "undo --dry-run"))
	scr, ok := m.state.ui.screenManager.Current().(*appscreen.InfoScreen)
	require.True(t, ok)
	assert.Contains(t, scr.Message, "nothing to do")
	assert.False(t, ws.called(t, "undo"))
}

func TestPushSetsStatus(t *testing.T) {
	m, ws := openTestModel(t)
	sendKey(t, m, "P")
	assert.True(t, ws.called(t, "push"))
	assert.Equal(t, "Push complete", m.statusLine)
}

func TestStashPaneActions(t *testing.T) {
	m, ws := openTestModel(t)
	sendKey(t, m, "3")
	require.Equal(t, state.PaneStash, m.state.view.FocusedPane)

	sendKey(t, m, "d")
	require.Equal(t, appscreen.TypeOutput, m.state.ui.screenManager.Type())
	assert.True(t, ws.called(t, "stash diff 1"))
	sendKey(t, m, "q")

	sendKey(t, m, "enter")
	assert.True(t, ws.called(t, "stash apply 1"))

	sendKey(t, m, "x")
	require.Equal(t, appscreen.TypeConfirm, m.state.ui.screenManager.Type())
	sendKey(t, m, "y")
	assert.True(t, ws.called(t, "stash drop 1"))
}

func TestNewStashRejectsDuplicateName(t *testing.T) {
	m, _ := openTestModel(t)
	sendKey(t, m, "s")
	scr, ok := m.state.ui.screenManager.Current().(*appscreen.InputScreen)
	require.True(t, ok)

	scr.Input.SetValue("first")
	sendKey(t, m, "enter")
	assert.NotEmpty(t, scr.ErrorMsg)
	assert.Equal(t, appscreen.TypeInput, m.state.ui.screenManager.Type())
}

func TestToggleViewFiltersRescan(t *testing.T) {
	m, ws := openTestModel(t)

	sendKey(t, m, "n")
	assert.False(t, m.data.filters.Unknown)
	assert.False(t, m.config.ViewUnknown)
	assert.Equal(t, []string{"b.txt"}, visiblePaths(m))
	assert.Contains(t, m.statusLine, "Showing")

	calls := ws.calls(t)
	assert.Equal(t, "stash ls", calls[len(calls)-1])
}

func TestZoomAndFocus(t *testing.T) {
	m, _ := openTestModel(t)

	sendKey(t, m, "=")
	assert.Equal(t, state.PaneFiles, m.state.view.ZoomedPane)
	sendKey(t, m, "tab")
	assert.Equal(t, state.PaneStash, m.state.view.FocusedPane)
	assert.Equal(t, state.PaneStash, m.state.view.ZoomedPane, "zoom follows focus")
	assert.Contains(t, m.View(), "Zoomed")

	sendKey(t, m, "esc")
	assert.Equal(t, state.NoZoom, m.state.view.ZoomedPane)
}

func TestLogPaneCollectsFossilOutput(t *testing.T) {
	m, _ := openTestModel(t)

	m.services.ui.LogText("hello from fossil\n", false)
	lines := m.services.ui.drain()
	_, _ = m.Update(logLinesMsg{lines: lines})
	assert.Contains(t, m.data.logLines, "hello from fossil")

	sendKey(t, m, "L")
	assert.Empty(t, m.data.logLines)
}

func TestQueryIsAnsweredThroughChoiceScreen(t *testing.T) {
	m, _ := openTestModel(t)
	answers := []fossil.Answer{fossil.AnswerYes, fossil.AnswerNo, fossil.AnswerAll}
	req := &queryRequest{title: "fossil", query: "overwrite?", answers: answers, reply: make(chan fossil.Answer, 1)}

	m.Update(queryMsg{req: req})
	require.Equal(t, appscreen.TypeChoice, m.state.ui.screenManager.Type())
	sendKey(t, m, "esc")

	select {
	case got := <-req.reply:
		assert.Equal(t, fossil.AnswerNo, got, "esc picks the last no without a cancel answer")
	default:
		t.Fatal("expected an answer")
	}
}

func TestHelpAndPalette(t *testing.T) {
	m, _ := openTestModel(t)

	sendKey(t, m, "?")
	help, ok := m.state.ui.screenManager.Current().(*appscreen.HelpScreen)
	require.True(t, ok)
	assert.Contains(t, strings.Join(help.FullText, "\n"), "Commit")
	sendKey(t, m, "esc")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	drive(t, m, cmd)
	palette, ok := m.state.ui.screenManager.Current().(*appscreen.ListSelectionScreen)
	require.True(t, ok)
	for i, item := range palette.Filtered {
		if item.ID == "zoom" {
			palette.Cursor = i
		}
	}
	sendKey(t, m, "enter")
	assert.Equal(t, state.PaneFiles, m.state.view.ZoomedPane)
	assert.Equal(t, []string{"zoom"}, m.history)
}

func TestViewRendersPanes(t *testing.T) {
	m, _ := openTestModel(t)
	view := m.View()
	for _, want := range []string{"Fuel", "Demo", "Directories", "Files", "Stashes", "Log", "b.txt", "new.txt", "first"} {
		assert.Contains(t, view, want)
	}
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 40)
}

func TestIntegrationQuit(t *testing.T) {
	m, _ := newTestModel(t, true)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(string(b), "new.txt")
	}, teatest.WithDuration(5*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.True(t, final.quitting)
}
