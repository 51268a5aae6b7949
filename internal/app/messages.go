package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/workspace"
)

type (
	errMsg      struct{ err error }
	logLinesMsg struct{ lines []string }
	queryMsg    struct{ req *queryRequest }
	statusMsg   struct{ text string }

	repoStatusMsg struct {
		dir        string
		status     fossil.RepoStatus
		ignoreGlob string
	}
	scanDoneMsg struct {
		ws *workspace.Workspace
	}
	opDoneMsg struct {
		label   string
		err     error
		next    tea.Msg
		refresh bool
	}
	// previewMsg carries dry-run output; apply performs the real command.
	previewMsg struct {
		title string
		lines []string
		label string
		apply func(ctx context.Context) error
	}
	outputMsg struct {
		title string
		lines []string
	}
	editorDoneMsg struct{ err error }
	watchEventMsg struct {
		watcher *workspace.Watcher
	}
)

// runOp runs fn as the single foreground operation. esc cancels it.
// With refresh the workspace is rescanned once fn succeeds.
func (m *Model) runOp(label string, refresh bool, fn func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	if m.busy {
		m.showInfo(fmt.Sprintf("Wait for %q to finish, or press esc to abort it.", m.busyLabel))
		return nil
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.busy = true
	m.busyLabel = label
	m.cancelOp = cancel
	m.statusLine = ""
	m.debugf("op start: %s", label)
	return tea.Batch(m.ui.spinner.Tick, func() tea.Msg {
		defer cancel()
		next, err := fn(ctx)
		return opDoneMsg{label: label, err: err, next: next, refresh: refresh}
	})
}

// abortOp cancels the running operation; the fossil process is killed.
func (m *Model) abortOp() {
	if m.cancelOp != nil {
		m.debugf("op abort: %s", m.busyLabel)
		m.cancelOp()
	}
}

func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	m.busyLabel = ""
	m.cancelOp = nil
	m.services.ui.EndProcess()

	var cmds []tea.Cmd
	switch {
	case errors.Is(msg.err, context.Canceled):
		m.debugf("op cancelled: %s", msg.label)
		m.statusLine = msg.label + " aborted"
		if msg.refresh {
			m.rescanDue = true
		}
	case msg.err != nil:
		m.debugf("op failed: %s: %v", msg.label, msg.err)
		m.showError(fmt.Errorf("%s: %w", msg.label, msg.err))
		// Failed commands may still have changed files.
		if msg.refresh {
			m.rescanDue = true
		}
	default:
		m.debugf("op done: %s", msg.label)
		if msg.next != nil {
			next := msg.next
			cmds = append(cmds, func() tea.Msg { return next })
		}
		if msg.refresh {
			m.rescanDue = true
		}
	}

	if m.rescanDue {
		m.rescanDue = false
		cmds = append(cmds, m.refresh())
	}
	return m, tea.Batch(cmds...)
}

// refresh rescans the workspace into a fresh Workspace that replaces the
// current one when the scan completes.
func (m *Model) refresh() tea.Cmd {
	if m.data.repoStatus != fossil.RepoOK || !m.data.statusKnown {
		return nil
	}
	if m.busy {
		m.rescanDue = true
		return nil
	}
	if m.services.watch != nil {
		m.services.watch.Touch(time.Now())
	}

	dir := m.Workspace()
	bridge := m.services.bridge
	tui := m.services.ui
	opts := m.data.filters.ScanOptions(m.data.ignoreGlob, m.config.IgnoreGlob)
	opts.RepositoryFile = bridge.RepositoryFile()
	opts.Progress = func(d string) {
		if d == "" {
			d = "."
		}
		tui.UpdateProcess("Scanning " + d)
	}

	return m.runOp("Scanning", false, func(ctx context.Context) (tea.Msg, error) {
		tui.BeginProcess("Scanning")
		defer tui.EndProcess()
		ws := workspace.New(dir)
		if err := ws.Scan(ctx, bridge, opts); err != nil {
			return nil, err
		}
		return scanDoneMsg{ws: ws}, nil
	})
}

// applyScan swaps in a completed scan and keeps the selection where it can.
func (m *Model) applyScan(msg scanDoneMsg) {
	m.data.ws = msg.ws
	m.data.tree.SetPaths(msg.ws.Paths())
	m.data.stashes = msg.ws.Stashes()
	m.data.stashCursor = clampIndex(m.data.stashCursor, len(m.data.stashes))
	for rel := range m.data.marked {
		if _, ok := msg.ws.File(rel); !ok {
			delete(m.data.marked, rel)
		}
	}
	m.data.scanned = true
	m.updateVisible()
}

func (m *Model) appendLog(lines ...string) {
	m.data.logLines = append(m.data.logLines, lines...)
	if over := len(m.data.logLines) - maxLogLines; over > 0 {
		m.data.logLines = m.data.logLines[over:]
	}
	m.data.logOffset = 0
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	if i < 0 {
		return 0
	}
	return i
}
