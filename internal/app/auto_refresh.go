package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/workspace"
)

// startWatcher watches the workspace when auto refresh is enabled.
func (m *Model) startWatcher() tea.Cmd {
	if m.config == nil || !m.config.AutoRefresh {
		return nil
	}
	if m.services.watch != nil && m.services.watch.Started() {
		return nil
	}
	ignore, err := workspace.NewIgnoreMatcher(m.data.ignoreGlob)
	if err != nil {
		m.debugf("watch: ignore-glob: %v", err)
		ignore = nil
	}
	m.services.watch = workspace.NewWatcher(m.Workspace(), ignore, m.debugf)
	started, err := m.services.watch.Start()
	if err != nil {
		return func() tea.Msg {
			return errMsg{err: err}
		}
	}
	if !started {
		return nil
	}
	m.services.watch.Touch(time.Now())
	return m.waitForWatchEvent()
}

func (m *Model) stopWatcher() {
	if m.services.watch == nil || !m.services.watch.Started() {
		return
	}
	m.services.watch.Stop()
	m.services.watch = nil
}

func (m *Model) waitForWatchEvent() tea.Cmd {
	w := m.services.watch
	if w == nil {
		return nil
	}
	events := w.NextEvent()
	if events == nil {
		return nil
	}
	done := w.Done()
	return func() tea.Msg {
		select {
		case _, ok := <-events:
			if !ok {
				return nil
			}
			return watchEventMsg{watcher: w}
		case <-done:
			return nil
		}
	}
}

func (m *Model) handleWatchEvent(msg watchEventMsg) (tea.Model, tea.Cmd) {
	if msg.watcher != m.services.watch {
		// Event from a watcher of a previous workspace.
		return m, nil
	}
	m.services.watch.ResetWaiting()
	var cmd tea.Cmd
	if m.services.watch.ShouldRefresh(time.Now()) {
		if m.busy {
			m.rescanDue = true
		} else {
			cmd = m.refresh()
		}
	}
	return m, tea.Batch(cmd, m.waitForWatchEvent())
}
