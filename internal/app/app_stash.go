package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	appscreen "github.com/fuel-scm/fuel/internal/app/screen"
	"github.com/fuel-scm/fuel/internal/utils"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// newStash stashes the selected modified files, or every change when none
// is selected.
func (m *Model) newStash() tea.Cmd {
	paths := filePaths(m.selectedFiles(workspace.TypeModified))
	bridge := m.services.bridge

	prompt := "Stash all changes as"
	if len(paths) > 0 {
		prompt = fmt.Sprintf("Stash %d file(s) as", len(paths))
	}
	name := "stash-" + utils.RandomName()
	scr := appscreen.NewInputScreen(prompt, "stash name", name, m.theme)
	scr.SetCheckbox("Revert the stashed changes", true)
	scr.Validate = func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return "Stash name cannot be empty."
		}
		if _, exists := m.data.ws.StashID(v); exists {
			return "A stash with this name already exists."
		}
		return ""
	}
	scr.OnSubmit = func(v string, revert bool) tea.Cmd {
		stashName := strings.TrimSpace(v)
		m.clearMarks()
		return m.runOp("Stash", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.StashNew(ctx, paths, stashName, revert)
		})
	}
	m.pushScreen(scr)
	return nil
}

func (m *Model) applyStash() tea.Cmd {
	st, ok := m.currentStash()
	if !ok {
		m.showInfo("No stash selected.")
		return nil
	}
	bridge := m.services.bridge
	return m.runOp("Apply stash", true, func(ctx context.Context) (tea.Msg, error) {
		return nil, bridge.StashApply(ctx, st.ID)
	})
}

func (m *Model) dropStash() tea.Cmd {
	st, ok := m.currentStash()
	if !ok {
		m.showInfo("No stash selected.")
		return nil
	}
	bridge := m.services.bridge
	m.showConfirm(fmt.Sprintf("Drop stash %q?", st.Name), func() tea.Cmd {
		return m.runOp("Drop stash", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.StashDrop(ctx, st.ID)
		})
	})
	return nil
}

func (m *Model) diffStash() tea.Cmd {
	st, ok := m.currentStash()
	if !ok {
		m.showInfo("No stash selected.")
		return nil
	}
	bridge := m.services.bridge
	return m.runOp("Stash diff", false, func(ctx context.Context) (tea.Msg, error) {
		lines, err := bridge.StashDiff(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		return outputMsg{title: "Stash: " + st.Name, lines: lines}, nil
	})
}
