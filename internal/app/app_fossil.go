package app

import (
	"context"
	"fmt"
	"path"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	appscreen "github.com/fuel-scm/fuel/internal/app/screen"
	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// requireFiles reports the empty selection instead of running a command.
func (m *Model) requireFiles(files []*workspace.RepoFile, what string) bool {
	if len(files) == 0 {
		m.showInfo("No " + what + " selected.")
		return false
	}
	return true
}

func describeFiles(files []*workspace.RepoFile) string {
	if len(files) == 1 {
		return files[0].FilePath()
	}
	return fmt.Sprintf("%d files", len(files))
}

func (m *Model) showDiff() tea.Cmd {
	files := m.selectedFiles(workspace.TypeModified)
	if !m.requireFiles(files, "modified files") {
		return nil
	}
	paths := filePaths(files)
	bridge := m.services.bridge
	return m.runOp("Diff", false, func(ctx context.Context) (tea.Msg, error) {
		var out []string
		for _, p := range paths {
			lines, err := bridge.Diff(ctx, p, false)
			if err != nil {
				return nil, err
			}
			out = append(out, lines...)
		}
		return outputMsg{title: "Diff: " + strings.Join(paths, ", "), lines: out}, nil
	})
}

func (m *Model) showGraphicalDiff() tea.Cmd {
	files := m.selectedFiles(workspace.TypeModified)
	if !m.requireFiles(files, "modified files") {
		return nil
	}
	paths := filePaths(files)
	bridge := m.services.bridge
	return m.runOp("Graphical diff", false, func(ctx context.Context) (tea.Msg, error) {
		for _, p := range paths {
			if _, err := bridge.Diff(ctx, p, true); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
}

func (m *Model) addFiles() tea.Cmd {
	files := m.selectedFiles(workspace.TypeUnknown)
	if !m.requireFiles(files, "unknown files") {
		return nil
	}
	paths := filePaths(files)
	bridge := m.services.bridge
	m.clearMarks()
	return m.runOp("Add", true, func(ctx context.Context) (tea.Msg, error) {
		return nil, bridge.Add(ctx, paths)
	})
}

func (m *Model) removeFiles() tea.Cmd {
	files := m.selectedFiles(workspace.TypeRepo)
	if !m.requireFiles(files, "tracked files") {
		return nil
	}
	paths := filePaths(files)
	bridge := m.services.bridge

	scr := appscreen.NewChoiceScreen("Remove",
		fmt.Sprintf("Stop tracking %s?", describeFiles(files)),
		[]string{"Remove", "Delete local files too", "Cancel"}, m.theme)
	scr.Selected = 2
	scr.OnChoose = func(i int) tea.Cmd {
		if i > 1 {
			return nil
		}
		deleteLocal := i == 1
		m.clearMarks()
		return m.runOp("Remove", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.Remove(ctx, paths, deleteLocal)
		})
	}
	m.pushScreen(scr)
	return nil
}

func (m *Model) revertFiles() tea.Cmd {
	files := m.selectedFiles(workspace.TypeModified)
	if !m.requireFiles(files, "modified files") {
		return nil
	}
	paths := filePaths(files)
	bridge := m.services.bridge
	m.showConfirm(fmt.Sprintf("Revert %s?\nLocal changes will be lost.", describeFiles(files)), func() tea.Cmd {
		m.clearMarks()
		return m.runOp("Revert", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.Revert(ctx, paths)
		})
	})
	return nil
}

func (m *Model) renameFile() tea.Cmd {
	files := m.selectedFiles(workspace.TypeRepo)
	if len(files) != 1 {
		m.showInfo("Select exactly one tracked file to rename.")
		return nil
	}
	from := files[0].FilePath()
	bridge := m.services.bridge

	scr := appscreen.NewInputScreen("Rename "+from+" to", "new/path", from, m.theme)
	scr.SetCheckbox("Also move the local file", true)
	scr.Validate = func(v string) string {
		v = strings.TrimSpace(v)
		switch {
		case v == "":
			return "Path cannot be empty."
		case path.Clean(v) == from:
			return "The new path is the same as the old one."
		case strings.HasPrefix(path.Clean(v), "../"):
			return "The new path must stay inside the workspace."
		}
		return ""
	}
	scr.OnSubmit = func(value string, moveLocal bool) tea.Cmd {
		to := path.Clean(strings.TrimSpace(value))
		return m.runOp("Rename", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.Rename(ctx, from, to, moveLocal)
		})
	}
	m.pushScreen(scr)
	return nil
}

// commitFiles commits the modified selection. With nothing selected the
// whole checkout is committed.
func (m *Model) commitFiles() tea.Cmd {
	files := m.selectedFiles(workspace.TypeModified)
	paths := filePaths(files)
	bridge := m.services.bridge

	scr := appscreen.NewCommitScreen(paths, m.state.view.WindowWidth, m.state.view.WindowHeight, m.theme)
	scr.OnSubmit = func(req appscreen.CommitRequest) tea.Cmd {
		m.clearMarks()
		opts := fossil.CommitOptions{Message: req.Message, Branch: req.Branch, Private: req.Private}
		return m.runOp("Commit", true, func(ctx context.Context) (tea.Msg, error) {
			return nil, bridge.Commit(ctx, paths, opts)
		})
	}
	m.pushScreen(scr)
	return nil
}

func (m *Model) clearMarks() {
	m.data.marked = make(map[string]bool)
}

// previewUpdate runs `fossil update --dry-run` and asks before updating.
func (m *Model) previewUpdate() tea.Cmd {
	bridge := m.services.bridge
	return m.runOp("Update preview", false, func(ctx context.Context) (tea.Msg, error) {
		lines, err := bridge.Update(ctx, true)
		if err != nil {
			return nil, err
		}
		return previewMsg{
			title: "Update will change",
			lines: lines,
			label: "Update",
			apply: func(ctx context.Context) error {
				_, err := bridge.Update(ctx, false)
				return err
			},
		}, nil
	})
}

// previewUndo runs `fossil undo --dry-run` and asks before undoing.
func (m *Model) previewUndo() tea.Cmd {
	bridge := m.services.bridge
	return m.runOp("Undo preview", false, func(ctx context.Context) (tea.Msg, error) {
		lines, err := bridge.Undo(ctx, true)
		if err != nil {
			return nil, err
		}
		return previewMsg{
			title: "Undo will change",
			lines: lines,
			label: "Undo",
			apply: func(ctx context.Context) error {
				_, err := bridge.Undo(ctx, false)
				return err
			},
		}, nil
	})
}

func (m *Model) push() tea.Cmd {
	bridge := m.services.bridge
	return m.runOp("Push", false, func(ctx context.Context) (tea.Msg, error) {
		return statusMsg{text: "Push complete"}, bridge.Push(ctx)
	})
}

func (m *Model) pull() tea.Cmd {
	bridge := m.services.bridge
	return m.runOp("Pull", true, func(ctx context.Context) (tea.Msg, error) {
		return statusMsg{text: "Pull complete"}, bridge.Pull(ctx)
	})
}
