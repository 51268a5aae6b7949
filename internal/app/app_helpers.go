package app

import (
	"sort"

	"github.com/atotto/clipboard"

	"github.com/fuel-scm/fuel/internal/app/services"
	"github.com/fuel-scm/fuel/internal/app/state"
	log "github.com/fuel-scm/fuel/internal/log"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// Key constants.
const (
	keyEnter  = "enter"
	keyEsc    = "esc"
	keyEscRaw = "\x1b"
	keyCtrlC  = "ctrl+c"
	keyTab    = "tab"
	keyUp     = "up"
	keyDown   = "down"
	keyCtrlJ  = "ctrl+j"
	keyCtrlK  = "ctrl+k"
)

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

// isEscKey checks if the key string represents an escape key.
// Some terminals send ESC as "esc" (tea.KeyEsc) while others send it
// as a raw escape byte "\x1b" (ASCII 27).
func isEscKey(keyStr string) bool {
	return keyStr == keyEsc || keyStr == keyEscRaw
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// updateVisible recomputes the file pane from the selected directory, the
// list/tree mode and the fuzzy filter. The cursor follows its file.
func (m *Model) updateVisible() {
	current := m.currentFile()

	dir := m.data.tree.SelectedPath()
	var files []*workspace.RepoFile
	if m.data.filters.AsList {
		files = m.data.ws.FilesUnder([]string{dir}, workspace.TypeAll)
	} else {
		files = m.data.ws.FilesIn(dir, workspace.TypeAll)
	}
	m.data.visible = services.FilterFiles(files, m.data.filterQuery)

	m.data.fileCursor = clampIndex(m.data.fileCursor, len(m.data.visible))
	if current != nil {
		for i, match := range m.data.visible {
			if match.File.FilePath() == current.FilePath() {
				m.data.fileCursor = i
				break
			}
		}
	}
}

// currentFile returns the file under the cursor of the file pane.
func (m *Model) currentFile() *workspace.RepoFile {
	if m.data.fileCursor < 0 || m.data.fileCursor >= len(m.data.visible) {
		return nil
	}
	return m.data.visible[m.data.fileCursor].File
}

// currentStash returns the stash under the cursor of the stash pane.
func (m *Model) currentStash() (workspace.Stash, bool) {
	if m.data.stashCursor < 0 || m.data.stashCursor >= len(m.data.stashes) {
		return workspace.Stash{}, false
	}
	return m.data.stashes[m.data.stashCursor], true
}

// selectedFiles returns the targets of a file action: the files under the
// selected directory when the directory pane has focus, otherwise the
// marked files, otherwise the file under the cursor.
func (m *Model) selectedFiles(mask workspace.EntryType) []*workspace.RepoFile {
	if m.state.view.FocusedPane == state.PaneDirs {
		return m.data.ws.FilesUnder([]string{m.data.tree.SelectedPath()}, mask)
	}

	var out []*workspace.RepoFile
	if len(m.data.marked) > 0 {
		for rel := range m.data.marked {
			if f, ok := m.data.ws.File(rel); ok && f.Matches(mask) {
				out = append(out, f)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].FilePath() < out[j].FilePath() })
		return out
	}
	if f := m.currentFile(); f != nil && f.Matches(mask) {
		out = append(out, f)
	}
	return out
}

func filePaths(files []*workspace.RepoFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.FilePath())
	}
	return out
}

// toggleMark marks or unmarks the file under the cursor and moves down.
func (m *Model) toggleMark() {
	f := m.currentFile()
	if f == nil {
		return
	}
	if m.data.marked[f.FilePath()] {
		delete(m.data.marked, f.FilePath())
	} else {
		m.data.marked[f.FilePath()] = true
	}
	m.moveFileCursor(1)
}

func (m *Model) moveFileCursor(delta int) {
	m.data.fileCursor = clampIndex(m.data.fileCursor+delta, len(m.data.visible))
}

func (m *Model) moveDirCursor(delta int) {
	m.data.tree.Index += delta
	m.data.tree.ClampIndex()
	m.data.fileCursor = 0
	m.updateVisible()
}

func (m *Model) moveStashCursor(delta int) {
	m.data.stashCursor = clampIndex(m.data.stashCursor+delta, len(m.data.stashes))
}

// scrollLog scrolls the log pane; positive delta moves towards older lines.
func (m *Model) scrollLog(delta int) {
	m.data.logOffset += delta
	if m.data.logOffset > len(m.data.logLines)-1 {
		m.data.logOffset = len(m.data.logLines) - 1
	}
	if m.data.logOffset < 0 {
		m.data.logOffset = 0
	}
}
