package app

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/app/services"
	"github.com/fuel-scm/fuel/internal/workspace"
)

// openURL starts the browser on url without waiting for it.
func (m *Model) openURL(url string) error {
	name, args := services.BrowserCommand(runtime.GOOS, url)
	// #nosec G204 -- the URL is passed as a single argument
	cmd := m.commandRunner(m.ctx, name, args...)
	if err := m.startCommand(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	m.debugf("browser: %s", url)
	return nil
}

// editFile suspends the UI and opens the file under the cursor in the
// editor. Unknown files can be edited too.
func (m *Model) editFile() tea.Cmd {
	files := m.selectedFiles(workspace.TypeAll)
	if len(files) != 1 {
		m.showInfo("Select one file to edit.")
		return nil
	}
	f := files[0]
	editor := services.EditorCommand(m.config)
	if editor == "" {
		m.showInfo("No editor found. Set editor in the config file or $EDITOR.")
		return nil
	}

	env := services.BuildCommandEnv(m.Workspace(), m.services.bridge.ProjectName(), f.FilePath())
	editor = services.ExpandWithEnv(editor, env)
	fields := strings.Fields(editor)
	args := append(fields[1:], f.AbsPath())

	// #nosec G204 -- the editor comes from the user's configuration
	cmd := m.commandRunner(m.ctx, fields[0], args...)
	cmd.Dir = m.Workspace()
	cmd.Env = append(os.Environ(), services.EnvMapToList(env)...)
	return m.execProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{err: err}
	})
}

// copyPath copies the absolute path of the selected file.
func (m *Model) copyPath() tea.Cmd {
	files := m.selectedFiles(workspace.TypeAll)
	if len(files) == 0 {
		m.showInfo("No file selected.")
		return nil
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.AbsPath())
	}
	if err := m.copyText(strings.Join(paths, "\n")); err != nil {
		m.showError(fmt.Errorf("copy to clipboard: %w", err))
		return nil
	}
	if len(paths) == 1 {
		m.statusLine = "Copied " + paths[0]
	} else {
		m.statusLine = fmt.Sprintf("Copied %d paths", len(paths))
	}
	return nil
}
