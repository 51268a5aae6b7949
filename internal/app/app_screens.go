package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fuel-scm/fuel/internal/app/commands"
	appscreen "github.com/fuel-scm/fuel/internal/app/screen"
	"github.com/fuel-scm/fuel/internal/fossil"
	"github.com/fuel-scm/fuel/internal/theme"
)

func (m *Model) pushScreen(s appscreen.Screen) {
	m.state.ui.screenManager.Push(s)
}

func (m *Model) showInfo(message string) {
	m.pushScreen(appscreen.NewInfoScreen(message, m.theme))
}

func (m *Model) showError(err error) {
	if err == nil {
		return
	}
	m.pushScreen(appscreen.NewErrorScreen(err, m.theme))
}

// showConfirm asks before running action.
func (m *Model) showConfirm(message string, action func() tea.Cmd) {
	scr := appscreen.NewConfirmScreenWithDefault(message, 1, m.theme)
	scr.OnConfirm = action
	m.pushScreen(scr)
}

func (m *Model) showOutput(title string, lines []string) {
	if len(lines) == 0 {
		lines = []string{"(no output)"}
	}
	m.pushScreen(appscreen.NewOutputScreen(title, lines, m.state.view.WindowWidth, m.state.view.WindowHeight, m.theme))
}

// showPreview shows dry-run output and applies the change on confirmation.
// Without changes there is nothing to confirm.
func (m *Model) showPreview(msg previewMsg) {
	if !fossil.HasChanges(msg.lines) {
		m.showInfo(fmt.Sprintf("%s: nothing to do.", msg.label))
		return
	}
	scr := appscreen.NewOutputScreen(msg.title, msg.lines, m.state.view.WindowWidth, m.state.view.WindowHeight, m.theme)
	apply := msg.apply
	scr.OnConfirm = func() tea.Cmd {
		return m.runOp(msg.label, true, func(ctx context.Context) (tea.Msg, error) {
			return nil, apply(ctx)
		})
	}
	m.pushScreen(scr)
}

// showQuery asks the user to answer a fossil prompt. The answer goes back
// to the waiting fossil goroutine.
func (m *Model) showQuery(req *queryRequest) {
	if req == nil {
		return
	}
	labels := make([]string, len(req.answers))
	for i, a := range req.answers {
		labels[i] = a.String()
	}
	title := req.title
	if title == "" {
		title = "fossil"
	}
	scr := appscreen.NewChoiceScreen(title, req.query, labels, m.theme)
	scr.Cancel = cancelIndex(req.answers)
	scr.OnChoose = func(i int) tea.Cmd {
		answer := fossil.AnswerCancel
		if i >= 0 && i < len(req.answers) {
			answer = req.answers[i]
		}
		req.reply <- answer
		return nil
	}
	m.pushScreen(scr)
}

func (m *Model) showHelp() tea.Cmd {
	text := m.registry.HelpText() + "\n" + helpFooter
	m.pushScreen(appscreen.NewHelpScreen(text, m.state.view.WindowWidth, m.state.view.WindowHeight, m.theme))
	return nil
}

// helpFooter documents keys that are not registry actions.
const helpFooter = `**Panes**
- tab / shift+tab: Cycle pane focus
- j/k, up/down: Move the cursor
- enter (directories): Collapse or expand
- enter (files): Show diff
- ctrl+p: Command palette
- esc: Abort the running command, clear the filter
- q: Quit
`

func (m *Model) showPalette() tea.Cmd {
	entries := commands.BuildPaletteItems(commands.PaletteOptions{
		MRULimit: paletteMRULimit,
		History:  m.history,
		Actions:  m.registry.Actions(),
	})
	items := make([]appscreen.SelectionItem, 0, len(entries))
	for _, e := range entries {
		label := e.Label
		if e.Icon != "" && m.config.ShowIcons {
			label = e.Icon + " " + label
		}
		desc := e.Section
		if e.Shortcut != "" {
			desc = fmt.Sprintf("%s [%s]", e.Section, e.Shortcut)
		}
		items = append(items, appscreen.SelectionItem{ID: e.ID, Label: label, Description: desc})
	}
	scr := appscreen.NewListSelectionScreen(items, "Commands", "Type a command...", "No matching command.",
		m.state.view.WindowWidth, m.state.view.WindowHeight, "", m.theme)
	scr.FilterActive = true
	scr.FilterInput.Focus()
	scr.OnSelect = func(item appscreen.SelectionItem) tea.Cmd {
		m.recordHistory(item.ID)
		return m.registry.Execute(item.ID)
	}
	m.pushScreen(scr)
	return nil
}

func (m *Model) recordHistory(id string) {
	out := []string{id}
	for _, h := range m.history {
		if h != id {
			out = append(out, h)
		}
	}
	if len(out) > 20 {
		out = out[:20]
	}
	m.history = out
}

func (m *Model) showThemeSelect() tea.Cmd {
	names := theme.AvailableThemes()
	items := make([]appscreen.SelectionItem, 0, len(names))
	for _, name := range names {
		desc := "dark"
		if theme.IsLight(name) {
			desc = "light"
		}
		items = append(items, appscreen.SelectionItem{ID: name, Label: name, Description: desc})
	}
	scr := appscreen.NewListSelectionScreen(items, "Theme", "", "", m.state.view.WindowWidth, m.state.view.WindowHeight, m.config.Theme, m.theme)
	scr.OnSelect = func(item appscreen.SelectionItem) tea.Cmd {
		m.config.SetTheme(item.ID)
		m.theme = theme.GetTheme(item.ID)
		m.ui.spinner.Style = m.ui.spinner.Style.Foreground(m.theme.Accent)
		m.persistConfig()
		return nil
	}
	m.pushScreen(scr)
	return nil
}

func (m *Model) persistConfig() {
	if m.saveConfig == nil {
		return
	}
	if err := m.saveConfig(m.config); err != nil {
		m.debugf("save config: %v", err)
		m.statusLine = "Could not save config: " + err.Error()
	}
}
