package screen

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fuel-scm/fuel/internal/theme"
)

// OutputScreen shows scrollable command output such as a diff. When
// OnConfirm is set the screen also asks whether to go ahead.
type OutputScreen struct {
	Title    string
	Lines    []string
	Viewport viewport.Model
	Thm      *theme.Theme

	OnConfirm func() tea.Cmd
	OnClose   func() tea.Cmd

	width  int
	height int
}

// NewOutputScreen creates an output viewer sized relative to the terminal.
func NewOutputScreen(title string, lines []string, maxWidth, maxHeight int, thm *theme.Theme) *OutputScreen {
	s := &OutputScreen{
		Title: title,
		Lines: lines,
		Thm:   thm,
	}
	s.SetSize(maxWidth, maxHeight)
	s.Viewport.SetContent(s.renderContent())
	return s
}

// SetSize updates the dimensions on terminal resize.
func (s *OutputScreen) SetSize(maxWidth, maxHeight int) {
	s.width = 100
	s.height = 30
	if maxWidth > 0 {
		s.width = clampInt(maxWidth-4, 40, 160)
	}
	if maxHeight > 0 {
		s.height = clampInt(maxHeight-4, 10, 60)
	}
	s.Viewport.Width = s.width - 4
	s.Viewport.Height = max(3, s.height-6)
}

// Type returns the screen type.
func (s *OutputScreen) Type() Type {
	return TypeOutput
}

func (s *OutputScreen) close() (Screen, tea.Cmd) {
	if s.OnClose != nil {
		return nil, s.OnClose()
	}
	return nil, nil
}

// Update scrolls the output, confirms or closes.
func (s *OutputScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()
	switch {
	case isEscape(key) || key == keyQ || key == keyCtrlC:
		return s.close()
	case key == "n" && s.OnConfirm != nil:
		return s.close()
	case key == "y" || key == keyEnter:
		if s.OnConfirm != nil {
			return nil, s.OnConfirm()
		}
		if key == keyEnter {
			return s.close()
		}
		return s, nil
	case key == "j" || key == "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case key == "k" || key == "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	case key == "ctrl+d" || key == " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case key == "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	case key == "g":
		s.Viewport.GotoTop()
		return s, nil
	case key == "G":
		s.Viewport.GotoBottom()
		return s, nil
	}
	var cmd tea.Cmd
	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// renderContent colors diff lines.
func (s *OutputScreen) renderContent() string {
	if len(s.Lines) == 0 {
		return lipgloss.NewStyle().Foreground(s.Thm.MutedFg).Render("(no output)")
	}
	added := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg)
	removed := lipgloss.NewStyle().Foreground(s.Thm.ErrorFg)
	header := lipgloss.NewStyle().Foreground(s.Thm.Cyan)
	plain := lipgloss.NewStyle().Foreground(s.Thm.TextFg)

	out := make([]string, 0, len(s.Lines))
	for _, line := range s.Lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"), strings.HasPrefix(line, "@@"),
			strings.HasPrefix(line, "Index: "), strings.HasPrefix(line, "===="):
			out = append(out, header.Render(line))
		case strings.HasPrefix(line, "+"):
			out = append(out, added.Render(line))
		case strings.HasPrefix(line, "-"):
			out = append(out, removed.Render(line))
		default:
			out = append(out, plain.Render(line))
		}
	}
	return strings.Join(out, "\n")
}

// View renders the output box.
func (s *OutputScreen) View() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(0, 1).
		Width(s.width)
	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.width - 4)
	footerStyle := lipgloss.NewStyle().Foreground(s.Thm.MutedFg)

	footer := "j/k: scroll • Ctrl+d/u: page • esc: close"
	if s.OnConfirm != nil {
		footer = "y/enter: apply • n/esc: cancel • j/k: scroll"
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title),
		s.Viewport.View(),
		footerStyle.Render(footer),
	))
}
