package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fuel-scm/fuel/internal/theme"
)

// InfoScreen displays a modal message with an OK button.
type InfoScreen struct {
	Title   string
	Message string
	IsError bool
	Thm     *theme.Theme

	OnClose func() tea.Cmd
}

// NewInfoScreen creates an informational modal with an OK button.
func NewInfoScreen(message string, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{
		Message: message,
		Thm:     thm,
	}
}

// NewErrorScreen creates an info screen styled for an error.
func NewErrorScreen(err error, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{
		Title:   "Error",
		Message: err.Error(),
		IsError: true,
		Thm:     thm,
	}
}

// Type returns the screen type.
func (s *InfoScreen) Type() Type {
	return TypeInfo
}

// Update closes the dialog on enter, esc or q.
func (s *InfoScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()
	if key == keyEnter || isEscape(key) || key == keyQ || key == keyCtrlC {
		if s.OnClose != nil {
			return nil, s.OnClose()
		}
		return nil, nil
	}
	return s, nil
}

// View renders the informational UI box with a single OK button.
func (s *InfoScreen) View() string {
	width := 60
	accent := s.Thm.Accent
	if s.IsError {
		accent = s.Thm.ErrorFg
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(width)

	messageStyle := lipgloss.NewStyle().
		Width(width-6).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(s.Thm.TextFg)

	okStyle := lipgloss.NewStyle().
		Width(width-6).
		Align(lipgloss.Center).
		Foreground(s.Thm.AccentFg).
		Background(accent).
		Bold(true)

	content := fmt.Sprintf("%s\n\n%s",
		messageStyle.Render(s.Message),
		okStyle.Render("[OK]"),
	)
	if s.Title != "" {
		title := lipgloss.NewStyle().Foreground(accent).Bold(true).Width(width-6).Align(lipgloss.Center)
		content = title.Render(s.Title) + "\n\n" + content
	}

	return boxStyle.Render(content)
}
