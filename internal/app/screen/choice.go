package screen

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fuel-scm/fuel/internal/theme"
)

// ChoiceScreen asks a question with any number of answer buttons. It is used
// for prompts coming from a running fossil command.
type ChoiceScreen struct {
	Title    string
	Message  string
	Choices  []string
	Selected int
	// Cancel is the choice index used for esc; -1 disables it.
	Cancel int
	Thm    *theme.Theme

	OnChoose func(index int) tea.Cmd
}

// NewChoiceScreen builds a choice screen. The last choice doubles as the
// cancel answer.
func NewChoiceScreen(title, message string, choices []string, thm *theme.Theme) *ChoiceScreen {
	return &ChoiceScreen{
		Title:   title,
		Message: message,
		Choices: choices,
		Cancel:  len(choices) - 1,
		Thm:     thm,
	}
}

// Type returns the screen type.
func (s *ChoiceScreen) Type() Type {
	return TypeChoice
}

func (s *ChoiceScreen) choose(i int) (Screen, tea.Cmd) {
	if s.OnChoose != nil {
		return nil, s.OnChoose(i)
	}
	return nil, nil
}

// Update handles navigation and selection. The first letter of a choice
// selects it directly.
func (s *ChoiceScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if len(s.Choices) == 0 {
		return nil, nil
	}
	key := msg.String()
	switch {
	case key == keyTab || key == "right" || key == "l":
		s.Selected = (s.Selected + 1) % len(s.Choices)
		return s, nil
	case key == keyShiftTab || key == "left" || key == "h":
		s.Selected = (s.Selected - 1 + len(s.Choices)) % len(s.Choices)
		return s, nil
	case key == keyEnter:
		return s.choose(s.Selected)
	case isEscape(key) || key == keyCtrlC:
		if s.Cancel >= 0 && s.Cancel < len(s.Choices) {
			return s.choose(s.Cancel)
		}
		return s, nil
	}
	for i, choice := range s.Choices {
		if choice != "" && strings.EqualFold(key, choice[:1]) {
			return s.choose(i)
		}
	}
	return s, nil
}

// View renders the question and its buttons.
func (s *ChoiceScreen) View() string {
	width := 64

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.WarnFg).
		Padding(1, 2).
		Width(width)
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.WarnFg).Bold(true)
	messageStyle := lipgloss.NewStyle().Foreground(s.Thm.TextFg).Width(width - 6)
	button := lipgloss.NewStyle().Padding(0, 2)
	focused := button.Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
	unfocused := button.Foreground(s.Thm.MutedFg).Background(s.Thm.BorderDim)

	buttons := make([]string, 0, len(s.Choices))
	for i, choice := range s.Choices {
		style := unfocused
		if i == s.Selected {
			style = focused
		}
		buttons = append(buttons, style.Render(choice))
	}

	parts := []string{}
	if s.Title != "" {
		parts = append(parts, titleStyle.Render(s.Title))
	}
	parts = append(parts,
		messageStyle.Render(s.Message),
		lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(buttons, " ")),
	)
	return boxStyle.Render(strings.Join(parts, "\n\n"))
}
