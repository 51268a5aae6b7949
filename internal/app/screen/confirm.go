package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fuel-scm/fuel/internal/theme"
)

// ConfirmScreen displays a modal confirmation prompt with Accept/Cancel buttons.
type ConfirmScreen struct {
	Title          string
	Message        string
	ConfirmLabel   string
	SelectedButton int // 0 = Confirm, 1 = Cancel
	Thm            *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirm screen preloaded with a message.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Message:      message,
		ConfirmLabel: "Confirm",
		Thm:          thm,
	}
}

// NewConfirmScreenWithDefault creates a confirmation modal with a specified default button.
func NewConfirmScreenWithDefault(message string, defaultButton int, thm *theme.Theme) *ConfirmScreen {
	s := NewConfirmScreen(message, thm)
	s.SelectedButton = clampInt(defaultButton, 0, 1)
	return s
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

func (s *ConfirmScreen) confirm() (Screen, tea.Cmd) {
	if s.OnConfirm != nil {
		return nil, s.OnConfirm()
	}
	return nil, nil
}

func (s *ConfirmScreen) cancel() (Screen, tea.Cmd) {
	if s.OnCancel != nil {
		return nil, s.OnCancel()
	}
	return nil, nil
}

// Update processes keyboard events for the confirmation dialog.
// Returns nil to signal that the screen should be closed.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	key := msg.String()
	switch {
	case key == keyTab || key == "right" || key == "l":
		s.SelectedButton = (s.SelectedButton + 1) % 2
	case key == keyShiftTab || key == "left" || key == "h":
		s.SelectedButton = (s.SelectedButton + 1) % 2
	case key == "y" || key == "Y":
		return s.confirm()
	case key == "n" || key == "N":
		return s.cancel()
	case key == keyEnter:
		if s.SelectedButton == 0 {
			return s.confirm()
		}
		return s.cancel()
	case isEscape(key) || key == keyQ || key == keyCtrlC:
		return s.cancel()
	}
	return s, nil
}

// View renders the confirmation UI box with focused button highlighting.
func (s *ConfirmScreen) View() string {
	width := 60

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Width(width-6).
		Align(lipgloss.Center)

	messageStyle := lipgloss.NewStyle().
		Width(width-6).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(s.Thm.TextFg)

	button := lipgloss.NewStyle().
		Width((width-8)/2).
		Align(lipgloss.Center).
		Padding(0, 2)
	focusedConfirm := button.Foreground(s.Thm.AccentFg).Background(s.Thm.ErrorFg).Bold(true)
	focusedCancel := button.Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
	unfocused := button.Foreground(s.Thm.MutedFg).Background(s.Thm.BorderDim)

	confirmLabel := "[" + s.ConfirmLabel + "]"
	var confirmButton, cancelButton string
	if s.SelectedButton == 0 {
		confirmButton = focusedConfirm.Render(confirmLabel)
		cancelButton = unfocused.Render("[Cancel]")
	} else {
		confirmButton = unfocused.Render(confirmLabel)
		cancelButton = focusedCancel.Render("[Cancel]")
	}

	content := fmt.Sprintf("%s\n\n%s  %s",
		messageStyle.Render(s.Message),
		confirmButton,
		cancelButton,
	)
	if s.Title != "" {
		content = titleStyle.Render(s.Title) + "\n\n" + content
	}

	return boxStyle.Render(content)
}
